package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/nymix/internal/export"
	"github.com/nao1215/nymix/internal/model"
	"github.com/nao1215/nymix/internal/report"
)

// newTestResultSet returns a small valid result set.
func newTestResultSet() *model.ResultSet {
	rs := model.NewResultSet(model.Params{
		Names: []string{"elyra", "lumora"},
		TLDs:  []string{"com"},
	})
	checked := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	rs.CreatedAt = checked
	rs.Records = []model.Record{
		{Name: "elyra", Kind: model.KindDomain, Target: "com", Status: model.StatusTaken, CheckedAt: checked},
		{Name: "lumora", Kind: model.KindDomain, Target: "com", Status: model.StatusUnknown, Detail: "dns lookup for lumora.com timed out after 2s", CheckedAt: checked},
	}
	return rs
}

// TestNewReportCmd tests the report command creation.
func TestNewReportCmd(t *testing.T) {
	t.Parallel()

	cmd := NewReportCmd()

	t.Run("has format flag defaulting to markdown", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("format")
		if flag == nil {
			t.Fatal("expected format flag")
		}
		if flag.DefValue != string(report.FormatMarkdown) {
			t.Errorf("expected default markdown, got %q", flag.DefValue)
		}
	})

	t.Run("has output flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("output") == nil {
			t.Fatal("expected output flag")
		}
	})
}

// TestRunReport tests rendering of export files.
func TestRunReport(t *testing.T) {
	t.Parallel()

	t.Run("renders every record grouped by name", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		exportPath := filepath.Join(dir, "result.json")
		if err := export.Write(exportPath, newTestResultSet()); err != nil {
			t.Fatalf("failed to write export: %v", err)
		}

		var out bytes.Buffer
		if err := runReport(&out, exportPath, "csv", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := out.String()
		elyra := strings.Index(got, "elyra,domain,com,taken")
		lumora := strings.Index(got, "lumora,domain,com,unknown")
		if elyra < 0 || lumora < 0 || elyra > lumora {
			t.Errorf("expected both records in order, got:\n%s", got)
		}
	})

	t.Run("rendering twice is byte-identical", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		exportPath := filepath.Join(dir, "result.json")
		if err := export.Write(exportPath, newTestResultSet()); err != nil {
			t.Fatalf("failed to write export: %v", err)
		}

		for _, format := range report.Formats() {
			first := filepath.Join(dir, "first."+string(format))
			second := filepath.Join(dir, "second."+string(format))
			if err := runReport(nil, exportPath, string(format), first); err != nil {
				t.Fatalf("%s: unexpected error: %v", format, err)
			}
			if err := runReport(nil, exportPath, string(format), second); err != nil {
				t.Fatalf("%s: unexpected error: %v", format, err)
			}
			a, err := os.ReadFile(first)
			if err != nil {
				t.Fatal(err)
			}
			b, err := os.ReadFile(second)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(a, b) {
				t.Errorf("%s: renderings differ", format)
			}
		}
	})

	t.Run("malformed export does not create output", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		exportPath := filepath.Join(dir, "broken.json")
		if err := os.WriteFile(exportPath, []byte(`{"schema_version": 1, "records": [`), 0o600); err != nil {
			t.Fatal(err)
		}
		output := filepath.Join(dir, "report.md")

		err := runReport(nil, exportPath, "markdown", output)
		if !errors.Is(err, export.ErrMalformed) {
			t.Fatalf("expected ErrMalformed, got %v", err)
		}
		if exitCode(err) != exitMalformedExport {
			t.Errorf("expected exit code %d, got %d", exitMalformedExport, exitCode(err))
		}
		if _, err := os.Stat(output); !os.IsNotExist(err) {
			t.Error("expected output file not to be created")
		}
	})

	t.Run("malformed export leaves existing output untouched", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		exportPath := filepath.Join(dir, "broken.json")
		if err := os.WriteFile(exportPath, []byte(`{"schema_version": 1, "records": [{"name": "elyra", "kind": "domain", "target": "com", "status": "maybe"}]}`), 0o600); err != nil {
			t.Fatal(err)
		}
		output := filepath.Join(dir, "report.md")
		if err := os.WriteFile(output, []byte("previous report\n"), 0o600); err != nil {
			t.Fatal(err)
		}

		if err := runReport(nil, exportPath, "markdown", output); err == nil {
			t.Fatal("expected an error")
		}
		content, err := os.ReadFile(output)
		if err != nil {
			t.Fatal(err)
		}
		if string(content) != "previous report\n" {
			t.Errorf("expected output to be untouched, got %q", content)
		}
	})

	t.Run("unsupported format fails before reading", func(t *testing.T) {
		t.Parallel()
		output := filepath.Join(t.TempDir(), "report.xml")
		err := runReport(nil, filepath.Join(t.TempDir(), "missing.json"), "xml", output)
		if !errors.Is(err, report.ErrUnsupportedFormat) {
			t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
		}
		if exitCode(err) != exitInvalidInput {
			t.Errorf("expected exit code %d, got %d", exitInvalidInput, exitCode(err))
		}
	})

	t.Run("missing export is an input error", func(t *testing.T) {
		t.Parallel()
		err := runReport(nil, filepath.Join(t.TempDir(), "missing.json"), "text", "")
		if !errors.Is(err, export.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if exitCode(err) != exitInvalidInput {
			t.Errorf("expected exit code %d, got %d", exitInvalidInput, exitCode(err))
		}
	})
}
