package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nao1215/nymix/internal/fileutil"
	"github.com/nao1215/nymix/internal/model"
)

// ErrUnsupportedFormat is returned for an unknown report format.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// Writer defines the interface for report output.
// Implementations write result sets in various formats.
type Writer interface {
	// Write outputs the result set to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(rs *model.ResultSet) (int, error)
}

// Format is a report output format.
type Format string

const (
	// FormatMarkdown renders a Markdown document.
	FormatMarkdown Format = "markdown"
	// FormatCSV renders comma-separated rows.
	FormatCSV Format = "csv"
	// FormatTSV renders tab-separated rows.
	FormatTSV Format = "tsv"
	// FormatJSON renders the canonical result set.
	FormatJSON Format = "json"
	// FormatText renders the terminal layout.
	FormatText Format = "text"
)

// Formats returns the supported formats.
func Formats() []Format {
	return []Format{FormatMarkdown, FormatCSV, FormatTSV, FormatJSON, FormatText}
}

// FormatNames returns the supported format names joined for help and error text.
func FormatNames() string {
	names := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// ParseFormat parses a format name. "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "csv":
		return FormatCSV, nil
	case "tsv":
		return FormatTSV, nil
	case "json":
		return FormatJSON, nil
	case "text", "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, s, FormatNames())
	}
}

// NewWriter returns the writer for format.
func NewWriter(format Format, output io.Writer) (Writer, error) {
	switch format {
	case FormatMarkdown:
		return NewMarkdownWriter(output), nil
	case FormatCSV:
		return NewDelimitedWriter(output, ','), nil
	case FormatTSV:
		return NewDelimitedWriter(output, '\t'), nil
	case FormatJSON:
		return NewJSONWriter(output), nil
	case FormatText:
		return NewTextWriter(output), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Render renders rs in format into memory.
func Render(rs *model.ResultSet, format Format) ([]byte, error) {
	var buf bytes.Buffer
	w, err := NewWriter(format, &buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(rs); err != nil {
		return nil, fmt.Errorf("failed to render %s report: %w", format, err)
	}
	return buf.Bytes(), nil
}

// WriteFile renders rs and atomically replaces path with the result.
// Nothing is written when rendering fails.
func WriteFile(path string, rs *model.ResultSet, format Format) error {
	data, err := Render(rs, format)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Output renders rs to path, or to stdout when path is empty or "-".
func Output(path string, rs *model.ResultSet, format Format, stdout io.Writer) error {
	if path == "" || path == "-" {
		data, err := Render(rs, format)
		if err != nil {
			return err
		}
		if stdout == nil {
			stdout = os.Stdout
		}
		_, err = stdout.Write(data)
		return err
	}
	return WriteFile(path, rs, format)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// cell returns the record of target within a name group.
func cell(group model.Group, target model.Target) (model.Record, bool) {
	for _, r := range group.Records {
		if r.TargetRef() == target {
			return r, true
		}
	}
	return model.Record{}, false
}
