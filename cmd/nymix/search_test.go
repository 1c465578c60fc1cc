package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/nao1215/nymix/internal/search"
)

// recordingLauncher records launched URLs and optionally fails.
type recordingLauncher struct {
	mu   sync.Mutex
	urls []string
	err  error
}

func (l *recordingLauncher) Launch(_ context.Context, url string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.urls = append(l.urls, url)
	return l.err
}

// TestRunSearch tests URL construction and browser launching.
func TestRunSearch(t *testing.T) {
	t.Parallel()

	registries, err := search.NewRegistries(map[string]string{
		"local": "https://tm.example.com/search?q={name}",
	})
	if err != nil {
		t.Fatalf("failed to build registries: %v", err)
	}

	t.Run("prints and opens the url", func(t *testing.T) {
		t.Parallel()
		launcher := &recordingLauncher{}
		var out, errOut bytes.Buffer

		input := &searchInput{name: "elyra labs", registries: []string{"local"}}
		if err := runSearch(context.Background(), &out, &errOut, registries, search.NewOpener(launcher, discardLogger()), input); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := "https://tm.example.com/search?q=elyra+labs"
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected %q in output, got %q", want, out.String())
		}
		if len(launcher.urls) != 1 || launcher.urls[0] != want {
			t.Errorf("expected launcher to open %q, got %v", want, launcher.urls)
		}
	})

	t.Run("no-open only prints", func(t *testing.T) {
		t.Parallel()
		launcher := &recordingLauncher{}
		var out bytes.Buffer

		input := &searchInput{name: "elyra", registries: []string{"wipo"}, noOpen: true}
		if err := runSearch(context.Background(), &out, &bytes.Buffer{}, registries, search.NewOpener(launcher, discardLogger()), input); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out.String(), "brandName=elyra") {
			t.Errorf("expected wipo url, got %q", out.String())
		}
		if len(launcher.urls) != 0 {
			t.Errorf("expected no browser launch, got %v", launcher.urls)
		}
	})

	t.Run("browser failure is a warning", func(t *testing.T) {
		t.Parallel()
		launcher := &recordingLauncher{err: errors.New("xdg-open: not found")}
		var errOut bytes.Buffer

		input := &searchInput{name: "elyra", registries: []string{"uspto"}}
		if err := runSearch(context.Background(), &bytes.Buffer{}, &errOut, registries, search.NewOpener(launcher, discardLogger()), input); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(errOut.String(), "Warning") {
			t.Errorf("expected a warning, got %q", errOut.String())
		}
	})

	t.Run("all opens every registry", func(t *testing.T) {
		t.Parallel()
		launcher := &recordingLauncher{}
		var errOut bytes.Buffer

		input := &searchInput{name: "elyra", all: true}
		if err := runSearch(context.Background(), &bytes.Buffer{}, &errOut, registries, search.NewOpener(launcher, discardLogger()), input); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(launcher.urls) != len(registries.Names()) {
			t.Errorf("expected %d launches, got %d", len(registries.Names()), len(launcher.urls))
		}
		if !strings.Contains(errOut.String(), "inpi does not take the name") {
			t.Errorf("expected a note for inpi, got %q", errOut.String())
		}
	})

	t.Run("unknown registry is an input error", func(t *testing.T) {
		t.Parallel()
		input := &searchInput{name: "elyra", registries: []string{"nowhere"}}
		err := runSearch(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, registries, search.NewOpener(&recordingLauncher{}, discardLogger()), input)
		if !errors.Is(err, search.ErrUnknownRegistry) {
			t.Fatalf("expected ErrUnknownRegistry, got %v", err)
		}
		if exitCode(err) != exitInvalidInput {
			t.Errorf("expected exit code %d, got %d", exitInvalidInput, exitCode(err))
		}
	})

	t.Run("blank name is an input error", func(t *testing.T) {
		t.Parallel()
		input := &searchInput{name: "  ", registries: []string{"wipo"}, noOpen: true}
		err := runSearch(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, registries, search.NewOpener(&recordingLauncher{}, discardLogger()), input)
		if !errors.Is(err, search.ErrEmptyName) {
			t.Fatalf("expected ErrEmptyName, got %v", err)
		}
	})
}
