package search

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

// TestSystemLauncherOutlivesContext tests that the URL opener keeps running
// after the context of the launching command is cancelled.
func TestSystemLauncherOutlivesContext(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("fake xdg-open is a POSIX shell script")
	}

	dir := t.TempDir()
	marker := filepath.Join(dir, "opened")
	script := "#!/bin/sh\nsleep 0.2\necho \"$1\" > " + marker + "\n"
	if err := os.WriteFile(filepath.Join(dir, "xdg-open"), []byte(script), 0o755); err != nil { //nolint:gosec // Test script must be executable
		t.Fatal(err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	ctx, cancel := context.WithCancel(context.Background())
	if err := (SystemLauncher{}).Launch(ctx, "https://example.com/?q=elyra"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cancel()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		content, err := os.ReadFile(marker)
		if err == nil {
			if string(content) != "https://example.com/?q=elyra\n" {
				t.Errorf("unexpected url handed to opener: %q", content)
			}
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("url opener did not complete after the context was cancelled")
}

// TestSystemLauncherCancelledBeforeStart tests that nothing is started for
// an already cancelled context.
func TestSystemLauncherCancelledBeforeStart(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := (SystemLauncher{}).Launch(ctx, "https://example.com"); err == nil {
		t.Error("expected an error for a cancelled context")
	}
}
