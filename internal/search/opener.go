package search

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
)

// Launcher hands a URL to something that can display it.
type Launcher interface {
	Launch(ctx context.Context, url string) error
}

// SystemLauncher opens URLs with the operating system's default handler.
type SystemLauncher struct{}

// Launch starts the platform URL opener without waiting for it. The opener
// is not bound to ctx: it has to outlive the command that started it.
func (SystemLauncher) Launch(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name, args := openCommand(runtime.GOOS, url)
	cmd := exec.Command(name, args...) //nolint:gosec,noctx // URL is built and validated by BuildURL
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	go func() {
		_ = cmd.Wait() //nolint:errcheck // Fire and forget
	}()
	return nil
}

// openCommand returns the command that opens url on goos.
func openCommand(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}

// Opener opens search URLs. Launch failures are logged and returned so the
// caller can print a warning; they are never fatal.
type Opener struct {
	launcher Launcher
	logger   *slog.Logger
}

// NewOpener creates an Opener. A nil launcher uses SystemLauncher.
func NewOpener(launcher Launcher, logger *slog.Logger) *Opener {
	if launcher == nil {
		launcher = SystemLauncher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Opener{launcher: launcher, logger: logger}
}

// Open hands url to the launcher.
func (o *Opener) Open(ctx context.Context, url string) error {
	if err := o.launcher.Launch(ctx, url); err != nil {
		o.logger.Warn("failed to open browser", "url", url, "error", err)
		return err
	}
	o.logger.Debug("browser launched", "url", url)
	return nil
}
