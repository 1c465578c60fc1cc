package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/nymix/internal/config"
	applog "github.com/nao1215/nymix/internal/log"
)

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	return getGlobalBool(cmd, "verbose")
}

// getGlobalBool reads a persistent boolean flag, falling back to false when
// the command runs without the root command.
func getGlobalBool(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetBool(name)
		if err != nil {
			return false
		}
	}
	return v
}

// getGlobalString reads a persistent string flag, falling back to "".
func getGlobalString(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetString(name)
		if err != nil {
			return ""
		}
	}
	return v
}

// loadConfig builds the configuration from the config file, the
// environment and the global flags. Command flags are applied by callers.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(getGlobalString(cmd, "config"))
	if err != nil {
		return nil, usageErrorf("failed to load configuration: %w", err)
	}
	cfg.Verbose = getVerboseFlag(cmd)
	return cfg, nil
}

// setupLogger creates the secure structured logger and installs it as the
// default logger.
func setupLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	var logger *slog.Logger
	if getGlobalBool(cmd, "log-json") {
		logger = applog.NewSecureJSONLogger(os.Stderr, verbose)
	} else {
		logger = applog.NewSecureLogger(os.Stderr, verbose)
	}
	slog.SetDefault(logger)
	return logger
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}
