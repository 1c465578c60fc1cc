package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nao1215/nymix/internal/checker"
	"github.com/nao1215/nymix/internal/config"
	"github.com/nao1215/nymix/internal/database"
	"github.com/nao1215/nymix/internal/export"
	"github.com/nao1215/nymix/internal/model"
	"github.com/nao1215/nymix/internal/report"
)

// checkInput holds the resolved inputs of a check run.
type checkInput struct {
	names      []string
	tlds       []string
	handles    []string
	exportPath string
	format     report.Format
	outputPath string
}

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [name...]",
		Short: "Check whether names are free as domains and social handles",
		Long: `Check looks up every name against every target and prints one record per
(name, target) pair with the status available, taken or unknown.

Domains are checked with a DNS NS lookup and, with --whois, confirmed with a
WHOIS query. Handles are checked by requesting the public profile page of
each platform. A failing lookup never aborts the run: it is reported as
unknown together with the error.

Examples:
  # One name, one TLD
  nymix check elyra --tld com

  # Names and TLDs from list files, plus handles
  nymix check --names-file names.txt --tlds-file tlds.txt -H instagram -H github

  # Export the result for "nymix report"
  nymix check elyra lumora -t com -t io -e result.json

  # Route requests and WHOIS through a SOCKS5 proxy
  nymix check elyra -t com --whois --proxy 127.0.0.1:9050

List files hold one entry per line; blank lines and lines starting with #
are ignored. Without --tld or --handle the defaults of the configuration
file are used.`,
		Args: cobra.ArbitraryArgs,
		RunE: runCheckCmd,
	}

	// Input flags
	cmd.Flags().StringSlice("name", nil, "Name to check (repeatable)")
	cmd.Flags().String("names-file", "", "File with one name per line")
	cmd.Flags().StringSliceP("tld", "t", nil, "Top-level domain to check, e.g. com or .io (repeatable)")
	cmd.Flags().String("tlds-file", "", "File with one TLD per line")
	cmd.Flags().StringSliceP("handle", "H", nil, "Platform to check the handle on, e.g. instagram (repeatable)")

	// Lookup behavior flags
	cmd.Flags().Duration("timeout", config.DefaultTimeout, "Timeout of each lookup")
	cmd.Flags().IntP("concurrency", "j", config.DefaultConcurrency, "Number of concurrent lookups")
	cmd.Flags().Bool("whois", false, "Confirm free domains with a WHOIS query")
	cmd.Flags().String("resolver", "", "DNS server to use (host:port, default: system resolver)")
	cmd.Flags().String("proxy", "", "SOCKS5 proxy for profile requests and WHOIS (host:port)")

	// Output flags
	cmd.Flags().StringP("export", "e", "", "Write the result set to this JSON file")
	cmd.Flags().StringP("format", "f", string(report.FormatText), "Output format: "+report.FormatNames())
	cmd.Flags().StringP("output", "o", "", "Write the rendered result to this file instead of stdout")
	cmd.Flags().Bool("no-history", false, "Do not save the run to the history database")

	return cmd
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyCheckFlags(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return usageErrorf("configuration error: %w", err)
	}

	input, err := buildCheckInput(cmd, args, cfg)
	if err != nil {
		return err
	}

	logger := setupLogger(cmd, cfg.Verbose)
	ctx, cancel := signalContext(logger)
	defer cancel()

	return runCheck(ctx, cmd.OutOrStdout(), cfg, input, logger)
}

// applyCheckFlags overrides configuration values with the flags the user set.
func applyCheckFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error

	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return err
		}
	}
	if flags.Changed("concurrency") {
		if cfg.Concurrency, err = flags.GetInt("concurrency"); err != nil {
			return err
		}
	}
	if flags.Changed("whois") {
		if cfg.WhoisConfirm, err = flags.GetBool("whois"); err != nil {
			return err
		}
	}
	if flags.Changed("resolver") {
		if cfg.Resolver, err = flags.GetString("resolver"); err != nil {
			return err
		}
	}
	if flags.Changed("proxy") {
		if cfg.Proxy, err = flags.GetString("proxy"); err != nil {
			return err
		}
	}
	noHistory, err := flags.GetBool("no-history")
	if err != nil {
		return err
	}
	if noHistory {
		cfg.SaveHistory = false
	}
	return nil
}

// buildCheckInput merges names and targets from arguments, flags, list
// files and configuration defaults.
func buildCheckInput(cmd *cobra.Command, args []string, cfg *config.Config) (*checkInput, error) {
	flags := cmd.Flags()

	nameFlags, err := flags.GetStringSlice("name")
	if err != nil {
		return nil, err
	}
	namesFile, err := flags.GetString("names-file")
	if err != nil {
		return nil, err
	}
	names, err := checker.MergeInputs(append(append([]string{}, args...), nameFlags...), namesFile)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, checker.ErrNoNames
	}

	tldFlags, err := flags.GetStringSlice("tld")
	if err != nil {
		return nil, err
	}
	tldsFile, err := flags.GetString("tlds-file")
	if err != nil {
		return nil, err
	}
	tlds, err := checker.MergeInputs(tldFlags, tldsFile)
	if err != nil {
		return nil, err
	}
	handles, err := flags.GetStringSlice("handle")
	if err != nil {
		return nil, err
	}
	if len(tlds) == 0 && len(handles) == 0 {
		tlds = cfg.DefaultTLDs
		handles = cfg.DefaultHandles
	}

	formatName, err := flags.GetString("format")
	if err != nil {
		return nil, err
	}
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}

	input := &checkInput{
		names:   names,
		tlds:    tlds,
		handles: handles,
		format:  format,
	}
	if input.exportPath, err = flags.GetString("export"); err != nil {
		return nil, err
	}
	if input.outputPath, err = flags.GetString("output"); err != nil {
		return nil, err
	}
	return input, nil
}

// runCheck performs the lookups, prints the result and stores it.
func runCheck(ctx context.Context, out io.Writer, cfg *config.Config, input *checkInput, logger *slog.Logger, extra ...checker.Option) error {
	platforms, err := checker.NewPlatforms(cfg.File.Platforms)
	if err != nil {
		return err
	}
	targets, err := checker.Targets(input.tlds, input.handles, platforms)
	if err != nil {
		return err
	}

	opts := []checker.Option{
		checker.WithLogger(logger),
		checker.WithProgress(func(done, total int, r model.Record) {
			logger.Debug("lookup finished",
				"progress", fmt.Sprintf("%d/%d", done, total),
				"name", r.Name,
				"target", r.TargetRef().Label(),
				"status", r.Status,
			)
		}),
	}
	c, err := checker.New(cfg, platforms, append(opts, extra...)...)
	if err != nil {
		return usageErrorf("failed to set up checker: %w", err)
	}

	rs := c.Check(ctx, input.names, targets)

	if input.exportPath != "" {
		if err := export.Write(input.exportPath, rs); err != nil {
			return fmt.Errorf("failed to export result: %w", err)
		}
		logger.Info("result exported", "path", input.exportPath)
	}

	if cfg.SaveHistory {
		saveHistory(ctx, cfg.HistoryDir, rs, logger)
	}

	if err := report.Output(input.outputPath, rs, input.format, out); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return ctx.Err()
}

// saveHistory stores the run in the history database. Failures are logged
// and never fail the run.
func saveHistory(ctx context.Context, dir string, rs *model.ResultSet, logger *slog.Logger) {
	db, err := database.Open(dir, database.DefaultOptions())
	if err != nil {
		logger.Warn("failed to open history database", "error", err)
		return
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Warn("failed to close history database", "error", cerr)
		}
	}()

	if err := db.SaveResultSet(context.WithoutCancel(ctx), rs); err != nil {
		logger.Warn("failed to save run to history", "error", err)
		return
	}
	logger.Debug("run saved to history", "id", rs.ID, "path", db.Path())
}
