package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nao1215/nymix/internal/export"
	"github.com/nao1215/nymix/internal/report"
)

// NewReportCmd creates the report command.
func NewReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <export-file>",
		Short: "Render an exported check result",
		Long: `Report reads a result file written by "nymix check --export" and renders it
in the chosen format. Records are listed grouped by name in the order they
were checked; nothing is looked up again.

Formats: markdown (md), csv, tsv, json and text.

Examples:
  # Markdown report to stdout
  nymix report result.json

  # CSV file for a spreadsheet
  nymix report result.json -f csv -o result.csv

A malformed or truncated export file stops the command before anything is
written, and the process exits with status 3.`,
		Args: cobra.ExactArgs(1),
		RunE: runReportCmd,
	}

	cmd.Flags().StringP("format", "f", string(report.FormatMarkdown), "Output format: "+report.FormatNames())
	cmd.Flags().StringP("output", "o", "", "Write the report to this file instead of stdout")

	return cmd
}

// runReportCmd executes the report command.
func runReportCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	setupLogger(cmd, cfg.Verbose)

	formatName, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	return runReport(cmd.OutOrStdout(), args[0], formatName, output)
}

// runReport validates the format before reading the export so that no
// output is produced for a bad invocation.
func runReport(out io.Writer, exportPath, formatName, output string) error {
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return err
	}
	rs, err := export.Read(exportPath)
	if err != nil {
		return err
	}
	if err := report.Output(output, rs, format, out); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}
