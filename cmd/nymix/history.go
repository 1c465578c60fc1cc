package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/nymix/internal/database"
	"github.com/nao1215/nymix/internal/export"
	"github.com/nao1215/nymix/internal/report"
)

// historyInput holds the flags of the history command.
type historyInput struct {
	show       string
	exportID   string
	output     string
	name       string
	deleteID   string
	limit      int
	formatName string
}

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List and re-render past check runs",
		Long: `History works with the runs stored by "nymix check" in the local history
database (~/.local/share/nymix/nymix.db on Linux).

Run IDs may be abbreviated to any unique prefix.

Examples:
  # List the latest runs
  nymix history

  # Render a stored run as Markdown
  nymix history --show 3f2a -f markdown

  # Re-export a stored run for "nymix report"
  nymix history --export 3f2a -o result.json

  # Every stored record of a name
  nymix history --name elyra

  # Remove a run
  nymix history --delete 3f2a`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().String("show", "", "Render the run with this ID")
	cmd.Flags().StringP("format", "f", string(report.FormatText), "Format for --show: "+report.FormatNames())
	cmd.Flags().String("export", "", "Write the run with this ID as an export file")
	cmd.Flags().StringP("output", "o", "", "Output file for --show or --export")
	cmd.Flags().String("name", "", "List every stored record of this name")
	cmd.Flags().String("delete", "", "Delete the run with this ID")
	cmd.Flags().IntP("limit", "n", 20, "Number of runs to list (0: all)")

	cmd.MarkFlagsMutuallyExclusive("show", "export", "name", "delete")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cmd, cfg.Verbose)

	flags := cmd.Flags()
	input := &historyInput{}
	if input.show, err = flags.GetString("show"); err != nil {
		return err
	}
	if input.exportID, err = flags.GetString("export"); err != nil {
		return err
	}
	if input.output, err = flags.GetString("output"); err != nil {
		return err
	}
	if input.name, err = flags.GetString("name"); err != nil {
		return err
	}
	if input.deleteID, err = flags.GetString("delete"); err != nil {
		return err
	}
	if input.limit, err = flags.GetInt("limit"); err != nil {
		return err
	}
	if input.formatName, err = flags.GetString("format"); err != nil {
		return err
	}
	if input.exportID != "" && input.output == "" {
		return usageErrorf("--export requires --output")
	}

	db, err := database.Open(cfg.HistoryDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Warn("failed to close history database", "error", cerr)
		}
	}()

	ctx, cancel := signalContext(logger)
	defer cancel()

	return runHistory(ctx, cmd.OutOrStdout(), db, input)
}

// runHistory dispatches to the selected history action.
func runHistory(ctx context.Context, out io.Writer, db *database.HistoryDB, input *historyInput) error {
	switch {
	case input.show != "":
		format, err := report.ParseFormat(input.formatName)
		if err != nil {
			return err
		}
		rs, err := db.GetResultSet(ctx, input.show)
		if err != nil {
			return err
		}
		return report.Output(input.output, rs, format, out)

	case input.exportID != "":
		rs, err := db.GetResultSet(ctx, input.exportID)
		if err != nil {
			return err
		}
		if err := export.Write(input.output, rs); err != nil {
			return fmt.Errorf("failed to export run: %w", err)
		}
		fmt.Fprintf(out, "Run %s exported to %s\n", rs.ID, input.output)
		return nil

	case input.name != "":
		records, err := db.NameHistory(ctx, input.name)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Fprintf(out, "No stored records for %q\n", input.name)
			return nil
		}
		for _, r := range records {
			line := fmt.Sprintf("%s  %-12s %-9s", r.CheckedAt.Format("2006-01-02 15:04"), r.TargetRef().Label(), r.Status)
			if r.Detail != "" {
				line += "  " + r.Detail
			}
			fmt.Fprintln(out, line)
		}
		return nil

	case input.deleteID != "":
		rs, err := db.GetResultSet(ctx, input.deleteID)
		if err != nil {
			return err
		}
		if err := db.DeleteRun(ctx, rs.ID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Run %s deleted\n", rs.ID)
		return nil
	}

	runs, err := db.ListRuns(ctx, input.limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs stored yet. Run \"nymix check\" to record one.")
		return nil
	}
	for _, run := range runs {
		fmt.Fprintf(out, "%s  %s  names: %s  targets: %s  available: %d  taken: %d  unknown: %d\n",
			shortID(run.ID),
			run.CreatedAt.Local().Format("2006-01-02 15:04"),
			strings.Join(run.Names, ","),
			strings.Join(run.Targets, ","),
			run.Summary.Available,
			run.Summary.Taken,
			run.Summary.Unknown,
		)
	}
	return nil
}

// shortID abbreviates a run ID for listings.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
