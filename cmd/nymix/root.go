package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for nymix.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nymix",
		Short: "Brand name generator and availability checker",
		Long: `nymix generates brand-name candidates from themed word lists and checks
whether they are still free as domain names and social media handles.

Typical workflow:
  1. nymix generate    draw candidate names from word themes
  2. nymix check       look the chosen names up and export the result
  3. nymix report      render the export as Markdown, CSV, TSV, JSON or text
  4. nymix search      open a trademark registry search for a finalist

Settings are read from .nymix (see "nymix init"), NYMIX_* environment
variables and flags, in increasing order of precedence.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .nymix in current or home directory)")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	// Add subcommands
	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewReportCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewThemesCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return exitCode(err)
	}
	return exitOK
}
