package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/nymix/internal/wordlist"
)

// NewThemesCmd creates the themes command.
func NewThemesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List the word themes available to generate",
		Long: `Themes lists every word theme with its word count and where it comes from:
"builtin" themes ship with nymix, "config" themes are defined in the
configuration file.

Examples:
  nymix themes
  nymix themes --words`,
		Args: cobra.NoArgs,
		RunE: runThemesCmd,
	}

	cmd.Flags().Bool("words", false, "Also print the words of every theme")

	return cmd
}

// runThemesCmd executes the themes command.
func runThemesCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	setupLogger(cmd, cfg.Verbose)

	withWords, err := cmd.Flags().GetBool("words")
	if err != nil {
		return err
	}

	reg, err := wordlist.NewRegistry(cfg.File.Themes)
	if err != nil {
		return usageErrorf("invalid theme configuration: %w", err)
	}
	printThemes(cmd.OutOrStdout(), reg, withWords)
	return nil
}

// printThemes writes one line per theme, sorted by name.
func printThemes(w io.Writer, reg *wordlist.Registry, withWords bool) {
	for _, t := range reg.Themes() {
		fmt.Fprintf(w, "%-12s %4d words  (%s)\n", t.Name, len(t.Words), t.Source)
		if withWords {
			fmt.Fprintf(w, "  %s\n", strings.Join(t.Words, ", "))
		}
	}
}
