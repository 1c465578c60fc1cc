package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nao1215/nymix/internal/search"
)

// searchInput holds the resolved inputs of the search command.
type searchInput struct {
	name       string
	registries []string
	all        bool
	noOpen     bool
}

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <name>",
		Short: "Open a trademark registry search for a name",
		Long: `Search builds the trademark search URL of a registry for the given name,
prints it and opens it in the default browser.

Built-in registries: wipo (default), uspto, euipo and inpi. The INPI search
form does not accept the name in the URL, so the name has to be typed in.
More registries can be added in the "search.registries" section of the
configuration file.

Examples:
  # Search the WIPO Global Brand Database
  nymix search elyra

  # Search the USPTO and only print the URL
  nymix search elyra -r uspto --no-open

  # Open every known registry
  nymix search elyra --all

A browser that fails to start is reported as a warning; the URL is printed
either way.`,
		Args: cobra.ExactArgs(1),
		RunE: runSearchCmd,
	}

	cmd.Flags().StringSliceP("registry", "r", nil, "Registry to search (repeatable, default: configured registry)")
	cmd.Flags().Bool("all", false, "Search every known registry")
	cmd.Flags().Bool("no-open", false, "Only print the URL, do not open a browser")

	return cmd
}

// runSearchCmd executes the search command.
func runSearchCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cmd, cfg.Verbose)

	input := &searchInput{name: args[0]}
	if input.registries, err = cmd.Flags().GetStringSlice("registry"); err != nil {
		return err
	}
	if input.all, err = cmd.Flags().GetBool("all"); err != nil {
		return err
	}
	if input.noOpen, err = cmd.Flags().GetBool("no-open"); err != nil {
		return err
	}
	if len(input.registries) == 0 {
		input.registries = []string{cfg.SearchRegistry}
	}

	registries, err := search.NewRegistries(cfg.File.Search.Registries)
	if err != nil {
		return usageErrorf("invalid registry configuration: %w", err)
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	return runSearch(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), registries, search.NewOpener(nil, logger), input)
}

// runSearch prints the search URL of every selected registry and opens it
// unless disabled. Browser failures are warnings.
func runSearch(ctx context.Context, out, errOut io.Writer, registries *search.Registries, opener *search.Opener, input *searchInput) error {
	names := input.registries
	if input.all {
		names = registries.Names()
	}

	selected := make([]search.Registry, 0, len(names))
	for _, name := range names {
		reg, err := registries.Get(name)
		if err != nil {
			return err
		}
		selected = append(selected, reg)
	}

	for _, reg := range selected {
		u, err := reg.URL(input.name)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: %s\n", reg.Name, u)
		if !reg.AcceptsName() {
			fmt.Fprintf(errOut, "Note: %s does not take the name in the URL; search for %q on the page\n", reg.Name, input.name)
		}
		if input.noOpen {
			continue
		}
		if err := opener.Open(ctx, u); err != nil {
			fmt.Fprintf(errOut, "Warning: could not open a browser for %s: %v\n", reg.Name, err)
		}
	}
	return nil
}
