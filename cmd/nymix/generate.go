package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/nymix/internal/checker"
	"github.com/nao1215/nymix/internal/config"
	"github.com/nao1215/nymix/internal/fileutil"
	"github.com/nao1215/nymix/internal/generator"
	"github.com/nao1215/nymix/internal/wordlist"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate candidate names from word themes",
		Long: `Generate draws unique candidate names from themed word lists.

Words of the selected themes are combined with themselves in pairs (or used
alone) and filtered by length and blacklist. Without --theme every theme is
used. When fewer unique names exist than requested, all of them are printed
and the shortfall is reported.

Examples:
  # Five names from the tech theme
  nymix generate --theme tech --count 5

  # Portmanteaus from two themes, title case, reproducible
  nymix generate -t nature -t myth --style blend --case title --seed 42

  # Skip names containing any word listed in a file
  nymix generate -t tech --blacklist-file banned.txt

  # Save the names for "nymix check --names-file"
  nymix generate -t latin -n 30 -o names.txt

Run "nymix themes" to list the available themes.`,
		Args: cobra.NoArgs,
		RunE: runGenerateCmd,
	}

	cmd.Flags().StringSliceP("theme", "t", nil, "Theme to draw words from (repeatable, default: all)")
	cmd.Flags().IntP("count", "n", config.DefaultCount, "Number of names to generate")
	cmd.Flags().Int("min", config.DefaultMinLength, "Minimum name length")
	cmd.Flags().Int("max", config.DefaultMaxLength, "Maximum name length")
	cmd.Flags().String("style", string(generator.StyleConcat), "Composition style: concat or blend")
	cmd.Flags().String("case", string(generator.CaseLower), "Name casing: lower, title or upper")
	cmd.Flags().Bool("hyphen", false, "Also produce hyphenated pairs (concat style)")
	cmd.Flags().StringSlice("blacklist", nil, "Substring a name must not contain (repeatable)")
	cmd.Flags().String("blacklist-file", "", "File of blacklist substrings, one per line (added to --blacklist)")
	cmd.Flags().Uint64("seed", 0, "Random seed for a reproducible draw (0: random)")
	cmd.Flags().StringP("output", "o", "", "Also write the names to this file, one per line")

	return cmd
}

// runGenerateCmd executes the generate command.
func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cmd, cfg.Verbose)

	req, err := buildGenerateRequest(cmd, cfg)
	if err != nil {
		return err
	}

	reg, err := wordlist.NewRegistry(cfg.File.Themes)
	if err != nil {
		return usageErrorf("invalid theme configuration: %w", err)
	}

	res, err := generator.Generate(reg, req)
	if err != nil {
		return err
	}
	logger.Debug("names generated",
		"requested", res.Requested,
		"space", res.Space,
		"seed", res.Seed,
	)

	printNames(cmd.OutOrStdout(), res.Names)
	if res.Shortfall > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(),
			"Warning: only %d unique name(s) exist for these settings; %d fewer than requested\n",
			len(res.Names), res.Shortfall)
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if output != "" {
		content := strings.Join(res.Names, "\n") + "\n"
		if err := fileutil.WriteFileAtomic(output, []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write names: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Names written to %s\n", output)
	}
	return nil
}

// buildGenerateRequest merges configuration defaults with the flags the
// user actually set.
func buildGenerateRequest(cmd *cobra.Command, cfg *config.Config) (generator.Request, error) {
	flags := cmd.Flags()
	count, minLen, maxLen := cfg.Count, cfg.MinLength, cfg.MaxLength
	styleName, caseName := cfg.Style, cfg.Case
	blacklist := cfg.Blacklist

	var err error
	if flags.Changed("count") {
		if count, err = flags.GetInt("count"); err != nil {
			return generator.Request{}, err
		}
	}
	if flags.Changed("min") {
		if minLen, err = flags.GetInt("min"); err != nil {
			return generator.Request{}, err
		}
	}
	if flags.Changed("max") {
		if maxLen, err = flags.GetInt("max"); err != nil {
			return generator.Request{}, err
		}
	}
	if flags.Changed("style") {
		if styleName, err = flags.GetString("style"); err != nil {
			return generator.Request{}, err
		}
	}
	if flags.Changed("case") {
		if caseName, err = flags.GetString("case"); err != nil {
			return generator.Request{}, err
		}
	}
	if flags.Changed("blacklist") {
		if blacklist, err = flags.GetStringSlice("blacklist"); err != nil {
			return generator.Request{}, err
		}
	}

	blacklistFile, err := flags.GetString("blacklist-file")
	if err != nil {
		return generator.Request{}, err
	}
	if blacklistFile != "" {
		entries, err := checker.ReadList(blacklistFile)
		if err != nil {
			return generator.Request{}, fmt.Errorf("blacklist: %w", err)
		}
		blacklist = append(append([]string{}, blacklist...), entries...)
	}

	style, err := generator.ParseStyle(styleName)
	if err != nil {
		return generator.Request{}, err
	}
	nameCase, err := generator.ParseCase(caseName)
	if err != nil {
		return generator.Request{}, err
	}
	themes, err := flags.GetStringSlice("theme")
	if err != nil {
		return generator.Request{}, err
	}
	hyphen, err := flags.GetBool("hyphen")
	if err != nil {
		return generator.Request{}, err
	}
	seed, err := flags.GetUint64("seed")
	if err != nil {
		return generator.Request{}, err
	}

	return generator.Request{
		Themes:      themes,
		Count:       count,
		MinLength:   minLen,
		MaxLength:   maxLen,
		Style:       style,
		Case:        nameCase,
		AllowHyphen: hyphen,
		Blacklist:   blacklist,
		Seed:        seed,
	}, nil
}

// printNames prints one name per line.
func printNames(w io.Writer, names []string) {
	for _, n := range names {
		fmt.Fprintln(w, n)
	}
}
