package wordlist

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed themes.yaml
var builtinThemes []byte

var (
	// ErrUnknownTheme is returned when a requested theme is not registered.
	ErrUnknownTheme = errors.New("unknown theme")

	// ErrEmptyTheme is returned when a theme has no usable words.
	ErrEmptyTheme = errors.New("theme has no words")
)

// Source tells where a theme was defined.
type Source string

const (
	// SourceBuiltin themes are embedded in the binary.
	SourceBuiltin Source = "builtin"

	// SourceConfig themes come from the configuration file.
	SourceConfig Source = "config"
)

// Theme is a named list of candidate words.
type Theme struct {
	Name   string
	Words  []string
	Source Source
}

// Registry holds every known theme. It is safe for concurrent reads.
type Registry struct {
	themes map[string]Theme
}

// NewRegistry builds a registry from the built-in themes and the given
// extra themes. Extra themes replace built-in themes of the same name.
// Theme names are case-insensitive; words are trimmed and de-duplicated.
func NewRegistry(extra map[string][]string) (*Registry, error) {
	var builtin map[string][]string
	if err := yaml.Unmarshal(builtinThemes, &builtin); err != nil {
		return nil, fmt.Errorf("failed to parse built-in themes: %w", err)
	}

	r := &Registry{themes: make(map[string]Theme, len(builtin)+len(extra))}
	for name, words := range builtin {
		if err := r.add(name, words, SourceBuiltin); err != nil {
			return nil, err
		}
	}
	for name, words := range extra {
		if err := r.add(name, words, SourceConfig); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// add normalizes and stores a theme.
func (r *Registry) add(name string, words []string, source Source) error {
	key := strings.ToLower(strings.TrimSpace(name))
	seen := make(map[string]bool, len(words))
	clean := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" || seen[strings.ToLower(w)] {
			continue
		}
		seen[strings.ToLower(w)] = true
		clean = append(clean, w)
	}
	if len(clean) == 0 {
		return fmt.Errorf("%w: %q", ErrEmptyTheme, name)
	}
	r.themes[key] = Theme{Name: key, Words: clean, Source: source}
	return nil
}

// Get returns the theme with the given name.
func (r *Registry) Get(name string) (Theme, error) {
	t, ok := r.themes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Theme{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownTheme, name, strings.Join(r.Names(), ", "))
	}
	return t, nil
}

// Names returns the sorted theme names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.themes))
	for name := range r.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Themes returns every theme sorted by name.
func (r *Registry) Themes() []Theme {
	names := r.Names()
	themes := make([]Theme, len(names))
	for i, name := range names {
		themes[i] = r.themes[name]
	}
	return themes
}

// Words returns the union of the words of the named themes, in theme order
// and without duplicates. No names selects every theme.
func (r *Registry) Words(names ...string) ([]string, error) {
	if len(names) == 0 {
		names = r.Names()
	}

	seen := make(map[string]bool)
	words := make([]string, 0)
	for _, name := range names {
		t, err := r.Get(name)
		if err != nil {
			return nil, err
		}
		for _, w := range t.Words {
			key := strings.ToLower(w)
			if seen[key] {
				continue
			}
			seen[key] = true
			words = append(words, w)
		}
	}
	return words, nil
}
