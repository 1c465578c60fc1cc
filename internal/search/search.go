package search

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// namePlaceholder is replaced by the query-escaped name in URL templates.
const namePlaceholder = "{name}"

var (
	// ErrEmptyName is returned when no name is given.
	ErrEmptyName = errors.New("name must not be empty")

	// ErrInvalidTemplate is returned for templates that do not yield an
	// absolute http(s) URL.
	ErrInvalidTemplate = errors.New("invalid search URL template")

	// ErrUnknownRegistry is returned for a registry missing from the set.
	ErrUnknownRegistry = errors.New("unknown trademark registry")
)

// builtinRegistries are the registries known without configuration.
// INPI has no query URL, so its template opens the basic search form.
var builtinRegistries = map[string]string{
	"wipo":  "https://branddb.wipo.int/en/similarname/results?sort=score%20desc&strategy=concept&brandName={name}",
	"uspto": "https://tmsearch.uspto.gov/search/search-results?query={name}",
	"euipo": "https://euipo.europa.eu/eSearch/#basic/1+1+1+1/100+100+100+100/{name}",
	"inpi":  "https://busca.inpi.gov.br/pePI/jsp/marcas/Pesquisa_classe_basica.jsp",
}

// BuildURL substitutes the query-escaped name into template and checks that
// the result is an absolute http(s) URL. A template without {name} is
// returned unchanged after validation.
func BuildURL(template, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}

	raw := strings.ReplaceAll(template, namePlaceholder, url.QueryEscape(name))
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidTemplate, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q is not an absolute http(s) URL", ErrInvalidTemplate, template)
	}
	return raw, nil
}

// Registry is a trademark search endpoint.
type Registry struct {
	Name     string
	Template string
}

// AcceptsName reports whether the template carries the name in the URL.
func (r Registry) AcceptsName() bool {
	return strings.Contains(r.Template, namePlaceholder)
}

// URL returns the search URL for name.
func (r Registry) URL(name string) (string, error) {
	return BuildURL(r.Template, name)
}

// Registries is an immutable set of trademark registries.
type Registries struct {
	byName map[string]Registry
}

// NewRegistries builds the registry set from the built-in registries and
// extra name-to-template entries. Extra entries replace built-ins.
func NewRegistries(extra map[string]string) (*Registries, error) {
	r := &Registries{byName: make(map[string]Registry, len(builtinRegistries)+len(extra))}
	for name, tmpl := range builtinRegistries {
		r.byName[name] = Registry{Name: name, Template: tmpl}
	}
	for name, tmpl := range extra {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			return nil, fmt.Errorf("%w: empty registry name", ErrInvalidTemplate)
		}
		if _, err := BuildURL(tmpl, "sample"); err != nil {
			return nil, fmt.Errorf("registry %s: %w", key, err)
		}
		r.byName[key] = Registry{Name: key, Template: tmpl}
	}
	return r, nil
}

// Get returns the named registry.
func (r *Registries) Get(name string) (Registry, error) {
	reg, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Registry{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownRegistry, name, strings.Join(r.Names(), ", "))
	}
	return reg, nil
}

// Names returns the sorted registry names.
func (r *Registries) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
