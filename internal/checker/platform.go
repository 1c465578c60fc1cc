package checker

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/nao1215/nymix/internal/config"
)

// handlePlaceholder is replaced by the escaped handle in profile URL templates.
const handlePlaceholder = "{handle}"

// defaultHandlePattern accepts handles most platforms allow.
const defaultHandlePattern = `^[a-z0-9._-]{1,30}$`

// builtinPlatforms are the platforms known without configuration.
var builtinPlatforms = map[string]config.PlatformConfig{
	"instagram": {
		URL:     "https://www.instagram.com/{handle}/",
		Pattern: `^[a-z0-9._]{1,30}$`,
	},
	"x": {
		URL:     "https://x.com/{handle}",
		Pattern: `^[a-z0-9_]{1,15}$`,
	},
	"tiktok": {
		URL:     "https://www.tiktok.com/@{handle}",
		Pattern: `^[a-z0-9._]{2,24}$`,
	},
	"github": {
		URL:     "https://github.com/{handle}",
		Pattern: `^[a-z0-9](?:[a-z0-9-]{0,38})$`,
	},
	"youtube": {
		URL:             "https://www.youtube.com/@{handle}",
		Pattern:         `^[a-z0-9._-]{3,30}$`,
		NotFoundMarkers: []string{"404 not found"},
	},
}

// Platform is a handle platform ready for probing.
type Platform struct {
	// Name is the platform identifier used as the record target.
	Name string

	// URLTemplate is the profile URL containing {handle}.
	URLTemplate string

	// Pattern validates sanitized handles.
	Pattern *regexp.Regexp

	// NotFoundMarkers are lower-cased page title substrings marking a soft 404.
	NotFoundMarkers []string
}

// ProfileURL returns the profile URL for a sanitized handle.
func (p Platform) ProfileURL(handle string) string {
	return strings.ReplaceAll(p.URLTemplate, handlePlaceholder, url.PathEscape(handle))
}

// Platforms is an immutable set of handle platforms.
type Platforms struct {
	byName map[string]Platform
}

// NewPlatforms builds the platform set from the built-in platforms and the
// given extra platforms. Extra platforms replace built-ins of the same name.
func NewPlatforms(extra map[string]config.PlatformConfig) (*Platforms, error) {
	p := &Platforms{byName: make(map[string]Platform, len(builtinPlatforms)+len(extra))}
	for name, pc := range builtinPlatforms {
		if err := p.add(name, pc); err != nil {
			return nil, err
		}
	}
	for name, pc := range extra {
		if err := p.add(name, pc); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// add validates and stores one platform.
func (p *Platforms) add(name string, pc config.PlatformConfig) error {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidPlatform)
	}
	if !strings.Contains(pc.URL, handlePlaceholder) {
		return fmt.Errorf("%w: %s: url must contain %s", ErrInvalidPlatform, key, handlePlaceholder)
	}
	u, err := url.Parse(strings.ReplaceAll(pc.URL, handlePlaceholder, "x"))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s: url must be an absolute http(s) URL", ErrInvalidPlatform, key)
	}

	pattern := pc.Pattern
	if pattern == "" {
		pattern = defaultHandlePattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidPlatform, key, err)
	}

	markers := make([]string, 0, len(pc.NotFoundMarkers))
	for _, m := range pc.NotFoundMarkers {
		if m = strings.ToLower(strings.TrimSpace(m)); m != "" {
			markers = append(markers, m)
		}
	}

	p.byName[key] = Platform{
		Name:            key,
		URLTemplate:     pc.URL,
		Pattern:         re,
		NotFoundMarkers: markers,
	}
	return nil
}

// Get returns the named platform.
func (p *Platforms) Get(name string) (Platform, error) {
	pl, ok := p.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Platform{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownPlatform, name, strings.Join(p.Names(), ", "))
	}
	return pl, nil
}

// Names returns the sorted platform names.
func (p *Platforms) Names() []string {
	names := make([]string, 0, len(p.byName))
	for name := range p.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Normalize validates platform names and returns their canonical form,
// de-duplicated in order.
func (p *Platforms) Normalize(names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	for _, n := range names {
		pl, err := p.Get(n)
		if err != nil {
			return nil, err
		}
		out = append(out, pl.Name)
	}
	return Dedupe(out), nil
}

// SanitizeHandle turns a candidate name into a handle: trimmed,
// lower-cased and without spaces.
func SanitizeHandle(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "")
}
