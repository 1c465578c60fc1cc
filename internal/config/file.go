package config

import "time"

// CheckSection holds the "check" block of the configuration file.
type CheckSection struct {
	Timeout         time.Duration `yaml:"timeout,omitempty"`
	Concurrency     int           `yaml:"concurrency,omitempty"`
	Whois           *bool         `yaml:"whois,omitempty"`
	Resolver        string        `yaml:"resolver,omitempty"`
	Proxy           string        `yaml:"proxy,omitempty"`
	UserAgent       string        `yaml:"userAgent,omitempty"`
	RatePerSecond   float64       `yaml:"ratePerSecond,omitempty"`
	RateBurst       int           `yaml:"rateBurst,omitempty"`
	AvailableStatus []int         `yaml:"availableStatus,omitempty"`
	TakenStatus     []int         `yaml:"takenStatus,omitempty"`

	// TLDs and Handles are used when the command line names none.
	TLDs    []string `yaml:"tlds,omitempty"`
	Handles []string `yaml:"handles,omitempty"`

	// History disables the run history when set to false.
	History *bool `yaml:"history,omitempty"`
}

// GenerateSection holds the "generate" block of the configuration file.
type GenerateSection struct {
	MinLength int      `yaml:"minLength,omitempty"`
	MaxLength int      `yaml:"maxLength,omitempty"`
	Count     int      `yaml:"count,omitempty"`
	Style     string   `yaml:"style,omitempty"`
	Case      string   `yaml:"case,omitempty"`
	Blacklist []string `yaml:"blacklist,omitempty"`
}

// SearchSection holds the "search" block of the configuration file.
type SearchSection struct {
	// Registry is the default registry name.
	Registry string `yaml:"registry,omitempty"`

	// Registries maps extra registry names to URL templates containing {name}.
	Registries map[string]string `yaml:"registries,omitempty"`
}

// PlatformConfig describes a handle platform.
type PlatformConfig struct {
	// URL is the public profile URL template containing {handle}.
	URL string `yaml:"url"`

	// Pattern is a regular expression valid handles must match.
	// Empty means the default handle pattern.
	Pattern string `yaml:"pattern,omitempty"`

	// NotFoundMarkers are case-insensitive substrings of the page title that
	// mark a "soft 404": a missing profile served with a 200 status.
	NotFoundMarkers []string `yaml:"notFoundMarkers,omitempty"`
}

// File represents the structure of the .nymix configuration file.
type File struct {
	Check    CheckSection    `yaml:"check,omitempty"`
	Generate GenerateSection `yaml:"generate,omitempty"`
	Search   SearchSection   `yaml:"search,omitempty"`

	// Themes adds word lists or replaces built-in ones with the same name.
	Themes map[string][]string `yaml:"themes,omitempty"`

	// Platforms adds handle platforms or replaces built-in ones.
	Platforms map[string]PlatformConfig `yaml:"platforms,omitempty"`
}

// NewFile returns an empty configuration file with initialized maps.
func NewFile() *File {
	return &File{
		Themes:    make(map[string][]string),
		Platforms: make(map[string]PlatformConfig),
		Search: SearchSection{
			Registries: make(map[string]string),
		},
	}
}
