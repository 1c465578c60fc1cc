package config

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "nymix"

	// DefaultTimeout bounds a single DNS, WHOIS or HTTP lookup.
	// Six seconds keeps one slow registry from stalling a run while still
	// giving distant DNS servers time to answer.
	DefaultTimeout = 6 * time.Second

	// DefaultConcurrency is the number of lookups run in parallel.
	// Social platforms throttle aggressively, so this stays small.
	DefaultConcurrency = 8

	// DefaultRatePerSecond is the number of profile requests per second
	// allowed against a single platform.
	DefaultRatePerSecond = 2.0

	// DefaultRateBurst is the burst size of the per-platform rate limiter.
	DefaultRateBurst = 2

	// DefaultUserAgent identifies nymix in HTTP requests.
	DefaultUserAgent = "Mozilla/5.0 (compatible; nymix/1.0; +https://github.com/nao1215/nymix)"

	// DefaultMinLength is the shortest generated name.
	DefaultMinLength = 4

	// DefaultMaxLength is the longest generated name.
	DefaultMaxLength = 12

	// DefaultCount is the number of names generated when --count is omitted.
	DefaultCount = 20

	// DefaultSearchRegistry is the trademark registry opened by the search command.
	DefaultSearchRegistry = "wipo"
)

// DefaultAvailableStatus lists HTTP status codes that mean a profile does not exist.
func DefaultAvailableStatus() []int {
	return []int{404}
}

// DefaultTakenStatus lists HTTP status codes that mean a profile exists.
func DefaultTakenStatus() []int {
	return []int{200, 301, 302}
}

// Config holds all configuration options for nymix.
// This struct is populated from defaults, the config file, the environment
// and CLI flags, in that order, and passed down explicitly.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity, matching how the options are exposed as flags.
type Config struct {
	// Timeout bounds each individual lookup.
	Timeout time.Duration

	// Concurrency is the size of the lookup worker pool.
	Concurrency int

	// WhoisConfirm enables WHOIS confirmation of domains DNS reports as free.
	WhoisConfirm bool

	// Resolver is an optional "host:port" DNS server. Empty uses the system resolver.
	Resolver string

	// Proxy is an optional SOCKS5 proxy "host:port" for HTTP requests and WHOIS.
	Proxy string

	// UserAgent is sent with HTTP profile requests.
	UserAgent string

	// RatePerSecond limits requests per platform.
	RatePerSecond float64

	// RateBurst is the burst size of the per-platform limiter.
	RateBurst int

	// AvailableStatus are HTTP codes classified as "available".
	AvailableStatus []int

	// TakenStatus are HTTP codes classified as "taken".
	TakenStatus []int

	// DefaultTLDs are checked when no TLD is given on the command line.
	DefaultTLDs []string

	// DefaultHandles are checked when no platform is given on the command line.
	DefaultHandles []string

	// MinLength and MaxLength bound generated names.
	MinLength int
	MaxLength int

	// Count is the default number of generated names.
	Count int

	// Style is the default composition style of the generator.
	Style string

	// Case is the default casing of generated names.
	Case string

	// Blacklist holds substrings generated names must not contain.
	Blacklist []string

	// SearchRegistry selects the trademark search endpoint.
	SearchRegistry string

	// HistoryDir is the directory of the run history database.
	// Defaults to XDG data directory (~/.local/share/nymix on Linux).
	HistoryDir string

	// SaveHistory stores every check run in the history database.
	SaveHistory bool

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the path of the loaded configuration file, if any.
	ConfigFilePath string

	// File is the parsed configuration file. It is never nil after Load.
	File *File
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Timeout:         DefaultTimeout,
		Concurrency:     DefaultConcurrency,
		UserAgent:       DefaultUserAgent,
		RatePerSecond:   DefaultRatePerSecond,
		RateBurst:       DefaultRateBurst,
		AvailableStatus: DefaultAvailableStatus(),
		TakenStatus:     DefaultTakenStatus(),
		MinLength:       DefaultMinLength,
		MaxLength:       DefaultMaxLength,
		Count:           DefaultCount,
		Style:           "concat",
		Case:            "lower",
		SearchRegistry:  DefaultSearchRegistry,
		HistoryDir:      XDGDataDir(),
		SaveHistory:     true,
		File:            NewFile(),
	}
}

// XDGDataDir returns the XDG data directory for nymix.
// On Linux: ~/.local/share/nymix
// On macOS: ~/Library/Application Support/nymix
// On Windows: %LOCALAPPDATA%\nymix
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for nymix.
// On Linux: ~/.config/nymix
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ApplyFile copies every value set in the configuration file over the
// current values. Zero values in the file leave the current value untouched.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	c.File = f

	chk := f.Check
	if chk.Timeout > 0 {
		c.Timeout = chk.Timeout
	}
	if chk.Concurrency != 0 {
		c.Concurrency = chk.Concurrency
	}
	if chk.Whois != nil {
		c.WhoisConfirm = *chk.Whois
	}
	if chk.Resolver != "" {
		c.Resolver = chk.Resolver
	}
	if chk.Proxy != "" {
		c.Proxy = chk.Proxy
	}
	if chk.UserAgent != "" {
		c.UserAgent = chk.UserAgent
	}
	if chk.RatePerSecond != 0 {
		c.RatePerSecond = chk.RatePerSecond
	}
	if chk.RateBurst != 0 {
		c.RateBurst = chk.RateBurst
	}
	if len(chk.AvailableStatus) > 0 {
		c.AvailableStatus = chk.AvailableStatus
	}
	if len(chk.TakenStatus) > 0 {
		c.TakenStatus = chk.TakenStatus
	}
	if len(chk.TLDs) > 0 {
		c.DefaultTLDs = chk.TLDs
	}
	if len(chk.Handles) > 0 {
		c.DefaultHandles = chk.Handles
	}
	if chk.History != nil {
		c.SaveHistory = *chk.History
	}

	gen := f.Generate
	if gen.MinLength != 0 {
		c.MinLength = gen.MinLength
	}
	if gen.MaxLength != 0 {
		c.MaxLength = gen.MaxLength
	}
	if gen.Count != 0 {
		c.Count = gen.Count
	}
	if gen.Style != "" {
		c.Style = gen.Style
	}
	if gen.Case != "" {
		c.Case = gen.Case
	}
	if len(gen.Blacklist) > 0 {
		c.Blacklist = gen.Blacklist
	}

	if f.Search.Registry != "" {
		c.SearchRegistry = f.Search.Registry
	}
}

// Validate checks if the configuration is valid.
// It returns the first problem found as one of the sentinel errors.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.RatePerSecond <= 0 || c.RateBurst <= 0 {
		return ErrInvalidRate
	}
	if c.MinLength < 1 || c.MaxLength < c.MinLength {
		return ErrInvalidLength
	}
	if c.Proxy != "" && !IsValidHostPort(c.Proxy) {
		return ErrInvalidProxyAddress
	}
	if c.Resolver != "" && !IsValidHostPort(c.Resolver) {
		return ErrInvalidResolverAddress
	}
	return validateStatusPolicy(c.AvailableStatus, c.TakenStatus)
}

// validateStatusPolicy checks that both status lists are non-empty,
// hold real HTTP codes and do not overlap.
func validateStatusPolicy(available, taken []int) error {
	if len(available) == 0 || len(taken) == 0 {
		return ErrInvalidStatusPolicy
	}
	seen := make(map[int]bool, len(available))
	for _, code := range available {
		if code < 100 || code > 599 {
			return ErrInvalidStatusPolicy
		}
		seen[code] = true
	}
	for _, code := range taken {
		if code < 100 || code > 599 || seen[code] {
			return ErrInvalidStatusPolicy
		}
	}
	return nil
}

// IsValidHostPort checks if the address is in "host:port" format with a
// port between 1 and 65535.
func IsValidHostPort(address string) bool {
	i := strings.LastIndex(address, ":")
	if i <= 0 || i == len(address)-1 {
		return false
	}
	port, err := strconv.Atoi(address[i+1:])
	if err != nil {
		return false
	}
	return port >= 1 && port <= 65535
}
