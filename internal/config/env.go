package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is the prefix of every environment variable read by nymix.
const EnvPrefix = "NYMIX_"

// envOverrides mirrors the Config fields that may be set from the environment.
// Pointer and zero values mean "not set".
type envOverrides struct {
	Timeout        time.Duration `env:"TIMEOUT"`
	Concurrency    int           `env:"CONCURRENCY"`
	Whois          *bool         `env:"WHOIS"`
	Resolver       string        `env:"RESOLVER"`
	Proxy          string        `env:"PROXY"`
	UserAgent      string        `env:"USER_AGENT"`
	SearchRegistry string        `env:"SEARCH_REGISTRY"`
	HistoryDir     string        `env:"HISTORY_DIR"`
	TLDs           []string      `env:"TLDS" envSeparator:","`
	Handles        []string      `env:"HANDLES" envSeparator:","`
}

// ApplyEnv applies NYMIX_* environment variables to cfg.
// When environ is nil the process environment is used; tests pass a map.
func ApplyEnv(cfg *Config, environ map[string]string) error {
	var o envOverrides
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&o, opts); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}

	if o.Timeout > 0 {
		cfg.Timeout = o.Timeout
	}
	if o.Concurrency != 0 {
		cfg.Concurrency = o.Concurrency
	}
	if o.Whois != nil {
		cfg.WhoisConfirm = *o.Whois
	}
	if o.Resolver != "" {
		cfg.Resolver = o.Resolver
	}
	if o.Proxy != "" {
		cfg.Proxy = o.Proxy
	}
	if o.UserAgent != "" {
		cfg.UserAgent = o.UserAgent
	}
	if o.SearchRegistry != "" {
		cfg.SearchRegistry = o.SearchRegistry
	}
	if o.HistoryDir != "" {
		cfg.HistoryDir = o.HistoryDir
	}
	if len(o.TLDs) > 0 {
		cfg.DefaultTLDs = o.TLDs
	}
	if len(o.Handles) > 0 {
		cfg.DefaultHandles = o.Handles
	}
	return nil
}
