package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
// Changes to defaults must be intentional, so each one is pinned here.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default Timeout is 6 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.Timeout != 6*time.Second {
			t.Errorf("expected Timeout to be 6s, got %v", cfg.Timeout)
		}
	})

	t.Run("default Concurrency is 8", func(t *testing.T) {
		t.Parallel()
		if cfg.Concurrency != 8 {
			t.Errorf("expected Concurrency to be 8, got %d", cfg.Concurrency)
		}
	})

	t.Run("default status policy", func(t *testing.T) {
		t.Parallel()
		if len(cfg.AvailableStatus) != 1 || cfg.AvailableStatus[0] != 404 {
			t.Errorf("expected available status [404], got %v", cfg.AvailableStatus)
		}
		if len(cfg.TakenStatus) != 3 {
			t.Errorf("expected 3 taken statuses, got %v", cfg.TakenStatus)
		}
	})

	t.Run("WHOIS confirmation is off by default", func(t *testing.T) {
		t.Parallel()
		if cfg.WhoisConfirm {
			t.Error("expected WhoisConfirm to be false")
		}
	})

	t.Run("history is saved by default", func(t *testing.T) {
		t.Parallel()
		if !cfg.SaveHistory {
			t.Error("expected SaveHistory to be true")
		}
		if cfg.HistoryDir == "" {
			t.Error("expected non-empty HistoryDir")
		}
	})

	t.Run("default search registry is wipo", func(t *testing.T) {
		t.Parallel()
		if cfg.SearchRegistry != "wipo" {
			t.Errorf("expected wipo, got %q", cfg.SearchRegistry)
		}
	})

	t.Run("file is never nil", func(t *testing.T) {
		t.Parallel()
		if cfg.File == nil {
			t.Error("expected non-nil File")
		}
	})
}

// TestConfigValidate tests the Validate method with various configurations.
// Each test case is designed to test one specific validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()
		if err := NewConfig().Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, ErrInvalidTimeout},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, ErrInvalidTimeout},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }, ErrInvalidConcurrency},
		{"zero rate", func(c *Config) { c.RatePerSecond = 0 }, ErrInvalidRate},
		{"zero burst", func(c *Config) { c.RateBurst = 0 }, ErrInvalidRate},
		{"zero min length", func(c *Config) { c.MinLength = 0 }, ErrInvalidLength},
		{"max below min", func(c *Config) { c.MinLength = 8; c.MaxLength = 4 }, ErrInvalidLength},
		{"proxy without port", func(c *Config) { c.Proxy = "127.0.0.1" }, ErrInvalidProxyAddress},
		{"resolver with bad port", func(c *Config) { c.Resolver = "8.8.8.8:99999" }, ErrInvalidResolverAddress},
		{"empty available status", func(c *Config) { c.AvailableStatus = nil }, ErrInvalidStatusPolicy},
		{"overlapping status", func(c *Config) { c.TakenStatus = []int{200, 404} }, ErrInvalidStatusPolicy},
		{"out of range status", func(c *Config) { c.AvailableStatus = []int{42} }, ErrInvalidStatusPolicy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := NewConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

// TestIsValidHostPort tests host:port validation.
func TestIsValidHostPort(t *testing.T) {
	t.Parallel()

	tests := []struct {
		address string
		want    bool
	}{
		{"127.0.0.1:9050", true},
		{"localhost:1080", true},
		{"[::1]:53", true},
		{"127.0.0.1", false},
		{":9050", false},
		{"127.0.0.1:", false},
		{"127.0.0.1:0", false},
		{"127.0.0.1:abc", false},
	}

	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			t.Parallel()
			if got := IsValidHostPort(tt.address); got != tt.want {
				t.Errorf("IsValidHostPort(%q) = %v, want %v", tt.address, got, tt.want)
			}
		})
	}
}

// TestApplyFile tests that file values override defaults.
func TestApplyFile(t *testing.T) {
	t.Parallel()

	t.Run("non-zero values override", func(t *testing.T) {
		t.Parallel()
		whois := true
		history := false
		f := NewFile()
		f.Check.Timeout = 10 * time.Second
		f.Check.Concurrency = 3
		f.Check.Whois = &whois
		f.Check.History = &history
		f.Check.Handles = []string{"github"}
		f.Generate.MaxLength = 9
		f.Search.Registry = "uspto"

		cfg := NewConfig()
		cfg.ApplyFile(f)

		if cfg.Timeout != 10*time.Second {
			t.Errorf("expected timeout 10s, got %v", cfg.Timeout)
		}
		if cfg.Concurrency != 3 {
			t.Errorf("expected concurrency 3, got %d", cfg.Concurrency)
		}
		if !cfg.WhoisConfirm {
			t.Error("expected WhoisConfirm to be true")
		}
		if cfg.SaveHistory {
			t.Error("expected SaveHistory to be false")
		}
		if len(cfg.DefaultHandles) != 1 || cfg.DefaultHandles[0] != "github" {
			t.Errorf("expected default handles [github], got %v", cfg.DefaultHandles)
		}
		if cfg.MaxLength != 9 {
			t.Errorf("expected max length 9, got %d", cfg.MaxLength)
		}
		if cfg.SearchRegistry != "uspto" {
			t.Errorf("expected uspto, got %q", cfg.SearchRegistry)
		}
	})

	t.Run("zero values keep defaults", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.ApplyFile(NewFile())
		if cfg.Timeout != DefaultTimeout {
			t.Errorf("expected default timeout, got %v", cfg.Timeout)
		}
		if cfg.Concurrency != DefaultConcurrency {
			t.Errorf("expected default concurrency, got %d", cfg.Concurrency)
		}
	})

	t.Run("nil file is ignored", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.ApplyFile(nil)
		if cfg.File == nil {
			t.Error("expected File to remain set")
		}
	})
}

// TestApplyEnv tests environment overrides.
func TestApplyEnv(t *testing.T) {
	t.Parallel()

	t.Run("overrides from environment", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		err := ApplyEnv(cfg, map[string]string{
			"NYMIX_TIMEOUT":     "3s",
			"NYMIX_CONCURRENCY": "2",
			"NYMIX_WHOIS":       "true",
			"NYMIX_PROXY":       "127.0.0.1:9050",
			"NYMIX_TLDS":        "com,io",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Timeout != 3*time.Second {
			t.Errorf("expected 3s, got %v", cfg.Timeout)
		}
		if cfg.Concurrency != 2 {
			t.Errorf("expected 2, got %d", cfg.Concurrency)
		}
		if !cfg.WhoisConfirm {
			t.Error("expected WhoisConfirm to be true")
		}
		if cfg.Proxy != "127.0.0.1:9050" {
			t.Errorf("unexpected proxy %q", cfg.Proxy)
		}
		if len(cfg.DefaultTLDs) != 2 {
			t.Errorf("expected 2 TLDs, got %v", cfg.DefaultTLDs)
		}
	})

	t.Run("unset variables keep values", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		if err := ApplyEnv(cfg, map[string]string{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Timeout != DefaultTimeout {
			t.Errorf("expected default timeout, got %v", cfg.Timeout)
		}
		if cfg.WhoisConfirm {
			t.Error("expected WhoisConfirm to stay false")
		}
	})

	t.Run("malformed value returns error", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		if err := ApplyEnv(cfg, map[string]string{"NYMIX_TIMEOUT": "soon"}); err == nil {
			t.Error("expected error for malformed duration")
		}
	})
}

// TestLoadConfigFile tests YAML loading.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads all sections", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), ".nymix")
		content := `check:
  timeout: 4s
  concurrency: 2
  takenStatus: [200]
generate:
  minLength: 3
search:
  registry: inpi
  registries:
    custom: "https://example.com/search?q={name}"
themes:
  colors: [red, green, blue]
platforms:
  mastodon:
    url: "https://mastodon.social/@{handle}"
    notFoundMarkers: ["not found"]
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		f, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.Check.Timeout != 4*time.Second {
			t.Errorf("expected 4s timeout, got %v", f.Check.Timeout)
		}
		if f.Generate.MinLength != 3 {
			t.Errorf("expected min length 3, got %d", f.Generate.MinLength)
		}
		if f.Search.Registries["custom"] == "" {
			t.Error("expected custom registry")
		}
		if len(f.Themes["colors"]) != 3 {
			t.Errorf("expected 3 colors, got %v", f.Themes["colors"])
		}
		if f.Platforms["mastodon"].URL == "" {
			t.Error("expected mastodon platform")
		}
	})

	t.Run("empty file initializes maps", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), ".nymix")
		if err := os.WriteFile(path, []byte(""), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		f, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.Themes == nil || f.Platforms == nil || f.Search.Registries == nil {
			t.Error("expected initialized maps")
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid YAML returns error", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), ".nymix")
		if err := os.WriteFile(path, []byte("themes: [unclosed"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})
}

// TestFindConfigFile tests explicit path handling.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit existing path", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("{}"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("explicit missing path", func(t *testing.T) {
		t.Parallel()
		if got := FindConfigFile(filepath.Join(t.TempDir(), "nope.yaml")); got != "" {
			t.Errorf("expected empty path, got %q", got)
		}
	})
}

// TestLoad tests the combined loader.
func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("explicit missing file is an error", func(t *testing.T) {
		t.Parallel()
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("explicit file is applied", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("generate:\n  count: 7\n"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Count != 7 {
			t.Errorf("expected count 7, got %d", cfg.Count)
		}
		if cfg.ConfigFilePath != path {
			t.Errorf("expected ConfigFilePath %q, got %q", path, cfg.ConfigFilePath)
		}
	})
}
