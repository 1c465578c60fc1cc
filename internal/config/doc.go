// Package config provides configuration structures and utilities for nymix.
// It defines the options for name generation, availability checks, trademark
// search and run history, and loads them from defaults, the .nymix YAML
// file, NYMIX_* environment variables and finally CLI flags.
package config
