package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors so callers can use
// errors.Is() to map them to the "invalid input" exit code.
var (
	// ErrInvalidTimeout is returned when the lookup timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidConcurrency is returned when the worker pool size is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidRate is returned when the per-platform rate limit is not positive.
	ErrInvalidRate = errors.New("invalid rate limit: rate and burst must be positive")

	// ErrInvalidLength is returned when name length bounds are inconsistent.
	ErrInvalidLength = errors.New("invalid name length: min must be >= 1 and max must be >= min")

	// ErrInvalidProxyAddress is returned when the proxy is not "host:port".
	ErrInvalidProxyAddress = errors.New("invalid proxy address format: expected host:port")

	// ErrInvalidResolverAddress is returned when the DNS resolver is not "host:port".
	ErrInvalidResolverAddress = errors.New("invalid resolver address format: expected host:port")

	// ErrInvalidStatusPolicy is returned when the HTTP status classification
	// lists are empty, out of range or overlapping.
	ErrInvalidStatusPolicy = errors.New("invalid status policy: available and taken codes must be non-empty, disjoint HTTP codes")

	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
