package checker

import "errors"

// Input errors. The command layer maps them to the "invalid input" exit code.
var (
	// ErrListNotFound is returned when a list file does not exist.
	ErrListNotFound = errors.New("list file not found")

	// ErrNoNames is returned when no candidate name was supplied.
	ErrNoNames = errors.New("no names to check: use --name or --names-file")

	// ErrNoTargets is returned when neither a TLD nor a platform was supplied.
	ErrNoTargets = errors.New("no targets to check: use --tld, --tlds-file or --handle")

	// ErrUnknownTLD is returned for a TLD that is not an ICANN public suffix.
	ErrUnknownTLD = errors.New("unknown top-level domain")

	// ErrUnknownPlatform is returned for a platform missing from the registry.
	ErrUnknownPlatform = errors.New("unknown platform")

	// ErrInvalidPlatform is returned for a platform definition that cannot be used.
	ErrInvalidPlatform = errors.New("invalid platform definition")
)
