package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nao1215/nymix/internal/checker"
	"github.com/nao1215/nymix/internal/config"
	"github.com/nao1215/nymix/internal/database"
	"github.com/nao1215/nymix/internal/export"
	"github.com/nao1215/nymix/internal/generator"
	"github.com/nao1215/nymix/internal/report"
	"github.com/nao1215/nymix/internal/search"
	"github.com/nao1215/nymix/internal/wordlist"
)

// Process exit codes.
const (
	exitOK              = 0
	exitRuntime         = 1
	exitInvalidInput    = 2
	exitMalformedExport = 3
)

// usageError marks invalid arguments, input or configuration.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }

func (e usageError) Unwrap() error { return e.err }

// usageErrorf formats a usageError.
func usageErrorf(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

// inputErrors are sentinel errors reported as invalid input.
var inputErrors = []error{
	checker.ErrListNotFound,
	checker.ErrNoNames,
	checker.ErrNoTargets,
	checker.ErrUnknownTLD,
	checker.ErrUnknownPlatform,
	checker.ErrInvalidPlatform,
	config.ErrConfigNotFound,
	config.ErrInvalidTimeout,
	config.ErrInvalidConcurrency,
	config.ErrInvalidRate,
	config.ErrInvalidLength,
	config.ErrInvalidProxyAddress,
	config.ErrInvalidResolverAddress,
	config.ErrInvalidStatusPolicy,
	database.ErrRunNotFound,
	export.ErrNotFound,
	generator.ErrInvalidCount,
	generator.ErrInvalidLength,
	generator.ErrInvalidStyle,
	generator.ErrInvalidCase,
	report.ErrUnsupportedFormat,
	search.ErrEmptyName,
	search.ErrInvalidTemplate,
	search.ErrUnknownRegistry,
	wordlist.ErrUnknownTheme,
	wordlist.ErrEmptyTheme,
}

// exitCode maps an error returned by a command to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	if errors.Is(err, export.ErrMalformed) {
		return exitMalformedExport
	}
	var ue usageError
	if errors.As(err, &ue) {
		return exitInvalidInput
	}
	for _, target := range inputErrors {
		if errors.Is(err, target) {
			return exitInvalidInput
		}
	}
	// cobra reports argument problems as plain errors
	msg := err.Error()
	if strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "accepts ") ||
		strings.HasPrefix(msg, "requires at least") {
		return exitInvalidInput
	}
	return exitRuntime
}
