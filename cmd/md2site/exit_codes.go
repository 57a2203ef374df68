package main

import (
	"errors"
	"os"

	flag "github.com/spf13/pflag"

	md2site "github.com/alnah/go-md2site"
	"github.com/alnah/go-md2site/internal/config"
)

// Exit codes for md2site CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Site built
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, md2site.ErrInvalidWorkers) ||
		errors.Is(err, md2site.ErrInvalidTOC) ||
		errors.Is(err, md2site.ErrInvalidStylesheet) ||
		errors.Is(err, md2site.ErrStyleNotFound) ||
		errors.Is(err, md2site.ErrInvalidAssetPath) ||
		errors.Is(err, ErrTooManyArgs) ||
		errors.Is(err, ErrConflictingArgs) ||
		errors.Is(err, ErrInvalidFlags) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, md2site.ErrReadDirectory) ||
		errors.Is(err, md2site.ErrReadMarkdown) ||
		errors.Is(err, md2site.ErrInvalidEncoding) ||
		errors.Is(err, md2site.ErrWriteHTML) ||
		errors.Is(err, md2site.ErrWriteStylesheet) ||
		errors.Is(err, md2site.ErrCreateOutputDir) {
		return ExitIO
	}

	return ExitGeneral
}
