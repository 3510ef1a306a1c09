package main

import (
	"errors"
	"os"

	mdexport "github.com/alnah/go-mdexport"
	"github.com/alnah/go-mdexport/internal/config"
	"github.com/alnah/go-mdexport/internal/dateutil"
)

// Exit codes for the dproc CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // At least one requested format was written
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, mdexport.ErrBrowserConnect) ||
		errors.Is(err, mdexport.ErrPageCreate) ||
		errors.Is(err, mdexport.ErrPageLoad) ||
		errors.Is(err, mdexport.ErrPDFGeneration) ||
		errors.Is(err, mdexport.ErrInvalidPDF) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, mdexport.ErrReadMarkdown) ||
		errors.Is(err, mdexport.ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrTooManyArgs) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, mdexport.ErrNoFormatSpecified) ||
		errors.Is(err, mdexport.ErrUnknownFormat) ||
		errors.Is(err, mdexport.ErrTargetIsInput) ||
		errors.Is(err, mdexport.ErrInvalidAssetPath) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) {
		return ExitUsage
	}

	return ExitGeneral
}
