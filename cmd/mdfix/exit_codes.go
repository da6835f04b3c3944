package main

import (
	"errors"
	"os"

	"github.com/alnah/go-mdfix"
	"github.com/alnah/go-mdfix/internal/cleaners"
	"github.com/alnah/go-mdfix/internal/config"
	"github.com/alnah/go-mdfix/internal/doctypes"
	"github.com/alnah/go-mdfix/internal/logging"
)

// Exit codes for the mdfix CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All files processed
	ExitGeneral = 1 // General/unexpected error, or some files failed
	ExitUsage   = 2 // Invalid flags, config, processor, or fixture
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrUnsupportedFile) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, mdfix.ErrUnknownProcessor) ||
		errors.Is(err, mdfix.ErrNoProcessors) ||
		errors.Is(err, mdfix.ErrFixtureMismatch) ||
		errors.Is(err, mdfix.ErrInvalidDocument) ||
		errors.Is(err, mdfix.ErrEmptyText) ||
		errors.Is(err, doctypes.ErrMalformedLine) ||
		errors.Is(err, doctypes.ErrUnknownType) ||
		errors.Is(err, cleaners.ErrMalformedReplacement) ||
		errors.Is(err, cleaners.ErrInvalidReplacement) ||
		errors.Is(err, logging.ErrUnsupportedFormat) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	return ExitGeneral
}
