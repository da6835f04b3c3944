package main

// Notes:
// - exitCodeFor: we test the sentinels of every package the CLI surfaces,
//   plus wrapped errors to verify the errors.Is chain.
// - Exit code constants: we verify Unix conventions (0=success, 1=general, 2=usage)
//   and custom codes are below 126.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/alnah/go-mdfix"
	"github.com/alnah/go-mdfix/internal/cleaners"
	"github.com/alnah/go-mdfix/internal/config"
	"github.com/alnah/go-mdfix/internal/doctypes"
	"github.com/alnah/go-mdfix/internal/logging"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"read input", ErrReadInput, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"wrapped file not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"worker count", ErrInvalidWorkerCount, ExitUsage},
		{"unsupported file", ErrUnsupportedFile, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"invalid config", config.ErrInvalidConfig, ExitUsage},
		{"empty config name", config.ErrEmptyConfigName, ExitUsage},
		{"unknown processor", mdfix.ErrUnknownProcessor, ExitUsage},
		{"no processors", mdfix.ErrNoProcessors, ExitUsage},
		{"fixture mismatch", mdfix.ErrFixtureMismatch, ExitUsage},
		{"invalid document", mdfix.ErrInvalidDocument, ExitUsage},
		{"empty text", mdfix.ErrEmptyText, ExitUsage},
		{"malformed type line", doctypes.ErrMalformedLine, ExitUsage},
		{"unknown type", doctypes.ErrUnknownType, ExitUsage},
		{"malformed replacement", cleaners.ErrMalformedReplacement, ExitUsage},
		{"invalid replacement", cleaners.ErrInvalidReplacement, ExitUsage},
		{"log format", logging.ErrUnsupportedFormat, ExitUsage},
		{"wrapped config parse", fmt.Errorf("loading: %w", config.ErrConfigParse), ExitUsage},
		{"usage wins over io", fmt.Errorf("%w: %w", doctypes.ErrMalformedLine, os.ErrNotExist), ExitUsage},

		// General errors (exit 1)
		{"files failed", ErrFilesFailed, ExitGeneral},
		{"cancelled", context.Canceled, ExitGeneral},
		{"unknown error", errors.New("something unexpected"), ExitGeneral},
		{"wrapped unknown", fmt.Errorf("context: %w", errors.New("unknown")), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := exitCodeFor(tt.err)
			if got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Unix conventions
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess = %d, want 0", ExitSuccess)
	}
	if ExitGeneral != 1 {
		t.Errorf("ExitGeneral = %d, want 1", ExitGeneral)
	}
	if ExitUsage != 2 {
		t.Errorf("ExitUsage = %d, want 2", ExitUsage)
	}
	for _, code := range []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO} {
		if code >= 126 {
			t.Errorf("exit code %d collides with shell reserved codes", code)
		}
	}
}
