package mdfix

import (
	"errors"

	"github.com/alnah/go-mdfix/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrUnknownProcessor = errors.New("unknown processor")
	ErrNoProcessors     = errors.New("no processors selected")
	ErrEmptyText        = errors.New("document content cannot be empty")
	ErrInvalidDocument  = errors.New("invalid document")

	// ErrFixtureMismatch is wrapped when a pipeline fails its own fixtures
	// at construction.
	ErrFixtureMismatch = pipeline.ErrFixtureMismatch
)
