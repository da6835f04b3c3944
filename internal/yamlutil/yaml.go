// Package yamlutil reads and writes the YAML files mdfix deals with: the
// configuration file and document dumps. It isolates github.com/goccy/go-yaml.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// MaxInputSize caps a YAML input (4MB). Document dumps carry full article
// texts, so the cap is larger than a config file needs.
var MaxInputSize = 4 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

var bom = []byte("\uFEFF")

func prepare(data []byte, v any) ([]byte, error) {
	data = bytes.TrimPrefix(data, bom)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrNilData
	}
	if len(data) > MaxInputSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return nil, ErrNilDestination
	}
	return data, nil
}

// Unmarshal decodes data into v, ignoring unknown fields.
// A leading byte order mark is dropped.
func Unmarshal(data []byte, v any) error {
	data, err := prepare(data, v)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalStrict decodes data into v and rejects unknown fields.
func UnmarshalStrict(data []byte, v any) error {
	data, err := prepare(data, v)
	if err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Marshal encodes v with two-space indentation and indented sequences, the
// layout used by document dumps. Multi-line strings are written as literal
// blocks so fixed texts stay reviewable.
func Marshal(v any) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(v,
		yaml.Indent(2),
		yaml.IndentSequence(true),
		yaml.UseLiteralStyleIfMultiline(true),
	)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}

// Read decodes at most MaxInputSize bytes from r into v, strictly.
func Read(r io.Reader, v any) error {
	data, err := io.ReadAll(io.LimitReader(r, int64(MaxInputSize)+1))
	if err != nil {
		return fmt.Errorf("yamlutil: reading: %w", err)
	}
	return UnmarshalStrict(data, v)
}

// ReadFile decodes the file at path into v, strictly.
func ReadFile(path string, v any) error {
	f, err := os.Open(path) // #nosec G304 -- path comes from the command line
	if err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Read(f, v)
}
