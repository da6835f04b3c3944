// Package fileutil classifies input files and writes results safely.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotRegular is returned by WriteFileAtomic when the target exists and is
// not a regular file.
var ErrNotRegular = errors.New("not a regular file")

// Kind is the way mdfix reads a file.
type Kind int

const (
	KindUnsupported Kind = iota
	KindText             // whole file is one Markdown text
	KindDocument         // YAML document with localized fields
)

var kinds = map[string]Kind{
	".md":       KindText,
	".markdown": KindText,
	".txt":      KindText,
	".yaml":     KindDocument,
	".yml":      KindDocument,
}

// KindOf classifies path by its extension, case-insensitively.
func KindOf(path string) Kind {
	return kinds[strings.ToLower(filepath.Ext(path))]
}

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindDocument:
		return "document"
	default:
		return "unsupported"
	}
}

// WriteFileAtomic replaces path with data. The content is written to a
// temporary file in the same directory and renamed over path, so readers
// see either the old or the new content. An existing file keeps its mode;
// a new one gets perm.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	if info, statErr := os.Stat(path); statErr == nil {
		if !info.Mode().IsRegular() {
			return fmt.Errorf("%w: %s", ErrNotRegular, path)
		}
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".mdfix-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("setting file mode: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
