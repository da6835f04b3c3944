package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdfix/internal/config"
	"github.com/alnah/go-mdfix/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrUnsupportedFile    = errors.New("file must be .md, .markdown, .txt, .yaml or .yml")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// FileToFix is one discovered input.
type FileToFix struct {
	Path string
	Kind fileutil.Kind
}

// discoverFiles returns the file at inputPath, or every supported file under
// it when it is a directory. Hidden directories are skipped.
func discoverFiles(inputPath string) ([]FileToFix, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		kind := fileutil.KindOf(inputPath)
		if kind == fileutil.KindUnsupported {
			return nil, fmt.Errorf("%w: got %q", ErrUnsupportedFile, filepath.Ext(inputPath))
		}
		return []FileToFix{{Path: inputPath, Kind: kind}}, nil
	}

	var files []FileToFix
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			if path != inputPath && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if kind := fileutil.KindOf(path); kind != fileutil.KindUnsupported {
			files = append(files, FileToFix{Path: path, Kind: kind})
		}
		return nil
	})

	return files, err
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}
