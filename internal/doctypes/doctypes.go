// Package doctypes maps numeric wiki document ids to their document type.
//
// The table is read-only once built. Link rewriting consults it to recover
// the type segment that malformed internal links omit.
package doctypes

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Sentinel errors for table loading.
var (
	ErrMalformedLine = errors.New("malformed document type line")
	ErrUnknownType   = errors.New("unknown document type")
)

// MaxLineLength bounds a single line of a types file.
const MaxLineLength = 256

// Type letters and their URL path segment.
var paths = map[string]string{
	"a": "areas",
	"b": "books",
	"c": "articles",
	"i": "images",
	"o": "outings",
	"r": "routes",
	"u": "profiles",
	"w": "waypoints",
	"x": "xreports",
}

// aliases accepts singular and plural type names in addition to letters.
var aliases = map[string]string{
	"area": "a", "areas": "a",
	"book": "b", "books": "b",
	"article": "c", "articles": "c",
	"image": "i", "images": "i",
	"outing": "o", "outings": "o",
	"route": "r", "routes": "r",
	"user": "u", "users": "u", "profile": "u", "profiles": "u",
	"waypoint": "w", "waypoints": "w",
	"xreport": "x", "xreports": "x",
}

// Lookup maps a document id to its type letter.
type Lookup map[int]string

// Type returns the type letter of id.
func (l Lookup) Type(id int) (string, bool) {
	t, ok := l[id]
	return t, ok
}

// Path returns the URL path segment for id, such as "routes".
// It reports false when id is unknown or carries an unknown type.
func (l Lookup) Path(id int) (string, bool) {
	t, ok := l[id]
	if !ok {
		return "", false
	}
	return PathFor(t)
}

// PathFor returns the URL path segment of a type letter or name.
func PathFor(typ string) (string, bool) {
	letter, err := Normalize(typ)
	if err != nil {
		return "", false
	}
	return paths[letter], true
}

// Normalize returns the type letter for a letter or a type name.
func Normalize(typ string) (string, error) {
	t := strings.ToLower(strings.TrimSpace(typ))
	if _, ok := paths[t]; ok {
		return t, nil
	}
	if letter, ok := aliases[t]; ok {
		return letter, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, typ)
}

// Load reads "id|type" lines. Spaces are ignored; blank lines and lines
// starting with # are skipped.
func Load(r io.Reader) (Lookup, error) {
	lookup := make(Lookup)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, MaxLineLength), MaxLineLength)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.ReplaceAll(scanner.Text(), " ", "")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idPart, typPart, ok := strings.Cut(line, "|")
		if !ok {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedLine, lineNo, line)
		}
		id, err := strconv.Atoi(idPart)
		if err != nil || id < 0 {
			return nil, fmt.Errorf("%w: line %d: invalid id %q", ErrMalformedLine, lineNo, idPart)
		}
		letter, err := Normalize(typPart)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		lookup[id] = letter
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading document types: %w", err)
	}

	return lookup, nil
}

// LoadFile reads a types file from disk.
func LoadFile(path string) (Lookup, error) {
	f, err := os.Open(path) // #nosec G304 -- path is user-provided
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	lookup, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lookup, nil
}
