// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForConfigNotFound suggests --config and, when the search included a user
// config directory, the file to create there.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/mdfix.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, "go-mdfix") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForTypesFile describes the expected document type table format.
func ForTypesFile() string {
	return format(`one "id|type" per line, e.g. "786432|r"; # starts a comment`)
}

// ForReplacementsFile describes the expected dictionary format.
func ForReplacementsFile() string {
	return format(`"# comment" opens a group; entries are indented 4 spaces as "needle >> stack"`)
}

// ForUnknownProcessor lists the processors that can be selected.
func ForUnknownProcessor(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", ") + "; run `mdfix list` for details")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForTimeout explains the matchTimeout format.
func ForTimeout() string {
	return format("matchTimeout takes a Go duration such as 2s, at most 1m")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
