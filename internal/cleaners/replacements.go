package cleaners

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alnah/go-mdfix/internal/pipeline"
	"github.com/alnah/go-mdfix/internal/rule"
)

// ReplacementsName is the registry name of dictionary pipelines.
const ReplacementsName = "replacements"

// Sentinel errors for replacement dictionaries.
var (
	ErrMalformedReplacement = errors.New("malformed replacement")
	ErrInvalidReplacement   = errors.New("invalid replacement pattern")
)

// maxDictionaryLine bounds one line of a dictionary file.
const maxDictionaryLine = 64 * 1024

// Replacement rewrites every whole-word match of Needle, a pattern, with
// Stack, a template that may reference Needle's groups as ${1}.
type Replacement struct {
	Needle string
	Stack  string
}

// ReplacementGroup is one commented section of a dictionary.
type ReplacementGroup struct {
	Comment      string
	Langs        []string
	Replacements []Replacement
}

var backReference = rule.MustNew(`\\(\d)`, "$${${1}}")

// ParseReplacements reads a dictionary. A line starting with # opens a group
// named by the rest of the line; a line indented by four spaces adds a
// "needle >> stack" entry to the current group. Other lines are ignored, as
// are groups without entries.
func ParseReplacements(r io.Reader) ([]ReplacementGroup, error) {
	var groups []ReplacementGroup
	current := -1

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxDictionaryLine)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")

		switch {
		case strings.HasPrefix(line, "#"):
			groups = append(groups, ReplacementGroup{Comment: strings.TrimLeft(line, "# ")})
			current = len(groups) - 1

		case strings.HasPrefix(line, "    ") && current >= 0:
			entry := line[4:]
			if strings.TrimSpace(entry) == "" {
				continue
			}
			needle, stack, ok := strings.Cut(entry, ">>")
			if !ok || strings.Contains(stack, ">>") {
				return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedReplacement, lineNo, line)
			}
			groups[current].Replacements = append(groups[current].Replacements, Replacement{
				Needle: strings.TrimSpace(needle),
				Stack:  template(strings.TrimSpace(stack)),
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading replacements: %w", err)
	}

	result := groups[:0]
	for _, g := range groups {
		if len(g.Replacements) > 0 {
			result = append(result, g)
		}
	}
	return result, nil
}

// LoadReplacements reads a dictionary file and restricts every group to
// langs.
func LoadReplacements(path string, langs ...string) ([]ReplacementGroup, error) {
	f, err := os.Open(path) // #nosec G304 -- path is user-provided
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	groups, err := ParseReplacements(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for i := range groups {
		groups[i].Langs = langs
	}
	return groups, nil
}

// template turns \N back-references into ${N} and escapes literal dollars.
func template(stack string) string {
	stack = strings.ReplaceAll(stack, "$", "$$")
	return backReference.Apply(stack)
}

// NewReplacements returns a guarded pipeline applying one dictionary group.
func NewReplacements(group ReplacementGroup, opts ...rule.Option) (*pipeline.Pipeline, error) {
	mods := make([]rule.Modifier, 0, len(group.Replacements))
	for _, r := range group.Replacements {
		rl, err := rule.New(`\b`+r.Needle+`\b`, r.Stack, opts...)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidReplacement, r.Needle, err)
		}
		mods = append(mods, rl)
	}

	return pipeline.New(pipeline.Spec{
		Name:            ReplacementsName,
		Comment:         group.Comment,
		ProductionReady: true,
		Langs:           group.Langs,
		Modifiers:       []rule.Modifier{pipeline.NewGuard(mods...)},
	})
}
