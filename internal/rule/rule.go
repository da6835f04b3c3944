// Package rule provides the single text-substitution unit used by every
// pipeline: a compiled pattern, a replacement template, and matching options.
//
// Patterns use the Perl/.NET dialect of github.com/dlclark/regexp2, which
// supports lookahead, named groups, and bounded matching. Replacement
// templates reference groups with ${1} or ${name}.
package rule

import (
	"time"

	"github.com/dlclark/regexp2"
)

// DefaultMatchTimeout bounds a single Apply call on pathological input.
const DefaultMatchTimeout = 2 * time.Second

// Modifier is the contract shared by rules and custom callables.
type Modifier interface {
	Apply(text string) string
}

// Func adapts a plain function to the Modifier interface.
type Func func(text string) string

// Apply calls f(text).
func (f Func) Apply(text string) string {
	return f(text)
}

// Option configures a Rule at construction.
type Option func(*config)

type config struct {
	caseInsensitive bool
	timeout         time.Duration
}

// CaseInsensitive makes the pattern match regardless of letter case.
func CaseInsensitive() Option {
	return func(c *config) { c.caseInsensitive = true }
}

// WithTimeout overrides DefaultMatchTimeout. A zero or negative value
// disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = d }
}

// Rule replaces every match of a pattern with a template.
// A Rule is immutable and safe for concurrent use.
type Rule struct {
	pattern         string
	replacement     string
	caseInsensitive bool
	re              *regexp2.Regexp
}

// New compiles pattern and returns a Rule. It returns an error when the
// pattern does not compile.
func New(pattern, replacement string, opts ...Option) (*Rule, error) {
	cfg := config{timeout: DefaultMatchTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	flags := regexp2.None
	if cfg.caseInsensitive {
		flags |= regexp2.IgnoreCase
	}

	re, err := regexp2.Compile(pattern, flags)
	if err != nil {
		return nil, err
	}
	if cfg.timeout > 0 {
		re.MatchTimeout = cfg.timeout
	}

	return &Rule{
		pattern:         pattern,
		replacement:     replacement,
		caseInsensitive: cfg.caseInsensitive,
		re:              re,
	}, nil
}

// MustNew is like New but panics if the pattern does not compile.
// Use it for package-level rule tables built from literals.
func MustNew(pattern, replacement string, opts ...Option) *Rule {
	r, err := New(pattern, replacement, opts...)
	if err != nil {
		panic("rule: " + err.Error())
	}
	return r
}

// Apply returns text with every match replaced. When matching times out the
// input is returned unchanged.
func (r *Rule) Apply(text string) string {
	if text == "" {
		return text
	}
	out, err := r.re.Replace(text, r.replacement, -1, -1)
	if err != nil {
		return text
	}
	return out
}

// Pattern returns the source pattern.
func (r *Rule) Pattern() string { return r.pattern }

// Replacement returns the replacement template.
func (r *Rule) Replacement() string { return r.replacement }

// CaseInsensitive reports whether the rule ignores letter case.
func (r *Rule) CaseInsensitive() bool { return r.caseInsensitive }

// Regexp returns the compiled pattern for callers that need match positions.
func (r *Rule) Regexp() *regexp2.Regexp { return r.re }

// ReplaceFunc replaces every match of re with the result of fn.
// On timeout the input is returned unchanged.
func ReplaceFunc(re *regexp2.Regexp, text string, fn func(m regexp2.Match) string) string {
	if text == "" {
		return text
	}
	out, err := re.ReplaceFunc(text, fn, -1, -1)
	if err != nil {
		return text
	}
	return out
}

// MustCompile compiles a pattern with the default timeout applied.
func MustCompile(pattern string, opts ...Option) *regexp2.Regexp {
	return MustNew(pattern, "", opts...).re
}

// Group returns the text captured by the named group, and whether it
// participated in the match.
func Group(m *regexp2.Match, name string) (string, bool) {
	g := m.GroupByName(name)
	if g == nil || len(g.Captures) == 0 {
		return "", false
	}
	return g.String(), true
}
