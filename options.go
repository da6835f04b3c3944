package mdfix

import (
	"time"

	"github.com/alnah/go-mdfix/internal/bbcode"
	"github.com/alnah/go-mdfix/internal/cleaners"
	"github.com/alnah/go-mdfix/internal/doctypes"
	"github.com/alnah/go-mdfix/internal/rule"
)

// Option configures processor construction.
type Option func(*settings)

// Logger receives construction messages. It is satisfied by most structured
// loggers.
type Logger interface {
	Debug(msg string, args ...any)
}

// DocumentTypes resolves a document id to its URL path segment, such as
// "routes". doctypes.Lookup implements it.
type DocumentTypes = bbcode.Lookup

// LoadDocumentTypes reads an "id|type" table, one entry per line, where type
// is a letter such as "r" or a name such as "routes".
func LoadDocumentTypes(path string) (DocumentTypes, error) {
	lookup, err := doctypes.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return lookup, nil
}

// LoadReplacements reads a replacement dictionary and restricts its groups to
// langs. With no langs the groups apply to every language.
func LoadReplacements(path string, langs ...string) ([]ReplacementGroup, error) {
	return cleaners.LoadReplacements(path, langs...)
}

// ReplacementGroup is one commented section of a replacement dictionary.
type ReplacementGroup = cleaners.ReplacementGroup

// Replacement rewrites a whole-word needle into its stack.
type Replacement = cleaners.Replacement

type settings struct {
	types        DocumentTypes
	replacements []ReplacementGroup
	bbcode       bool
	matchTimeout time.Duration
	logger       Logger
}

func defaultSettings() settings {
	return settings{
		bbcode:       true,
		matchTimeout: rule.DefaultMatchTimeout,
		logger:       nopLogger{},
	}
}

func (s *settings) ruleOptions() []rule.Option {
	return []rule.Option{rule.WithTimeout(s.matchTimeout)}
}

// WithDocumentTypes sets the table used to type bare [[id|label]] links.
func WithDocumentTypes(types DocumentTypes) Option {
	return func(s *settings) {
		s.types = types
	}
}

// WithReplacements sets the dictionary groups for the replacements
// processor. Each group becomes one pipeline.
func WithReplacements(groups []ReplacementGroup) Option {
	return func(s *settings) {
		s.replacements = groups
	}
}

// WithoutBBCode drops BBCode conversion from the default chain.
func WithoutBBCode() Option {
	return func(s *settings) {
		s.bbcode = false
	}
}

// WithMatchTimeout bounds each rule application.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithMatchTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdfix: WithMatchTimeout duration must be positive")
	}
	return func(s *settings) {
		s.matchTimeout = d
	}
}

// WithLogger sets the logger used while building processors.
func WithLogger(l Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
