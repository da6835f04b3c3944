package mdfix

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alnah/go-mdfix/internal/bbcode"
	"github.com/alnah/go-mdfix/internal/cleaners"
	"github.com/alnah/go-mdfix/internal/ltag"
	"github.com/alnah/go-mdfix/internal/pipeline"
)

// Processor names.
const (
	BBCode             = bbcode.Name
	ColorUnderline     = bbcode.ColorUnderlineName
	InternalLinks      = bbcode.InternalLinksName
	LtagCleaner        = "ltag-cleaner"
	LtagMigrator       = "ltag-migrator"
	MarkdownCleaner    = cleaners.MarkdownCleanerName
	Diacritics         = cleaners.DiacriticsName
	Replacements       = cleaners.ReplacementsName
	UnitSpacing        = cleaners.UnitSpacingName
	MultiplicationSign = cleaners.MultiplicationSignName
	UpperFix           = cleaners.UpperFixName
	HeaderColon        = cleaners.HeaderColonName
	FakeExternalLinks  = cleaners.FakeExternalLinksName
)

// builder returns the pipelines registered under one name. Most names yield
// exactly one pipeline; replacements yields one per dictionary group.
type builder func(s *settings) ([]*pipeline.Pipeline, error)

func one(p *pipeline.Pipeline, err error) ([]*pipeline.Pipeline, error) {
	if err != nil {
		return nil, err
	}
	return []*pipeline.Pipeline{p}, nil
}

var registry = map[string]builder{
	BBCode: func(s *settings) ([]*pipeline.Pipeline, error) {
		return one(bbcode.New(s.types, s.ruleOptions()...))
	},
	ColorUnderline: func(s *settings) ([]*pipeline.Pipeline, error) {
		return one(bbcode.NewColorUnderline(s.ruleOptions()...))
	},
	InternalLinks: func(s *settings) ([]*pipeline.Pipeline, error) {
		return one(bbcode.NewInternalLinks(s.types, s.ruleOptions()...))
	},
	LtagCleaner: func(*settings) ([]*pipeline.Pipeline, error) {
		return one(ltag.NewCleaner())
	},
	LtagMigrator: func(*settings) ([]*pipeline.Pipeline, error) {
		return one(ltag.NewMigrator())
	},
	MarkdownCleaner: func(s *settings) ([]*pipeline.Pipeline, error) {
		return one(cleaners.NewMarkdownCleaner(s.ruleOptions()...))
	},
	Diacritics: func(*settings) ([]*pipeline.Pipeline, error) {
		return one(cleaners.NewDiacritics())
	},
	Replacements: func(s *settings) ([]*pipeline.Pipeline, error) {
		pipelines := make([]*pipeline.Pipeline, 0, len(s.replacements))
		for _, g := range s.replacements {
			if len(g.Replacements) == 0 {
				continue
			}
			p, err := cleaners.NewReplacements(g, s.ruleOptions()...)
			if err != nil {
				return nil, err
			}
			pipelines = append(pipelines, p)
		}
		return pipelines, nil
	},
	UnitSpacing: func(s *settings) ([]*pipeline.Pipeline, error) {
		return one(cleaners.NewUnitSpacing(s.ruleOptions()...))
	},
	MultiplicationSign: func(s *settings) ([]*pipeline.Pipeline, error) {
		return one(cleaners.NewMultiplicationSign(s.ruleOptions()...))
	},
	UpperFix: func(s *settings) ([]*pipeline.Pipeline, error) {
		return one(cleaners.NewUpperFix(s.ruleOptions()...))
	},
	HeaderColon: func(s *settings) ([]*pipeline.Pipeline, error) {
		return one(cleaners.NewHeaderColon(s.ruleOptions()...))
	},
	FakeExternalLinks: func(s *settings) ([]*pipeline.Pipeline, error) {
		return one(cleaners.NewFakeExternalLinks(s.ruleOptions()...))
	},
}

// Names returns the registered processor names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// DefaultNames returns the automatic correction chain in order. BBCode
// conversion is included unless WithoutBBCode is given.
func DefaultNames(opts ...Option) []string {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return s.defaultNames()
}

func (s *settings) defaultNames() []string {
	names := []string{Diacritics}
	if len(s.replacements) > 0 {
		names = append(names, Replacements)
	}
	// The bbcode pipeline ends with the internal link rewrite, so
	// InternalLinks is only needed on its own.
	if s.bbcode {
		names = append(names, BBCode, ColorUnderline)
	}
	return append(names, UnitSpacing, MultiplicationSign, UpperFix, HeaderColon, FakeExternalLinks)
}

// ParseNames splits a comma separated list of processor names, trimming
// spaces and dropping empty entries.
func ParseNames(list string) []string {
	var names []string
	for _, name := range strings.Split(list, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// New builds a Processor running the named processors in the given order.
// It returns ErrUnknownProcessor for an unregistered name and wraps
// ErrFixtureMismatch when a pipeline fails its fixtures.
func New(names []string, opts ...Option) (*Processor, error) {
	if len(names) == 0 {
		return nil, ErrNoProcessors
	}

	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}

	var chain pipeline.Chain
	for _, name := range names {
		build, ok := registry[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownProcessor, name)
		}
		pipelines, err := build(&s)
		if err != nil {
			return nil, fmt.Errorf("building %s: %w", name, err)
		}
		s.logger.Debug("processor ready", "name", name, "pipelines", len(pipelines))
		chain = append(chain, pipelines...)
	}

	return &Processor{chain: chain}, nil
}

// NewProcessor builds a single processor by name.
func NewProcessor(name string, opts ...Option) (*Processor, error) {
	return New([]string{name}, opts...)
}

// NewDefaultChain builds the automatic correction chain.
func NewDefaultChain(opts ...Option) (*Processor, error) {
	return New(DefaultNames(opts...), opts...)
}
