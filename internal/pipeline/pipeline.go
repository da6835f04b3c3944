package pipeline

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/alnah/go-mdfix/internal/differ"
	"github.com/alnah/go-mdfix/internal/rule"
)

// Sentinel errors for pipeline construction.
var (
	ErrFixtureMismatch = errors.New("fixture mismatch")
	ErrEmptyName       = errors.New("pipeline name cannot be empty")
	ErrNoModifiers     = errors.New("pipeline has no modifiers")
)

// Fixture is a literal input and the output the pipeline must produce for it.
type Fixture struct {
	Input string
	Want  string
}

// Spec declares a pipeline.
type Spec struct {
	Name            string
	Comment         string
	ProductionReady bool
	Langs           []string // empty means every language
	Modifiers       []rule.Modifier
	Fixtures        []Fixture
}

// Pipeline applies an ordered list of modifiers to a text.
type Pipeline struct {
	name            string
	comment         string
	productionReady bool
	langs           []string
	modifiers       []rule.Modifier
}

// Result is the outcome of Run.
type Result struct {
	Text    string
	Changed bool
	Changes []differ.Change
}

// New builds a pipeline and checks every fixture against it.
// It returns an error wrapping ErrFixtureMismatch on the first fixture whose
// output differs from the expected text.
func New(spec Spec) (*Pipeline, error) {
	if strings.TrimSpace(spec.Name) == "" {
		return nil, ErrEmptyName
	}
	if len(spec.Modifiers) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoModifiers, spec.Name)
	}

	p := &Pipeline{
		name:            spec.Name,
		comment:         spec.Comment,
		productionReady: spec.ProductionReady,
		langs:           slices.Clone(spec.Langs),
		modifiers:       slices.Clone(spec.Modifiers),
	}

	for i, f := range spec.Fixtures {
		if got := p.Modify(f.Input); got != f.Want {
			return nil, fmt.Errorf("%w: %s fixture %d\n  input: %q\n  want:  %q\n  got:   %q",
				ErrFixtureMismatch, spec.Name, i, f.Input, f.Want, got)
		}
	}

	return p, nil
}

// MustNew is like New but panics on error. It is meant for package-level
// pipelines whose fixtures ship with the code.
func MustNew(spec Spec) *Pipeline {
	p, err := New(spec)
	if err != nil {
		panic(err)
	}
	return p
}

// Modify applies every modifier in declared order.
func (p *Pipeline) Modify(text string) string {
	for _, m := range p.modifiers {
		text = m.Apply(text)
	}
	return text
}

// Apply implements rule.Modifier so pipelines can nest.
func (p *Pipeline) Apply(text string) string {
	return p.Modify(text)
}

// Run applies the pipeline and reports the changed lines.
func (p *Pipeline) Run(text string) Result {
	out := p.Modify(text)
	return newResult(text, out)
}

func newResult(in, out string) Result {
	if in == out {
		return Result{Text: out}
	}
	return Result{
		Text:    out,
		Changed: true,
		Changes: differ.Diff(in, out),
	}
}

// Name returns the registered name.
func (p *Pipeline) Name() string { return p.name }

// Comment returns the human-readable change comment.
func (p *Pipeline) Comment() string { return p.comment }

// ProductionReady reports whether the pipeline may run on live data.
func (p *Pipeline) ProductionReady() bool { return p.productionReady }

// Langs returns the languages the pipeline is restricted to.
func (p *Pipeline) Langs() []string { return slices.Clone(p.langs) }

// AppliesTo reports whether the pipeline should run on a field written in lang.
func (p *Pipeline) AppliesTo(lang string) bool {
	return len(p.langs) == 0 || slices.Contains(p.langs, lang)
}

// Chain applies pipelines in order.
type Chain []*Pipeline

// Modify applies every pipeline in order.
func (c Chain) Modify(text string) string {
	for _, p := range c {
		text = p.Modify(text)
	}
	return text
}

// Apply implements rule.Modifier.
func (c Chain) Apply(text string) string {
	return c.Modify(text)
}

// ModifyLang applies the pipelines that accept lang.
func (c Chain) ModifyLang(text, lang string) string {
	for _, p := range c {
		if p.AppliesTo(lang) {
			text = p.Modify(text)
		}
	}
	return text
}

// Run applies the chain and reports the changed lines.
func (c Chain) Run(text string) Result {
	return newResult(text, c.Modify(text))
}

// RunLang applies the pipelines that accept lang and reports the changed
// lines.
func (c Chain) RunLang(text, lang string) Result {
	return newResult(text, c.ModifyLang(text, lang))
}

// Names returns the pipeline names in order.
func (c Chain) Names() []string {
	names := make([]string, len(c))
	for i, p := range c {
		names[i] = p.name
	}
	return names
}
