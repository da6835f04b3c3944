package mdfix

import (
	"github.com/alnah/go-mdfix/internal/differ"
	"github.com/alnah/go-mdfix/internal/pipeline"
)

// Result is the outcome of fixing one text.
// Changes is empty when Changed is false.
type Result = pipeline.Result

// Change describes one changed line: Marker is '+', '-' or '^'.
type Change = differ.Change

// Info describes one pipeline of a Processor.
type Info struct {
	Name            string
	Comment         string
	ProductionReady bool
	Langs           []string // empty means every language
}

// Processor applies an ordered list of pipelines to texts.
// A Processor is immutable and safe for concurrent use.
type Processor struct {
	chain pipeline.Chain
}

// Fix applies every pipeline regardless of language.
func (p *Processor) Fix(text string) Result {
	return p.chain.Run(text)
}

// FixLang applies the pipelines that accept lang.
func (p *Processor) FixLang(text, lang string) Result {
	return p.chain.RunLang(text, lang)
}

// Names returns the pipeline names in application order.
// Replacement groups appear once per group.
func (p *Processor) Names() []string {
	return p.chain.Names()
}

// Info describes the pipelines in application order.
func (p *Processor) Info() []Info {
	infos := make([]Info, len(p.chain))
	for i, pl := range p.chain {
		infos[i] = Info{
			Name:            pl.Name(),
			Comment:         pl.Comment(),
			ProductionReady: pl.ProductionReady(),
			Langs:           pl.Langs(),
		}
	}
	return infos
}

// Describe builds every registered processor with opts and returns its
// description. Processors that need configuration they lack, such as
// replacements without a dictionary, are reported without pipelines.
func Describe(opts ...Option) ([]Info, error) {
	var infos []Info
	for _, name := range Names() {
		p, err := NewProcessor(name, opts...)
		if err != nil {
			return nil, err
		}
		if len(p.chain) == 0 {
			infos = append(infos, Info{Name: name})
			continue
		}
		infos = append(infos, p.Info()...)
	}
	return infos, nil
}
