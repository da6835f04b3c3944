package mdfix

import (
	"errors"
	"fmt"

	"github.com/alnah/go-mdfix/internal/yamlutil"
)

// TitleField is never modified by FixDocument.
const TitleField = "title"

// Document is a wiki document with its localized text fields.
type Document struct {
	ID      int      `yaml:"document_id"`
	Type    string   `yaml:"type,omitempty"`
	Locales []Locale `yaml:"locales"`
}

// Locale holds the fields of one language version.
type Locale struct {
	Lang   string  `yaml:"lang"`
	Fields []Field `yaml:"fields"`
}

// Field is one named text of a locale, such as "description".
type Field struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// FieldResult reports the fix of one field.
type FieldResult struct {
	Lang  string
	Field string
	Result
}

// FixDocument applies the processor to every non-empty field of every locale
// except the title. Pipelines restricted to other languages are skipped.
// The input document is not modified; results are returned in field order
// and only for changed fields.
func (p *Processor) FixDocument(doc Document) (Document, []FieldResult) {
	out := Document{ID: doc.ID, Type: doc.Type, Locales: make([]Locale, len(doc.Locales))}
	var results []FieldResult

	for i, loc := range doc.Locales {
		fields := make([]Field, len(loc.Fields))
		copy(fields, loc.Fields)

		for j, f := range fields {
			if f.Name == TitleField || f.Value == "" {
				continue
			}
			res := p.FixLang(f.Value, loc.Lang)
			if !res.Changed {
				continue
			}
			fields[j].Value = res.Text
			results = append(results, FieldResult{Lang: loc.Lang, Field: f.Name, Result: res})
		}

		out.Locales[i] = Locale{Lang: loc.Lang, Fields: fields}
	}

	return out, results
}

// ParseDocument decodes a YAML document. Unknown keys are rejected.
func ParseDocument(data []byte) (Document, error) {
	var doc Document
	if err := yamlutil.UnmarshalStrict(data, &doc); err != nil {
		if errors.Is(err, yamlutil.ErrNilData) {
			return Document{}, ErrEmptyText
		}
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	for _, loc := range doc.Locales {
		if loc.Lang == "" {
			return Document{}, fmt.Errorf("%w: document %d has a locale without lang", ErrInvalidDocument, doc.ID)
		}
	}
	return doc, nil
}

// MarshalDocument encodes doc as YAML in the layout ParseDocument reads.
func MarshalDocument(doc Document) ([]byte, error) {
	return yamlutil.Marshal(doc)
}
