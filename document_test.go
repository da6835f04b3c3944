package mdfix

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const documentYAML = `document_id: 786432
type: r
locales:
  - lang: fr
    fields:
      - name: title
        value: "L#"
      - name: description
        value: "L#\nL#+2"
      - name: remarks
        value: "corde 30m"
      - name: gear
        value: ""
  - lang: de
    fields:
      - name: remarks
        value: "Seil 30m"
`

// ---------------------------------------------------------------------------
// TestParseDocument - YAML document files
// ---------------------------------------------------------------------------

func TestParseDocument(t *testing.T) {
	t.Parallel()

	doc, err := ParseDocument([]byte(documentYAML))
	if err != nil {
		t.Fatalf("ParseDocument() error: %v", err)
	}
	if doc.ID != 786432 || doc.Type != "r" {
		t.Errorf("ID, Type = %d, %q, want 786432, %q", doc.ID, doc.Type, "r")
	}
	if len(doc.Locales) != 2 || len(doc.Locales[0].Fields) != 4 {
		t.Fatalf("locales = %+v, want 2 locales and 4 fr fields", doc.Locales)
	}
	if got := doc.Locales[0].Fields[1].Value; got != "L#\nL#+2" {
		t.Errorf("description = %q, want %q", got, "L#\nL#+2")
	}
}

func TestParseDocument_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{name: "empty", data: "", wantErr: ErrEmptyText},
		{name: "unknown key", data: "document_id: 1\nprotected: true\n", wantErr: ErrInvalidDocument},
		{name: "syntax", data: "locales: [", wantErr: ErrInvalidDocument},
		{name: "locale without lang", data: "document_id: 1\nlocales:\n  - fields: []\n", wantErr: ErrInvalidDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := ParseDocument([]byte(tt.data)); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFixDocument - Per-field, per-language application
// ---------------------------------------------------------------------------

func TestFixDocument(t *testing.T) {
	t.Parallel()

	doc, err := ParseDocument([]byte(documentYAML))
	if err != nil {
		t.Fatalf("ParseDocument() error: %v", err)
	}
	p, err := New([]string{LtagMigrator, UnitSpacing})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	fixed, results := p.FixDocument(doc)

	want := Document{
		ID:   786432,
		Type: "r",
		Locales: []Locale{
			{Lang: "fr", Fields: []Field{
				{Name: "title", Value: "L#"},
				{Name: "description", Value: "L#1\nL#3"},
				{Name: "remarks", Value: "corde 30 m"},
				{Name: "gear", Value: ""},
			}},
			{Lang: "de", Fields: []Field{
				{Name: "remarks", Value: "Seil 30m"},
			}},
		},
	}
	if diff := cmp.Diff(want, fixed); diff != "" {
		t.Errorf("FixDocument() mismatch (-want +got):\n%s", diff)
	}

	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].Field != "description" || results[1].Field != "remarks" || results[1].Lang != "fr" {
		t.Errorf("results = %+v, want description then fr remarks", results)
	}

	if got := doc.Locales[0].Fields[1].Value; got != "L#\nL#+2" {
		t.Errorf("input document modified: description = %q", got)
	}
}

func TestFixDocument_NoLocales(t *testing.T) {
	t.Parallel()

	p, err := NewProcessor(BBCode)
	if err != nil {
		t.Fatalf("NewProcessor() error: %v", err)
	}
	fixed, results := p.FixDocument(Document{ID: 1})
	if len(fixed.Locales) != 0 || results != nil {
		t.Errorf("FixDocument() = %+v, %v, want no locales and no results", fixed, results)
	}
}

func TestMarshalDocument(t *testing.T) {
	t.Parallel()

	doc, err := ParseDocument([]byte(documentYAML))
	if err != nil {
		t.Fatalf("ParseDocument() error: %v", err)
	}
	data, err := MarshalDocument(doc)
	if err != nil {
		t.Fatalf("MarshalDocument() error: %v", err)
	}
	back, err := ParseDocument(data)
	if err != nil {
		t.Fatalf("ParseDocument(MarshalDocument()) error: %v", err)
	}
	if diff := cmp.Diff(doc, back); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}
