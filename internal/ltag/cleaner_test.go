package ltag

// Notes:
// - Clean: we test separator canonicalization and continuation joining.
// - Properties: idempotence and totality are checked over the same fixtures
//   the pipeline validates at construction.

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestClean - Separators and continuation lines
// ---------------------------------------------------------------------------

func TestClean(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "single colon is not a separator",
			input: "L#|1:2",
			want:  "L# | 1:2",
		},
		{
			name:  "double colon is a separator",
			input: "L#|1::2",
			want:  "L# | 1 | 2",
		},
		{
			name:  "space after leading cell",
			input: "L#12 1:2",
			want:  "L#12 | 1:2",
		},
		{
			name:  "mixed separator runs",
			input: "L#|1:2::3||R#4||||5::::6",
			want:  "L# | 1:2 | 3 | R#4 | 5 | 6",
		},
		{
			name:  "empty cells are kept",
			input: "L# | 3 | | 5",
			want:  "L# | 3 | | 5",
		},
		{
			name:  "continuation joined with a line break",
			input: "L# | 1 | 2\n3\n\n4",
			want:  "L# | 1 | 2<br>3\n\n4",
		},
		{
			name:  "header line ends a row",
			input: "L#:1::2\n##Titre",
			want:  "L# | 1 | 2\n##Titre",
		},
		{
			name:  "blank line between rows removed",
			input: "L# | 1 | 2\n\nL# | 1 | 2\n",
			want:  "L# | 1 | 2\nL# | 1 | 2\n",
		},
		{
			name:  "pipes inside wiki links",
			input: "L# || [[touche/pas|au lien]] : stp::merci ",
			want:  "L# | [[touche/pas|au lien]] : stp | merci",
		},
		{
			name:  "free text row is left alone",
			input: "L#~ texte :: libre",
			want:  "L#~ texte :: libre",
		},
		{
			name:  "carriage returns",
			input: "L# | 6a |\r\nL# | 5c |",
			want:  "L# | 6a |\nL# | 5c |",
		},
		{
			name:  "no rows",
			input: "du texte | avec :: des séparateurs",
			want:  "du texte | avec :: des séparateurs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Clean(tt.input)
			if got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClean_Total(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", " ", "\n", "\n\n", "L#", "R#", "L#\n", "|", "::"} {
		// Must not panic.
		_ = Clean(input)
	}
	if got := Clean(""); got != "" {
		t.Errorf("Clean(%q) = %q, want empty", "", got)
	}
}

func TestClean_InvalidUTF8(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"leading cell", "L#\xff|a::b", "L#\xff|a::b"},
		{"later cell", "L#1|a\xff::b", "L#1|a\xff::b"},
		{"valid row kept clean", "L#\xff|a\nL#2|b::c", "L#\xff|a\nL#2 | b | c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Clean(tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	t.Parallel()

	for _, f := range cleanerFixtures() {
		once := Clean(f.Input)
		if twice := Clean(once); twice != once {
			t.Errorf("Clean not idempotent on %q: %q then %q", f.Input, once, twice)
		}
	}
}

func TestCleanerFixtures_Expanded(t *testing.T) {
	t.Parallel()

	fixtures := cleanerFixtures()
	want := len(cleanerSources)*len(cleanerPrefixes) + 1
	if len(fixtures) != want {
		t.Fatalf("len(cleanerFixtures()) = %d, want %d", len(fixtures), want)
	}
	for _, f := range fixtures {
		if strings.Contains(f.Input, "{}") || strings.Contains(f.Want, "{}") {
			t.Errorf("placeholder left in %q", f.Input)
		}
	}
}

func TestNewCleaner(t *testing.T) {
	t.Parallel()

	p, err := NewCleaner()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "ltag-cleaner" {
		t.Errorf("Name() = %q, want %q", p.Name(), "ltag-cleaner")
	}
	if got := p.Modify("L#|1::2"); got != "L# | 1 | 2" {
		t.Errorf("Modify() = %q, want %q", got, "L# | 1 | 2")
	}
}
