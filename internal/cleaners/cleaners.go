// Package cleaners holds the orthographic and layout fixes run after markup
// conversion. Every cleaner is a fixture-validated pipeline; the ones that
// touch words are wrapped in a pipeline.Guard so URLs, link targets, and
// emoji short-codes are never rewritten.
package cleaners

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/alnah/go-mdfix/internal/ltag"
	"github.com/alnah/go-mdfix/internal/pipeline"
	"github.com/alnah/go-mdfix/internal/rule"
)

// Registry names.
const (
	MarkdownCleanerName    = "markdown-cleaner"
	DiacriticsName         = "diacritics"
	UnitSpacingName        = "unit-spacing"
	MultiplicationSignName = "multiplication-sign"
	UpperFixName           = "upper-fix"
	HeaderColonName        = "header-colon"
	FakeExternalLinksName  = "fake-external-links"
)

// NewMarkdownCleaner collapses blank-line runs, trims the text, and puts one
// space after header markers.
func NewMarkdownCleaner(opts ...rule.Option) (*pipeline.Pipeline, error) {
	return pipeline.New(pipeline.Spec{
		Name:            MarkdownCleanerName,
		Comment:         "Clean markdown",
		ProductionReady: true,
		Modifiers: []rule.Modifier{
			rule.MustNew(`\n{3,}`, "\n\n", opts...),
			rule.MustNew(`^\n*`, "", opts...),
			rule.MustNew(`\n*$`, "", opts...),
			rule.MustNew(`(^|\n)(#+) *`, "${1}${2} ", opts...),
		},
		Fixtures: []pipeline.Fixture{
			{Input: "\n\nx\n\nx\nx\n\n\nx\n\n", Want: "x\n\nx\nx\n\nx"},
			{Input: "#a\n##  b\n# c", Want: "# a\n## b\n# c"},
			{Input: "", Want: ""},
		},
	})
}

// NewDiacritics composes letters followed by combining accents into their
// precomposed form. Text outside such clusters is left as is.
func NewDiacritics() (*pipeline.Pipeline, error) {
	return pipeline.New(pipeline.Spec{
		Name:            DiacriticsName,
		Comment:         "Fix diacritics",
		ProductionReady: true,
		Modifiers:       []rule.Modifier{pipeline.NewGuard(rule.Func(composeAccents))},
		Fixtures: []pipeline.Fixture{
			{Input: "a\u0300", Want: "à"},
			{Input: "e\u0300", Want: "è"},
			{Input: "e\u0301", Want: "é"},
			{Input: "a\u0302", Want: "â"},
			{Input: "e\u0302", Want: "ê"},
			{Input: "deja en e\u0301te\u0301", Want: "deja en été"},
			{Input: "\u212B \uF900", Want: "\u212B \uF900"},
			{Input: "", Want: ""},
		},
	})
}

// composeAccents applies NFC to each letter and the nonspacing marks that
// follow it. Invalid bytes are copied through.
func composeAccents(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		end := i + size
		if unicode.IsLetter(r) {
			for end < len(text) {
				mark, n := utf8.DecodeRuneInString(text[end:])
				if !unicode.Is(unicode.Mn, mark) {
					break
				}
				end += n
			}
		}
		if end > i+size {
			b.WriteString(norm.NFC.String(text[i:end]))
		} else {
			b.WriteString(text[i:end])
		}
		i = end
	}
	return b.String()
}

// NewUnitSpacing separates numbers from distance units and glues them to
// time units, following French typography.
func NewUnitSpacing(opts ...rule.Option) (*pipeline.Pipeline, error) {
	return pipeline.New(pipeline.Spec{
		Name:            UnitSpacingName,
		Comment:         "Espace entre chiffre et unité",
		ProductionReady: true,
		Langs:           []string{"fr"},
		Modifiers: []rule.Modifier{pipeline.NewGuard(
			rule.MustNew(`(^|[| \n\(])(\d+)(m|km|s)($|[ |,.?!:;\)\n])`, "${1}${2} ${3}${4}", opts...),
			rule.MustNew(`(^|[| \n\(])(\d+)([\-xX])(\d+)(m|km|s)($|[ |,.?!:;\)\n])`, "${1}${2}${3}${4} ${5}${6}", opts...),
			rule.MustNew(`\b(\d\d?) ?h ?(\d\d)\b`, "${1}h${2}", opts...),
			rule.MustNew(`\b(\d\d?) ?h\b`, "${1}h", opts...),
			rule.MustNew(`\b(\d\d?) ?(min|mn)\b`, "${1}${2}", opts...),
		)},
		Fixtures: []pipeline.Fixture{
			{Input: "6 h, 6h, 2 min! 4 mn? 2min, 5m et 6km", Want: "6h, 6h, 2min! 4mn? 2min, 5 m et 6 km"},
			{Input: "Prendre une corde 10-15m", Want: "Prendre une corde 10-15 m"},
			{Input: "L# | 30m |", Want: "L# | 30 m |"},
			{Input: "L# |30m |", Want: "L# |30 m |"},
			{Input: "L# | 30m|", Want: "L# | 30 m|"},
			{Input: "6h\n", Want: "6h\n"},
			{Input: "\n6h", Want: "\n6h"},
			{Input: "L#6h", Want: "L#6h"},
			{Input: " 6A ", Want: " 6A "},
			{Input: "1h30. Compter 1h15. ou 1h10", Want: "1h30. Compter 1h15. ou 1h10"},
			{Input: "1 h", Want: "1h"},
			{Input: "1 h 30", Want: "1h30"},
			{Input: "1h 30", Want: "1h30"},
			{Input: "1 h30", Want: "1h30"},
			{Input: "1 h 30 - 2 h", Want: "1h30 - 2h"},
			{Input: "voir https://example.org/5m", Want: "voir https://example.org/5m"},
			{Input: "", Want: ""},
		},
	})
}

// NewMultiplicationSign writes rope counts such as 2x50m with a real
// multiplication sign.
func NewMultiplicationSign(opts ...rule.Option) (*pipeline.Pipeline, error) {
	return pipeline.New(pipeline.Spec{
		Name:            MultiplicationSignName,
		Comment:         "Multiplication sign",
		ProductionReady: true,
		Modifiers: []rule.Modifier{pipeline.NewGuard(
			rule.MustNew(`(\b\d) ?([*xX]) ?(\d+) ?(m\b)`, "${1}×${3} ${4}", opts...),
		)},
		Fixtures: []pipeline.Fixture{
			{Input: "2*50m, 2x50 m, 2X50 m", Want: "2×50 m, 2×50 m, 2×50 m"},
			{Input: "ou 2x50m ou 2X50m", Want: "ou 2×50 m ou 2×50 m"},
			{Input: "", Want: ""},
		},
	})
}

// NewUpperFix capitalizes the first letter of headers, paragraphs, and
// pitch table cells.
func NewUpperFix(opts ...rule.Option) (*pipeline.Pipeline, error) {
	header := rule.MustCompile(`(^|\n)#+ *[a-zéèà]`, opts...)
	paragraph := rule.MustCompile(`(^|\n\n)[a-zéèà]`, opts...)
	cell := rule.MustCompile(`(\| *[a-zéèà])(?![^|]*\]\])`, opts...)

	return pipeline.New(pipeline.Spec{
		Name:            UpperFixName,
		Comment:         "Upper case first letter",
		ProductionReady: true,
		Modifiers: []rule.Modifier{pipeline.NewGuard(
			upperMatches(header),
			upperMatches(paragraph),
			rule.Func(func(text string) string { return upperCells(cell, text) }),
		)},
		Fixtures: []pipeline.Fixture{
			{Input: "## abc\n#ab\n#\n##A", Want: "## Abc\n#Ab\n#\n##A"},
			{
				Input: "|aa\nL# | aa | Aa [[routes/132|aa]] | \n a \n|à\na",
				Want:  "|aa\nL# | Aa | Aa [[routes/132|aa]] | \n a \n|À\na",
			},
			{Input: "coucou\ncoucou\n\ncoucou", Want: "Coucou\ncoucou\n\nCoucou"},
			{Input: "également\n\nà voir\n\nèh oh", Want: "Également\n\nÀ voir\n\nÈh oh"},
			{Input: "# https://example.org", Want: "# https://example.org"},
			{Input: "", Want: ""},
		},
	})
}

func upperMatches(re *regexp2.Regexp) rule.Modifier {
	return rule.Func(func(text string) string {
		return rule.ReplaceFunc(re, text, func(m regexp2.Match) string {
			return upper(m.String())
		})
	})
}

// upperCells capitalizes cells on pitch table rows. A table runs from a row
// marker to the next blank line.
func upperCells(cell *regexp2.Regexp, text string) string {
	lines := strings.Split(text, "\n")
	inTable := false
	for i, line := range lines {
		if line == "" {
			inTable = false
		}
		if ltag.IsRow(line) {
			inTable = true
		}
		if inTable {
			lines[i] = rule.ReplaceFunc(cell, line, func(m regexp2.Match) string {
				return upper(m.String())
			})
		}
	}
	return strings.Join(lines, "\n")
}

// upper uses a fresh Caser per call; a Caser must not be shared between
// goroutines.
func upper(s string) string {
	return cases.Upper(language.French).String(s)
}

// NewHeaderColon removes a trailing colon from header lines.
func NewHeaderColon(opts ...rule.Option) (*pipeline.Pipeline, error) {
	return pipeline.New(pipeline.Spec{
		Name:            HeaderColonName,
		Comment:         `Remove ":" in header`,
		ProductionReady: true,
		Modifiers: []rule.Modifier{pipeline.NewGuard(
			rule.MustNew(`(^|\n)(#+.*): *($|\n)`, "${1}${2}${3}", opts...),
		)},
		Fixtures: []pipeline.Fixture{
			{Input: "# X : Y :\n\n## X :\nX :\n## X #:\nY #4 X :", Want: "# X : Y \n\n## X \nX :\n## X #\nY #4 X :"},
			{Input: "### Les 100 plus belles :\n", Want: "### Les 100 plus belles \n"},
			{Input: "# Un [lien](https://a.com)", Want: "# Un [lien](https://a.com)"},
			{Input: "", Want: ""},
		},
	})
}

const siteLink = `\[([^\]\n]*)\]\(https?://www\.camptocamp\.org/(articles|routes|waypoints|outings|books|images|areas)/`

// NewFakeExternalLinks turns absolute links to wiki documents into internal
// wiki links.
func NewFakeExternalLinks(opts ...rule.Option) (*pipeline.Pipeline, error) {
	return pipeline.New(pipeline.Spec{
		Name:            FakeExternalLinksName,
		Comment:         "Convert external link to wikilink",
		ProductionReady: true,
		Modifiers: []rule.Modifier{
			rule.MustNew(siteLink+`(\d+)/?#?\)`, "[[${2}/${3}|${1}]]", opts...),
			rule.MustNew(siteLink+`(\d+)/([a-z]{2})(/[\w-]*)?#?\)`, "[[${2}/${3}|${1}]]", opts...),
			rule.MustNew(siteLink+`(\d+)#([a-z0-9\-]+)\)`, "[[${2}/${3}#${4}|${1}]]", opts...),
			rule.MustNew(siteLink+`(\d+)/([a-z]{2})(/[\w-]*)?#([a-z0-9\-]+)\)`, "[[${2}/${3}/${4}#${6}|${1}]]", opts...),
		},
		Fixtures: fakeLinkFixtures,
	})
}

var fakeLinkFixtures = []pipeline.Fixture{
	{Input: "[label](https://www.camptocamp.org/articles/12345)", Want: "[[articles/12345|label]]"},
	{Input: "[label](http://www.camptocamp.org/articles/12345)", Want: "[[articles/12345|label]]"},
	{Input: "[label](https://www.camptocamp.org/outings/12345)", Want: "[[outings/12345|label]]"},
	{Input: "[label](https://www.camptocamp.org/routes/12345)", Want: "[[routes/12345|label]]"},
	{Input: "[label](https://www.camptocamp.org/waypoints/12345)", Want: "[[waypoints/12345|label]]"},
	{Input: "[label](https://www.camptocamp.org/areas/12345)", Want: "[[areas/12345|label]]"},
	{Input: "[label](https://www.camptocamp.org/images/12345)", Want: "[[images/12345|label]]"},
	{Input: "[label](https://www.camptocamp.org/books/12345)", Want: "[[books/12345|label]]"},
	{Input: "[label](https://www.camptocamp.org/articles/12345/)", Want: "[[articles/12345|label]]"},
	{Input: "[label](https://www.camptocamp.org/articles/12345#)", Want: "[[articles/12345|label]]"},
	{Input: "[label](https://www.camptocamp.org/articles/12345/fr)", Want: "[[articles/12345|label]]"},
	{Input: "[label](https://www.camptocamp.org/articles/12345/fr/)", Want: "[[articles/12345|label]]"},
	{Input: "[label](https://www.camptocamp.org/articles/12345/fr#)", Want: "[[articles/12345|label]]"},
	{Input: "[label](https://www.camptocamp.org/articles/12345/fr#anchor)", Want: "[[articles/12345/fr#anchor|label]]"},
	{Input: "[label](https://www.camptocamp.org/articles/12345#anchor)", Want: "[[articles/12345#anchor|label]]"},
	{Input: "[label](https://www.camptocamp.org/articles/12345/fr/title-01)", Want: "[[articles/12345|label]]"},
	{Input: "[label](https://www.camptocamp.org/articles/12345/fr/title-01#)", Want: "[[articles/12345|label]]"},
	{Input: "[label](https://www.camptocamp.org/articles/12345/fr/title-01#anchor)", Want: "[[articles/12345/fr#anchor|label]]"},
	{Input: "[la\nbel](https://www.camptocamp.org/articles/12345)", Want: "[la\nbel](https://www.camptocamp.org/articles/12345)"},
	{Input: "[label](https://www.camptocamp.org/articles/12345#an\nor)", Want: "[label](https://www.camptocamp.org/articles/12345#an\nor)"},
	{Input: "[label](https://www.camptocamp.org/articles/12345/12)", Want: "[label](https://www.camptocamp.org/articles/12345/12)"},
	{Input: "[label](https://www.camptocamp.org/articles/diff)", Want: "[label](https://www.camptocamp.org/articles/diff)"},
	{Input: "[label](https://www.camptocamp.org/articles)", Want: "[label](https://www.camptocamp.org/articles)"},
	{Input: "[label](https://www.youtube.com)", Want: "[label](https://www.youtube.com)"},
	{
		Input: "[a/c](https://www.camptocamp.org/waypoints/242587/fr/tit-re) - [b-d](https://www.camptocamp.org/waypoints/115779/it/titre)",
		Want:  "[[waypoints/242587|a/c]] - [[waypoints/115779|b-d]]",
	},
	{Input: "[label](https://www.camptocamp.org/articles/12345/fr#anc_hor)", Want: "[label](https://www.camptocamp.org/articles/12345/fr#anc_hor)"},
	{Input: "", Want: ""},
}
