package ltag

import (
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"

	"github.com/alnah/go-mdfix/internal/rule"
)

// Kind identifies the shape of a row's leading cell.
type Kind int

// Leading cell kinds.
const (
	KindHeader Kind = iota + 1
	KindFreeText
	KindMultiPitch
	KindMonoPitch
)

func (k Kind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindFreeText:
		return "free-text"
	case KindMultiPitch:
		return "multi-pitch"
	case KindMonoPitch:
		return "mono-pitch"
	default:
		return "unknown"
	}
}

// Token is the parsed leading cell of one row.
type Token struct {
	Row  byte // 'L' or 'R'
	Kind Kind

	// Multi-pitch range: First[FirstLabel]-Last.
	First      string
	FirstLabel string
	Last       string

	// Mono pitch: Value[Label]. Value is digits, empty, "+" or "+digits".
	Value string
	Label string

	LocalRef bool

	// Raw is the matched prefix of the row, marker included.
	Raw string
}

const label = `(?:[a-zA-Z'"][a-zA-Z'"0-9_]*|_)`

// leadingCell matches the marker and the leading cell of a row. Only the
// start of the row is examined; the remainder is left to the caller.
var leadingCell = rule.MustCompile(
	`^(?<type>[LR])#(?:` +
		`(?<header>=)` +
		`|(?<text>~)` +
		`|(?:` +
		`(?<multi>(?:(?<first>[+\-]?[0-9]*)(?<firstlabel>` + label + `)?)?-(?<last>[+\-]?[0-9]*))` +
		`|(?<mono>(?<value>\+?[0-9]*)(?<monolabel>` + label + `)?)` +
		`)(?<localref>!)?` +
		`)`)

// IsRow reports whether line starts with a row marker.
func IsRow(line string) bool {
	return strings.HasPrefix(line, "L#") || strings.HasPrefix(line, "R#")
}

// Parse reads the leading cell of a row. It reports false when line is not
// a valid UTF-8 row or matching timed out.
func Parse(line string) (Token, bool) {
	if !IsRow(line) || !utf8.ValidString(line) {
		return Token{}, false
	}

	m, err := leadingCell.FindStringMatch(line)
	if err != nil || m == nil {
		return Token{}, false
	}

	tok := Token{Row: line[0], Raw: m.String()}
	_, tok.LocalRef = rule.Group(m, "localref")

	switch {
	case matched(m, "header"):
		tok.Kind = KindHeader
	case matched(m, "text"):
		tok.Kind = KindFreeText
	case matched(m, "multi"):
		tok.Kind = KindMultiPitch
		tok.First, _ = rule.Group(m, "first")
		tok.FirstLabel, _ = rule.Group(m, "firstlabel")
		tok.Last, _ = rule.Group(m, "last")
	default:
		tok.Kind = KindMonoPitch
		tok.Value, _ = rule.Group(m, "value")
		tok.Label, _ = rule.Group(m, "monolabel")
	}

	return tok, true
}

func matched(m *regexp2.Match, name string) bool {
	_, ok := rule.Group(m, name)
	return ok
}
