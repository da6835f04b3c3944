package ltag

import (
	"math"
	"strconv"
	"strings"

	"github.com/alnah/go-mdfix/internal/pipeline"
	"github.com/alnah/go-mdfix/internal/rule"
)

// Numbering holds the running pitch counters of one markup string.
//
// It owns a one-way switch: once an unsupported construct is seen, Supported
// reports false for the rest of the string and Compute returns rows as found.
// A Numbering must not be shared between strings.
type Numbering struct {
	value [2]int // running counter per row type, indexed by rowIndex

	supported bool

	// Labels are allowed until a relative reference is seen, and relative
	// references are allowed until a label is seen.
	allowLabels   bool
	containsLabel bool
}

// NewNumbering returns a fresh state for one markup string.
func NewNumbering() *Numbering {
	return &Numbering{supported: true, allowLabels: true}
}

// Supported reports whether every row seen so far could be numbered.
func (n *Numbering) Supported() bool { return n.supported }

// Value returns the running counter for row type 'L' or 'R'.
func (n *Numbering) Value(row byte) int { return n.value[rowIndex(row)] }

func rowIndex(row byte) int {
	if row == 'R' {
		return 1
	}
	return 0
}

// Compute rewrites the leading cell of row with absolute numbers and updates
// the counters. Rows that are not L#/R# rows are returned unchanged.
func (n *Numbering) Compute(row string) string {
	if !n.supported {
		return row
	}

	tok, ok := Parse(row)
	if !ok {
		if IsRow(row) {
			n.supported = false
		}
		return row
	}

	text, ok := n.number(tok)
	if !ok {
		n.supported = false
		return row
	}
	return text + row[len(tok.Raw):]
}

// number returns the replacement for tok.Raw, or false if tok is unsupported.
func (n *Numbering) number(tok Token) (string, bool) {
	if tok.LocalRef {
		return "", false
	}

	switch tok.Kind {
	case KindHeader, KindFreeText:
		return tok.Raw, true
	case KindMultiPitch:
		return n.multiPitch(tok)
	case KindMonoPitch:
		return n.monoPitch(tok)
	default:
		return "", false
	}
}

// multiPitch handles ranges such as L#1-4, L#-+3, or L#12bis-14.
// The last offset is relative to the first one.
func (n *Numbering) multiPitch(tok Token) (string, bool) {
	idx := rowIndex(tok.Row)

	first, firstRel, ok := offset(tok.First, n.value[idx], true)
	if !ok {
		return "", false
	}
	last, lastRel, ok := offset(tok.Last, first, false)
	if !ok {
		return "", false
	}

	if !n.check(tok.FirstLabel, firstRel || lastRel) {
		return "", false
	}

	n.value[idx] = last

	return format(tok.Row, strconv.Itoa(first)+tok.FirstLabel+"-"+strconv.Itoa(last)+tok.FirstLabel), true
}

// monoPitch handles L#, L#12, L#12bis, L#+, and L#+2.
func (n *Numbering) monoPitch(tok Token) (string, bool) {
	idx := rowIndex(tok.Row)

	value, relative, ok := offset(tok.Value, n.value[idx], true)
	if !ok {
		return "", false
	}
	if !n.check(tok.Label, relative) {
		return "", false
	}

	n.value[idx] = value

	if relative {
		return format(tok.Row, strconv.Itoa(value)), true
	}
	return format(tok.Row, tok.Value+tok.Label), true
}

// check enforces that labels and relative references never mix within one
// string, and records what the row used.
func (n *Numbering) check(label string, relative bool) bool {
	if label != "" && relative {
		return false
	}
	if relative {
		if n.containsLabel {
			return false
		}
		n.allowLabels = false
	}
	if label != "" {
		if !n.allowLabels {
			return false
		}
		n.containsLabel = true
	}
	return true
}

// offset resolves a raw offset against base. Digits are absolute; "+" and
// "+digits" add to base. An empty offset means +1 when emptyIsNext is set
// and is rejected otherwise. The second result reports a relative offset.
// Offsets that overflow int are rejected.
func offset(raw string, base int, emptyIsNext bool) (int, bool, bool) {
	switch {
	case raw == "":
		if !emptyIsNext {
			return 0, false, false
		}
		return add(base, 1)
	case raw[0] == '+':
		if raw == "+" {
			return add(base, 1)
		}
		v, err := strconv.Atoi(raw[1:])
		if err != nil || v < 0 {
			return 0, false, false
		}
		return add(base, v)
	case raw[0] == '-':
		return 0, false, false
	default:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, false, false
		}
		return v, false, true
	}
}

func add(base, v int) (int, bool, bool) {
	if v > math.MaxInt-base {
		return 0, false, false
	}
	return base + v, true, true
}

func format(row byte, text string) string {
	return string(row) + "#" + text
}

// Migrate numbers every L#/R# row of markdown. If any row is unsupported the
// original markdown is returned unchanged.
func Migrate(markdown string) string {
	if !strings.Contains(markdown, "#") {
		return markdown
	}

	n := NewNumbering()
	rows := strings.Split(markdown, "\n")
	for i, row := range rows {
		if IsRow(row) {
			rows[i] = n.Compute(row)
		}
		if !n.Supported() {
			return markdown
		}
	}
	return strings.Join(rows, "\n")
}

var migratorFixtures = []pipeline.Fixture{
	{Input: "L#=\nL#\nL#|L#bis\nL#~", Want: "L#=\nL#1\nL#2|L#bis\nL#~"},
	{Input: "L#=\nL#\nL#bis|L#\nL#~", Want: "L#=\nL#\nL#bis|L#\nL#~"},
	{Input: "L#\nL#+2\nL#\nL#6\nL#+2\nL#+\nL#", Want: "L#1\nL#3\nL#4\nL#6\nL#8\nL#9\nL#10"},
	{Input: "L#\nL#+1-+1\nL#-+1", Want: "L#1\nL#2-3\nL#4-5"},
	{Input: "L#-+7 | 5c\nL#", Want: "L#1-8 | 5c\nL#9"},
	{Input: "L#\nR#\nL#\nR#5\nR#", Want: "L#1\nR#1\nL#2\nR#5\nR#6"},
	{Input: "L#12bis | 6a\nL#13 | 5c", Want: "L#12bis | 6a\nL#13 | 5c"},
	{Input: "L#3-5ter\nL#6", Want: "L#3-5ter\nL#6"},
	{Input: "L#12bis-14 | 6a\nL#15", Want: "L#12bis-14bis | 6a\nL#15"},
	{Input: "L#\nL#2!\nL#", Want: "L#\nL#2!\nL#"},
	{Input: "L#\nL#12bis", Want: "L#\nL#12bis"},
	{Input: "L#12bis\nL#", Want: "L#12bis\nL#"},
	{Input: "L#3-\nL#", Want: "L#3-\nL#"},
	{Input: "texte\n\nL#~ traversée\nL# | 4b", Want: "texte\n\nL#~ traversée\nL#1 | 4b"},
	{Input: "", Want: ""},
}

// NewMigrator returns the pipeline converting relative pitch numbering to
// absolute numbers.
func NewMigrator() (*pipeline.Pipeline, error) {
	return pipeline.New(pipeline.Spec{
		Name:            "ltag-migrator",
		Comment:         "Convert L# to absolute numbering",
		ProductionReady: true,
		Modifiers:       []rule.Modifier{rule.Func(Migrate)},
		Fixtures:        migratorFixtures,
	})
}
