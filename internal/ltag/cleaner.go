package ltag

import (
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-mdfix/internal/pipeline"
	"github.com/alnah/go-mdfix/internal/rule"
)

// LineBreak joins a soft-wrapped continuation line onto its row.
const LineBreak = "<br>"

var (
	crlf = rule.MustNew(`\r\n?`, "\n")

	// A blank line between two rows of the same type splits the table.
	blankBetweenRows = []*rule.Rule{
		rule.MustNew(`(?m)^(L#.*)\n\n(?=L#)`, "${1}\n", rule.CaseInsensitive()),
		rule.MustNew(`(?m)^(R#.*)\n\n(?=R#)`, "${1}\n", rule.CaseInsensitive()),
	}

	// rowPrefix is the marker and the leading cell up to the first space or
	// separator character.
	rowPrefix = rule.MustCompile(`^[LR]#[^\n |:]*`)

	// A run of colons right after the leading cell is a separator.
	leadingColons = rule.MustNew(`^( *):+`, "${1}|")

	// Separators: a single pipe or any run of two or more colons and pipes,
	// with surrounding spaces and at most one line break on each side. Pipes
	// inside [[wiki|links]] are not separators.
	separator = rule.MustCompile(`( *)(<br>)?( *)(?:[:|]{2,}|\|)( *)(<br>)?( *)(?![^\[\n]*\]\])`)
)

// Clean joins continuation lines onto their row and canonicalizes cell
// separators to " | ".
func Clean(markdown string) string {
	if markdown == "" {
		return markdown
	}

	markdown = crlf.Apply(markdown)
	for _, r := range blankBetweenRows {
		markdown = r.Apply(markdown)
	}

	lines := joinContinuations(strings.Split(markdown, "\n"))
	for i, line := range lines {
		if IsRow(line) && !isFreeText(line) {
			lines[i] = canonicalRow(line)
		}
	}
	return strings.Join(lines, "\n")
}

// joinContinuations appends every line that follows a row and does not
// start a new row, a header, or a blank line onto that row.
func joinContinuations(lines []string) []string {
	result := make([]string, 0, len(lines))
	lastIsRow := false

	for _, line := range lines {
		switch {
		case IsRow(line):
			result = append(result, line)
			lastIsRow = true
		case line == "" || strings.HasPrefix(line, "#"):
			result = append(result, line)
			lastIsRow = false
		case lastIsRow:
			result[len(result)-1] += LineBreak + line
		default:
			result = append(result, line)
		}
	}
	return result
}

func isFreeText(line string) bool {
	return len(line) > 2 && line[2] == '~'
}

// canonicalRow rebuilds a row as prefix + " | cell" for each cell. Rows that
// are not valid UTF-8 are returned as found.
func canonicalRow(line string) string {
	if !utf8.ValidString(line) {
		return line
	}
	m, err := rowPrefix.FindStringMatch(line)
	if err != nil || m == nil {
		return line
	}
	prefix := m.String()
	rest := leadingColons.Apply(line[len(prefix):])

	cells, ok := splitCells(rest)
	if !ok {
		return line
	}

	var b strings.Builder
	b.WriteString(prefix)
	if first := trimCell(cells[0]); first != "" {
		b.WriteString(" | ")
		b.WriteString(first)
	}
	for _, cell := range cells[1:] {
		b.WriteString(" |")
		if c := trimCell(cell); c != "" {
			b.WriteByte(' ')
			b.WriteString(c)
		}
	}
	return b.String()
}

// splitCells returns the text between separators. The first element is the
// text before the first separator. It reports false if matching timed out.
func splitCells(rest string) ([]string, bool) {
	runes := []rune(rest)
	var cells []string
	start := 0

	m, err := separator.FindStringMatch(rest)
	for ; m != nil && err == nil; m, err = separator.FindNextMatch(m) {
		cells = append(cells, string(runes[start:m.Index]))
		start = m.Index + m.Length
	}
	if err != nil {
		return nil, false
	}
	return append(cells, string(runes[start:])), true
}

// trimCell removes spaces and line breaks around a cell.
func trimCell(cell string) string {
	for {
		trimmed := strings.Trim(cell, " ")
		trimmed = strings.TrimPrefix(trimmed, LineBreak)
		trimmed = strings.TrimSuffix(trimmed, LineBreak)
		if trimmed == cell {
			return cell
		}
		cell = trimmed
	}
}

var cleanerSources = []pipeline.Fixture{
	{Input: "L#{} | 1 | 2\nL# | 1 | 2\n\nautre texte", Want: "L#{} | 1 | 2\nL# | 1 | 2\n\nautre texte"},
	{Input: "L#{} | 1 | 2\n\nL# | 1 | 2\n", Want: "L#{} | 1 | 2\nL# | 1 | 2\n"},
	{Input: "L#{} | 1\n2 | 2\nL# | 1 | 2\n\n\nautre texte", Want: "L#{} | 1<br>2 | 2\nL# | 1 | 2\n\n\nautre texte"},
	{Input: "L#{} |\n 12 | 2\nL#{} | 1 \n| 2\n", Want: "L#{} | 12 | 2\nL#{} | 1 | 2\n"},
	{Input: "L#{} | 1 L# 2 | 2\nL#{} | 1 | 2\n3\n", Want: "L#{} | 1 L# 2 | 2\nL#{} | 1 | 2<br>3\n"},
	{Input: "L#{} | 12 | 2\nL#{} | 1 | 2\n3\n\n4", Want: "L#{} | 12 | 2\nL#{} | 1 | 2<br>3\n\n4"},
	{Input: "L#{}:1::2\n##Titre", Want: "L#{} | 1 | 2\n##Titre"},
	{Input: "L#{} |1::2", Want: "L#{} | 1 | 2"},
	{Input: "L#{}:1::2", Want: "L#{} | 1 | 2"},
	{Input: "L#{}|1:2::3||R#4||||5::::6", Want: "L#{} | 1:2 | 3 | R#4 | 5 | 6"},
	{Input: "L#{} 1:2", Want: "L#{} | 1:2"},
	{Input: "L#{}|1::2", Want: "L#{} | 1 | 2"},
	{Input: "L#{}|1:2", Want: "L#{} | 1:2"},
	{Input: "L#{}::1::2||3:: ::5|6| |7::8:aussi 8|9", Want: "L#{} | 1 | 2 | 3 | | 5 | 6 | | 7 | 8:aussi 8 | 9"},
	{Input: "L#~ plein ligne !:: \n| fds : \n\n| {} a la fin", Want: "L#~ plein ligne !:: <br>| fds : \n\n| {} a la fin"},
	{Input: "L#{} || [[touche/pas|au lien]] : stp::merci ", Want: "L#{} | [[touche/pas|au lien]] : stp | merci"},
	{Input: "L#{} | 6a |\r\nL#{} | 5c |", Want: "L#{} | 6a |\nL#{} | 5c |"},
}

// Leading cells substituted for {} in cleanerSources.
var cleanerPrefixes = []string{
	"", "12", "+3", "+", "-25", "-+2", "+2-+1", "bis", "bis2", "*5bis",
	"+5bis", "_", "+bis", "''", "+''", "!", "2!", "+2!", "=",
}

func cleanerFixtures() []pipeline.Fixture {
	fixtures := make([]pipeline.Fixture, 0, len(cleanerSources)*len(cleanerPrefixes)+1)
	for _, prefix := range cleanerPrefixes {
		for _, f := range cleanerSources {
			fixtures = append(fixtures, pipeline.Fixture{
				Input: strings.ReplaceAll(f.Input, "{}", prefix),
				Want:  strings.ReplaceAll(f.Want, "{}", prefix),
			})
		}
	}
	return append(fixtures, pipeline.Fixture{Input: "", Want: ""})
}

// NewCleaner returns the pipeline that normalizes row separators and
// continuation lines.
func NewCleaner() (*pipeline.Pipeline, error) {
	return pipeline.New(pipeline.Spec{
		Name:            "ltag-cleaner",
		Comment:         "Simplify L# syntax",
		ProductionReady: true,
		Modifiers:       []rule.Modifier{rule.Func(Clean)},
		Fixtures:        cleanerFixtures(),
	})
}
