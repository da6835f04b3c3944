package pipeline

import (
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/alnah/go-mdfix/internal/rule"
)

// Placeholder delimiters. STX and ETX never occur in article text, so a
// token cannot be confused with surrounding words.
const (
	PlaceholderStart = "\u0002"
	PlaceholderEnd   = "\u0003"
)

// protected describes one family of spans to hide: a pattern and the shape
// of the substitute written in place of each match.
type protected struct {
	re     *regexp2.Regexp
	prefix string
	suffix string
}

// Protect patterns, applied in this order.
var protectedSpans = []protected{
	{re: rule.MustCompile(`(?:\[.*\])\([^ \n\)]+\)`)},
	{re: rule.MustCompile(`https?://[^ )\n>]*`)},
	{re: rule.MustCompile(`www\.[^ )\n>\]]*`)},
	{re: rule.MustCompile(`\[\[[a-z]+/\d+[/a-z0-9\-#]*\|`), prefix: "[[", suffix: "|"},
	{re: rule.MustCompile(`:\w+:`)},
}

// Guard runs modifiers with URLs, internal link targets, and emoji
// short-codes replaced by opaque tokens, then restores them.
//
// Restoration is a literal string replacement of each token. If a wrapped
// modifier emits text equal to a live token, restoration can put the
// protected span in the wrong place.
type Guard struct {
	modifiers []rule.Modifier
}

// NewGuard wraps the given modifiers.
func NewGuard(modifiers ...rule.Modifier) *Guard {
	return &Guard{modifiers: modifiers}
}

// Apply protects, runs the wrapped modifiers in order, and restores.
func (g *Guard) Apply(text string) string {
	var ph placeholders
	for _, span := range protectedSpans {
		text = ph.protect(span, text)
	}

	for _, m := range g.modifiers {
		text = m.Apply(text)
	}

	return ph.restore(text)
}

// placeholders tracks the spans hidden during one Apply call.
type placeholders struct {
	tokens    []string
	originals []string
	index     map[string]int
}

func (p *placeholders) protect(span protected, text string) string {
	return rule.ReplaceFunc(span.re, text, func(m regexp2.Match) string {
		original := m.String()
		if p.index == nil {
			p.index = make(map[string]int)
		}
		if i, ok := p.index[original]; ok {
			return p.tokens[i]
		}
		token := span.prefix + PlaceholderStart + "ph" + strconv.Itoa(len(p.tokens)) + "ph" + PlaceholderEnd + span.suffix
		p.index[original] = len(p.tokens)
		p.tokens = append(p.tokens, token)
		p.originals = append(p.originals, original)
		return token
	})
}

// restore substitutes newest tokens first so that a span captured inside a
// later span is restored after its container.
func (p *placeholders) restore(text string) string {
	for i := len(p.tokens) - 1; i >= 0; i-- {
		text = strings.ReplaceAll(text, p.tokens[i], p.originals[i])
	}
	return text
}
