// Package preview renders a fixed wiki text to a standalone HTML page, so a
// reviewer can see the result the way readers will.
package preview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/dlclark/regexp2"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/alnah/go-mdfix/internal/ltag"
	"github.com/alnah/go-mdfix/internal/rule"
)

// ErrRender indicates HTML rendering failed.
var ErrRender = errors.New("HTML rendering failed")

// DefaultBaseURL prefixes wiki links such as [[routes/12|x]].
const DefaultBaseURL = "https://www.camptocamp.org/"

// DefaultStyle is the chroma style used for code blocks.
const DefaultStyle = "github"

const page = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
%s
%s</style>
</head>
<body>
%s
</body>
</html>
`

const baseCSS = `body { font-family: sans-serif; max-width: 50em; margin: 2em auto; line-height: 1.5; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ccc; padding: 0.2em 0.6em; }
blockquote.warning { border-left: 4px solid #d33; margin-left: 0; padding-left: 1em; }
blockquote.info { border-left: 4px solid #36c; margin-left: 0; padding-left: 1em; }
`

var wikiLink = rule.MustCompile(`\[\[([a-z]+/\d+[^|\]\n]*)\|([^\]\n]*)\]\]`)

// Renderer converts wiki Markdown to HTML with goldmark.
// A Renderer is safe for concurrent use.
type Renderer struct {
	md      goldmark.Markdown
	css     string
	baseURL string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithBaseURL sets the site wiki links point to. A trailing slash is added
// when missing.
func WithBaseURL(u string) Option {
	return func(r *Renderer) {
		if u != "" && !strings.HasSuffix(u, "/") {
			u += "/"
		}
		r.baseURL = u
	}
}

// New creates a Renderer with GFM tables, footnotes, and chroma code
// highlighting using CSS classes.
func New(opts ...Option) *Renderer {
	r := &Renderer{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(r)
	}

	r.md = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithStyle(DefaultStyle),
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		// No WithUnsafe: raw HTML in wiki texts is not rendered.
		goldmark.WithRendererOptions(gmhtml.WithHardWraps(), gmhtml.WithXHTML()),
	)

	var css bytes.Buffer
	if err := chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(&css, styles.Get(DefaultStyle)); err == nil {
		r.css = css.String()
	}
	return r
}

// ToHTML renders text as a standalone HTML5 page titled title.
// Goldmark has no context support, so rendering runs in a goroutine and the
// call returns early on cancellation.
func (r *Renderer) ToHTML(ctx context.Context, title, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(r.Prepare(text)), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrRender, err)}
			return
		}
		done <- result{html: fmt.Sprintf(page, html.EscapeString(title), baseCSS, r.css, buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.html, res.err
	}
}

// Prepare rewrites the wiki extensions goldmark does not know into plain
// Markdown: wiki links become links to the site, pitch rows become a table,
// and "!!!"/"!!!!" admonitions become blockquotes.
func (r *Renderer) Prepare(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = rule.ReplaceFunc(wikiLink, text, func(m regexp2.Match) string {
		target := m.GroupByNumber(1).String()
		label := m.GroupByNumber(2).String()
		return "[" + label + "](" + r.baseURL + target + ")"
	})

	var out []string
	var rows []string
	flush := func() {
		if len(rows) > 0 {
			out = append(out, pitchTable(rows)...)
			rows = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if ltag.IsRow(line) {
			rows = append(rows, line)
			continue
		}
		flush()
		out = append(out, admonition(line))
	}
	flush()

	return strings.Join(out, "\n")
}

// pitchTable lays rows out as a GFM table with an empty header. A blank line
// precedes the table so it never continues a paragraph.
func pitchTable(rows []string) []string {
	cells := make([][]string, len(rows))
	width := 0
	for i, row := range rows {
		cells[i] = splitRow(row)
		width = max(width, len(cells[i]))
	}

	lines := []string{"", "|" + strings.Repeat("   |", width), "|" + strings.Repeat("---|", width)}
	for _, c := range cells {
		for len(c) < width {
			c = append(c, "")
		}
		lines = append(lines, "| "+strings.Join(c, " | ")+" |")
	}
	return append(lines, "")
}

func splitRow(row string) []string {
	parts := strings.Split(row, "|")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func admonition(line string) string {
	switch {
	case strings.HasPrefix(line, "!!!! "):
		return "> **" + strings.TrimPrefix(line, "!!!! ") + "**"
	case strings.HasPrefix(line, "!!! "):
		return "> " + strings.TrimPrefix(line, "!!! ")
	default:
		return line
	}
}
