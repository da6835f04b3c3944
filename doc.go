// Package mdfix normalizes wiki article markup: it converts legacy BBCode to
// Markdown, numbers climbing pitch tables, canonicalizes table separators,
// and applies orthographic fixes.
//
// # Quick Start
//
// Build the default correction chain and fix a text:
//
//	p, err := mdfix.NewDefaultChain()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res := p.Fix("un texte en [b]gras [/b]et un en [i]italique[/i]")
//	fmt.Println(res.Text) // Un texte en **gras** et un en *italique*
//
// Result.Changes lists the changed lines for review before saving.
//
// # Processors
//
// A processor is a named pipeline of rewriting rules. Every pipeline checks
// its embedded fixtures when it is built, so construction can fail and a
// built pipeline is known to produce the documented output. Names lists the
// registered processors:
//
//	bbcode               BBCode tags to Markdown
//	color-underline      remove [color] and [u] tags
//	internal-links       canonical [[type/id|label]] wiki links
//	ltag-cleaner         pitch table separators and continuation lines
//	ltag-migrator        relative pitch numbers to absolute numbers
//	markdown-cleaner     blank lines and header spacing
//	diacritics           combining accents to precomposed letters
//	replacements         word dictionary (WithReplacements)
//	unit-spacing         French number/unit spacing
//	multiplication-sign  2x50m to 2×50 m
//	upper-fix            capitalize headers, paragraphs, and table cells
//	header-colon         drop trailing colons in headers
//	fake-external-links  absolute wiki URLs to internal links
//
// Select processors by name:
//
//	p, err := mdfix.New([]string{"ltag-cleaner", "ltag-migrator"})
//
// # Documents
//
// FixDocument applies a processor to every localized field of a document
// except the title, honoring each pipeline's languages:
//
//	doc, err := mdfix.ParseDocument(data)
//	fixed, results := p.FixDocument(doc)
//
// # Configuration
//
// Functional options configure the registry:
//
//	lookup, err := mdfix.LoadDocumentTypes("ids.txt")
//	p, err := mdfix.NewDefaultChain(
//	    mdfix.WithDocumentTypes(lookup),
//	    mdfix.WithMatchTimeout(time.Second),
//	)
//
// # Failure Semantics
//
// Running a processor never fails. Constructs the rules cannot resolve are
// left as they are: an unsupported pitch numbering leaves the whole text
// untouched, and links to unknown documents stay numeric.
package mdfix
