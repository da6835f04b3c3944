// Package bbcode converts legacy bulletin-board tags to Markdown.
//
// Rules run in one literal order and that order is pinned by the fixture
// suite: reordering any rule changes behavior. Unresolvable tags are left in
// place; no rule reports an error.
package bbcode

import (
	"fmt"
	"strings"

	"github.com/alnah/go-mdfix/internal/pipeline"
	"github.com/alnah/go-mdfix/internal/rule"
)

// Name is the registry name of the BBCode pipeline.
const Name = "bbcode"

// inline matches one line of an inline tag body: no line break, emphasis
// marker, or backtick.
const inline = "[^\\n\\r*`]"

// New returns the BBCode pipeline. Internal links are rewritten last using
// lookup, which may be nil.
func New(lookup Lookup, opts ...rule.Option) (*pipeline.Pipeline, error) {
	return pipeline.New(pipeline.Spec{
		Name:            Name,
		Comment:         "Replace BBcode by Markdown",
		ProductionReady: true,
		Modifiers:       modifiers(lookup, opts),
		Fixtures:        fixtures,
	})
}

func modifiers(lookup Lookup, opts []rule.Option) []rule.Modifier {
	ci := append(opts[:len(opts):len(opts)], rule.CaseInsensitive())
	r := func(pattern, replacement string) rule.Modifier {
		return rule.MustNew(pattern, replacement, ci...)
	}
	cs := func(pattern, replacement string) rule.Modifier {
		return rule.MustNew(pattern, replacement, opts...)
	}

	mods := []rule.Modifier{
		tagCleaner("b", "**", opts),
		tagCleaner("i", "*", opts),

		r(`\[i\]\*\*(`+inline+`*?)\*\*\[/i\]`, "***${1}***"),

		r(`\[(/?)imp\]`, "[${1}important]"),
		r(`\[(/?)warn\]`, "[${1}warning]"),
		cs(`(^|\n)(#+)c +`, "${1}${2} "),
	}
	mods = append(mods, urlRules(r)...)
	mods = append(mods,
		cs(`(\n|^)L#~ *\|+ *`, "${1}L#~ "),
		cs(`\(#t(\d+)\)`, "(https://www.camptocamp.org/forums/viewtopic.php?id=${1})"),

		r(`\[(/?)sub\]`, "<${1}sub>"),
		r(`\[(/?)sup\]`, "<${1}sup>"),
		r(`\[(/?)s\]`, "<${1}s>"),
		r(`\[acr=([\w \.-]+)\]([\w \.]+)\[/acr\]`, `<abbr title="${1}">${2}</abbr>`),
		r(`\[acronym=([\w \.-]+)\]([\w \.]+)\[/acronym\]`, `<abbr title="${1}">${2}</abbr>`),
		r(`\[(/?)center]`, "<${1}center>"),
		r(`<span id="([\w-]+)"></span>`, "{#${1}}"),
		r(`\n?\[hr/?\]\n?`, "\n----\n"),
		r(`\[toc ?(\d)?( right| left)?\]`, "[toc]"),
		r(`\[/? *col *\d* *(left|right)? *\d* *\]`, ""),
	)
	mods = append(mods, iconRules(r)...)
	mods = append(mods, blockRules(r, `importante?(?: col_50)?`, `importante?`, "!!! ")...)
	mods = append(mods, blockRules(r, `warning`, `warning`, "!!!! ")...)
	mods = append(mods, linkModifiers(lookup, opts)...)

	return mods
}

// tagCleaner returns the balancer for one inline tag: whitespace around the
// markers is pulled outside the tag, then balanced pairs on one to six lines
// are converted. Tags wrapped in [center] or a [url=] label are combined with
// the enclosing construct so nesting stays valid.
func tagCleaner(tag, md string, opts []rule.Option) rule.Modifier {
	ci := append(opts[:len(opts):len(opts)], rule.CaseInsensitive())
	r := func(pattern, replacement string) *rule.Rule {
		return rule.MustNew(pattern, replacement, ci...)
	}
	open := `\[` + tag + `\]`
	closing := `\[/` + tag + `\]`

	rules := []*rule.Rule{
		r(`\[ *url *\]`, "[url]"),
		r(`\[ *url *= *`, "[url="),
		r(open+closing, ""),
		r(`\n *`+open+` *`, "\n["+tag+"]"),
		r(open+` +`, " ["+tag+"]"),
		r(` +`+closing, "[/"+tag+"] "),
		r(`\r\n`+closing, "[/"+tag+"]\r\n"),
		r(open+` *\r\n([^*#]?)`, "\r\n["+tag+"]${1}"),
		r(`\[center] *`+open+`(`+inline+`*?)`+closing+` *\[/center]`, md+"[center]${1}[/center]"+md),
		r(`\[url=(.*?)] *`+open+`(`+inline+`*?)`+closing+` *\[/url]`, md+"[url=${1}]${2}[/url]"+md),
		r(open+`(`+inline+`*?)`+closing, md+"${1}"+md),
	}
	for lines := 2; lines <= 6; lines++ {
		rules = append(rules, multiLine(r, open, closing, md, lines))
	}

	killer := invalidKiller(tag, ci)

	return rule.Func(func(text string) string {
		for _, rl := range rules {
			text = rl.Apply(text)
		}
		return killer(text)
	})
}

// multiLine converts a tag pair whose body spans exactly n lines.
func multiLine(r func(string, string) *rule.Rule, open, closing, md string, n int) *rule.Rule {
	body := make([]string, n)
	groups := make([]string, n)
	for i := range n {
		body[i] = "(" + inline + "+?)"
		groups[i] = fmt.Sprintf("${%d}", i+1)
	}
	return r(open+strings.Join(body, `\r?\n`)+closing, md+strings.Join(groups, "\n")+md)
}

// invalidKiller removes stray openers when a tag has no closer at all, and
// stray closers when it has no opener. Texts where both sides remain are left
// alone.
func invalidKiller(tag string, opts []rule.Option) func(string) string {
	openTag, closeTag := "["+tag+"]", "[/"+tag+"]"
	removeOpen := rule.MustNew(`\[`+tag+`\]`, "", opts...)
	removeClose := rule.MustNew(`\[/`+tag+`\]`, "", opts...)

	return func(text string) string {
		lower := strings.ToLower(text)
		openers := strings.Count(lower, openTag)
		closers := strings.Count(lower, closeTag)
		switch {
		case openers == 0 && closers > 0:
			return removeClose.Apply(text)
		case openers > 0 && closers == 0:
			return removeOpen.Apply(text)
		default:
			return text
		}
	}
}

// urlRules repairs malformed url openers then converts url and email tags.
// The lazy target (.*?) runs up to the first "]", so query-string characters
// such as &, ! and ; stay inside the link.
func urlRules(r func(string, string) rule.Modifier) []rule.Modifier {
	return []rule.Modifier{
		r(`\nurl=`, "\n[url="),
		r(`\nurl]`, "\n[url]"),
		r(`\[ *url *= *\]`, "[url]"),
		r(`\[ *url *= *`, "[url="),
		r(`\[\\url\]`, "[/url]"),
		r(`\[urlhttp`, "[url]http"),
		r(`\[url=?\] *(http|www)(.*?)\[/url\]`, "${1}${2} "),
		r(`\[url=(.*?)\]\[/url\]`, " ${1} "),
		r(`\[url=(.*?)\](.*?)\[/url\]`, "[${2}](${1})"),
		r(`\[email\](.*?)\[/email\]`, "[${1}](mailto:${1})"),
		r(`\[email=(.*?)\](.*?)\[/email\]`, "[${2}](mailto:${1})"),
	}
}

// Activity icons accept both the picto tag and the legacy image path.
var activities = []struct {
	number int
	name   string
}{
	{1, "skitouring"},
	{6, "hiking"},
	{2, "snow_ice_mixed"},
	{3, "mountain_climbing"},
	{4, "rock_climbing"},
	{5, "ice_climbing"},
	{7, "snowshoeing"},
	{8, "paragliding"},
}

var pictos = []struct {
	tag, code string
}{
	{"picto_books", ":book:"},
	{"picto_maps", ":map:"},
	{"action_report", ""},
	{"picto_summits", ":summit:"},
	{"picto_huts", ":hut:"},
	{"picto_products", ":local_product:"},
	{"picto_parkings", ":parking:"},
	{"picto_routes", ":motorway:"},
	{"picto_users", ":mens:"},
}

func iconRules(r func(string, string) rule.Modifier) []rule.Modifier {
	mods := make([]rule.Modifier, 0, len(activities)+len(pictos))
	for _, a := range activities {
		pattern := fmt.Sprintf(`(\[picto activity_%d */\]|\[img=picto/%s\.png /\])`, a.number, a.name)
		mods = append(mods, r(pattern, ":"+a.name+":"))
	}
	for _, p := range pictos {
		mods = append(mods, r(`\[picto `+p.tag+` */\]`, p.code))
	}
	return mods
}

// maxBlockLines is the longest admonition converted. Longer blocks are left
// as tags.
const maxBlockLines = 7

// blockRules converts admonition blocks of 1 to maxBlockLines lines, one rule
// per line count, into lines carrying prefix.
func blockRules(r func(string, string) rule.Modifier, open, closing, prefix string) []rule.Modifier {
	mods := make([]rule.Modifier, 0, maxBlockLines)
	for n := 1; n <= maxBlockLines; n++ {
		body := make([]string, n)
		out := make([]string, n)
		for i := range n {
			body[i] = `([^\n]+)`
			out[i] = prefix + fmt.Sprintf("${%d}", i+1)
		}
		pattern := `\n*\[` + open + `\][ \n]*` + strings.Join(body, `\n+`) + `[ \n]*\[/` + closing + `\]\n*`
		mods = append(mods, r(pattern, "\n\n"+strings.Join(out, "\n")+"\n\n"))
	}
	return mods
}
