package bbcode

import (
	"strconv"

	"github.com/dlclark/regexp2"

	"github.com/alnah/go-mdfix/internal/doctypes"
	"github.com/alnah/go-mdfix/internal/pipeline"
	"github.com/alnah/go-mdfix/internal/rule"
)

// InternalLinksName is the registry name of the internal link pipeline.
const InternalLinksName = "internal-links"

// Lookup resolves a document id to its URL path segment, such as "routes".
// doctypes.Lookup satisfies it.
type Lookup interface {
	Path(id int) (string, bool)
}

// Legacy path segments that now live under another document type.
var legacyPaths = map[string]string{
	"summits":  "waypoints",
	"sites":    "waypoints",
	"huts":     "waypoints",
	"parkings": "waypoints",
	"users":    "profiles",
}

const linkTypes = `(parkings|users|books|articles|routes|waypoints|images|summits|sites|huts|outings|areas|xreports|profiles)`

// NewInternalLinks returns the pipeline rewriting internal wiki links to
// the canonical [[type/id|label]] form. Links to ids unknown to lookup keep
// their bare numeric form.
func NewInternalLinks(lookup Lookup, opts ...rule.Option) (*pipeline.Pipeline, error) {
	// Fixtures whose result depends on the table run against a fixed one,
	// so the caller's table never decides whether construction succeeds.
	if _, err := pipeline.New(pipeline.Spec{
		Name:      InternalLinksName,
		Modifiers: linkModifiers(fixtureTypes, opts),
		Fixtures:  append(linkFixtures[:len(linkFixtures):len(linkFixtures)], lookupFixtures...),
	}); err != nil {
		return nil, err
	}

	return pipeline.New(pipeline.Spec{
		Name:            InternalLinksName,
		Comment:         "Fix internal wiki link",
		ProductionReady: true,
		Modifiers:       linkModifiers(lookup, opts),
		Fixtures:        linkFixtures,
	})
}

func linkModifiers(lookup Lookup, opts []rule.Option) []rule.Modifier {
	noType := rule.MustCompile(`\[\[ */? *(\d+)\|`, opts...)
	absolute := rule.MustCompile(`\[\[ *https?://www\.camptocamp\.org/`+linkTypes+`/(\d+)([\w\-/#]*)\|`, opts...)
	rooted := rule.MustCompile(`\[\[ */`+linkTypes+`/(\d+)([\w\-/#]*)\|`, opts...)

	return []rule.Modifier{
		rule.Func(func(text string) string {
			return rule.ReplaceFunc(noType, text, func(m regexp2.Match) string {
				return typedLink(lookup, m.GroupByNumber(1).String())
			})
		}),
		rule.Func(func(text string) string {
			return rule.ReplaceFunc(absolute, text, canonicalLink)
		}),
		rule.Func(func(text string) string {
			return rule.ReplaceFunc(rooted, text, canonicalLink)
		}),
	}
}

// typedLink prefixes a bare id with its document type when lookup knows it.
func typedLink(lookup Lookup, digits string) string {
	id, err := strconv.Atoi(digits)
	if err != nil {
		return "[[" + digits + "|"
	}
	if lookup != nil {
		if path, ok := lookup.Path(id); ok {
			return "[[" + path + "/" + strconv.Itoa(id) + "|"
		}
	}
	return "[[" + strconv.Itoa(id) + "|"
}

func canonicalLink(m regexp2.Match) string {
	typ := m.GroupByNumber(1).String()
	if current, ok := legacyPaths[typ]; ok {
		typ = current
	}
	return "[[" + typ + "/" + m.GroupByNumber(2).String() + m.GroupByNumber(3).String() + "|"
}

// fixtureTypes backs the lookup-dependent fixtures.
var fixtureTypes = doctypes.Lookup{786432: "r"}

// lookupFixtures hold bare ids and are checked against fixtureTypes only.
var lookupFixtures = []pipeline.Fixture{
	{Input: "[[786432|patate]]", Want: "[[routes/786432|patate]]"},
	{Input: "[[ /786432|patate]]", Want: "[[routes/786432|patate]]"},
	{Input: "[[123|inconnu]]", Want: "[[123|inconnu]]"},
}

// linkFixtures give the same result whatever the lookup holds.
var linkFixtures = []pipeline.Fixture{
	{Input: "[[/routes/786432|patate]]", Want: "[[routes/786432|patate]]"},
	{
		Input: "[[http://www.camptocamp.org/articles/106859/fr|cotation de randonnée pédestre]]",
		Want:  "[[articles/106859/fr|cotation de randonnée pédestre]]",
	},
	{
		Input: "[[http://www.camptocamp.org/routes/173371/it/via-bartesaghi-iii-torrione|Via Bartesaghi]] ",
		Want:  "[[routes/173371/it/via-bartesaghi-iii-torrione|Via Bartesaghi]] ",
	},
	{
		Input: "[[http://www.camptocamp.org/images/19796/fr/|photo]]",
		Want:  "[[images/19796/fr/|photo]]",
	},
	{
		Input: "[[http://www.camptocamp.org/routes/186949/fr/presles-approches-descentes-presles#secteur-fhara-kiri|Voir approches & descentes]]. ",
		Want:  "[[routes/186949/fr/presles-approches-descentes-presles#secteur-fhara-kiri|Voir approches & descentes]]. ",
	},
	{Input: "[[https://www.camptocamp.org/summits/12/fr|sommet]]", Want: "[[waypoints/12/fr|sommet]]"},
	{Input: "[[/users/99|moi]]", Want: "[[profiles/99|moi]]"},
	{Input: "", Want: ""},
}

// ColorUnderlineName is the registry name of the color and underline remover.
const ColorUnderlineName = "color-underline"

// NewColorUnderline returns the pipeline removing color and underline tags.
func NewColorUnderline(opts ...rule.Option) (*pipeline.Pipeline, error) {
	ci := append(opts[:len(opts):len(opts)], rule.CaseInsensitive())
	return pipeline.New(pipeline.Spec{
		Name:            ColorUnderlineName,
		Comment:         "Remove color and u tags",
		ProductionReady: true,
		Modifiers: []rule.Modifier{
			rule.MustNew(`\[/?(color|u)(=#?[a-zA-Z0-9]{3,10})?\]`, "", ci...),
		},
		Fixtures: []pipeline.Fixture{
			{
				Input: "test [u]underlines[/u] and [color=#FFdd1E]color[/color] et [color=red]color[/color]",
				Want:  "test underlines and color et color",
			},
			{Input: "[U]x[/U]", Want: "x"},
			{Input: "", Want: ""},
		},
	})
}
