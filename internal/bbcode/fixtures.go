package bbcode

import "github.com/alnah/go-mdfix/internal/pipeline"

var fixtures = []pipeline.Fixture{
	{
		Input: "*[Voir la discussion sur le forum.](#t158106)*",
		Want:  "*[Voir la discussion sur le forum.](https://www.camptocamp.org/forums/viewtopic.php?id=158106)*",
	},
	{Input: "[col][col 50 left]", Want: ""},
	{Input: "x[hr]", Want: "x\n----\n"},
	{Input: `<span id="coucou"></span>`, Want: "{#coucou}"},
	{Input: "[center]coucou[/center]", Want: "<center>coucou</center>"},
	{Input: "[acr=1 goujon et 2-3 lunules]1g..3l[/acr]", Want: `<abbr title="1 goujon et 2-3 lunules">1g..3l</abbr>`},
	{Input: "L#~ | coucou", Want: "L#~ coucou"},
	{Input: "L# | gne\nL#~|coucou", Want: "L# | gne\nL#~ coucou"},
	{Input: "L#~|   coucou\nL# | ~", Want: "L#~ coucou\nL# | ~"},
	{Input: "L#~ |||| A", Want: "L#~ A"},

	// Inline emphasis.
	{Input: "un texte en [b]gras [/b]et un en [i]italique[/i]", Want: "un texte en **gras** et un en *italique*"},
	{Input: "un texte en [b]gras [/b]et un en [i]italique[/i] [i][/i] ", Want: "un texte en **gras** et un en *italique*  "},
	{Input: "un texte en [b][i]gras et italique[/i][/b]", Want: "un texte en ***gras et italique***"},
	{Input: "[center][b]outside![/b][/center]", Want: "**<center>outside!</center>**"},
	{Input: "[url=http:google.fr][i]outside![/i][/url]", Want: "*[outside!](http:google.fr)*"},
	{Input: "[b]\r\ngrep!\r\n[/b]", Want: "\r\n**grep!**\r\n"},
	{Input: "[b]un\ndeux\ntrois\nquatre[/b]", Want: "**un\ndeux\ntrois\nquatre**"},
	{Input: "[B]gras[/B]", Want: "**gras**"},
	{Input: "du [b]gras sans fin", Want: "du gras sans fin"},
	{Input: "fin[/i] orpheline", Want: "fin orpheline"},

	// Headers.
	{Input: "#c coucou ##c s", Want: "# coucou ##c s"},
	{Input: "line\n####c coucou ##c s", Want: "line\n#### coucou ##c s"},
	{Input: "###coucou", Want: "###coucou"},
	{Input: "###C bien", Want: "###C bien"},

	// Links.
	{Input: "[url=]http://www.zone-di-tranquillita.ch/[/url]", Want: "http://www.zone-di-tranquillita.ch/ "},
	{Input: "[url]http://www.google.com[/url]", Want: "http://www.google.com "},
	{Input: "[url]http://www.google.com[/url] x [url]http://www.google2.com[/url]", Want: "http://www.google.com  x http://www.google2.com "},
	{Input: "[url=http://www.google.com]google[/url]", Want: "[google](http://www.google.com)"},
	{
		Input: "[url=http://www.google.com]google[/url] et [url=http://www.google2.com]google2[/url]",
		Want:  "[google](http://www.google.com) et [google2](http://www.google2.com)",
	},
	{
		Input: "[url]http://www.google.com?a=b&c=d[/url] and [url=http://www.google.com?a=b!c]pas touche[/url]",
		Want:  "http://www.google.com?a=b&c=d  and [pas touche](http://www.google.com?a=b!c)",
	},
	{
		Input: "[url]http://www.google.com?a=b;d[/url] et [url]pas.touche.fr[/url]",
		Want:  "http://www.google.com?a=b;d  et [url]pas.touche.fr[/url]",
	},
	{
		Input: "[url]http://www.google.com?a=b&c=d[/url] x [url]http://www.google2.com?a=b&c=d[/url]",
		Want:  "http://www.google.com?a=b&c=d  x http://www.google2.com?a=b&c=d ",
	},
	{Input: "[url=http://www.google.com?a=b&c=d]google[/url]", Want: "[google](http://www.google.com?a=b&c=d)"},
	{
		Input: "[url=http://www.google.com?a=b&c=d]go[/url] et [url=http://www.google2.com?a=b&c=d]o[/url]",
		Want:  "[go](http://www.google.com?a=b&c=d) et [o](http://www.google2.com?a=b&c=d)",
	},
	{Input: "[url]http://www.google.com?a=1&b=2[/url] x [url]www.google2.com[/url]", Want: "http://www.google.com?a=1&b=2  x www.google2.com "},
	{Input: "[url]pas.touche.fr[/url]", Want: "[url]pas.touche.fr[/url]"},
	{Input: "[ url = http://a.b ]lien[/url]", Want: "[lien](http://a.b )"},
	{Input: "[email]dev@camptocamp.org[/email]", Want: "[dev@camptocamp.org](mailto:dev@camptocamp.org)"},
	{Input: "[email=dev@camptocamp.org]email[/email]", Want: "[email](mailto:dev@camptocamp.org)"},

	// HTML-like tags.
	{Input: "[sub]xx[/sub]", Want: "<sub>xx</sub>"},
	{Input: "[sup]xx[/sup]", Want: "<sup>xx</sup>"},
	{Input: "[s]xx[/s]", Want: "<s>xx</s>"},
	{Input: "[toc2 right]", Want: "[toc]"},

	// Icons.
	{Input: "[picto activity_1 /] et [img=picto/hiking.png /]", Want: ":skitouring: et :hiking:"},
	{Input: "[picto picto_summits /][picto action_report /]", Want: ":summit:"},

	// Admonitions.
	{Input: "texte\n[imp]attention[/imp]\nsuite", Want: "texte\n\n!!! attention\n\nsuite"},
	{Input: "[important]un\ndeux[/important]", Want: "\n\n!!! un\n!!! deux\n\n"},
	{Input: "[warn]un\ndeux\ntrois[/warn]", Want: "\n\n!!!! un\n!!!! deux\n!!!! trois\n\n"},
	{
		Input: "[warning]1\n2\n3\n4\n5\n6\n7[/warning]",
		Want:  "\n\n!!!! 1\n!!!! 2\n!!!! 3\n!!!! 4\n!!!! 5\n!!!! 6\n!!!! 7\n\n",
	},
	{
		Input: "[important]1\n2\n3\n4\n5\n6\n7\n8[/important]",
		Want:  "[important]1\n2\n3\n4\n5\n6\n7\n8[/important]",
	},

	{Input: "", Want: ""},
}
