package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config    string
	quiet     bool
	verbose   bool
	logFormat string
}

// chainFlags select and configure processors.
type chainFlags struct {
	processors   string
	types        string
	replacements string
	noBBCode     bool
}

// fixFlags holds all flags for the fix command.
type fixFlags struct {
	common  commonFlags
	chain   chainFlags
	workers int
	write   bool
	color   bool
	lang    string
}

// previewFlags holds all flags for the preview command.
type previewFlags struct {
	common  commonFlags
	chain   chainFlags
	output  string
	baseURL string
	lang    string
}

// listFlags holds all flags for the list command.
type listFlags struct {
	common commonFlags
	chain  chainFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log each file")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: console, json, pretty")
}

// addChainFlags adds processor selection flags to a FlagSet.
func addChainFlags(fs *flag.FlagSet, f *chainFlags) {
	fs.StringVarP(&f.processors, "processors", "p", "", "comma separated processors (default chain if empty)")
	fs.StringVarP(&f.types, "types", "t", "", `document type table ("id|type" lines)`)
	fs.StringVarP(&f.replacements, "replacements", "r", "", "replacement dictionary file")
	fs.BoolVar(&f.noBBCode, "no-bbcode", false, "drop BBCode conversion from the default chain")
}

func newFlagSet(name string, usage func(io.Writer), stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }
	return fs
}

func parse(fs *flag.FlagSet, args []string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return fs.Args(), nil
}

// parseFixFlags parses fix command flags and returns positional args.
func parseFixFlags(args []string, stderr io.Writer) (*fixFlags, []string, error) {
	f := &fixFlags{}
	fs := newFlagSet("fix", printFixUsage, stderr)

	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.write, "write", false, "rewrite files instead of printing diffs")
	fs.BoolVar(&f.color, "color", false, "colorize diffs")
	fs.StringVarP(&f.lang, "lang", "l", "", "language of text files (empty = every processor)")
	addChainFlags(fs, &f.chain)
	addCommonFlags(fs, &f.common)

	rest, err := parse(fs, args)
	return f, rest, err
}

// parsePreviewFlags parses preview command flags and returns positional args.
func parsePreviewFlags(args []string, stderr io.Writer) (*previewFlags, []string, error) {
	f := &previewFlags{}
	fs := newFlagSet("preview", printPreviewUsage, stderr)

	fs.StringVarP(&f.output, "output", "o", "", "HTML output file (default: input with .html)")
	fs.StringVar(&f.baseURL, "base-url", "", "site wiki links point to")
	fs.StringVarP(&f.lang, "lang", "l", "", "language of the text (empty = every processor)")
	addChainFlags(fs, &f.chain)
	addCommonFlags(fs, &f.common)

	rest, err := parse(fs, args)
	return f, rest, err
}

// parseListFlags parses list command flags.
func parseListFlags(args []string, stderr io.Writer) (*listFlags, []string, error) {
	f := &listFlags{}
	fs := newFlagSet("list", printListUsage, stderr)

	addChainFlags(fs, &f.chain)
	addCommonFlags(fs, &f.common)

	rest, err := parse(fs, args)
	return f, rest, err
}
