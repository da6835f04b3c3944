package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2/quick"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-mdfix"
	"github.com/alnah/go-mdfix/internal/differ"
	"github.com/alnah/go-mdfix/internal/fileutil"
	"github.com/alnah/go-mdfix/internal/logging"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for fix operations.
var (
	ErrNoInput     = errors.New("no input specified")
	ErrReadInput   = errors.New("failed to read input file")
	ErrWriteOutput = errors.New("failed to write output file")
	ErrFilesFailed = errors.New("some files could not be fixed")
)

// Diff colors used with --color.
const (
	diffFormatter = "terminal256"
	diffStyle     = "monokai"
)

// FixResult holds the outcome of fixing one file.
type FixResult struct {
	Path     string
	Kind     fileutil.Kind
	Changed  bool
	Fields   int // changed fields, 1 for a changed text file
	Diff     string
	Written  bool
	Err      error
	Duration time.Duration
}

// fixParams groups values shared by every file of a batch.
type fixParams struct {
	proc   *mdfix.Processor
	langs  []string // document locales to fix, empty means all
	lang   string   // language of text files, empty means every pipeline
	write  bool
	logger logging.Logger
}

// runFix fixes the file or directory named in args.
func runFix(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseFixFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return ErrNoInput
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected one path, got %d", ErrUsage, len(positional))
	}

	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common.config, env)
	if err != nil {
		return err
	}
	mergeChainFlags(&flags.chain, cfg)
	mergeCommonFlags(&flags.common, cfg)
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}

	logger, err := buildLogger(cfg, env)
	if err != nil {
		return err
	}

	proc, err := buildProcessor(cfg, flags.chain.noBBCode, logger)
	if err != nil {
		return err
	}

	files, err := discoverFiles(positional[0])
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no supported files in %s", ErrNoInput, positional[0])
	}

	start := env.Now()
	workers := resolvePoolSize(cfg.Workers)
	logger.Debug("fixing files", "count", len(files), "workers", workers, "write", flags.write)

	results := fixBatch(ctx, files, workers, &fixParams{
		proc:   proc,
		langs:  cfg.Langs,
		lang:   flags.lang,
		write:  flags.write,
		logger: logger,
	})

	failed := printFixResults(results, flags, logger, env)
	logger.Debug("fix finished", "files", len(results), "failed", failed, "elapsed", env.Now().Sub(start))
	if err := ctx.Err(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrFilesFailed, failed, len(results))
	}
	return nil
}

// fixBatch fixes files concurrently, at most workers at a time. Results keep
// the order of files.
func fixBatch(ctx context.Context, files []FileToFix, workers int, params *fixParams) []FixResult {
	if len(files) == 0 {
		return nil
	}

	results := make([]FixResult, len(files))
	var g errgroup.Group
	g.SetLimit(max(workers, 1))

	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = FixResult{Path: f.Path, Kind: f.Kind, Err: err}
				return nil
			}
			results[i] = fixFile(f, params)
			return nil
		})
	}

	// Per-file errors live in results.
	_ = g.Wait()
	return results
}

// fixFile fixes one file, rewriting it when params.write is set.
func fixFile(f FileToFix, params *fixParams) (result FixResult) {
	start := time.Now()
	result = FixResult{Path: f.Path, Kind: f.Kind}
	defer func() { result.Duration = time.Since(start) }()

	content, err := os.ReadFile(f.Path) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadInput, err)
		return result
	}

	var out []byte
	switch f.Kind {
	case fileutil.KindDocument:
		out, err = fixDocumentFile(f.Path, content, params, &result)
	default:
		out, err = fixTextFile(f.Path, content, params, &result)
	}
	if err != nil {
		result.Err = err
		return result
	}

	if !params.write || !result.Changed {
		return result
	}
	if err := fileutil.WriteFileAtomic(f.Path, out, filePermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
		return result
	}
	result.Written = true
	return result
}

func fixTextFile(path string, content []byte, params *fixParams, result *FixResult) ([]byte, error) {
	text := string(content)
	var r mdfix.Result
	if params.lang != "" {
		r = params.proc.FixLang(text, params.lang)
	} else {
		r = params.proc.Fix(text)
	}
	if !r.Changed {
		return nil, nil
	}

	diff, err := differ.UnifiedDiff(path, text, r.Text)
	if err != nil {
		return nil, fmt.Errorf("diffing %s: %w", path, err)
	}
	result.Changed = true
	result.Fields = 1
	result.Diff = diff
	return []byte(r.Text), nil
}

func fixDocumentFile(path string, content []byte, params *fixParams, result *FixResult) ([]byte, error) {
	doc, err := mdfix.ParseDocument(content)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	fixed, fields := fixLocales(params.proc, doc, params.langs)
	if len(fields) == 0 {
		return nil, nil
	}

	var b strings.Builder
	for _, fr := range fields {
		name := fmt.Sprintf("%s#%s/%s", path, fr.Lang, fr.Field)
		diff, err := differ.UnifiedDiff(name, fieldValue(doc, fr.Lang, fr.Field), fr.Text)
		if err != nil {
			return nil, fmt.Errorf("diffing %s: %w", name, err)
		}
		b.WriteString(diff)
	}
	result.Changed = true
	result.Fields = len(fields)
	result.Diff = b.String()

	out, err := mdfix.MarshalDocument(fixed)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", path, err)
	}
	return out, nil
}

// fixLocales fixes the locales whose lang is in langs, or every locale when
// langs is empty. Other locales are returned untouched.
func fixLocales(p *mdfix.Processor, doc mdfix.Document, langs []string) (mdfix.Document, []mdfix.FieldResult) {
	if len(langs) == 0 {
		return p.FixDocument(doc)
	}

	sub := mdfix.Document{ID: doc.ID, Type: doc.Type}
	var idx []int
	for i, loc := range doc.Locales {
		if slices.Contains(langs, loc.Lang) {
			sub.Locales = append(sub.Locales, loc)
			idx = append(idx, i)
		}
	}

	fixedSub, fields := p.FixDocument(sub)
	out := doc
	out.Locales = slices.Clone(doc.Locales)
	for j, i := range idx {
		out.Locales[i] = fixedSub.Locales[j]
	}
	return out, fields
}

func fieldValue(doc mdfix.Document, lang, field string) string {
	for _, loc := range doc.Locales {
		if loc.Lang != lang {
			continue
		}
		for _, f := range loc.Fields {
			if f.Name == field {
				return f.Value
			}
		}
	}
	return ""
}

// writeDiff writes diff, highlighted for a 256 color terminal when color is
// set.
func writeDiff(w io.Writer, diff string, color bool) error {
	if !color {
		_, err := io.WriteString(w, diff)
		return err
	}
	return quick.Highlight(w, diff, "diff", diffFormatter, diffStyle)
}

// FixSummary counts the outcomes of a batch.
type FixSummary struct {
	Changed   int
	Unchanged int
	Failed    int
}

func countFixResults(results []FixResult) FixSummary {
	var s FixSummary
	for _, r := range results {
		switch {
		case r.Err != nil:
			s.Failed++
		case r.Changed:
			s.Changed++
		default:
			s.Unchanged++
		}
	}
	return s
}

// printFixResults reports results in input order and returns the failure
// count.
func printFixResults(results []FixResult, flags *fixFlags, logger logging.Logger, env *Environment) int {
	summary := countFixResults(results)
	quiet := flags.common.quiet

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.Path, r.Err)
			continue
		}
		logger.Debug("file processed", "path", r.Path, "kind", r.Kind.String(),
			"changed", r.Changed, "fields", r.Fields, "duration", r.Duration.Round(time.Microsecond))

		if quiet || !r.Changed {
			continue
		}
		if r.Written {
			fmt.Fprintf(env.Stdout, "Fixed %s\n", r.Path)
			continue
		}
		if err := writeDiff(env.Stdout, r.Diff, flags.color); err != nil {
			logger.Warn("diff output failed", "path", r.Path, "error", err)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d changed, %d unchanged, %d failed\n",
			summary.Changed, summary.Unchanged, summary.Failed)
	}
	return summary.Failed
}
