package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdfix/internal/fileutil"
	"github.com/alnah/go-mdfix/internal/hints"
	"github.com/alnah/go-mdfix/internal/preview"
)

// runPreview fixes one text file and writes it as an HTML page.
func runPreview(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parsePreviewFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return ErrNoInput
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected one file, got %d", ErrUsage, len(positional))
	}

	inputPath := positional[0]
	if fileutil.KindOf(inputPath) != fileutil.KindText {
		return fmt.Errorf("%w: preview needs a text file, got %q", ErrUnsupportedFile, filepath.Ext(inputPath))
	}

	cfg, err := loadConfig(flags.common.config, env)
	if err != nil {
		return err
	}
	mergeChainFlags(&flags.chain, cfg)
	mergeCommonFlags(&flags.common, cfg)

	logger, err := buildLogger(cfg, env)
	if err != nil {
		return err
	}

	proc, err := buildProcessor(cfg, flags.chain.noBBCode, logger)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(inputPath) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	text := string(content)
	if flags.lang != "" {
		text = proc.FixLang(text, flags.lang).Text
	} else {
		text = proc.Fix(text).Text
	}

	var opts []preview.Option
	if flags.baseURL != "" {
		opts = append(opts, preview.WithBaseURL(flags.baseURL))
	}
	html, err := preview.New(opts...).ToHTML(ctx, previewTitle(inputPath), text)
	if err != nil {
		return err
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".html"
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), dirPermissions); err != nil {
		return fmt.Errorf("%w: creating output directory: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory())
	}
	// #nosec G306 -- HTML files are meant to be readable
	if err := fileutil.WriteFileAtomic(outputPath, []byte(html), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	logger.Debug("preview written", "input", inputPath, "output", outputPath)
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", outputPath)
	}
	return nil
}

// previewTitle is the input file name without its extension.
func previewTitle(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
