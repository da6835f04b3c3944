package main

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	flag "github.com/spf13/pflag"
)

// ---------------------------------------------------------------------------
// TestParseFixFlags - fix command flags
// ---------------------------------------------------------------------------

func TestParseFixFlags(t *testing.T) {
	t.Parallel()

	args := []string{
		"-w", "4", "--write", "--color", "-l", "fr",
		"-p", "ltag-migrator,unit-spacing", "-t", "types.txt", "-r", "dict.txt", "--no-bbcode",
		"-c", "work", "-v", "--log-format", "json",
		"docs",
	}
	f, rest, err := parseFixFlags(args, io.Discard)
	if err != nil {
		t.Fatalf("parseFixFlags() error: %v", err)
	}

	want := &fixFlags{
		common:  commonFlags{config: "work", verbose: true, logFormat: "json"},
		chain:   chainFlags{processors: "ltag-migrator,unit-spacing", types: "types.txt", replacements: "dict.txt", noBBCode: true},
		workers: 4,
		write:   true,
		color:   true,
		lang:    "fr",
	}
	if diff := cmp.Diff(want, f, cmp.AllowUnexported(fixFlags{}, commonFlags{}, chainFlags{})); diff != "" {
		t.Errorf("flags mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"docs"}, rest); diff != "" {
		t.Errorf("positional mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePreviewFlags(t *testing.T) {
	t.Parallel()

	f, rest, err := parsePreviewFlags([]string{"-o", "out.html", "--base-url", "https://example.org", "-q", "route.md"}, io.Discard)
	if err != nil {
		t.Fatalf("parsePreviewFlags() error: %v", err)
	}
	if f.output != "out.html" || f.baseURL != "https://example.org" || !f.common.quiet {
		t.Errorf("got %+v", f)
	}
	if len(rest) != 1 || rest[0] != "route.md" {
		t.Errorf("rest = %v, want [route.md]", rest)
	}
}

func TestParseListFlags(t *testing.T) {
	t.Parallel()

	f, _, err := parseListFlags([]string{"-r", "dict.txt"}, io.Discard)
	if err != nil {
		t.Fatalf("parseListFlags() error: %v", err)
	}
	if f.chain.replacements != "dict.txt" {
		t.Errorf("replacements = %q, want %q", f.chain.replacements, "dict.txt")
	}
}

// ---------------------------------------------------------------------------
// TestParse_Errors - Usage errors and help
// ---------------------------------------------------------------------------

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"unknown flag", []string{"--nope"}, ErrUsage},
		{"bad int", []string{"-w", "many"}, ErrUsage},
		{"help", []string{"-h"}, flag.ErrHelp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := parseFixFlags(tt.args, io.Discard)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}
