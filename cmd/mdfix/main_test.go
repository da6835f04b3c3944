package main

// Notes:
// - runMain: we test exit codes and routing for each command. Command
//   behavior is covered by the per-command tests.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"strings"
	"testing"

	"github.com/alnah/go-mdfix"
)

// ---------------------------------------------------------------------------
// TestRunMain - Dispatch and exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "route.md", pitchText)

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"no command", []string{"mdfix"}, ExitUsage, "", "Usage: mdfix"},
		{"unknown command", []string{"mdfix", "convert"}, ExitUsage, "", "Unknown command: convert"},
		{"version", []string{"mdfix", "version"}, ExitSuccess, "mdfix " + Version, ""},
		{"version flag", []string{"mdfix", "--version"}, ExitSuccess, "mdfix " + Version, ""},
		{"help", []string{"mdfix", "help"}, ExitSuccess, "Commands:", ""},
		{"help fix", []string{"mdfix", "help", "fix"}, ExitSuccess, "mdfix fix <path>", ""},
		{"fix help flag", []string{"mdfix", "fix", "--help"}, ExitSuccess, "", "mdfix fix <path>"},
		{"fix dry run", []string{"mdfix", "fix", "-p", mdfix.LtagMigrator, path}, ExitSuccess, "+L#1", ""},
		{"fix no input", []string{"mdfix", "fix"}, ExitIO, "", "error: no input specified"},
		{"fix bad flag", []string{"mdfix", "fix", "--nope", path}, ExitUsage, "", "error:"},
		{"fix unknown processor", []string{"mdfix", "fix", "-p", "nope", path}, ExitUsage, "", "unknown processor"},
		{"list", []string{"mdfix", "list"}, ExitSuccess, mdfix.LtagMigrator, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(nil)
			code := runMain(tt.args, env.Environment)

			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, env.stderr.String())
			}
			if tt.wantStdout != "" && !strings.Contains(env.stdout.String(), tt.wantStdout) {
				t.Errorf("stdout missing %q:\n%s", tt.wantStdout, env.stdout.String())
			}
			if tt.wantStderr != "" && !strings.Contains(env.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr missing %q:\n%s", tt.wantStderr, env.stderr.String())
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestVersion - Version variable
// ---------------------------------------------------------------------------

func TestVersion(t *testing.T) {
	t.Parallel()

	if Version == "" {
		t.Error("Version should not be empty")
	}
}
