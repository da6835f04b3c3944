package main

// Notes:
// - loadConfig: we test flag vs MDFIX_CONFIG priority and the hint on a
//   missing config name.
// - merge helpers: we test that CLI flags win over config values.
// - buildProcessor: we test the default chain, explicit names, and that
//   types and dictionary files are loaded.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-mdfix"
	"github.com/alnah/go-mdfix/internal/config"
	"github.com/alnah/go-mdfix/internal/logging"
)

// ---------------------------------------------------------------------------
// TestLoadConfig - Config file resolution
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	flagCfg := writeFile(t, dir, "flag.yaml", "workers: 2\n")
	envCfg := writeFile(t, dir, "env.yaml", "workers: 3\n")

	tests := []struct {
		name        string
		flag        string
		vars        map[string]string
		wantWorkers int
	}{
		{"defaults", "", nil, 0},
		{"flag", flagCfg, nil, 2},
		{"env", "", map[string]string{"MDFIX_CONFIG": envCfg}, 3},
		{"flag wins over env", flagCfg, map[string]string{"MDFIX_CONFIG": envCfg}, 2},
		{"env workers fill defaults", "", map[string]string{"MDFIX_WORKERS": "5"}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(tt.vars)
			cfg, err := loadConfig(tt.flag, env.Environment)
			if err != nil {
				t.Fatalf("loadConfig() error: %v", err)
			}
			if cfg.Workers != tt.wantWorkers {
				t.Errorf("Workers = %d, want %d", cfg.Workers, tt.wantWorkers)
			}
		})
	}
}

func TestLoadConfig_NotFoundHint(t *testing.T) {
	t.Parallel()

	env := newTestEnv(nil)
	_, err := loadConfig("no-such-config-name", env.Environment)
	if !errors.Is(err, config.ErrConfigNotFound) {
		t.Fatalf("got %v, want ErrConfigNotFound", err)
	}
	if !strings.Contains(err.Error(), "go-mdfix") {
		t.Errorf("error should suggest a config location, got %v", err)
	}
}

func TestLoadConfig_TimeoutHint(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "slow.yaml", "matchTimeout: 5m\n")
	env := newTestEnv(nil)
	_, err := loadConfig(path, env.Environment)
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("got %v, want ErrInvalidConfig", err)
	}
	if !strings.Contains(err.Error(), "hint: matchTimeout") {
		t.Errorf("error should explain matchTimeout, got %v", err)
	}
}

func TestTriedPaths(t *testing.T) {
	t.Parallel()

	err := errors.New("config file not found: tried a.yaml, a.yml")
	if diff := cmp.Diff([]string{"a.yaml", "a.yml"}, triedPaths(err)); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
	if got := triedPaths(errors.New("other")); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

// ---------------------------------------------------------------------------
// TestMergeFlags - CLI wins over config
// ---------------------------------------------------------------------------

func TestMergeChainFlags(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Processors = []string{mdfix.Diacritics}
	cfg.TypesFile = "config.txt"

	mergeChainFlags(&chainFlags{processors: " ltag-migrator , unit-spacing ", replacements: "dict.txt"}, cfg)

	if diff := cmp.Diff([]string{mdfix.LtagMigrator, mdfix.UnitSpacing}, cfg.Processors); diff != "" {
		t.Errorf("processors mismatch (-want +got):\n%s", diff)
	}
	if cfg.TypesFile != "config.txt" {
		t.Errorf("TypesFile = %q, want config value kept", cfg.TypesFile)
	}
	if cfg.ReplacementsFile != "dict.txt" {
		t.Errorf("ReplacementsFile = %q, want %q", cfg.ReplacementsFile, "dict.txt")
	}
}

func TestMergeCommonFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		flags commonFlags
		want  config.LogConfig
	}{
		{"none", commonFlags{}, config.LogConfig{Level: "info", Format: "console"}},
		{"verbose", commonFlags{verbose: true}, config.LogConfig{Level: "debug", Format: "console"}},
		{"quiet", commonFlags{quiet: true}, config.LogConfig{Level: "error", Format: "console"}},
		{"verbose wins", commonFlags{verbose: true, quiet: true}, config.LogConfig{Level: "debug", Format: "console"}},
		{"format", commonFlags{logFormat: "json"}, config.LogConfig{Level: "info", Format: "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			mergeCommonFlags(&tt.flags, cfg)
			if cfg.Log != tt.want {
				t.Errorf("got %+v, want %+v", cfg.Log, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestBuildProcessor - Registry options from config
// ---------------------------------------------------------------------------

func TestBuildProcessor(t *testing.T) {
	t.Parallel()

	t.Run("default chain", func(t *testing.T) {
		t.Parallel()

		p, err := buildProcessor(config.DefaultConfig(), false, logging.Nop())
		if err != nil {
			t.Fatalf("buildProcessor() error: %v", err)
		}
		if diff := cmp.Diff(mdfix.DefaultNames(), p.Names()); diff != "" {
			t.Errorf("names mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("no bbcode", func(t *testing.T) {
		t.Parallel()

		p, err := buildProcessor(config.DefaultConfig(), true, logging.Nop())
		if err != nil {
			t.Fatalf("buildProcessor() error: %v", err)
		}
		if slices.Contains(p.Names(), mdfix.BBCode) {
			t.Errorf("names = %v, want no %s", p.Names(), mdfix.BBCode)
		}
	})

	t.Run("types and dictionary", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		cfg := config.DefaultConfig()
		cfg.Processors = []string{mdfix.InternalLinks, mdfix.Replacements}
		cfg.TypesFile = writeFile(t, dir, "types.txt", "786432|r\n")
		cfg.ReplacementsFile = writeFile(t, dir, "dict.txt", "# accents\n    ecrin >> écrin\n")
		cfg.MatchTimeout = "2s"

		p, err := buildProcessor(cfg, false, logging.Nop())
		if err != nil {
			t.Fatalf("buildProcessor() error: %v", err)
		}
		res := p.Fix("[[786432|voie]] un ecrin")
		if want := "[[routes/786432|voie]] un écrin"; res.Text != want {
			t.Errorf("got %q, want %q", res.Text, want)
		}
	})

	t.Run("unknown processor", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Processors = []string{"nope"}
		_, err := buildProcessor(cfg, false, logging.Nop())
		if !errors.Is(err, mdfix.ErrUnknownProcessor) {
			t.Errorf("got %v, want ErrUnknownProcessor", err)
		}
	})
}
