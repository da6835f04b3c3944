package config

// Notes:
// - resolveConfigPath user-dir branch: covered by pointing XDG_CONFIG_HOME at
//   a temp dir, which is honored by os.UserConfigDir on Unix only.
// - Tests that chdir or set env do not run in parallel.

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestDefaultConfig
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if len(cfg.Processors) != 0 {
		t.Errorf("Processors = %v, want empty", cfg.Processors)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "console" {
		t.Errorf("Log = %+v, want info/console", cfg.Log)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Validate
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		wantMsg string
	}{
		{name: "zero", cfg: Config{}},
		{
			name: "full",
			cfg: Config{
				Processors:       []string{"bbcode", "ltag-cleaner"},
				TypesFile:        "ids.txt",
				ReplacementsFile: "replacements.txt",
				Langs:            []string{"fr", "it"},
				Workers:          4,
				MatchTimeout:     "2s",
				Log:              LogConfig{Level: "DEBUG", Format: "json"},
			},
		},
		{name: "empty processor name", cfg: Config{Processors: []string{""}}, wantErr: true, wantMsg: "processors"},
		{name: "unknown lang", cfg: Config{Langs: []string{"fr", "xx"}}, wantErr: true, wantMsg: "langs"},
		{name: "negative workers", cfg: Config{Workers: -1}, wantErr: true, wantMsg: "workers"},
		{name: "too many workers", cfg: Config{Workers: MaxWorkers + 1}, wantErr: true, wantMsg: "workers"},
		{name: "bad duration", cfg: Config{MatchTimeout: "soon"}, wantErr: true, wantMsg: "matchTimeout"},
		{name: "zero duration", cfg: Config{MatchTimeout: "0s"}, wantErr: true, wantMsg: "matchTimeout"},
		{name: "duration too long", cfg: Config{MatchTimeout: "2m"}, wantErr: true, wantMsg: "matchTimeout"},
		{name: "bad level", cfg: Config{Log: LogConfig{Level: "loud"}}, wantErr: true, wantMsg: "level"},
		{name: "bad format", cfg: Config{Log: LogConfig{Format: "xml"}}, wantErr: true, wantMsg: "format"},
		{
			name:    "path too long",
			cfg:     Config{TypesFile: strings.Repeat("a", MaxPathLength+1)},
			wantErr: true,
			wantMsg: "typesFile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("error = %v, want ErrInvalidConfig", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want mention of %q", err, tt.wantMsg)
			}
		})
	}
}

func TestConfig_Timeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want time.Duration
	}{
		{in: "", want: 0},
		{in: "1500ms", want: 1500 * time.Millisecond},
		{in: "nope", want: 0},
	}
	for _, tt := range tests {
		cfg := Config{MatchTimeout: tt.in}
		if got := cfg.Timeout(); got != tt.want {
			t.Errorf("Timeout(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig
// ---------------------------------------------------------------------------

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()
		if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("file path", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "mdfix.yaml")
		writeFile(t, path, `processors: [bbcode, ltag-cleaner]
typesFile: ids.txt
langs: [fr]
workers: 4
matchTimeout: 2s
log:
  level: debug
`)
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error: %v", err)
		}
		want := &Config{
			Processors:   []string{"bbcode", "ltag-cleaner"},
			TypesFile:    "ids.txt",
			Langs:        []string{"fr"},
			Workers:      4,
			MatchTimeout: "2s",
			Log:          LogConfig{Level: "debug", Format: "console"},
		}
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfig(filepath.Join(t.TempDir(), "none.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "mdfix.yaml")
		writeFile(t, path, "processor: [bbcode]\n")
		if _, err := LoadConfig(path); !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "mdfix.yaml")
		writeFile(t, path, "workers: 1000\n")
		if _, err := LoadConfig(path); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("error = %v, want ErrInvalidConfig", err)
		}
	})

	t.Run("unknown name lists tried paths", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfig("mdfix-does-not-exist")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "mdfix-does-not-exist.yml") {
			t.Errorf("error = %q, want the tried paths", err)
		}
	})
}

func TestLoadConfig_UserConfigDir(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("XDG_CONFIG_HOME is only honored on Unix")
	}

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	writeFile(t, filepath.Join(dir, DirName, "mdfix-user.yml"), "workers: 2\n")

	cfg, err := LoadConfig("mdfix-user")
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Workers)
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{in: "mdfix", want: false},
		{in: "mdfix.yaml", want: true},
		{in: "conf.yml", want: true},
		{in: "./mdfix", want: true},
		{in: `dir\mdfix`, want: true},
	}
	for _, tt := range tests {
		if got := isFilePath(tt.in); got != tt.want {
			t.Errorf("isFilePath(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
