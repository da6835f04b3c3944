package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-mdfix/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MDFIX_CONFIG: config file name or path
	Workers    int    // MDFIX_WORKERS: parallel workers
	TypesFile  string // MDFIX_TYPES: document type table
}

// knownEnvVars lists valid MDFIX_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDFIX_CONFIG":  true,
	"MDFIX_WORKERS": true,
	"MDFIX_TYPES":   true,
}

// loadEnvConfig reads configuration from environment variables.
// An unparsable or non-positive MDFIX_WORKERS is ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("MDFIX_CONFIG"),
		TypesFile:  getenv("MDFIX_TYPES"),
	}
	if workers := getenv("MDFIX_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}
	return cfg
}

// warnUnknownEnvVars writes a warning for each unrecognized MDFIX_* variable.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, "MDFIX_") {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies environment values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Workers > 0 && cfg.Workers == 0 {
		cfg.Workers = env.Workers
	}
	if env.TypesFile != "" && cfg.TypesFile == "" {
		cfg.TypesFile = env.TypesFile
	}
}
