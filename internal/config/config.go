// Package config loads the mdfix YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/alnah/go-mdfix/internal/logging"
	"github.com/alnah/go-mdfix/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidConfig   = errors.New("invalid config")
)

// Limits.
const (
	MaxWorkers      = 64
	MaxPathLength   = 4096
	MaxNameLength   = 64
	MaxMatchTimeout = time.Minute
)

// DirName is the directory searched under the user config directory.
const DirName = "go-mdfix"

// Langs lists the wiki languages a config may restrict processing to.
var Langs = []string{"fr", "it", "de", "en", "es", "ca", "eu", "sl", "zh"}

// Config holds the settings of an mdfix run. Zero values mean "use the
// default": the default chain, no document types, no dictionary, every
// language, an automatic worker count.
type Config struct {
	Processors       []string  `yaml:"processors"`
	TypesFile        string    `yaml:"typesFile"`
	ReplacementsFile string    `yaml:"replacementsFile"`
	Langs            []string  `yaml:"langs"`
	Workers          int       `yaml:"workers"`
	MatchTimeout     string    `yaml:"matchTimeout"` // Go duration, e.g. "2s"
	Log              LogConfig `yaml:"log"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console, json, or pretty
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: "info", Format: "console"},
	}
}

// Timeout returns the parsed match timeout, or zero when unset.
// Call Validate first; an unparsable value yields zero.
func (c *Config) Timeout() time.Duration {
	if c.MatchTimeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.MatchTimeout)
	if err != nil {
		return 0
	}
	return d
}

// Validate checks field ranges and enumerations.
// Called automatically by LoadConfig.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Processors, validation.Each(validation.Required, validation.Length(1, MaxNameLength))),
		validation.Field(&c.TypesFile, validation.Length(0, MaxPathLength)),
		validation.Field(&c.ReplacementsFile, validation.Length(0, MaxPathLength)),
		validation.Field(&c.Langs, validation.Each(validation.In(toAny(Langs)...))),
		validation.Field(&c.Workers, validation.Min(0), validation.Max(MaxWorkers)),
		validation.Field(&c.MatchTimeout, validation.By(validateDuration)),
		validation.Field(&c.Log),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Validate checks the level and format names.
func (l LogConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.By(caseInsensitiveIn(logging.ValidLevels))),
		validation.Field(&l.Format, validation.By(caseInsensitiveIn(logging.ValidFormats))),
	)
}

func validateDuration(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return validation.NewError("validation_duration_invalid", "must be a duration such as 2s")
	}
	if d <= 0 || d > MaxMatchTimeout {
		return validation.NewError("validation_duration_range", fmt.Sprintf("must be between 0 and %s", MaxMatchTimeout))
	}
	return nil
}

func caseInsensitiveIn(valid []string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		for _, v := range valid {
			if strings.EqualFold(s, v) {
				return nil
			}
		}
		return validation.NewError("validation_in_invalid", "must be one of "+strings.Join(valid, ", "))
	}
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\") || strings.HasSuffix(s, ".yaml") || strings.HasSuffix(s, ".yml")
}

// resolveConfigPath searches for a config file by name.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-mdfix/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	tried := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		local := name + ext
		if fileExists(local) {
			return local, nil
		}
		tried = append(tried, local)
	}

	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			user := filepath.Join(dir, DirName, name+ext)
			if fileExists(user) {
				return user, nil
			}
			tried = append(tried, user)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
