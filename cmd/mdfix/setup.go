package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-mdfix"
	"github.com/alnah/go-mdfix/internal/config"
	"github.com/alnah/go-mdfix/internal/hints"
	"github.com/alnah/go-mdfix/internal/logging"
)

// ErrUsage wraps flag parsing and argument errors.
var ErrUsage = errors.New("invalid usage")

// dictionaryLangs restricts dictionary groups: the shipped dictionaries fix
// French spelling.
var dictionaryLangs = []string{"fr"}

// loadConfig loads the config named by the flag, else by MDFIX_CONFIG, else
// returns the defaults. Environment values fill unset fields.
func loadConfig(flagConfig string, env *Environment) (*config.Config, error) {
	envCfg := loadEnvConfig(env.Getenv)
	warnUnknownEnvVars(env.Stderr, env.Environ())

	name := flagConfig
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			switch {
			case errors.Is(err, config.ErrConfigNotFound):
				err = fmt.Errorf("%w%s", err, hints.ForConfigNotFound(triedPaths(err)))
			case errors.Is(err, config.ErrInvalidConfig) && strings.Contains(strings.ToLower(err.Error()), "matchtimeout"):
				err = fmt.Errorf("%w%s", err, hints.ForTimeout())
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// triedPaths extracts the "tried a, b" list of a config-not-found error.
func triedPaths(err error) []string {
	_, list, ok := strings.Cut(err.Error(), "tried ")
	if !ok {
		return nil
	}
	return strings.Split(list, ", ")
}

// mergeChainFlags applies processor flags over config values (CLI wins).
func mergeChainFlags(f *chainFlags, cfg *config.Config) {
	if names := mdfix.ParseNames(f.processors); len(names) > 0 {
		cfg.Processors = names
	}
	if f.types != "" {
		cfg.TypesFile = f.types
	}
	if f.replacements != "" {
		cfg.ReplacementsFile = f.replacements
	}
}

// mergeCommonFlags applies output flags over config values (CLI wins).
func mergeCommonFlags(f *commonFlags, cfg *config.Config) {
	switch {
	case f.verbose:
		cfg.Log.Level = "debug"
	case f.quiet:
		cfg.Log.Level = "error"
	}
	if f.logFormat != "" {
		cfg.Log.Format = f.logFormat
	}
}

// buildLogger creates the CLI logger from the merged config.
func buildLogger(cfg *config.Config, env *Environment) (logging.Logger, error) {
	l, err := env.NewLogger(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	return l, nil
}

// processorOptions turns the merged config into registry options, loading
// the type table and the dictionary.
func processorOptions(cfg *config.Config, noBBCode bool, logger logging.Logger) ([]mdfix.Option, error) {
	opts := []mdfix.Option{mdfix.WithLogger(logger)}

	if cfg.TypesFile != "" {
		lookup, err := mdfix.LoadDocumentTypes(cfg.TypesFile)
		if err != nil {
			return nil, fmt.Errorf("loading document types: %w%s", err, hints.ForTypesFile())
		}
		logger.Debug("document types loaded", "path", cfg.TypesFile)
		opts = append(opts, mdfix.WithDocumentTypes(lookup))
	}

	if cfg.ReplacementsFile != "" {
		groups, err := mdfix.LoadReplacements(cfg.ReplacementsFile, dictionaryLangs...)
		if err != nil {
			return nil, fmt.Errorf("loading replacements: %w%s", err, hints.ForReplacementsFile())
		}
		logger.Debug("replacements loaded", "path", cfg.ReplacementsFile, "groups", len(groups))
		opts = append(opts, mdfix.WithReplacements(groups))
	}

	if d := cfg.Timeout(); d > 0 {
		opts = append(opts, mdfix.WithMatchTimeout(d))
	}
	if noBBCode {
		opts = append(opts, mdfix.WithoutBBCode())
	}
	return opts, nil
}

// buildProcessor builds the configured processors, or the default chain.
func buildProcessor(cfg *config.Config, noBBCode bool, logger logging.Logger) (*mdfix.Processor, error) {
	opts, err := processorOptions(cfg, noBBCode, logger)
	if err != nil {
		return nil, err
	}

	var p *mdfix.Processor
	if len(cfg.Processors) > 0 {
		p, err = mdfix.New(cfg.Processors, opts...)
	} else {
		p, err = mdfix.NewDefaultChain(opts...)
	}
	if err != nil {
		if errors.Is(err, mdfix.ErrUnknownProcessor) {
			return nil, fmt.Errorf("%w%s", err, hints.ForUnknownProcessor(mdfix.Names()))
		}
		return nil, err
	}
	return p, nil
}
