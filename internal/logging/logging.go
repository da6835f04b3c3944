// Package logging adapts go-logger to the small logging contract used by the
// CLI and the processor registry.
package logging

import (
	"errors"
	"fmt"
	"strings"

	glog "github.com/goliatone/go-logger/glog"
)

// ErrUnsupportedFormat is returned for an unknown log format.
var ErrUnsupportedFormat = errors.New("unsupported log format")

// Logger is the structured logger contract. Arguments are key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Config selects the level and output format.
type Config struct {
	Level     string // trace, debug, info, warn, error
	Format    string // console, json, pretty
	AddSource bool
}

// Provider hands out named child loggers sharing one root.
type Provider struct {
	root *glog.BaseLogger
}

// NewProvider builds the root logger. An empty format means console.
func NewProvider(cfg Config) (*Provider, error) {
	options := []glog.Option{}

	if level := normalizeLevel(cfg.Level); level != "" {
		options = append(options, glog.WithLevel(level))
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "console":
		options = append(options, glog.WithLoggerTypeConsole())
	case "json":
		options = append(options, glog.WithLoggerTypeJSON())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, cfg.Format)
	}

	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}

	return &Provider{root: glog.NewLogger(options...)}, nil
}

// Get returns the child logger called name, or the root logger when name is
// empty. A nil Provider yields Nop.
func (p *Provider) Get(name string) Logger {
	if p == nil || p.root == nil {
		return Nop()
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return &adapter{inner: p.root}
	}
	return &adapter{inner: p.root.GetLogger(name)}
}

type adapter struct {
	inner glog.Logger
}

func (l *adapter) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *adapter) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *adapter) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *adapter) Error(msg string, args ...any) { l.inner.Error(msg, args...) }

// Nop returns a Logger that discards everything.
func Nop() Logger { return nop{} }

type nop struct{}

func (nop) Debug(string, ...any) {}
func (nop) Info(string, ...any)  {}
func (nop) Warn(string, ...any)  {}
func (nop) Error(string, ...any) {}

// ValidLevels lists the accepted level names.
var ValidLevels = []string{"trace", "debug", "info", "warn", "warning", "error"}

// ValidFormats lists the accepted format names.
var ValidFormats = []string{"console", "json", "pretty"}

func normalizeLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return glog.Trace
	case "debug":
		return glog.Debug
	case "info":
		return glog.Info
	case "warn", "warning":
		return glog.Warn
	case "error":
		return glog.Error
	default:
		return ""
	}
}
