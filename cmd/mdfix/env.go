package main

import (
	"io"
	"os"
	"time"

	"github.com/alnah/go-mdfix/internal/logging"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now       func() time.Time
	Stdout    io.Writer
	Stderr    io.Writer
	Getenv    func(string) string
	Environ   func() []string
	NewLogger func(logging.Config) (logging.Logger, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:       time.Now,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Getenv:    os.Getenv,
		Environ:   os.Environ,
		NewLogger: newLogger,
	}
}

func newLogger(cfg logging.Config) (logging.Logger, error) {
	p, err := logging.NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	return p.Get("mdfix.cli"), nil
}
