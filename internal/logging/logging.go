// Package logging builds the process logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/alexanderramin/sprintburn/internal/config"
)

// New returns a logger writing to stderr: human-readable on a terminal (or
// when format is "console"), JSON otherwise. It also becomes the global
// zerolog logger.
func New(cfg config.LogConfig) zerolog.Logger {
	logger := NewWithWriter(cfg, os.Stderr, isTerminal(os.Stderr))
	log.Logger = logger
	return logger
}

// NewWithWriter builds a logger on w. tty reports whether w is a terminal
// and only matters for the "auto" format.
func NewWithWriter(cfg config.LogConfig, w io.Writer, tty bool) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var out io.Writer = w
	switch strings.ToLower(cfg.Format) {
	case "console":
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	case "json":
	default:
		if tty {
			out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		}
	}

	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
