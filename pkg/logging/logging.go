// Package logging configures colored structured logging with tint.
//
// Usage:
//
//	logger := logging.New(os.Stderr, logging.Options{Level: "debug"})
//	logging.Setup(logging.Options{})  // level from LOG_LEVEL, sets slog default
//
// Environment variables:
//
//	LOG_LEVEL: debug, info, warn, error (default: info)
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Options selects the handler settings.
type Options struct {
	// Level is one of debug, info, warn or error. Empty reads LOG_LEVEL.
	Level     string
	AddSource bool
	NoColor   bool
}

// New returns a tint-backed logger writing to w.
func New(w io.Writer, opts Options) *slog.Logger {
	level := opts.Level
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      ParseLevel(level),
		TimeFormat: time.Kitchen,
		AddSource:  opts.AddSource,
		NoColor:    opts.NoColor,
	}))
}

// Setup installs a stderr logger as the slog default and returns it.
func Setup(opts Options) *slog.Logger {
	logger := New(os.Stderr, opts)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
