// Package logging builds the application logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Environment names
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// DefaultLevel is used when no valid level is configured
const DefaultLevel = zerolog.InfoLevel

// New constructs a timestamped zerolog.Logger. In development the output is
// human-readable and the level defaults to debug.
func New(appEnv, level string) zerolog.Logger {
	return NewWithWriter(os.Stderr, appEnv, level)
}

// NewWithWriter is New with an explicit output
func NewWithWriter(w io.Writer, appEnv, level string) zerolog.Logger {
	development := strings.EqualFold(appEnv, EnvDevelopment)

	lvl := ParseLevel(level)
	if level == "" && development {
		lvl = zerolog.DebugLevel
	}

	if development {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// ParseLevel returns the zerolog level for s, or DefaultLevel if s is empty or invalid
func ParseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultLevel
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return DefaultLevel
	}
	return lvl
}

// Logger aliases zerolog.Logger for callers that only pass loggers around
type Logger = zerolog.Logger
