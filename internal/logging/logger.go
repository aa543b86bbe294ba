// Package logging builds the zerolog logger used for diagnostics on stderr.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Format values accepted by New
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options configures the logger
type Options struct {
	Level   string
	Format  string
	Verbose bool
	NoColor bool
}

// New creates a logger writing to w. Verbose forces debug level.
// Unknown levels fall back to warn so normal runs stay quiet.
func New(w io.Writer, opts Options) zerolog.Logger {
	level := ParseLevel(opts.Level)
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	out := w
	if !strings.EqualFold(opts.Format, FormatJSON) {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.TimeOnly,
			NoColor:    opts.NoColor,
		}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to warn
func ParseLevel(s string) zerolog.Level {
	if strings.TrimSpace(s) == "" {
		return zerolog.WarnLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.WarnLevel
	}
	return level
}
