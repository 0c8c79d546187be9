// Package logger builds the structured zerolog logger used across the
// service. Construct it once in main and pass it down explicitly.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New creates a logger at the given level. When pretty is true the output
// is a human-friendly console writer; otherwise pure JSON for production.
func New(level string, pretty bool) zerolog.Logger {
	return NewWithOutput(level, pretty, os.Stdout)
}

// NewWithOutput is New with an explicit output writer, mainly for tests.
func NewWithOutput(level string, pretty bool, out io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	if pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
