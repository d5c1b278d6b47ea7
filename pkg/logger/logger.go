// Package logger configures the process-wide zerolog logger.
package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds the root logger. level accepts zerolog level names; anything
// unrecognized falls back to info. format "json" emits machine output,
// anything else gets the console writer.
func New(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if format == "json" || os.Getenv("LOG_FORMAT") == "json" {
		return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
	}
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
