// Package logging provides the structured logger factory for ffxl
// diagnostic output.
//
// It configures [log/slog] with a JSON handler and a configurable minimum
// level. Evaluation diagnostics are emitted at debug level, so [Dev] is the
// logger the dev-mode observer wants.
package logging

import (
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
)

var levels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// New creates a [slog.Logger] that writes JSON to stderr at the given level.
// Accepted level strings (case-insensitive): "debug", "info", "warn",
// "error". Anything else, including the empty string, means "info".
func New(level string) *slog.Logger {
	return NewWithWriter(level, os.Stderr)
}

// NewWithWriter creates a [slog.Logger] writing JSON to w at the given level.
func NewWithWriter(level string, w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))
}

// Dev creates the debug-level stderr logger used when dev mode is on. Every
// evaluation record passes its level gate.
func Dev() *slog.Logger {
	return New("debug")
}

// Discard returns a logger that drops every record. Handy in tests and as a
// stand-in where a logger is required but output is unwanted.
func Discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(math.MaxInt),
	}))
}

// ParseLevel converts a level string to a [slog.Level].
// Returns [slog.LevelInfo] for unrecognised values.
func ParseLevel(s string) slog.Level {
	if lvl, ok := levels[strings.ToLower(strings.TrimSpace(s))]; ok {
		return lvl
	}
	return slog.LevelInfo
}
