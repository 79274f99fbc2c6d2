// Package logger provides slog helpers for the app.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/handsomefox/movie-discovery/internal/env"
)

// New builds the process logger. Production writes JSON to stderr; local runs
// get the text handler with source locations.
func New(e env.Environment, level slog.Level) *slog.Logger {
	return NewWriter(os.Stderr, e, level)
}

func NewWriter(w io.Writer, e env.Environment, level slog.Level) *slog.Logger {
	if e == env.Production {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	}))
}

// ParseLevel maps LOG_LEVEL values onto slog levels, falling back to def.
func ParseLevel(raw string, def slog.Level) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return def
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("err", "nil")
	}
	return slog.String("err", err.Error())
}
