// Package util provides shared logger construction for the dashboard
// binaries.
package util

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel maps a level string to a slog.Level. Supported levels:
// "debug", "info", "warn", "error". Unrecognised strings default to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a structured text logger on stderr at the given level.
// Stderr because the console client prints the dashboard itself on stdout.
func NewLogger(level string) *slog.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	return slog.New(handler)
}

// NewFileLogger creates a structured text logger appending to the file at
// path. The TUI logs to a file since it owns the terminal while running.
// The caller closes the returned file after the program exits.
func NewFileLogger(path, level string) (*slog.Logger, *os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	return slog.New(handler), f, nil
}

// SetDefault configures the provided logger as the default slog logger.
func SetDefault(logger *slog.Logger) {
	slog.SetDefault(logger)
}
