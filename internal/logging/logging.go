// Package logging configures structured JSON logging for the backend.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// New builds the process logger: a JSON handler on stdout wrapped by the
// sanitizing handler, at the level named by the configuration.
func New(level string) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(level),
	})

	return slog.New(NewSanitizeHandler(handler))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
