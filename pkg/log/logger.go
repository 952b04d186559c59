package log

import (
	"io"
	"log/slog"
	"os"
)

// New constructs a JSON slog.Logger preconfigured at info level. Output
// goes to stderr: stdout carries the MCP protocol stream
func New(service, env, version string) *slog.Logger {
	return NewWithLevel(service, env, version, slog.LevelInfo)
}

// NewWithLevel constructs a JSON slog.Logger at the provided level
func NewWithLevel(
	service, env, version string, lvl slog.Level,
) *slog.Logger {
	return NewWithWriter(service, env, version, lvl, os.Stderr)
}

// NewWithWriter constructs a JSON slog.Logger writing to the provided
// destination
func NewWithWriter(
	service, env, version string, lvl slog.Level, w io.Writer,
) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: lvl,
	})

	return slog.New(handler).With(
		slog.String("service", service),
		slog.String("env", env),
		slog.String("version", version))
}
