package logger

import (
	"log/slog"
	"os"
)

// New returns a structured logger writing to stdout: JSON in production,
// text elsewhere.
func New(production bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if !production {
		opts.Level = slog.LevelDebug
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
