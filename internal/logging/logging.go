package logging

import (
	"io"
	"log/slog"

	"github.com/daaffalbari/portfolio/internal/config"
)

// Setup installs the default slog logger writing to w.
func Setup(cfg config.LogConfig, w io.Writer) {
	slog.SetDefault(New(cfg, w))
}

// New builds a logger with the configured level and format.
func New(cfg config.LogConfig, w io.Writer) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel maps debug, info, warn and error; anything else is info.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
