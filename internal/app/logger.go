package app

import (
	"io"
	"log/slog"
)

// logLevels maps the validated log-level names accepted by the CLI to their
// slog levels. An unknown name falls through to the map's zero value, which
// is slog.LevelInfo.
var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// newLogger builds the app's isolated logger from an already-validated
// Config. The process-global logger is left untouched so that multiple app
// instances (and tests) can log to independent sinks.
func newLogger(cfg *Config, outW io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: logLevels[cfg.LogLevel]}

	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(outW, opts))
	}
	return slog.New(slog.NewJSONHandler(outW, opts))
}
