package app

import (
	"io"
	"log/slog"
)

// logLevels maps the accepted --log-level values. Unknown strings fall
// back to info.
var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// newLogger builds the app's isolated logger; the global slog default is
// left untouched. Tracing forces the debug level, since the trace sink
// emits its records there.
func newLogger(levelStr, formatStr string, trace bool, outW io.Writer) *slog.Logger {
	level, ok := logLevels[levelStr]
	if !ok {
		level = slog.LevelInfo
	}
	if trace {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}
