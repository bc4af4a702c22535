package app

import (
	"io"
	"log/slog"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	// outW is the program's delivery stream; logs go to logW so delivered
	// bytes stay clean.
	outW   io.Writer
	logW   io.Writer
	logger *slog.Logger
	config *Config
}

// New is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger.
func New(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, cfg.Trace, logW)
	logger.Debug("Logger configured successfully.")
	return &App{
		outW:   outW,
		logW:   logW,
		logger: logger,
		config: cfg,
	}
}
