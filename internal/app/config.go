package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// InputPath is a manifest file or a directory of manifest files.
	InputPath string

	Trace     bool
	LogFormat string
	LogLevel  string
	// Buffer is the per-pipe queue capacity; zero means unbounded.
	Buffer int
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.InputPath == "" {
		return nil, errors.New("InputPath is a required configuration field and cannot be empty")
	}
	if cfg.Buffer < 0 {
		return nil, errors.New("Buffer cannot be negative")
	}
	return &cfg, nil
}
