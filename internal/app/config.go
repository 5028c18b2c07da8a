package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Path       string // .golit file or directory
	ConfigPath string // settings file, optional

	LogFormat string
	LogLevel  string
	Workers   int
	Check     bool
	// Init asks for a default settings file to be written into Path
	// instead of a generation run.
	Init bool
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.Path == "" {
		return nil, errors.New("Path is a required configuration field and cannot be empty")
	}
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}

	return &cfg, nil
}
