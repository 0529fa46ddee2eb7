package config

import "time"

// Config holds the application configuration.
type Config struct {
	Theme          string        `yaml:"theme"`
	DefaultTimeout time.Duration `yaml:"default_timeout"`
	Insecure       bool          `yaml:"insecure"`
	HistoryLimit   int           `yaml:"history_limit"`
	RequestDir     string        `yaml:"request_dir"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Theme:          "catppuccin-mocha",
		DefaultTimeout: 30 * time.Second,
		Insecure:       false,
		HistoryLimit:   500,
		RequestDir:     "",
	}
}
