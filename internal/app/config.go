package app

import "fmt"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	CodecsPath       string // explicit built-in search directory; empty means resolve normally
	ClientCodecsPath string // explicit client search directory; empty means resolve normally

	Preload bool

	Output    string // "text" or "json"
	LogFormat string
	LogLevel  string
}

// NewConfig validates and returns the configuration.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Output == "" {
		cfg.Output = "text"
	}
	if cfg.Output != "text" && cfg.Output != "json" {
		return nil, fmt.Errorf("invalid output format %q: must be 'text' or 'json'", cfg.Output)
	}

	return &cfg, nil
}
