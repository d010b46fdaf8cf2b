package app

import (
	"errors"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ManifestPath string // suite manifest file or directory
	EventsPath   string // recorded lifecycle event stream (JSON lines)

	ForwardURL string // optional socket.io observer endpoint

	LogFormat   string
	LogLevel    string
	MaxFailures int
	WaitTimeout time.Duration
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ManifestPath == "" && cfg.EventsPath == "" {
		return nil, errors.New("at least one of ManifestPath and EventsPath is required")
	}
	if cfg.ForwardURL != "" && cfg.EventsPath == "" {
		return nil, errors.New("ForwardURL requires EventsPath; there is nothing to forward otherwise")
	}
	return &cfg, nil
}
