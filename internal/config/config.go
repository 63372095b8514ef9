// # internal/config/config.go
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	ScanPaths []string        `toml:"scan_paths"`
	Languages map[string]bool `toml:"languages"` // Per-language enable overrides
	Exclude   Exclude         `toml:"exclude"`
	Watch     Watch           `toml:"watch"`
	Output    Output          `toml:"output"`
	Server    Server          `toml:"server"`
	History   History         `toml:"history"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Watch struct {
	Debounce        time.Duration `toml:"debounce"`
	MaxEventsPerSec float64       `toml:"max_events_per_sec"`
}

type Output struct {
	TSV      string `toml:"tsv"`
	Markdown string `toml:"markdown"`
}

type Server struct {
	Addr    string `toml:"addr"`
	OpenAPI string `toml:"openapi"` // Path to the served API contract
}

type History struct {
	Path   string `toml:"path"`
	Window string `toml:"window"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 500 * time.Millisecond
	}
	if cfg.Watch.MaxEventsPerSec == 0 {
		cfg.Watch.MaxEventsPerSec = 50
	}
	if len(cfg.ScanPaths) == 0 {
		cfg.ScanPaths = []string{"."}
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = "127.0.0.1:8921"
	}
	if cfg.History.Window == "" {
		cfg.History.Window = "24h"
	}
}
