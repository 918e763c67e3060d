// Package config handles data-directory resolution and the optional
// config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// HistoryConfig tunes the history import command.
type HistoryConfig struct {
	File  string `yaml:"file"`  // overrides history-file resolution
	Limit int    `yaml:"limit"` // max entries offered to the selector
}

// SelectorConfig names the external fuzzy-selection program.
type SelectorConfig struct {
	Bin string `yaml:"bin"`
}

// Config is the user-tunable configuration read from config.yaml in the
// data directory. Missing keys keep their defaults.
type Config struct {
	History  HistoryConfig  `yaml:"history"`
	Selector SelectorConfig `yaml:"selector"`
}

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		History:  HistoryConfig{Limit: 200},
		Selector: SelectorConfig{Bin: "fzf"},
	}
}

// DataDir resolves the aka data directory.
// Priority: AKA_DATA_DIR env → $XDG_DATA_HOME/aka → ~/.local/share/aka.
func DataDir() string {
	if env := os.Getenv("AKA_DATA_DIR"); env != "" {
		return env
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "aka")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "aka")
}

// DBPath returns the alias database path under dataDir, which defaults to
// DataDir() when empty.
func DBPath(dataDir string) string {
	if dataDir == "" {
		dataDir = DataDir()
	}
	return filepath.Join(dataDir, "aka.db")
}

// Load reads config.yaml from dataDir (resolved like DBPath). A missing
// file yields Default() with no error; present keys override defaults.
func Load(dataDir string) (*Config, error) {
	cfg := Default()
	if dataDir == "" {
		dataDir = DataDir()
	}

	data, err := os.ReadFile(filepath.Join(dataDir, "config.yaml"))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	// Unmarshal into a plain map so only the keys that are present apply.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	if h, ok := raw["history"].(map[string]any); ok {
		if v, ok := h["file"].(string); ok && v != "" {
			cfg.History.File = v
		}
		if v, ok := h["limit"].(int); ok && v > 0 {
			cfg.History.Limit = v
		}
	}
	if s, ok := raw["selector"].(map[string]any); ok {
		if v, ok := s["bin"].(string); ok && v != "" {
			cfg.Selector.Bin = v
		}
	}

	return cfg, nil
}
