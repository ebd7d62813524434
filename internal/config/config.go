// Package config provides configuration management for todotrack.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"
	// TrackDir is the todotrack configuration directory under $HOME.
	TrackDir = ".todotrack"
)

// Config represents the todotrack configuration. Store and summaries
// locations are explicit values rather than fixed constants so tests and
// alternate setups can point them at temporary locations.
type Config struct {
	// StorePath is the location of the SQLite database file.
	StorePath string `yaml:"store_path" mapstructure:"store_path"`

	// SummariesDir is where daily summary artifacts are written.
	SummariesDir string `yaml:"summaries_dir" mapstructure:"summaries_dir"`

	// ListenAddr is the REST API listen address.
	ListenAddr string `yaml:"listen_addr" mapstructure:"listen_addr"`
}

// Default returns the default configuration rooted under the user's home
// directory.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fall back to relative paths when no home is resolvable.
		home = "."
	}
	base := filepath.Join(home, TrackDir)
	return &Config{
		StorePath:    filepath.Join(base, "tracker.db"),
		SummariesDir: filepath.Join(base, "summaries"),
		ListenAddr:   ":8321",
	}
}

// LoadFrom loads configuration from the given file path. Missing file
// returns defaults; present fields override defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to the given file path, creating the
// parent directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(TrackDir, ConfigFileName)
	}
	return filepath.Join(home, TrackDir, ConfigFileName)
}
