// Package config loads the tool's YAML configuration, writing a
// default file on first run.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	// Data is the path of the working timeline JSON file.
	Data string `yaml:"data"`

	// Archive is the path of the snapshot SQLite database.
	Archive string `yaml:"archive"`

	// Listen is the HTTP listen address for `artimeline serve`.
	Listen string `yaml:"listen"`

	// Strict makes edit/delete of an unknown event id an error
	// instead of a silent no-op.
	Strict bool `yaml:"strict"`

	// ExportBase is the basename of exported artifacts; exports are
	// written as <ExportBase>.json / <ExportBase>.csv.
	ExportBase string `yaml:"export_base"`
}

// Default returns the in-memory default configuration rooted at dir
// (normally ~/.artimeline).
func Default(dir string) *Config {
	return &Config{
		Data:       filepath.Join(dir, "timeline.json"),
		Archive:    filepath.Join(dir, "snapshots.db"),
		Listen:     "127.0.0.1:8080",
		Strict:     false,
		ExportBase: "AR_Timeline_data",
	}
}

// Normalize fills missing values with defaults so partially-filled
// configs still behave.
func (c *Config) Normalize(dir string) {
	d := Default(dir)
	if c.Data == "" {
		c.Data = d.Data
	}
	if c.Archive == "" {
		c.Archive = d.Archive
	}
	if c.Listen == "" {
		c.Listen = d.Listen
	}
	if c.ExportBase == "" {
		c.ExportBase = d.ExportBase
	}
}

// Load reads the config at path. A missing file is a first run: the
// default config is written there (0600) and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}
	dir := filepath.Dir(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := Default(dir)
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.Normalize(dir)
	return &cfg, nil
}

// Save writes the configuration as YAML with 0600 permissions,
// creating the parent directory if needed.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
