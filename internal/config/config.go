// Package config provides configuration management for netgrapher.
//
// The config file holds the operator's standing preferences (savefile
// location, format, logging); per-run decisions stay on the command line
// and override whatever the file says.
//
// Config file locations (priority order):
//  1. $NETGRAPHER_CONFIG
//  2. ./netgrapher.yaml
//  3. ~/.config/netgrapher/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration
type Config struct {
	// Savefile is the base name of the persisted graph; the format
	// extension is appended to it
	Savefile string `yaml:"savefile"`
	// Format selects the graph serialization: json, yaml, dot, graphml
	// or sqlite
	Format string `yaml:"format"`
	Log    Log    `yaml:"log"`
	Serve  Serve  `yaml:"serve"`
}

// Log configures logging
type Log struct {
	Level string `yaml:"level"`
}

// Serve configures the optional preview server
type Serve struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig returns the defaults used when no config file exists
func DefaultConfig() *Config {
	return &Config{
		Savefile: "networkmap",
		Format:   "json",
		Log:      Log{Level: "info"},
		Serve:    Serve{Addr: "127.0.0.1:8000"},
	}
}

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		return DefaultConfig(), "", nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, path, nil
}

// FindConfigPath returns the first config file that exists, or ""
func FindConfigPath() string {
	if p := os.Getenv("NETGRAPHER_CONFIG"); p != "" {
		return p
	}

	candidates := []string{"./netgrapher.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "netgrapher", "config.yaml"))
	}

	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Savefile == "" {
		c.Savefile = "networkmap"
	}
	if c.Format == "" {
		c.Format = "json"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = "127.0.0.1:8000"
	}
}
