// Package config loads the optional YAML defaults file for the qrencode
// CLI, following the load-with-defaults pattern the reference CLI tooling
// in this codebase's lineage uses for its own YAML config.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds CLI defaults that flags may override.
type Config struct {
	ECL       string `yaml:"ecl"`
	Scale     int    `yaml:"scale"`
	Border    int    `yaml:"border"`
	OutputDir string `yaml:"output_dir"`
}

// Default returns the built-in defaults used when no config file is given.
func Default() Config {
	return Config{ECL: "m", Scale: 8, Border: 4, OutputDir: "."}
}

// Load reads and parses a YAML config file, filling in any field the file
// omits with the built-in defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if cfg.ECL == "" {
		cfg.ECL = "m"
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 8
	}
	if cfg.Border < 0 {
		cfg.Border = 4
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	return cfg, nil
}
