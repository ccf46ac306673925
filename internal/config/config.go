// Package config holds the project configuration and the fixed names the
// translator recognizes.
//
// A project may carry a catalyst.yaml next to its sources:
//
//	output: main        # stem of the emitted .cpp file
//	indent: "    "      # indentation unit for emitted code
//	cache: .catalyst.db # sqlite translation cache (empty disables it)
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the parsed catalyst.yaml.
type Config struct {
	// Output is the stem of the emitted translation unit, without
	// extension. Defaults to "main".
	Output string `yaml:"output,omitempty"`

	// Indent is the indentation unit used in emitted code.
	// Defaults to four spaces.
	Indent string `yaml:"indent,omitempty"`

	// Cache is the path of the sqlite translation cache. Empty disables
	// caching.
	Cache string `yaml:"cache,omitempty"`
}

// Default returns the configuration used when no catalyst.yaml exists.
func Default() *Config {
	return &Config{
		Output: OutputFileName,
		Indent: "    ",
	}
}

// Load reads and validates a catalyst.yaml. Missing fields keep their
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.Output == "" {
		cfg.Output = OutputFileName
	}
	if cfg.Indent == "" {
		cfg.Indent = "    "
	}
	return cfg, nil
}
