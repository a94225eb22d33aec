// Package config holds the YAML-backed configuration for the aesop CLI:
// search limits, frontier strategy and logging verbosity, plus the
// problem file format the prove command consumes.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration.
type Config struct {
	Search  SearchConfig  `yaml:"search"`
	Logging LoggingConfig `yaml:"logging"`
}

// SearchConfig configures one proof search. Zero limits are unlimited.
type SearchConfig struct {
	// Strategy selects the frontier ordering:
	// best-first (default), depth-first or breadth-first.
	Strategy string `yaml:"strategy"`

	// MaxGoals stops a search once this many goals were created.
	MaxGoals int `yaml:"max_goals"`

	// MaxRuleApplications stops a search once this many rule
	// applications were created.
	MaxRuleApplications int `yaml:"max_rule_applications"`

	// MaxDepth forces goals at this rule-application depth
	// unprovable without expansion.
	MaxDepth int `yaml:"max_depth"`

	// Terminal fails hard instead of reporting residual goals when a
	// search ends without a proof.
	Terminal bool `yaml:"terminal"`
}

// LoggingConfig configures diagnostics output.
type LoggingConfig struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Search: SearchConfig{
			Strategy:            "best-first",
			MaxGoals:            10000,
			MaxRuleApplications: 10000,
			MaxDepth:            50,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads a YAML config file, filling omitted fields from Default.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch c.Search.Strategy {
	case "", "best-first", "depth-first", "breadth-first":
	default:
		return fmt.Errorf("unknown search strategy %q", c.Search.Strategy)
	}
	if c.Search.MaxGoals < 0 || c.Search.MaxRuleApplications < 0 || c.Search.MaxDepth < 0 {
		return fmt.Errorf("limits must be non-negative")
	}
	return nil
}
