package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for repoquant.
type Config struct {
	// Collectors controls which collectors run.
	Collectors CollectorConfig `koanf:"collectors"`

	// Estimate configures the cost estimator.
	Estimate EstimateConfig `koanf:"estimate"`

	// Exclude defines file exclusion rules applied while scanning.
	Exclude ExcludeConfig `koanf:"exclude"`

	// Output controls result rendering.
	Output OutputConfig `koanf:"output"`
}

// CollectorConfig controls the collector roster and its time budgets.
type CollectorConfig struct {
	// Extended enables the best-effort extended collectors (deps,
	// duplication, license, deadcode, gitstats, dockerlint, complexity).
	// The six core collectors always run.
	Extended bool `koanf:"extended"`

	// Disabled lists collector names to skip even when extended is on.
	Disabled []string `koanf:"disabled"`

	// TimeoutSeconds is the per-collector time budget.
	TimeoutSeconds int `koanf:"timeout_seconds"`

	// ToolTimeoutSeconds bounds each external tool invocation.
	ToolTimeoutSeconds int `koanf:"tool_timeout_seconds"`

	// RecentWindowDays is the git window for recent-commit and hotspot
	// metrics.
	RecentWindowDays int `koanf:"recent_window_days"`

	// MaxFiles caps how many files content-scanning collectors read.
	MaxFiles int `koanf:"max_files"`
}

// EstimateConfig configures the COCOMO estimator.
type EstimateConfig struct {
	// Region selects the rate table (ua, eu, us, de, pl, uk, in).
	Region string `koanf:"region"`

	// TeamExperience is low, nominal, or high.
	TeamExperience string `koanf:"team_experience"`
}

// ExcludeConfig defines file exclusion patterns.
type ExcludeConfig struct {
	Patterns   []string `koanf:"patterns"`
	Extensions []string `koanf:"extensions"`
	Dirs       []string `koanf:"dirs"`
	Gitignore  bool     `koanf:"gitignore"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format"` // text, json, markdown, toon
	Color   bool   `koanf:"color"`
	Verbose bool   `koanf:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Collectors: CollectorConfig{
			Extended:           true,
			TimeoutSeconds:     180,
			ToolTimeoutSeconds: 60,
			RecentWindowDays:   90,
			MaxFiles:           5000,
		},
		Estimate: EstimateConfig{
			Region:         "ua",
			TeamExperience: "nominal",
		},
		Exclude: ExcludeConfig{
			Patterns: []string{
				"*.min.js",
				"*.min.css",
			},
			Extensions: []string{
				".lock",
				".sum",
			},
			Dirs: []string{
				"vendor",
				"node_modules",
				".git",
				"dist",
				"build",
				"target",
				"__pycache__",
				".venv",
			},
			Gitignore: true,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries to load config from standard locations or returns
// defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"repoquant.toml",
		"repoquant.yaml",
		"repoquant.yml",
		"repoquant.json",
		".repoquant.toml",
		".repoquant.yaml",
		".repoquant.yml",
		".repoquant.json",
	}

	for _, name := range configNames {
		if _, err := os.Stat(name); err == nil {
			if cfg, err := Load(name); err == nil {
				return cfg
			}
		}
	}

	return DefaultConfig()
}

// CollectorEnabled reports whether a collector name survives the disable
// list.
func (c *Config) CollectorEnabled(name string) bool {
	for _, d := range c.Collectors.Disabled {
		if strings.EqualFold(d, name) {
			return false
		}
	}
	return true
}
