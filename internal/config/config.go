// Package config loads the YAML configuration that drives a search run:
// how long to search, which rule store to back it with, and how verbose
// to log.
//
// Grounded on theRebelliousNerd-codenerd/internal/config/config.go's
// DefaultConfig/Load/Save trio (gopkg.in/yaml.v3, default-then-overlay
// loading, missing file falls back to defaults rather than erroring).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// RuleStore selects which RuleDB implementation backs a search.
type RuleStore string

const (
	// RuleStoreSimple accumulates and quotients rules with no pumping
	// detection — matches the "simple" rule database (§4.4).
	RuleStoreSimple RuleStore = "simple"
	// RuleStoreForest additionally drives the table method for cheap
	// pumping detection (§4.5).
	RuleStoreForest RuleStore = "forest"
)

// SearchConfig configures a single search run.
type SearchConfig struct {
	// MaxExpansions bounds expand_once iterations; 0 means unbounded (§5
	// "callers may wrap with a deadline ... at most N times").
	MaxExpansions int `yaml:"max_expansions"`

	// Deadline bounds wall-clock search time, as a duration string
	// (e.g. "30s"); empty means unbounded.
	Deadline string `yaml:"deadline"`

	// RuleStore selects the RuleDB implementation.
	RuleStore RuleStore `yaml:"rule_store"`

	// Deterministic disables random proof-tree sampling in favor of
	// always picking the shallowest surviving rule (§9 "also acceptable").
	Deterministic bool `yaml:"deterministic"`

	// Verbose raises the logger to debug level.
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the default SearchConfig: unbounded search backed
// by the forest rule store, randomized sampling, info-level logging.
func DefaultConfig() *SearchConfig {
	return &SearchConfig{
		MaxExpansions: 0,
		Deadline:      "",
		RuleStore:     RuleStoreForest,
		Deterministic: false,
		Verbose:       false,
	}
}

// DeadlineDuration parses Deadline, returning (0, true) if it is unset.
func (c *SearchConfig) DeadlineDuration() (time.Duration, bool, error) {
	if c.Deadline == "" {
		return 0, true, nil
	}
	d, err := time.ParseDuration(c.Deadline)
	if err != nil {
		return 0, false, fmt.Errorf("config: invalid deadline %q: %w", c.Deadline, err)
	}
	return d, false, nil
}

// Load reads a SearchConfig from a YAML file at path, overlaying it on
// DefaultConfig. A missing file is not an error: the defaults are
// returned as-is.
func Load(path string) (*SearchConfig, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating parent directories as needed.
func (c *SearchConfig) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: failed to create directory %s: %w", dir, err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: failed to marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: failed to write %s: %w", path, err)
	}
	return nil
}
