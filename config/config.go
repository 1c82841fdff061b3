// Package config loads compiler-wide configuration from YAML: the FHD
// solver's time budget, fresh-name prefixes, and feature flags.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/relsynth/relsynth/relerr"
)

// Config holds every compiler-wide knob.
type Config struct {
	// SolverDeadlineMS is the FHD solver's time budget in milliseconds.
	// ComputeFHD does not read it; it takes its deadline from its ctx.
	SolverDeadlineMS int `yaml:"solver_deadline_ms"`
	// VarPrefix and RelPrefix hold fresh-name prefixes. names.Source is
	// not configured from them: its callers pass a prefix on each call.
	VarPrefix string `yaml:"var_prefix"`
	RelPrefix string `yaml:"rel_prefix"`
	// Features toggles optional behavior (e.g. "sqlite_oracle",
	// "concurrent_compile") without requiring a code change.
	Features map[string]bool `yaml:"features"`
}

// Default returns the configuration relsynth uses when no YAML file is
// supplied.
func Default() Config {
	return Config{
		SolverDeadlineMS: 5000,
		VarPrefix:        "v",
		RelPrefix:        "R",
		Features:         map[string]bool{},
	}
}

// Load reads and parses a YAML config file at path, starting from
// Default() so a partial file only overrides the fields it sets.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, relerr.Wrap(relerr.KindPrecondition, "config", "reading config file", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, relerr.Wrap(relerr.KindPrecondition, "config", "parsing config file", err)
	}
	return cfg, nil
}

// Feature reports whether the named feature flag is enabled.
func (c Config) Feature(name string) bool {
	return c.Features[name]
}
