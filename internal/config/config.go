// Package config loads the optional genmaki configuration file. Everything
// has a working default; the file exists for overriding the discovery
// candidate list, the default conversion targets, and review-check
// severities.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/amigazen/gen/internal/dialect"
	"github.com/amigazen/gen/internal/makefile"
)

// Config is the top-level configuration for genmaki.
type Config struct {
	// Discovery controls makefile auto-discovery when no input is given.
	Discovery DiscoveryConfig `json:"discovery,omitempty"`

	// Targets overrides the default conversion target per source dialect.
	// Keys are dialect aliases ("gnu", "sasc", "dice", "lattice"), values
	// are target-format aliases.
	Targets map[string]string `json:"targets,omitempty"`

	// Review configures the post-conversion review checks.
	Review ReviewConfig `json:"review,omitempty"`
}

// DiscoveryConfig controls auto-discovery of the input makefile.
type DiscoveryConfig struct {
	// Candidates is the ordered list of file names probed. Empty means the
	// conventional list.
	Candidates []string `json:"candidates,omitempty"`
}

// ReviewConfig configures review-check reporting.
type ReviewConfig struct {
	// Enabled turns the review pass on or off. Default on.
	Enabled *bool `json:"enabled,omitempty"`

	// Checks maps check names to severity: "off", "info", "warning".
	Checks map[string]string `json:"checks,omitempty"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Discovery: DiscoveryConfig{Candidates: makefile.DefaultCandidates},
		Targets:   map[string]string{},
		Review: ReviewConfig{
			Enabled: boolPtr(true),
			Checks:  map[string]string{},
		},
	}
}

func boolPtr(v bool) *bool {
	return &v
}

// Load finds and loads the configuration file.
// Search order:
//  1. ./genmaki.json
//  2. ./.genmaki.json
//  3. ~/.config/genmaki/config.json
//
// Returns DefaultConfig if no config file is found.
func Load() (*Config, error) {
	cwd, _ := os.Getwd()

	searchPaths := []string{
		filepath.Join(cwd, "genmaki.json"),
		filepath.Join(cwd, ".genmaki.json"),
	}
	if home, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(home, ".config", "genmaki", "config.json"))
	}

	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}

	return DefaultConfig(), nil
}

// LoadFile loads configuration from a specific file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults fills in missing configuration with defaults.
func (c *Config) applyDefaults() {
	if len(c.Discovery.Candidates) == 0 {
		c.Discovery.Candidates = makefile.DefaultCandidates
	}
	if c.Targets == nil {
		c.Targets = map[string]string{}
	}
	if c.Review.Enabled == nil {
		c.Review.Enabled = boolPtr(true)
	}
	if c.Review.Checks == nil {
		c.Review.Checks = map[string]string{}
	}
}

// Save writes the configuration to a file.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// TargetFor resolves the conversion target for a source dialect: the
// configured override when one exists, otherwise the fixed default policy.
// Several alias spellings may name the same source dialect; agreeing
// duplicates are fine, disagreeing ones are a configuration error.
func (c *Config) TargetFor(source dialect.Dialect) (dialect.Dialect, error) {
	aliases := make([]string, 0, len(c.Targets))
	for alias := range c.Targets {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)

	resolved := dialect.Unknown
	resolvedAlias := ""
	for _, alias := range aliases {
		d, err := dialect.ParseAlias(alias)
		if err != nil {
			return dialect.Unknown, fmt.Errorf("config targets: %w", err)
		}
		if d != source {
			continue
		}
		target, err := dialect.ParseAlias(c.Targets[alias])
		if err != nil {
			return dialect.Unknown, fmt.Errorf("config targets[%s]: %w", alias, err)
		}
		if resolved != dialect.Unknown && target != resolved {
			return dialect.Unknown, fmt.Errorf("config targets: %q and %q disagree on the target for %s",
				resolvedAlias, alias, source)
		}
		resolved, resolvedAlias = target, alias
	}
	if resolved != dialect.Unknown {
		return resolved, nil
	}
	return dialect.DefaultTarget(source)
}

// CheckSeverity returns the configured severity for a review check, or the
// given default.
func (c *Config) CheckSeverity(check, defaultSeverity string) string {
	if severity, ok := c.Review.Checks[check]; ok {
		return severity
	}
	return defaultSeverity
}

// ReviewEnabled reports whether the review pass should run at all.
func (c *Config) ReviewEnabled() bool {
	return c.Review.Enabled == nil || *c.Review.Enabled
}
