// Package config loads faex settings from a .faex.yaml file.
//
// The file is optional; explicit command-line flags always override it.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up next to the scanned path.
const DefaultFileName = ".faex.yaml"

// Config holds settings from a .faex.yaml file. Pointer fields distinguish
// "absent" from zero values so flag precedence works.
type Config struct {
	// Depth is the maximum transitive call depth.
	Depth *int `yaml:"depth"`

	// Ignore lists exception class names excluded from detection.
	Ignore []string `yaml:"ignore"`

	// Format selects the check output format: text, json, or github.
	Format string `yaml:"format"`

	// Strict additionally fails the run on unused declarations.
	Strict *bool `yaml:"strict"`
}

// Load reads the config file at path. Unlike LoadDefault, a missing file
// is an error here: the caller asked for this file explicitly.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return &c, nil
}

// LoadDefault looks for .faex.yaml next to target (or in target itself
// when it is a directory). Returns nil (not an error) if no file exists.
func LoadDefault(target string) (*Config, error) {
	dir := target
	if info, err := os.Stat(target); err != nil || !info.IsDir() {
		dir = filepath.Dir(target)
	}

	path := filepath.Join(dir, DefaultFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	return Load(path)
}

// MaxDepth returns the configured depth or fallback. Safe on a nil receiver.
func (c *Config) MaxDepth(fallback int) int {
	if c == nil || c.Depth == nil {
		return fallback
	}
	return *c.Depth
}

// OutputFormat returns the configured format or fallback. Safe on a nil receiver.
func (c *Config) OutputFormat(fallback string) string {
	if c == nil || c.Format == "" {
		return fallback
	}
	return c.Format
}

// StrictMode returns the configured strict setting or fallback. Safe on a
// nil receiver.
func (c *Config) StrictMode(fallback bool) bool {
	if c == nil || c.Strict == nil {
		return fallback
	}
	return *c.Strict
}

// IgnoreList returns the configured ignore set merged with extra names.
// Safe on a nil receiver.
func (c *Config) IgnoreList(extra []string) []string {
	if c == nil {
		return extra
	}
	merged := make([]string, 0, len(c.Ignore)+len(extra))
	merged = append(merged, c.Ignore...)
	merged = append(merged, extra...)
	return merged
}
