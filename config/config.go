// Package config provides configuration loading and management for docloc.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete docloc configuration
type Config struct {
	Project  ProjectConfig  `yaml:"project"`
	Catalogs CatalogsConfig `yaml:"catalogs"`
	Extract  ExtractConfig  `yaml:"extract"`
	NATS     NATSConfig     `yaml:"nats"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// ProjectConfig identifies the documentation project
type ProjectConfig struct {
	// Name fills Project-Id-Version in generated templates
	Name string `yaml:"name"`
	// BugsAddress fills Report-Msgid-Bugs-To in generated templates
	BugsAddress string `yaml:"bugs_address"`
	// Root is the project root path (auto-detected from git if empty)
	Root string `yaml:"root"`
}

// CatalogsConfig locates the translation catalogs
type CatalogsConfig struct {
	// Globs are doublestar patterns selecting catalog files,
	// relative to the project root
	Globs []string `yaml:"globs"`
	// WrapWidth is the serialization wrap width (0 = default 77,
	// negative disables wrapping)
	WrapWidth int `yaml:"wrap_width"`
}

// ExtractConfig locates the documentation sources for extraction
type ExtractConfig struct {
	// SourceRoot is the root of the documentation sources,
	// relative to the project root
	SourceRoot string `yaml:"source_root"`
	// Globs select source files to extract from
	Globs []string `yaml:"globs"`
}

// NATSConfig configures catalog event publishing
type NATSConfig struct {
	// URL is the NATS server URL (empty = publishing disabled)
	URL string `yaml:"url"`
}

// MetricsConfig configures the metrics endpoint of watch mode
type MetricsConfig struct {
	// Addr is the listen address (empty = metrics disabled)
	Addr string `yaml:"addr"`
}

// WatchDebounce is how long the watcher waits for further changes
// before re-parsing.
const WatchDebounce = 200 * time.Millisecond

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Project: ProjectConfig{
			Root: "", // Auto-detect
		},
		Catalogs: CatalogsConfig{
			Globs: []string{"locales/**/*.po"},
		},
		Extract: ExtractConfig{
			SourceRoot: ".",
			Globs:      []string{"**/*.py"},
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if len(c.Catalogs.Globs) == 0 {
		return fmt.Errorf("catalogs.globs is required")
	}
	if len(c.Extract.Globs) == 0 {
		return fmt.Errorf("extract.globs is required")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Project
	if other.Project.Name != "" {
		c.Project.Name = other.Project.Name
	}
	if other.Project.BugsAddress != "" {
		c.Project.BugsAddress = other.Project.BugsAddress
	}
	if other.Project.Root != "" {
		c.Project.Root = other.Project.Root
	}

	// Catalogs
	if len(other.Catalogs.Globs) > 0 {
		c.Catalogs.Globs = other.Catalogs.Globs
	}
	if other.Catalogs.WrapWidth != 0 {
		c.Catalogs.WrapWidth = other.Catalogs.WrapWidth
	}

	// Extract
	if other.Extract.SourceRoot != "" {
		c.Extract.SourceRoot = other.Extract.SourceRoot
	}
	if len(other.Extract.Globs) > 0 {
		c.Extract.Globs = other.Extract.Globs
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}

	// Metrics
	if other.Metrics.Addr != "" {
		c.Metrics.Addr = other.Metrics.Addr
	}
}
