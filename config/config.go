// Package config provides configuration loading and management for brickcheck.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/buildsem/brickcheck/shacl"
)

// Config represents the complete brickcheck configuration
type Config struct {
	Validation ValidationConfig `yaml:"validation"`
	Report     ReportConfig     `yaml:"report"`
	Watch      WatchConfig      `yaml:"watch"`
	Log        LogConfig        `yaml:"log"`
}

// ValidationConfig configures the validation run
type ValidationConfig struct {
	// ShapeGlobs are doublestar patterns of extra SHACL shape files merged
	// into the default Brick shapes
	ShapeGlobs []string `yaml:"shapes"`
	// Ontology overrides the embedded Brick ontology file
	Ontology string `yaml:"ontology"`
	// Inference is the reasoning mode: none, rdfs, owlrl, both
	Inference string `yaml:"inference"`
	// AttachOffender enables offending-triple reconstruction
	AttachOffender bool `yaml:"attach_offender"`
	// AbortOnError stops at the first violation
	AbortOnError bool `yaml:"abort_on_error"`
	// MetaSHACL validates the shapes graph before validating data
	MetaSHACL bool `yaml:"meta_shacl"`
	// Advanced enables SHACL Advanced Features
	Advanced bool `yaml:"advanced"`
}

// ReportConfig configures report output
type ReportConfig struct {
	// Output is the report file path (empty = stdout)
	Output string `yaml:"output"`
}

// WatchConfig configures watch mode
type WatchConfig struct {
	// Debounce is the quiet period after a file event before revalidating
	Debounce time.Duration `yaml:"debounce"`
	// MetricsAddr serves Prometheus metrics in watch mode (empty = disabled)
	MetricsAddr string `yaml:"metrics_addr"`
}

// LogConfig configures logging
type LogConfig struct {
	// Level is the slog level: debug, info, warn, error
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Validation: ValidationConfig{
			Inference:      "rdfs",
			AttachOffender: true,
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := shacl.ParseInference(c.Validation.Inference); err != nil {
		return fmt.Errorf("validation.inference: %w", err)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn, or error, got %q", c.Log.Level)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
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

	if len(other.Validation.ShapeGlobs) > 0 {
		c.Validation.ShapeGlobs = other.Validation.ShapeGlobs
	}
	if other.Validation.Ontology != "" {
		c.Validation.Ontology = other.Validation.Ontology
	}
	if other.Validation.Inference != "" {
		c.Validation.Inference = other.Validation.Inference
	}
	c.Validation.AbortOnError = c.Validation.AbortOnError || other.Validation.AbortOnError
	c.Validation.MetaSHACL = c.Validation.MetaSHACL || other.Validation.MetaSHACL
	c.Validation.Advanced = c.Validation.Advanced || other.Validation.Advanced

	if other.Report.Output != "" {
		c.Report.Output = other.Report.Output
	}
	if other.Watch.Debounce != 0 {
		c.Watch.Debounce = other.Watch.Debounce
	}
	if other.Watch.MetricsAddr != "" {
		c.Watch.MetricsAddr = other.Watch.MetricsAddr
	}
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
}
