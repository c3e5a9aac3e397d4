// Package config loads the studio configuration file.
// It handles environment placeholder expansion, YAML parsing into the
// studio descriptor schema, and defaulting of the logging and HTTP sections.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/samzhu/studio/pkg/types"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultTimeout is used when http.timeout is not set
	DefaultTimeout = 60 * time.Second

	// DefaultUserAgent is sent with every provider request
	DefaultUserAgent = "studio/1.0"
)

// =============================================================================
// Config Structures
// =============================================================================

// Config represents the complete configuration file
type Config struct {
	Logging LoggingConfig          `yaml:"logging"`
	HTTP    HTTPConfig             `yaml:"http"`
	Studio  types.StudioProperties `yaml:"studio"`

	// names of ${VAR} placeholders that had no value and no default
	unresolved []string
}

// LoggingConfig configures the process logger
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "text"
}

// HTTPConfig configures the transport shared by every produced client
type HTTPConfig struct {
	Timeout           time.Duration     `yaml:"timeout"`
	UserAgent         string            `yaml:"userAgent"`
	Headers           map[string]string `yaml:"headers"`
	LogRequests       bool              `yaml:"logRequests"`
	LogBodies         bool              `yaml:"logBodies"`
	RequestsPerMinute int               `yaml:"requestsPerMinute"`
	Burst             int               `yaml:"burst"`
}

// Unresolved returns the environment placeholders that expanded to an empty
// value because the variable was unset and no default was given.
func (c *Config) Unresolved() []string {
	out := make([]string, len(c.unresolved))
	copy(out, c.unresolved)
	return out
}

// =============================================================================
// Loading
// =============================================================================

// Load reads and parses the configuration file at path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data and expands environment placeholders in scalar
// values before mapping them onto Config.
func Parse(data []byte) (*Config, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	unresolved := ExpandNode(&root, os.LookupEnv)

	cfg := &Config{}
	// an empty document leaves root zero-valued
	if root.Kind != 0 {
		if err := root.Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	cfg.unresolved = unresolved
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills unset sections and normalizes property bags so they
// are never nil.
func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.HTTP.Timeout == 0 {
		c.HTTP.Timeout = DefaultTimeout
	}
	if c.HTTP.UserAgent == "" {
		c.HTTP.UserAgent = DefaultUserAgent
	}

	for i := range c.Studio.LLMModels {
		if c.Studio.LLMModels[i].Properties == nil {
			c.Studio.LLMModels[i].Properties = types.Properties{}
		}
	}
	for i := range c.Studio.EmbeddingModels {
		if c.Studio.EmbeddingModels[i].Properties == nil {
			c.Studio.EmbeddingModels[i].Properties = types.Properties{}
		}
	}
}
