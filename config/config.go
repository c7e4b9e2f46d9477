// Package config provides configuration loading and management for cxrdf.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/cxrdf/export"
	"github.com/c360studio/cxrdf/graph"
	"github.com/c360studio/cxrdf/output"
	"github.com/c360studio/cxrdf/storage"
)

// Config represents the complete cxrdf configuration
type Config struct {
	Export ExportConfig `yaml:"export"`
	Output OutputConfig `yaml:"output"`
	NDEx   NDExConfig   `yaml:"ndex"`
	Watch  WatchConfig  `yaml:"watch"`
	// Jobs bounds concurrent conversions in batch mode
	Jobs int `yaml:"jobs"`
}

// ExportConfig configures CX to RDF exports
type ExportConfig struct {
	// Policy is abstract, aspect or predicate (default: predicate)
	Policy string `yaml:"policy"`
	// Format is turtle, ntriples or jsonld (default: turtle)
	Format string `yaml:"format"`
	// Handles selects uuid or sequential handle minting
	Handles string `yaml:"handles"`
	// MatchAliases runs the alias post-processor after each export
	MatchAliases bool `yaml:"match_aliases"`
}

// OutputConfig configures the optional output sinks
type OutputConfig struct {
	NATS   NATSConfig   `yaml:"nats"`
	SQLite SQLiteConfig `yaml:"sqlite"`
}

// NATSConfig configures the NATS connection
type NATSConfig struct {
	// URL is the NATS server URL (empty = NATS sinks disabled)
	URL string `yaml:"url"`
	// Subject receives one entity message per exported subject
	Subject string `yaml:"subject"`
	// ObjectBucket is the object store bucket for uploaded CX networks
	ObjectBucket string `yaml:"object_bucket"`
}

// SQLiteConfig configures the SQLite triple sink
type SQLiteConfig struct {
	// Path is the database file (empty = sink disabled)
	Path string `yaml:"path"`
}

// NDExConfig configures the NDEx server used for uploads
type NDExConfig struct {
	URL      string        `yaml:"url"`
	Username string        `yaml:"username"`
	Password string        `yaml:"password"`
	Timeout  time.Duration `yaml:"timeout"`
}

// WatchConfig configures watch mode
type WatchConfig struct {
	// Debounce is how long a file must be quiet before it is converted
	Debounce time.Duration `yaml:"debounce"`
	// Extensions lists the file extensions that trigger a conversion
	Extensions []string `yaml:"extensions"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Export: ExportConfig{
			Policy:  string(export.DefaultPolicy),
			Format:  string(export.DefaultFormat),
			Handles: string(graph.HandlesUUID),
		},
		Output: OutputConfig{
			NATS: NATSConfig{
				Subject:      output.DefaultSubject,
				ObjectBucket: storage.DefaultBucket,
			},
		},
		NDEx: NDExConfig{
			URL:     storage.DefaultNDExURL,
			Timeout: time.Minute,
		},
		Watch: WatchConfig{
			Debounce:   500 * time.Millisecond,
			Extensions: []string{".cx", ".json"},
		},
		Jobs: 4,
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := export.ParsePolicy(c.Export.Policy); err != nil {
		return fmt.Errorf("export.policy: %w", err)
	}
	if _, err := export.ParseFormat(c.Export.Format); err != nil {
		return fmt.Errorf("export.format: %w", err)
	}
	if _, err := graph.ParseHandles(c.Export.Handles); err != nil {
		return fmt.Errorf("export.handles: %w", err)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1")
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	if c.NDEx.Timeout < 0 {
		return fmt.Errorf("ndex.timeout must not be negative")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file on top of the defaults
func LoadFromFile(path string) (*Config, error) {
	config := DefaultConfig()
	if err := decodeFile(path, config); err != nil {
		return nil, err
	}
	return config, nil
}

// decodeFile unmarshals path into config
func decodeFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
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

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Export
	if other.Export.Policy != "" {
		c.Export.Policy = other.Export.Policy
	}
	if other.Export.Format != "" {
		c.Export.Format = other.Export.Format
	}
	if other.Export.Handles != "" {
		c.Export.Handles = other.Export.Handles
	}
	if other.Export.MatchAliases {
		c.Export.MatchAliases = true
	}

	// Output
	if other.Output.NATS.URL != "" {
		c.Output.NATS.URL = other.Output.NATS.URL
	}
	if other.Output.NATS.Subject != "" {
		c.Output.NATS.Subject = other.Output.NATS.Subject
	}
	if other.Output.NATS.ObjectBucket != "" {
		c.Output.NATS.ObjectBucket = other.Output.NATS.ObjectBucket
	}
	if other.Output.SQLite.Path != "" {
		c.Output.SQLite.Path = other.Output.SQLite.Path
	}

	// NDEx
	if other.NDEx.URL != "" {
		c.NDEx.URL = other.NDEx.URL
	}
	if other.NDEx.Username != "" {
		c.NDEx.Username = other.NDEx.Username
	}
	if other.NDEx.Password != "" {
		c.NDEx.Password = other.NDEx.Password
	}
	if other.NDEx.Timeout != 0 {
		c.NDEx.Timeout = other.NDEx.Timeout
	}

	// Watch
	if other.Watch.Debounce != 0 {
		c.Watch.Debounce = other.Watch.Debounce
	}
	if len(other.Watch.Extensions) > 0 {
		c.Watch.Extensions = other.Watch.Extensions
	}

	if other.Jobs != 0 {
		c.Jobs = other.Jobs
	}
}

// ApplyEnv overrides credentials and endpoints from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("NDEX_URL"); v != "" {
		c.NDEx.URL = v
	}
	if v := getenv("NDEX_USERNAME"); v != "" {
		c.NDEx.Username = v
	}
	if v := getenv("NDEX_PASSWORD"); v != "" {
		c.NDEx.Password = v
	}
	if v := getenv("NATS_URL"); v != "" {
		c.Output.NATS.URL = v
	}
}
