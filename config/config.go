// Package config provides configuration loading and management for readyspec.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete readyspec configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Catalog CatalogConfig `yaml:"catalog"`
	NATS    NATSConfig    `yaml:"nats"`
	Ingest  IngestConfig  `yaml:"ingest"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default: ":8080").
	Addr string `yaml:"addr"`
	// Prefix is the API path prefix (default: "api/v1").
	Prefix string `yaml:"prefix"`
}

// CatalogConfig configures the pattern catalog source.
type CatalogConfig struct {
	// Path is a YAML catalog file; empty uses the built-in catalog.
	Path string `yaml:"path"`
	// Watch enables hot reload of the catalog file while serving.
	Watch bool `yaml:"watch"`
}

// NATSConfig configures the optional NATS responder.
type NATSConfig struct {
	// URL is the NATS server URL; empty disables the responder.
	URL string `yaml:"url"`
	// Subject is the analyze request subject (default: readyspec.analyze.request).
	Subject string `yaml:"subject"`
}

// IngestConfig configures the web fetcher.
type IngestConfig struct {
	// Timeout is the per-fetch time limit.
	Timeout time.Duration `yaml:"timeout"`
	// MaxBodySize caps fetched page size in bytes.
	MaxBodySize int64 `yaml:"max_body_size"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:   ":8080",
			Prefix: "api/v1",
		},
		Catalog: CatalogConfig{
			Path:  "", // built-in catalog
			Watch: false,
		},
		NATS: NATSConfig{
			URL:     "", // responder disabled
			Subject: "readyspec.analyze.request",
		},
		Ingest: IngestConfig{
			Timeout:     30 * time.Second,
			MaxBodySize: 10 << 20,
		},
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.Prefix == "" {
		return fmt.Errorf("server.prefix is required")
	}
	if c.Catalog.Watch && c.Catalog.Path == "" {
		return fmt.Errorf("catalog.watch requires catalog.path")
	}
	if c.NATS.URL != "" && c.NATS.Subject == "" {
		return fmt.Errorf("nats.subject is required when nats.url is set")
	}
	if c.Ingest.Timeout <= 0 {
		return fmt.Errorf("ingest.timeout must be positive")
	}
	if c.Ingest.MaxBodySize <= 0 {
		return fmt.Errorf("ingest.max_body_size must be positive")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for
// non-zero values).
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Server.Addr != "" {
		c.Server.Addr = other.Server.Addr
	}
	if other.Server.Prefix != "" {
		c.Server.Prefix = other.Server.Prefix
	}

	if other.Catalog.Path != "" {
		c.Catalog.Path = other.Catalog.Path
	}
	if other.Catalog.Watch {
		c.Catalog.Watch = true
	}

	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.Subject != "" {
		c.NATS.Subject = other.NATS.Subject
	}

	if other.Ingest.Timeout != 0 {
		c.Ingest.Timeout = other.Ingest.Timeout
	}
	if other.Ingest.MaxBodySize != 0 {
		c.Ingest.MaxBodySize = other.Ingest.MaxBodySize
	}
}
