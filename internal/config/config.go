// Package config loads the kinetree configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where commands look for a configuration file.
const DefaultPath = "kinetree.yaml"

// Store drivers.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Config is the on-disk configuration.
type Config struct {
	LogLevel  string  `yaml:"log_level" json:"log_level"`
	LogFormat string  `yaml:"log_format" json:"log_format"`
	Epsilon   float64 `yaml:"epsilon" json:"epsilon"`

	// Templates and Trials are base directories for sources given by name.
	Templates string `yaml:"templates" json:"templates"`
	Trials    string `yaml:"trials" json:"trials"`
	// Inertia is an optional role-keyed inertia table.
	Inertia string `yaml:"inertia" json:"inertia"`

	Store StoreConfig `yaml:"store" json:"store"`
	HTTP  HTTPConfig  `yaml:"http" json:"http"`
}

// StoreConfig selects and configures the model store.
type StoreConfig struct {
	Driver string      `yaml:"driver" json:"driver"`
	Path   string      `yaml:"path" json:"path"`
	Redis  RedisConfig `yaml:"redis" json:"redis"`
}

// RedisConfig configures the Redis store.
type RedisConfig struct {
	Addr     string        `yaml:"addr" json:"addr"`
	Password string        `yaml:"password" json:"password"`
	DB       int           `yaml:"db" json:"db"`
	Prefix   string        `yaml:"prefix" json:"prefix"`
	TTL      time.Duration `yaml:"ttl" json:"ttl"`
}

// HTTPConfig configures the serve command.
type HTTPConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		Epsilon:   1e-8,
		Templates: ".",
		Trials:    ".",
		Store: StoreConfig{
			Driver: DriverMemory,
			Redis:  RedisConfig{Addr: "localhost:6379"},
		},
		HTTP: HTTPConfig{Addr: ":8080"},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	return cfg, cfg.Validate()
}

// Validate rejects unknown drivers and a non-positive epsilon.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverFile, DriverSQLite, DriverRedis:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Epsilon <= 0 {
		return fmt.Errorf("epsilon must be positive, got %g", c.Epsilon)
	}
	return nil
}
