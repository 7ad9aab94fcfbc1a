package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/status-im/user-directory/cache"
)

// Config is the root of the YAML configuration file
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Cache   cache.Config  `yaml:"cache"`
	Users   UsersConfig   `yaml:"users"`
}

// ServerConfig configures the HTTP server
type ServerConfig struct {
	Port            string        `yaml:"port"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LoggingConfig configures the process logger
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// UsersConfig configures the in-memory users source
type UsersConfig struct {
	// FetchDelay simulates the latency of the remote source
	FetchDelay time.Duration `yaml:"fetch_delay"`
	// RequestsPerSecond limits source calls, 0 means unlimited
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
	// PrefetchInterval refreshes the users collection in background, 0 disables it
	PrefetchInterval time.Duration `yaml:"prefetch_interval"`
	Seed             []SeedUser    `yaml:"seed"`
}

// SeedUser is one record served by the source
type SeedUser struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			RequestTimeout:  10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Cache: cache.DefaultCacheConfig(),
		Users: UsersConfig{
			FetchDelay: time.Second,
			Burst:      1,
			Seed: []SeedUser{
				{ID: 0, Name: "Alice"},
				{ID: 1, Name: "Bob"},
			},
		},
	}
}

// LoadConfig reads the YAML file at path on top of the defaults.
// The PORT environment variable overrides server.port.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadConfigOrDefault behaves like LoadConfig but falls back to defaults
// when the file does not exist
func LoadConfigOrDefault(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg = Default()
		cfg.ApplyEnv()
		return cfg, cfg.Validate()
	}
	return cfg, err
}

// ApplyEnv applies environment overrides
func (c *Config) ApplyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Port = port
	}
}

// Validate checks the whole configuration
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	if c.Server.RequestTimeout < 0 {
		return fmt.Errorf("server.request_timeout must not be negative")
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("server.shutdown_timeout must not be negative")
	}
	if err := c.Cache.Validate(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if err := c.Users.Validate(); err != nil {
		return fmt.Errorf("users: %w", err)
	}
	return nil
}

// Validate checks the users source settings and seed records
func (c UsersConfig) Validate() error {
	if c.FetchDelay < 0 {
		return fmt.Errorf("fetch_delay must not be negative")
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must not be negative")
	}
	if c.RequestsPerSecond > 0 && c.Burst < 1 {
		return fmt.Errorf("burst must be at least 1 when requests_per_second is set")
	}
	if c.PrefetchInterval < 0 {
		return fmt.Errorf("prefetch_interval must not be negative")
	}

	seen := make(map[int]struct{}, len(c.Seed))
	for _, u := range c.Seed {
		if u.ID < 0 {
			return fmt.Errorf("seed user id must not be negative, got %d", u.ID)
		}
		if u.Name == "" {
			return fmt.Errorf("seed user %d has an empty name", u.ID)
		}
		if _, ok := seen[u.ID]; ok {
			return fmt.Errorf("duplicate seed user id %d", u.ID)
		}
		seen[u.ID] = struct{}{}
	}
	return nil
}
