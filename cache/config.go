package cache

import (
	"fmt"
	"time"
)

// Config represents query cache configuration
type Config struct {
	// StaleTime is how long a successful entry is trusted. Older entries are
	// marked invalidated and refetched on next use. 0 means entries go stale
	// only when invalidated explicitly.
	StaleTime time.Duration `yaml:"stale_time"`

	// CacheTime is how long an entry is kept after its last write before it
	// is garbage collected. 0 keeps entries until removed.
	CacheTime time.Duration `yaml:"cache_time"`

	// CleanupInterval interval for deleting expired entries from storage
	CleanupInterval time.Duration `yaml:"cleanup_interval"`

	// ExpiryCheckInterval is the period of the sweep that marks stale entries
	// invalidated. 0 disables the sweep; staleness is still applied on read.
	ExpiryCheckInterval time.Duration `yaml:"expiry_check_interval"`
}

// DefaultCacheConfig returns default cache configuration
func DefaultCacheConfig() Config {
	return Config{
		StaleTime:           5 * time.Minute,
		CacheTime:           30 * time.Minute,
		CleanupInterval:     10 * time.Minute,
		ExpiryCheckInterval: 30 * time.Second,
	}
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	if c.StaleTime < 0 {
		return fmt.Errorf("stale_time must not be negative, got %v", c.StaleTime)
	}
	if c.CacheTime < 0 {
		return fmt.Errorf("cache_time must not be negative, got %v", c.CacheTime)
	}
	if c.CleanupInterval < 0 {
		return fmt.Errorf("cleanup_interval must not be negative, got %v", c.CleanupInterval)
	}
	if c.ExpiryCheckInterval < 0 {
		return fmt.Errorf("expiry_check_interval must not be negative, got %v", c.ExpiryCheckInterval)
	}
	return nil
}

// entryTTL converts CacheTime to a go-cache expiration
func (c Config) entryTTL() time.Duration {
	if c.CacheTime <= 0 {
		return NoExpiration
	}
	return c.CacheTime
}
