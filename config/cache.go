package config

import "time"

// CacheConfig represents cache configuration
type CacheConfig struct {
	// GoCache configuration for the in-memory store
	GoCache GoCacheConfig `yaml:"go_cache"`

	// Redis configuration for the optional shared store
	Redis RedisConfig `yaml:"redis"`
}

// GoCacheConfig configuration for in-memory go-cache
type GoCacheConfig struct {
	// CleanupInterval interval for the store's expiry sweep.
	// Snapshot entries never expire, so this only bounds janitor work.
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// RedisConfig configuration for a Redis-backed snapshot store shared
// between replicas. Disabled by default; the in-memory store is used then.
type RedisConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Address   string `yaml:"address"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

// DefaultCacheConfig returns default cache configuration
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		GoCache: GoCacheConfig{
			CleanupInterval: 10 * time.Minute,
		},
		Redis: RedisConfig{
			Enabled:   false,
			Address:   "localhost:6379",
			KeyPrefix: "swap-proxy:",
		},
	}
}
