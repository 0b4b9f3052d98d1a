// Package config handles NeoDB configuration via environment variables and
// optional YAML files.
//
// Configuration is loaded from environment variables using LoadFromEnv() or
// from a YAML file using LoadFromFile(), and can be validated with
// Validate() before use. Environment variables are prefixed with NEODB_.
//
// Example Usage:
//
//	cfg := config.LoadFromEnv()
//	if err := cfg.Validate(); err != nil {
//		log.Fatalf("Invalid config: %v", err)
//	}
//
// Environment Variables:
//   - NEODB_DATA_DIR="./data"
//   - NEODB_PERSISTENCE_ENABLED=true
//   - NEODB_SYNC_WRITES=false
//   - NEODB_CACHE_L1_CAPACITY=1000
//   - NEODB_CACHE_L2_CAPACITY=10000
//   - NEODB_CACHE_TTL=1h
//   - NEODB_TRAVERSAL_MAX_DEPTH=0
//   - NEODB_LOG_LEVEL=info
//
// For a complete list, see the Config struct field documentation.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all NeoDB configuration.
//
// Configuration is organized into logical sections:
//   - Database: storage and persistence settings
//   - Cache: tiered cache sizing and TTL
//   - Traversal: default traversal limits
//   - Logging: logging configuration
//
// Use LoadFromEnv() or LoadFromFile() to create a Config, or Default() for
// a Config with built-in defaults.
type Config struct {
	// Database settings
	Database DatabaseConfig `yaml:"database"`

	// Cache settings
	Cache CacheConfig `yaml:"cache"`

	// Traversal settings
	Traversal TraversalConfig `yaml:"traversal"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// DatabaseConfig holds storage and persistence settings.
type DatabaseConfig struct {
	// DataDir is the directory for snapshot storage
	DataDir string `yaml:"data_dir"`
	// PersistenceEnabled controls whether snapshots are written to disk.
	// When false the store runs fully in memory.
	PersistenceEnabled bool `yaml:"persistence_enabled"`
	// SyncWrites forces fsync after each write
	SyncWrites bool `yaml:"sync_writes"`
	// StoreCacheSize is the entry capacity of the read-through store cache.
	// 0 disables the store cache.
	StoreCacheSize int `yaml:"store_cache_size"`
}

// CacheConfig holds tiered cache settings.
type CacheConfig struct {
	// L1Capacity is the hot tier entry capacity
	L1Capacity int `yaml:"l1_capacity"`
	// L2Capacity is the warm tier entry capacity
	L2Capacity int `yaml:"l2_capacity"`
	// TTL is the entry time-to-live. 0 means entries never expire.
	TTL time.Duration `yaml:"ttl"`
}

// TraversalConfig holds default traversal limits.
type TraversalConfig struct {
	// MaxDepth is the default depth limit for traversals.
	// 0 means unlimited.
	MaxDepth int `yaml:"max_depth"`
	// MaxPathDepth bounds path enumeration
	MaxPathDepth int `yaml:"max_path_depth"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level: debug, info, warn, error
	Level string `yaml:"level"`
	// Format: text or json
	Format string `yaml:"format"`
}

// Default returns a Config with built-in defaults.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			DataDir:            "./data",
			PersistenceEnabled: false,
			SyncWrites:         false,
			StoreCacheSize:     256,
		},
		Cache: CacheConfig{
			L1Capacity: 1000,
			L2Capacity: 10000,
			TTL:        time.Hour,
		},
		Traversal: TraversalConfig{
			MaxDepth:     0,
			MaxPathDepth: 15,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadFromEnv creates a Config from environment variables, falling back to
// defaults for anything unset.
func LoadFromEnv() *Config {
	cfg := Default()

	cfg.Database.DataDir = getEnv("NEODB_DATA_DIR", cfg.Database.DataDir)
	cfg.Database.PersistenceEnabled = getEnvBool("NEODB_PERSISTENCE_ENABLED", cfg.Database.PersistenceEnabled)
	cfg.Database.SyncWrites = getEnvBool("NEODB_SYNC_WRITES", cfg.Database.SyncWrites)
	cfg.Database.StoreCacheSize = getEnvInt("NEODB_STORE_CACHE_SIZE", cfg.Database.StoreCacheSize)

	cfg.Cache.L1Capacity = getEnvInt("NEODB_CACHE_L1_CAPACITY", cfg.Cache.L1Capacity)
	cfg.Cache.L2Capacity = getEnvInt("NEODB_CACHE_L2_CAPACITY", cfg.Cache.L2Capacity)
	cfg.Cache.TTL = getEnvDuration("NEODB_CACHE_TTL", cfg.Cache.TTL)

	cfg.Traversal.MaxDepth = getEnvInt("NEODB_TRAVERSAL_MAX_DEPTH", cfg.Traversal.MaxDepth)
	cfg.Traversal.MaxPathDepth = getEnvInt("NEODB_TRAVERSAL_MAX_PATH_DEPTH", cfg.Traversal.MaxPathDepth)

	cfg.Logging.Level = getEnv("NEODB_LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getEnv("NEODB_LOG_FORMAT", cfg.Logging.Format)

	return cfg
}

// LoadFromFile reads a YAML config file and overlays it on the defaults.
// Fields absent from the file keep their default values.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Database.PersistenceEnabled && c.Database.DataDir == "" {
		return fmt.Errorf("database: data_dir required when persistence is enabled")
	}
	if c.Database.StoreCacheSize < 0 {
		return fmt.Errorf("database: store_cache_size must be >= 0, got %d", c.Database.StoreCacheSize)
	}
	if c.Cache.L1Capacity < 0 || c.Cache.L2Capacity < 0 {
		return fmt.Errorf("cache: capacities must be >= 0, got l1=%d l2=%d",
			c.Cache.L1Capacity, c.Cache.L2Capacity)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache: ttl must be >= 0, got %s", c.Cache.TTL)
	}
	if c.Traversal.MaxDepth < 0 {
		return fmt.Errorf("traversal: max_depth must be >= 0, got %d", c.Traversal.MaxDepth)
	}
	if c.Traversal.MaxPathDepth < 0 {
		return fmt.Errorf("traversal: max_path_depth must be >= 0, got %d", c.Traversal.MaxPathDepth)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging: unknown level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging: unknown format %q", c.Logging.Format)
	}
	return nil
}

// String returns a human-readable summary of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf(
		"persistence=%v data_dir=%s cache=%d/%d ttl=%s max_depth=%d log=%s",
		c.Database.PersistenceEnabled, c.Database.DataDir,
		c.Cache.L1Capacity, c.Cache.L2Capacity, c.Cache.TTL,
		c.Traversal.MaxDepth, c.Logging.Level,
	)
}

// ============================================================================
// Environment variable helpers
// ============================================================================

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
