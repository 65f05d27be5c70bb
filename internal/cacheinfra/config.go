package cacheinfra

import (
	"net"
	"strconv"
	"time"
)

// Backend names accepted by Config.Backend.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendTiered = "tiered"
)

// DefaultTTL is the entry lifetime used when a caller passes a zero TTL.
const DefaultTTL = 30 * time.Minute

// Config holds the configuration for the cache backends.
type Config struct {
	// Backend selects the implementation: memory, redis or tiered.
	Backend string

	// TTL is the default time-to-live for cached entries.
	// Must be greater than 0. Default: 30 minutes
	TTL time.Duration

	// Capacity defines the maximum number of entries the in-process cache
	// can store. Must be greater than 0.
	Capacity int

	// NumShards determines the number of in-process cache shards.
	// Higher values improve concurrency but increase memory overhead.
	// Must be greater than 0. Default: 256
	NumShards int

	// EvictionPercentage specifies what percentage of entries to evict
	// when the in-process cache reaches its capacity. Must be between 1-100.
	EvictionPercentage int

	// EvictionInterval sets how often the in-process cache sweeps expired
	// entries. Zero value uses the sturdyc default.
	EvictionInterval time.Duration

	// L1TTL bounds how long the in-process layer of a tiered cache serves an
	// entry before asking Redis again. Default: 10 seconds
	L1TTL time.Duration

	// Redis configures the networked backend. Ignored for memory.
	Redis RedisConfig
}

// RedisConfig holds the Redis connection settings.
type RedisConfig struct {
	Host      string
	Port      int
	Password  string
	DB        int
	KeyPrefix string

	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Addr joins host and port the way go-redis expects them.
func (r RedisConfig) Addr() string {
	return net.JoinHostPort(r.Host, strconv.Itoa(r.Port))
}

// DefaultConfig returns a Config with sensible defaults for most use cases.
func DefaultConfig() Config {
	return Config{
		Backend:            BackendMemory,
		TTL:                DefaultTTL,
		Capacity:           10000,
		NumShards:          256,
		EvictionPercentage: 10,
		EvictionInterval:   0,
		L1TTL:              10 * time.Second,
		Redis: RedisConfig{
			Host:         "localhost",
			Port:         6379,
			KeyPrefix:    "",
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		},
	}
}

// Validate checks if the configuration values are valid.
// Returns an error if any configuration parameter is invalid.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendMemory, BackendRedis, BackendTiered:
	default:
		return &ConfigError{Field: "Backend", Message: "must be one of memory, redis, tiered"}
	}

	if c.TTL <= 0 {
		return &ConfigError{Field: "TTL", Message: "must be greater than 0"}
	}

	if c.Backend != BackendRedis {
		if err := c.validateMemory(); err != nil {
			return err
		}
	}

	if c.Backend == BackendTiered && c.L1TTL <= 0 {
		return &ConfigError{Field: "L1TTL", Message: "must be greater than 0"}
	}

	if c.Backend != BackendMemory {
		return c.Redis.Validate()
	}

	return nil
}

func (c Config) validateMemory() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}

	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}

	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}

	if c.EvictionInterval < 0 {
		return &ConfigError{Field: "EvictionInterval", Message: "must be non-negative"}
	}

	return nil
}

// Validate checks the Redis connection settings.
func (r RedisConfig) Validate() error {
	if r.Host == "" {
		return &ConfigError{Field: "Redis.Host", Message: "must not be empty"}
	}
	if r.Port <= 0 || r.Port > 65535 {
		return &ConfigError{Field: "Redis.Port", Message: "must be between 1 and 65535"}
	}
	if r.DB < 0 {
		return &ConfigError{Field: "Redis.DB", Message: "must be non-negative"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}
