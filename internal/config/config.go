// Package config loads process configuration from MEMBERCACHE_* environment
// variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-member-cache/cache"
	"github.com/goliatone/go-member-cache/store"
)

// EnvPrefix is prepended to every variable name.
const EnvPrefix = "MEMBERCACHE_"

// Config is the full process configuration.
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	Log   Log
	Cache Cache
	Redis Redis
	DB    DB
}

// Log controls the operational logger.
type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

// Cache selects and sizes the cache backend.
type Cache struct {
	Backend            string        `env:"CACHE_BACKEND" envDefault:"memory"`
	TTL                time.Duration `env:"CACHE_TTL" envDefault:"30m"`
	Namespace          string        `env:"CACHE_NAMESPACE" envDefault:"member"`
	Capacity           int           `env:"CACHE_CAPACITY" envDefault:"10000"`
	Shards             int           `env:"CACHE_SHARDS" envDefault:"256"`
	EvictionPercentage int           `env:"CACHE_EVICTION_PERCENTAGE" envDefault:"10"`
	L1TTL              time.Duration `env:"L1_TTL" envDefault:"10s"`
}

// Redis holds the networked cache connection.
type Redis struct {
	Host                string `env:"REDIS_HOST" envDefault:"localhost"`
	Port                int    `env:"REDIS_PORT" envDefault:"6379"`
	Password            string `env:"REDIS_PASSWORD"`
	DB                  int    `env:"REDIS_DB" envDefault:"0"`
	KeyPrefix           string `env:"REDIS_KEY_PREFIX"`
	InvalidationChannel string `env:"REDIS_INVALIDATION_CHANNEL" envDefault:"member-cache:invalidate"`
}

// DB holds the system of record connection and table mapping.
type DB struct {
	Driver       string `env:"DB_DRIVER" envDefault:"sqlite3"`
	DSN          string `env:"DB_DSN" envDefault:"file:membercache.db"`
	Debug        bool   `env:"DB_DEBUG" envDefault:"false"`
	Table        string `env:"DB_TABLE" envDefault:"member"`
	IDColumn     string `env:"DB_ID_COLUMN" envDefault:"member_id"`
	NameColumn   string `env:"DB_NAME_COLUMN" envDefault:"name"`
	CreateSchema bool   `env:"DB_CREATE_SCHEMA" envDefault:"true"`
}

// Load reads the process environment.
func Load() (Config, error) {
	return parse(env.Options{Prefix: EnvPrefix})
}

// LoadFrom reads vars instead of the process environment. Keys carry the
// MEMBERCACHE_ prefix.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Prefix: EnvPrefix, Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks the values the environment cannot type-check. Cache sizing
// is validated again by cache.Config.
func (c Config) Validate() error {
	if err := validation.ValidateStruct(&c,
		validation.Field(&c.HTTPAddr, validation.Required),
	); err != nil {
		return err
	}
	if err := validation.ValidateStruct(&c.Log,
		validation.Field(&c.Log.Level, validation.In("debug", "info", "warn", "warning", "error")),
		validation.Field(&c.Log.Format, validation.In("text", "json")),
	); err != nil {
		return err
	}
	if err := validation.ValidateStruct(&c.DB,
		validation.Field(&c.DB.Driver, validation.Required, validation.In(store.DriverSQLite, store.DriverPostgres)),
		validation.Field(&c.DB.DSN, validation.Required),
	); err != nil {
		return err
	}
	if err := c.Mapping().Validate(); err != nil {
		return err
	}
	return c.CacheConfig().Validate()
}

// CacheConfig converts the cache and redis sections for cache.NewCache.
func (c Config) CacheConfig() cache.Config {
	cfg := cache.DefaultConfig()
	cfg.Backend = c.Cache.Backend
	cfg.TTL = c.Cache.TTL
	cfg.Namespace = c.Cache.Namespace
	cfg.Capacity = c.Cache.Capacity
	cfg.NumShards = c.Cache.Shards
	cfg.EvictionPercentage = c.Cache.EvictionPercentage
	cfg.L1TTL = c.Cache.L1TTL
	cfg.Redis.Host = c.Redis.Host
	cfg.Redis.Port = c.Redis.Port
	cfg.Redis.Password = c.Redis.Password
	cfg.Redis.DB = c.Redis.DB
	cfg.Redis.KeyPrefix = c.Redis.KeyPrefix
	cfg.Redis.InvalidationChannel = c.Redis.InvalidationChannel
	return cfg
}

// Mapping returns the store table mapping.
func (c Config) Mapping() store.Mapping {
	return store.Mapping{
		Table:      c.DB.Table,
		IDColumn:   c.DB.IDColumn,
		NameColumn: c.DB.NameColumn,
	}
}
