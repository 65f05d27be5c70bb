package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/goliatone/go-member-cache/internal/cacheinfra"
)

// Backend names accepted by Config.Backend.
const (
	BackendMemory = cacheinfra.BackendMemory
	BackendRedis  = cacheinfra.BackendRedis
	BackendTiered = cacheinfra.BackendTiered
)

// Config exposes cache configuration options for consumers of the cache package.
type Config struct {
	Backend            string
	Namespace          string
	TTL                time.Duration
	Capacity           int
	NumShards          int
	EvictionPercentage int
	EvictionInterval   time.Duration
	L1TTL              time.Duration
	Redis              RedisConfig
}

// RedisConfig mirrors the networked backend settings.
type RedisConfig struct {
	Host                string
	Port                int
	Password            string
	DB                  int
	KeyPrefix           string
	InvalidationChannel string
	DialTimeout         time.Duration
	ReadTimeout         time.Duration
	WriteTimeout        time.Duration
}

// DefaultConfig returns a Config populated with sensible defaults: in-process
// backend, 30 minute TTL, "member" namespace.
func DefaultConfig() Config {
	cfg := convertFromInternal(cacheinfra.DefaultConfig())
	cfg.Namespace = DefaultNamespace
	cfg.Redis.InvalidationChannel = cacheinfra.DefaultInvalidationChannel
	return cfg
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	return c.toInternal().Validate()
}

// Option customises NewCache.
type Option func(*options)

type options struct {
	clock  clockwork.Clock
	logger *slog.Logger
}

// WithClock sets the clock the in-process layer uses for expiry.
func WithClock(clock clockwork.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithLogger sets the logger for background cache work.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// NewCache constructs the backend selected by cfg.Backend.
//
// The tiered backend starts a Pub/Sub listener that runs until Close.
func NewCache(cfg Config, opts ...Option) (Cache, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	internal := cfg.toInternal()
	if err := internal.Validate(); err != nil {
		return nil, err
	}

	switch internal.Backend {
	case cacheinfra.BackendRedis:
		rc, err := cacheinfra.NewRedisCache(internal.Redis, internal.TTL)
		if err != nil {
			return nil, err
		}
		return rc, nil

	case cacheinfra.BackendTiered:
		l1, err := cacheinfra.NewMemoryCache(internal, cacheinfra.WithClock(o.clock))
		if err != nil {
			return nil, err
		}
		l2, err := cacheinfra.NewRedisCache(internal.Redis, internal.TTL)
		if err != nil {
			return nil, err
		}
		inv := cacheinfra.NewInvalidator(l2.Client(), cfg.Redis.InvalidationChannel, l1, o.logger)
		go inv.Start(context.Background())
		return cacheinfra.NewTieredCache(l1, l2, internal.L1TTL, inv, o.logger), nil

	default:
		mc, err := cacheinfra.NewMemoryCache(internal, cacheinfra.WithClock(o.clock))
		if err != nil {
			return nil, err
		}
		return mc, nil
	}
}

func (c Config) toInternal() cacheinfra.Config {
	return cacheinfra.Config{
		Backend:            c.Backend,
		TTL:                c.TTL,
		Capacity:           c.Capacity,
		NumShards:          c.NumShards,
		EvictionPercentage: c.EvictionPercentage,
		EvictionInterval:   c.EvictionInterval,
		L1TTL:              c.L1TTL,
		Redis: cacheinfra.RedisConfig{
			Host:         c.Redis.Host,
			Port:         c.Redis.Port,
			Password:     c.Redis.Password,
			DB:           c.Redis.DB,
			KeyPrefix:    c.Redis.KeyPrefix,
			DialTimeout:  c.Redis.DialTimeout,
			ReadTimeout:  c.Redis.ReadTimeout,
			WriteTimeout: c.Redis.WriteTimeout,
		},
	}
}

func convertFromInternal(cfg cacheinfra.Config) Config {
	return Config{
		Backend:            cfg.Backend,
		TTL:                cfg.TTL,
		Capacity:           cfg.Capacity,
		NumShards:          cfg.NumShards,
		EvictionPercentage: cfg.EvictionPercentage,
		EvictionInterval:   cfg.EvictionInterval,
		L1TTL:              cfg.L1TTL,
		Redis: RedisConfig{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			KeyPrefix:    cfg.Redis.KeyPrefix,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		},
	}
}
