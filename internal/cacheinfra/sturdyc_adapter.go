package cacheinfra

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/viccon/sturdyc"
)

// ErrNotFound is returned when a key does not exist or has expired.
var ErrNotFound = errors.New("cache: key not found")

// entry is what the sturdyc client stores. sturdyc expires entries on its
// own client-wide TTL; expiresAt carries the per-entry TTL and is checked
// against the injected clock on every read.
type entry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache is the in-process backend built on a sharded sturdyc client.
type MemoryCache struct {
	client *sturdyc.Client[entry]
	clock  clockwork.Clock
	ttl    time.Duration
}

// MemoryOption customises a MemoryCache.
type MemoryOption func(*MemoryCache)

// WithClock replaces the wall clock used for expiry checks.
func WithClock(clock clockwork.Clock) MemoryOption {
	return func(c *MemoryCache) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// NewMemoryCache creates a new sturdyc backed cache.
//
// Capacity, NumShards, TTL and EvictionPercentage are passed to sturdyc.New.
// Entries set with a TTL longer than cfg.TTL are still dropped by sturdyc
// once cfg.TTL has elapsed in wall time.
func NewMemoryCache(cfg Config, opts ...MemoryOption) (*MemoryCache, error) {
	if cfg.TTL <= 0 {
		return nil, &ConfigError{Field: "TTL", Message: "must be greater than 0"}
	}
	if err := cfg.validateMemory(); err != nil {
		return nil, err
	}

	var options []sturdyc.Option
	if cfg.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(cfg.EvictionInterval))
	}

	c := &MemoryCache{
		client: sturdyc.New[entry](
			cfg.Capacity,
			cfg.NumShards,
			cfg.TTL,
			cfg.EvictionPercentage,
			options...,
		),
		clock: clockwork.NewRealClock(),
		ttl:   cfg.TTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get returns a copy of the stored bytes, or ErrNotFound.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	e, ok := c.client.Get(key)
	if !ok {
		return nil, ErrNotFound
	}
	if !c.clock.Now().Before(e.expiresAt) {
		c.client.Delete(key)
		return nil, ErrNotFound
	}
	return append([]byte(nil), e.value...), nil
}

// Set stores a copy of value. A non-positive ttl means the configured default.
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.ttl
	}
	c.client.Set(key, entry{
		value:     append([]byte(nil), value...),
		expiresAt: c.clock.Now().Add(ttl),
	})
	return nil
}

// Delete removes a single entry. Missing keys are not an error.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.client.Delete(key)
	return nil
}

// Keys lists the keys currently held, including ones that expired but were
// not read since.
func (c *MemoryCache) Keys() []string {
	return c.client.ScanKeys()
}

// Ping always succeeds for the in-process backend.
func (c *MemoryCache) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op; sturdyc owns no external resources.
func (c *MemoryCache) Close() error {
	return nil
}
