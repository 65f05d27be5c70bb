package cacheinfra

import (
	"context"
	"log/slog"
	"time"

	"github.com/goliatone/go-member-cache/internal/logging"
)

// TieredCache puts a short-lived in-process L1 in front of a shared L2
// (Redis). Reads check L1 first and backfill it on an L2 hit. Writes and
// deletes go to both layers; deletes are also broadcast so peer processes
// drop their L1 copy before l1TTL runs out.
type TieredCache struct {
	l1          Backend
	l2          Backend
	l1TTL       time.Duration
	invalidator *Invalidator
	logger      *slog.Logger
}

// NewTieredCache creates a two-level cache. invalidator may be nil, in which
// case peers only converge when their L1 entries expire.
func NewTieredCache(l1, l2 Backend, l1TTL time.Duration, invalidator *Invalidator, logger *slog.Logger) *TieredCache {
	if l1TTL <= 0 {
		l1TTL = 10 * time.Second
	}
	return &TieredCache{
		l1:          l1,
		l2:          l2,
		l1TTL:       l1TTL,
		invalidator: invalidator,
		logger:      logging.OrOp(logger, "cache.tiered"),
	}
}

func (t *TieredCache) Get(ctx context.Context, key string) ([]byte, error) {
	if val, err := t.l1.Get(ctx, key); err == nil {
		return val, nil
	}

	val, err := t.l2.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	_ = t.l1.Set(ctx, key, val, t.l1TTL)
	return val, nil
}

func (t *TieredCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	l1TTL := t.l1TTL
	if ttl > 0 && ttl < l1TTL {
		l1TTL = ttl
	}
	if err := t.l2.Set(ctx, key, value, ttl); err != nil {
		// a stale L1 copy would outlive the failed write
		_ = t.l1.Delete(ctx, key)
		return err
	}
	_ = t.l1.Set(ctx, key, value, l1TTL)
	t.broadcast(ctx, key)
	return nil
}

func (t *TieredCache) Delete(ctx context.Context, key string) error {
	_ = t.l1.Delete(ctx, key)
	if err := t.l2.Delete(ctx, key); err != nil {
		return err
	}
	t.broadcast(ctx, key)
	return nil
}

func (t *TieredCache) broadcast(ctx context.Context, key string) {
	if t.invalidator == nil {
		return
	}
	if err := t.invalidator.Publish(ctx, key); err != nil {
		t.logger.Warn("publish cache invalidation failed", "key", key, "error", err)
	}
}

func (t *TieredCache) Ping(ctx context.Context) error {
	if err := t.l1.Ping(ctx); err != nil {
		return err
	}
	return t.l2.Ping(ctx)
}

func (t *TieredCache) Close() error {
	if t.invalidator != nil {
		_ = t.invalidator.Close()
	}
	_ = t.l1.Close()
	return t.l2.Close()
}
