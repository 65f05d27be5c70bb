package cacheinfra

import (
	"context"
	"time"
)

// Backend is the byte-level contract shared by every implementation in this
// package. It matches cache.Cache so backends can be handed out directly.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

var (
	_ Backend = (*MemoryCache)(nil)
	_ Backend = (*RedisCache)(nil)
	_ Backend = (*TieredCache)(nil)
)
