package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/goliatone/go-member-cache/internal/cacheinfra"
)

// ErrNotFound is returned by Cache.Get when a key is absent or expired.
var ErrNotFound = cacheinfra.ErrNotFound

// Cache is the byte-level contract every backend satisfies.
// All operations are safe for concurrent use.
type Cache interface {
	// Get returns ErrNotFound if the key does not exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set overwrites key. A non-positive ttl means the backend default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Ping(ctx context.Context) error
	Close() error
}

// GetJSON decodes the value stored at key. A miss returns (nil, nil).
func GetJSON[T any](ctx context.Context, c Cache, key string) (*T, error) {
	data, err := c.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		// an undecodable entry is as good as absent; drop it so the next
		// write replaces it
		_ = c.Delete(ctx, key)
		return nil, nil
	}
	return &v, nil
}

// SetJSON encodes v and stores it at key. Nil values are never written.
func SetJSON[T any](ctx context.Context, c Cache, key string, v *T, ttl time.Duration) error {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, ttl)
}
