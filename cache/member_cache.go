package cache

import (
	"context"
	"time"

	"github.com/goliatone/go-member-cache/member"
)

// DefaultNamespace prefixes every member key.
const DefaultNamespace = "member"

// MemberCache stores JSON snapshots of members keyed by id.
// Backend failures come back as member.CacheUnavailable errors.
type MemberCache struct {
	backend       Cache
	keySerializer KeySerializer
	namespace     string
	ttl           time.Duration
}

// NewMemberCache wraps backend. An empty namespace uses DefaultNamespace and a
// non-positive ttl uses the 30 minute default.
func NewMemberCache(backend Cache, keySerializer KeySerializer, namespace string, ttl time.Duration) *MemberCache {
	if keySerializer == nil {
		keySerializer = NewDefaultKeySerializer()
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if ttl <= 0 {
		ttl = DefaultConfig().TTL
	}
	return &MemberCache{
		backend:       backend,
		keySerializer: keySerializer,
		namespace:     namespace,
		ttl:           ttl,
	}
}

// Key returns the cache key for id.
func (c *MemberCache) Key(id int64) string {
	return c.keySerializer.SerializeKey(c.namespace, id)
}

// TTL returns the default entry lifetime.
func (c *MemberCache) TTL() time.Duration {
	return c.ttl
}

// Get returns the cached snapshot, or nil on a miss.
func (c *MemberCache) Get(ctx context.Context, id int64) (*member.Member, error) {
	m, err := GetJSON[member.Member](ctx, c.backend, c.Key(id))
	if err != nil {
		return nil, member.CacheUnavailable("get", err)
	}
	return m, nil
}

// Put stores m under its id. A nil m is skipped; a non-positive ttl uses the
// default.
func (c *MemberCache) Put(ctx context.Context, m *member.Member, ttl time.Duration) error {
	if m == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = c.ttl
	}
	if err := SetJSON(ctx, c.backend, c.Key(m.ID), m, ttl); err != nil {
		return member.CacheUnavailable("put", err)
	}
	return nil
}

// Invalidate drops the entry for id if present.
func (c *MemberCache) Invalidate(ctx context.Context, id int64) error {
	if err := c.backend.Delete(ctx, c.Key(id)); err != nil {
		return member.CacheUnavailable("invalidate", err)
	}
	return nil
}

// Ping checks the backend.
func (c *MemberCache) Ping(ctx context.Context) error {
	if err := c.backend.Ping(ctx); err != nil {
		return member.CacheUnavailable("ping", err)
	}
	return nil
}

// Close releases the backend.
func (c *MemberCache) Close() error {
	return c.backend.Close()
}
