package testsupport

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/goliatone/go-member-cache/cache"
)

// FakeClock is the clockwork fake as seen by tests.
type FakeClock interface {
	clockwork.Clock
	Advance(d time.Duration)
}

// CacheKit bundles a MemberCache with the handles tests use to steer it.
type CacheKit struct {
	Members *cache.MemberCache
	Backend *FlakyBackend
	Clock   FakeClock
}

// NewCacheKit builds a MemberCache over an in-process backend driven by a
// fake clock. A non-positive ttl keeps the 30 minute default.
func NewCacheKit(t testing.TB, ttl time.Duration) *CacheKit {
	t.Helper()

	clock := clockwork.NewFakeClock()
	cfg := cache.DefaultConfig()
	if ttl > 0 {
		cfg.TTL = ttl
	}

	backend, err := cache.NewCache(cfg, cache.WithClock(clock))
	if err != nil {
		t.Fatalf("failed to build cache: %v", err)
	}
	t.Cleanup(func() { backend.Close() })

	flaky := NewFlakyBackend(backend)
	return &CacheKit{
		Members: cache.NewMemberCache(flaky, nil, cfg.Namespace, cfg.TTL),
		Backend: flaky,
		Clock:   clock,
	}
}

// FlakyBackend wraps a cache.Cache and fails every call while down is set.
type FlakyBackend struct {
	cache.Cache

	mu   sync.Mutex
	down bool
}

var _ cache.Cache = (*FlakyBackend)(nil)

// NewFlakyBackend wraps base. The backend starts healthy.
func NewFlakyBackend(base cache.Cache) *FlakyBackend {
	return &FlakyBackend{Cache: base}
}

// SetDown toggles injected failures.
func (b *FlakyBackend) SetDown(down bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.down = down
}

func (b *FlakyBackend) err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.down {
		return ErrInjected
	}
	return nil
}

func (b *FlakyBackend) Get(ctx context.Context, key string) ([]byte, error) {
	if err := b.err(); err != nil {
		return nil, err
	}
	return b.Cache.Get(ctx, key)
}

func (b *FlakyBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := b.err(); err != nil {
		return err
	}
	return b.Cache.Set(ctx, key, value, ttl)
}

func (b *FlakyBackend) Delete(ctx context.Context, key string) error {
	if err := b.err(); err != nil {
		return err
	}
	return b.Cache.Delete(ctx, key)
}

func (b *FlakyBackend) Ping(ctx context.Context) error {
	if err := b.err(); err != nil {
		return err
	}
	return b.Cache.Ping(ctx)
}
