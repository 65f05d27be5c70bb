package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/goliatone/go-member-cache/member"
)

// mockBackend is an in-memory Cache that records calls and can fail on demand.
type mockBackend struct {
	mu      sync.Mutex
	calls   []string
	storage map[string][]byte
	ttls    map[string]time.Duration
	err     error
}

func newMockBackend() *mockBackend {
	return &mockBackend{
		storage: make(map[string][]byte),
		ttls:    make(map[string]time.Duration),
	}
}

func (m *mockBackend) record(call string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
	return m.err
}

func (m *mockBackend) Get(ctx context.Context, key string) ([]byte, error) {
	if err := m.record("Get:" + key); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.storage[key]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

func (m *mockBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := m.record("Set:" + key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storage[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *mockBackend) Delete(ctx context.Context, key string) error {
	if err := m.record("Delete:" + key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.storage, key)
	return nil
}

func (m *mockBackend) Ping(ctx context.Context) error { return m.record("Ping") }
func (m *mockBackend) Close() error                   { return m.record("Close") }

func (m *mockBackend) getCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func TestMemberCache_PutGetInvalidate(t *testing.T) {
	ctx := context.Background()
	backend := newMockBackend()
	mc := NewMemberCache(backend, nil, "", 0)

	if mc.Key(1) != "member::1" {
		t.Fatalf("unexpected key %q", mc.Key(1))
	}
	if mc.TTL() != 30*time.Minute {
		t.Fatalf("expected default TTL of 30m, got %v", mc.TTL())
	}

	got, err := mc.Get(ctx, 1)
	if err != nil || got != nil {
		t.Fatalf("expected miss, got %v, %v", got, err)
	}

	alice := &member.Member{ID: 1, Name: "Alice"}
	if err := mc.Put(ctx, alice, 0); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if string(backend.storage["member::1"]) != `{"id":1,"name":"Alice"}` {
		t.Errorf("unexpected wire format %s", backend.storage["member::1"])
	}
	if backend.ttls["member::1"] != 30*time.Minute {
		t.Errorf("expected default ttl on put, got %v", backend.ttls["member::1"])
	}

	got, err = mc.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !got.Equal(alice) {
		t.Errorf("Get() = %v, want %v", got, alice)
	}

	if err := mc.Put(ctx, &member.Member{ID: 1, Name: "Alicia"}, time.Minute); err != nil {
		t.Fatalf("Put() overwrite error: %v", err)
	}
	if backend.ttls["member::1"] != time.Minute {
		t.Errorf("expected explicit ttl, got %v", backend.ttls["member::1"])
	}

	if err := mc.Invalidate(ctx, 1); err != nil {
		t.Fatalf("Invalidate() error: %v", err)
	}
	if err := mc.Invalidate(ctx, 1); err != nil {
		t.Fatalf("Invalidate() of missing entry error: %v", err)
	}
	if got, _ := mc.Get(ctx, 1); got != nil {
		t.Errorf("expected miss after invalidate, got %v", got)
	}
}

func TestMemberCache_PutNilIsSkipped(t *testing.T) {
	backend := newMockBackend()
	mc := NewMemberCache(backend, nil, "", 0)

	if err := mc.Put(context.Background(), nil, 0); err != nil {
		t.Fatalf("Put(nil) error: %v", err)
	}
	if calls := backend.getCalls(); len(calls) != 0 {
		t.Errorf("expected no backend calls for nil member, got %v", calls)
	}
}

func TestMemberCache_BackendErrorsAreCacheUnavailable(t *testing.T) {
	ctx := context.Background()
	backend := newMockBackend()
	backend.err = errors.New("connection refused")
	mc := NewMemberCache(backend, nil, "members", time.Minute)

	if _, err := mc.Get(ctx, 1); !member.IsCacheUnavailable(err) {
		t.Errorf("Get: expected CACHE_UNAVAILABLE, got %v", err)
	}
	if err := mc.Put(ctx, &member.Member{ID: 1, Name: "x"}, 0); !member.IsCacheUnavailable(err) {
		t.Errorf("Put: expected CACHE_UNAVAILABLE, got %v", err)
	}
	if err := mc.Invalidate(ctx, 1); !member.IsCacheUnavailable(err) {
		t.Errorf("Invalidate: expected CACHE_UNAVAILABLE, got %v", err)
	}
	if err := mc.Ping(ctx); !member.IsCacheUnavailable(err) {
		t.Errorf("Ping: expected CACHE_UNAVAILABLE, got %v", err)
	}
}

func TestGetJSON_CorruptEntryIsDropped(t *testing.T) {
	ctx := context.Background()
	backend := newMockBackend()
	backend.storage["member::9"] = []byte("{not json")

	got, err := GetJSON[member.Member](ctx, backend, "member::9")
	if err != nil || got != nil {
		t.Fatalf("expected miss for corrupt entry, got %v, %v", got, err)
	}
	if _, ok := backend.storage["member::9"]; ok {
		t.Error("expected corrupt entry to be deleted")
	}
}

func TestNewCache_Memory(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()

	cfg := DefaultConfig()
	cfg.TTL = time.Minute
	backend, err := NewCache(cfg, WithClock(clock))
	if err != nil {
		t.Fatalf("NewCache() error: %v", err)
	}
	defer backend.Close()

	mc := NewMemberCache(backend, nil, cfg.Namespace, cfg.TTL)
	_ = mc.Put(ctx, &member.Member{ID: 5, Name: "Eve"}, 0)

	if got, _ := mc.Get(ctx, 5); got == nil {
		t.Fatal("expected hit right after put")
	}
	clock.Advance(time.Minute)
	if got, _ := mc.Get(ctx, 5); got != nil {
		t.Errorf("expected entry to expire after the configured TTL, got %v", got)
	}
}

func TestNewCache_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = "nope"
	if _, err := NewCache(cfg); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Namespace != DefaultNamespace {
		t.Errorf("expected namespace %q, got %q", DefaultNamespace, cfg.Namespace)
	}
	if cfg.TTL != 30*time.Minute {
		t.Errorf("expected 30m TTL, got %v", cfg.TTL)
	}
	if cfg.Redis.Host != "localhost" || cfg.Redis.Port != 6379 {
		t.Errorf("unexpected redis defaults %+v", cfg.Redis)
	}
}
