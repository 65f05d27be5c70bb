package repositorycache

import (
	"context"
	"log/slog"
	"time"

	"github.com/goliatone/go-member-cache/cache"
	"github.com/goliatone/go-member-cache/internal/logging"
	"github.com/goliatone/go-member-cache/member"
	"github.com/goliatone/go-member-cache/store"
)

// MemberCache is the typed cache the repository reads and writes.
// *cache.MemberCache satisfies it.
type MemberCache interface {
	Get(ctx context.Context, id int64) (*member.Member, error)
	Put(ctx context.Context, m *member.Member, ttl time.Duration) error
	Invalidate(ctx context.Context, id int64) error
}

var _ MemberCache = (*cache.MemberCache)(nil)

// Repository coordinates a store and a cache using the cache-aside pattern.
type Repository struct {
	store   store.Store
	cache   MemberCache
	ttl     time.Duration
	logger  *slog.Logger
	metrics Metrics
}

// Option customises a Repository.
type Option func(*Repository)

// WithTTL sets the lifetime of entries written by the repository. A
// non-positive value leaves the cache default in place.
func WithTTL(ttl time.Duration) Option {
	return func(r *Repository) { r.ttl = ttl }
}

// WithLogger sets the logger used for suppressed cache failures.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics sets the counter sink.
func WithMetrics(m Metrics) Option {
	return func(r *Repository) {
		if m != nil {
			r.metrics = m
		}
	}
}

// New creates a Repository over s and c.
func New(s store.Store, c MemberCache, opts ...Option) *Repository {
	r := &Repository{
		store:   s,
		cache:   c,
		logger:  logging.Component("repository"),
		metrics: nopMetrics{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Save inserts m when it has no id and updates it otherwise, then caches the
// persisted record. The returned member is the one that was cached.
func (r *Repository) Save(ctx context.Context, m *member.Member) (*member.Member, error) {
	if m == nil {
		return nil, member.Invalid(member.ErrNilMember)
	}

	var (
		saved *member.Member
		err   error
	)
	if m.ID == 0 {
		saved, err = r.store.Insert(ctx, m)
		r.metrics.StoreOperation("insert", err)
	} else {
		err = r.store.Update(ctx, m)
		r.metrics.StoreOperation("update", err)
		saved = m.Clone()
	}
	if err != nil {
		return nil, err
	}

	r.put(ctx, saved)
	return saved, nil
}

// FindOne returns the member with id, or nil when the store has no such row.
func (r *Repository) FindOne(ctx context.Context, id int64) (*member.Member, error) {
	cached, err := r.cache.Get(ctx, id)
	switch {
	case err != nil:
		r.cacheFailed(ctx, "get", id, err)
	case cached != nil:
		r.metrics.CacheHit()
		return cached, nil
	default:
		r.metrics.CacheMiss()
	}

	found, err := r.store.FindByID(ctx, id)
	r.metrics.StoreOperation("find", err)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, nil
	}

	r.put(ctx, found)
	return found, nil
}

// Remove deletes m from the store and invalidates its cache entry. The entry
// is invalidated even when the store delete fails; the store error is
// returned afterwards.
func (r *Repository) Remove(ctx context.Context, m *member.Member) error {
	if m == nil {
		return member.Invalid(member.ErrNilMember)
	}

	err := r.store.DeleteByID(ctx, m.ID)
	r.metrics.StoreOperation("delete", err)

	r.Evict(ctx, m.ID)
	return err
}

// Evict drops the cached entry for id without touching the store.
func (r *Repository) Evict(ctx context.Context, id int64) {
	if err := r.cache.Invalidate(ctx, id); err != nil {
		r.cacheFailed(ctx, "invalidate", id, err)
	}
}

func (r *Repository) put(ctx context.Context, m *member.Member) {
	if err := r.cache.Put(ctx, m, r.ttl); err != nil {
		r.cacheFailed(ctx, "put", m.ID, err)
	}
}

func (r *Repository) cacheFailed(ctx context.Context, op string, id int64, err error) {
	r.metrics.CacheError(op)
	r.logger.WarnContext(ctx, "cache operation failed",
		"op", op,
		"member_id", id,
		"error", err,
	)
}
