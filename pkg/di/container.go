package di

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-member-cache/cache"
	"github.com/goliatone/go-member-cache/internal/config"
	"github.com/goliatone/go-member-cache/internal/httpapi"
	"github.com/goliatone/go-member-cache/internal/logging"
	"github.com/goliatone/go-member-cache/internal/metrics"
	"github.com/goliatone/go-member-cache/repositorycache"
	"github.com/goliatone/go-member-cache/service"
	"github.com/goliatone/go-member-cache/store"
)

// Container builds and owns the process-wide singletons: one bun DB, one
// cache backend and the repository and service layered on top of them.
type Container struct {
	config config.Config
	logger *slog.Logger

	db      *bun.DB
	store   *store.BunStore
	backend cache.Cache
	members *cache.MemberCache
	metrics *metrics.Collector
	repo    *repositorycache.Repository
	service *service.MemberService
}

// Option customises NewContainer.
type Option func(*options)

type options struct {
	clock  clockwork.Clock
	logger *slog.Logger
}

// WithClock sets the clock used by the in-process cache layer.
func WithClock(clock clockwork.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithLogger sets the logger handed to every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// NewContainer validates cfg, opens the store and the cache backend, and
// wires the repository and service. The schema is created when
// cfg.DB.CreateSchema is set.
func NewContainer(ctx context.Context, cfg config.Config, opts ...Option) (*Container, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	c := &Container{
		config:  cfg,
		logger:  logging.OrOp(o.logger, "container"),
		metrics: metrics.New(metrics.DefaultNamespace),
	}

	db, err := store.Open(cfg.DB.Driver, cfg.DB.DSN, cfg.DB.Debug)
	if err != nil {
		return nil, err
	}
	c.db = db
	c.store = store.NewBunStore(db, cfg.Mapping())

	if cfg.DB.CreateSchema {
		if err := c.store.CreateSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
	}

	cacheCfg := cfg.CacheConfig()
	backend, err := cache.NewCache(cacheCfg,
		cache.WithClock(o.clock),
		cache.WithLogger(c.logger),
	)
	if err != nil {
		db.Close()
		return nil, err
	}
	c.backend = backend
	c.members = cache.NewMemberCache(backend, cache.NewDefaultKeySerializer(), cacheCfg.Namespace, cacheCfg.TTL)

	c.repo = repositorycache.New(c.store, c.members,
		repositorycache.WithTTL(cacheCfg.TTL),
		repositorycache.WithLogger(c.logger),
		repositorycache.WithMetrics(c.metrics),
	)
	c.service = service.New(c.repo, c.logger)

	c.logger.Info("container ready",
		"db_driver", cfg.DB.Driver,
		"cache_backend", cacheCfg.Backend,
		"cache_ttl", cacheCfg.TTL,
	)
	return c, nil
}

// NewContainerWithDefaults loads MEMBERCACHE_* variables from the process
// environment and builds a container from them.
func NewContainerWithDefaults(ctx context.Context, opts ...Option) (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return NewContainer(ctx, cfg, opts...)
}

// Config returns the configuration the container was built from.
func (c *Container) Config() config.Config {
	return c.config
}

// Service returns the member service.
func (c *Container) Service() *service.MemberService {
	return c.service
}

// Repository returns the cache-aside repository.
func (c *Container) Repository() *repositorycache.Repository {
	return c.repo
}

// Store returns the system of record.
func (c *Container) Store() *store.BunStore {
	return c.store
}

// MemberCache returns the typed cache.
func (c *Container) MemberCache() *cache.MemberCache {
	return c.members
}

// Metrics returns the Prometheus collector.
func (c *Container) Metrics() *metrics.Collector {
	return c.metrics
}

// Router builds the HTTP surface over the container's components.
func (c *Container) Router() *gin.Engine {
	return httpapi.NewRouter(httpapi.Deps{
		Members: c.service,
		Evictor: c.repo,
		Checks: []httpapi.Check{
			{Name: "store", Ping: c.store.Ping},
			{Name: "cache", Ping: c.members.Ping},
		},
		Metrics: c.metrics.Handler(),
		Logger:  logging.OrOp(c.logger, "http"),
	})
}

// Close releases the cache backend and the database pool.
func (c *Container) Close() error {
	return errors.Join(c.members.Close(), c.store.Close())
}
