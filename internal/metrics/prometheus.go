// Package metrics exposes repository counters through Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "membercache"

// Collector holds the repository counters on a private registry.
type Collector struct {
	registry *prometheus.Registry

	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
	cacheErrors *prometheus.CounterVec
	storeOps    *prometheus.CounterVec
}

// New registers the repository counters, plus the Go and process
// collectors, on a fresh registry.
func New(namespace string) *Collector {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGoCollector())
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	c := &Collector{
		registry: registry,

		cacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_hits_total",
				Help:      "Member lookups served from the cache",
			},
		),

		cacheMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_misses_total",
				Help:      "Member lookups that fell through to the store",
			},
		),

		cacheErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_errors_total",
				Help:      "Cache operations that failed and were ignored",
			},
			[]string{"op"},
		),

		storeOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_operations_total",
				Help:      "Store operations by outcome",
			},
			[]string{"op", "status"},
		),
	}

	registry.MustRegister(c.cacheHits, c.cacheMisses, c.cacheErrors, c.storeOps)
	return c
}

func (c *Collector) CacheHit() {
	c.cacheHits.Inc()
}

func (c *Collector) CacheMiss() {
	c.cacheMisses.Inc()
}

func (c *Collector) CacheError(op string) {
	c.cacheErrors.WithLabelValues(op).Inc()
}

func (c *Collector) StoreOperation(op string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.storeOps.WithLabelValues(op, status).Inc()
}

// Registry returns the registry the counters live on.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
