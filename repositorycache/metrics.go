package repositorycache

// Metrics receives repository counters. internal/metrics provides the
// Prometheus implementation.
type Metrics interface {
	CacheHit()
	CacheMiss()
	CacheError(op string)
	StoreOperation(op string, err error)
}

type nopMetrics struct{}

func (nopMetrics) CacheHit()                    {}
func (nopMetrics) CacheMiss()                   {}
func (nopMetrics) CacheError(string)            {}
func (nopMetrics) StoreOperation(string, error) {}
