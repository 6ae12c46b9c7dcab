// Package cache defines the interface for readiness result caches.
package cache

import "github.com/agroplan/plan-service/internal/domain/model"

// Cache stores readiness results keyed by snapshot digest.
type Cache interface {
	Get(key int) (model.ReadinessResult, bool)
	Set(key int, value model.ReadinessResult)
	Invalidate(key int)
	Clear()
	Stop()
}

// Metrics reports cache performance counters.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// CacheWithMetrics extends Cache with metrics reporting.
type CacheWithMetrics interface {
	Cache
	Metrics() Metrics
}
