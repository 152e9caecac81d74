package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// cacheHits counts cache hits by namespace.
	cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "traitstore_cache_hits_total",
		Help: "Total cache hits by namespace",
	}, []string{"namespace"})

	// cacheMisses counts cache misses by namespace. A miss implies one
	// supplier invocation.
	cacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "traitstore_cache_misses_total",
		Help: "Total cache misses by namespace",
	}, []string{"namespace"})
)
