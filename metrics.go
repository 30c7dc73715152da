package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "carejourney_client",
			Name:      "cache_hits_total",
			Help:      "Reads served from the query cache.",
		},
		[]string{"resource"},
	)

	cacheMissesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "carejourney_client",
			Name:      "cache_misses_total",
			Help:      "Reads that required a synchronous fetch.",
		},
		[]string{"resource"},
	)

	revalidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "carejourney_client",
			Name:      "revalidations_total",
			Help:      "Background refetches triggered by stale reads.",
		},
		[]string{"resource"},
	)
)
