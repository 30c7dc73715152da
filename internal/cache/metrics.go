package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	putsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "carejourney_client",
		Subsystem: "cache",
		Name:      "puts_total",
		Help:      "Values stored by the read path.",
	})

	invalidationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "carejourney_client",
		Subsystem: "cache",
		Name:      "invalidations_total",
		Help:      "Entries marked stale by prefix invalidation.",
	})
)
