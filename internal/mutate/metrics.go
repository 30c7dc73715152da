package mutate

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var settledTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "carejourney_client",
		Subsystem: "mutations",
		Name:      "settled_total",
		Help:      "Mutations by terminal outcome.",
	},
	[]string{"mutation", "outcome", "shard"},
)
