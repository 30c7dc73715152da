package shardqueue

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	submissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "carejourney_client",
			Subsystem: "shardqueue",
			Name:      "submissions_total",
			Help:      "Jobs accepted into a shard queue.",
		},
		[]string{"shard"},
	)

	queueFullTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "carejourney_client",
			Subsystem: "shardqueue",
			Name:      "queue_full_total",
			Help:      "Submissions rejected with back-pressure.",
		},
		[]string{"shard"},
	)

	queueDepth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "carejourney_client",
			Subsystem: "shardqueue",
			Name:      "queue_depth",
			Help:      "Jobs currently waiting per shard.",
		},
		[]string{"shard"},
	)

	runDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "carejourney_client",
			Subsystem: "shardqueue",
			Name:      "run_duration_seconds",
			Help:      "Job execution latency per shard.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"shard"},
	)
)

func labelFor(shard int) string { return strconv.Itoa(shard) }
