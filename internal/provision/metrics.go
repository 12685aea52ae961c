package provision

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Step metrics
	stepTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paasboot",
			Subsystem: "provision",
			Name:      "steps_total",
			Help:      "Total number of executed provisioning steps by step and result",
		},
		[]string{"step", "result"},
	)

	stepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "paasboot",
			Subsystem: "provision",
			Name:      "step_duration_seconds",
			Help:      "Duration of provisioning steps in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12), // 100ms to ~3.5m
		},
		[]string{"step"},
	)

	// Run metrics
	runTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paasboot",
			Subsystem: "provision",
			Name:      "runs_total",
			Help:      "Total number of per-host provisioning runs by result",
		},
		[]string{"result"},
	)
)

// Metric result label values.
const (
	resultCompleted = "completed"
	resultSkipped   = "skipped"
	resultFailed    = "failed"
	resultTimeout   = "timeout"
)
