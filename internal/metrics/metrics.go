// Package metrics instruments the storage layer with Prometheus collectors.
// Exposing them over HTTP is the embedding application's concern.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OpsTotal counts storage operations by backend, operation and outcome
	OpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operations_total",
			Help: "Storage operations by backend, operation and status",
		},
		[]string{"backend", "op", "status"},
	)

	// OpDuration tracks storage operation latency
	OpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Storage operation latency by backend and operation",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "op"},
	)

	// DocumentBytes tracks the size of the JSON document written by the file
	// backend; growth here is the early warning that a deployment has
	// outgrown the file store.
	DocumentBytes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "store_document_bytes",
		Help: "Size of the persisted JSON document in bytes",
	})
)

// ObserveOp records one completed storage operation
func ObserveOp(backend, op string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	OpsTotal.WithLabelValues(backend, op, status).Inc()
	OpDuration.WithLabelValues(backend, op).Observe(time.Since(start).Seconds())
}
