// Package observability holds the prometheus metrics and the OpenTelemetry
// tracer shared across the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codemmunity_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency.
	DatabaseQueryLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "codemmunity_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// DatabaseQueryErrors counts failed database queries.
	DatabaseQueryErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "codemmunity_database_query_errors_total",
		Help: "Total number of failed database queries",
	})
)
