// Pulse - Personalized Post Recommendations for Crown Social
// Copyright 2026 Crown Social
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crown-social/pulse

// Package metrics exposes Prometheus instrumentation for Pulse:
// HTTP endpoint latency, recommendation pipeline latency per algorithm,
// store query performance, and cache efficiency.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks API endpoint latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pulse_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestsInFlight tracks concurrent requests.
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pulse_http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)

	// RecommendationDuration tracks end-to-end recommendation latency
	// labeled by the algorithm branch that produced the result.
	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pulse_recommendation_duration_seconds",
			Help:    "Duration of recommendation computations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"algorithm"},
	)

	// RecommendationRequests counts recommendation requests by outcome.
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulse_recommendation_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"algorithm", "outcome"}, // outcome: "ok", "unavailable", "error"
	)

	// DBQueryDuration tracks DuckDB query latency.
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pulse_db_query_duration_seconds",
			Help:    "Duration of store queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// DBQueryErrors counts store query failures.
	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulse_db_query_errors_total",
			Help: "Total number of store query errors",
		},
		[]string{"operation"},
	)

	// CacheWrites counts recommendation cache writes by result.
	CacheWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulse_cache_writes_total",
			Help: "Total number of recommendation cache writes",
		},
		[]string{"result"}, // "ok", "error"
	)

	// CacheHits counts recommendation cache read hits.
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pulse_cache_hits_total",
			Help: "Total number of recommendation cache hits",
		},
	)

	// CacheMisses counts recommendation cache read misses.
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pulse_cache_misses_total",
			Help: "Total number of recommendation cache misses",
		},
	)

	// CircuitBreakerState tracks breaker state (0=closed, 1=half-open, 2=open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pulse_circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// CircuitBreakerRequests counts requests through each breaker by outcome.
	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulse_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breakers",
		},
		[]string{"name", "outcome"}, // outcome: "success", "failure", "rejected"
	)
)

// ObserveDBQuery records a store query duration and outcome.
func ObserveDBQuery(operation string, start time.Time, err error) {
	DBQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation).Inc()
	}
}
