// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collectors are grouped by subsystem. Histograms without explicit buckets
// use prometheus.DefBuckets (5ms to 10s).
var (
	// API

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinescope_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinescope_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinescope_api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinescope_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Review backend

	BackendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinescope_backend_requests_total",
			Help: "Total number of requests to the review backend",
		},
		[]string{"endpoint", "status"},
	)

	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinescope_backend_request_duration_seconds",
			Help:    "Review backend request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	BackendRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinescope_backend_retries_total",
			Help: "Total number of retried backend requests after HTTP 429",
		},
		[]string{"endpoint"},
	)

	BackendRecordsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinescope_backend_records_rejected_total",
			Help: "Wire records rejected at the ingestion boundary",
		},
		[]string{"kind"},
	)

	// Circuit breaker

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cinescope_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinescope_circuit_breaker_requests_total",
			Help: "Total number of requests through the circuit breaker",
		},
		[]string{"name", "result"}, // success, failure, rejected
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cinescope_circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinescope_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Catalog snapshot cache

	CatalogCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinescope_catalog_cache_hits_total",
			Help: "Catalog snapshot cache hits",
		},
		[]string{"snapshot"},
	)

	CatalogCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinescope_catalog_cache_misses_total",
			Help: "Catalog snapshot cache misses",
		},
		[]string{"snapshot"},
	)

	CatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinescope_catalog_movies",
			Help: "Number of movies in the current catalog snapshot",
		},
	)

	CatalogLastRefresh = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinescope_catalog_last_refresh_timestamp",
			Help: "Unix timestamp of the last successful catalog refresh",
		},
	)

	CatalogRefreshErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cinescope_catalog_refresh_errors_total",
			Help: "Total number of failed background catalog refreshes",
		},
	)

	// Watchlist

	WatchlistOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinescope_watchlist_operations_total",
			Help: "Watchlist operations by kind and outcome",
		},
		[]string{"operation", "result"},
	)

	WatchlistSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinescope_watchlist_stream_connections",
			Help: "Open watchlist websocket connections",
		},
	)

	// Authorization

	AuthzDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinescope_authz_decisions_total",
			Help: "Authorization decisions by role and outcome",
		},
		[]string{"role", "decision"}, // allow, deny
	)

	SessionTokensRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinescope_session_tokens_rejected_total",
			Help: "Bearer tokens rejected at the API edge",
		},
		[]string{"reason"},
	)
)

// RecordAPIRequest records one finished API request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest moves the in-flight gauge up or down.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordBackendRequest records one backend call. status is the HTTP status
// code, or "error" for transport failures.
func RecordBackendRequest(endpoint, status string, duration time.Duration) {
	BackendRequestsTotal.WithLabelValues(endpoint, status).Inc()
	BackendRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordCacheLookup counts a catalog snapshot hit or miss.
func RecordCacheLookup(snapshot string, hit bool) {
	if hit {
		CatalogCacheHits.WithLabelValues(snapshot).Inc()
		return
	}
	CatalogCacheMisses.WithLabelValues(snapshot).Inc()
}

// RecordCatalogRefresh updates the catalog gauges after a refresh attempt.
func RecordCatalogRefresh(movies int, err error) {
	if err != nil {
		CatalogRefreshErrors.Inc()
		return
	}
	CatalogSize.Set(float64(movies))
	CatalogLastRefresh.Set(float64(time.Now().Unix()))
}

// RecordWatchlistOperation counts one watchlist operation by outcome.
func RecordWatchlistOperation(operation string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	WatchlistOperations.WithLabelValues(operation, result).Inc()
}

// RecordAuthzDecision counts one enforcer decision.
func RecordAuthzDecision(role string, allowed bool) {
	decision := "deny"
	if allowed {
		decision = "allow"
	}
	AuthzDecisions.WithLabelValues(role, decision).Inc()
}
