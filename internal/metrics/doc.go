// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

/*
Package metrics defines the Prometheus collectors for Cinescope.

All collectors register with the default registry through promauto and are
exposed at /metrics by the API router. Metric names share the cinescope_
prefix.

# Overview

The package provides metrics for:
  - API request latency, throughput and rate-limit rejections
  - Review backend calls, retries and rejected wire records
  - Circuit breaker state and transitions
  - Catalog snapshot cache efficiency and refresh health
  - Watchlist operations and websocket streams
  - Authorization decisions and rejected session tokens

# Metrics Endpoint

Metrics are served in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

API Metrics:
  - cinescope_api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - cinescope_api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
    Buckets: .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5
  - cinescope_api_active_requests: In-flight requests (gauge)
  - cinescope_api_rate_limit_hits_total: Rate limit rejections (counter)
    Labels: endpoint

Review Backend Metrics:
  - cinescope_backend_requests_total: Backend calls (counter)
    Labels: endpoint, status (HTTP status code or "error")
  - cinescope_backend_request_duration_seconds: Backend latency (histogram)
    Labels: endpoint
  - cinescope_backend_retries_total: Calls retried after HTTP 429 (counter)
    Labels: endpoint
  - cinescope_backend_records_rejected_total: Records rejected at ingestion (counter)
    Labels: kind (movie, review)

Circuit Breaker Metrics:
  - cinescope_circuit_breaker_state: Current state (gauge)
    Labels: name
    Values: 0=closed, 1=half-open, 2=open
  - cinescope_circuit_breaker_requests_total: Calls through the breaker (counter)
    Labels: name, result
  - cinescope_circuit_breaker_consecutive_failures: Current failure streak (gauge)
    Labels: name
  - cinescope_circuit_breaker_state_transitions_total: State changes (counter)
    Labels: name, from_state, to_state

Catalog Metrics:
  - cinescope_catalog_cache_hits_total, cinescope_catalog_cache_misses_total (counter)
    Labels: snapshot (movies, movie_reviews, user_reviews)
  - cinescope_catalog_movies: Movies in the current snapshot (gauge)
  - cinescope_catalog_last_refresh_timestamp: Unix time of the last good refresh (gauge)
  - cinescope_catalog_refresh_errors_total: Failed refreshes (counter)

Watchlist Metrics:
  - cinescope_watchlist_operations_total: Operations (counter)
    Labels: operation, result (success, error)
  - cinescope_watchlist_stream_connections: Open websocket streams (gauge)

Authorization Metrics:
  - cinescope_authz_decisions_total: Enforcer decisions (counter)
    Labels: role, decision (allow, deny)
  - cinescope_session_tokens_rejected_total: Rejected bearer tokens (counter)
    Labels: reason (expired, signature, missing_claim, invalid, malformed)

# Usage

Collectors are recorded through the Record helpers rather than touched
directly, so label order lives in one place:

	start := time.Now()
	// ... handle request ...
	metrics.RecordAPIRequest(r.Method, middleware.RoutePattern(r), status, time.Since(start))

	metrics.RecordCacheLookup("movies", hit)
	metrics.RecordWatchlistOperation("toggle", err)

# Cardinality

Label values must stay low-cardinality. Endpoints are recorded as chi route
patterns (/api/v1/movies/{id}), never raw paths. User IDs, tokens and movie
IDs never appear in labels.

# Thread Safety

All collectors and Record helpers are safe for concurrent use.

# Testing

Tests read collector values with prometheus/testutil:

	before := testutil.ToFloat64(metrics.CatalogRefreshErrors)
	metrics.RecordCatalogRefresh(0, errors.New("boom"))
	if got := testutil.ToFloat64(metrics.CatalogRefreshErrors); got != before+1 {
		t.Errorf("refresh errors = %v, want %v", got, before+1)
	}

Collectors are process-global, so assertions compare deltas instead of
absolute values.

# See Also

  - internal/middleware: request metrics middleware
  - internal/catalog: backend and breaker instrumentation
  - github.com/prometheus/client_golang: underlying client library
*/
package metrics
