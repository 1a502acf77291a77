// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

/*
Package middleware holds the HTTP middleware that is independent of sessions
and authorization:

  - RequestID: X-Request-ID propagation into chi and the logging context
  - PrometheusMetrics: request counters and latency histograms labelled by
    chi route pattern
  - PerformanceMonitor: a ring of recent requests with per-endpoint
    percentiles, served by the admin performance endpoint

All three are chi-style func(http.Handler) http.Handler and keep
http.Hijacker working through chi's WrapResponseWriter, so they can sit in
front of the websocket endpoint.
*/
package middleware
