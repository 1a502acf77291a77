// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package middleware

import (
	"net/http"
	"slices"
	"sync"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tomtom215/cinescope/internal/logging"
)

// DefaultSlowRequestThreshold is the latency above which a request is
// logged at warn.
const DefaultSlowRequestThreshold = time.Second

// RequestMetrics is one observed request.
type RequestMetrics struct {
	Route      string    `json:"route"`
	Method     string    `json:"method"`
	DurationMS int64     `json:"duration_ms"`
	StatusCode int       `json:"status_code"`
	Timestamp  time.Time `json:"timestamp"`
}

// EndpointStats aggregates the retained samples of one method and route.
type EndpointStats struct {
	Endpoint      string  `json:"endpoint"`
	Samples       int     `json:"samples"`
	TotalRequests int64   `json:"total_requests"`
	ErrorRate     float64 `json:"error_rate"`
	AvgDuration   float64 `json:"avg_duration_ms"`
	P50Duration   int64   `json:"p50_duration_ms"`
	P95Duration   int64   `json:"p95_duration_ms"`
	P99Duration   int64   `json:"p99_duration_ms"`
	MinDuration   int64   `json:"min_duration_ms"`
	MaxDuration   int64   `json:"max_duration_ms"`
}

// PerformanceMonitor keeps a fixed-size ring of recent requests for the admin
// performance endpoint. Lifetime request counts are kept per endpoint.
type PerformanceMonitor struct {
	mu            sync.RWMutex
	ring          []RequestMetrics
	next          int
	full          bool
	totals        map[string]int64
	slowThreshold time.Duration
}

// NewPerformanceMonitor retains the last capacity requests. A non-positive
// capacity means 1000.
func NewPerformanceMonitor(capacity int) *PerformanceMonitor {
	if capacity <= 0 {
		capacity = 1000
	}
	return &PerformanceMonitor{
		ring:          make([]RequestMetrics, capacity),
		totals:        make(map[string]int64),
		slowThreshold: DefaultSlowRequestThreshold,
	}
}

// SetSlowThreshold changes the slow-request log threshold. Zero disables it.
func (pm *PerformanceMonitor) SetSlowThreshold(d time.Duration) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.slowThreshold = d
}

func endpointKey(method, route string) string {
	return method + " " + route
}

// RecordRequest adds one sample, evicting the oldest when the ring is full.
func (pm *PerformanceMonitor) RecordRequest(m RequestMetrics) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.ring[pm.next] = m
	pm.next = (pm.next + 1) % len(pm.ring)
	if pm.next == 0 {
		pm.full = true
	}
	pm.totals[endpointKey(m.Method, m.Route)]++
}

// samples returns the retained samples oldest first. Callers hold mu.
func (pm *PerformanceMonitor) samples() []RequestMetrics {
	if !pm.full {
		return slices.Clone(pm.ring[:pm.next])
	}
	out := make([]RequestMetrics, 0, len(pm.ring))
	out = append(out, pm.ring[pm.next:]...)
	return append(out, pm.ring[:pm.next]...)
}

// GetStats aggregates the retained samples per endpoint, busiest first with
// ties by endpoint name.
func (pm *PerformanceMonitor) GetStats() []EndpointStats {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	durations := make(map[string][]int64)
	errors := make(map[string]int)
	for _, m := range pm.samples() {
		key := endpointKey(m.Method, m.Route)
		durations[key] = append(durations[key], m.DurationMS)
		if m.StatusCode >= http.StatusInternalServerError {
			errors[key]++
		}
	}

	stats := make([]EndpointStats, 0, len(durations))
	for key, ds := range durations {
		slices.Sort(ds)
		var sum int64
		for _, d := range ds {
			sum += d
		}
		n := len(ds)
		stats = append(stats, EndpointStats{
			Endpoint:      key,
			Samples:       n,
			TotalRequests: pm.totals[key],
			ErrorRate:     float64(errors[key]) / float64(n),
			AvgDuration:   float64(sum) / float64(n),
			P50Duration:   percentile(ds, 0.50),
			P95Duration:   percentile(ds, 0.95),
			P99Duration:   percentile(ds, 0.99),
			MinDuration:   ds[0],
			MaxDuration:   ds[n-1],
		})
	}

	slices.SortFunc(stats, func(a, b EndpointStats) int {
		if a.Samples != b.Samples {
			return b.Samples - a.Samples
		}
		if a.Endpoint < b.Endpoint {
			return -1
		}
		if a.Endpoint > b.Endpoint {
			return 1
		}
		return 0
	})
	return stats
}

// GetRecentMetrics returns up to n of the newest samples, oldest first.
func (pm *PerformanceMonitor) GetRecentMetrics(n int) []RequestMetrics {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	all := pm.samples()
	n = max(0, min(n, len(all)))
	return all[len(all)-n:]
}

// Middleware samples every request passing through it.
func (pm *PerformanceMonitor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		elapsed := time.Since(start)

		route := RoutePattern(r)
		pm.RecordRequest(RequestMetrics{
			Route:      route,
			Method:     r.Method,
			DurationMS: elapsed.Milliseconds(),
			StatusCode: statusCode(ww),
			Timestamp:  start,
		})

		pm.mu.RLock()
		threshold := pm.slowThreshold
		pm.mu.RUnlock()
		if threshold > 0 && elapsed > threshold {
			logging.Ctx(r.Context()).Warn().
				Str("method", r.Method).
				Str("route", route).
				Dur("duration", elapsed).
				Msg("slow request")
		}
	})
}

// percentile picks the nearest-rank value from sorted.
func percentile(sorted []int64, p float64) int64 {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[int(float64(len(sorted)-1)*p)]
}
