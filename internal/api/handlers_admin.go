// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/cinescope/internal/discovery"
	"github.com/tomtom215/cinescope/internal/middleware"
)

// AdminAnalytics handles GET /api/v1/admin/analytics.
func (h *Handler) AdminAnalytics(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	movies, err := h.catalog.Movies(ctx)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	reviews, err := h.catalog.AllReviews(ctx)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	analytics, err := discovery.BuildAdminAnalytics(movies, reviews, h.now())
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondSuccess(w, analytics, start)
}

// AdminPerformance handles GET /api/v1/admin/performance with per-route
// latency percentiles and the most recent requests.
func (h *Handler) AdminPerformance(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.perf == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Performance monitoring disabled", nil)
		return
	}
	recent := getIntParam(r, "recent", 20)
	if recent < 0 || recent > 500 {
		recent = 20
	}
	respondSuccess(w, struct {
		Endpoints []middleware.EndpointStats  `json:"endpoints"`
		Recent    []middleware.RequestMetrics `json:"recent"`
	}{
		Endpoints: h.perf.GetStats(),
		Recent:    h.perf.GetRecentMetrics(recent),
	}, start)
}
