// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/cinescope/internal/discovery"
)

// MovieNight handles POST /api/v1/movie-night.
func (h *Handler) MovieNight(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req MovieNightRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	plan := discovery.NightPlan{
		AvailableMinutes: req.AvailableMinutes,
		People:           req.People,
		Picks:            req.Picks,
	}
	if strings.TrimSpace(req.Mood) != "" {
		mood, err := discovery.ParseMood(req.Mood)
		if err != nil {
			respondFailure(w, r, err)
			return
		}
		plan.Mood = mood
	}

	movies, err := h.catalog.Movies(r.Context())
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	picks, err := discovery.PlanMovieNight(movies, plan)
	if err != nil {
		respondFailure(w, r, err)
		return
	}

	respondSuccess(w, map[string]interface{}{
		"plan":  plan,
		"picks": picks,
	}, start)
}

// Recommendations handles GET /api/v1/recommendations for signed-in users.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	hctx := GetHandlerContext(r)
	if err := hctx.RequireUser(); err != nil {
		respondFailure(w, r, err)
		return
	}

	req := RecommendationsRequest{Limit: getIntParam(r, "limit", h.cfg.RecommendationLimit)}
	if apiErr := validateRequest(req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	ctx := r.Context()
	movies, err := h.catalog.Movies(ctx)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	history, err := h.userReviews(ctx, hctx)
	if err != nil {
		respondFailure(w, r, err)
		return
	}

	respondSuccess(w, discovery.Recommend(movies, history, req.Limit), start)
}

// AnalyzeTraces handles POST /api/v1/traces/analyze.
func (h *Handler) AnalyzeTraces(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req AnalyzeTracesRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	traces, err := req.toTraces()
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	analytics, err := discovery.AnalyzeTraces(traces)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondSuccess(w, analytics, start)
}
