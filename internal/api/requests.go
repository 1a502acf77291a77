// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cinescope/internal/discovery"
	"github.com/tomtom215/cinescope/internal/models"
	"github.com/tomtom215/cinescope/internal/validation"
)

// MoviesRequest is the validated query of GET /movies. Mood, sort and
// min_rating are checked again by the engine parsers, which own their enums.
type MoviesRequest struct {
	Search    string `json:"search" validate:"max=100"`
	Genre     string `json:"genre" validate:"max=50"`
	Mood      string `json:"mood" validate:"max=30"`
	MinRating string `json:"min_rating" validate:"max=10"`
	Sort      string `json:"sort" validate:"omitempty,oneof=newest oldest rating-high rating-low title-asc title-desc"`
	Page      int    `json:"page" validate:"min=1,max=100000"`
	PageSize  int    `json:"page_size" validate:"min=1,max=50"`
}

// SuggestionsRequest is the validated query of GET /movies/suggestions.
type SuggestionsRequest struct {
	Query string `json:"q" validate:"max=100"`
	Limit int    `json:"limit" validate:"min=1,max=20"`
}

// RecommendationsRequest is the validated query of GET /recommendations.
type RecommendationsRequest struct {
	Limit int `json:"limit" validate:"min=1,max=50"`
}

// MovieNightRequest is the body of POST /movie-night.
type MovieNightRequest struct {
	Mood             string `json:"mood" validate:"max=30"`
	AvailableMinutes int    `json:"available_minutes" validate:"required,min=1,max=1440"`
	People           int    `json:"people" validate:"required,min=1,max=100"`
	Picks            int    `json:"picks" validate:"omitempty,min=1,max=10"`
}

// TraceRequest is one element of the POST /traces/analyze body.
type TraceRequest struct {
	MovieID          int      `json:"movie_id" validate:"required,gt=0"`
	TracePath        []string `json:"trace_path" validate:"required,min=1,max=50,dive,notblank,max=100"`
	DecisionSource   string   `json:"decision_source" validate:"max=30"`
	TimeSpentSeconds int      `json:"time_spent_seconds" validate:"gte=0"`
}

// AnalyzeTracesRequest is the body of POST /traces/analyze.
type AnalyzeTracesRequest struct {
	Traces []TraceRequest `json:"traces" validate:"max=1000,dive"`
}

// WatchlistUpdateRequest is the body of POST /watchlist.
type WatchlistUpdateRequest struct {
	MovieID int    `json:"movie_id" validate:"required,gt=0"`
	Action  string `json:"action" validate:"required,oneof=add remove toggle"`
}

// validateRequest runs the validator and converts failures to the API error
// body.
func validateRequest(v interface{}) *models.APIError {
	if verr := validation.ValidateStruct(v); verr != nil {
		return verr.ToAPIError()
	}
	return nil
}

// getIntParam reads an integer query parameter. Missing or malformed values
// give def.
func getIntParam(r *http.Request, key string, def int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// movieIDParam parses the {id} route parameter.
func movieIDParam(r *http.Request) (int, *models.APIError) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, &models.APIError{
			Code:    ErrCodeValidation,
			Message: "movie id must be a positive integer",
			Details: map[string]interface{}{"field": "id", "value": raw},
		}
	}
	return id, nil
}

// toTraces converts validated requests into engine traces.
func (req AnalyzeTracesRequest) toTraces() ([]discovery.DecisionTrace, error) {
	out := make([]discovery.DecisionTrace, 0, len(req.Traces))
	for _, t := range req.Traces {
		src, err := discovery.ParseDecisionSource(t.DecisionSource)
		if err != nil {
			return nil, err
		}
		out = append(out, discovery.DecisionTrace{
			MovieID:          t.MovieID,
			Path:             t.TracePath,
			Source:           src,
			TimeSpentSeconds: t.TimeSpentSeconds,
		})
	}
	return out, nil
}
