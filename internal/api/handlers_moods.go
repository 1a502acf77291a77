// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cinescope/internal/discovery"
)

// MoodMovies is the body of GET /moods/{mood}.
type MoodMovies struct {
	Mood   discovery.MoodProfile `json:"mood"`
	Movies []MovieCard           `json:"movies"`
}

// Moods handles GET /api/v1/moods.
func (h *Handler) Moods(w http.ResponseWriter, _ *http.Request) {
	respondSuccess(w, discovery.Moods(), time.Now())
}

// MoodMovies handles GET /api/v1/moods/{mood}, listing matching movies
// highest rated first.
func (h *Handler) MoodMovies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	mood, err := discovery.ParseMood(chi.URLParam(r, "mood"))
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	profile, _ := mood.Profile()

	movies, err := h.catalog.Movies(r.Context())
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	matched := discovery.FilterMovies(movies, discovery.Criteria{Mood: mood})
	sorted, err := discovery.SortMovies(matched, discovery.SortRatingHigh)
	if err != nil {
		respondFailure(w, r, err)
		return
	}

	respondSuccess(w, MoodMovies{Mood: profile, Movies: toCards(sorted)}, start)
}
