// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/tomtom215/cinescope/internal/discovery"
	"github.com/tomtom215/cinescope/internal/models"
)

func TestMoods(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	_, resp := env.do(t, http.MethodGet, "/api/v1/moods", "", nil)
	var moods []discovery.MoodProfile
	decodeData(t, resp, &moods)
	if len(moods) != len(discovery.Moods()) {
		t.Errorf("moods = %d, want %d", len(moods), len(discovery.Moods()))
	}

	rec, resp := env.do(t, http.MethodGet, "/api/v1/moods/happy", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var mm MoodMovies
	decodeData(t, resp, &mm)
	if mm.Mood.Key != discovery.MoodHappy || len(mm.Movies) != 3 {
		t.Fatalf("mood %q with %d movies, want happy with 3", mm.Mood.Key, len(mm.Movies))
	}
	// Highest rated first.
	if mm.Movies[0].MovieID != 1 {
		t.Errorf("first = %d, want 1", mm.Movies[0].MovieID)
	}

	rec, _ = env.do(t, http.MethodGet, "/api/v1/moods/sleepy", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown mood status = %d, want 400", rec.Code)
	}
}

func TestMovieNight(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
		maxMinutes int
	}{
		{"happy evening", map[string]interface{}{"mood": "happy", "available_minutes": 94, "people": 3}, http.StatusOK, 94},
		{"any mood", map[string]interface{}{"available_minutes": 200, "people": 1, "picks": 2}, http.StatusOK, 200},
		{"nothing fits", map[string]interface{}{"available_minutes": 10, "people": 2}, http.StatusOK, 10},
		{"missing people", map[string]interface{}{"available_minutes": 90}, http.StatusBadRequest, 0},
		{"unknown mood", map[string]interface{}{"mood": "sleepy", "available_minutes": 90, "people": 2}, http.StatusBadRequest, 0},
		{"unknown field", map[string]interface{}{"available_minutes": 90, "people": 2, "snacks": true}, http.StatusBadRequest, 0},
		{"malformed", "{not json", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := env.do(t, http.MethodPost, "/api/v1/movie-night", "", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var out struct {
				Picks []discovery.NightPick `json:"picks"`
			}
			decodeData(t, resp, &out)
			for _, p := range out.Picks {
				if p.Movie.DurationMinutes > tt.maxMinutes {
					t.Errorf("%q runs %d minutes, limit %d", p.Movie.Title, p.Movie.DurationMinutes, tt.maxMinutes)
				}
				if p.Snack == "" {
					t.Errorf("%q has no snack", p.Movie.Title)
				}
			}
		})
	}
}

func TestRecommendations(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec, resp := env.do(t, http.MethodGet, "/api/v1/recommendations", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("guest status = %d, want 401", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != ErrCodeUnauthorized {
		t.Errorf("guest error = %+v", resp.Error)
	}

	token := signToken(t, 100, models.RoleUser, time.Hour)
	rec, resp = env.do(t, http.MethodGet, "/api/v1/recommendations?limit=5", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var recs discovery.Recommendations
	decodeData(t, resp, &recs)
	if recs.Algorithm != discovery.AlgorithmGenreBased {
		t.Errorf("algorithm = %q, want genre-based", recs.Algorithm)
	}
	for _, r := range recs.Items {
		if r.Movie.MovieID == 1 {
			t.Error("already reviewed movie recommended")
		}
	}

	rec, _ = env.do(t, http.MethodGet, "/api/v1/recommendations?limit=500", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("limit 500 status = %d, want 400", rec.Code)
	}
}

func TestAnalyzeTraces(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	token := signToken(t, 100, models.RoleUser, time.Hour)

	body := map[string]interface{}{
		"traces": []map[string]interface{}{
			{"movie_id": 1, "trace_path": []string{"home", "search", "detail"}, "decision_source": "search", "time_spent_seconds": 40},
			{"movie_id": 3, "trace_path": []string{"home", "trending", "detail"}, "decision_source": "trending"},
			{"movie_id": 5, "trace_path": []string{"home", "detail"}},
		},
	}
	rec, resp := env.do(t, http.MethodPost, "/api/v1/traces/analyze", token, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var out discovery.TraceAnalytics
	decodeData(t, resp, &out)
	if out.TotalTraces != 3 {
		t.Errorf("total = %d, want 3", out.TotalTraces)
	}
	if out.DecisionSources[discovery.SourceBrowse] != 1 {
		t.Errorf("browse = %d, want 1 for the trace without a source", out.DecisionSources[discovery.SourceBrowse])
	}

	bad := []struct {
		name string
		body interface{}
	}{
		{"unknown source", map[string]interface{}{"traces": []map[string]interface{}{
			{"movie_id": 1, "trace_path": []string{"home"}, "decision_source": "telepathy"},
		}}},
		{"empty path", map[string]interface{}{"traces": []map[string]interface{}{
			{"movie_id": 1, "trace_path": []string{}},
		}}},
		{"blank step", map[string]interface{}{"traces": []map[string]interface{}{
			{"movie_id": 1, "trace_path": []string{"home", "  "}},
		}}},
		{"missing movie", map[string]interface{}{"traces": []map[string]interface{}{
			{"trace_path": []string{"home"}},
		}}},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := env.do(t, http.MethodPost, "/api/v1/traces/analyze", token, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestAdminEndpoints(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	admin := signToken(t, 1, models.RoleAdmin, time.Hour)
	user := signToken(t, 100, models.RoleUser, time.Hour)

	rec, _ := env.do(t, http.MethodGet, "/api/v1/admin/analytics", user, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("user status = %d, want 403", rec.Code)
	}

	rec, resp := env.do(t, http.MethodGet, "/api/v1/admin/analytics", admin, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin status = %d: %s", rec.Code, rec.Body.String())
	}
	var analytics discovery.AdminAnalytics
	decodeData(t, resp, &analytics)
	if analytics.Overview.TotalMovies != len(env.backend.movies) {
		t.Errorf("total movies = %d, want %d", analytics.Overview.TotalMovies, len(env.backend.movies))
	}

	rec, resp = env.do(t, http.MethodGet, "/api/v1/admin/performance?recent=5", admin, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("performance status = %d", rec.Code)
	}
	var perf struct {
		Endpoints []struct {
			Endpoint string `json:"endpoint"`
		} `json:"endpoints"`
		Recent []struct {
			Route string `json:"route"`
		} `json:"recent"`
	}
	decodeData(t, resp, &perf)
	if len(perf.Endpoints) == 0 {
		t.Error("expected sampled endpoints after earlier requests")
	}
	if len(perf.Recent) == 0 || len(perf.Recent) > 5 {
		t.Errorf("recent = %d, want 1..5", len(perf.Recent))
	}
}
