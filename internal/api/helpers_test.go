// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/cinescope/internal/authz"
	"github.com/tomtom215/cinescope/internal/catalog"
	"github.com/tomtom215/cinescope/internal/config"
	"github.com/tomtom215/cinescope/internal/middleware"
	"github.com/tomtom215/cinescope/internal/models"
	"github.com/tomtom215/cinescope/internal/watchlist"
	ws "github.com/tomtom215/cinescope/internal/websocket"
)

const testSecret = "test-secret-that-is-long-enough-for-hs256"

// fakeBackend serves a fixed catalog.
type fakeBackend struct {
	mu          sync.Mutex
	movies      []models.Movie
	reviews     map[int][]models.Review
	userReviews []models.Review
	err         error
	calls       int
}

func (f *fakeBackend) Movies(context.Context) ([]models.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Movie(nil), f.movies...), nil
}

func (f *fakeBackend) Movie(_ context.Context, id int) (models.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return models.Movie{}, f.err
	}
	for _, m := range f.movies {
		if m.MovieID == id {
			return m, nil
		}
	}
	return models.Movie{}, catalog.ErrNotFound
}

func (f *fakeBackend) MovieReviews(_ context.Context, movieID int) ([]models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Review(nil), f.reviews[movieID]...), nil
}

func (f *fakeBackend) UserReviews(_ context.Context, token string) ([]models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if token == "" {
		return nil, catalog.ErrUnauthorized
	}
	return append([]models.Review(nil), f.userReviews...), nil
}

func day(n int) time.Time {
	return time.Now().Add(-time.Duration(n) * 24 * time.Hour).UTC().Truncate(time.Second)
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		movies: []models.Movie{
			{MovieID: 1, Title: "Space Laughs", Genre: "Comedy", ReleaseYear: 2020, DurationMinutes: 95, AvgRating: 4.5, ReviewCount: 12},
			{MovieID: 2, Title: "Night Terror", Genre: "Horror", ReleaseYear: 2018, DurationMinutes: 110, AvgRating: 3.2, ReviewCount: 4},
			{MovieID: 3, Title: "Rise Up", Genre: "Biography", ReleaseYear: 2022, DurationMinutes: 130, AvgRating: 4.8, ReviewCount: 30},
			{MovieID: 4, Title: "Quiet Crime", Genre: "Crime", ReleaseYear: 2015, DurationMinutes: 100, AvgRating: 2.0, ReviewCount: 1},
			{MovieID: 5, Title: "Laugh Riot", Genre: "Comedy", ReleaseYear: 2023, DurationMinutes: 88, AvgRating: 3.9, ReviewCount: 7},
			{MovieID: 6, Title: "Mystery Manor", Genre: "Mystery", ReleaseYear: 2019, DurationMinutes: 105, AvgRating: 4.1, ReviewCount: 9},
			{MovieID: 7, Title: "Family Trip", Genre: "Family", ReleaseYear: 2021, DurationMinutes: 92, AvgRating: 3.5, ReviewCount: 3},
		},
		reviews: map[int][]models.Review{
			1: {
				{ReviewID: 10, MovieID: 1, UserID: 100, Name: "Ana", Rating: 5, Comment: "Hilarious and fun, loved it", ReviewDate: day(1)},
				{ReviewID: 11, MovieID: 1, UserID: 101, Name: "Ben", Rating: 4, Comment: "Great cast", ReviewDate: day(2)},
				{ReviewID: 12, MovieID: 1, UserID: 102, Name: "Cy", Rating: 5, Comment: "Amazing", ReviewDate: day(30)},
			},
			2: {
				{ReviewID: 20, MovieID: 2, UserID: 100, Name: "Ana", Rating: 3, Comment: "Scary but slow", ReviewDate: day(10)},
			},
			3: {
				{ReviewID: 30, MovieID: 3, UserID: 101, Name: "Ben", Rating: 5, Comment: "Inspiring", ReviewDate: day(3)},
			},
		},
		userReviews: []models.Review{
			{ReviewID: 10, MovieID: 1, UserID: 100, Title: "Space Laughs", Rating: 5, ReviewDate: day(1)},
		},
	}
}

// testEnv is a fully wired router over a fake backend.
type testEnv struct {
	backend *fakeBackend
	catalog *catalog.Catalog
	perf    *middleware.PerformanceMonitor
	handler http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	backend := newFakeBackend()
	cat := catalog.New(backend, time.Minute)

	enforcer, err := authz.NewEnforcer(authz.FromConfig(config.CasbinConfig{}))
	if err != nil {
		t.Fatalf("NewEnforcer: %v", err)
	}
	t.Cleanup(enforcer.Close)

	events := watchlist.NewEvents()
	t.Cleanup(func() { _ = events.Close() })
	perf := middleware.NewPerformanceMonitor(100)

	h := NewHandler(Deps{
		Catalog:     cat,
		Watchlists:  watchlist.NewService(watchlist.NewMemoryStore(), events),
		Hub:         ws.NewHub(events),
		Performance: perf,
		Origins:     []string{"http://cinescope.test"},
	})
	mwConfig := DefaultChiMiddlewareConfig()
	mwConfig.RateLimitDisabled = true
	router := NewRouter(h, NewSessions(testSecret), enforcer, NewChiMiddleware(mwConfig))

	return &testEnv{backend: backend, catalog: cat, perf: perf, handler: router.SetupChi()}
}

func signToken(t *testing.T, userID int, role string, ttl time.Duration) string {
	t.Helper()
	claims := SessionClaims{
		UserID: userID,
		Email:  "viewer@example.com",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

// envelope mirrors models.APIResponse with raw data.
type envelope struct {
	Status string           `json:"status"`
	Data   json.RawMessage  `json:"data"`
	Error  *models.APIError `json:"error"`
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: decode envelope: %v\n%s", method, path, err, rec.Body.String())
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data: %v\n%s", err, env.Data)
	}
}
