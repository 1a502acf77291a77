// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/cinescope/internal/models"
)

// fakeBackend is an in-memory Backend with call counting and error injection.
type fakeBackend struct {
	mu          sync.Mutex
	movies      []models.Movie
	reviews     map[int][]models.Review
	userReviews map[string][]models.Review
	err         error
	delay       time.Duration
	calls       map[string]int
}

func newFakeBackend(movies []models.Movie) *fakeBackend {
	return &fakeBackend{
		movies:      movies,
		reviews:     map[int][]models.Review{},
		userReviews: map[string][]models.Review{},
		calls:       map[string]int{},
	}
}

func (f *fakeBackend) record(name string) error {
	f.mu.Lock()
	f.calls[name]++
	err, delay := f.err, f.delay
	f.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}
	return err
}

func (f *fakeBackend) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func (f *fakeBackend) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeBackend) Movies(context.Context) ([]models.Movie, error) {
	if err := f.record("movies"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Movie(nil), f.movies...), nil
}

func (f *fakeBackend) Movie(_ context.Context, id int) (models.Movie, error) {
	if err := f.record("movie"); err != nil {
		return models.Movie{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.movies {
		if m.MovieID == id {
			return m, nil
		}
	}
	return models.Movie{}, ErrNotFound
}

func (f *fakeBackend) MovieReviews(_ context.Context, movieID int) ([]models.Review, error) {
	if err := f.record("reviews"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reviews[movieID], nil
}

func (f *fakeBackend) UserReviews(_ context.Context, token string) ([]models.Review, error) {
	if err := f.record("user_reviews"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.userReviews[token]
	if !ok {
		return nil, ErrUnauthorized
	}
	return r, nil
}

func fastBreaker() BreakerSettings {
	return BreakerSettings{
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      50 * time.Millisecond,
		MinRequests:  3,
		FailureRatio: 0.6,
	}
}

func TestBreakerOpensOnFailures(t *testing.T) {
	backend := newFakeBackend(nil)
	backend.setErr(errors.New("connection refused"))
	b := NewBreakerClient(backend, fastBreaker())

	for i := 0; i < 3; i++ {
		if _, err := b.Movies(context.Background()); err == nil || errors.Is(err, ErrCircuitOpen) {
			t.Fatalf("call %d: expected backend error, got %v", i, err)
		}
	}
	if b.State() != "open" {
		t.Fatalf("expected open breaker, got %s", b.State())
	}

	_, err := b.Movies(context.Background())
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if got := backend.count("movies"); got != 3 {
		t.Errorf("open breaker must not call backend; calls=%d", got)
	}

	backend.setErr(nil)
	time.Sleep(80 * time.Millisecond)
	if _, err := b.Movies(context.Background()); err != nil {
		t.Fatalf("half-open probe failed: %v", err)
	}
	if b.State() != "closed" {
		t.Errorf("expected closed after successful probe, got %s", b.State())
	}
}

func TestBreakerIgnoresNotFoundAndUnauthorized(t *testing.T) {
	backend := newFakeBackend([]models.Movie{{MovieID: 1, Title: "A"}})
	b := NewBreakerClient(backend, fastBreaker())

	for i := 0; i < 5; i++ {
		if _, err := b.Movie(context.Background(), 99); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if _, err := b.UserReviews(context.Background(), "nope"); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	}
	if b.State() != "closed" {
		t.Errorf("client errors must not trip the breaker, state=%s", b.State())
	}
}

func TestBreakerPassesResults(t *testing.T) {
	backend := newFakeBackend([]models.Movie{{MovieID: 1, Title: "A"}})
	backend.reviews[1] = []models.Review{{ReviewID: 1, MovieID: 1, Rating: 4}}
	b := NewBreakerClient(backend, DefaultBreakerSettings())

	m, err := b.Movie(context.Background(), 1)
	if err != nil || m.Title != "A" {
		t.Fatalf("Movie = %+v, %v", m, err)
	}
	reviews, err := b.MovieReviews(context.Background(), 1)
	if err != nil || len(reviews) != 1 {
		t.Fatalf("MovieReviews = %+v, %v", reviews, err)
	}
	empty, err := b.MovieReviews(context.Background(), 2)
	if err != nil || len(empty) != 0 {
		t.Fatalf("MovieReviews(2) = %+v, %v", empty, err)
	}
}
