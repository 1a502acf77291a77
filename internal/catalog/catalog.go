// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/cinescope/internal/cache"
	"github.com/tomtom215/cinescope/internal/metrics"
	"github.com/tomtom215/cinescope/internal/models"
)

const (
	moviesKey = "movies"
	// fanOut bounds concurrent per-movie review fetches.
	fanOut = 4
)

// Catalog serves raw backend snapshots through a TTL cache. Concurrent
// misses for the same key share one backend call. Returned slices are
// copies and may be modified by the caller.
type Catalog struct {
	backend Backend
	movies  *cache.Cache[[]models.Movie]
	reviews *cache.Cache[[]models.Review]
	group   singleflight.Group

	mu          sync.RWMutex
	lastRefresh time.Time
}

// New creates a catalog over backend whose snapshots live for ttl.
func New(backend Backend, ttl time.Duration) *Catalog {
	return &Catalog{
		backend: backend,
		movies:  cache.New[[]models.Movie](ttl),
		reviews: cache.New[[]models.Review](ttl),
	}
}

// Movies returns the current movie snapshot.
func (c *Catalog) Movies(ctx context.Context) ([]models.Movie, error) {
	if movies, ok := c.movies.Get(moviesKey); ok {
		metrics.RecordCacheLookup(moviesKey, true)
		return slices.Clone(movies), nil
	}
	metrics.RecordCacheLookup(moviesKey, false)

	movies, err := c.loadMovies(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Clone(movies), nil
}

func (c *Catalog) loadMovies(ctx context.Context) ([]models.Movie, error) {
	v, err := c.share(ctx, moviesKey, func(ctx context.Context) (interface{}, error) {
		movies, err := c.backend.Movies(ctx)
		metrics.RecordCatalogRefresh(len(movies), err)
		if err != nil {
			return nil, fmt.Errorf("fetch movies: %w", err)
		}
		c.movies.Set(moviesKey, movies)
		c.markRefreshed()
		return movies, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Movie), nil
}

// Movie returns one movie, looked up in the snapshot first and then asked of
// the backend for movies added since the last refresh.
func (c *Catalog) Movie(ctx context.Context, id int) (models.Movie, error) {
	movies, err := c.Movies(ctx)
	if err == nil {
		for _, m := range movies {
			if m.MovieID == id {
				return m, nil
			}
		}
	}
	m, ferr := c.backend.Movie(ctx, id)
	if ferr != nil {
		if errors.Is(ferr, ErrNotFound) || err == nil {
			return models.Movie{}, ferr
		}
		return models.Movie{}, errors.Join(err, ferr)
	}
	return m, nil
}

// MovieReviews returns the reviews of one movie.
func (c *Catalog) MovieReviews(ctx context.Context, movieID int) ([]models.Review, error) {
	key := "movie_reviews:" + strconv.Itoa(movieID)
	return c.cachedReviews(ctx, key, "movie_reviews", func(ctx context.Context) ([]models.Review, error) {
		return c.backend.MovieReviews(ctx, movieID)
	})
}

// UserReviews returns the review history behind token. The cache key is a
// hash of the token.
func (c *Catalog) UserReviews(ctx context.Context, token string) ([]models.Review, error) {
	key := cache.GenerateKey("user_reviews", token)
	return c.cachedReviews(ctx, key, "user_reviews", func(ctx context.Context) ([]models.Review, error) {
		return c.backend.UserReviews(ctx, token)
	})
}

func (c *Catalog) cachedReviews(ctx context.Context, key, label string, fetch func(context.Context) ([]models.Review, error)) ([]models.Review, error) {
	if reviews, ok := c.reviews.Get(key); ok {
		metrics.RecordCacheLookup(label, true)
		return slices.Clone(reviews), nil
	}
	metrics.RecordCacheLookup(label, false)

	v, err := c.share(ctx, key, func(ctx context.Context) (interface{}, error) {
		reviews, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.reviews.Set(key, reviews)
		return reviews, nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(v.([]models.Review)), nil
}

// share runs fn once per key for all concurrent callers. fn gets a context
// detached from the first caller's cancellation, so one abandoned request
// does not fail the others; each caller stops waiting when its own ctx ends.
// The backend client's timeout bounds the shared call.
func (c *Catalog) share(ctx context.Context, key string, fn func(context.Context) (interface{}, error)) (interface{}, error) {
	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		return fn(detached)
	})
	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ReviewsByMovie fetches the reviews of every catalog movie, at most fanOut
// at a time. The first failure cancels the rest.
func (c *Catalog) ReviewsByMovie(ctx context.Context) (map[int][]models.Review, error) {
	movies, err := c.Movies(ctx)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	out := make(map[int][]models.Review, len(movies))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOut)
	for _, m := range movies {
		id := m.MovieID
		g.Go(func() error {
			reviews, err := c.MovieReviews(gctx, id)
			if err != nil {
				return fmt.Errorf("reviews for movie %d: %w", id, err)
			}
			mu.Lock()
			out[id] = reviews
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// AllReviews flattens ReviewsByMovie in catalog order.
func (c *Catalog) AllReviews(ctx context.Context) ([]models.Review, error) {
	byMovie, err := c.ReviewsByMovie(ctx)
	if err != nil {
		return nil, err
	}
	movies, err := c.Movies(ctx)
	if err != nil {
		return nil, err
	}
	var all []models.Review
	for _, m := range movies {
		all = append(all, byMovie[m.MovieID]...)
	}
	return all, nil
}

// Refresh replaces the movie snapshot with a fresh backend fetch. On failure
// the previous snapshot stays until its TTL runs out.
func (c *Catalog) Refresh(ctx context.Context) (int, error) {
	movies, err := c.backend.Movies(ctx)
	metrics.RecordCatalogRefresh(len(movies), err)
	if err != nil {
		return 0, fmt.Errorf("refresh movies: %w", err)
	}
	c.movies.Set(moviesKey, movies)
	c.markRefreshed()
	return len(movies), nil
}

// InvalidateMovie drops the cached reviews of one movie.
func (c *Catalog) InvalidateMovie(movieID int) {
	c.reviews.Delete("movie_reviews:" + strconv.Itoa(movieID))
}

// LastRefresh returns when the movie snapshot was last loaded.
func (c *Catalog) LastRefresh() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastRefresh
}

func (c *Catalog) markRefreshed() {
	c.mu.Lock()
	c.lastRefresh = time.Now()
	c.mu.Unlock()
}

// CacheStats reports hit and miss counts for the movie and review caches.
func (c *Catalog) CacheStats() map[string]cache.Stats {
	return map[string]cache.Stats{
		"movies":  c.movies.GetStats(),
		"reviews": c.reviews.GetStats(),
	}
}

// Serve sweeps expired snapshot entries until ctx is done. It satisfies
// suture.Service.
func (c *Catalog) Serve(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.movies.Serve(gctx) })
	g.Go(func() error { return c.reviews.Serve(gctx) })
	return g.Wait()
}

func (c *Catalog) String() string {
	return "catalog-cache-janitor"
}
