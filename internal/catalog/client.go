// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/cinescope/internal/config"
	"github.com/tomtom215/cinescope/internal/metrics"
	"github.com/tomtom215/cinescope/internal/models"
)

const (
	// maxErrorBodySize caps how much of an error response is kept.
	maxErrorBodySize = 64 * 1024
	// maxResponseBodySize caps successful response bodies.
	maxResponseBodySize = 32 << 20
	// maxRetryDelay caps a single backoff wait, including Retry-After.
	maxRetryDelay = 30 * time.Second
)

// Backend is the read side of the review service.
type Backend interface {
	Movies(ctx context.Context) ([]models.Movie, error)
	Movie(ctx context.Context, id int) (models.Movie, error)
	MovieReviews(ctx context.Context, movieID int) ([]models.Review, error)
	UserReviews(ctx context.Context, token string) ([]models.Review, error)
}

// Client talks HTTP to the review backend. Outbound calls are shaped by a
// token bucket and HTTP 429 responses are retried with exponential backoff.
// Safe for concurrent use.
type Client struct {
	baseURL        string
	http           *http.Client
	limiter        *rate.Limiter
	maxRetries     int
	retryBaseDelay time.Duration
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// NewClient builds a client from backend settings. A non-positive
// RequestsPerSecond disables outbound shaping.
func NewClient(cfg config.BackendConfig, opts ...ClientOption) *Client {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	c := &Client{
		baseURL:        strings.TrimRight(cfg.URL, "/"),
		http:           &http.Client{Timeout: cfg.Timeout},
		limiter:        rate.NewLimiter(limit, max(cfg.Burst, 1)),
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: cfg.RetryBaseDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Movies fetches GET /api/movies.
func (c *Client) Movies(ctx context.Context) ([]models.Movie, error) {
	body, err := c.get(ctx, "/api/movies", "/api/movies", "")
	if err != nil {
		return nil, err
	}
	return DecodeMovies(body)
}

// Movie fetches GET /api/movies/{id}. A 404 returns ErrNotFound.
func (c *Client) Movie(ctx context.Context, id int) (models.Movie, error) {
	body, err := c.get(ctx, "/api/movies/{id}", "/api/movies/"+strconv.Itoa(id), "")
	if err != nil {
		return models.Movie{}, err
	}
	return DecodeMovie(body)
}

// MovieReviews fetches GET /api/reviews/movie/{id}.
func (c *Client) MovieReviews(ctx context.Context, movieID int) ([]models.Review, error) {
	body, err := c.get(ctx, "/api/reviews/movie/{id}", "/api/reviews/movie/"+strconv.Itoa(movieID), "")
	if err != nil {
		return nil, err
	}
	return DecodeReviews(body)
}

// UserReviews fetches GET /api/reviews/user with the caller's bearer token.
func (c *Client) UserReviews(ctx context.Context, token string) ([]models.Review, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	body, err := c.get(ctx, "/api/reviews/user", "/api/reviews/user", token)
	if err != nil {
		return nil, err
	}
	return DecodeReviews(body)
}

// get performs one logical GET and returns the body of a 200 response.
// endpoint is the low-cardinality metric label.
func (c *Client) get(ctx context.Context, endpoint, path, token string) ([]byte, error) {
	start := time.Now()
	resp, err := c.doRequestWithRetry(ctx, endpoint, c.baseURL+path, token)
	if err != nil {
		metrics.RecordBackendRequest(endpoint, "error", time.Since(start))
		return nil, err
	}
	defer resp.Body.Close()
	metrics.RecordBackendRequest(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%s: %w", path, ErrUnauthorized)
	default:
		return nil, &StatusError{Endpoint: endpoint, Code: resp.StatusCode, Body: string(readBodyForError(resp.Body))}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", endpoint, err)
	}
	return body, nil
}

// doRequestWithRetry retries HTTP 429 with delays of base, 2*base, 4*base...
// A Retry-After header in seconds or HTTP-date form replaces the computed
// delay. Waits honor ctx.
func (c *Client) doRequestWithRetry(ctx context.Context, endpoint, reqURL, token string) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("HTTP request failed: %w", err)
		}
		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}
		_ = resp.Body.Close()

		if attempt >= c.maxRetries {
			return nil, fmt.Errorf("%w after %d retries", ErrRateLimited, c.maxRetries)
		}
		metrics.BackendRetries.WithLabelValues(endpoint).Inc()

		delay := retryDelay(c.retryBaseDelay, attempt, resp.Header.Get("Retry-After"), time.Now())
		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		}
	}
}

func retryDelay(base time.Duration, attempt int, retryAfter string, now time.Time) time.Duration {
	delay := base * time.Duration(1<<uint(attempt))
	if retryAfter != "" {
		if secs, err := strconv.Atoi(strings.TrimSpace(retryAfter)); err == nil && secs >= 0 {
			delay = time.Duration(secs) * time.Second
		} else if at, err := http.ParseTime(retryAfter); err == nil {
			delay = max(at.Sub(now), 0)
		}
	}
	return min(delay, maxRetryDelay)
}

// readBodyForError reads at most maxErrorBodySize bytes for diagnostics.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil && !errors.Is(err, io.EOF) {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, "\n... (truncated)"...)
	}
	return body
}
