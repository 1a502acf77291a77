// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/cinescope/internal/logging"
	"github.com/tomtom215/cinescope/internal/metrics"
	"github.com/tomtom215/cinescope/internal/models"
)

// BreakerName labels the backend breaker in metrics and logs.
const BreakerName = "review-backend"

// BreakerSettings tunes the circuit breaker.
type BreakerSettings struct {
	MaxRequests  uint32        // probes allowed while half-open
	Interval     time.Duration // closed-state count reset period
	Timeout      time.Duration // open period before probing
	MinRequests  uint32        // requests needed before the ratio applies
	FailureRatio float64
}

// DefaultBreakerSettings opens the circuit at a 60% failure rate over at
// least 10 requests and probes again after two minutes.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      2 * time.Minute,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// BreakerClient guards a Backend with a circuit breaker. Not-found and
// unauthorized answers count as successes: they prove the backend is up.
type BreakerClient struct {
	backend Backend
	cb      *gobreaker.CircuitBreaker[any]
	name    string
}

// NewBreakerClient wraps backend.
func NewBreakerClient(backend Backend, s BreakerSettings) *BreakerClient {
	name := BreakerName
	log := logging.WithComponent("catalog")

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			if ratio >= s.FailureRatio {
				log.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", ratio*100).
					Msg("opening backend circuit")
				return true
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Info().Str("from", stateToString(from)).Str("to", stateToString(to)).Msg("circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, stateToString(from), stateToString(to)).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrNotFound) ||
				errors.Is(err, ErrUnauthorized) ||
				errors.Is(err, context.Canceled)
		},
	})

	return &BreakerClient{backend: backend, cb: cb, name: name}
}

// State returns closed, half-open or open.
func (b *BreakerClient) State() string {
	return stateToString(b.cb.State())
}

// execute runs fn through the breaker and updates breaker metrics.
func execute[T any](b *BreakerClient, fn func() (T, error)) (T, error) {
	var zero T
	result, err := b.cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			return zero, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(b.cb.Counts().ConsecutiveFailures))
		return zero, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)

	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// Movies implements Backend.
func (b *BreakerClient) Movies(ctx context.Context) ([]models.Movie, error) {
	return execute(b, func() ([]models.Movie, error) { return b.backend.Movies(ctx) })
}

// Movie implements Backend.
func (b *BreakerClient) Movie(ctx context.Context, id int) (models.Movie, error) {
	return execute(b, func() (models.Movie, error) { return b.backend.Movie(ctx, id) })
}

// MovieReviews implements Backend.
func (b *BreakerClient) MovieReviews(ctx context.Context, movieID int) ([]models.Review, error) {
	return execute(b, func() ([]models.Review, error) { return b.backend.MovieReviews(ctx, movieID) })
}

// UserReviews implements Backend.
func (b *BreakerClient) UserReviews(ctx context.Context, token string) ([]models.Review, error) {
	return execute(b, func() ([]models.Review, error) { return b.backend.UserReviews(ctx, token) })
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
