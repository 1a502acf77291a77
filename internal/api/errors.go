// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/cinescope/internal/catalog"
	"github.com/tomtom215/cinescope/internal/discovery"
	"github.com/tomtom215/cinescope/internal/validation"
	"github.com/tomtom215/cinescope/internal/watchlist"
)

// Error codes carried in models.APIError.Code.
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	ErrCodeTooManyRequests    = "TOO_MANY_REQUESTS"
	ErrCodeUpstream           = "UPSTREAM_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeTimeout            = "TIMEOUT"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

var (
	// ErrNotAuthenticated is returned when a signed-in user is required.
	ErrNotAuthenticated = errors.New("authentication required")

	// ErrInvalidToken wraps every bearer token rejection.
	ErrInvalidToken = errors.New("invalid session token")
)

// classifyError maps a lower-layer error to an HTTP status, an error code
// and a client-safe message.
func classifyError(err error) (int, string, string) {
	var (
		engineErr  *discovery.ValidationError
		requestErr *validation.RequestValidationError
		statusErr  *catalog.StatusError
	)
	switch {
	case errors.As(err, &engineErr):
		return http.StatusBadRequest, ErrCodeValidation, engineErr.Error()
	case errors.As(err, &requestErr):
		return http.StatusBadRequest, ErrCodeValidation, requestErr.Error()
	case errors.Is(err, watchlist.ErrInvalidID):
		return http.StatusBadRequest, ErrCodeValidation, "movie id must be positive"
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound, ErrCodeNotFound, "Movie not found"
	case errors.Is(err, catalog.ErrUnauthorized), errors.Is(err, ErrNotAuthenticated):
		return http.StatusUnauthorized, ErrCodeUnauthorized, "Authentication required"
	case errors.Is(err, catalog.ErrCircuitOpen), errors.Is(err, catalog.ErrRateLimited):
		return http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Review service temporarily unavailable"
	case errors.Is(err, catalog.ErrInvalidRecord), errors.As(err, &statusErr):
		return http.StatusBadGateway, ErrCodeUpstream, "Review service returned an invalid response"
	case errors.Is(err, watchlist.ErrClosed):
		return http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Watchlist store unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, ErrCodeTimeout, "Request timed out"
	default:
		return http.StatusInternalServerError, ErrCodeInternal, "Internal server error"
	}
}
