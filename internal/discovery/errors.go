// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package discovery

import (
	"errors"
	"fmt"
)

// Sentinel causes wrapped by ValidationError.
var (
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")
	ErrInvalidPageSize  = errors.New("page size must be positive")
	ErrUnknownMood      = errors.New("unknown mood")
	ErrUnknownSortKey   = errors.New("unknown sort key")
	ErrInvalidMinRating = errors.New("min rating must be a number or \"All\"")
	ErrInvalidPlan      = errors.New("invalid movie night plan")
	ErrUnknownSource    = errors.New("unknown decision source")
)

// ValidationError reports an input that violates an engine precondition.
// It is returned immediately and never retried or swallowed.
type ValidationError struct {
	Field string
	Value interface{}
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(field string, value interface{}, cause error) *ValidationError {
	return &ValidationError{Field: field, Value: value, Err: cause}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
