// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the backend answered 404.
	ErrNotFound = errors.New("catalog: not found")

	// ErrUnauthorized means the backend rejected the forwarded token.
	ErrUnauthorized = errors.New("catalog: unauthorized")

	// ErrCircuitOpen means the breaker is rejecting calls to the backend.
	ErrCircuitOpen = errors.New("catalog: backend circuit open")

	// ErrRateLimited means the backend kept answering 429 after every retry.
	ErrRateLimited = errors.New("catalog: backend rate limit exceeded")

	// ErrInvalidRecord means a wire record failed parsing or validation.
	ErrInvalidRecord = errors.New("catalog: invalid record")
)

// StatusError is an unexpected HTTP status from the backend.
type StatusError struct {
	Endpoint string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog: %s returned status %d: %s", e.Endpoint, e.Code, e.Body)
}

// RecordError pins a decoding failure to one record of a response.
type RecordError struct {
	Kind  string // movie or review
	Index int
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("catalog: %s record %d: %v", e.Kind, e.Index, e.Err)
}

// Unwrap exposes both ErrInvalidRecord and the underlying cause.
func (e *RecordError) Unwrap() []error {
	return []error{ErrInvalidRecord, e.Err}
}
