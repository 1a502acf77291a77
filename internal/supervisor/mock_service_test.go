// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package supervisor

import (
	"context"
	"errors"
	"sync/atomic"
)

var errSimulated = errors.New("simulated failure")

// mockService counts Serve calls and can fail a fixed number of times before
// running until canceled.
type mockService struct {
	name     string
	starts   atomic.Int32
	stops    atomic.Int32
	failures atomic.Int32
	failFor  int32
	started  chan struct{}
}

func newMockService(name string, failFor int32) *mockService {
	return &mockService{name: name, failFor: failFor, started: make(chan struct{}, 16)}
}

func (m *mockService) Serve(ctx context.Context) error {
	m.starts.Add(1)
	defer m.stops.Add(1)
	select {
	case m.started <- struct{}{}:
	default:
	}

	if m.failures.Add(1) <= m.failFor {
		return errSimulated
	}
	<-ctx.Done()
	return ctx.Err()
}

func (m *mockService) String() string { return m.name }
