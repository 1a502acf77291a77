// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package watchlist

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps watchlists in process memory. Contents are lost on
// restart.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string][]int
	subs   map[string]map[chan []int]struct{}
	closed bool
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string][]int),
		subs: make(map[string]map[chan []int]struct{}),
	}
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, key string) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	return slices.Clone(s.data[key]), nil
}

// Set implements Store.
func (s *MemoryStore) Set(_ context.Context, key string, ids []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.data[key] = slices.Clone(ids)
	for ch := range s.subs[key] {
		offer(ch, slices.Clone(ids))
	}
	return nil
}

// Subscribe implements Store.
func (s *MemoryStore) Subscribe(ctx context.Context, key string) (<-chan []int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	ch := make(chan []int, 1)
	if s.subs[key] == nil {
		s.subs[key] = make(map[chan []int]struct{})
	}
	s.subs[key][ch] = struct{}{}

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[key][ch]; ok {
			delete(s.subs[key], ch)
			close(ch)
		}
		if len(s.subs[key]) == 0 {
			delete(s.subs, key)
		}
	}()
	return ch, nil
}

// Subscribers returns the number of open subscriptions.
func (s *MemoryStore) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, set := range s.subs {
		n += len(set)
	}
	return n
}

// Close ends every subscription. Later calls fail with ErrClosed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	for key, set := range s.subs {
		for ch := range set {
			close(ch)
		}
		delete(s.subs, key)
	}
	return nil
}
