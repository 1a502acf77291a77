// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package watchlist

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/tomtom215/cinescope/internal/logging"
	"github.com/tomtom215/cinescope/internal/metrics"
)

// Service hands out per-user watchlists over a shared Store.
type Service struct {
	store  Store
	events *Events
	now    func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService creates a service over store. events may be nil.
func NewService(store Store, events *Events) *Service {
	return &Service{
		store:  store,
		events: events,
		now:    time.Now,
		locks:  make(map[string]*sync.Mutex),
	}
}

// For returns the watchlist of userID.
func (s *Service) For(userID int) (*Watchlist, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user %d", ErrInvalidID, userID)
	}
	return &Watchlist{svc: s, userID: userID, key: UserKey(userID)}, nil
}

// Events returns the change bus, or nil.
func (s *Service) Events() *Events {
	return s.events
}

// lock serializes read-modify-write cycles per key.
func (s *Service) lock(key string) func() {
	s.mu.Lock()
	m, ok := s.locks[key]
	if !ok {
		m = &sync.Mutex{}
		s.locks[key] = m
	}
	s.mu.Unlock()
	m.Lock()
	return m.Unlock
}

// Watchlist is one user's ordered set of movie IDs, newest first.
type Watchlist struct {
	svc    *Service
	userID int
	key    string
}

// UserID returns the owner.
func (w *Watchlist) UserID() int {
	return w.userID
}

// IDs returns the movie IDs, newest first. Stored duplicates and
// non-positive IDs are dropped.
func (w *Watchlist) IDs(ctx context.Context) ([]int, error) {
	ids, err := w.svc.store.Get(ctx, w.key)
	metrics.RecordWatchlistOperation("get", err)
	if err != nil {
		return nil, err
	}
	return normalize(ids), nil
}

// Contains reports whether movieID is on the list.
func (w *Watchlist) Contains(ctx context.Context, movieID int) (bool, error) {
	if movieID <= 0 {
		return false, fmt.Errorf("%w: movie %d", ErrInvalidID, movieID)
	}
	ids, err := w.IDs(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(ids, movieID), nil
}

// Toggle adds movieID at the front or removes it. It returns the new
// membership state and the updated list.
func (w *Watchlist) Toggle(ctx context.Context, movieID int) (bool, []int, error) {
	return w.update(ctx, "toggle", movieID, func(ids []int) (bool, []int) {
		if slices.Contains(ids, movieID) {
			return false, remove(ids, movieID)
		}
		return true, prepend(ids, movieID)
	})
}

// Add puts movieID at the front. Adding a present ID moves it to the front.
func (w *Watchlist) Add(ctx context.Context, movieID int) ([]int, error) {
	_, ids, err := w.update(ctx, "add", movieID, func(ids []int) (bool, []int) {
		return true, prepend(remove(ids, movieID), movieID)
	})
	return ids, err
}

// Remove drops movieID. Removing an absent ID is not an error.
func (w *Watchlist) Remove(ctx context.Context, movieID int) ([]int, error) {
	_, ids, err := w.update(ctx, "remove", movieID, func(ids []int) (bool, []int) {
		return false, remove(ids, movieID)
	})
	return ids, err
}

func (w *Watchlist) update(ctx context.Context, op string, movieID int, apply func([]int) (bool, []int)) (bool, []int, error) {
	if movieID <= 0 {
		err := fmt.Errorf("%w: movie %d", ErrInvalidID, movieID)
		metrics.RecordWatchlistOperation(op, err)
		return false, nil, err
	}

	unlock := w.svc.lock(w.key)
	defer unlock()

	current, err := w.svc.store.Get(ctx, w.key)
	if err != nil {
		metrics.RecordWatchlistOperation(op, err)
		return false, nil, err
	}
	member, next := apply(normalize(current))
	err = w.svc.store.Set(ctx, w.key, next)
	metrics.RecordWatchlistOperation(op, err)
	if err != nil {
		return false, nil, err
	}

	w.publish(ctx, movieID, member, next)
	return member, next, nil
}

func (w *Watchlist) publish(ctx context.Context, movieID int, added bool, ids []int) {
	if w.svc.events == nil {
		return
	}
	ev := Event{UserID: w.userID, MovieID: movieID, Added: added, IDs: slices.Clone(ids), At: w.svc.now().UTC()}
	if err := w.svc.events.Publish(ev); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Int("movie_id", movieID).Msg("failed to publish watchlist event")
	}
}

// Subscribe delivers the list after every change until ctx is done.
func (w *Watchlist) Subscribe(ctx context.Context) (<-chan []int, error) {
	raw, err := w.svc.store.Subscribe(ctx, w.key)
	metrics.RecordWatchlistOperation("subscribe", err)
	if err != nil {
		return nil, err
	}

	metrics.WatchlistSubscribers.Inc()
	out := make(chan []int, 1)
	go func() {
		defer metrics.WatchlistSubscribers.Dec()
		defer close(out)
		for ids := range raw {
			select {
			case out <- normalize(ids):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// normalize drops non-positive IDs and later duplicates. It always returns
// a fresh non-nil slice.
func normalize(ids []int) []int {
	out := make([]int, 0, len(ids))
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func prepend(ids []int, id int) []int {
	return append([]int{id}, ids...)
}

func remove(ids []int, id int) []int {
	return slices.DeleteFunc(slices.Clone(ids), func(v int) bool { return v == id })
}
