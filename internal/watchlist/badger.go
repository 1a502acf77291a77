// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package watchlist

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/pb"
	"github.com/goccy/go-json"

	"github.com/tomtom215/cinescope/internal/logging"
)

// BadgerStore persists watchlists in BadgerDB as JSON arrays.
// Subscriptions use badger's key-prefix change feed, so writes from any
// handle on the same DB are observed.
type BadgerStore struct {
	db     *badger.DB
	ownsDB bool
}

// NewBadgerStore wraps an open DB. The caller keeps ownership of db.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// OpenBadgerStore opens or creates a DB at path.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for watchlist: %w", err)
	}
	logging.Info().Str("path", path).Msg("watchlist store opened")
	return &BadgerStore{db: db, ownsDB: true}, nil
}

// Get implements Store.
func (s *BadgerStore) Get(_ context.Context, key string) ([]int, error) {
	var ids []int
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get watchlist: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &ids)
		})
	})
	if err != nil {
		if errors.Is(err, badger.ErrDBClosed) {
			return nil, ErrClosed
		}
		return nil, err
	}
	return ids, nil
}

// Set implements Store.
func (s *BadgerStore) Set(_ context.Context, key string, ids []int) error {
	if ids == nil {
		ids = []int{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshal watchlist: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if errors.Is(err, badger.ErrDBClosed) {
		return ErrClosed
	}
	return err
}

// Subscribe implements Store. Badger registers the subscription
// asynchronously; writes that race with the call may not be delivered.
func (s *BadgerStore) Subscribe(ctx context.Context, key string) (<-chan []int, error) {
	if s.db.IsClosed() {
		return nil, ErrClosed
	}

	ch := make(chan []int, 1)
	k := []byte(key)
	go func() {
		defer close(ch)
		err := s.db.Subscribe(ctx, func(kvs *badger.KVList) error {
			for _, kv := range kvs.Kv {
				if !bytes.Equal(kv.Key, k) {
					continue
				}
				var ids []int
				if err := json.Unmarshal(kv.Value, &ids); err != nil {
					logging.Warn().Err(err).Str("key", key).Msg("skipping undecodable watchlist value")
					continue
				}
				offer(ch, slices.Clone(ids))
			}
			return nil
		}, []pb.Match{{Prefix: k}})
		if err != nil && ctx.Err() == nil {
			logging.Warn().Err(err).Str("key", key).Msg("watchlist subscription ended")
		}
	}()
	return ch, nil
}

// Close closes the DB if this store opened it.
func (s *BadgerStore) Close() error {
	if !s.ownsDB {
		return nil
	}
	return s.db.Close()
}
