// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package watchlist

import (
	"context"
	"errors"
	"strconv"
)

var (
	// ErrInvalidID is returned for a non-positive movie or user ID.
	ErrInvalidID = errors.New("watchlist: invalid id")

	// ErrClosed is returned by a store after Close.
	ErrClosed = errors.New("watchlist: store closed")
)

// keyPrefix namespaces watchlist keys in shared stores.
const keyPrefix = "watchlist:"

// Store is the key/value capability behind a watchlist. Values are ordered
// movie ID lists. A missing key reads as an empty list.
//
// Subscribe delivers the new value of key after every Set until ctx is done,
// then closes the channel. Slow readers may miss intermediate values but
// always see a later one.
type Store interface {
	Get(ctx context.Context, key string) ([]int, error)
	Set(ctx context.Context, key string, ids []int) error
	Subscribe(ctx context.Context, key string) (<-chan []int, error)
}

// UserKey returns the store key for userID.
func UserKey(userID int) string {
	return keyPrefix + strconv.Itoa(userID)
}

// offer replaces any undelivered value in ch with ids.
func offer(ch chan []int, ids []int) {
	for {
		select {
		case ch <- ids:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
