// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package watchlist

import (
	"fmt"

	"github.com/tomtom215/cinescope/internal/config"
)

// ClosableStore is a Store that holds resources.
type ClosableStore interface {
	Store
	Close() error
}

// OpenStore builds the store selected by cfg.Store.
func OpenStore(cfg config.WatchlistConfig) (ClosableStore, error) {
	switch cfg.Store {
	case config.StoreBadger:
		s, err := OpenBadgerStore(cfg.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.StoreMemory, "":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown watchlist store %q", cfg.Store)
	}
}
