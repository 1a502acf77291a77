// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package catalog

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinescope/internal/logging"
)

// Refresher reloads the movie snapshot on a fixed interval. A failed refresh
// is logged and retried on the next tick; the service itself only stops
// with its context.
type Refresher struct {
	catalog  *Catalog
	interval time.Duration
	logger   zerolog.Logger
}

// NewRefresher creates a refresher for catalog.
func NewRefresher(catalog *Catalog, interval time.Duration) *Refresher {
	return &Refresher{
		catalog:  catalog,
		interval: interval,
		logger:   logging.WithComponent("catalog-refresher"),
	}
}

// Serve refreshes once immediately, then every interval.
func (r *Refresher) Serve(ctx context.Context) error {
	r.refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	start := time.Now()
	n, err := r.catalog.Refresh(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		r.logger.Warn().Err(err).Msg("catalog refresh failed; keeping previous snapshot")
		return
	}
	r.logger.Debug().Int("movies", n).Dur("took", time.Since(start)).Msg("catalog refreshed")
}

func (r *Refresher) String() string {
	return "catalog-refresher"
}
