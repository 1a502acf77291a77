// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

/*
Package catalog reads movies and reviews from the external review backend.

The stack from bottom to top:

  - Client: HTTP with outbound rate shaping (golang.org/x/time/rate) and
    429 retry with exponential backoff and Retry-After support.
  - BreakerClient: a sony/gobreaker circuit breaker around any Backend.
  - Catalog: TTL snapshots (internal/cache) with singleflight collapsing
    of concurrent misses and a bounded errgroup fan-out for per-movie
    review loads.
  - Refresher: a suture service that reloads the movie snapshot on a timer.

Wire records are decoded leniently. Numeric fields may arrive as strings and
dates in RFC 1123 or RFC 3339 form. Every record is then validated and an
invalid record fails the whole response with a *RecordError, which matches
ErrInvalidRecord under errors.Is.

Usage:

	client := catalog.NewClient(cfg.Backend)
	backend := catalog.NewBreakerClient(client, catalog.DefaultBreakerSettings())
	cat := catalog.New(backend, cfg.Backend.CacheTTL)
	movies, err := cat.Movies(ctx)
*/
package catalog
