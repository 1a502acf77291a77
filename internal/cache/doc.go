// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

/*
Package cache provides a typed, thread-safe TTL cache for raw catalog
snapshots fetched from the review backend.

Only upstream snapshots are cached: the movie list, per-movie review lists
and a caller's review history keyed by a hash of their token. Engine results
derived from those snapshots are recomputed on every request.

	c := cache.New[[]models.Review](30 * time.Second)
	c.Set(cache.GenerateKey("movie_reviews", id), reviews)
	if reviews, ok := c.Get(cache.GenerateKey("movie_reviews", id)); ok {
		...
	}

Expired entries are removed on Get. Serve runs a periodic sweep and is
registered in the data layer of the supervisor tree.
*/
package cache
