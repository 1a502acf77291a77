// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

// Package watchlist keeps each user's ordered list of saved movies.
//
// Storage is a small key/value capability (Store) with two implementations:
// MemoryStore for development and BadgerStore for persistence. Changes are
// also published on a watermill gochannel topic so the API can push them
// to connected browsers.
package watchlist
