// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

/*
Package websocket pushes watchlist changes to connected browsers.

The Hub subscribes to the watchlist event bus and routes each event to the
clients of the user it belongs to. Each Client runs two goroutines:

  - readPump: answers ping messages and detects disconnects
  - writePump: writes queued messages and keepalive pings

Messages are JSON objects with a type and data field:

	{"type": "watchlist", "data": {"ids": [12, 7], "movie_id": 12, "added": true}}

The hub is a suture service. When it stops, every client connection is
closed and browsers are expected to reconnect.
*/
package websocket
