// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

/*
Package main is the entry point for the Cinescope server.

Cinescope ranks, filters and explains movies from a review backend's
catalog and keeps a per-user watchlist with live websocket updates.

# Process Supervision

	cinescope
	├── data-layer
	│   ├── catalog-refresher     periodic snapshot reload
	│   └── catalog-cache-janitor expired entry sweep
	├── messaging-layer
	│   └── websocket-hub         watchlist change fan-out
	└── api-layer
	    └── http-server           chi router

Initialization order:

 1. Configuration: koanf with defaults, config.yaml and environment
 2. Logging: zerolog, JSON or console
 3. Catalog: HTTP client, circuit breaker, TTL cache
 4. Watchlist: memory or badger store and the change event bus
 5. Authorization: embedded or file-based Casbin policy
 6. HTTP router and server
 7. Supervisor tree

# Configuration

Common environment variables:

	BACKEND_URL=http://reviews:5000
	JWT_SECRET=<shared with the review backend>
	WATCHLIST_STORE=badger WATCHLIST_PATH=/data/watchlist
	CORS_ORIGINS=https://movies.example.com
	LOG_LEVEL=info LOG_FORMAT=json

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains for
SERVER_SHUTDOWN_TIMEOUT, the hub closes every client, then the watchlist
store and event bus are closed.
*/
package main
