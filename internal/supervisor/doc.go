// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

/*
Package supervisor runs Cinescope's long-lived services under suture v4.

The tree has three layers so that a crash loop in one does not stall the
others:

	cinescope
	├── data-layer
	│   ├── catalog-refresher
	│   └── catalog-cache-janitor
	├── messaging-layer
	│   └── websocket-hub
	└── api-layer
	    └── http-server

Typical wiring from main:

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	tree.AddDataService(catalog.NewRefresher(cat, cfg.Backend.RefreshInterval))
	tree.AddMessagingService(hub)
	tree.AddAPIService(services.NewHTTPServerService(srv, cfg.Server.ShutdownTimeout))
	err := tree.Serve(ctx)

A service returning an error is restarted with backoff. Returning nil or
ctx.Err() after cancellation is a normal stop. Supervisor events are logged
through sutureslog.
*/
package supervisor
