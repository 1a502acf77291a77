// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/cinescope/internal/api"
	"github.com/tomtom215/cinescope/internal/authz"
	"github.com/tomtom215/cinescope/internal/catalog"
	"github.com/tomtom215/cinescope/internal/config"
	"github.com/tomtom215/cinescope/internal/logging"
	"github.com/tomtom215/cinescope/internal/middleware"
	"github.com/tomtom215/cinescope/internal/supervisor"
	"github.com/tomtom215/cinescope/internal/supervisor/services"
	"github.com/tomtom215/cinescope/internal/watchlist"
	ws "github.com/tomtom215/cinescope/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("backend_url", cfg.Backend.URL).
		Str("watchlist_store", cfg.Watchlist.Store).
		Bool("sessions", cfg.Security.JWTSecret != "").
		Str("environment", cfg.Server.Environment).
		Msg("Starting Cinescope")

	if cfg.Security.JWTSecret == "" {
		logging.Warn().Msg("JWT_SECRET not set: every caller is a guest")
	}

	// Catalog: HTTP client behind the circuit breaker behind the cache.
	breaker := catalog.NewBreakerClient(catalog.NewClient(cfg.Backend), catalog.DefaultBreakerSettings())
	cat := catalog.New(breaker, cfg.Backend.CacheTTL)

	store, err := watchlist.OpenStore(cfg.Watchlist)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open watchlist store")
	}
	events := watchlist.NewEvents()
	watchlists := watchlist.NewService(store, events)
	hub := ws.NewHub(events)

	enforcer, err := authz.NewEnforcer(authz.FromConfig(cfg.Security.Casbin))
	if err != nil {
		closeAll(store, events, nil)
		logging.Fatal().Err(err).Msg("Failed to initialize authorization")
	}

	perf := middleware.NewPerformanceMonitor(1000)
	handler := api.NewHandler(api.Deps{
		Catalog:     cat,
		Watchlists:  watchlists,
		Hub:         hub,
		Breaker:     breaker,
		Performance: perf,
		Discovery:   cfg.Discovery,
		Origins:     cfg.Security.CORSOrigins,
	})
	router := api.NewRouter(handler,
		api.NewSessions(cfg.Security.JWTSecret),
		enforcer,
		api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(cfg.Security)),
	)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		IdleTimeout:       2 * time.Minute,
	}

	treeConfig := supervisor.DefaultTreeConfig()
	if cfg.Server.ShutdownTimeout > 0 {
		treeConfig.ShutdownTimeout = cfg.Server.ShutdownTimeout + 5*time.Second
	}
	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), treeConfig)
	tree.AddDataService(catalog.NewRefresher(cat, cfg.Backend.RefreshInterval))
	tree.AddDataService(cat)
	tree.AddMessagingService(hub)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for services")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	if unstopped, err := tree.UnstoppedServiceReport(); err == nil && len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	closeAll(store, events, enforcer)
	logging.Info().Msg("Cinescope stopped")
}

// closeAll releases the resources that outlive the supervisor tree.
func closeAll(store watchlist.ClosableStore, events *watchlist.Events, enforcer *authz.Enforcer) {
	if enforcer != nil {
		enforcer.Close()
	}
	if err := events.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing watchlist events")
	}
	if err := store.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing watchlist store")
	}
}
