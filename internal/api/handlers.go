// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package api

import (
	"context"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/cinescope/internal/cache"
	"github.com/tomtom215/cinescope/internal/config"
	"github.com/tomtom215/cinescope/internal/discovery"
	"github.com/tomtom215/cinescope/internal/middleware"
	"github.com/tomtom215/cinescope/internal/models"
	"github.com/tomtom215/cinescope/internal/watchlist"
	ws "github.com/tomtom215/cinescope/internal/websocket"
)

// Version is reported by the health endpoint. Overridden at build time.
var Version = "dev"

// Catalog is the read side of the movie catalog used by the handlers.
// *catalog.Catalog satisfies it.
type Catalog interface {
	Movies(ctx context.Context) ([]models.Movie, error)
	Movie(ctx context.Context, id int) (models.Movie, error)
	MovieReviews(ctx context.Context, movieID int) ([]models.Review, error)
	UserReviews(ctx context.Context, token string) ([]models.Review, error)
	ReviewsByMovie(ctx context.Context) (map[int][]models.Review, error)
	AllReviews(ctx context.Context) ([]models.Review, error)
	LastRefresh() time.Time
	CacheStats() map[string]cache.Stats
}

// BreakerState reports the backend circuit state: closed, half-open or open.
type BreakerState interface {
	State() string
}

// Deps are the collaborators of Handler. Watchlists, Hub, Breaker and
// Performance are optional; their endpoints report 503 or omit fields when
// nil.
type Deps struct {
	Catalog     Catalog
	Watchlists  *watchlist.Service
	Hub         *ws.Hub
	Breaker     BreakerState
	Performance *middleware.PerformanceMonitor
	Discovery   config.DiscoveryConfig
	Origins     []string
}

// Handler serves the Cinescope API.
//
// Handler methods are split across files:
//   - handlers_health.go: health and readiness
//   - handlers_movies.go: browse, suggestions, genres, detail, trust, explain
//   - handlers_moods.go: mood taxonomy and mood browse
//   - handlers_personal.go: movie night, recommendations, decision traces
//   - handlers_watchlist.go: watchlist REST and websocket
//   - handlers_admin.go: admin analytics and request performance
type Handler struct {
	catalog    Catalog
	watchlists *watchlist.Service
	hub        *ws.Hub
	breaker    BreakerState
	perf       *middleware.PerformanceMonitor
	cfg        config.DiscoveryConfig
	upgrader   websocket.Upgrader
	startTime  time.Time
	now        func() time.Time
}

// NewHandler applies engine defaults to zero discovery settings.
func NewHandler(d Deps) *Handler {
	cfg := d.Discovery
	if cfg.PageSize <= 0 {
		cfg.PageSize = discovery.DefaultPageSize
	}
	if cfg.RecommendationLimit <= 0 {
		cfg.RecommendationLimit = discovery.DefaultRecommendationLimit
	}
	if cfg.SuggestionLimit <= 0 {
		cfg.SuggestionLimit = discovery.DefaultSuggestionLimit
	}
	return &Handler{
		catalog:    d.Catalog,
		watchlists: d.Watchlists,
		hub:        d.Hub,
		breaker:    d.Breaker,
		perf:       d.Performance,
		cfg:        cfg,
		upgrader:   newUpgrader(d.Origins),
		startTime:  time.Now(),
		now:        time.Now,
	}
}

// userReviews returns the caller's review history, or nil for guests.
func (h *Handler) userReviews(ctx context.Context, hctx *HandlerContext) ([]models.Review, error) {
	if !hctx.IsAuthenticated() || hctx.Token == "" {
		return nil, nil
	}
	return h.catalog.UserReviews(ctx, hctx.Token)
}
