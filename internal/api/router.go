// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/cinescope/internal/authz"
	"github.com/tomtom215/cinescope/internal/middleware"
)

// Router wires the handlers to chi with the middleware stack.
type Router struct {
	handler       *Handler
	sessions      *Sessions
	authz         *authz.Middleware
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil mw uses DefaultChiMiddlewareConfig.
func NewRouter(handler *Handler, sessions *Sessions, enforcer *authz.Enforcer, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		sessions:      sessions,
		authz:         authz.NewMiddleware(enforcer, SessionUser, denyJSON),
		chiMiddleware: mw,
	}
}

// SetupChi builds the HTTP handler.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()
	h := router.handler

	// Global middleware, in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(middleware.PrometheusMetrics)
	if h.perf != nil {
		r.Use(h.perf.Middleware)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
	})

	r.Handle("/metrics", promhttp.Handler())

	// Health is open to monitors and skips sessions.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitCustom(RateLimitHealth))
		r.Use(APISecurityHeaders())
		r.Get("/", h.Health)
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(router.sessions.Middleware)
		r.Use(router.authz.Handler)

		write := router.chiMiddleware.RateLimitCustom(RateLimitWrite)

		r.Route("/movies", func(r chi.Router) {
			r.Get("/", h.Movies)
			r.Get("/suggestions", h.Suggestions)
			r.Get("/genres", h.Genres)
			r.Get("/{id}", h.MovieDetail)
			r.Get("/{id}/trust", h.TrustHeatmap)
			r.Get("/{id}/explain", h.Explain)
		})

		r.Get("/moods", h.Moods)
		r.Get("/moods/{mood}", h.MoodMovies)

		r.With(write).Post("/movie-night", h.MovieNight)
		r.Get("/recommendations", h.Recommendations)
		r.With(write).Post("/traces/analyze", h.AnalyzeTraces)

		r.Route("/watchlist", func(r chi.Router) {
			r.Get("/", h.Watchlist)
			r.With(write).Post("/", h.UpdateWatchlist)
			r.With(write).Post("/{id}/toggle", h.ToggleWatchlist)
			r.With(router.chiMiddleware.RateLimitCustom(RateLimitWebSocket)).Get("/ws", h.WatchlistSocket)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/analytics", h.AdminAnalytics)
			r.Get("/performance", h.AdminPerformance)
		})
	})

	return r
}
