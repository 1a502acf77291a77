// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package api

import (
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/cinescope/internal/logging"
	"github.com/tomtom215/cinescope/internal/models"
	"github.com/tomtom215/cinescope/internal/watchlist"
	ws "github.com/tomtom215/cinescope/internal/websocket"
)

// WatchlistView is the body of the watchlist endpoints. IDs are newest
// first. Movies holds the catalog entries of those IDs in the same order;
// IDs no longer in the catalog are skipped.
type WatchlistView struct {
	IDs     []int       `json:"ids"`
	Movies  []MovieCard `json:"movies,omitempty"`
	MovieID int         `json:"movie_id,omitempty"`
	Added   *bool       `json:"added,omitempty"`
}

// userWatchlist resolves the caller's watchlist, writing the error response
// itself when it cannot.
func (h *Handler) userWatchlist(w http.ResponseWriter, r *http.Request) (*watchlist.Watchlist, bool) {
	if h.watchlists == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Watchlist service unavailable", nil)
		return nil, false
	}
	hctx := GetHandlerContext(r)
	if err := hctx.RequireUser(); err != nil {
		respondFailure(w, r, err)
		return nil, false
	}
	wl, err := h.watchlists.For(hctx.User.UserID)
	if err != nil {
		respondFailure(w, r, err)
		return nil, false
	}
	return wl, true
}

// Watchlist handles GET /api/v1/watchlist. Movie details are best effort:
// when the catalog is unavailable only the IDs are returned.
func (h *Handler) Watchlist(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	wl, ok := h.userWatchlist(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	ids, err := wl.IDs(ctx)
	if err != nil {
		respondFailure(w, r, err)
		return
	}

	view := WatchlistView{IDs: ids}
	if movies, err := h.catalog.Movies(ctx); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("watchlist served without movie details")
	} else {
		view.Movies = toCards(watchlistMovies(movies, ids))
	}
	respondSuccess(w, view, start)
}

// UpdateWatchlist handles POST /api/v1/watchlist with an add, remove or
// toggle action.
func (h *Handler) UpdateWatchlist(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	wl, ok := h.userWatchlist(w, r)
	if !ok {
		return
	}

	var req WatchlistUpdateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	ctx := r.Context()
	var (
		added bool
		ids   []int
		err   error
	)
	switch req.Action {
	case "add":
		added = true
		ids, err = wl.Add(ctx, req.MovieID)
	case "remove":
		ids, err = wl.Remove(ctx, req.MovieID)
	default:
		added, ids, err = wl.Toggle(ctx, req.MovieID)
	}
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondSuccess(w, WatchlistView{IDs: ids, MovieID: req.MovieID, Added: &added}, start)
}

// ToggleWatchlist handles POST /api/v1/watchlist/{id}/toggle.
func (h *Handler) ToggleWatchlist(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	wl, ok := h.userWatchlist(w, r)
	if !ok {
		return
	}
	id, apiErr := movieIDParam(r)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	added, ids, err := wl.Toggle(r.Context(), id)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondSuccess(w, WatchlistView{IDs: ids, MovieID: id, Added: &added}, start)
}

// WatchlistSocket handles GET /api/v1/watchlist/ws. The connection first
// receives the current list, then every change made from any session of
// the same user.
func (h *Handler) WatchlistSocket(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "WebSocket service unavailable", nil)
		return
	}
	wl, ok := h.userWatchlist(w, r)
	if !ok {
		return
	}
	ids, err := wl.IDs(r.Context())
	if err != nil {
		respondFailure(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		logging.Ctx(r.Context()).Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := ws.NewClient(h.hub, conn, wl.UserID())
	client.Enqueue(ws.Message{Type: ws.MessageTypeWatchlist, Data: ws.WatchlistData{IDs: ids}})
	client.Start()
}

// watchlistMovies returns the movies of ids in ids order.
func watchlistMovies(movies []models.Movie, ids []int) []models.Movie {
	byID := make(map[int]models.Movie, len(movies))
	for _, m := range movies {
		byID[m.MovieID] = m
	}
	out := make([]models.Movie, 0, len(ids))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			out = append(out, m)
		}
	}
	return out
}

func newUpgrader(origins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		HandshakeTimeout: 10 * time.Second,
		CheckOrigin:      originChecker(origins),
	}
}

// originChecker rejects upgrades without an Origin header and origins not in
// the allowed list. "*" allows any origin that is present.
func originChecker(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			logging.Ctx(r.Context()).Warn().Msg("websocket rejected: missing Origin header")
			return false
		}
		if slices.Contains(allowed, "*") || slices.Contains(allowed, origin) {
			return true
		}
		logging.Ctx(r.Context()).Warn().
			Str("origin", logging.SanitizeLogValue(origin)).
			Msg("websocket rejected: origin not allowed")
		return false
	}
}
