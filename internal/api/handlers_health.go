// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/cinescope/internal/cache"
)

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status             string                 `json:"status"`
	Version            string                 `json:"version"`
	UptimeSeconds      float64                `json:"uptime_seconds"`
	CatalogLoaded      bool                   `json:"catalog_loaded"`
	CatalogLastRefresh *time.Time             `json:"catalog_last_refresh,omitempty"`
	BackendCircuit     string                 `json:"backend_circuit,omitempty"`
	WebSocketClients   int                    `json:"websocket_clients"`
	Caches             map[string]cache.Stats `json:"caches,omitempty"`
}

// Health reports degraded when the catalog has never loaded or the backend
// circuit is open. It always answers 200 so dashboards can read the body.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := HealthStatus{
		Status:        "healthy",
		Version:       Version,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
		Caches:        h.catalog.CacheStats(),
	}

	if last := h.catalog.LastRefresh(); !last.IsZero() {
		status.CatalogLoaded = true
		status.CatalogLastRefresh = &last
	} else {
		status.Status = "degraded"
	}
	if h.breaker != nil {
		status.BackendCircuit = h.breaker.State()
		if status.BackendCircuit == "open" {
			status.Status = "degraded"
		}
	}
	if h.hub != nil {
		status.WebSocketClients = h.hub.GetClientCount()
	}

	respondSuccess(w, status, start)
}

// HealthLive answers 200 while the process runs.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondSuccess(w, map[string]interface{}{
		"alive":          true,
		"uptime_seconds": time.Since(h.startTime).Seconds(),
	}, time.Now())
}

// HealthReady answers 503 until the first catalog snapshot has loaded.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.catalog.LastRefresh().IsZero() {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Catalog not loaded yet", nil)
		return
	}
	respondSuccess(w, map[string]interface{}{"ready": true}, time.Now())
}
