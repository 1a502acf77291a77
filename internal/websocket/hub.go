// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package websocket

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/tomtom215/cinescope/internal/logging"
	"github.com/tomtom215/cinescope/internal/watchlist"
)

// ShutdownReason identifies why the hub is shutting down.
type ShutdownReason string

const (
	// ShutdownReasonContextCanceled is the normal graceful path (SIGTERM).
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"

	// ShutdownReasonContextDeadline may indicate a hung operation.
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"

	// ShutdownReasonFeedClosed means the event bus went away.
	ShutdownReasonFeedClosed ShutdownReason = "feed_closed"
)

// Message types for WebSocket communication
const (
	MessageTypeWatchlist = "watchlist"
	MessageTypePing      = "ping"
	MessageTypePong      = "pong"
)

// Message represents a WebSocket message
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// WatchlistData is the payload of a watchlist message.
type WatchlistData struct {
	IDs     []int `json:"ids"`
	MovieID int   `json:"movie_id,omitempty"`
	Added   bool  `json:"added"`
}

// EventSource supplies watchlist change events.
type EventSource interface {
	Subscribe(ctx context.Context) (<-chan watchlist.Event, error)
}

// Hub routes watchlist events to the connected clients of the affected user.
type Hub struct {
	source  EventSource
	mu      sync.RWMutex
	clients map[*Client]bool
}

// NewHub creates a hub fed by source.
func NewHub(source EventSource) *Hub {
	return &Hub{
		source:  source,
		clients: make(map[*Client]bool),
	}
}

// Register adds a client.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	n := len(h.clients)
	h.mu.Unlock()
	logging.Debug().Int("user_id", c.userID).Int("total_clients", n).Msg("websocket client connected")
}

// Unregister removes a client and closes its send channel. Safe to call
// more than once.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()
	logging.Debug().Int("user_id", c.userID).Int("total_clients", n).Msg("websocket client disconnected")
}

// Serve forwards events until ctx is done, then closes every client. It
// satisfies suture.Service.
func (h *Hub) Serve(ctx context.Context) error {
	feed, err := h.source.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("websocket hub subscribe: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			h.logGracefulShutdown(getShutdownReason(ctx))
			return ctx.Err()
		case ev, ok := <-feed:
			if !ok {
				if ctx.Err() != nil {
					h.logGracefulShutdown(getShutdownReason(ctx))
					return ctx.Err()
				}
				h.logGracefulShutdown(ShutdownReasonFeedClosed)
				return fmt.Errorf("websocket hub: event feed closed")
			}
			h.SendToUser(ev.UserID, Message{
				Type: MessageTypeWatchlist,
				Data: WatchlistData{IDs: ev.IDs, MovieID: ev.MovieID, Added: ev.Added},
			})
		}
	}
}

func (h *Hub) String() string {
	return "websocket-hub"
}

// getShutdownReason determines the shutdown reason from the context error.
func getShutdownReason(ctx context.Context) ShutdownReason {
	if ctx.Err() == context.DeadlineExceeded {
		return ShutdownReasonContextDeadline
	}
	return ShutdownReasonContextCanceled
}

// logGracefulShutdown closes all clients. ctx.Err() is not logged as an
// error because cancellation is the expected path.
func (h *Hub) logGracefulShutdown(reason ShutdownReason) {
	clientCount := h.GetClientCount()
	h.closeAllClients()
	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", string(reason)).
		Int("clients_closed", clientCount).
		Msg("websocket hub stopped")
}

// SendToUser delivers message to every client of userID in connection
// order. A client whose buffer is full is dropped.
func (h *Hub) SendToUser(userID int, message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		if client.userID == userID {
			clients = append(clients, client)
		}
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})

	for _, client := range clients {
		select {
		case client.send <- message:
		default:
			logging.Warn().Int("user_id", userID).Uint64("client_id", client.id).Msg("websocket client too slow, disconnecting")
			close(client.send)
			delete(h.clients, client)
		}
	}
}

// closeAllClients closes clients in ID order.
func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})
	for _, client := range clients {
		close(client.send)
		delete(h.clients, client)
	}
}

// GetClientCount returns the number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
