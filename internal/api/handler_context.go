// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package api

import (
	"context"
	"net/http"

	"github.com/tomtom215/cinescope/internal/logging"
	"github.com/tomtom215/cinescope/internal/models"
)

type handlerContextKey struct{}

// HandlerContext is the request-scoped session placed in the context by the
// session middleware. Requests without a valid token carry a guest context.
type HandlerContext struct {
	// User is the session object. Guests have UserID 0 and role guest.
	User models.User

	// Token is the raw bearer token, forwarded to the review backend for
	// per-user calls. Empty for guests.
	Token string

	// RequestID is copied from the request middleware for handler logs.
	RequestID string
}

var guestContext = HandlerContext{User: models.User{Role: models.RoleGuest}}

// WithHandlerContext stores hctx in ctx.
func WithHandlerContext(ctx context.Context, hctx *HandlerContext) context.Context {
	return context.WithValue(ctx, handlerContextKey{}, hctx)
}

// GetHandlerContext returns the request's session. It is never nil: a
// request that bypassed the session middleware is treated as a guest.
func GetHandlerContext(r *http.Request) *HandlerContext {
	if hctx, ok := r.Context().Value(handlerContextKey{}).(*HandlerContext); ok && hctx != nil {
		return hctx
	}
	g := guestContext
	g.RequestID = logging.RequestIDFromContext(r.Context())
	return &g
}

// IsAuthenticated reports whether the session came from a verified token.
func (hctx *HandlerContext) IsAuthenticated() bool {
	return hctx != nil && hctx.User.IsAuthenticated()
}

// Role returns the session role, guest when unset.
func (hctx *HandlerContext) Role() string {
	if hctx == nil || hctx.User.Role == "" {
		return models.RoleGuest
	}
	return hctx.User.Role
}

// RequireUser returns ErrNotAuthenticated for guests.
func (hctx *HandlerContext) RequireUser() error {
	if !hctx.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	return nil
}

// IsAdmin reports whether the session has the admin role.
func (hctx *HandlerContext) IsAdmin() bool {
	return hctx.IsAuthenticated() && hctx.User.Role == models.RoleAdmin
}

// SessionUser adapts GetHandlerContext to authz.SessionFunc.
func SessionUser(r *http.Request) models.User {
	hctx := GetHandlerContext(r)
	u := hctx.User
	u.Role = hctx.Role()
	return u
}
