// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package authz

import (
	"net/http"

	"github.com/tomtom215/cinescope/internal/logging"
	"github.com/tomtom215/cinescope/internal/metrics"
	"github.com/tomtom215/cinescope/internal/models"
)

// SessionFunc extracts the caller from a request.
type SessionFunc func(r *http.Request) models.User

// DenyFunc writes the response for a refused or failed check. status is
// 401 for guests, 403 for signed-in users and 500 on enforcement errors.
type DenyFunc func(w http.ResponseWriter, r *http.Request, status int, message string)

// Middleware enforces the policy on (role, path, method).
type Middleware struct {
	enforcer *Enforcer
	session  SessionFunc
	deny     DenyFunc
	security *logging.SecurityLogger
}

// NewMiddleware creates a new authorization middleware.
func NewMiddleware(enforcer *Enforcer, session SessionFunc, deny DenyFunc) *Middleware {
	if deny == nil {
		deny = func(w http.ResponseWriter, _ *http.Request, status int, message string) {
			http.Error(w, message, status)
		}
	}
	return &Middleware{
		enforcer: enforcer,
		session:  session,
		deny:     deny,
		security: logging.NewSecurityLogger(logging.Logger()),
	}
}

// Handler checks every request against the policy before calling next.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := m.session(r)
		role := user.Role
		if role == "" {
			role = models.RoleGuest
		}
		action := MethodToAction(r.Method)

		allowed, err := m.enforcer.Enforce(role, r.URL.Path, action)
		if err != nil {
			logging.Ctx(r.Context()).Error().Err(err).Msg("authorization error")
			m.deny(w, r, http.StatusInternalServerError, "Internal server error")
			return
		}
		metrics.RecordAuthzDecision(role, allowed)

		ev := logging.AccessEvent{
			UserID: user.UserID,
			Email:  user.Email,
			Role:   role,
			Method: r.Method,
			Path:   r.URL.Path,
			IP:     r.RemoteAddr,
		}
		if !allowed {
			ev.Event = logging.EventAccessDenied
			m.security.Log(ev)
			if role == models.RoleGuest {
				m.deny(w, r, http.StatusUnauthorized, "Authentication required")
				return
			}
			m.deny(w, r, http.StatusForbidden, "Insufficient permissions")
			return
		}

		ev.Event = logging.EventAccessGranted
		m.security.Log(ev)
		next.ServeHTTP(w, r)
	})
}
