// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/cinescope/internal/logging"
	"github.com/tomtom215/cinescope/internal/metrics"
	"github.com/tomtom215/cinescope/internal/models"
)

// SessionClaims is the payload of tokens issued by the review backend.
type SessionClaims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Sessions verifies HS256 bearer tokens. With no secret configured every
// caller is a guest and tokens are ignored.
type Sessions struct {
	secret   []byte
	now      func() time.Time
	security *logging.SecurityLogger
}

// NewSessions creates a verifier for secret.
func NewSessions(secret string) *Sessions {
	return &Sessions{
		secret:   []byte(secret),
		now:      time.Now,
		security: logging.NewSecurityLogger(logging.Logger()),
	}
}

// Enabled reports whether tokens are verified at all.
func (s *Sessions) Enabled() bool {
	return len(s.secret) > 0
}

// Parse verifies token and returns the session user. Failures wrap
// ErrInvalidToken.
func (s *Sessions) Parse(token string) (models.User, error) {
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.UserID <= 0 {
		return models.User{}, fmt.Errorf("%w: missing user_id", ErrInvalidToken)
	}
	switch claims.Role {
	case models.RoleUser, models.RoleAdmin:
	default:
		return models.User{}, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, claims.Role)
	}
	return models.User{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
}

// Middleware attaches a HandlerContext to every request. A missing token
// yields a guest; a present but invalid token is answered with 401.
func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hctx := &HandlerContext{
			User:      models.User{Role: models.RoleGuest},
			RequestID: logging.RequestIDFromContext(r.Context()),
		}

		token := bearerToken(r)
		if token != "" && s.Enabled() {
			user, err := s.Parse(token)
			if err != nil {
				reason := rejectReason(err)
				metrics.SessionTokensRejected.WithLabelValues(reason).Inc()
				s.security.Log(logging.AccessEvent{
					Event:  logging.EventTokenRejected,
					Method: r.Method,
					Path:   r.URL.Path,
					IP:     r.RemoteAddr,
					Reason: reason,
				})
				respondError(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, "Invalid or expired session", nil)
				return
			}
			hctx.User = user
			hctx.Token = token
		}

		ctx := WithHandlerContext(r.Context(), hctx)
		if hctx.IsAuthenticated() {
			ctx = logging.ContextWithUserID(ctx, hctx.User.UserID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken reads the Authorization header, falling back to the token
// query parameter for websocket upgrades which cannot set headers from a
// browser.
func bearerToken(r *http.Request) string {
	const prefix = "bearer "
	if h := r.Header.Get("Authorization"); len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	if strings.EqualFold(r.Header.Get("Upgrade"), "websocket") {
		return r.URL.Query().Get("token")
	}
	return ""
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "expired"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "signature"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return "missing_claim"
	default:
		return "invalid"
	}
}
