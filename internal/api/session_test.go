// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/cinescope/internal/models"
)

func signClaims(t *testing.T, method jwt.SigningMethod, key interface{}, claims SessionClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestSessionsParse(t *testing.T) {
	t.Parallel()
	s := NewSessions(testSecret)
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))
	past := jwt.NewNumericDate(time.Now().Add(-time.Hour))
	hs := jwt.SigningMethodHS256

	tests := []struct {
		name       string
		token      string
		wantUser   int
		wantRole   string
		wantReason string
	}{
		{"user", signClaims(t, hs, []byte(testSecret), SessionClaims{UserID: 7, Role: "user", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp}}), 7, models.RoleUser, ""},
		{"admin", signClaims(t, hs, []byte(testSecret), SessionClaims{UserID: 1, Role: "admin", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp}}), 1, models.RoleAdmin, ""},
		{"expired", signClaims(t, hs, []byte(testSecret), SessionClaims{UserID: 7, Role: "user", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: past}}), 0, "", "expired"},
		{"wrong key", signClaims(t, hs, []byte("another-secret"), SessionClaims{UserID: 7, Role: "user", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp}}), 0, "", "signature"},
		{"no expiry", signClaims(t, hs, []byte(testSecret), SessionClaims{UserID: 7, Role: "user"}), 0, "", "missing_claim"},
		{"no user", signClaims(t, hs, []byte(testSecret), SessionClaims{Role: "user", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp}}), 0, "", "invalid"},
		{"unknown role", signClaims(t, hs, []byte(testSecret), SessionClaims{UserID: 7, Role: "root", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp}}), 0, "", "invalid"},
		{"wrong algorithm", signClaims(t, jwt.SigningMethodHS512, []byte(testSecret), SessionClaims{UserID: 7, Role: "user", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp}}), 0, "", "signature"},
		{"garbage", "not.a.token", 0, "", "malformed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := s.Parse(tt.token)
			if tt.wantReason != "" {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.Is(err, ErrInvalidToken) {
					t.Errorf("error %v does not wrap ErrInvalidToken", err)
				}
				if got := rejectReason(err); got != tt.wantReason {
					t.Errorf("reason = %q, want %q", got, tt.wantReason)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if user.UserID != tt.wantUser || user.Role != tt.wantRole {
				t.Errorf("user = %+v, want id %d role %s", user, tt.wantUser, tt.wantRole)
			}
		})
	}
}

func TestSessionsMiddleware(t *testing.T) {
	t.Parallel()
	valid := signToken(t, 9, models.RoleUser, time.Hour)

	tests := []struct {
		name     string
		secret   string
		header   string
		wantCode int
		wantRole string
	}{
		{"no token", testSecret, "", http.StatusOK, models.RoleGuest},
		{"valid token", testSecret, "Bearer " + valid, http.StatusOK, models.RoleUser},
		{"lowercase scheme", testSecret, "bearer " + valid, http.StatusOK, models.RoleUser},
		{"invalid token", testSecret, "Bearer nope", http.StatusUnauthorized, ""},
		{"sessions disabled", "", "Bearer " + valid, http.StatusOK, models.RoleGuest},
		{"basic auth ignored", testSecret, "Basic dXNlcjpwYXNz", http.StatusOK, models.RoleGuest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotRole string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotRole = GetHandlerContext(r).Role()
				w.WriteHeader(http.StatusOK)
			})
			req := httptest.NewRequest(http.MethodGet, "/api/v1/movies", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			NewSessions(tt.secret).Middleware(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if gotRole != tt.wantRole {
				t.Errorf("role = %q, want %q", gotRole, tt.wantRole)
			}
		})
	}
}

func TestBearerTokenQueryOnlyForUpgrade(t *testing.T) {
	t.Parallel()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/watchlist/ws?token=abc", nil)
	if got := bearerToken(r); got != "" {
		t.Errorf("plain request token = %q, want empty", got)
	}
	r.Header.Set("Upgrade", "websocket")
	if got := bearerToken(r); got != "abc" {
		t.Errorf("upgrade token = %q, want abc", got)
	}
}

func TestGetHandlerContextDefaultsToGuest(t *testing.T) {
	t.Parallel()
	hctx := GetHandlerContext(httptest.NewRequest(http.MethodGet, "/", nil))
	if hctx.IsAuthenticated() || hctx.Role() != models.RoleGuest {
		t.Errorf("got %+v, want guest", hctx)
	}
	if !errors.Is(hctx.RequireUser(), ErrNotAuthenticated) {
		t.Error("RequireUser should fail for guests")
	}
}
