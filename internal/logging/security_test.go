// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSanitizeToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"short", "abc", "***"},
		{"twelve", "abcdefghijkl", "***"},
		{"long", "eyJhbGciOiJIUzI1NiJ9.payload.sig", "eyJh....sig"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SanitizeToken(tt.input); got != tt.want {
				t.Errorf("SanitizeToken(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"jane.doe@example.com", "ja***@example.com"},
		{"jo@example.com", "***@example.com"},
		{"no-at-sign", "***"},
		{"@example.com", "***"},
	}
	for _, tt := range tests {
		if got := SanitizeEmail(tt.input); got != tt.want {
			t.Errorf("SanitizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSanitizeError(t *testing.T) {
	t.Parallel()

	if got := SanitizeError("invalid token signature"); got != "credential error" {
		t.Errorf("expected credential message to be hidden, got %q", got)
	}
	if got := SanitizeError("role not permitted"); got != "role not permitted" {
		t.Errorf("expected plain message to pass through, got %q", got)
	}
	long := strings.Repeat("x", 250)
	if got := SanitizeError(long); len(got) != maxLoggedValue+3 {
		t.Errorf("expected truncation to %d chars, got %d", maxLoggedValue+3, len(got))
	}
}

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	got := SanitizeLogValue("/api/movies\n{\"level\":\"error\"}\r")
	if strings.ContainsAny(got, "\r\n") {
		t.Errorf("expected control characters to be removed, got %q", got)
	}
	if got != `/api/movies{"level":"error"}` {
		t.Errorf("unexpected sanitized value %q", got)
	}
}

func TestSecurityLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLevelString("debug")
	defer Init(DefaultConfig())

	sl := NewSecurityLogger(zerolog.New(&buf))
	sl.Log(AccessEvent{
		Event:  EventAccessDenied,
		UserID: 12,
		Email:  "viewer@example.com",
		Role:   "user",
		Method: "GET",
		Path:   "/api/admin/analytics",
		IP:     "10.0.0.5",
		Reason: "role not permitted",
	})

	output := buf.String()
	for _, want := range []string{
		`"component":"security"`,
		`"level":"warn"`,
		`"event":"access_denied"`,
		`"user_id":12`,
		`"email":"vi***@example.com"`,
		`"reason":"role not permitted"`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output, got: %s", want, output)
		}
	}
	if strings.Contains(output, "viewer@example.com") {
		t.Errorf("expected email to be masked, got: %s", output)
	}

	buf.Reset()
	sl.Log(AccessEvent{Event: EventAccessGranted, Role: "admin", Method: "GET", Path: "/api/movies"})
	if !strings.Contains(buf.String(), `"level":"debug"`) {
		t.Errorf("expected grants at debug level, got: %s", buf.String())
	}
	if strings.Contains(buf.String(), "user_id") {
		t.Errorf("expected no user_id for anonymous grant, got: %s", buf.String())
	}
}
