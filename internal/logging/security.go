// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package logging

import (
	"strings"
	"unicode"

	"github.com/rs/zerolog"
)

// Access event names.
const (
	EventTokenRejected = "token_rejected"
	EventAccessDenied  = "access_denied"
	EventAccessGranted = "access_granted"
)

const maxLoggedValue = 200

// AccessEvent describes one session or authorization decision at the API edge.
type AccessEvent struct {
	Event  string
	UserID int
	Email  string
	Role   string
	Method string
	Path   string
	IP     string
	Reason string
}

// SecurityLogger writes access events with personal data masked.
type SecurityLogger struct {
	logger zerolog.Logger
}

// NewSecurityLogger tags entries with component=security.
//
//nolint:gocritic // zerolog.Logger is passed by value
func NewSecurityLogger(logger zerolog.Logger) *SecurityLogger {
	return &SecurityLogger{logger: logger.With().Str("component", "security").Logger()}
}

// Log writes ev. Denials and rejected tokens log at warn, grants at debug.
func (l *SecurityLogger) Log(ev AccessEvent) {
	var e *zerolog.Event
	switch ev.Event {
	case EventAccessGranted:
		e = l.logger.Debug()
	default:
		e = l.logger.Warn()
	}
	e = e.Str("event", ev.Event).
		Str("role", ev.Role).
		Str("method", ev.Method).
		Str("path", SanitizeLogValue(ev.Path)).
		Str("ip", ev.IP)
	if ev.UserID > 0 {
		e = e.Int("user_id", ev.UserID)
	}
	if ev.Email != "" {
		e = e.Str("email", SanitizeEmail(ev.Email))
	}
	if ev.Reason != "" {
		e = e.Str("reason", SanitizeError(ev.Reason))
	}
	e.Msg("access decision")
}

// SanitizeToken keeps the first and last four characters of long tokens.
func SanitizeToken(token string) string {
	switch {
	case token == "":
		return ""
	case len(token) <= 12:
		return "***"
	default:
		return token[:4] + "..." + token[len(token)-4:]
	}
}

// SanitizeEmail keeps two characters of the local part and the domain.
//
//	"jane.doe@example.com" -> "ja***@example.com"
func SanitizeEmail(email string) string {
	at := strings.Index(email, "@")
	switch {
	case email == "":
		return ""
	case at <= 0:
		return "***"
	case at <= 2:
		return "***" + email[at:]
	default:
		return email[:2] + "***" + email[at:]
	}
}

var sensitiveWords = []string{"password", "secret", "token", "bearer", "authorization", "signature"}

// SanitizeError hides messages that mention credentials and truncates the rest.
func SanitizeError(msg string) string {
	lower := strings.ToLower(msg)
	for _, w := range sensitiveWords {
		if strings.Contains(lower, w) {
			return "credential error"
		}
	}
	return truncate(msg, maxLoggedValue)
}

// SanitizeLogValue strips control characters from user-supplied input so it
// cannot forge log lines, and truncates it.
func SanitizeLogValue(s string) string {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return truncate(clean, maxLoggedValue)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
