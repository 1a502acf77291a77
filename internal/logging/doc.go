// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

/*
Package logging configures the process-wide zerolog logger for Cinescope.

# Overview

The package provides:
  - Structured JSON output for production and console output for development
  - A global logger configured once from main
  - Component loggers tagged with a component field
  - Context-aware logging with request, correlation and user IDs
  - An slog bridge for libraries that require log/slog (sutureslog, watermill)
  - A security logger that masks personal data in access decisions

# Quick Start

	import "github.com/tomtom215/cinescope/internal/logging"

	// Initialize at startup with the logging config section
	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().Str("addr", addr).Msg("Starting Cinescope")
	logging.Error().Err(err).Msg("Failed to open watchlist store")

# Configuration

Environment Variables (read by internal/config):

	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
	LOG_FORMAT  - json, console (default: json)
	LOG_CALLER  - include caller file:line (default: false)
	FUZZ_MODE   - set to 1 to silence everything below fatal

# Log Levels

From most to least verbose:

	trace  - per-item engine and cache detail
	debug  - granted access decisions, cache refresh detail
	info   - startup, shutdown, catalog refreshes (default)
	warn   - rejected tokens, denied access, degraded backend
	error  - failed operations that need attention
	fatal  - startup failures; exits the process

# Component Loggers

Components take a tagged child logger rather than the global one:

	log := logging.WithComponent("catalog")
	log.Info().Int("movies", n).Msg("snapshot refreshed")

# Context-Aware Logging

Request-scoped code uses Ctx, which adds the request ID, correlation ID and
session user ID placed in the context by the API middleware:

	logging.Ctx(r.Context()).Warn().Err(err).Msg("backend unavailable")

# Best Practices

Always terminate log chains with Msg or Send:

	logging.Info().Str("key", "value").Msg("message")  // Correct
	logging.Info().Str("key", "value")                 // WRONG - nothing written

Use structured fields rather than formatted messages:

	logging.Info().Int("movies", n).Dur("elapsed", d).Msg("catalog refreshed")  // Correct
	logging.Info().Msgf("refreshed %d movies in %v", n, d)                      // Avoid

Never log raw tokens, emails or user-supplied paths. Use SanitizeToken,
SanitizeEmail and SanitizeLogValue, or SecurityLogger for access events.

# slog Adapter

	logger := logging.NewSlogLogger("supervisor")
	hook := (&sutureslog.Handler{Logger: logger}).MustHook()

# Thread Safety

All exported functions are safe for concurrent use. The global logger is
guarded by a sync.RWMutex for reconfiguration.

# Testing

	var buf bytes.Buffer
	logging.SetLogger(logging.NewTestLogger(&buf))
	// ... exercise code ...
	if !strings.Contains(buf.String(), `"component":"catalog"`) { ... }

# See Also

  - github.com/rs/zerolog: underlying logging library
  - internal/middleware: request ID middleware feeding Ctx
  - internal/api: session middleware feeding the user ID
*/
package logging
