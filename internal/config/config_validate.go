// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateBackend,
		c.validateWatchlist,
		c.validateSecurity,
		c.validateDiscovery,
		c.validateLogging,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

var validEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
	return nil
}

func (c *Config) validateBackend() error {
	b := c.Backend
	if err := validateHTTPURL(b.URL, "BACKEND_URL"); err != nil {
		return err
	}
	switch {
	case b.Timeout <= 0:
		return fmt.Errorf("BACKEND_TIMEOUT must be positive")
	case b.MaxRetries < 0 || b.MaxRetries > 10:
		return fmt.Errorf("BACKEND_MAX_RETRIES must be between 0 and 10")
	case b.RetryBaseDelay <= 0:
		return fmt.Errorf("BACKEND_RETRY_BASE_DELAY must be positive")
	case b.RequestsPerSecond <= 0:
		return fmt.Errorf("BACKEND_RPS must be positive")
	case b.Burst < 1:
		return fmt.Errorf("BACKEND_BURST must be at least 1")
	case b.CacheTTL < 0:
		return fmt.Errorf("CATALOG_CACHE_TTL must not be negative")
	case b.RefreshInterval < time.Second:
		return fmt.Errorf("CATALOG_REFRESH_INTERVAL must be at least 1s")
	}
	return nil
}

func (c *Config) validateWatchlist() error {
	switch c.Watchlist.Store {
	case StoreMemory:
		return nil
	case StoreBadger:
		if strings.TrimSpace(c.Watchlist.Path) == "" {
			return fmt.Errorf("WATCHLIST_PATH is required when WATCHLIST_STORE=badger")
		}
		return nil
	default:
		return fmt.Errorf("WATCHLIST_STORE must be one of: memory, badger")
	}
}

const (
	minJWTSecretLength   = 32
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateSecurity() error {
	if err := c.validateJWTSecret(); err != nil {
		return err
	}
	if err := c.validateCORS(); err != nil {
		return err
	}
	return c.validateRateLimits()
}

func (c *Config) validateJWTSecret() error {
	secret := c.Security.JWTSecret
	if secret == "" {
		if c.IsProduction() {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		return nil
	}
	if len(secret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLength)
	}
	return nil
}

// validateCORS rejects a wildcard origin in production when sessions are
// enabled.
func (c *Config) validateCORS() error {
	if c.IsProduction() && c.Security.JWTSecret != "" && c.HasWildcardCORS() {
		return fmt.Errorf("CORS_ORIGINS=* is not allowed in production with sessions enabled; " +
			"set specific origins, e.g. CORS_ORIGINS=https://movies.example.com")
	}
	return nil
}

// HasWildcardCORS reports whether any origin is "*".
func (c *Config) HasWildcardCORS() bool {
	for _, o := range c.Security.CORSOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

func (c *Config) validateDiscovery() error {
	d := c.Discovery
	switch {
	case d.PageSize < 1 || d.PageSize > 100:
		return fmt.Errorf("PAGE_SIZE must be between 1 and 100")
	case d.RecommendationLimit < 1 || d.RecommendationLimit > 50:
		return fmt.Errorf("RECOMMENDATION_LIMIT must be between 1 and 50")
	case d.SuggestionLimit < 1 || d.SuggestionLimit > 20:
		return fmt.Errorf("SUGGESTION_LIMIT must be between 1 and 20")
	}
	return nil
}

var validLogFormats = map[string]bool{"json": true, "console": true}

func (c *Config) validateLogging() error {
	if !validLogFormats[strings.ToLower(c.Logging.Format)] {
		return fmt.Errorf("LOG_FORMAT must be json or console")
	}
	return nil
}
