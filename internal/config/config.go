// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the complete service configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Backend   BackendConfig   `koanf:"backend"`
	Watchlist WatchlistConfig `koanf:"watchlist"`
	Security  SecurityConfig  `koanf:"security"`
	Discovery DiscoveryConfig `koanf:"discovery"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// BackendConfig holds settings for the review backend client.
//
// Environment Variables:
//   - BACKEND_URL: base URL of the review service (default: http://localhost:5000)
//   - BACKEND_TIMEOUT: per-request timeout (default: 10s)
//   - BACKEND_MAX_RETRIES: retries after HTTP 429 (default: 3)
//   - BACKEND_RETRY_BASE_DELAY: first backoff delay, doubled per retry (default: 500ms)
//   - BACKEND_RPS / BACKEND_BURST: outbound request shaping (default: 20 / 10)
//   - CATALOG_CACHE_TTL: snapshot lifetime (default: 60s)
//   - CATALOG_REFRESH_INTERVAL: background refresh period (default: 5m)
type BackendConfig struct {
	URL               string        `koanf:"url"`
	Timeout           time.Duration `koanf:"timeout"`
	MaxRetries        int           `koanf:"max_retries"`
	RetryBaseDelay    time.Duration `koanf:"retry_base_delay"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
	CacheTTL          time.Duration `koanf:"cache_ttl"`
	RefreshInterval   time.Duration `koanf:"refresh_interval"`
}

// Watchlist store kinds.
const (
	StoreMemory = "memory"
	StoreBadger = "badger"
)

// WatchlistConfig selects the watchlist key-value store.
type WatchlistConfig struct {
	// Store is memory or badger.
	Store string `koanf:"store"`
	// Path is the badger directory, required when Store is badger.
	Path string `koanf:"path"`
}

// SecurityConfig holds session, CORS and rate limiting settings.
type SecurityConfig struct {
	// JWTSecret verifies HS256 session tokens issued by the review backend.
	// Empty disables sessions: every caller is a guest.
	JWTSecret         string        `koanf:"jwt_secret"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	Casbin            CasbinConfig  `koanf:"casbin"`
}

// CasbinConfig points at optional model and policy files. Empty paths use
// the embedded defaults.
type CasbinConfig struct {
	ModelPath  string `koanf:"model_path"`
	PolicyPath string `koanf:"policy_path"`
}

// DiscoveryConfig holds engine defaults applied at the API edge.
type DiscoveryConfig struct {
	PageSize            int `koanf:"page_size"`
	RecommendationLimit int `koanf:"recommendation_limit"`
	SuggestionLimit     int `koanf:"suggestion_limit"`
}

// LoggingConfig holds zerolog settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Addr returns host:port for the HTTP listener.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// IsProduction reports whether Environment is production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
