// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

/*
Package config loads Cinescope configuration with koanf.

Sources, lowest to highest precedence:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, ./config.yaml, ./config.yml or
    /etc/cinescope/config.yaml
 3. Environment variables listed in envMappings; anything else is ignored

Example config.yaml:

	server:
	  port: 8080
	  environment: production
	backend:
	  url: http://reviews:5000
	  cache_ttl: 30s
	watchlist:
	  store: badger
	  path: /data/watchlist
	security:
	  jwt_secret: change-me-to-a-32-character-secret
	  cors_origins: [https://movies.example.com]

CORS_ORIGINS accepts a comma-separated list. Validate runs one validator per
section and reports the offending environment variable name.
*/
package config
