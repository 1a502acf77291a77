// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

/*
Package api serves the Cinescope HTTP API on a chi router.

Every JSON response uses the models.APIResponse envelope:

	{"status":"success","data":{...},"metadata":{"timestamp":"...","query_time_ms":3}}
	{"status":"error","error":{"code":"VALIDATION_ERROR","message":"..."},"metadata":{...}}

# Middleware

Applied to every route, in order: request ID, real IP, panic recovery,
CORS, Prometheus request metrics and the performance monitor. Routes under
/api/v1 additionally get a per-IP rate limit, security headers, session
verification and the Casbin policy check. Health routes skip sessions and
have a looser rate limit.

# Sessions

Bearer tokens are HS256 JWTs issued by the review backend with user_id,
email, role and exp claims. A request without a token is a guest. A request
with an invalid token is refused with 401 rather than downgraded. Browsers
cannot set headers on websocket upgrades, so the upgrade request may carry
the token in the token query parameter instead.

# Routes

	GET  /api/v1/health, /health/live, /health/ready
	GET  /api/v1/movies                   filter, sort and paginate
	GET  /api/v1/movies/suggestions       title autocomplete
	GET  /api/v1/movies/genres
	GET  /api/v1/movies/{id}              detail with stats and insights
	GET  /api/v1/movies/{id}/trust        reviewer trust heatmap
	GET  /api/v1/movies/{id}/explain      why the movie surfaces
	GET  /api/v1/moods, /moods/{mood}
	POST /api/v1/movie-night
	GET  /api/v1/recommendations          user
	POST /api/v1/traces/analyze           user
	GET  /api/v1/watchlist                user
	POST /api/v1/watchlist                user, add/remove/toggle
	POST /api/v1/watchlist/{id}/toggle    user
	GET  /api/v1/watchlist/ws             user, live updates
	GET  /api/v1/admin/analytics          admin
	GET  /api/v1/admin/performance        admin
	GET  /metrics
*/
package api
