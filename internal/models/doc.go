// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

/*
Package models defines the data structures shared across Cinescope.

Key Components:

  - Movie: catalog snapshot record with derived rating aggregates
  - Review: a single 1-5 star review with optional free-text comment
  - User: session object supplied by the authentication collaborator
  - APIResponse / APIError / Metadata: the HTTP response envelope

JSON tags follow the review backend's snake_case wire format so records
decoded at the ingestion boundary can be re-encoded for API clients without
renaming.
*/
package models
