// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

// Package authz provides role-based authorization using Casbin.
//
// The embedded model matches (role, path, action) with keyMatch2 path
// patterns and role inheritance:
//
//	guest  <- user  <- admin
//
// Guests may read discovery endpoints and plan a movie night. Users add the
// watchlist, recommendations and trace analysis. Admins add the analytics
// dashboard. Actions are read (GET, HEAD, OPTIONS) and write (everything
// else).
//
// Model and policy files on disk override the embedded ones:
//
//	e, err := authz.NewEnforcer(authz.FromConfig(cfg.Security.Casbin))
//	ok, err := e.Enforce("user", "/api/v1/watchlist/12/toggle", authz.ActionWrite)
package authz
