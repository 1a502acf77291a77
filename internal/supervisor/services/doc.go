// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

// Package services adapts components with their own lifecycle to
// suture.Service. HTTPServerService turns the ListenAndServe/Shutdown pair of
// *http.Server into a context-aware Serve.
package services
