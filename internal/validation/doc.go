// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

// Package validation wraps go-playground/validator v10 for wire records and
// API request structs.
//
// Field names in messages come from the json tag, falling back to a query
// tag and then the Go field name. The custom "notblank" rule rejects
// whitespace-only strings.
//
//	type movieQuery struct {
//		Page     int `query:"page" validate:"gte=1"`
//		PageSize int `query:"page_size" validate:"gte=1,lte=100"`
//	}
//
//	if verr := validation.ValidateStruct(&q); verr != nil {
//		respondAPIError(w, http.StatusBadRequest, verr.ToAPIError())
//		return
//	}
package validation
