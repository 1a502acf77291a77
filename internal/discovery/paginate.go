// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package discovery

import "slices"

// DefaultPageSize is the browse grid page size.
const DefaultPageSize = 6

// Page is one slice of a paginated collection.
type Page[T any] struct {
	Items      []T `json:"items"`
	PageNumber int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// Paginate returns page pageNumber (1-based) of items.
//
// An empty collection has zero pages. The page number is not clamped: a
// page outside [1, TotalPages] yields an empty Items slice, and callers
// clamp before calling when they want the nearest page instead.
func Paginate[T any](items []T, pageSize, pageNumber int) (Page[T], error) {
	if pageSize <= 0 {
		return Page[T]{}, newValidationError("page_size", pageSize, ErrInvalidPageSize)
	}

	total := len(items) / pageSize
	if len(items)%pageSize != 0 {
		total++
	}
	p := Page[T]{
		Items:      []T{},
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalItems: len(items),
		TotalPages: total,
	}
	if pageNumber < 1 || pageNumber > total {
		return p, nil
	}

	start := (pageNumber - 1) * pageSize
	end := start + min(pageSize, len(items)-start)
	p.Items = slices.Clone(items[start:end])
	return p, nil
}

// ClampPage pins page into [1, totalPages], or 1 when there are no pages.
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		return 1
	}
	return max(1, min(page, totalPages))
}

// PageLink is one entry of a pager. Ellipsis entries carry no page number.
type PageLink struct {
	Page     int  `json:"page,omitempty"`
	Current  bool `json:"current,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// PageWindow lays out pager links: the first and last pages always, pages
// within one of current, and a single ellipsis for each skipped run.
func PageWindow(current, totalPages int) []PageLink {
	out := []PageLink{}
	for p := 1; p <= totalPages; p++ {
		if p == 1 || p == totalPages || (p >= current-1 && p <= current+1) {
			out = append(out, PageLink{Page: p, Current: p == current})
			continue
		}
		if n := len(out); n > 0 && !out[n-1].Ellipsis {
			out = append(out, PageLink{Ellipsis: true})
		}
	}
	return out
}
