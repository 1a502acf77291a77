// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package discovery

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/tomtom215/cinescope/internal/models"
)

// SortKey selects a catalog ordering.
type SortKey string

const (
	SortNewest     SortKey = "newest"
	SortOldest     SortKey = "oldest"
	SortRatingHigh SortKey = "rating-high"
	SortRatingLow  SortKey = "rating-low"
	SortTitleAsc   SortKey = "title-asc"
	SortTitleDesc  SortKey = "title-desc"
)

// SortKeys lists every supported key.
var SortKeys = []SortKey{SortNewest, SortOldest, SortRatingHigh, SortRatingLow, SortTitleAsc, SortTitleDesc}

// ParseSortKey resolves a raw sort key.
func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(SortKeys, key) {
		return "", newValidationError("sort", s, ErrUnknownSortKey)
	}
	return key, nil
}

// SortMovies returns a sorted copy of movies. The sort is stable for every
// key so ties keep their original relative order. Unknown release years and
// ratings sort as 0. Titles use English collation.
func SortMovies(movies []models.Movie, key SortKey) ([]models.Movie, error) {
	cmpFn, err := comparator(key)
	if err != nil {
		return nil, err
	}
	out := slices.Clone(movies)
	if out == nil {
		out = []models.Movie{}
	}
	slices.SortStableFunc(out, cmpFn)
	return out, nil
}

func comparator(key SortKey) (func(a, b models.Movie) int, error) {
	switch key {
	case SortNewest:
		return func(a, b models.Movie) int { return cmp.Compare(b.ReleaseYear, a.ReleaseYear) }, nil
	case SortOldest:
		return func(a, b models.Movie) int { return cmp.Compare(a.ReleaseYear, b.ReleaseYear) }, nil
	case SortRatingHigh:
		return func(a, b models.Movie) int { return cmp.Compare(finite(b.AvgRating), finite(a.AvgRating)) }, nil
	case SortRatingLow:
		return func(a, b models.Movie) int { return cmp.Compare(finite(a.AvgRating), finite(b.AvgRating)) }, nil
	case SortTitleAsc, SortTitleDesc:
		// Collators keep internal buffers, so each sort gets its own.
		col := collate.New(language.English)
		if key == SortTitleAsc {
			return func(a, b models.Movie) int { return col.CompareString(a.Title, b.Title) }, nil
		}
		return func(a, b models.Movie) int { return col.CompareString(b.Title, a.Title) }, nil
	default:
		return nil, newValidationError("sort", string(key), ErrUnknownSortKey)
	}
}
