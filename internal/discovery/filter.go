// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package discovery

import (
	"math"
	"strconv"
	"strings"

	"github.com/tomtom215/cinescope/internal/models"
)

// GenreAll disables genre and rating filters.
const GenreAll = "All"

// DefaultSuggestionLimit is the number of title suggestions returned.
const DefaultSuggestionLimit = 5

// Criteria holds the browse predicates. All set predicates must hold.
//
// When Mood is set, Genre is ignored and replaced by the mood genre test.
// A nil MinRating disables the rating floor.
type Criteria struct {
	Search    string
	Genre     string
	Mood      Mood
	MinRating *float64
}

// ParseCriteria builds Criteria from raw query values. An empty or "All"
// genre and min rating disable those filters; an unknown mood or a
// non-numeric min rating is a validation error.
func ParseCriteria(search, genre, mood, minRating string) (Criteria, error) {
	c := Criteria{Search: search, Genre: genre}

	if strings.TrimSpace(mood) != "" {
		m, err := ParseMood(mood)
		if err != nil {
			return Criteria{}, err
		}
		c.Mood = m
	}

	minRating = strings.TrimSpace(minRating)
	if minRating != "" && !strings.EqualFold(minRating, GenreAll) {
		v, err := strconv.ParseFloat(minRating, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return Criteria{}, newValidationError("min_rating", minRating, ErrInvalidMinRating)
		}
		c.MinRating = &v
	}

	return c, nil
}

// FilterMovies returns the movies matching c in their original order.
// The input is not modified and the result is never nil.
func FilterMovies(movies []models.Movie, c Criteria) []models.Movie {
	search := strings.ToLower(c.Search)
	out := make([]models.Movie, 0, len(movies))
	for _, m := range movies {
		if search != "" && !strings.Contains(strings.ToLower(m.Title), search) {
			continue
		}
		if c.Mood != "" {
			if !MatchesMood(m.Genre, c.Mood) {
				continue
			}
		} else if c.Genre != "" && c.Genre != GenreAll && m.Genre != c.Genre {
			continue
		}
		if c.MinRating != nil && finite(m.AvgRating) < *c.MinRating {
			continue
		}
		out = append(out, m)
	}
	return out
}

// GenreOptions returns "All" followed by the distinct non-empty genres in
// first-seen order.
func GenreOptions(movies []models.Movie) []string {
	seen := make(map[string]struct{}, len(movies))
	out := []string{GenreAll}
	for _, m := range movies {
		if m.Genre == "" {
			continue
		}
		if _, ok := seen[m.Genre]; ok {
			continue
		}
		seen[m.Genre] = struct{}{}
		out = append(out, m.Genre)
	}
	return out
}

// Suggestions returns up to limit catalog movies whose title contains query,
// in catalog order. A blank query yields no suggestions.
func Suggestions(movies []models.Movie, query string, limit int) []models.Movie {
	if strings.TrimSpace(query) == "" {
		return []models.Movie{}
	}
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	matches := FilterMovies(movies, Criteria{Search: query})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
