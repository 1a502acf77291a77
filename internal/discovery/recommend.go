// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package discovery

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/tomtom215/cinescope/internal/models"
)

// DefaultRecommendationLimit is used when Recommend is called with limit <= 0.
const DefaultRecommendationLimit = 10

// likedRatingThreshold is the lowest rating that counts as a liked review.
const likedRatingThreshold = 4

// Algorithm tags which recommendation path produced a result.
type Algorithm string

const (
	AlgorithmGenreBased       Algorithm = "genre-based"
	AlgorithmTrendingFallback Algorithm = "trending-fallback"
)

// ReasonKind classifies why an item was recommended.
type ReasonKind string

const (
	ReasonGenrePreference ReasonKind = "genre-preference"
	ReasonSimilarToLiked  ReasonKind = "similar-to-liked"
	ReasonTrending        ReasonKind = "trending"
	ReasonHighlyRated     ReasonKind = "highly-rated"
	ReasonGeneral         ReasonKind = "general"
)

// Recommendation is a ranked candidate with its explanation.
type Recommendation struct {
	Movie      models.Movie `json:"movie"`
	Score      float64      `json:"score"`
	ReasonKind ReasonKind   `json:"explanation_type"`
	Reason     string       `json:"recommendation_reason"`
}

// Recommendations is the selector output.
type Recommendations struct {
	Items           []Recommendation `json:"recommendations"`
	PreferredGenres []string         `json:"preferred_genres"`
	Algorithm       Algorithm        `json:"algorithm"`
	UserWatchCount  int              `json:"user_watch_count"`
}

// genreTally counts highly rated reviews for one genre. Genres are
// compared case-insensitively; genre keeps the first spelling seen.
type genreTally struct {
	key       string
	genre     string
	count     int
	firstSeen int
}

// likedReview is the first liked review of a genre.
type likedReview struct {
	title  string
	rating int
}

// PreferredGenres extracts the genres of movies the user rated 4 or more,
// most frequent first with ties in first-seen order. Review genres are
// resolved through the catalog by movie ID.
func PreferredGenres(catalog []models.Movie, userReviews []models.Review) []string {
	tallies := tallyPreferredGenres(indexGenres(catalog), userReviews)
	out := make([]string, len(tallies))
	for i, t := range tallies {
		out[i] = t.genre
	}
	return out
}

// Recommend ranks unreviewed catalog movies for a user.
//
// With a qualifying history the candidates are movies in a preferred genre,
// ranked by average rating then review count. Without one, every
// unreviewed movie is ranked by PopularityScore. Both rankings are stable
// with respect to catalog order.
func Recommend(catalog []models.Movie, userReviews []models.Review, limit int) Recommendations {
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}

	genres := indexGenres(catalog)
	tallies := tallyPreferredGenres(genres, userReviews)

	reviewed := make(map[int]struct{}, len(userReviews))
	for _, rv := range userReviews {
		reviewed[rv.MovieID] = struct{}{}
	}

	res := Recommendations{
		Items:           []Recommendation{},
		PreferredGenres: make([]string, len(tallies)),
		UserWatchCount:  len(reviewed),
	}
	for i, t := range tallies {
		res.PreferredGenres[i] = t.genre
	}

	if len(tallies) > 0 {
		res.Algorithm = AlgorithmGenreBased
		liked := firstLikedByGenre(catalog, genres, userReviews)
		for _, m := range catalog {
			if _, seen := reviewed[m.MovieID]; seen {
				continue
			}
			tally, exact, ok := matchPreferred(m.Genre, tallies)
			if !ok {
				continue
			}
			rec := Recommendation{Movie: m, Score: finite(m.AvgRating)}
			if exact {
				rec.ReasonKind = ReasonGenrePreference
				rec.Reason = fmt.Sprintf("You rated %d %s movies highly", tally.count, tally.genre)
			} else {
				rec.ReasonKind = ReasonSimilarToLiked
				lr := liked[tally.key]
				rec.Reason = fmt.Sprintf("Similar to '%s' which you rated %d", lr.title, lr.rating)
			}
			res.Items = append(res.Items, rec)
		}
		slices.SortStableFunc(res.Items, func(a, b Recommendation) int {
			if c := cmp.Compare(finite(b.Movie.AvgRating), finite(a.Movie.AvgRating)); c != 0 {
				return c
			}
			return cmp.Compare(b.Movie.ReviewCount, a.Movie.ReviewCount)
		})
	} else {
		res.Algorithm = AlgorithmTrendingFallback
		for _, m := range catalog {
			if _, seen := reviewed[m.MovieID]; seen {
				continue
			}
			kind, reason := fallbackReason(m)
			res.Items = append(res.Items, Recommendation{
				Movie:      m,
				Score:      PopularityScore(m),
				ReasonKind: kind,
				Reason:     reason,
			})
		}
		slices.SortStableFunc(res.Items, func(a, b Recommendation) int {
			return cmp.Compare(b.Score, a.Score)
		})
	}

	if len(res.Items) > limit {
		res.Items = res.Items[:limit]
	}
	return res
}

func fallbackReason(m models.Movie) (ReasonKind, string) {
	avg := finite(m.AvgRating)
	switch {
	case m.ReviewCount >= 5 && avg >= 4:
		return ReasonTrending, fmt.Sprintf("Trending: %d reviews with %.1f rating", m.ReviewCount, avg)
	case avg >= 4:
		return ReasonHighlyRated, fmt.Sprintf("Highly rated by the audience (%.1f)", avg)
	default:
		return ReasonGeneral, "Recommended for you"
	}
}

func indexGenres(catalog []models.Movie) map[int]string {
	out := make(map[int]string, len(catalog))
	for _, m := range catalog {
		out[m.MovieID] = m.Genre
	}
	return out
}

func tallyPreferredGenres(genres map[int]string, userReviews []models.Review) []genreTally {
	index := make(map[string]int)
	var tallies []genreTally
	for _, rv := range userReviews {
		if rv.Rating < likedRatingThreshold {
			continue
		}
		g := strings.TrimSpace(genres[rv.MovieID])
		if g == "" {
			continue
		}
		key := genreKey(g)
		if i, ok := index[key]; ok {
			tallies[i].count++
			continue
		}
		index[key] = len(tallies)
		tallies = append(tallies, genreTally{key: key, genre: g, count: 1, firstSeen: len(tallies)})
	}
	slices.SortStableFunc(tallies, func(a, b genreTally) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return cmp.Compare(a.firstSeen, b.firstSeen)
	})
	return tallies
}

// matchPreferred finds the preferred genre a movie belongs to. An exact
// (case-insensitive) match wins over a movie genre that merely contains a
// preferred genre, such as "Action, Thriller" for "Action".
func matchPreferred(genre string, tallies []genreTally) (genreTally, bool, bool) {
	g := genreKey(genre)
	if g == "" {
		return genreTally{}, false, false
	}
	for _, t := range tallies {
		if g == t.key {
			return t, true, true
		}
	}
	for _, t := range tallies {
		if strings.Contains(g, t.key) {
			return t, false, true
		}
	}
	return genreTally{}, false, false
}

func genreKey(genre string) string {
	return strings.ToLower(strings.TrimSpace(genre))
}

// firstLikedByGenre maps each genre key to the first review the user rated
// likedRatingThreshold or more in it.
func firstLikedByGenre(catalog []models.Movie, genres map[int]string, userReviews []models.Review) map[string]likedReview {
	titles := make(map[int]string, len(catalog))
	for _, m := range catalog {
		titles[m.MovieID] = m.Title
	}
	out := make(map[string]likedReview)
	for _, rv := range userReviews {
		if rv.Rating < likedRatingThreshold {
			continue
		}
		key := genreKey(genres[rv.MovieID])
		if key == "" {
			continue
		}
		if _, ok := out[key]; ok {
			continue
		}
		title := rv.Title
		if title == "" {
			title = titles[rv.MovieID]
		}
		out[key] = likedReview{title: title, rating: rv.Rating}
	}
	return out
}
