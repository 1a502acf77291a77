// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package discovery

import (
	"fmt"
	"time"

	"github.com/tomtom215/cinescope/internal/models"
)

// Discovery filter thresholds used by ExplainMovie.
const (
	HighRatedThreshold   = 4.5
	PopularReviewCount   = 50
	TrendingRecentCount  = 5
	explainFilterCount   = 3
	reviewVolumeCap      = 100
	personalizationShare = 0.4
	filterShare          = 0.3
	popularityShare      = 0.3
)

// ExplainFactor is one human-readable contribution to an explanation.
type ExplainFactor struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// ExplainScores are the component scores, each in [0,100] at 1 dp.
type ExplainScores struct {
	Personalization float64 `json:"personalization_score"`
	FilterMatch     float64 `json:"filter_match_score"`
	Popularity      float64 `json:"popularity_score"`
	Overall         float64 `json:"overall_score"`
}

// Explanation describes why a movie surfaces for a viewer.
type Explanation struct {
	MovieID         int             `json:"movie_id"`
	Title           string          `json:"title"`
	Genre           string          `json:"genre"`
	Personalization []ExplainFactor `json:"personalization"`
	Filters         []ExplainFactor `json:"filters"`
	Popularity      []ExplainFactor `json:"popularity"`
	Percentile      float64         `json:"percentile"`
	Scores          ExplainScores   `json:"scores"`
}

// ExplainMovie scores a movie for a viewer. likedGenres holds the genre of
// each movie the viewer rated highly (nil for guests); recentReviews is the
// number of the movie's reviews from the last seven days.
func ExplainMovie(movie models.Movie, catalog []models.Movie, likedGenres []string, recentReviews int) Explanation {
	avg := finite(movie.AvgRating)
	ex := Explanation{
		MovieID:         movie.MovieID,
		Title:           movie.Title,
		Genre:           movie.Genre,
		Personalization: []ExplainFactor{},
		Filters:         []ExplainFactor{},
	}

	if len(likedGenres) > 0 {
		matches := 0
		for _, g := range likedGenres {
			if g != "" && g == movie.Genre {
				matches++
			}
		}
		ex.Scores.Personalization = round1(float64(matches) / float64(len(likedGenres)) * 100)
		if matches > 0 {
			ex.Personalization = append(ex.Personalization, ExplainFactor{
				Name:        "Genre Match",
				Value:       fmt.Sprintf("%d of %d", matches, len(likedGenres)),
				Description: fmt.Sprintf("You highly rated %d %s movies", matches, movie.Genre),
			})
		}
	}

	if avg >= HighRatedThreshold {
		ex.Filters = append(ex.Filters, ExplainFactor{
			Name:        "High Rated",
			Value:       fmt.Sprintf("%.1f", avg),
			Description: fmt.Sprintf("Rating of at least %.1f", HighRatedThreshold),
		})
	}
	if movie.ReviewCount >= PopularReviewCount {
		ex.Filters = append(ex.Filters, ExplainFactor{
			Name:        "Popular",
			Value:       fmt.Sprintf("%d reviews", movie.ReviewCount),
			Description: fmt.Sprintf("At least %d reviews", PopularReviewCount),
		})
	}
	if recentReviews > TrendingRecentCount {
		ex.Filters = append(ex.Filters, ExplainFactor{
			Name:        "Trending",
			Value:       fmt.Sprintf("%d reviews in last 7 days", recentReviews),
			Description: fmt.Sprintf("More than %d reviews this week", TrendingRecentCount),
		})
	}
	ex.Scores.FilterMatch = round1(float64(len(ex.Filters)) / explainFilterCount * 100)

	ex.Percentile = ratingPercentile(avg, catalog)
	volume := float64(min(movie.ReviewCount, reviewVolumeCap)) / reviewVolumeCap * 50
	ex.Scores.Popularity = round1((ex.Percentile + volume) / 2)
	ex.Percentile = round1(ex.Percentile)

	ex.Popularity = []ExplainFactor{
		{
			Name:        "Rating Percentile",
			Value:       fmt.Sprintf("Top %.0f%%", 100-ex.Percentile),
			Description: fmt.Sprintf("Rated at least as high as %.0f%% of all movies", ex.Percentile),
		},
		{
			Name:        "Review Volume",
			Value:       fmt.Sprintf("%d reviews", movie.ReviewCount),
			Description: "Community engagement indicator",
		},
		{
			Name:        "Average Rating",
			Value:       fmt.Sprintf("%.1f/5.0", avg),
			Description: "Community consensus score",
		},
	}

	ex.Scores.Overall = round1(ex.Scores.Personalization*personalizationShare +
		ex.Scores.FilterMatch*filterShare +
		ex.Scores.Popularity*popularityShare)
	return ex
}

// ratingPercentile is the share of catalog movies rated at or below avg.
func ratingPercentile(avg float64, catalog []models.Movie) float64 {
	if len(catalog) == 0 {
		return 0
	}
	atOrBelow := 0
	for _, m := range catalog {
		if finite(m.AvgRating) <= avg {
			atOrBelow++
		}
	}
	return clampPercent(float64(atOrBelow) / float64(len(catalog)) * 100)
}

// LikedGenres returns the catalog genre of every movie the user rated 4 or
// more, in review order and with repeats, for ExplainMovie. Unknown movies
// and unclassified genres are skipped.
func LikedGenres(catalog []models.Movie, userReviews []models.Review) []string {
	genres := indexGenres(catalog)
	out := []string{}
	for _, rv := range userReviews {
		if rv.Rating < likedRatingThreshold {
			continue
		}
		if g := genres[rv.MovieID]; g != "" {
			out = append(out, g)
		}
	}
	return out
}

// CountRecent counts reviews dated within RecentWindow of now.
func CountRecent(reviews []models.Review, now time.Time) int {
	n := 0
	for _, rv := range reviews {
		if isRecent(rv.ReviewDate, now) {
			n++
		}
	}
	return n
}
