// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package discovery

import (
	"math"

	"github.com/tomtom215/cinescope/internal/models"
)

// RatingBucket is one row of a rating breakdown.
type RatingBucket struct {
	Rating  int `json:"rating"`
	Count   int `json:"count"`
	Percent int `json:"percent"`
}

// RatingBreakdown lists ratings 5 down to 1 with their share of all reviews.
func RatingBreakdown(stats RatingStats) []RatingBucket {
	out := make([]RatingBucket, 0, MaxStars)
	for r := MaxStars; r >= MinStars; r-- {
		n := stats.Distribution[r]
		out = append(out, RatingBucket{Rating: r, Count: n, Percent: sharePercent(n, stats.ReviewCount)})
	}
	return out
}

// AudienceMood is a reaction bucket keyed to a star rating.
type AudienceMood struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Rating  int    `json:"rating"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}

var audienceMoods = []struct {
	key, label string
	rating     int
}{
	{"mind-blowing", "Mind-blowing", 5},
	{"loved-it", "Loved it", 4},
	{"good", "Good", 3},
	{"meh", "Meh", 2},
	{"boring", "Boring", 1},
}

// AudienceMoods maps the rating distribution onto the mood meter.
func AudienceMoods(stats RatingStats) []AudienceMood {
	out := make([]AudienceMood, 0, len(audienceMoods))
	for _, am := range audienceMoods {
		n := stats.Distribution[am.rating]
		out = append(out, AudienceMood{
			Key:     am.key,
			Label:   am.label,
			Rating:  am.rating,
			Count:   n,
			Percent: sharePercent(n, stats.ReviewCount),
		})
	}
	return out
}

// sharePercent is round(count/max(total,1)*100).
func sharePercent(count, total int) int {
	return int(math.Round(float64(count) / float64(max(total, 1)) * 100))
}

// TopReview picks the standout review: highest rating, then longest
// comment, then earliest position. It reports false for no reviews.
func TopReview(reviews []models.Review) (models.Review, bool) {
	if len(reviews) == 0 {
		return models.Review{}, false
	}
	best := 0
	for i := 1; i < len(reviews); i++ {
		r, b := reviews[i], reviews[best]
		if r.Rating > b.Rating || (r.Rating == b.Rating && len([]rune(r.Comment)) > len([]rune(b.Comment))) {
			best = i
		}
	}
	return reviews[best], true
}
