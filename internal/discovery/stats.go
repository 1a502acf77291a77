// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package discovery

import (
	"math"

	"github.com/tomtom215/cinescope/internal/models"
)

// Valid star rating range.
const (
	MinStars = 1
	MaxStars = 5
)

// RatingStats is the per-movie aggregate computed from a review list.
// MinRating and MaxRating are nil when there are no reviews.
type RatingStats struct {
	ReviewCount      int         `json:"review_count"`
	AvgRating        float64     `json:"avg_rating"`
	AvgRatingRounded float64     `json:"avg_rating_rounded"`
	MinRating        *int        `json:"min_rating"`
	MaxRating        *int        `json:"max_rating"`
	StdDev           float64     `json:"std_dev"`
	Distribution     map[int]int `json:"distribution"`
}

// ComputeRatingStats aggregates the reviews of a single movie.
//
// Every rating must lie in [1,5]. The first out-of-range rating aborts the
// call with a *ValidationError wrapping ErrRatingOutOfRange. StdDev is the
// population standard deviation. The result does not depend on review order.
func ComputeRatingStats(reviews []models.Review) (RatingStats, error) {
	stats := RatingStats{
		ReviewCount:  len(reviews),
		Distribution: make(map[int]int, MaxStars),
	}
	for r := MinStars; r <= MaxStars; r++ {
		stats.Distribution[r] = 0
	}

	if len(reviews) == 0 {
		return stats, nil
	}

	lo, hi, sum := MaxStars, MinStars, 0
	for _, rv := range reviews {
		if rv.Rating < MinStars || rv.Rating > MaxStars {
			return RatingStats{}, newValidationError("rating", rv.Rating, ErrRatingOutOfRange)
		}
		stats.Distribution[rv.Rating]++
		sum += rv.Rating
		lo = min(lo, rv.Rating)
		hi = max(hi, rv.Rating)
	}

	n := float64(len(reviews))
	mean := float64(sum) / n

	var sq float64
	for _, rv := range reviews {
		d := float64(rv.Rating) - mean
		sq += d * d
	}

	stats.AvgRating = mean
	stats.AvgRatingRounded = round1(mean)
	stats.MinRating = &lo
	stats.MaxRating = &hi
	stats.StdDev = math.Sqrt(sq / n)
	return stats, nil
}

// Annotate returns copies of movies with derived aggregates filled in from
// reviewsByMovie. Movies with no entry in the map keep the aggregates they
// arrived with (the backend already reports avg_rating and review_count).
func Annotate(movies []models.Movie, reviewsByMovie map[int][]models.Review) ([]models.Movie, error) {
	out := make([]models.Movie, len(movies))
	for i, m := range movies {
		reviews, ok := reviewsByMovie[m.MovieID]
		if ok {
			stats, err := ComputeRatingStats(reviews)
			if err != nil {
				return nil, err
			}
			m.AvgRating = stats.AvgRating
			m.ReviewCount = stats.ReviewCount
			m.RatingStdDev = stats.StdDev
		}
		out[i] = m
	}
	return out, nil
}

// PopularityScore ranks movies by rating weighted with review volume.
func PopularityScore(m models.Movie) float64 {
	return finite(m.AvgRating)*0.7 + float64(m.ReviewCount)*0.3
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func clampPercent(v float64) float64 {
	return clamp(v, 0, 100)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
