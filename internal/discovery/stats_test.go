// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package discovery

import (
	"errors"
	"math"
	"testing"

	"github.com/tomtom215/cinescope/internal/models"
)

func reviewsWithRatings(movieID int, ratings ...int) []models.Review {
	out := make([]models.Review, len(ratings))
	for i, r := range ratings {
		out[i] = models.Review{ReviewID: i + 1, MovieID: movieID, UserID: i + 1, Rating: r}
	}
	return out
}

func TestComputeRatingStats(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		avg     float64
		stdDev  float64
		min     int
		max     int
	}{
		{name: "single", ratings: []int{4}, avg: 4, stdDev: 0, min: 4, max: 4},
		{name: "constant", ratings: []int{3, 3, 3, 3}, avg: 3, stdDev: 0, min: 3, max: 3},
		{name: "extremes", ratings: []int{1, 5}, avg: 3, stdDev: 2, min: 1, max: 5},
		{name: "mixed", ratings: []int{2, 4, 4, 4, 5, 5, 5, 1}, avg: 3.75, stdDev: math.Sqrt(1.9375), min: 1, max: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, err := ComputeRatingStats(reviewsWithRatings(1, tt.ratings...))
			if err != nil {
				t.Fatalf("ComputeRatingStats() error = %v", err)
			}
			if stats.ReviewCount != len(tt.ratings) {
				t.Errorf("ReviewCount = %d, want %d", stats.ReviewCount, len(tt.ratings))
			}
			if math.Abs(stats.AvgRating-tt.avg) > 1e-9 {
				t.Errorf("AvgRating = %v, want %v", stats.AvgRating, tt.avg)
			}
			if math.Abs(stats.StdDev-tt.stdDev) > 1e-9 {
				t.Errorf("StdDev = %v, want %v", stats.StdDev, tt.stdDev)
			}
			if stats.MinRating == nil || *stats.MinRating != tt.min {
				t.Errorf("MinRating = %v, want %d", stats.MinRating, tt.min)
			}
			if stats.MaxRating == nil || *stats.MaxRating != tt.max {
				t.Errorf("MaxRating = %v, want %d", stats.MaxRating, tt.max)
			}

			total := 0
			for r := MinStars; r <= MaxStars; r++ {
				total += stats.Distribution[r]
			}
			if total != len(tt.ratings) {
				t.Errorf("distribution sums to %d, want %d", total, len(tt.ratings))
			}
		})
	}
}

func TestComputeRatingStatsEmpty(t *testing.T) {
	stats, err := ComputeRatingStats(nil)
	if err != nil {
		t.Fatalf("ComputeRatingStats(nil) error = %v", err)
	}
	if stats.ReviewCount != 0 || stats.AvgRating != 0 || stats.StdDev != 0 {
		t.Errorf("expected zero aggregate, got %+v", stats)
	}
	if stats.MinRating != nil || stats.MaxRating != nil {
		t.Error("expected nil min and max for empty input")
	}
	for r := MinStars; r <= MaxStars; r++ {
		n, ok := stats.Distribution[r]
		if !ok || n != 0 {
			t.Errorf("Distribution[%d] = %d (present=%v), want 0", r, n, ok)
		}
	}
}

func TestComputeRatingStatsRejectsOutOfRange(t *testing.T) {
	for _, rating := range []int{0, -1, 6, 100} {
		_, err := ComputeRatingStats(reviewsWithRatings(1, 3, rating))
		if !errors.Is(err, ErrRatingOutOfRange) {
			t.Errorf("rating %d: error = %v, want ErrRatingOutOfRange", rating, err)
		}
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("rating %d: expected *ValidationError, got %T", rating, err)
		}
		if ve.Field != "rating" {
			t.Errorf("Field = %q, want rating", ve.Field)
		}
	}
}

func TestComputeRatingStatsOrderIndependent(t *testing.T) {
	a, err := ComputeRatingStats(reviewsWithRatings(1, 1, 2, 5, 4))
	if err != nil {
		t.Fatal(err)
	}
	b, err := ComputeRatingStats(reviewsWithRatings(1, 4, 5, 1, 2))
	if err != nil {
		t.Fatal(err)
	}
	if a.AvgRating != b.AvgRating || a.StdDev != b.StdDev || *a.MinRating != *b.MinRating || *a.MaxRating != *b.MaxRating {
		t.Errorf("stats differ by order: %+v vs %+v", a, b)
	}
	for r := MinStars; r <= MaxStars; r++ {
		if a.Distribution[r] != b.Distribution[r] {
			t.Errorf("Distribution[%d]: %d vs %d", r, a.Distribution[r], b.Distribution[r])
		}
	}
}

func TestAnnotate(t *testing.T) {
	movies := []models.Movie{
		{MovieID: 1, Title: "Reviewed"},
		{MovieID: 2, Title: "Backend aggregate", AvgRating: 3.3, ReviewCount: 7},
	}
	reviews := map[int][]models.Review{1: reviewsWithRatings(1, 4, 5)}

	got, err := Annotate(movies, reviews)
	if err != nil {
		t.Fatalf("Annotate() error = %v", err)
	}
	if got[0].AvgRating != 4.5 || got[0].ReviewCount != 2 || got[0].RatingStdDev != 0.5 {
		t.Errorf("annotated movie = %+v", got[0])
	}
	if got[1].AvgRating != 3.3 || got[1].ReviewCount != 7 {
		t.Errorf("movie without review data changed: %+v", got[1])
	}
	if movies[0].ReviewCount != 0 {
		t.Error("Annotate mutated its input")
	}

	if _, err := Annotate(movies, map[int][]models.Review{1: reviewsWithRatings(1, 9)}); !IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestPopularityScore(t *testing.T) {
	m := models.Movie{AvgRating: 4, ReviewCount: 10}
	if got := PopularityScore(m); math.Abs(got-5.8) > 1e-9 {
		t.Errorf("PopularityScore() = %v, want 5.8", got)
	}
	if got := PopularityScore(models.Movie{AvgRating: math.NaN()}); got != 0 {
		t.Errorf("PopularityScore(NaN) = %v, want 0", got)
	}
}
