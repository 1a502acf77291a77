// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package discovery

import (
	"cmp"
	"slices"
	"time"

	"github.com/tomtom215/cinescope/internal/models"
)

// Admin dashboard limits.
const (
	AdminTopLimit           = 5
	AdminRecentLimit        = 10
	AdminTopRatedMinReviews = 3
	ActiveReviewerWindow    = 30 * 24 * time.Hour
)

// MovieSummary is a movie with aggregates recomputed from raw reviews.
type MovieSummary struct {
	MovieID     int     `json:"movie_id"`
	Title       string  `json:"title"`
	PosterURL   string  `json:"poster_url,omitempty"`
	ReviewCount int     `json:"review_count"`
	AvgRating   float64 `json:"avg_rating"`
}

// AnalyticsOverview holds catalog-wide totals.
type AnalyticsOverview struct {
	TotalMovies          int `json:"total_movies"`
	TotalReviewers       int `json:"total_reviewers"`
	TotalReviews         int `json:"total_reviews"`
	ActiveReviewers30d   int `json:"active_reviewers_30d"`
	MoviesWithoutReviews int `json:"movies_without_reviews"`
}

// AdminAnalytics is the admin dashboard payload.
type AdminAnalytics struct {
	Overview           AnalyticsOverview `json:"overview"`
	TopReviewedMovies  []MovieSummary    `json:"top_reviewed_movies"`
	TopRatedMovies     []MovieSummary    `json:"top_rated_movies"`
	RecentReviews      []models.Review   `json:"recent_reviews"`
	RatingDistribution []RatingBucket    `json:"rating_distribution"`
}

// BuildAdminAnalytics aggregates every review in the catalog. Reviews of
// movies missing from the catalog still count toward the totals. Rankings
// break ties by catalog order.
func BuildAdminAnalytics(catalog []models.Movie, reviews []models.Review, now time.Time) (AdminAnalytics, error) {
	overall, err := ComputeRatingStats(reviews)
	if err != nil {
		return AdminAnalytics{}, err
	}

	byMovie := make(map[int][]models.Review, len(catalog))
	reviewers := make(map[int]struct{})
	active := make(map[int]struct{})
	for _, rv := range reviews {
		byMovie[rv.MovieID] = append(byMovie[rv.MovieID], rv)
		reviewers[rv.UserID] = struct{}{}
		if !rv.ReviewDate.IsZero() && now.Sub(rv.ReviewDate) <= ActiveReviewerWindow {
			active[rv.UserID] = struct{}{}
		}
	}

	summaries := make([]MovieSummary, 0, len(catalog))
	without := 0
	for _, m := range catalog {
		stats, err := ComputeRatingStats(byMovie[m.MovieID])
		if err != nil {
			return AdminAnalytics{}, err
		}
		if stats.ReviewCount == 0 {
			without++
		}
		summaries = append(summaries, MovieSummary{
			MovieID:     m.MovieID,
			Title:       m.Title,
			PosterURL:   m.PosterURL,
			ReviewCount: stats.ReviewCount,
			AvgRating:   round2(stats.AvgRating),
		})
	}

	topReviewed := slices.Clone(summaries)
	slices.SortStableFunc(topReviewed, func(a, b MovieSummary) int {
		return cmp.Compare(b.ReviewCount, a.ReviewCount)
	})

	topRated := make([]MovieSummary, 0, len(summaries))
	for _, s := range summaries {
		if s.ReviewCount >= AdminTopRatedMinReviews {
			topRated = append(topRated, s)
		}
	}
	slices.SortStableFunc(topRated, func(a, b MovieSummary) int {
		return cmp.Compare(b.AvgRating, a.AvgRating)
	})

	recent := slices.Clone(reviews)
	slices.SortStableFunc(recent, func(a, b models.Review) int {
		return b.ReviewDate.Compare(a.ReviewDate)
	})
	if recent == nil {
		recent = []models.Review{}
	}

	return AdminAnalytics{
		Overview: AnalyticsOverview{
			TotalMovies:          len(catalog),
			TotalReviewers:       len(reviewers),
			TotalReviews:         len(reviews),
			ActiveReviewers30d:   len(active),
			MoviesWithoutReviews: without,
		},
		TopReviewedMovies:  topReviewed[:min(AdminTopLimit, len(topReviewed))],
		TopRatedMovies:     topRated[:min(AdminTopLimit, len(topRated))],
		RecentReviews:      recent[:min(AdminRecentLimit, len(recent))],
		RatingDistribution: RatingBreakdown(overall),
	}, nil
}
