// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package discovery

import (
	"math"
	"time"

	"github.com/tomtom215/cinescope/internal/models"
)

// Trust curve constants. The curve shape is policy; what must hold is that
// consistency falls monotonically with spread, credibility saturates with
// volume, and every score stays in [0,100].
const (
	// ConsistencyPenaltyPerStar is the consistency lost per star of std-dev.
	ConsistencyPenaltyPerStar = 25.0

	// CredibilityScale is the review count at which credibility reaches ~63%.
	CredibilityScale = 8.0

	TrustWeightConsistency = 0.35
	TrustWeightCredibility = 0.40
	TrustWeightRating      = 0.25
)

// Trust levels.
const (
	TrustLevelHigh     = "Highly Trustworthy"
	TrustLevelReliable = "Reliable"
	TrustLevelMixed    = "Mixed Reviews"
	TrustLevelCaution  = "Use with Caution"
)

// TrustScore summarises how much a movie's rating can be relied on.
type TrustScore struct {
	RatingConsistency   float64 `json:"rating_consistency"`
	ReviewerCredibility float64 `json:"reviewer_credibility"`
	TrustScore          float64 `json:"trust_score"`
	TrustLevel          string  `json:"trust_level"`
}

// ComputeTrustScore derives consistency, credibility and the combined trust
// score from an aggregate.
func ComputeTrustScore(stats RatingStats) TrustScore {
	consistency := clampPercent(100 - finite(stats.StdDev)*ConsistencyPenaltyPerStar)

	n := math.Max(0, float64(stats.ReviewCount))
	credibility := clampPercent(100 * (1 - math.Exp(-n/CredibilityScale)))

	ratingPct := clampPercent(finite(stats.AvgRating) / MaxStars * 100)
	trust := clampPercent(TrustWeightConsistency*consistency +
		TrustWeightCredibility*credibility +
		TrustWeightRating*ratingPct)

	return TrustScore{
		RatingConsistency:   round1(consistency),
		ReviewerCredibility: round1(credibility),
		TrustScore:          round1(trust),
		TrustLevel:          trustLevel(trust),
	}
}

func trustLevel(score float64) string {
	switch {
	case score >= 80:
		return TrustLevelHigh
	case score >= 60:
		return TrustLevelReliable
	case score >= 40:
		return TrustLevelMixed
	default:
		return TrustLevelCaution
	}
}

// TrustCell is one review's contribution to the trust heatmap.
type TrustCell struct {
	ReviewID        int       `json:"review_id"`
	UserID          int       `json:"user_id"`
	Name            string    `json:"name,omitempty"`
	Rating          int       `json:"rating"`
	UserReviewCount int       `json:"user_review_count"`
	Activity        float64   `json:"activity"`
	Proximity       float64   `json:"proximity"`
	Credibility     float64   `json:"credibility"`
	ReviewDate      time.Time `json:"review_date"`
}

// TrustHeatmap pairs the movie's trust score with per-review cells.
type TrustHeatmap struct {
	Stats TrustScore  `json:"stats"`
	Cells []TrustCell `json:"cells"`
}

// ComputeTrustHeatmap scores each reviewer by activity (how much they review
// overall) and proximity (how close they sit to the consensus).
// userReviewCounts maps a user ID to their total review count; users missing
// from the map count as having written one review.
func ComputeTrustHeatmap(reviews []models.Review, userReviewCounts map[int]int) (TrustHeatmap, error) {
	stats, err := ComputeRatingStats(reviews)
	if err != nil {
		return TrustHeatmap{}, err
	}

	cells := make([]TrustCell, 0, len(reviews))
	for _, rv := range reviews {
		count := userReviewCounts[rv.UserID]
		if count < 1 {
			count = 1
		}
		activity := math.Min(100, 30+float64(count)*7)
		proximity := math.Max(0, 100-math.Abs(float64(rv.Rating)-stats.AvgRating)*40)
		cells = append(cells, TrustCell{
			ReviewID:        rv.ReviewID,
			UserID:          rv.UserID,
			Name:            rv.Name,
			Rating:          rv.Rating,
			UserReviewCount: count,
			Activity:        round1(activity),
			Proximity:       round1(proximity),
			Credibility:     round1(activity*0.6 + proximity*0.4),
			ReviewDate:      rv.ReviewDate,
		})
	}

	return TrustHeatmap{Stats: ComputeTrustScore(stats), Cells: cells}, nil
}
