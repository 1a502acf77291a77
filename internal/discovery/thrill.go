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

// Thrill weights; they sum to 1.
const (
	ThrillWeightVolatility = 0.45
	ThrillWeightMomentum   = 0.35
	ThrillWeightHeat       = 0.20
)

// RecentWindow is the look-back for momentum.
const RecentWindow = 7 * 24 * time.Hour

const (
	momentumFloor   = 5
	momentumCeiling = 20
	// stdDevForFullVolatility is the spread at which volatility saturates.
	stdDevForFullVolatility = 1.5
)

// ThrillScore measures how divisive and how active a movie's reviews are.
type ThrillScore struct {
	StdDev        float64 `json:"std_dev"`
	Volatility    float64 `json:"volatility"`
	Momentum      float64 `json:"momentum"`
	AudienceHeat  float64 `json:"audience_heat"`
	RecentReviews int     `json:"recent_reviews"`
	ThrillScore   int     `json:"thrill_score"`
	Label         string  `json:"label"`
}

// ComputeThrillScore scores reviews relative to now.
//
// A review is recent when its date is set and now-date <= RecentWindow, so
// future-dated reviews count as recent. Momentum is normalised against the
// review count clamped to [5,20]. Every component is clamped to [0,100].
func ComputeThrillScore(reviews []models.Review, avgRating float64, reviewCount int, now time.Time) ThrillScore {
	ratings := make([]float64, 0, len(reviews))
	recent := 0
	for _, rv := range reviews {
		r := float64(rv.Rating)
		if !math.IsNaN(r) && !math.IsInf(r, 0) {
			ratings = append(ratings, r)
		}
		if isRecent(rv.ReviewDate, now) {
			recent++
		}
	}

	stdDev := populationStdDev(ratings)
	volatility := clampPercent(stdDev / stdDevForFullVolatility * 100)

	base := float64(min(momentumCeiling, max(momentumFloor, reviewCount)))
	momentum := clampPercent(float64(recent) / base * 100)

	heat := clampPercent(finite(avgRating) / MaxStars * 100)

	thrill := math.Round(clampPercent(ThrillWeightVolatility*volatility +
		ThrillWeightMomentum*momentum +
		ThrillWeightHeat*heat))

	return ThrillScore{
		StdDev:        round2(stdDev),
		Volatility:    math.Round(volatility),
		Momentum:      math.Round(momentum),
		AudienceHeat:  math.Round(heat),
		RecentReviews: recent,
		ThrillScore:   int(thrill),
		Label:         thrillLabel(int(thrill)),
	}
}

func isRecent(date, now time.Time) bool {
	return !date.IsZero() && now.Sub(date) <= RecentWindow
}

func thrillLabel(score int) string {
	switch {
	case score >= 70:
		return "Peak suspense"
	case score >= 40:
		return "Rising tension"
	default:
		return "Low simmer"
	}
}

func populationStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	return math.Sqrt(sq / float64(len(values)))
}
