// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package discovery

// Badge is a display label derived from a movie's rating aggregate.
type Badge string

// Badges in display precedence order.
const (
	BadgeTopRated    Badge = "top-rated"
	BadgeFanFavorite Badge = "fan-favorite"
	BadgeHiddenGem   Badge = "hidden-gem"
	BadgeNew         Badge = "new"
	BadgeNeedsLove   Badge = "needs-love"
)

// BadgeInfo is the presentation form of a badge.
type BadgeInfo struct {
	Key         Badge  `json:"key"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

type badgeRule struct {
	info  BadgeInfo
	match func(avg float64, count int) bool
}

// badgeRules is evaluated top to bottom; the order is the output order.
var badgeRules = []badgeRule{
	{
		info: BadgeInfo{BadgeTopRated, "Top Rated", "Elite audience scores. Certified crowd-pleaser."},
		match: func(avg float64, _ int) bool {
			return avg >= 4.6
		},
	},
	{
		info: BadgeInfo{BadgeFanFavorite, "Fan Favorite", "Lots of reviews and strong engagement."},
		match: func(_ float64, count int) bool {
			return count >= 10
		},
	},
	{
		info: BadgeInfo{BadgeHiddenGem, "Hidden Gem", "High ratings but still under the radar."},
		match: func(avg float64, count int) bool {
			return avg >= 4 && count > 0 && count < 10
		},
	},
	{
		info: BadgeInfo{BadgeNew, "New", "Fresh release with early reactions."},
		match: func(_ float64, count int) bool {
			return count > 0 && count < 3
		},
	},
	{
		info: BadgeInfo{BadgeNeedsLove, "Needs Love", "Mixed feedback so far, room to grow."},
		match: func(avg float64, _ int) bool {
			return avg > 0 && avg < 3.5
		},
	},
}

// ClassifyBadges returns every badge whose predicate holds, in precedence
// order. The result is never nil.
func ClassifyBadges(avgRating float64, reviewCount int) []Badge {
	avg := finite(avgRating)
	out := make([]Badge, 0, len(badgeRules))
	for _, rule := range badgeRules {
		if rule.match(avg, reviewCount) {
			out = append(out, rule.info.Key)
		}
	}
	return out
}

// DescribeBadges expands badge keys to their labels and descriptions.
// Unknown keys are skipped.
func DescribeBadges(badges []Badge) []BadgeInfo {
	out := make([]BadgeInfo, 0, len(badges))
	for _, b := range badges {
		if info, ok := b.Info(); ok {
			out = append(out, info)
		}
	}
	return out
}

// Info returns the label and description for b.
func (b Badge) Info() (BadgeInfo, bool) {
	for _, rule := range badgeRules {
		if rule.info.Key == b {
			return rule.info, true
		}
	}
	return BadgeInfo{}, false
}
