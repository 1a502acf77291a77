// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package discovery

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/tomtom215/cinescope/internal/models"
)

// Planner defaults.
const (
	DefaultNightPicks      = 3
	AssumedDurationMinutes = 120
)

const defaultSnackMood = MoodHappy

var snackSuggestions = map[Mood][]string{
	MoodHappy:        {"🍿 Classic Popcorn & Candy", "🍕 Pizza Party Box", "🍦 Ice Cream Sundae Bar"},
	MoodDark:         {"🍫 Dark Chocolate & Red Wine", "🥤 Energy Drinks & Chips", "🍪 Cookies & Cold Brew"},
	MoodMotivational: {"🥗 Healthy Snack Platter", "🥤 Protein Smoothies", "🍎 Fresh Fruit & Nuts"},
	MoodThriller:     {"🌶️ Spicy Nachos", "🍕 Hot Wings & Cola", "🍿 Buttery Popcorn & Soda"},
	MoodEmotional:    {"🍦 Ice Cream & Tissues", "🍫 Chocolate & Tea", "🧁 Cupcakes & Warm Milk"},
	MoodAdventurous:  {"🌮 Tacos & Margaritas", "🍔 Burgers & Fries", "🍿 Trail Mix & Lemonade"},
	MoodRomantic:     {"🍷 Wine & Cheese", "🍫 Strawberries & Chocolate", "🍰 Dessert Platter"},
}

// NightPlan describes the constraints of a movie night.
type NightPlan struct {
	Mood             Mood `json:"mood,omitempty"`
	AvailableMinutes int  `json:"available_minutes"`
	People           int  `json:"people"`
	Picks            int  `json:"picks,omitempty"`
}

// NightPick is one planned movie.
type NightPick struct {
	Movie  models.Movie `json:"movie"`
	Snack  string       `json:"snack_suggestion"`
	Reason string       `json:"reason"`
	Score  float64      `json:"score"`
}

// PlanMovieNight picks the most popular movies that fit the available time
// and, when set, the mood. An empty result is not an error.
func PlanMovieNight(catalog []models.Movie, plan NightPlan) ([]NightPick, error) {
	if plan.People <= 0 {
		return nil, newValidationError("people", plan.People, ErrInvalidPlan)
	}
	if plan.AvailableMinutes <= 0 {
		return nil, newValidationError("available_minutes", plan.AvailableMinutes, ErrInvalidPlan)
	}
	if plan.Mood != "" && MoodToGenres(plan.Mood) == nil {
		return nil, newValidationError("mood", string(plan.Mood), ErrUnknownMood)
	}
	picks := plan.Picks
	if picks <= 0 {
		picks = DefaultNightPicks
	}

	out := []NightPick{}
	for _, m := range catalog {
		duration := m.DurationMinutes
		if duration <= 0 {
			duration = AssumedDurationMinutes
		}
		if duration > plan.AvailableMinutes {
			continue
		}
		if plan.Mood != "" && !MatchesMood(m.Genre, plan.Mood) {
			continue
		}
		out = append(out, NightPick{
			Movie:  m,
			Snack:  snackFor(plan.Mood, m.MovieID),
			Reason: nightReason(plan, m),
			Score:  PopularityScore(m),
		})
	}

	slices.SortStableFunc(out, func(a, b NightPick) int { return cmp.Compare(b.Score, a.Score) })
	if len(out) > picks {
		out = out[:picks]
	}
	return out, nil
}

func snackFor(mood Mood, movieID int) string {
	snacks, ok := snackSuggestions[mood]
	if !ok {
		snacks = snackSuggestions[defaultSnackMood]
	}
	i := movieID % len(snacks)
	if i < 0 {
		i += len(snacks)
	}
	return snacks[i]
}

func nightReason(plan NightPlan, m models.Movie) string {
	audience := "people"
	if plan.People == 1 {
		audience = "person"
	}
	var reason string
	if plan.Mood != "" {
		reason = fmt.Sprintf("Perfect %s movie for %d %s", plan.Mood, plan.People, audience)
	} else {
		reason = fmt.Sprintf("Highly rated choice for %d %s", plan.People, audience)
	}
	if m.DurationMinutes > 0 {
		reason += fmt.Sprintf(" (%d min)", m.DurationMinutes)
	}
	return reason
}
