// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package discovery

import (
	"slices"
	"strings"
)

// Mood is a viewer mood mapped to a fixed genre set.
type Mood string

const (
	MoodHappy        Mood = "happy"
	MoodDark         Mood = "dark"
	MoodMotivational Mood = "motivational"
	MoodThriller     Mood = "thriller"
	MoodEmotional    Mood = "emotional"
	MoodAdventurous  Mood = "adventurous"
	MoodRomantic     Mood = "romantic"
)

// MoodProfile is the taxonomy entry for a mood.
type MoodProfile struct {
	Key        Mood     `json:"key"`
	Label      string   `json:"label"`
	Descriptor string   `json:"descriptor"`
	Genres     []string `json:"genres"`
}

// moodTaxonomy is fixed at build time and never mutated; accessors copy.
var moodTaxonomy = []MoodProfile{
	{MoodHappy, "Happy", "Lighthearted & fun", []string{"Comedy", "Animation", "Family", "Musical"}},
	{MoodDark, "Dark", "Intense & gripping", []string{"Horror", "Thriller", "Mystery", "Crime"}},
	{MoodMotivational, "Motivational", "Inspiring stories", []string{"Biography", "Drama", "Sport", "Documentary"}},
	{MoodThriller, "Thriller", "Edge of your seat", []string{"Thriller", "Action", "Crime", "Mystery"}},
	{MoodEmotional, "Emotional", "Heartfelt moments", []string{"Drama", "Romance", "Family"}},
	{MoodAdventurous, "Adventurous", "Epic journeys", []string{"Adventure", "Action", "Fantasy", "Sci-Fi"}},
	{MoodRomantic, "Romantic", "Love stories", []string{"Romance", "Drama", "Comedy"}},
}

// Moods lists the taxonomy in declaration order.
func Moods() []MoodProfile {
	out := make([]MoodProfile, len(moodTaxonomy))
	for i, p := range moodTaxonomy {
		p.Genres = slices.Clone(p.Genres)
		out[i] = p
	}
	return out
}

// ParseMood resolves a mood key, ignoring case and surrounding space.
func ParseMood(s string) (Mood, error) {
	key := Mood(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := key.Profile(); !ok {
		return "", newValidationError("mood", s, ErrUnknownMood)
	}
	return key, nil
}

// MoodToGenres returns the ordered genre set for m. Every declared mood has
// one; a Mood value outside the enum yields nil.
func MoodToGenres(m Mood) []string {
	p, ok := m.Profile()
	if !ok {
		return nil
	}
	return p.Genres
}

// Profile looks up the taxonomy entry for m.
func (m Mood) Profile() (MoodProfile, bool) {
	for _, p := range moodTaxonomy {
		if p.Key == m {
			p.Genres = slices.Clone(p.Genres)
			return p, true
		}
	}
	return MoodProfile{}, false
}

// MatchesMood reports whether genre belongs to the mood's genre set. A genre
// matches when it contains, or is contained in, any mood genre (ignoring
// case). Unclassified movies never match.
func MatchesMood(genre string, m Mood) bool {
	g := strings.ToLower(strings.TrimSpace(genre))
	if g == "" {
		return false
	}
	for _, mg := range MoodToGenres(m) {
		mg = strings.ToLower(mg)
		if strings.Contains(g, mg) || strings.Contains(mg, g) {
			return true
		}
	}
	return false
}
