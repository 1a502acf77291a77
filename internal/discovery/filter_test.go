// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package discovery

import (
	"errors"
	"slices"
	"testing"

	"github.com/tomtom215/cinescope/internal/models"
)

func testCatalog() []models.Movie {
	return []models.Movie{
		{MovieID: 1, Title: "Zodiac", Genre: "Crime", ReleaseYear: 2007, AvgRating: 4.2, ReviewCount: 12, DurationMinutes: 157},
		{MovieID: 2, Title: "Inside Out", Genre: "Animation", ReleaseYear: 2015, AvgRating: 4.7, ReviewCount: 30, DurationMinutes: 95},
		{MovieID: 3, Title: "Hereditary", Genre: "Horror", ReleaseYear: 2018, AvgRating: 3.9, ReviewCount: 8, DurationMinutes: 127},
		{MovieID: 4, Title: "amélie", Genre: "Romance", ReleaseYear: 2001, AvgRating: 4.4, ReviewCount: 4},
		{MovieID: 5, Title: "Mad Max: Fury Road", Genre: "Action, Adventure", ReleaseYear: 2015, AvgRating: 4.5, ReviewCount: 20, DurationMinutes: 120},
		{MovieID: 6, Title: "Untitled Draft"},
	}
}

func movieIDs(movies []models.Movie) []int {
	out := make([]int, len(movies))
	for i, m := range movies {
		out[i] = m.MovieID
	}
	return out
}

func floatPtr(v float64) *float64 { return &v }

func TestFilterMovies(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []int
	}{
		{"no criteria", Criteria{}, []int{1, 2, 3, 4, 5, 6}},
		{"search ignores case", Criteria{Search: "IN"}, []int{2}},
		{"genre exact", Criteria{Genre: "Horror"}, []int{3}},
		{"genre all", Criteria{Genre: GenreAll}, []int{1, 2, 3, 4, 5, 6}},
		{"genre is case sensitive", Criteria{Genre: "horror"}, []int{}},
		{"mood bypasses genre", Criteria{Genre: "Horror", Mood: MoodHappy}, []int{2}},
		{"mood substring genre", Criteria{Mood: MoodAdventurous}, []int{5}},
		{"mood skips unclassified", Criteria{Mood: MoodRomantic}, []int{4}},
		{"min rating", Criteria{MinRating: floatPtr(4.4)}, []int{2, 4, 5}},
		{"min rating zero keeps unrated", Criteria{MinRating: floatPtr(0)}, []int{1, 2, 3, 4, 5, 6}},
		{"combined", Criteria{Search: "a", Mood: MoodThriller, MinRating: floatPtr(4.3)}, []int{5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterMovies(testCatalog(), tt.criteria)
			if got == nil {
				t.Fatal("FilterMovies returned nil")
			}
			if ids := movieIDs(got); !slices.Equal(ids, tt.want) {
				t.Errorf("FilterMovies() = %v, want %v", ids, tt.want)
			}
		})
	}
}

func TestFilterMoviesIdempotent(t *testing.T) {
	c := Criteria{Search: "e", MinRating: floatPtr(4)}
	once := FilterMovies(testCatalog(), c)
	twice := FilterMovies(once, c)
	if !slices.Equal(movieIDs(once), movieIDs(twice)) {
		t.Errorf("filter not idempotent: %v then %v", movieIDs(once), movieIDs(twice))
	}
}

func TestParseCriteria(t *testing.T) {
	c, err := ParseCriteria("max", "All", " Thriller ", "4.5")
	if err != nil {
		t.Fatalf("ParseCriteria() error = %v", err)
	}
	if c.Mood != MoodThriller || c.MinRating == nil || *c.MinRating != 4.5 {
		t.Errorf("unexpected criteria %+v", c)
	}

	c, err = ParseCriteria("", "", "", "All")
	if err != nil {
		t.Fatalf("ParseCriteria() error = %v", err)
	}
	if c.MinRating != nil || c.Mood != "" {
		t.Errorf("expected disabled filters, got %+v", c)
	}

	if _, err := ParseCriteria("", "", "gloomy", ""); !errors.Is(err, ErrUnknownMood) {
		t.Errorf("unknown mood error = %v", err)
	}
	for _, bad := range []string{"high", "NaN", "Inf"} {
		if _, err := ParseCriteria("", "", "", bad); !errors.Is(err, ErrInvalidMinRating) {
			t.Errorf("min rating %q error = %v", bad, err)
		}
	}
}

func TestSortMovies(t *testing.T) {
	tests := []struct {
		key  SortKey
		want []int
	}{
		{SortNewest, []int{3, 2, 5, 1, 4, 6}},
		{SortOldest, []int{6, 4, 1, 2, 5, 3}},
		{SortRatingHigh, []int{2, 5, 4, 1, 3, 6}},
		{SortRatingLow, []int{6, 3, 1, 4, 5, 2}},
		{SortTitleAsc, []int{4, 3, 2, 5, 6, 1}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			catalog := testCatalog()
			got, err := SortMovies(catalog, tt.key)
			if err != nil {
				t.Fatalf("SortMovies() error = %v", err)
			}
			if ids := movieIDs(got); !slices.Equal(ids, tt.want) {
				t.Errorf("SortMovies(%s) = %v, want %v", tt.key, ids, tt.want)
			}
			if !slices.Equal(movieIDs(catalog), []int{1, 2, 3, 4, 5, 6}) {
				t.Error("SortMovies reordered its input")
			}
		})
	}
}

func TestSortMoviesStableTies(t *testing.T) {
	movies := []models.Movie{
		{MovieID: 1, Title: "A", ReleaseYear: 2020},
		{MovieID: 2, Title: "B", ReleaseYear: 2020},
		{MovieID: 3, Title: "C", ReleaseYear: 2020},
	}
	for _, key := range []SortKey{SortNewest, SortOldest, SortRatingHigh, SortRatingLow} {
		got, err := SortMovies(movies, key)
		if err != nil {
			t.Fatal(err)
		}
		if ids := movieIDs(got); !slices.Equal(ids, []int{1, 2, 3}) {
			t.Errorf("%s reordered ties: %v", key, ids)
		}
	}
}

func TestSortMoviesTitleReverse(t *testing.T) {
	asc, err := SortMovies(testCatalog(), SortTitleAsc)
	if err != nil {
		t.Fatal(err)
	}
	desc, err := SortMovies(testCatalog(), SortTitleDesc)
	if err != nil {
		t.Fatal(err)
	}
	reversed := movieIDs(desc)
	slices.Reverse(reversed)
	if !slices.Equal(movieIDs(asc), reversed) {
		t.Errorf("title-asc %v is not the reverse of title-desc %v", movieIDs(asc), movieIDs(desc))
	}
}

func TestSortMoviesUnknownKey(t *testing.T) {
	_, err := SortMovies(testCatalog(), SortKey("popularity"))
	if !errors.Is(err, ErrUnknownSortKey) {
		t.Errorf("error = %v, want ErrUnknownSortKey", err)
	}
	if _, err := ParseSortKey("Rating-High"); err != nil {
		t.Errorf("ParseSortKey() error = %v", err)
	}
}

func TestGenreOptions(t *testing.T) {
	got := GenreOptions(testCatalog())
	want := []string{"All", "Crime", "Animation", "Horror", "Romance", "Action, Adventure"}
	if !slices.Equal(got, want) {
		t.Errorf("GenreOptions() = %v, want %v", got, want)
	}
	if got := GenreOptions(nil); !slices.Equal(got, []string{"All"}) {
		t.Errorf("GenreOptions(nil) = %v", got)
	}
}

func TestSuggestions(t *testing.T) {
	if got := Suggestions(testCatalog(), "  ", 5); len(got) != 0 {
		t.Errorf("blank query returned %v", movieIDs(got))
	}
	got := Suggestions(testCatalog(), "e", 2)
	if ids := movieIDs(got); !slices.Equal(ids, []int{2, 3}) {
		t.Errorf("Suggestions() = %v, want [2 3]", ids)
	}
	if got := Suggestions(testCatalog(), "a", 0); len(got) != DefaultSuggestionLimit {
		t.Errorf("default limit returned %d items", len(got))
	}
}

func TestMoods(t *testing.T) {
	moods := Moods()
	if len(moods) != 7 || moods[0].Key != MoodHappy || moods[6].Key != MoodRomantic {
		t.Fatalf("unexpected taxonomy %+v", moods)
	}
	moods[0].Genres[0] = "Mutated"
	if MoodToGenres(MoodHappy)[0] != "Comedy" {
		t.Error("Moods exposed the taxonomy for mutation")
	}

	genres := MoodToGenres(MoodDark)
	genres[0] = "Mutated"
	if MoodToGenres(MoodDark)[0] != "Horror" {
		t.Error("MoodToGenres exposed the taxonomy for mutation")
	}
	if MoodToGenres(Mood("sleepy")) != nil {
		t.Error("expected nil genres for unknown mood")
	}

	for _, p := range Moods() {
		if len(MoodToGenres(p.Key)) == 0 {
			t.Errorf("mood %s has no genres", p.Key)
		}
	}
}

func TestParseMood(t *testing.T) {
	m, err := ParseMood(" Dark ")
	if err != nil || m != MoodDark {
		t.Errorf("ParseMood() = %q, %v", m, err)
	}
	_, err = ParseMood("sleepy")
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "mood" {
		t.Errorf("expected mood validation error, got %v", err)
	}
}
