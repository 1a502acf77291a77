// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package catalog

import (
	"errors"
	"testing"
	"time"
)

func TestDecodeMoviesLenientNumbers(t *testing.T) {
	t.Parallel()

	data := []byte(`[
		{"movie_id": 3, "title": "Heat", "genre": "Crime", "release_year": "1995", "avg_rating": "4.5000", "review_count": 12},
		{"movie_id": "7", "title": "Up", "avg_rating": null, "duration_minutes": 96.0},
		{"movie_id": 9, "title": "Alien", "avg_rating": 3.25, "language": null}
	]`)

	movies, err := DecodeMovies(data)
	if err != nil {
		t.Fatalf("DecodeMovies: %v", err)
	}
	if len(movies) != 3 {
		t.Fatalf("expected 3 movies, got %d", len(movies))
	}

	tests := []struct {
		idx      int
		id       int
		rating   float64
		year     int
		duration int
	}{
		{0, 3, 4.5, 1995, 0},
		{1, 7, 0, 0, 96},
		{2, 9, 3.25, 0, 0},
	}
	for _, tt := range tests {
		m := movies[tt.idx]
		if m.MovieID != tt.id || m.AvgRating != tt.rating || m.ReleaseYear != tt.year || m.DurationMinutes != tt.duration {
			t.Errorf("movie %d = %+v, want id=%d rating=%v year=%d duration=%d",
				tt.idx, m, tt.id, tt.rating, tt.year, tt.duration)
		}
	}
	if movies[2].Language != "" {
		t.Errorf("null language should decode to empty, got %q", movies[2].Language)
	}
}

func TestDecodeMoviesRejectsBadRecord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		data  string
		index int
	}{
		{"fractional id", `[{"movie_id": 1, "title": "A"}, {"movie_id": 1.5, "title": "B"}]`, 1},
		{"missing title", `[{"movie_id": 1}]`, 0},
		{"blank title", `[{"movie_id": 1, "title": "   "}]`, 0},
		{"rating above five", `[{"movie_id": 1, "title": "A", "avg_rating": "5.5"}]`, 0},
		{"non numeric rating", `[{"movie_id": 1, "title": "A"}, {"movie_id": 2, "title": "B"}, {"movie_id": 3, "title": "C", "avg_rating": "high"}]`, 2},
		{"zero id", `[{"movie_id": 0, "title": "A"}]`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := DecodeMovies([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidRecord) {
				t.Errorf("expected ErrInvalidRecord, got %v", err)
			}
			var recErr *RecordError
			if !errors.As(err, &recErr) {
				t.Fatalf("expected *RecordError, got %T", err)
			}
			if recErr.Index != tt.index || recErr.Kind != "movie" {
				t.Errorf("got kind=%s index=%d, want movie/%d", recErr.Kind, recErr.Index, tt.index)
			}
		})
	}
}

func TestDecodeMoviesNotArray(t *testing.T) {
	t.Parallel()

	_, err := DecodeMovies([]byte(`{"message": "oops"}`))
	if !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("expected ErrInvalidRecord for non-array body, got %v", err)
	}
}

func TestDecodeMovieSingle(t *testing.T) {
	t.Parallel()

	m, err := DecodeMovie([]byte(`{"movie_id": 4, "title": "Inception", "avg_rating": "4.0000", "review_count": "2"}`))
	if err != nil {
		t.Fatalf("DecodeMovie: %v", err)
	}
	if m.MovieID != 4 || m.AvgRating != 4 || m.ReviewCount != 2 {
		t.Errorf("unexpected movie %+v", m)
	}

	if _, err := DecodeMovie([]byte(`{"title": "No ID"}`)); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("expected ErrInvalidRecord, got %v", err)
	}
}

func TestDecodeReviewsDates(t *testing.T) {
	t.Parallel()

	want := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)
	tests := []struct {
		name string
		date string
		want time.Time
	}{
		{"rfc1123", `"Tue, 05 Mar 2024 14:30:00 GMT"`, want},
		{"rfc3339", `"2024-03-05T14:30:00Z"`, want},
		{"rfc3339 offset", `"2024-03-05T16:30:00+02:00"`, want},
		{"mysql datetime", `"2024-03-05 14:30:00"`, want},
		{"date only", `"2024-03-05"`, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"null", `null`, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			data := []byte(`[{"review_id": 1, "movie_id": 2, "user_id": 3, "rating": "4", "review_date": ` + tt.date + `}]`)
			reviews, err := DecodeReviews(data)
			if err != nil {
				t.Fatalf("DecodeReviews: %v", err)
			}
			if !reviews[0].ReviewDate.Equal(tt.want) {
				t.Errorf("date = %v, want %v", reviews[0].ReviewDate, tt.want)
			}
			if reviews[0].Rating != 4 {
				t.Errorf("rating = %d, want 4", reviews[0].Rating)
			}
		})
	}
}

func TestDecodeReviewsRejectsOutOfRangeRating(t *testing.T) {
	t.Parallel()

	for _, rating := range []string{"0", "6", "-1", `"3.5"`} {
		data := []byte(`[{"review_id": 1, "movie_id": 2, "user_id": 3, "rating": ` + rating + `}]`)
		if _, err := DecodeReviews(data); !errors.Is(err, ErrInvalidRecord) {
			t.Errorf("rating %s: expected ErrInvalidRecord, got %v", rating, err)
		}
	}
}

func TestDecodeReviewsBadDate(t *testing.T) {
	t.Parallel()

	data := []byte(`[{"review_id": 1, "movie_id": 2, "user_id": 3, "rating": 4, "review_date": "yesterday"}]`)
	var recErr *RecordError
	if _, err := DecodeReviews(data); !errors.As(err, &recErr) || recErr.Kind != "review" {
		t.Errorf("expected review RecordError, got %v", err)
	}
}
