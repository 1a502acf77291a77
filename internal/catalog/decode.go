// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinescope/internal/metrics"
	"github.com/tomtom215/cinescope/internal/models"
	"github.com/tomtom215/cinescope/internal/validation"
)

// The backend serializes MySQL rows directly, so numbers can arrive as JSON
// strings (DECIMAL averages come out as "4.5000") and dates use Flask's
// RFC 1123 format. The flex types below accept every shape seen in practice.

var errNotInteger = errors.New("not an integer")

func isNull(b []byte) bool {
	return len(b) == 0 || bytes.Equal(b, []byte("null"))
}

// scalarText returns the raw text of a JSON number or the contents of a
// JSON string.
func scalarText(b []byte) (string, error) {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	}
	return string(b), nil
}

type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	if isNull(b) {
		*f = 0
		return nil
	}
	s, err := scalarText(b)
	if err != nil {
		return err
	}
	if s == "" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("invalid number %q", s)
	}
	*f = flexFloat(v)
	return nil
}

type flexInt int

func (i *flexInt) UnmarshalJSON(b []byte) error {
	var f flexFloat
	if err := f.UnmarshalJSON(b); err != nil {
		return err
	}
	if float64(f) != math.Trunc(float64(f)) || math.Abs(float64(f)) > math.MaxInt32 {
		return fmt.Errorf("%w: %v", errNotInteger, float64(f))
	}
	*i = flexInt(f)
	return nil
}

type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	if isNull(b) {
		*s = ""
		return nil
	}
	text, err := scalarText(b)
	if err != nil {
		return err
	}
	*s = flexString(text)
	return nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	http.TimeFormat,
	time.RFC1123,
	time.RFC1123Z,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.DateOnly,
}

type flexTime time.Time

func (t *flexTime) UnmarshalJSON(b []byte) error {
	if isNull(b) {
		*t = flexTime{}
		return nil
	}
	s, err := scalarText(b)
	if err != nil {
		return err
	}
	if s == "" {
		*t = flexTime{}
		return nil
	}
	parsed, err := parseTime(s)
	if err != nil {
		return err
	}
	*t = flexTime(parsed)
	return nil
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

type wireMovie struct {
	MovieID         flexInt    `json:"movie_id"`
	Title           flexString `json:"title"`
	Genre           flexString `json:"genre"`
	Language        flexString `json:"language"`
	ReleaseYear     flexInt    `json:"release_year"`
	DurationMinutes flexInt    `json:"duration_minutes"`
	Description     flexString `json:"description"`
	PosterURL       flexString `json:"poster_url"`
	AvgRating       flexFloat  `json:"avg_rating"`
	ReviewCount     flexInt    `json:"review_count"`
}

func (w wireMovie) model() models.Movie {
	return models.Movie{
		MovieID:         int(w.MovieID),
		Title:           string(w.Title),
		Genre:           string(w.Genre),
		Language:        string(w.Language),
		ReleaseYear:     int(w.ReleaseYear),
		DurationMinutes: int(w.DurationMinutes),
		Description:     string(w.Description),
		PosterURL:       string(w.PosterURL),
		AvgRating:       float64(w.AvgRating),
		ReviewCount:     int(w.ReviewCount),
	}
}

type wireReview struct {
	ReviewID   flexInt    `json:"review_id"`
	MovieID    flexInt    `json:"movie_id"`
	UserID     flexInt    `json:"user_id"`
	Name       flexString `json:"name"`
	Title      flexString `json:"title"`
	Rating     flexInt    `json:"rating"`
	Comment    flexString `json:"comment"`
	ReviewDate flexTime   `json:"review_date"`
}

func (w wireReview) model() models.Review {
	return models.Review{
		ReviewID:   int(w.ReviewID),
		MovieID:    int(w.MovieID),
		UserID:     int(w.UserID),
		Name:       string(w.Name),
		Title:      string(w.Title),
		Rating:     int(w.Rating),
		Comment:    string(w.Comment),
		ReviewDate: time.Time(w.ReviewDate),
	}
}

// DecodeMovies parses a JSON array of movie records. The first malformed or
// invalid record fails the whole batch with a *RecordError.
func DecodeMovies(data []byte) ([]models.Movie, error) {
	return decodeArray(data, "movie", decodeMovie)
}

// DecodeMovie parses a single movie object.
func DecodeMovie(data []byte) (models.Movie, error) {
	m, err := decodeMovie(data)
	if err != nil {
		metrics.BackendRecordsRejected.WithLabelValues("movie").Inc()
		return models.Movie{}, &RecordError{Kind: "movie", Index: 0, Err: err}
	}
	return m, nil
}

// DecodeReviews parses a JSON array of review records.
func DecodeReviews(data []byte) ([]models.Review, error) {
	return decodeArray(data, "review", decodeReview)
}

func decodeMovie(raw []byte) (models.Movie, error) {
	var w wireMovie
	if err := json.Unmarshal(raw, &w); err != nil {
		return models.Movie{}, err
	}
	m := w.model()
	if verr := validation.ValidateStruct(&m); verr != nil {
		return models.Movie{}, verr
	}
	return m, nil
}

func decodeReview(raw []byte) (models.Review, error) {
	var w wireReview
	if err := json.Unmarshal(raw, &w); err != nil {
		return models.Review{}, err
	}
	r := w.model()
	if verr := validation.ValidateStruct(&r); verr != nil {
		return models.Review{}, verr
	}
	return r, nil
}

func decodeArray[T any](data []byte, kind string, decode func([]byte) (T, error)) ([]T, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("%w: expected a JSON array of %ss: %v", ErrInvalidRecord, kind, err)
	}
	out := make([]T, 0, len(raws))
	for i, raw := range raws {
		v, err := decode(raw)
		if err != nil {
			metrics.BackendRecordsRejected.WithLabelValues(kind).Inc()
			return nil, &RecordError{Kind: kind, Index: i, Err: err}
		}
		out = append(out, v)
	}
	return out, nil
}
