// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package models

import "time"

// Movie is an immutable catalog snapshot record.
//
// Optional numeric fields use the zero value for "unknown": ReleaseYear 0,
// DurationMinutes 0. An empty Genre means the movie is unclassified.
// AvgRating, ReviewCount and RatingStdDev are derived from reviews and are
// never persisted by the engine.
type Movie struct {
	MovieID         int    `json:"movie_id" validate:"required,gt=0"`
	Title           string `json:"title" validate:"required,notblank"`
	Genre           string `json:"genre,omitempty"`
	Language        string `json:"language,omitempty"`
	ReleaseYear     int    `json:"release_year,omitempty" validate:"gte=0"`
	DurationMinutes int    `json:"duration_minutes,omitempty" validate:"gte=0"`
	Description     string `json:"description,omitempty"`
	PosterURL       string `json:"poster_url,omitempty"`

	AvgRating    float64 `json:"avg_rating" validate:"gte=0,lte=5"`
	ReviewCount  int     `json:"review_count" validate:"gte=0"`
	RatingStdDev float64 `json:"rating_std_dev,omitempty"`
}

// Review is a single user review of a movie.
//
// Rating must lie in [1,5]; the ingestion boundary rejects anything else.
// Title is only populated on per-user history records.
type Review struct {
	ReviewID   int       `json:"review_id" validate:"gte=0"`
	MovieID    int       `json:"movie_id" validate:"gte=0"`
	UserID     int       `json:"user_id" validate:"gte=0"`
	Name       string    `json:"name,omitempty"`
	Title      string    `json:"title,omitempty"`
	Rating     int       `json:"rating" validate:"min=1,max=5"`
	Comment    string    `json:"comment,omitempty"`
	ReviewDate time.Time `json:"review_date"`
}

// User is the session object supplied by the authentication collaborator.
type User struct {
	UserID int    `json:"user_id"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role"`
}

// Roles recognised by the authorization policy.
const (
	RoleGuest = "guest"
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// IsAuthenticated reports whether the user came from a verified token.
func (u User) IsAuthenticated() bool {
	return u.UserID > 0 && u.Role != "" && u.Role != RoleGuest
}
