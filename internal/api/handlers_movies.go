// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/cinescope/internal/discovery"
	"github.com/tomtom215/cinescope/internal/models"
)

// MovieCard is a movie in a browse list with its badges.
type MovieCard struct {
	models.Movie
	Badges []discovery.BadgeInfo `json:"badges"`
}

// MoviePage is the body of GET /movies.
type MoviePage struct {
	discovery.Page[MovieCard]
	Window []discovery.PageLink `json:"window"`
	Genres []string             `json:"genres"`
}

// MovieDetail is the body of GET /movies/{id}.
type MovieDetail struct {
	Movie         models.Movie               `json:"movie"`
	Stats         discovery.RatingStats      `json:"stats"`
	Breakdown     []discovery.RatingBucket   `json:"breakdown"`
	AudienceMoods []discovery.AudienceMood   `json:"audience_moods"`
	Badges        []discovery.BadgeInfo      `json:"badges"`
	Trust         discovery.TrustScore       `json:"trust"`
	Thrill        discovery.ThrillScore      `json:"thrill"`
	Sentiment     discovery.SentimentSummary `json:"sentiment"`
	TopReview     *models.Review             `json:"top_review,omitempty"`
	Reviews       []models.Review            `json:"reviews"`
	InWatchlist   *bool                      `json:"in_watchlist,omitempty"`
}

func toCards(movies []models.Movie) []MovieCard {
	cards := make([]MovieCard, len(movies))
	for i, m := range movies {
		cards[i] = MovieCard{
			Movie:  m,
			Badges: discovery.DescribeBadges(discovery.ClassifyBadges(m.AvgRating, m.ReviewCount)),
		}
	}
	return cards
}

// Movies handles GET /api/v1/movies: filter, sort, then paginate. A page past
// the end is clamped to the last page.
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	q := r.URL.Query()

	req := MoviesRequest{
		Search:    q.Get("search"),
		Genre:     q.Get("genre"),
		Mood:      q.Get("mood"),
		MinRating: q.Get("min_rating"),
		Sort:      q.Get("sort"),
		Page:      getIntParam(r, "page", 1),
		PageSize:  getIntParam(r, "page_size", h.cfg.PageSize),
	}
	if apiErr := validateRequest(req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	criteria, err := discovery.ParseCriteria(req.Search, req.Genre, req.Mood, req.MinRating)
	if err != nil {
		respondFailure(w, r, err)
		return
	}

	movies, err := h.catalog.Movies(r.Context())
	if err != nil {
		respondFailure(w, r, err)
		return
	}

	filtered := discovery.FilterMovies(movies, criteria)
	if req.Sort != "" {
		key, err := discovery.ParseSortKey(req.Sort)
		if err != nil {
			respondFailure(w, r, err)
			return
		}
		if filtered, err = discovery.SortMovies(filtered, key); err != nil {
			respondFailure(w, r, err)
			return
		}
	}

	cards := toCards(filtered)
	page, err := discovery.Paginate(cards, req.PageSize, req.Page)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	if clamped := discovery.ClampPage(req.Page, page.TotalPages); clamped != req.Page {
		if page, err = discovery.Paginate(cards, req.PageSize, clamped); err != nil {
			respondFailure(w, r, err)
			return
		}
	}

	respondSuccess(w, MoviePage{
		Page:   page,
		Window: discovery.PageWindow(page.PageNumber, page.TotalPages),
		Genres: discovery.GenreOptions(movies),
	}, start)
}

// Suggestions handles GET /api/v1/movies/suggestions?q=.
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req := SuggestionsRequest{
		Query: r.URL.Query().Get("q"),
		Limit: getIntParam(r, "limit", h.cfg.SuggestionLimit),
	}
	if apiErr := validateRequest(req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	movies, err := h.catalog.Movies(r.Context())
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondSuccess(w, discovery.Suggestions(movies, req.Query, req.Limit), start)
}

// Genres handles GET /api/v1/movies/genres.
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	movies, err := h.catalog.Movies(r.Context())
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondSuccess(w, discovery.GenreOptions(movies), start)
}

// MovieDetail handles GET /api/v1/movies/{id}. Aggregates are recomputed from
// the movie's reviews so the detail view never disagrees with them.
func (h *Handler) MovieDetail(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, apiErr := movieIDParam(r)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	ctx := r.Context()
	movie, err := h.catalog.Movie(ctx, id)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	reviews, err := h.catalog.MovieReviews(ctx, id)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	stats, err := discovery.ComputeRatingStats(reviews)
	if err != nil {
		respondFailure(w, r, err)
		return
	}

	movie.AvgRating = stats.AvgRating
	movie.ReviewCount = stats.ReviewCount
	movie.RatingStdDev = stats.StdDev

	comments := make([]string, 0, len(reviews))
	for _, rv := range reviews {
		comments = append(comments, rv.Comment)
	}

	detail := MovieDetail{
		Movie:         movie,
		Stats:         stats,
		Breakdown:     discovery.RatingBreakdown(stats),
		AudienceMoods: discovery.AudienceMoods(stats),
		Badges:        discovery.DescribeBadges(discovery.ClassifyBadges(stats.AvgRating, stats.ReviewCount)),
		Trust:         discovery.ComputeTrustScore(stats),
		Thrill:        discovery.ComputeThrillScore(reviews, stats.AvgRating, stats.ReviewCount, h.now()),
		Sentiment:     discovery.Summarize(comments),
		Reviews:       reviews,
	}
	if top, ok := discovery.TopReview(reviews); ok {
		detail.TopReview = &top
	}

	hctx := GetHandlerContext(r)
	if hctx.IsAuthenticated() && h.watchlists != nil {
		if wl, err := h.watchlists.For(hctx.User.UserID); err == nil {
			if in, err := wl.Contains(ctx, id); err == nil {
				detail.InWatchlist = &in
			}
		}
	}

	respondSuccess(w, detail, start)
}

// TrustHeatmap handles GET /api/v1/movies/{id}/trust. Reviewer activity is
// counted across the whole catalog.
func (h *Handler) TrustHeatmap(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, apiErr := movieIDParam(r)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	ctx := r.Context()
	if _, err := h.catalog.Movie(ctx, id); err != nil {
		respondFailure(w, r, err)
		return
	}
	reviews, err := h.catalog.MovieReviews(ctx, id)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	all, err := h.catalog.AllReviews(ctx)
	if err != nil {
		respondFailure(w, r, err)
		return
	}

	counts := make(map[int]int)
	for _, rv := range all {
		counts[rv.UserID]++
	}

	heatmap, err := discovery.ComputeTrustHeatmap(reviews, counts)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondSuccess(w, heatmap, start)
}

// Explain handles GET /api/v1/movies/{id}/explain. Guests get the
// non-personalized explanation.
func (h *Handler) Explain(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, apiErr := movieIDParam(r)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	ctx := r.Context()
	movies, err := h.catalog.Movies(ctx)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	movie, err := h.catalog.Movie(ctx, id)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	reviews, err := h.catalog.MovieReviews(ctx, id)
	if err != nil {
		respondFailure(w, r, err)
		return
	}

	var liked []string
	history, err := h.userReviews(ctx, GetHandlerContext(r))
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	if history != nil {
		liked = discovery.LikedGenres(movies, history)
	}

	respondSuccess(w, discovery.ExplainMovie(movie, movies, liked, discovery.CountRecent(reviews, h.now())), start)
}
