// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

/*
Package discovery is the catalog ranking and analytics engine.

Every function here is a pure transform over plain collections of
models.Movie and models.Review. Nothing performs I/O, logs, or mutates its
input, so all functions are safe for concurrent use without locking. Callers
that need wall-clock behavior (thrill momentum, admin activity windows) pass
now explicitly.

# Layers

  - Aggregation: ComputeRatingStats, Annotate
  - Scoring: ClassifyBadges, ComputeTrustScore, ComputeTrustHeatmap,
    ComputeThrillScore, PopularityScore
  - Filter and sort: ParseCriteria, FilterMovies, SortMovies, GenreOptions,
    Suggestions
  - Pagination: Paginate, PageWindow
  - Selection: Recommend, PlanMovieNight, ExplainMovie
  - Text: Summarize
  - Moods: Moods, ParseMood, MoodToGenres

# Errors

Precondition failures are returned as *ValidationError wrapping one of the
Err* sentinels, so both errors.Is and errors.As work:

	_, err := discovery.Paginate(items, 0, 1)
	if errors.Is(err, discovery.ErrInvalidPageSize) {
		// 400
	}

Degenerate inputs such as empty review lists produce defined zero values
rather than errors.
*/
package discovery
