// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package discovery

import (
	"slices"
	"strings"
)

// DecisionSource is how a viewer arrived at a movie.
type DecisionSource string

const (
	SourceSearch         DecisionSource = "search"
	SourceFilter         DecisionSource = "filter"
	SourceTrending       DecisionSource = "trending"
	SourceRecommendation DecisionSource = "recommendation"
	SourceBrowse         DecisionSource = "browse"
	SourceDirect         DecisionSource = "direct"
)

// DecisionSources lists every valid source.
var DecisionSources = []DecisionSource{
	SourceSearch, SourceFilter, SourceTrending, SourceRecommendation, SourceBrowse, SourceDirect,
}

const (
	traceSeparator    = " → "
	traceSummarySteps = 5
	tracePathSteps    = 4
)

// ParseDecisionSource validates a raw source. Empty means browse.
func ParseDecisionSource(s string) (DecisionSource, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SourceBrowse, nil
	}
	src := DecisionSource(s)
	if !slices.Contains(DecisionSources, src) {
		return "", newValidationError("decision_source", s, ErrUnknownSource)
	}
	return src, nil
}

// DecisionTrace is the navigation path that led to a movie.
type DecisionTrace struct {
	MovieID          int            `json:"movie_id" validate:"required,gt=0"`
	Path             []string       `json:"trace_path" validate:"required,min=1"`
	Source           DecisionSource `json:"decision_source"`
	TimeSpentSeconds int            `json:"time_spent_seconds" validate:"gte=0"`
}

// SummarizeTrace joins the first five steps of a path.
func SummarizeTrace(steps []string) string {
	return strings.Join(steps[:min(traceSummarySteps, len(steps))], traceSeparator)
}

// TraceAnalytics aggregates a batch of traces.
type TraceAnalytics struct {
	TotalTraces      int                    `json:"total_traces"`
	DecisionSources  map[DecisionSource]int `json:"decision_sources"`
	AverageSteps     float64                `json:"average_steps"`
	MostCommonPath   string                 `json:"most_common_path,omitempty"`
	PathDistribution map[string]int         `json:"path_distribution"`
}

// AnalyzeTraces counts sources and path prefixes. Paths are keyed by their
// first four steps; the most common one wins ties by first appearance.
func AnalyzeTraces(traces []DecisionTrace) (TraceAnalytics, error) {
	out := TraceAnalytics{
		TotalTraces:      len(traces),
		DecisionSources:  make(map[DecisionSource]int),
		PathDistribution: make(map[string]int),
	}
	if len(traces) == 0 {
		return out, nil
	}

	steps := 0
	var order []string
	for _, t := range traces {
		src, err := ParseDecisionSource(string(t.Source))
		if err != nil {
			return TraceAnalytics{}, err
		}
		out.DecisionSources[src]++
		steps += len(t.Path)

		key := strings.Join(t.Path[:min(tracePathSteps, len(t.Path))], traceSeparator)
		if _, seen := out.PathDistribution[key]; !seen {
			order = append(order, key)
		}
		out.PathDistribution[key]++
	}
	out.AverageSteps = round1(float64(steps) / float64(len(traces)))

	best := 0
	for _, key := range order {
		if n := out.PathDistribution[key]; n > best {
			best = n
			out.MostCommonPath = key
		}
	}
	return out, nil
}
