// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func histogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	m, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatal("observer is not a metric")
	}
	var pb dto.Metric
	if err := m.Write(&pb); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return pb.GetHistogram().GetSampleCount()
}

func TestRecordAPIRequest(t *testing.T) {
	counter := APIRequestsTotal.WithLabelValues("GET", "/api/v1/movies", "200")
	before := testutil.ToFloat64(counter)
	beforeObs := histogramCount(t, APIRequestDuration.WithLabelValues("GET", "/api/v1/movies"))

	RecordAPIRequest("GET", "/api/v1/movies", 200, 15*time.Millisecond)
	RecordAPIRequest("GET", "/api/v1/movies", 200, 30*time.Millisecond)

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Errorf("expected 2 new requests, got %v", got)
	}
	if got := histogramCount(t, APIRequestDuration.WithLabelValues("GET", "/api/v1/movies")) - beforeObs; got != 2 {
		t.Errorf("expected 2 new observations, got %d", got)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests) - before; got != 2 {
		t.Errorf("expected gauge +2, got %v", got)
	}

	TrackActiveRequest(false)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("expected gauge back at %v, got %v", before, got)
	}
}

func TestRecordBackendRequest(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		status   string
	}{
		{"ok", "/api/movies", "200"},
		{"not found", "/api/movies/{id}", "404"},
		{"transport error", "/api/reviews/movie/{id}", "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := BackendRequestsTotal.WithLabelValues(tt.endpoint, tt.status)
			before := testutil.ToFloat64(c)
			RecordBackendRequest(tt.endpoint, tt.status, time.Millisecond)
			if got := testutil.ToFloat64(c) - before; got != 1 {
				t.Errorf("expected counter +1, got %v", got)
			}
		})
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := CatalogCacheHits.WithLabelValues("movies")
	misses := CatalogCacheMisses.WithLabelValues("movies")
	h0, m0 := testutil.ToFloat64(hits), testutil.ToFloat64(misses)

	RecordCacheLookup("movies", true)
	RecordCacheLookup("movies", true)
	RecordCacheLookup("movies", false)

	if got := testutil.ToFloat64(hits) - h0; got != 2 {
		t.Errorf("expected 2 hits, got %v", got)
	}
	if got := testutil.ToFloat64(misses) - m0; got != 1 {
		t.Errorf("expected 1 miss, got %v", got)
	}
}

func TestRecordCatalogRefresh(t *testing.T) {
	errs0 := testutil.ToFloat64(CatalogRefreshErrors)

	RecordCatalogRefresh(42, nil)
	if got := testutil.ToFloat64(CatalogSize); got != 42 {
		t.Errorf("expected catalog size 42, got %v", got)
	}
	if got := testutil.ToFloat64(CatalogLastRefresh); got <= 0 {
		t.Errorf("expected last refresh timestamp, got %v", got)
	}

	RecordCatalogRefresh(0, errors.New("backend down"))
	if got := testutil.ToFloat64(CatalogSize); got != 42 {
		t.Errorf("expected failed refresh to keep size 42, got %v", got)
	}
	if got := testutil.ToFloat64(CatalogRefreshErrors) - errs0; got != 1 {
		t.Errorf("expected 1 refresh error, got %v", got)
	}
}

func TestRecordWatchlistOperation(t *testing.T) {
	ok := WatchlistOperations.WithLabelValues("toggle", "success")
	failed := WatchlistOperations.WithLabelValues("toggle", "error")
	ok0, failed0 := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	RecordWatchlistOperation("toggle", nil)
	RecordWatchlistOperation("toggle", errors.New("store closed"))

	if got := testutil.ToFloat64(ok) - ok0; got != 1 {
		t.Errorf("expected 1 success, got %v", got)
	}
	if got := testutil.ToFloat64(failed) - failed0; got != 1 {
		t.Errorf("expected 1 error, got %v", got)
	}
}

func TestRecordAuthzDecision(t *testing.T) {
	allow := AuthzDecisions.WithLabelValues("user", "allow")
	deny := AuthzDecisions.WithLabelValues("guest", "deny")
	a0, d0 := testutil.ToFloat64(allow), testutil.ToFloat64(deny)

	RecordAuthzDecision("user", true)
	RecordAuthzDecision("guest", false)

	if got := testutil.ToFloat64(allow) - a0; got != 1 {
		t.Errorf("expected 1 allow, got %v", got)
	}
	if got := testutil.ToFloat64(deny) - d0; got != 1 {
		t.Errorf("expected 1 deny, got %v", got)
	}
}
