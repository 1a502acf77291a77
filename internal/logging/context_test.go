// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestGenerateCorrelationID(t *testing.T) {
	t.Parallel()

	id1 := GenerateCorrelationID()
	id2 := GenerateCorrelationID()

	if len(id1) != 8 {
		t.Errorf("expected 8-character correlation ID, got %d", len(id1))
	}
	if id1 == id2 {
		t.Error("expected unique correlation IDs")
	}
}

func TestGenerateRequestID(t *testing.T) {
	t.Parallel()

	id1 := GenerateRequestID()
	id2 := GenerateRequestID()

	if len(id1) != 36 {
		t.Errorf("expected 36-character request ID, got %d", len(id1))
	}
	if id1 == id2 {
		t.Error("expected unique request IDs")
	}
}

func TestContextIDs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if id := CorrelationIDFromContext(ctx); id != "" {
		t.Errorf("expected empty correlation ID, got %s", id)
	}
	if id := RequestIDFromContext(ctx); id != "" {
		t.Errorf("expected empty request ID, got %s", id)
	}

	ctx = ContextWithCorrelationID(ctx, "abc12345")
	ctx = ContextWithRequestID(ctx, "req-1")
	if id := CorrelationIDFromContext(ctx); id != "abc12345" {
		t.Errorf("expected correlation ID abc12345, got %s", id)
	}
	if id := RequestIDFromContext(ctx); id != "req-1" {
		t.Errorf("expected request ID req-1, got %s", id)
	}

	fresh := ContextWithNewCorrelationID(context.Background())
	if id := CorrelationIDFromContext(fresh); len(id) != 8 {
		t.Errorf("expected generated 8-character correlation ID, got %q", id)
	}
}

func TestCtx(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	SetLevelString("debug")
	defer Init(DefaultConfig())

	ctx := ContextWithCorrelationID(context.Background(), "corr0001")
	ctx = ContextWithRequestID(ctx, "req-42")
	ctx = ContextWithUserID(ctx, 7)

	Ctx(ctx).Info().Msg("handled")

	output := buf.String()
	for _, want := range []string{`"correlation_id":"corr0001"`, `"request_id":"req-42"`, `"user_id":7`} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output, got: %s", want, output)
		}
	}
}

func TestCtxWithoutIDs(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	SetLevelString("debug")
	defer Init(DefaultConfig())

	Ctx(ContextWithUserID(context.Background(), 0)).Info().Msg("anonymous")

	output := buf.String()
	for _, unwanted := range []string{"correlation_id", "request_id", "user_id"} {
		if strings.Contains(output, unwanted) {
			t.Errorf("did not expect %s in output, got: %s", unwanted, output)
		}
	}
}
