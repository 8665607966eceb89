package xcontext

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	profileID := uuid.New()

	ctx := SetRequestID(context.Background(), "req-1")
	ctx = SetSessionID(ctx, "session-1")
	ctx = SetProfileID(ctx, profileID)

	if got, ok := GetRequestID(ctx); !ok || got != "req-1" {
		t.Errorf("GetRequestID() = %q, %v", got, ok)
	}
	if got, ok := GetSessionID(ctx); !ok || got != "session-1" {
		t.Errorf("GetSessionID() = %q, %v", got, ok)
	}
	if got, ok := GetProfileID(ctx); !ok || got != profileID {
		t.Errorf("GetProfileID() = %s, %v", got, ok)
	}
}

func TestMissing(t *testing.T) {
	t.Parallel()

	ctx := t.Context()

	if _, ok := GetRequestID(ctx); ok {
		t.Error("GetRequestID() ok on empty context")
	}
	if _, ok := GetSessionID(ctx); ok {
		t.Error("GetSessionID() ok on empty context")
	}
	if _, ok := GetProfileID(ctx); ok {
		t.Error("GetProfileID() ok on empty context")
	}
}
