// Package xcontext carries request-scoped identifiers through a context.
package xcontext

import (
	"context"

	"github.com/google/uuid"
)

type (
	requestIDKey struct{}
	sessionIDKey struct{}
	profileIDKey struct{}
)

func get[T any](ctx context.Context, key any) (T, bool) {
	v, ok := ctx.Value(key).(T)
	return v, ok
}

func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func GetRequestID(ctx context.Context) (string, bool) {
	return get[string](ctx, requestIDKey{})
}

// SetSessionID records the client run a request belongs to.
func SetSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, sessionID)
}

func GetSessionID(ctx context.Context) (string, bool) {
	return get[string](ctx, sessionIDKey{})
}

// SetProfileID records the profile a bearer token resolved to.
func SetProfileID(ctx context.Context, profileID uuid.UUID) context.Context {
	return context.WithValue(ctx, profileIDKey{}, profileID)
}

func GetProfileID(ctx context.Context) (uuid.UUID, bool) {
	return get[uuid.UUID](ctx, profileIDKey{})
}
