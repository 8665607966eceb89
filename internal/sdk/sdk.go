// Package sdk describes the boundary between the screen and the health/sensor
// SDK. Implementations block until the operation completes; callers run them
// off the UI loop and deliver the result as a message.
//
// A completion is either an error or a value, never both. When err is non-nil
// the value is meaningless; otherwise the value is authoritative.
package sdk

import (
	"context"
	"errors"
)

var (
	ErrNotConfigured      = errors.New("sdk: not configured")
	ErrEmptyResponse      = errors.New("sdk: completion carried neither a value nor an error")
	ErrUnknownStatus      = errors.New("sdk: unknown sensor status")
	ErrUnknownSensor      = errors.New("sdk: unknown sensor")
	ErrInvalidEnvironment = errors.New("sdk: invalid environment")
	// ErrUnauthorized matches errors from a backend that rejected the app
	// credentials or profile token.
	ErrUnauthorized = errors.New("sdk: unauthorized")
)

type Settings struct {
	Environment Environment
}

type Client interface {
	// Configure must complete before any other call is meaningful.
	// Calls issued earlier fail with ErrNotConfigured.
	Configure(ctx context.Context, settings Settings) error

	IsAuthenticated(ctx context.Context) (bool, error)

	Authenticate(ctx context.Context, appID, appSecret, userID string) (bool, error)

	SensorStatus(ctx context.Context, sensors []Sensor) (SensorStatus, error)

	EnableSensors(ctx context.Context, sensors []Sensor) (SensorStatus, error)

	// OpenAppSettings is fire and forget. Failures are logged by the implementation.
	OpenAppSettings(ctx context.Context)
}
