package sandbox

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("profile not found")

type Profile struct {
	ID                uuid.UUID
	AppID             string
	ExternalID        string
	RefreshToken      string
	DeviceInformation []byte
	CreatedAt         time.Time
}

// ProfileStore persists profiles and their issued access tokens.
type ProfileStore interface {
	// Register returns the profile for (appID, externalID), creating it with
	// refreshToken when absent. An existing profile keeps its refresh token.
	Register(ctx context.Context, appID, externalID, refreshToken string) (Profile, error)

	ByRefreshToken(ctx context.Context, refreshToken string) (Profile, error)

	// ByAccessToken returns ErrNotFound for unknown or expired tokens.
	ByAccessToken(ctx context.Context, accessToken string, now time.Time) (Profile, error)

	IssueToken(ctx context.Context, profileID uuid.UUID, accessToken string, expiresAt time.Time) error

	// DeleteExpiredTokens removes access tokens that expired at or before now
	// and reports how many were removed.
	DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error)

	SetDeviceInformation(ctx context.Context, profileID uuid.UUID, info []byte) error

	Ping(ctx context.Context) error
	Close() error
}
