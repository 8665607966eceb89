package sandbox

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/garrettladley/sensorlink/internal/client/sahha"
)

var (
	ErrInvalidApp          = errors.New("invalid app id or secret")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrMissingToken        = errors.New("missing profile token")
	ErrInvalidToken        = errors.New("invalid or expired profile token")
)

type Service struct {
	apps  Apps
	store ProfileStore
	ttl   time.Duration
	now   func() time.Time
}

func NewService(apps Apps, store ProfileStore, ttl time.Duration) *Service {
	return &Service{apps: apps, store: store, ttl: ttl, now: time.Now}
}

// Register authenticates the app and issues a token for the external id's profile.
func (s *Service) Register(ctx context.Context, appID, appSecret, externalID string) (sahha.TokenResponse, Profile, error) {
	if !s.validApp(appID, appSecret) {
		return sahha.TokenResponse{}, Profile{}, ErrInvalidApp
	}

	refreshToken, err := newToken()
	if err != nil {
		return sahha.TokenResponse{}, Profile{}, err
	}

	profile, err := s.store.Register(ctx, appID, externalID, refreshToken)
	if err != nil {
		return sahha.TokenResponse{}, Profile{}, fmt.Errorf("failed to register profile: %w", err)
	}

	resp, err := s.issue(ctx, profile)
	return resp, profile, err
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (sahha.TokenResponse, Profile, error) {
	if refreshToken == "" {
		return sahha.TokenResponse{}, Profile{}, ErrInvalidRefreshToken
	}

	profile, err := s.store.ByRefreshToken(ctx, refreshToken)
	if errors.Is(err, ErrNotFound) {
		return sahha.TokenResponse{}, Profile{}, ErrInvalidRefreshToken
	}
	if err != nil {
		return sahha.TokenResponse{}, Profile{}, fmt.Errorf("failed to look up refresh token: %w", err)
	}

	resp, err := s.issue(ctx, profile)
	return resp, profile, err
}

// Authorize resolves an "Authorization: Profile <token>" header.
func (s *Service) Authorize(ctx context.Context, header string) (Profile, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || token == "" {
		return Profile{}, ErrMissingToken
	}
	if !strings.EqualFold(scheme, sahha.TokenTypeProfile) && !strings.EqualFold(scheme, "Bearer") {
		return Profile{}, ErrInvalidToken
	}

	profile, err := s.store.ByAccessToken(ctx, token, s.now())
	if errors.Is(err, ErrNotFound) {
		return Profile{}, ErrInvalidToken
	}
	if err != nil {
		return Profile{}, fmt.Errorf("failed to look up profile token: %w", err)
	}
	return profile, nil
}

func (s *Service) SetDeviceInformation(ctx context.Context, profileID uuid.UUID, info []byte) error {
	return s.store.SetDeviceInformation(ctx, profileID, info)
}

func (s *Service) issue(ctx context.Context, profile Profile) (sahha.TokenResponse, error) {
	accessToken, err := newToken()
	if err != nil {
		return sahha.TokenResponse{}, err
	}

	if err := s.store.IssueToken(ctx, profile.ID, accessToken, s.now().Add(s.ttl)); err != nil {
		return sahha.TokenResponse{}, fmt.Errorf("failed to issue profile token: %w", err)
	}

	return sahha.TokenResponse{
		ProfileToken: accessToken,
		RefreshToken: profile.RefreshToken,
		ExpiresIn:    int64(s.ttl.Seconds()),
		TokenType:    sahha.TokenTypeProfile,
	}, nil
}

func (s *Service) validApp(appID, appSecret string) bool {
	secret, ok := s.apps[appID]
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(appSecret)) == 1
}

func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
