package sandbox

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

var _ ProfileStore = (*MemoryStore)(nil)

type appExternalID struct {
	appID      string
	externalID string
}

type issuedToken struct {
	profileID uuid.UUID
	expiresAt time.Time
}

type MemoryStore struct {
	mu        sync.RWMutex
	profiles  map[uuid.UUID]Profile
	byExtID   map[appExternalID]uuid.UUID
	byRefresh map[string]uuid.UUID
	tokens    map[string]issuedToken
	now       func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles:  make(map[uuid.UUID]Profile),
		byExtID:   make(map[appExternalID]uuid.UUID),
		byRefresh: make(map[string]uuid.UUID),
		tokens:    make(map[string]issuedToken),
		now:       time.Now,
	}
}

func (m *MemoryStore) Register(_ context.Context, appID, externalID, refreshToken string) (Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := appExternalID{appID: appID, externalID: externalID}
	if id, ok := m.byExtID[key]; ok {
		return m.profiles[id], nil
	}

	p := Profile{
		ID:           uuid.New(),
		AppID:        appID,
		ExternalID:   externalID,
		RefreshToken: refreshToken,
		CreatedAt:    m.now(),
	}
	m.profiles[p.ID] = p
	m.byExtID[key] = p.ID
	m.byRefresh[refreshToken] = p.ID
	return p, nil
}

func (m *MemoryStore) ByRefreshToken(_ context.Context, refreshToken string) (Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byRefresh[refreshToken]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return m.profiles[id], nil
}

func (m *MemoryStore) ByAccessToken(_ context.Context, accessToken string, now time.Time) (Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.tokens[accessToken]
	if !ok || !now.Before(t.expiresAt) {
		return Profile{}, ErrNotFound
	}
	return m.profiles[t.profileID], nil
}

func (m *MemoryStore) IssueToken(_ context.Context, profileID uuid.UUID, accessToken string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.profiles[profileID]; !ok {
		return ErrNotFound
	}
	m.tokens[accessToken] = issuedToken{profileID: profileID, expiresAt: expiresAt}
	return nil
}

func (m *MemoryStore) DeleteExpiredTokens(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for token, t := range m.tokens {
		if !now.Before(t.expiresAt) {
			delete(m.tokens, token)
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) SetDeviceInformation(_ context.Context, profileID uuid.UUID, info []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.profiles[profileID]
	if !ok {
		return ErrNotFound
	}
	p.DeviceInformation = slices.Clone(info)
	m.profiles[profileID] = p
	return nil
}

func (m *MemoryStore) Ping(context.Context) error { return nil }
func (m *MemoryStore) Close() error               { return nil }
