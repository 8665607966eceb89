package sahha

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/garrettladley/sensorlink/internal/db"
)

var (
	ErrNoToken      = errors.New("no profile token found - please authenticate first")
	ErrTokenExpired = errors.New("profile token expired and no refresh token available")
)

type TokenStore interface {
	// Load returns ErrNoToken when nothing has been stored.
	Load(ctx context.Context) (*oauth2.Token, error)
	Save(ctx context.Context, token *oauth2.Token) error
	Clear(ctx context.Context) error
}

var _ TokenStore = (*DBTokenStore)(nil)

type DBTokenStore struct {
	q db.Querier
}

func NewDBTokenStore(q db.Querier) *DBTokenStore {
	return &DBTokenStore{q: q}
}

func (s *DBTokenStore) Load(ctx context.Context) (*oauth2.Token, error) {
	row, err := s.q.GetToken(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load token: %w", err)
	}

	token := &oauth2.Token{
		AccessToken: row.AccessToken,
		TokenType:   row.TokenType,
		Expiry:      row.Expiry,
	}
	if row.RefreshToken != nil {
		token.RefreshToken = *row.RefreshToken
	}
	return token, nil
}

func (s *DBTokenStore) Save(ctx context.Context, token *oauth2.Token) error {
	params := db.UpsertTokenParams{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		Expiry:      token.Expiry,
	}
	if token.RefreshToken != "" {
		params.RefreshToken = &token.RefreshToken
	}
	return s.q.UpsertToken(ctx, params)
}

func (s *DBTokenStore) Clear(ctx context.Context) error {
	return s.q.DeleteToken(ctx)
}

var _ oauth2.TokenSource = (*profileTokenSource)(nil)

// expiryDelta matches the early expiry oauth2 applies to tokens.
const expiryDelta = 10 * time.Second

// profileTokenSource serves the stored profile token, refreshing and
// persisting it once it expires on the client's clock.
type profileTokenSource struct {
	client *Client
	store  TokenStore

	mu    sync.Mutex
	token *oauth2.Token
}

func (s *profileTokenSource) Token() (*oauth2.Token, error) {
	return s.TokenContext(context.Background())
}

// TokenContext bounds loading and refreshing by ctx and the client timeout.
func (s *profileTokenSource) TokenContext(ctx context.Context) (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client.valid(s.token) {
		return s.token, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.client.timeout)
	defer cancel()

	token, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	if s.client.valid(token) {
		s.token = token
		return token, nil
	}

	if token.RefreshToken == "" {
		return nil, ErrTokenExpired
	}

	refreshed, err := s.client.refresh(ctx, token.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	if err := s.store.Save(ctx, refreshed); err != nil {
		return nil, fmt.Errorf("failed to save refreshed token: %w", err)
	}

	s.token = refreshed
	return refreshed, nil
}

// contextTokenSource ties a request's context to the shared source.
type contextTokenSource struct {
	ctx    context.Context
	source *profileTokenSource
}

func (s contextTokenSource) Token() (*oauth2.Token, error) {
	return s.source.TokenContext(s.ctx)
}

func (s *profileTokenSource) reset() {
	s.mu.Lock()
	s.token = nil
	s.mu.Unlock()
}

func (c *Client) refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	const route = "/oauth/profile/refreshToken"

	var resp TokenResponse
	if err := c.do(ctx, c.httpClient, http.MethodPost, route, nil, RefreshRequest{RefreshToken: refreshToken}, &resp); err != nil {
		return nil, err
	}
	if resp.ProfileToken == "" {
		return nil, fmt.Errorf("refresh: %w", errEmptyToken)
	}

	token := resp.Token(c.now())
	if token.RefreshToken == "" {
		token.RefreshToken = refreshToken
	}
	return token, nil
}

func (c *Client) valid(token *oauth2.Token) bool {
	if token == nil || token.AccessToken == "" {
		return false
	}
	if token.Expiry.IsZero() {
		return true
	}
	return c.now().Add(expiryDelta).Before(token.Expiry)
}
