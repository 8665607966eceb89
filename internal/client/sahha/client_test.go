package sahha

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/oauth2"

	"github.com/garrettladley/sensorlink/internal/db"
	"github.com/garrettladley/sensorlink/internal/sdk"
)

type memoryTokens struct {
	mu    sync.Mutex
	token *oauth2.Token
}

func (m *memoryTokens) Load(context.Context) (*oauth2.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == nil {
		return nil, ErrNoToken
	}
	t := *m.token
	return &t, nil
}

func (m *memoryTokens) Save(_ context.Context, token *oauth2.Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := *token
	m.token = &t
	return nil
}

func (m *memoryTokens) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = nil
	return nil
}

type fakeDevice struct {
	status sdk.SensorStatus
	asked  [][]sdk.Sensor
}

func (d *fakeDevice) Status(_ context.Context, sensors []sdk.Sensor) (sdk.SensorStatus, error) {
	d.asked = append(d.asked, sensors)
	return d.status, nil
}

func (d *fakeDevice) Enable(_ context.Context, sensors []sdk.Sensor) (sdk.SensorStatus, error) {
	d.asked = append(d.asked, sensors)
	d.status = sdk.SensorStatusEnabled
	return d.status, nil
}

type fakeAPI struct {
	mu           sync.Mutex
	registers    []RegisterRequest
	appIDs       []string
	secrets      []string
	deviceAuth   []string
	refreshes    []RefreshRequest
	registerCode int
	emptyBody    bool
}

func (a *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /oauth/profile/register/appId", func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		_ = go_json.NewDecoder(r.Body).Decode(&req)

		a.mu.Lock()
		a.registers = append(a.registers, req)
		a.appIDs = append(a.appIDs, r.Header.Get(headerAppID))
		a.secrets = append(a.secrets, r.Header.Get(headerAppSecret))
		code, empty := a.registerCode, a.emptyBody
		a.mu.Unlock()

		if code != 0 {
			w.WriteHeader(code)
			_, _ = io.WriteString(w, `{"title":"invalid app credentials"}`)
			return
		}
		if empty {
			w.WriteHeader(http.StatusOK)
			return
		}
		_ = go_json.NewEncoder(w).Encode(TokenResponse{
			ProfileToken: "profile-token",
			RefreshToken: "refresh-token",
			ExpiresIn:    3600,
			TokenType:    TokenTypeProfile,
		})
	})

	mux.HandleFunc("POST /oauth/profile/refreshToken", func(w http.ResponseWriter, r *http.Request) {
		var req RefreshRequest
		_ = go_json.NewDecoder(r.Body).Decode(&req)
		a.mu.Lock()
		a.refreshes = append(a.refreshes, req)
		a.mu.Unlock()
		_ = go_json.NewEncoder(w).Encode(TokenResponse{ProfileToken: "fresh-token", ExpiresIn: 3600})
	})

	mux.HandleFunc("PUT /user/deviceInformation", func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		a.deviceAuth = append(a.deviceAuth, r.Header.Get("Authorization"))
		a.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})

	return mux
}

type apiCalls struct {
	registers  []RegisterRequest
	appIDs     []string
	secrets    []string
	deviceAuth []string
	refreshes  []RefreshRequest
}

func (a *fakeAPI) snapshot() apiCalls {
	a.mu.Lock()
	defer a.mu.Unlock()
	return apiCalls{
		registers:  append([]RegisterRequest(nil), a.registers...),
		appIDs:     append([]string(nil), a.appIDs...),
		secrets:    append([]string(nil), a.secrets...),
		deviceAuth: append([]string(nil), a.deviceAuth...),
		refreshes:  append([]RefreshRequest(nil), a.refreshes...),
	}
}

func newTestClient(t *testing.T, api *fakeAPI, opts ...Option) (*Client, *memoryTokens, *fakeDevice) {
	t.Helper()

	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	tokens := &memoryTokens{}
	device := &fakeDevice{}
	opts = append([]Option{
		WithBaseURL(srv.URL),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithTimeout(5 * time.Second),
	}, opts...)

	return New(tokens, device, opts...), tokens, device
}

func configure(t *testing.T, c *Client) {
	t.Helper()
	if err := c.Configure(t.Context(), sdk.Settings{Environment: sdk.EnvironmentSandbox}); err != nil {
		t.Fatalf("Configure: %v", err)
	}
}

func TestCallsBeforeConfigure(t *testing.T) {
	t.Parallel()

	c, _, device := newTestClient(t, &fakeAPI{})
	ctx := t.Context()

	if _, err := c.IsAuthenticated(ctx); !errors.Is(err, sdk.ErrNotConfigured) {
		t.Errorf("IsAuthenticated error = %v, want ErrNotConfigured", err)
	}
	if _, err := c.Authenticate(ctx, "a", "b", "c"); !errors.Is(err, sdk.ErrNotConfigured) {
		t.Errorf("Authenticate error = %v, want ErrNotConfigured", err)
	}
	if _, err := c.SensorStatus(ctx, sdk.DefaultSensors); !errors.Is(err, sdk.ErrNotConfigured) {
		t.Errorf("SensorStatus error = %v, want ErrNotConfigured", err)
	}
	if _, err := c.EnableSensors(ctx, sdk.DefaultSensors); !errors.Is(err, sdk.ErrNotConfigured) {
		t.Errorf("EnableSensors error = %v, want ErrNotConfigured", err)
	}
	if len(device.asked) != 0 {
		t.Errorf("device consulted before configure: %v", device.asked)
	}
}

func TestConfigureRejectsUnknownEnvironment(t *testing.T) {
	t.Parallel()

	c, _, _ := newTestClient(t, &fakeAPI{})
	err := c.Configure(t.Context(), sdk.Settings{Environment: "staging"})
	if !errors.Is(err, sdk.ErrInvalidEnvironment) {
		t.Fatalf("Configure error = %v, want ErrInvalidEnvironment", err)
	}
	if _, err := c.IsAuthenticated(t.Context()); !errors.Is(err, sdk.ErrNotConfigured) {
		t.Errorf("client usable after failed configure: %v", err)
	}
}

func TestBaseURL(t *testing.T) {
	t.Parallel()

	if got := BaseURL(sdk.EnvironmentProduction); got != productionBaseURL {
		t.Errorf("BaseURL(production) = %q", got)
	}
	if got := BaseURL(sdk.EnvironmentSandbox); got != sandboxBaseURL {
		t.Errorf("BaseURL(sandbox) = %q", got)
	}
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c, tokens, _ := newTestClient(t, api, WithClock(func() time.Time { return now }))
	configure(t, c)
	ctx := t.Context()

	authed, err := c.IsAuthenticated(ctx)
	if err != nil || authed {
		t.Fatalf("IsAuthenticated before auth = %v, %v; want false, nil", authed, err)
	}

	ok, err := c.Authenticate(ctx, "abc", "xyz", "123")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if !ok {
		t.Fatal("Authenticate returned false")
	}

	seen := api.snapshot()
	if diff := cmp.Diff([]RegisterRequest{{ExternalID: "123"}}, seen.registers); diff != "" {
		t.Errorf("register requests (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"abc"}, seen.appIDs); diff != "" {
		t.Errorf("AppId headers (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"xyz"}, seen.secrets); diff != "" {
		t.Errorf("AppSecret headers (-want +got):\n%s", diff)
	}

	stored, err := tokens.Load(ctx)
	if err != nil {
		t.Fatalf("token not stored: %v", err)
	}
	if stored.AccessToken != "profile-token" || stored.RefreshToken != "refresh-token" {
		t.Errorf("stored token = %+v", stored)
	}
	if want := now.Add(time.Hour); !stored.Expiry.Equal(want) {
		t.Errorf("expiry = %v, want %v", stored.Expiry, want)
	}

	if diff := cmp.Diff([]string{"Profile profile-token"}, seen.deviceAuth); diff != "" {
		t.Errorf("device information auth (-want +got):\n%s", diff)
	}

	authed, err = c.IsAuthenticated(ctx)
	if err != nil || !authed {
		t.Errorf("IsAuthenticated after auth = %v, %v; want true, nil", authed, err)
	}
}

func TestAuthenticateFailures(t *testing.T) {
	t.Parallel()

	t.Run("rejected credentials", func(t *testing.T) {
		t.Parallel()
		c, tokens, _ := newTestClient(t, &fakeAPI{registerCode: http.StatusUnauthorized})
		configure(t, c)

		ok, err := c.Authenticate(t.Context(), "abc", "wrong", "123")
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("Authenticate error = %v, want *APIError", err)
		}
		if !apiErr.Unauthorized() || apiErr.Message != "invalid app credentials" {
			t.Errorf("APIError = %+v", apiErr)
		}
		if !errors.Is(err, sdk.ErrUnauthorized) {
			t.Errorf("Authenticate error = %v, want ErrUnauthorized", err)
		}
		if ok {
			t.Error("Authenticate returned true alongside an error")
		}
		if _, err := tokens.Load(t.Context()); !errors.Is(err, ErrNoToken) {
			t.Errorf("token stored after failure: %v", err)
		}
	})

	t.Run("empty response", func(t *testing.T) {
		t.Parallel()
		c, _, _ := newTestClient(t, &fakeAPI{emptyBody: true})
		configure(t, c)

		if _, err := c.Authenticate(t.Context(), "abc", "xyz", "123"); !errors.Is(err, sdk.ErrEmptyResponse) {
			t.Errorf("Authenticate error = %v, want ErrEmptyResponse", err)
		}
	})

	t.Run("missing credentials never reach the api", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{}
		c, _, _ := newTestClient(t, api)
		configure(t, c)

		if _, err := c.Authenticate(t.Context(), "abc", "", "123"); err == nil {
			t.Error("Authenticate with empty secret should fail")
		}
		if n := len(api.snapshot().registers); n != 0 {
			t.Errorf("api called %d times", n)
		}
	})
}

func TestTokenRefresh(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	c, tokens, _ := newTestClient(t, api)
	configure(t, c)

	expired := &oauth2.Token{
		AccessToken:  "stale",
		RefreshToken: "refresh-token",
		TokenType:    TokenTypeProfile,
		Expiry:       time.Now().Add(-time.Hour),
	}
	if err := tokens.Save(t.Context(), expired); err != nil {
		t.Fatalf("Save: %v", err)
	}

	authed, err := c.IsAuthenticated(t.Context())
	if err != nil || !authed {
		t.Fatalf("expired but refreshable token: IsAuthenticated = %v, %v", authed, err)
	}

	token, err := c.source.Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if token.AccessToken != "fresh-token" {
		t.Errorf("AccessToken = %q, want fresh-token", token.AccessToken)
	}
	if token.RefreshToken != "refresh-token" {
		t.Errorf("refresh token not carried over: %q", token.RefreshToken)
	}
	if diff := cmp.Diff([]RefreshRequest{{RefreshToken: "refresh-token"}}, api.snapshot().refreshes); diff != "" {
		t.Errorf("refresh requests (-want +got):\n%s", diff)
	}

	stored, _ := tokens.Load(t.Context())
	if stored.AccessToken != "fresh-token" {
		t.Errorf("refreshed token not persisted: %q", stored.AccessToken)
	}
}

func TestExpiredWithoutRefresh(t *testing.T) {
	t.Parallel()

	c, tokens, _ := newTestClient(t, &fakeAPI{})
	configure(t, c)

	_ = tokens.Save(t.Context(), &oauth2.Token{AccessToken: "stale", Expiry: time.Now().Add(-time.Minute)})

	authed, err := c.IsAuthenticated(t.Context())
	if err != nil || authed {
		t.Errorf("IsAuthenticated = %v, %v; want false, nil", authed, err)
	}
	if _, err := c.source.Token(); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Token error = %v, want ErrTokenExpired", err)
	}
}

func TestTokenExpiryFollowsClientClock(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	now := time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC)
	c, _, _ := newTestClient(t, api, WithClock(func() time.Time { return now }))
	configure(t, c)

	if _, err := c.Authenticate(t.Context(), "abc", "xyz", "123"); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}

	token, err := c.source.Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if token.AccessToken != "profile-token" {
		t.Errorf("AccessToken = %q, want profile-token", token.AccessToken)
	}
	if n := len(api.snapshot().refreshes); n != 0 {
		t.Fatalf("refreshed %d times while the token was live", n)
	}

	now = now.Add(time.Hour)

	token, err = c.source.Token()
	if err != nil {
		t.Fatalf("Token after expiry: %v", err)
	}
	if token.AccessToken != "fresh-token" {
		t.Errorf("AccessToken = %q, want fresh-token", token.AccessToken)
	}
	if n := len(api.snapshot().refreshes); n != 1 {
		t.Errorf("refreshes = %d, want 1", n)
	}
}

func TestTokenContextCanceled(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	c, tokens, _ := newTestClient(t, api)
	configure(t, c)

	_ = tokens.Save(t.Context(), &oauth2.Token{
		AccessToken:  "stale",
		RefreshToken: "refresh-token",
		Expiry:       time.Now().Add(-time.Minute),
	})

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	if _, err := c.source.TokenContext(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("TokenContext error = %v, want context.Canceled", err)
	}
	if n := len(api.snapshot().refreshes); n != 0 {
		t.Errorf("refresh reached the api %d times", n)
	}
}

func TestWithTimeout(t *testing.T) {
	t.Parallel()

	if got := New(&memoryTokens{}, &fakeDevice{}).timeout; got != defaultTimeout {
		t.Errorf("default timeout = %v, want %v", got, defaultTimeout)
	}
	if got := New(&memoryTokens{}, &fakeDevice{}, WithTimeout(2*time.Second)).timeout; got != 2*time.Second {
		t.Errorf("timeout = %v, want 2s", got)
	}
	if got := New(&memoryTokens{}, &fakeDevice{}, WithTimeout(0)).timeout; got != defaultTimeout {
		t.Errorf("zero timeout = %v, want %v", got, defaultTimeout)
	}
}

func TestSensorCallsUseDevice(t *testing.T) {
	t.Parallel()

	c, _, device := newTestClient(t, &fakeAPI{})
	configure(t, c)
	device.status = sdk.SensorStatusDisabled

	status, err := c.SensorStatus(t.Context(), sdk.DefaultSensors)
	if err != nil || status != sdk.SensorStatusDisabled {
		t.Errorf("SensorStatus = %s, %v", status, err)
	}

	status, err = c.EnableSensors(t.Context(), sdk.DefaultSensors)
	if err != nil || status != sdk.SensorStatusEnabled {
		t.Errorf("EnableSensors = %s, %v", status, err)
	}

	if diff := cmp.Diff([][]sdk.Sensor{sdk.DefaultSensors, sdk.DefaultSensors}, device.asked); diff != "" {
		t.Errorf("device calls (-want +got):\n%s", diff)
	}
}

func TestOpenAppSettings(t *testing.T) {
	t.Parallel()

	var opened []string
	opener := func(target string) error {
		opened = append(opened, target)
		return errors.New("no display")
	}

	c, _, _ := newTestClient(t, &fakeAPI{}, WithSettings("/tmp/sensorlink", opener))
	c.OpenAppSettings(t.Context())

	if diff := cmp.Diff([]string{"/tmp/sensorlink"}, opened); diff != "" {
		t.Errorf("opened (-want +got):\n%s", diff)
	}
}

func TestDBTokenStore(t *testing.T) {
	t.Parallel()

	sqlDB, q, err := db.Open(t.Context(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	store := NewDBTokenStore(q)
	ctx := t.Context()

	if _, err := store.Load(ctx); !errors.Is(err, ErrNoToken) {
		t.Fatalf("Load on empty store error = %v, want ErrNoToken", err)
	}

	want := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    TokenTypeProfile,
		Expiry:       time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.AccessToken != want.AccessToken || got.RefreshToken != want.RefreshToken ||
		got.TokenType != want.TokenType || !got.Expiry.Equal(want.Expiry) {
		t.Errorf("Load = %+v, want %+v", got, want)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := store.Load(ctx); !errors.Is(err, ErrNoToken) {
		t.Errorf("Load after Clear error = %v, want ErrNoToken", err)
	}
}
