package sahha

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	go_json "github.com/goccy/go-json"
	"golang.org/x/oauth2"

	"github.com/garrettladley/sensorlink/internal/credentials"
	"github.com/garrettladley/sensorlink/internal/sdk"
	"github.com/garrettladley/sensorlink/internal/xhttp"
	"github.com/garrettladley/sensorlink/internal/xslog"
)

const (
	sandboxBaseURL    = "https://sandbox-api.sahha.ai/api/v1"
	productionBaseURL = "https://api.sahha.ai/api/v1"

	headerAppID     = "AppId"
	headerAppSecret = "AppSecret"

	defaultTimeout = 15 * time.Second
)

var errEmptyToken = errors.New("response carried no profile token")

// Device is the local permission store the sensor calls are answered from.
type Device interface {
	Status(ctx context.Context, sensors []sdk.Sensor) (sdk.SensorStatus, error)
	Enable(ctx context.Context, sensors []sdk.Sensor) (sdk.SensorStatus, error)
}

var _ sdk.Client = (*Client)(nil)

type Client struct {
	tokens     TokenStore
	device     Device
	source     *profileTokenSource
	httpClient *http.Client
	transport  http.RoundTripper
	timeout    time.Duration
	logger     *slog.Logger
	opener     func(target string) error
	settings   string
	now        func() time.Time

	baseURLOverride string

	mu          sync.RWMutex
	configured  bool
	environment sdk.Environment
	baseURL     string
}

func New(tokens TokenStore, device Device, opts ...Option) *Client {
	cfg := &clientConfig{
		logger:  slog.New(slog.DiscardHandler),
		opener:  openBrowser,
		now:     time.Now,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	base := &sahhaTransport{
		base:      xhttp.NewTransport(),
		sessionID: cfg.sessionID,
	}

	c := &Client{
		tokens:          tokens,
		device:          device,
		httpClient:      &http.Client{Transport: base, Timeout: cfg.timeout},
		transport:       base,
		timeout:         cfg.timeout,
		logger:          cfg.logger,
		opener:          cfg.opener,
		settings:        cfg.settingsTarget,
		now:             cfg.now,
		baseURLOverride: strings.TrimSuffix(cfg.baseURL, "/"),
	}

	c.source = &profileTokenSource{client: c, store: tokens}

	return c
}

// authClient signs requests with the profile token, loading and refreshing
// it under ctx.
func (c *Client) authClient(ctx context.Context) *http.Client {
	return &http.Client{
		Transport: &oauth2.Transport{
			Source: contextTokenSource{ctx: ctx, source: c.source},
			Base:   c.transport,
		},
		Timeout: c.timeout,
	}
}

type clientConfig struct {
	baseURL        string
	logger         *slog.Logger
	sessionID      string
	timeout        time.Duration
	opener         func(string) error
	settingsTarget string
	now            func() time.Time
}

type Option func(*clientConfig)

// WithBaseURL points every environment at one API, e.g. a local sandbox.
func WithBaseURL(baseURL string) Option {
	return func(cfg *clientConfig) { cfg.baseURL = baseURL }
}

func WithSessionID(sessionID string) Option {
	return func(cfg *clientConfig) { cfg.sessionID = sessionID }
}

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *clientConfig) { cfg.logger = logger }
}

func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) {
		if d > 0 {
			cfg.timeout = d
		}
	}
}

// WithSettings sets what OpenAppSettings opens and how.
func WithSettings(target string, opener func(string) error) Option {
	return func(cfg *clientConfig) {
		cfg.settingsTarget = target
		if opener != nil {
			cfg.opener = opener
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(cfg *clientConfig) { cfg.now = now }
}

func BaseURL(env sdk.Environment) string {
	if env == sdk.EnvironmentProduction {
		return productionBaseURL
	}
	return sandboxBaseURL
}

func (c *Client) Configure(ctx context.Context, settings sdk.Settings) error {
	if !settings.Environment.Valid() {
		return fmt.Errorf("%w: %q", sdk.ErrInvalidEnvironment, settings.Environment)
	}

	baseURL := BaseURL(settings.Environment)
	if c.baseURLOverride != "" {
		baseURL = c.baseURLOverride
	}

	// surface a broken token store now rather than on the first status check
	if _, err := c.tokens.Load(ctx); err != nil && !errors.Is(err, ErrNoToken) {
		return fmt.Errorf("failed to read profile token: %w", err)
	}

	c.mu.Lock()
	c.configured = true
	c.environment = settings.Environment
	c.baseURL = baseURL
	c.mu.Unlock()

	c.logger.InfoContext(ctx, "sdk configured",
		xslog.Environment(settings.Environment.String()),
		slog.String("base_url", baseURL))
	return nil
}

func (c *Client) IsAuthenticated(ctx context.Context) (bool, error) {
	if err := c.ready(); err != nil {
		return false, err
	}

	token, err := c.tokens.Load(ctx)
	if errors.Is(err, ErrNoToken) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return c.valid(token) || token.RefreshToken != "", nil
}

func (c *Client) Authenticate(ctx context.Context, appID, appSecret, userID string) (bool, error) {
	const route = "/oauth/profile/register/appId"

	if err := c.ready(); err != nil {
		return false, err
	}
	if !(credentials.Credentials{AppID: appID, AppSecret: appSecret, UserID: userID}).Complete() {
		return false, errors.New("app id, app secret and user id are all required")
	}

	headers := http.Header{}
	headers.Set(headerAppID, appID)
	headers.Set(headerAppSecret, appSecret)

	var resp TokenResponse
	if err := c.do(ctx, c.httpClient, http.MethodPost, route, headers, RegisterRequest{ExternalID: userID}, &resp); err != nil {
		return false, err
	}
	if resp.ProfileToken == "" {
		return false, sdk.ErrEmptyResponse
	}

	if err := c.tokens.Save(ctx, resp.Token(c.now())); err != nil {
		return false, fmt.Errorf("failed to save profile token: %w", err)
	}
	c.source.reset()

	if err := c.putDeviceInformation(ctx, appID); err != nil {
		c.logger.WarnContext(ctx, "failed to upload device information", xslog.Error(err))
	}

	return true, nil
}

func (c *Client) SensorStatus(ctx context.Context, sensors []sdk.Sensor) (sdk.SensorStatus, error) {
	if err := c.ready(); err != nil {
		return sdk.SensorStatusPending, err
	}
	return c.device.Status(ctx, sensors)
}

func (c *Client) EnableSensors(ctx context.Context, sensors []sdk.Sensor) (sdk.SensorStatus, error) {
	if err := c.ready(); err != nil {
		return sdk.SensorStatusPending, err
	}
	return c.device.Enable(ctx, sensors)
}

func (c *Client) OpenAppSettings(ctx context.Context) {
	if c.settings == "" {
		c.logger.WarnContext(ctx, "no settings location configured")
		return
	}
	if err := c.opener(c.settings); err != nil {
		c.logger.WarnContext(ctx, "failed to open app settings", xslog.Error(err))
	}
}

func (c *Client) ready() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.configured {
		return sdk.ErrNotConfigured
	}
	return nil
}

func (c *Client) route(path string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL + path
}

func (c *Client) do(ctx context.Context, hc *http.Client, method string, path string, headers http.Header, body any, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := go_json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.route(path), reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	for k, v := range headers {
		req.Header[k] = v
	}
	if body != nil {
		xhttp.SetRequestHeaderContentTypeApplicationJSON(req)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return parseAPIError(resp)
	}

	if result != nil && resp.StatusCode != http.StatusNoContent {
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}
		if len(bytes.TrimSpace(data)) == 0 {
			return sdk.ErrEmptyResponse
		}
		if err := go_json.NewDecoder(bytes.NewReader(data)).Decode(result); err != nil {
			return fmt.Errorf("decoding response: %w\nbody: %s", err, string(data))
		}
	}

	return nil
}

type sahhaTransport struct {
	base      http.RoundTripper
	sessionID string
}

var _ http.RoundTripper = (*sahhaTransport)(nil)

func (t *sahhaTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Accept", "application/json")
	if t.sessionID != "" {
		xhttp.SetRequestHeaderSessionID(req, t.sessionID)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("round trip: %w", err)
	}
	return resp, nil
}
