package client

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fivetwenty-io/reddit-client/internal/auth"
	"github.com/fivetwenty-io/reddit-client/internal/constants"
	"github.com/fivetwenty-io/reddit-client/internal/dispatch"
	"github.com/fivetwenty-io/reddit-client/internal/http"
	"github.com/fivetwenty-io/reddit-client/pkg/reddit"
)

// Client implements the reddit.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	baseURL      string
	logger       reddit.Logger
	cache        reddit.Cache

	account *AccountController
	scopes  *ScopesController
	wiki    *WikiController
}

// createTokenManager creates appropriate token manager based on config.
func createTokenManager(config *reddit.Config) auth.TokenManager {
	if config.AccessToken != "" && config.Username != "" && config.Password != "" {
		return &fallbackTokenManager{
			staticToken:  config.AccessToken,
			oauthManager: auth.NewOAuth2TokenManager(oauthConfig(config, false)),
		}
	}

	if config.AccessToken != "" {
		return &staticTokenManager{token: config.AccessToken}
	}

	if config.ClientID != "" {
		return auth.NewOAuth2TokenManager(oauthConfig(config, true))
	}

	return nil
}

func oauthConfig(config *reddit.Config, withRefresh bool) *auth.OAuth2Config {
	scopes := config.Scopes
	if len(scopes) == 0 {
		scopes = []string{constants.AllScopes}
	}

	oauth := &auth.OAuth2Config{
		TokenURL:     config.TokenURL,
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		Username:     config.Username,
		Password:     config.Password,
		DeviceID:     config.DeviceID,
		Scopes:       scopes,
		UserAgent:    config.UserAgent,
	}

	if withRefresh {
		oauth.RefreshToken = config.RefreshToken
	}

	return oauth
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *reddit.Config) ([]http.Option, error) {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithHTTPTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.ExtendedRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	if config.TracerProvider != nil {
		httpOpts = append(httpOpts, http.WithTracerProvider(config.TracerProvider))
	}

	if config.Metrics != nil {
		metrics, err := http.NewMetrics(config.Metrics)
		if err != nil {
			return nil, fmt.Errorf("registering metrics: %w", err)
		}

		httpOpts = append(httpOpts, http.WithMetrics(metrics))
	}

	return httpOpts, nil
}

// New creates a new Reddit API client.
func New(ctx context.Context, config *reddit.Config) (*Client, error) {
	if config == nil {
		return nil, reddit.ErrConfigRequired
	}

	return NewWithTokenManager(config, createTokenManager(config))
}

// NewWithTokenManager creates a new Reddit API client with a custom token manager.
func NewWithTokenManager(config *reddit.Config, tokenManager auth.TokenManager) (*Client, error) {
	if config == nil {
		return nil, reddit.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, reddit.ErrBaseURLRequired
	}

	httpOpts, err := createHTTPClientOptions(config)
	if err != nil {
		return nil, err
	}

	cache, err := reddit.NewCacheFromConfig(config.Cache)
	if err != nil {
		return nil, fmt.Errorf("creating cache: %w", err)
	}

	httpClient := http.NewClient(config.BaseURL, tokenManager, httpOpts...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      config.BaseURL,
		logger:       config.Logger,
		cache:        cache,
	}

	client.initializeResourceClients(config)

	return client, nil
}

func (c *Client) initializeResourceClients(config *reddit.Config) {
	accountOpts := []AccountOption{WithMeCacheTTL(config.MeCacheTTL)}
	if c.logger != nil {
		accountOpts = append(accountOpts, WithAccountLogger(c.logger))
	}

	var scopesTTL time.Duration
	if config.Cache != nil && config.Cache.Options != nil {
		scopesTTL = config.Cache.Options.TTL
	}

	c.account = NewAccountController(
		dispatch.NewAccountDispatch(c.httpClient),
		dispatch.NewUsersDispatch(c.httpClient),
		accountOpts...,
	)
	c.scopes = NewScopesController(dispatch.NewScopesDispatch(c.httpClient), c.cache, scopesTTL, c.logger)
	c.wiki = NewWikiController(dispatch.NewWikiDispatch(c.httpClient))
}

// Account implements reddit.Client.Account.
func (c *Client) Account() reddit.AccountClient {
	return c.account
}

// Scopes implements reddit.Client.Scopes.
func (c *Client) Scopes() reddit.ScopesClient {
	return c.scopes
}

// Wiki implements reddit.Client.Wiki.
func (c *Client) Wiki() reddit.WikiClient {
	return c.wiki
}

// GetToken implements reddit.Client.GetToken.
func (c *Client) GetToken(ctx context.Context) (string, error) {
	if c.tokenManager == nil {
		return "", reddit.ErrNoTokenManager
	}

	token, err := c.tokenManager.GetToken(ctx)
	if err != nil {
		return "", fmt.Errorf("getting token: %w", err)
	}

	return token, nil
}

// GetTokenManager returns the token manager for this client.
func (c *Client) GetTokenManager() auth.TokenManager {
	return c.tokenManager
}

// Close releases the cache backend connection, if any.
func (c *Client) Close() error {
	if closer, ok := c.cache.(io.Closer); ok {
		return closer.Close()
	}

	return nil
}

type staticTokenManager struct {
	mu    sync.RWMutex
	token string
}

func (m *staticTokenManager) GetToken(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.token, nil
}

func (m *staticTokenManager) RefreshToken(ctx context.Context) error {
	return reddit.ErrStaticTokenCannotRenew
}

func (m *staticTokenManager) SetToken(token string, expiresAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = token
}

// fallbackTokenManager serves the static token until the API rejects it, then
// switches to the password grant for good.
type fallbackTokenManager struct {
	mu           sync.Mutex
	staticToken  string
	oauthManager auth.TokenManager
	usingOAuth   bool
}

func (m *fallbackTokenManager) GetToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	usingOAuth := m.usingOAuth || m.staticToken == ""
	m.usingOAuth = usingOAuth
	staticToken := m.staticToken
	m.mu.Unlock()

	if !usingOAuth {
		return staticToken, nil
	}

	token, err := m.oauthManager.GetToken(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get OAuth token: %w", err)
	}

	return token, nil
}

func (m *fallbackTokenManager) RefreshToken(ctx context.Context) error {
	m.mu.Lock()
	switched := !m.usingOAuth
	m.usingOAuth = true
	m.mu.Unlock()

	if switched {
		_, err := m.oauthManager.GetToken(ctx)
		if err != nil {
			return fmt.Errorf("failed to get OAuth token during refresh: %w", err)
		}

		return nil
	}

	err := m.oauthManager.RefreshToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh OAuth token: %w", err)
	}

	return nil
}

func (m *fallbackTokenManager) SetToken(token string, expiresAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.usingOAuth {
		m.oauthManager.SetToken(token, expiresAt)

		return
	}

	m.staticToken = token
}
