package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/fivetwenty-io/reddit-client/internal/constants"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Static errors for err113 compliance.
var (
	ErrNoValidCredentials = errors.New("no valid credentials available")
	ErrRevokeFailed       = errors.New("token revocation failed")
	ErrNoTokenToRevoke    = errors.New("no token to revoke")
)

// Token represents an OAuth2 token.
type Token struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresIn    int       `json:"expires_in,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	Scope        string    `json:"scope,omitempty"`
	ExpiresAt    time.Time `json:"-"`
}

// Valid returns true if the token is present and not about to expire.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return time.Now().Add(constants.TokenExpirationBuffer).Before(t.ExpiresAt)
}

// TokenStore holds the current token and is safe for concurrent use.
type TokenStore struct {
	mu    sync.RWMutex
	token *Token
}

// NewTokenStore creates an empty token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns the stored token or nil.
func (s *TokenStore) Get() *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// Set stores a token.
func (s *TokenStore) Set(token *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}

// Clear removes the stored token.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = nil
}

// TokenManager provides bearer tokens to the HTTP layer.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) error
	SetToken(token string, expiresAt time.Time)
}

// OAuth2Config holds the OAuth2 application and user credentials.
type OAuth2Config struct {
	TokenURL     string
	RevokeURL    string
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	RefreshToken string
	AccessToken  string
	// DeviceID enables the installed client grant for apps without a secret.
	DeviceID  string
	Scopes    []string
	UserAgent string
	// HTTPClient is used for token requests. Nil means a client with ShortHTTPTimeout.
	HTTPClient *http.Client
}

// OAuth2TokenManager obtains tokens from the Reddit token endpoint.
//
// Grants are tried in this order: refresh token, password, installed client
// (DeviceID set), client credentials.
type OAuth2TokenManager struct {
	config *OAuth2Config
	store  *TokenStore
	mu     sync.Mutex
}

// NewOAuth2TokenManager creates a token manager. A configured AccessToken is
// stored without expiry.
func NewOAuth2TokenManager(config *OAuth2Config) *OAuth2TokenManager {
	if config.TokenURL == "" {
		config.TokenURL = constants.DefaultTokenURL
	}

	manager := &OAuth2TokenManager{
		config: config,
		store:  NewTokenStore(),
	}

	if config.AccessToken != "" {
		manager.store.Set(&Token{
			AccessToken:  config.AccessToken,
			RefreshToken: config.RefreshToken,
			TokenType:    "bearer",
		})
	}

	return manager
}

// NewRedditTokenManager creates an application-only token manager using the
// client credentials grant.
func NewRedditTokenManager(clientID, clientSecret string) *OAuth2TokenManager {
	return NewOAuth2TokenManager(&OAuth2Config{
		TokenURL:     constants.DefaultTokenURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scopes:       []string{constants.AllScopes},
	})
}

// NewRedditTokenManagerWithPassword creates a token manager for "script" apps
// using the password grant.
func NewRedditTokenManagerWithPassword(clientID, clientSecret, username, password string) *OAuth2TokenManager {
	return NewOAuth2TokenManager(&OAuth2Config{
		TokenURL:     constants.DefaultTokenURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Username:     username,
		Password:     password,
		Scopes:       []string{constants.AllScopes},
	})
}

// NewRedditTokenManagerWithRefreshToken creates a token manager that renews
// access from a long-lived refresh token.
func NewRedditTokenManagerWithRefreshToken(clientID, clientSecret, refreshToken string) *OAuth2TokenManager {
	return NewOAuth2TokenManager(&OAuth2Config{
		TokenURL:     constants.DefaultTokenURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RefreshToken: refreshToken,
		Scopes:       []string{constants.AllScopes},
	})
}

// GetToken returns a valid access token, fetching a new one if necessary.
func (m *OAuth2TokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if token.Valid() {
		return token.AccessToken, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Another caller may have refreshed while we waited.
	token = m.store.Get()
	if token.Valid() {
		return token.AccessToken, nil
	}

	token, err := m.fetchToken(ctx)
	if err != nil {
		return "", err
	}

	return token.AccessToken, nil
}

// RefreshToken forces a new token to be fetched.
func (m *OAuth2TokenManager) RefreshToken(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, err := m.fetchToken(ctx)

	return err
}

// SetToken manually sets the access token.
func (m *OAuth2TokenManager) SetToken(token string, expiresAt time.Time) {
	refreshToken := m.config.RefreshToken
	if current := m.store.Get(); current != nil && current.RefreshToken != "" {
		refreshToken = current.RefreshToken
	}

	m.store.Set(&Token{
		AccessToken:  token,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresAt:    expiresAt,
	})
}

// CurrentToken returns a copy of the stored token or nil.
func (m *OAuth2TokenManager) CurrentToken() *Token {
	token := m.store.Get()
	if token == nil {
		return nil
	}

	cp := *token

	return &cp
}

func (m *OAuth2TokenManager) fetchToken(ctx context.Context) (*Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, m.tokenHTTPClient())

	var (
		tok *oauth2.Token
		err error
	)

	refreshToken := m.config.RefreshToken
	if current := m.store.Get(); current != nil && current.RefreshToken != "" {
		refreshToken = current.RefreshToken
	}

	switch {
	case refreshToken != "":
		tok, err = m.oauth2Config().TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	case m.config.Username != "" && m.config.Password != "":
		tok, err = m.oauth2Config().PasswordCredentialsToken(ctx, m.config.Username, m.config.Password)
	case m.config.ClientID != "" && m.config.DeviceID != "":
		tok, err = m.clientCredentialsConfig(url.Values{
			"grant_type": {constants.InstalledClientGrantType},
			"device_id":  {m.config.DeviceID},
		}).Token(ctx)
	case m.config.ClientID != "":
		tok, err = m.clientCredentialsConfig(nil).Token(ctx)
	default:
		return nil, ErrNoValidCredentials
	}

	if err != nil {
		return nil, fmt.Errorf("failed to obtain token: %w", err)
	}

	token := fromOAuth2(tok)
	if token.RefreshToken == "" {
		token.RefreshToken = refreshToken
	}

	m.store.Set(token)

	return token, nil
}

func (m *OAuth2TokenManager) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     m.config.ClientID,
		ClientSecret: m.config.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  m.config.TokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
		Scopes: m.config.Scopes,
	}
}

func (m *OAuth2TokenManager) clientCredentialsConfig(params url.Values) *clientcredentials.Config {
	return &clientcredentials.Config{
		ClientID:       m.config.ClientID,
		ClientSecret:   m.config.ClientSecret,
		TokenURL:       m.config.TokenURL,
		Scopes:         m.config.Scopes,
		EndpointParams: params,
		AuthStyle:      oauth2.AuthStyleInHeader,
	}
}

func (m *OAuth2TokenManager) tokenHTTPClient() *http.Client {
	base := m.config.HTTPClient
	if base == nil {
		base = &http.Client{Timeout: constants.ShortHTTPTimeout}
	}

	userAgent := m.config.UserAgent
	if userAgent == "" {
		userAgent = constants.DefaultUserAgent
	}

	transport := base.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &http.Client{
		Timeout:   base.Timeout,
		Transport: &userAgentTransport{base: transport, userAgent: userAgent},
	}
}

// RevokeToken revokes the current access and refresh tokens and clears the
// store.
func (m *OAuth2TokenManager) RevokeToken(ctx context.Context) error {
	token := m.store.Get()
	if token == nil {
		return ErrNoTokenToRevoke
	}

	revokeURL := m.config.RevokeURL
	if revokeURL == "" {
		revokeURL = constants.DefaultRevokeURL
	}

	client := m.tokenHTTPClient()

	revoke := func(value, hint string) error {
		form := url.Values{"token": {value}, "token_type_hint": {hint}}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, revokeURL, strings.NewReader(form.Encode()))
		if err != nil {
			return fmt.Errorf("creating revoke request: %w", err)
		}

		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.SetBasicAuth(m.config.ClientID, m.config.ClientSecret)

		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("revoking %s: %w", hint, err)
		}

		_ = resp.Body.Close()

		if resp.StatusCode >= http.StatusBadRequest {
			return fmt.Errorf("%w: %s returned status %d", ErrRevokeFailed, hint, resp.StatusCode)
		}

		return nil
	}

	if token.RefreshToken != "" {
		err := revoke(token.RefreshToken, "refresh_token")
		if err != nil {
			return err
		}
	}

	if token.AccessToken != "" {
		err := revoke(token.AccessToken, "access_token")
		if err != nil {
			return err
		}
	}

	m.store.Clear()

	return nil
}

func fromOAuth2(tok *oauth2.Token) *Token {
	token := &Token{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		ExpiresAt:    tok.Expiry,
	}

	if tok.ExpiresIn > 0 {
		token.ExpiresIn = int(tok.ExpiresIn)
	} else if !tok.Expiry.IsZero() {
		token.ExpiresIn = int(time.Until(tok.Expiry).Seconds())
	}

	if token.ExpiresAt.IsZero() {
		token.ExpiresAt = time.Now().Add(constants.DefaultTokenLifetime)
	}

	if scope, ok := tok.Extra("scope").(string); ok {
		token.Scope = scope
	}

	return token
}

type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.userAgent)

	return t.base.RoundTrip(clone)
}
