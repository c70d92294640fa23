package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrNoConfigPersister = errors.New("no config persister configured")
)

// ConfigPersister persists renewed tokens back to the CLI configuration.
type ConfigPersister interface {
	UpdateProfileToken(profile, token string, expiresAt time.Time, refreshToken string) error
}

// ConfigTokenManager wraps OAuth2TokenManager and writes every renewed token
// to the configured profile.
type ConfigTokenManager struct {
	oauth2Manager   *OAuth2TokenManager
	configPersister ConfigPersister
	profile         string
	mutex           sync.Mutex
	lastToken       string
	lastExpiry      time.Time

	// OnPersistError is called when writing a renewed token fails. Nil ignores
	// the failure.
	OnPersistError func(err error)
}

// NewConfigTokenManager creates a config-persisting token manager.
func NewConfigTokenManager(config *OAuth2Config, configPersister ConfigPersister, profile string, initialToken string, initialExpiry time.Time) *ConfigTokenManager {
	oauth2Manager := NewOAuth2TokenManager(config)

	if initialToken != "" {
		oauth2Manager.SetToken(initialToken, initialExpiry)
	}

	return &ConfigTokenManager{
		oauth2Manager:   oauth2Manager,
		configPersister: configPersister,
		profile:         profile,
		lastToken:       initialToken,
		lastExpiry:      initialExpiry,
	}
}

// GetToken returns a valid access token, persisting it when it was renewed.
func (m *ConfigTokenManager) GetToken(ctx context.Context) (string, error) {
	token, err := m.oauth2Manager.GetToken(ctx)
	if err != nil {
		return "", err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	current := m.oauth2Manager.store.Get()
	if current != nil && (current.AccessToken != m.lastToken || !current.ExpiresAt.Equal(m.lastExpiry)) {
		m.persistLocked(current)
	}

	return token, nil
}

// RefreshToken forces a token refresh and persists the result.
func (m *ConfigTokenManager) RefreshToken(ctx context.Context) error {
	err := m.oauth2Manager.RefreshToken(ctx)
	if err != nil {
		return err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	current := m.oauth2Manager.store.Get()
	if current != nil {
		m.persistLocked(current)
	}

	return nil
}

// SetToken manually sets the access token without persisting it.
func (m *ConfigTokenManager) SetToken(token string, expiresAt time.Time) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.oauth2Manager.SetToken(token, expiresAt)
	m.lastToken = token
	m.lastExpiry = expiresAt
}

func (m *ConfigTokenManager) persistLocked(token *Token) {
	m.lastToken = token.AccessToken
	m.lastExpiry = token.ExpiresAt

	err := m.persistToken(token)
	if err != nil && m.OnPersistError != nil {
		m.OnPersistError(err)
	}
}

func (m *ConfigTokenManager) persistToken(token *Token) error {
	if m.configPersister == nil {
		return ErrNoConfigPersister
	}

	err := m.configPersister.UpdateProfileToken(m.profile, token.AccessToken, token.ExpiresAt, token.RefreshToken)
	if err != nil {
		return fmt.Errorf("failed to update profile token: %w", err)
	}

	return nil
}
