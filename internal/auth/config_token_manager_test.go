package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPersister struct {
	mu      sync.Mutex
	profile string
	token   string
	refresh string
	calls   int
	err     error
}

func (p *recordingPersister) UpdateProfileToken(profile, token string, expiresAt time.Time, refreshToken string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls++
	p.profile = profile
	p.token = token
	p.refresh = refreshToken

	return p.err
}

func TestConfigTokenManager_PersistsRenewedToken(t *testing.T) {
	t.Parallel()

	server := tokenServer(t, nil, Token{AccessToken: "renewed", ExpiresIn: 3600, TokenType: "bearer"})
	defer server.Close()

	persister := &recordingPersister{}
	manager := NewConfigTokenManager(&OAuth2Config{
		TokenURL:     server.URL + "/api/v1/access_token",
		ClientID:     "client-id",
		RefreshToken: "refresh",
	}, persister, "default", "stale", time.Now().Add(-time.Hour))

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "renewed", token)

	assert.Equal(t, 1, persister.calls)
	assert.Equal(t, "default", persister.profile)
	assert.Equal(t, "renewed", persister.token)
	assert.Equal(t, "refresh", persister.refresh)

	// Unchanged token is not written again.
	_, err = manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, persister.calls)
}

func TestConfigTokenManager_RefreshToken(t *testing.T) {
	t.Parallel()

	server := tokenServer(t, nil, Token{AccessToken: "forced", ExpiresIn: 3600, TokenType: "bearer"})
	defer server.Close()

	persister := &recordingPersister{err: errors.New("disk full")}

	var persistErr error

	manager := NewConfigTokenManager(&OAuth2Config{
		TokenURL:     server.URL + "/api/v1/access_token",
		ClientID:     "client-id",
		ClientSecret: "secret",
	}, persister, "work", "current", time.Now().Add(time.Hour))
	manager.OnPersistError = func(err error) { persistErr = err }

	require.NoError(t, manager.RefreshToken(context.Background()))
	assert.Equal(t, "forced", persister.token)
	require.Error(t, persistErr)
	assert.Contains(t, persistErr.Error(), "disk full")
}

func TestConfigTokenManager_StoredTokenNotPersisted(t *testing.T) {
	t.Parallel()

	persister := &recordingPersister{}
	manager := NewConfigTokenManager(&OAuth2Config{ClientID: "client-id"}, persister, "default", "stored", time.Now().Add(time.Hour))

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "stored", token)
	assert.Equal(t, 0, persister.calls)

	manager.SetToken("manual", time.Now().Add(time.Hour))

	token, err = manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "manual", token)
	assert.Equal(t, 0, persister.calls)
}

func TestConfigTokenManager_NoPersister(t *testing.T) {
	t.Parallel()

	manager := NewConfigTokenManager(&OAuth2Config{}, nil, "default", "", time.Time{})
	require.ErrorIs(t, manager.persistToken(&Token{AccessToken: "x"}), ErrNoConfigPersister)
}
