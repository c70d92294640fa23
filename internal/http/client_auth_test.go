package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	reddithttp "github.com/fivetwenty-io/reddit-client/internal/http"
	"github.com/fivetwenty-io/reddit-client/pkg/reddit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rotatingTokenManager struct {
	mu        sync.Mutex
	tokens    []string
	current   int
	refreshes int
}

func (m *rotatingTokenManager) GetToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.tokens[m.current], nil
}

func (m *rotatingTokenManager) RefreshToken(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.refreshes++
	if m.current < len(m.tokens)-1 {
		m.current++
	}

	return nil
}

func (m *rotatingTokenManager) SetToken(token string, expiresAt time.Time) {}

func TestClient_RefreshesTokenOnUnauthorized(t *testing.T) {
	t.Parallel()

	var seen []string

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		auth := request.Header.Get("Authorization")
		seen = append(seen, auth)

		if auth != "Bearer fresh" {
			writer.WriteHeader(http.StatusUnauthorized)
			_, _ = writer.Write([]byte(`{"message": "Unauthorized", "error": 401}`))

			return
		}

		_, _ = writer.Write([]byte(`{"name": "spez"}`))
	}))
	defer server.Close()

	tokens := &rotatingTokenManager{tokens: []string{"stale", "fresh"}}
	client := reddithttp.NewClient(server.URL, tokens)

	resp, err := client.Get(context.Background(), "/api/v1/me", nil)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, []string{"Bearer stale", "Bearer fresh"}, seen)
	assert.Equal(t, 1, tokens.refreshes)
}

func TestClient_UnauthorizedReplayedOnlyOnce(t *testing.T) {
	t.Parallel()

	attempts := 0

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		attempts++

		writer.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	tokens := &rotatingTokenManager{tokens: []string{"a", "b", "c"}}
	client := reddithttp.NewClient(server.URL, tokens)

	resp, err := client.Get(context.Background(), "/api/v1/me", nil)
	require.Error(t, err)
	assert.Equal(t, 401, resp.StatusCode)
	assert.True(t, reddit.IsUnauthorized(err))
	assert.Equal(t, 2, attempts)
}

func TestClient_UserAgentAndRawBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "linux:test:v1 (by /u/tester)", request.Header.Get("User-Agent"))

		body, _ := io.ReadAll(request.Body)
		assert.JSONEq(t, `{"name":"spez","note":"hi"}`, string(body))

		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := reddithttp.NewClient(server.URL, nil, reddithttp.WithUserAgent("linux:test:v1 (by /u/tester)"))

	_, err := client.Put(context.Background(), "/api/v1/me/friends/spez", `{"name":"spez","note":"hi"}`)
	require.NoError(t, err)
}

func TestResponse_RateLimit(t *testing.T) {
	t.Parallel()

	resp := &reddithttp.Response{Headers: http.Header{}}

	_, ok := resp.RateLimit()
	assert.False(t, ok)

	resp.Headers.Set("X-Ratelimit-Remaining", "598.0")
	resp.Headers.Set("X-Ratelimit-Used", "2")
	resp.Headers.Set("X-Ratelimit-Reset", "340")

	limit, ok := resp.RateLimit()
	require.True(t, ok)
	assert.InDelta(t, 598.0, limit.Remaining, 0.001)
	assert.Equal(t, 2, limit.Used)
	assert.Equal(t, 340*time.Second, limit.Reset)
}
