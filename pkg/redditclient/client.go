// Package redditclient provides the main entry point for creating Reddit API clients
package redditclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/reddit-client/internal/client"
	"github.com/fivetwenty-io/reddit-client/internal/constants"
	"github.com/fivetwenty-io/reddit-client/pkg/reddit"
)

// New creates a new Reddit API client. Empty BaseURL, TokenURL and UserAgent
// fields are filled with the public Reddit defaults. The config is not modified.
func New(ctx context.Context, config *reddit.Config) (reddit.Client, error) {
	if config == nil {
		return nil, reddit.ErrConfigRequired
	}

	normalized := *config
	normalized.BaseURL = normalizeURL(config.BaseURL, constants.DefaultBaseURL)
	normalized.TokenURL = normalizeURL(config.TokenURL, constants.DefaultTokenURL)

	if normalized.UserAgent == "" {
		normalized.UserAgent = constants.DefaultUserAgent
	}

	client, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return client, nil
}

// normalizeURL adds a missing scheme and strips the trailing slash.
func normalizeURL(raw, fallback string) string {
	endpoint := strings.TrimSuffix(strings.TrimSpace(raw), "/")
	if endpoint == "" {
		return fallback
	}

	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}

// NewWithToken creates a new client with an access token obtained elsewhere.
func NewWithToken(ctx context.Context, userAgent, token string) (reddit.Client, error) {
	return New(ctx, &reddit.Config{
		UserAgent:   userAgent,
		AccessToken: token,
	})
}

// NewWithClientCredentials creates an application-only client.
func NewWithClientCredentials(ctx context.Context, userAgent, clientID, clientSecret string) (reddit.Client, error) {
	return New(ctx, &reddit.Config{
		UserAgent:    userAgent,
		ClientID:     clientID,
		ClientSecret: clientSecret,
	})
}

// NewWithPassword creates a new client for a "script" app using the password grant.
func NewWithPassword(ctx context.Context, userAgent, clientID, clientSecret, username, password string) (reddit.Client, error) {
	return New(ctx, &reddit.Config{
		UserAgent:    userAgent,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Username:     username,
		Password:     password,
	})
}

// NewWithRefreshToken creates a new client from a previously authorized refresh token.
func NewWithRefreshToken(ctx context.Context, userAgent, clientID, clientSecret, refreshToken string) (reddit.Client, error) {
	return New(ctx, &reddit.Config{
		UserAgent:    userAgent,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RefreshToken: refreshToken,
	})
}

// NewWithInstalledClient creates an application-only client for an installed
// app, which has no secret and identifies itself with a device ID.
func NewWithInstalledClient(ctx context.Context, userAgent, clientID, deviceID string) (reddit.Client, error) {
	return New(ctx, &reddit.Config{
		UserAgent: userAgent,
		ClientID:  clientID,
		DeviceID:  deviceID,
	})
}
