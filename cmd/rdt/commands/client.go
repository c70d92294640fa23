package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fivetwenty-io/reddit-client/internal/auth"
	"github.com/fivetwenty-io/reddit-client/internal/client"
	"github.com/fivetwenty-io/reddit-client/internal/constants"
	"github.com/fivetwenty-io/reddit-client/pkg/reddit"
	"github.com/fivetwenty-io/reddit-client/pkg/redditclient"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// envOverrides maps RDT_* environment variables onto profile fields.
var envOverrides = map[string]func(p *ProfileConfig, v string){
	"client_id":     func(p *ProfileConfig, v string) { p.ClientID = v },
	"client_secret": func(p *ProfileConfig, v string) { p.ClientSecret = v },
	"username":      func(p *ProfileConfig, v string) { p.Username = v },
	"user_agent":    func(p *ProfileConfig, v string) { p.UserAgent = v },
	"base_url":      func(p *ProfileConfig, v string) { p.BaseURL = v },
	"token_url":     func(p *ProfileConfig, v string) { p.TokenURL = v },
	"token":         func(p *ProfileConfig, v string) { p.Token = v },
}

// resolveProfile returns a copy of the active profile with environment and
// flag overrides applied.
func resolveProfile(config *Config) (string, ProfileConfig) {
	name := activeProfileName(config)

	var profile ProfileConfig
	if stored := config.profile(name, false); stored != nil {
		profile = *stored
	}

	for key, apply := range envOverrides {
		if value := viper.GetString(key); value != "" {
			apply(&profile, value)
		}
	}

	return name, profile
}

// newLogger adapts the process-wide logrus logger.
func newLogger() reddit.Logger {
	return reddit.NewLogrusLogger(logrus.StandardLogger()).With(map[string]interface{}{
		"component": "rdt",
	})
}

func buildRedditConfig(config *Config, profile *ProfileConfig) *reddit.Config {
	baseURL := profile.BaseURL
	if baseURL == "" {
		baseURL = constants.DefaultBaseURL
	}

	tokenURL := profile.TokenURL
	if tokenURL == "" {
		tokenURL = constants.DefaultTokenURL
	}

	userAgent := profile.UserAgent
	if userAgent == "" {
		userAgent = constants.DefaultUserAgent
	}

	return &reddit.Config{
		BaseURL:   baseURL,
		TokenURL:  tokenURL,
		ClientID:  profile.ClientID,
		UserAgent: userAgent,
		Logger:    newLogger(),
		Debug:     viper.GetBool("verbose"),
		Cache:     config.Cache,
	}
}

func buildOAuth2Config(redditConfig *reddit.Config, profile *ProfileConfig) *auth.OAuth2Config {
	return &auth.OAuth2Config{
		TokenURL:     redditConfig.TokenURL,
		ClientID:     profile.ClientID,
		ClientSecret: profile.ClientSecret,
		Username:     profile.Username,
		Password:     viper.GetString("password"),
		RefreshToken: profile.RefreshToken,
		DeviceID:     profile.DeviceID,
		Scopes:       []string{constants.AllScopes},
		UserAgent:    redditConfig.UserAgent,
	}
}

// CreateClient creates a Reddit client for the active profile. Renewed tokens
// are written back to the configuration file.
func CreateClient() (reddit.Client, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, err
	}

	name, profile := resolveProfile(config)
	redditConfig := buildRedditConfig(config, &profile)

	if profile.ClientID == "" {
		if profile.Token == "" {
			return nil, fmt.Errorf("%w, use 'rdt login' first", ErrNotAuthenticated)
		}

		redditConfig.AccessToken = profile.Token

		return redditclient.New(context.Background(), redditConfig)
	}

	if sessionExpired(&profile) {
		return nil, fmt.Errorf("%w for u/%s, use 'rdt login' again", ErrSessionExpired, profile.Username)
	}

	path, err := configFilePath()
	if err != nil {
		return nil, err
	}

	var initialExpiry time.Time
	if profile.TokenExpiresAt != nil {
		initialExpiry = *profile.TokenExpiresAt
	}

	tokenManager := auth.NewConfigTokenManager(
		buildOAuth2Config(redditConfig, &profile),
		NewConfigPersister(path),
		name,
		profile.Token,
		initialExpiry,
	)
	tokenManager.OnPersistError = func(err error) {
		logrus.WithError(err).Warn("failed to save renewed token")
	}

	redditClient, err := client.NewWithTokenManager(redditConfig, tokenManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create client with token manager: %w", err)
	}

	return redditClient, nil
}

// sessionExpired reports whether a user session can no longer be renewed
// without the password.
func sessionExpired(profile *ProfileConfig) bool {
	if profile.Username == "" || profile.RefreshToken != "" || viper.GetString("password") != "" {
		return false
	}

	if profile.Token == "" {
		return true
	}

	return profile.TokenExpiresAt != nil && time.Now().After(*profile.TokenExpiresAt)
}

// closeClient releases cache connections held by the client.
func closeClient(c reddit.Client) {
	if closer, ok := c.(io.Closer); ok {
		_ = closer.Close()
	}
}
