package constants

import "errors"

// Profile and configuration errors.
var (
	ErrNoProfilesConfigured = errors.New("no profiles configured, use 'rdt login' to add one")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrNoRefreshToken       = errors.New("no refresh token available for this profile, please run 'rdt login' again")
	ErrFailedRetrieveToken  = errors.New("failed to retrieve refreshed token")
	ErrUnknownConfigKey     = errors.New("unknown configuration key")
	ErrTokenFieldsCannotSet = errors.New("token fields cannot be changed via config command")
)

// Validation errors.
var (
	ErrUsernameRequired    = errors.New("username is required")
	ErrSubredditRequired   = errors.New("subreddit is required")
	ErrNoteTooLong         = errors.New("friend note is longer than 300 characters")
	ErrInvalidPrefValue    = errors.New("invalid preference value")
	ErrUnknownPreference   = errors.New("unknown or read-only preference")
	ErrUnsupportedFormat   = errors.New("unsupported output format")
	ErrClientIDRequired    = errors.New("client ID is required")
	ErrCredentialsRequired = errors.New("username/password or client credentials are required")
)
