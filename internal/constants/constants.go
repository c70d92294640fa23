package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// Reddit endpoints.
const (
	// DefaultBaseURL is the OAuth API host every authenticated call goes to.
	DefaultBaseURL = "https://oauth.reddit.com"

	// DefaultTokenURL is the OAuth2 token endpoint.
	DefaultTokenURL = "https://www.reddit.com/api/v1/access_token"

	// DefaultRevokeURL is the OAuth2 token revocation endpoint.
	DefaultRevokeURL = "https://www.reddit.com/api/v1/revoke_token"

	// InstalledClientGrantType is the grant used by installed apps without a secret.
	InstalledClientGrantType = "https://oauth.reddit.com/grants/installed_client"

	// DefaultUserAgent is sent when the caller does not configure one.
	// Reddit throttles requests carrying generic user agents.
	DefaultUserAgent = "go:github.com/fivetwenty-io/reddit-client:v1 (by /u/fivetwenty-io)"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as token requests.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second

	// ExtendedRetryWaitMax is used for operations that need longer waits.
	ExtendedRetryWaitMax = 30 * time.Second
)

// Cache lifetimes.
const (
	// MeCacheTTL is how long the authenticated user's profile stays fresh.
	MeCacheTTL = 60 * time.Second

	// ScopesCacheTTL is how long the OAuth scope catalogue is cached.
	ScopesCacheTTL = 1 * time.Hour

	// DefaultCacheSize is the default number of entries held by the memory cache.
	DefaultCacheSize = 100

	// ScopesCacheKey is the cache key of the scope catalogue.
	ScopesCacheKey = "scopes:v1"
)

// Listing defaults.
const (
	// DefaultListingLimit is the default number of items requested per listing.
	DefaultListingLimit = 25

	// MaxListingLimit is the largest limit the remote API honours.
	MaxListingLimit = 100

	// DefaultListingShow is the default "show" filter.
	DefaultListingShow = "all"

	// DefaultFriendPayload is sent when UpdateFriend is given no JSON body.
	DefaultFriendPayload = "{}"

	// MaxFriendNoteLength is the longest friend note the remote API accepts.
	MaxFriendNoteLength = 300
)

// Relationship listing names for /prefs/{where}.
const (
	WhereFriends   = "friends"
	WhereMessaging = "messaging"
	WhereBlocked   = "blocked"
	WhereTrusted   = "trusted"
)

// Thing kinds returned by the remote API.
const (
	KindKarmaList       = "KarmaList"
	KindTrophyList      = "TrophyList"
	KindAward           = "t6"
	KindUserList        = "UserList"
	KindWikiPageListing = "wikipagelisting"
)

// Token handling.
const (
	// TokenExpirationBuffer is the buffer time before token expiration.
	TokenExpirationBuffer = 30 * time.Second

	// DefaultTokenLifetime is assumed when a token response omits expires_in.
	DefaultTokenLifetime = 1 * time.Hour

	// AllScopes requests every scope the app is allowed.
	AllScopes = "*"
)

// HTTP status codes commonly used.
const (
	// HTTPStatusOK represents a successful HTTP response.
	HTTPStatusOK = 200

	// HTTPStatusBadRequest represents a client error.
	HTTPStatusBadRequest = 400
)

// Validation and limits.
const (
	// MinimumArgumentCount is the minimum number of command line arguments.
	MinimumArgumentCount = 2
)

// UI and display constants.
const (
	// CheckMarkSymbol is used to indicate current/active items.
	CheckMarkSymbol = "✓"

	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// TimeFormat is used when rendering timestamps in tables.
	TimeFormat = "2006-01-02 15:04:05"
)

// Boolean string constants.
const (
	// BooleanTrue string representation.
	BooleanTrue = "true"

	// BooleanFalse string representation.
	BooleanFalse = "false"
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"
)
