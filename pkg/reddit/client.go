package reddit

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
)

// AccountClient exposes the account endpoints of the logged in user.
type AccountClient interface {
	// Me returns the cached user, refetching it once the cache is stale.
	Me(ctx context.Context) (*User, error)
	// SetMe replaces the cached user and restarts its freshness window.
	SetMe(user *User)
	// GetMe fetches the user from the "me" endpoint and caches it.
	GetMe(ctx context.Context) (*User, error)

	Karma(ctx context.Context) ([]UserKarma, error)
	Prefs(ctx context.Context) (*AccountPrefs, error)
	UpdatePrefs(ctx context.Context, prefs *AccountPrefsSubmit) (*AccountPrefs, error)
	UpdatePrefsAsync(ctx context.Context, prefs *AccountPrefsSubmit) *Task[*AccountPrefs]
	Trophies(ctx context.Context) ([]Award, error)

	Friends(ctx context.Context, params *ListingParams) ([]UserPrefs, error)
	Messaging(ctx context.Context, params *ListingParams) ([]UserPrefs, error)
	Blocked(ctx context.Context, params *ListingParams) ([]UserPrefs, error)
	Trusted(ctx context.Context, params *ListingParams) ([]UserPrefs, error)

	DeleteFriend(ctx context.Context, username string) error
	DeleteFriendAsync(ctx context.Context, username string) *Task[struct{}]
	GetFriend(ctx context.Context, username string) (*UserActionResult, error)
	UpdateFriend(ctx context.Context, username, json string) (*UserActionResult, error)
	UpdateFriendAsync(ctx context.Context, username, json string) *Task[*UserActionResult]
}

// ScopesClient exposes the OAuth scope catalogue.
type ScopesClient interface {
	List(ctx context.Context) ([]Scope, error)
	Get(ctx context.Context, id string) (*Scope, error)
}

// WikiClient exposes subreddit wiki listings.
type WikiClient interface {
	Pages(ctx context.Context, subreddit string) (*WikiPageListing, error)
}

// Client is the entry point to the API.
type Client interface {
	Account() AccountClient
	Scopes() ScopesClient
	Wiki() WikiClient

	// GetToken returns the current access token.
	GetToken(ctx context.Context) (string, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a Client.
//
// # Authentication precedence
//
// The following precedence is applied by redditclient.New:
//  1. AccessToken + Username/Password: the token is tried first; once it is
//     rejected the client falls back to the password grant.
//  2. AccessToken alone: used directly as a static Bearer token.
//  3. ClientID with RefreshToken: refresh token grant ("installed"/"web" apps).
//  4. ClientID with Username/Password: OAuth2 password grant ("script" apps).
//  5. ClientID/ClientSecret only: client credentials grant (application-only).
//  6. No credentials: requests are sent without authentication.
//
// # Timeouts and retries
//
// Per-request timeouts should be controlled via the context passed to client
// methods. Transport retries are tuned with RetryMax/RetryWaitMin/RetryWaitMax;
// only 5xx and 429 responses are retried.
type Config struct {
	// BaseURL is the API host, https://oauth.reddit.com by default.
	BaseURL string
	// TokenURL is the OAuth2 token endpoint, defaulted when empty.
	TokenURL string

	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	RefreshToken string
	AccessToken  string
	// DeviceID selects the installed client grant for apps without a secret.
	DeviceID string
	// Scopes requested by the refresh and password grants. Empty means "*".
	Scopes []string

	// UserAgent is sent with every request. Reddit requires a descriptive value.
	UserAgent string

	HTTPTimeout  time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// Debug enables verbose HTTP request/response logging when a Logger is provided.
	Debug  bool
	Logger Logger

	// Metrics, when set, receives the HTTP client collectors.
	Metrics prometheus.Registerer

	// TracerProvider receives one client span per request. Nil means the
	// global provider.
	TracerProvider trace.TracerProvider

	// Cache configures the backend used for cacheable catalogues (scopes).
	// Nil means an in-memory cache.
	Cache *CacheConfig

	// MeCacheTTL overrides how long the current user stays cached. Zero means
	// 60 seconds.
	MeCacheTTL time.Duration
}
