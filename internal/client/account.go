package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fivetwenty-io/reddit-client/internal/constants"
	"github.com/fivetwenty-io/reddit-client/pkg/reddit"
)

// AccountDispatcher is the transport behind AccountController for the
// /api/v1/me and /prefs endpoints.
type AccountDispatcher interface {
	Me(ctx context.Context) (*reddit.User, error)
	Karma(ctx context.Context) (*reddit.UserKarmaContainer, error)
	Prefs(ctx context.Context) (*reddit.AccountPrefs, error)
	UpdatePrefs(ctx context.Context, submit *reddit.AccountPrefsSubmit) (*reddit.AccountPrefs, error)
	Trophies(ctx context.Context) (*reddit.TrophyList, error)
	PrefsList(ctx context.Context, where string, params *reddit.ListingParams) (reddit.UserPrefsContainers, error)
	PrefsSingle(ctx context.Context, where string, params *reddit.ListingParams) (*reddit.UserPrefsContainer, error)
}

// UsersDispatcher is the transport behind the friend operations.
type UsersDispatcher interface {
	DeleteFriend(ctx context.Context, username string) error
	GetFriend(ctx context.Context, username string) (*reddit.UserActionResult, error)
	UpdateFriend(ctx context.Context, username, payload string) (*reddit.UserActionResult, error)
}

// Clock returns the current time.
type Clock func() time.Time

// meCache holds the authenticated user for a fixed freshness window.
type meCache struct {
	mu        sync.Mutex
	user      *reddit.User
	fetchedAt time.Time
	ttl       time.Duration
	now       Clock
}

func (c *meCache) get() (*reddit.User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.user == nil {
		return nil, false
	}

	if !c.now().Before(c.fetchedAt.Add(c.ttl)) {
		return nil, false
	}

	return c.user, true
}

func (c *meCache) set(user *reddit.User) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.user = user
	c.fetchedAt = c.now()
}

// AccountOption configures an AccountController.
type AccountOption func(*AccountController)

// WithClock replaces the clock used for the user cache.
func WithClock(now Clock) AccountOption {
	return func(c *AccountController) {
		c.me.now = now
	}
}

// WithMeCacheTTL sets how long the current user stays cached.
func WithMeCacheTTL(ttl time.Duration) AccountOption {
	return func(c *AccountController) {
		if ttl > 0 {
			c.me.ttl = ttl
		}
	}
}

// WithAccountLogger sets the logger used to report failed async operations.
func WithAccountLogger(logger reddit.Logger) AccountOption {
	return func(c *AccountController) {
		c.logger = logger
	}
}

// AccountController implements reddit.AccountClient.
type AccountController struct {
	account AccountDispatcher
	users   UsersDispatcher
	logger  reddit.Logger
	me      *meCache
}

// NewAccountController creates a new account controller.
func NewAccountController(account AccountDispatcher, users UsersDispatcher, opts ...AccountOption) *AccountController {
	c := &AccountController{
		account: account,
		users:   users,
		me: &meCache{
			ttl: constants.MeCacheTTL,
			now: time.Now,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// validated returns v once its envelope checks pass.
func validated[T reddit.Validator](v T, err error) (T, error) {
	var zero T

	if err != nil {
		return zero, err
	}

	err = v.Validate()
	if err != nil {
		return zero, err
	}

	return v, nil
}

// Me implements reddit.AccountClient.Me.
func (c *AccountController) Me(ctx context.Context) (*reddit.User, error) {
	if user, ok := c.me.get(); ok {
		return user, nil
	}

	return c.GetMe(ctx)
}

// SetMe implements reddit.AccountClient.SetMe. A nil user empties the cache.
func (c *AccountController) SetMe(user *reddit.User) {
	c.me.set(user)
}

// GetMe implements reddit.AccountClient.GetMe.
func (c *AccountController) GetMe(ctx context.Context) (*reddit.User, error) {
	user, err := validated(c.account.Me(ctx))
	if err != nil {
		return nil, err
	}

	c.me.set(user)

	return user, nil
}

// Karma implements reddit.AccountClient.Karma.
func (c *AccountController) Karma(ctx context.Context) ([]reddit.UserKarma, error) {
	karma, err := validated(c.account.Karma(ctx))
	if err != nil {
		return nil, err
	}

	if karma.Data == nil {
		return []reddit.UserKarma{}, nil
	}

	return karma.Data, nil
}

// Prefs implements reddit.AccountClient.Prefs.
func (c *AccountController) Prefs(ctx context.Context) (*reddit.AccountPrefs, error) {
	return validated(c.account.Prefs(ctx))
}

// UpdatePrefs implements reddit.AccountClient.UpdatePrefs.
func (c *AccountController) UpdatePrefs(ctx context.Context, prefs *reddit.AccountPrefsSubmit) (*reddit.AccountPrefs, error) {
	return validated(c.account.UpdatePrefs(ctx, prefs))
}

// UpdatePrefsAsync implements reddit.AccountClient.UpdatePrefsAsync.
func (c *AccountController) UpdatePrefsAsync(ctx context.Context, prefs *reddit.AccountPrefsSubmit) *reddit.Task[*reddit.AccountPrefs] {
	return reddit.RunTask(ctx, func(ctx context.Context) (*reddit.AccountPrefs, error) {
		return c.UpdatePrefs(ctx, prefs)
	}, c.reportFailure("update_prefs", nil))
}

// Trophies implements reddit.AccountClient.Trophies. A missing list, data
// block or trophies array yields an empty result.
func (c *AccountController) Trophies(ctx context.Context) ([]reddit.Award, error) {
	trophies, err := c.account.Trophies(ctx)
	if err != nil {
		return nil, err
	}

	return trophies.Awards(), nil
}

// Friends implements reddit.AccountClient.Friends.
func (c *AccountController) Friends(ctx context.Context, params *reddit.ListingParams) ([]reddit.UserPrefs, error) {
	return c.prefsList(ctx, constants.WhereFriends, params)
}

// Messaging implements reddit.AccountClient.Messaging.
func (c *AccountController) Messaging(ctx context.Context, params *reddit.ListingParams) ([]reddit.UserPrefs, error) {
	return c.prefsList(ctx, constants.WhereMessaging, params)
}

// Blocked implements reddit.AccountClient.Blocked.
func (c *AccountController) Blocked(ctx context.Context, params *reddit.ListingParams) ([]reddit.UserPrefs, error) {
	return c.prefsSingle(ctx, constants.WhereBlocked, params)
}

// Trusted implements reddit.AccountClient.Trusted.
func (c *AccountController) Trusted(ctx context.Context, params *reddit.ListingParams) ([]reddit.UserPrefs, error) {
	return c.prefsSingle(ctx, constants.WhereTrusted, params)
}

func (c *AccountController) prefsList(ctx context.Context, where string, params *reddit.ListingParams) ([]reddit.UserPrefs, error) {
	containers, err := validated(c.account.PrefsList(ctx, where, params))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", where, err)
	}

	return containers.Children(), nil
}

func (c *AccountController) prefsSingle(ctx context.Context, where string, params *reddit.ListingParams) ([]reddit.UserPrefs, error) {
	container, err := validated(c.account.PrefsSingle(ctx, where, params))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", where, err)
	}

	if container.Data.Children == nil {
		return []reddit.UserPrefs{}, nil
	}

	return container.Data.Children, nil
}

// DeleteFriend implements reddit.AccountClient.DeleteFriend.
func (c *AccountController) DeleteFriend(ctx context.Context, username string) error {
	if username == "" {
		return constants.ErrUsernameRequired
	}

	return c.users.DeleteFriend(ctx, username)
}

// DeleteFriendAsync implements reddit.AccountClient.DeleteFriendAsync.
func (c *AccountController) DeleteFriendAsync(ctx context.Context, username string) *reddit.Task[struct{}] {
	return reddit.RunTask(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.DeleteFriend(ctx, username)
	}, c.reportFailure("delete_friend", map[string]interface{}{"username": username}))
}

// GetFriend implements reddit.AccountClient.GetFriend.
func (c *AccountController) GetFriend(ctx context.Context, username string) (*reddit.UserActionResult, error) {
	if username == "" {
		return nil, constants.ErrUsernameRequired
	}

	return validated(c.users.GetFriend(ctx, username))
}

// UpdateFriend implements reddit.AccountClient.UpdateFriend. An empty payload
// sends "{}".
func (c *AccountController) UpdateFriend(ctx context.Context, username, json string) (*reddit.UserActionResult, error) {
	if username == "" {
		return nil, constants.ErrUsernameRequired
	}

	if json == "" {
		json = constants.DefaultFriendPayload
	}

	return validated(c.users.UpdateFriend(ctx, username, json))
}

// UpdateFriendAsync implements reddit.AccountClient.UpdateFriendAsync.
func (c *AccountController) UpdateFriendAsync(ctx context.Context, username, json string) *reddit.Task[*reddit.UserActionResult] {
	return reddit.RunTask(ctx, func(ctx context.Context) (*reddit.UserActionResult, error) {
		return c.UpdateFriend(ctx, username, json)
	}, c.reportFailure("update_friend", map[string]interface{}{"username": username}))
}

func (c *AccountController) reportFailure(operation string, fields map[string]interface{}) func(id string, err error) {
	return func(id string, err error) {
		if c.logger == nil {
			return
		}

		logFields := map[string]interface{}{
			"operation": operation,
			"task_id":   id,
			"error":     err.Error(),
		}

		for k, v := range fields {
			logFields[k] = v
		}

		c.logger.Warn("async account operation failed", logFields)
	}
}
