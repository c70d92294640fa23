package client

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fivetwenty-io/reddit-client/internal/constants"
	"github.com/fivetwenty-io/reddit-client/pkg/reddit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDispatch = errors.New("dispatch failed")

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

type stubAccount struct {
	mu        sync.Mutex
	meCalls   int
	users     []*reddit.User
	err       error
	karma     *reddit.UserKarmaContainer
	prefs     *reddit.AccountPrefs
	trophies  *reddit.TrophyList
	lists     reddit.UserPrefsContainers
	single    *reddit.UserPrefsContainer
	lastWhere string
	lastParam *reddit.ListingParams
}

func (s *stubAccount) Me(ctx context.Context) (*reddit.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}

	user := s.users[s.meCalls%len(s.users)]
	s.meCalls++

	return user, nil
}

func (s *stubAccount) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.meCalls
}

func (s *stubAccount) Karma(ctx context.Context) (*reddit.UserKarmaContainer, error) {
	return s.karma, s.err
}

func (s *stubAccount) Prefs(ctx context.Context) (*reddit.AccountPrefs, error) {
	return s.prefs, s.err
}

func (s *stubAccount) UpdatePrefs(ctx context.Context, submit *reddit.AccountPrefsSubmit) (*reddit.AccountPrefs, error) {
	if s.err != nil {
		return nil, s.err
	}

	prefs := &reddit.AccountPrefs{}
	if submit != nil && submit.Lang != nil {
		prefs.Lang = *submit.Lang
	}

	return prefs, nil
}

func (s *stubAccount) Trophies(ctx context.Context) (*reddit.TrophyList, error) {
	return s.trophies, s.err
}

func (s *stubAccount) PrefsList(ctx context.Context, where string, params *reddit.ListingParams) (reddit.UserPrefsContainers, error) {
	s.mu.Lock()
	s.lastWhere = where
	s.lastParam = params
	s.mu.Unlock()

	return s.lists, s.err
}

func (s *stubAccount) PrefsSingle(ctx context.Context, where string, params *reddit.ListingParams) (*reddit.UserPrefsContainer, error) {
	s.mu.Lock()
	s.lastWhere = where
	s.lastParam = params
	s.mu.Unlock()

	return s.single, s.err
}

// stubUsers keeps an in-memory friend list so repeated updates can be compared.
type stubUsers struct {
	mu       sync.Mutex
	friends  map[string]string
	payloads []string
	err      error
	block    chan struct{}
}

func newStubUsers() *stubUsers {
	return &stubUsers{friends: map[string]string{}}
}

func (s *stubUsers) DeleteFriend(ctx context.Context, username string) error {
	if s.block != nil {
		<-s.block
	}

	if s.err != nil {
		return s.err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.friends, username)

	return nil
}

func (s *stubUsers) GetFriend(ctx context.Context, username string) (*reddit.UserActionResult, error) {
	if s.err != nil {
		return nil, s.err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	note, ok := s.friends[username]
	if !ok {
		return nil, &reddit.ResponseError{StatusCode: 400, Reason: "NOT_FRIEND"}
	}

	return &reddit.UserActionResult{Name: username, Note: note}, nil
}

func (s *stubUsers) UpdateFriend(ctx context.Context, username, payload string) (*reddit.UserActionResult, error) {
	if s.block != nil {
		<-s.block
	}

	if s.err != nil {
		return nil, s.err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.payloads = append(s.payloads, payload)
	s.friends[username] = payload

	return &reddit.UserActionResult{Name: username, Note: payload}, nil
}

func userList(names ...string) reddit.UserPrefsContainer {
	children := make([]reddit.UserPrefs, 0, len(names))
	for _, name := range names {
		children = append(children, reddit.UserPrefs{Name: name})
	}

	return reddit.UserPrefsContainer{Kind: constants.KindUserList, Data: &reddit.UserPrefsListing{Children: children}}
}

func names(prefs []reddit.UserPrefs) []string {
	res := make([]string, 0, len(prefs))
	for _, p := range prefs {
		res = append(res, p.Name)
	}

	return res
}

func TestAccountController_MeCache(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	account := &stubAccount{users: []*reddit.User{{Name: "first"}, {Name: "second"}}}
	controller := NewAccountController(account, newStubUsers(), WithClock(clock.Now))
	ctx := context.Background()

	user, err := controller.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first", user.Name)
	assert.Equal(t, 1, account.calls())

	clock.Advance(59 * time.Second)

	user, err = controller.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first", user.Name)
	assert.Equal(t, 1, account.calls(), "user younger than 60s must come from cache")

	clock.Advance(2 * time.Second)

	user, err = controller.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", user.Name)
	assert.Equal(t, 2, account.calls(), "stale user must be refetched")
}

func TestAccountController_MeCacheBoundary(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	account := &stubAccount{users: []*reddit.User{{Name: "u"}}}
	controller := NewAccountController(account, newStubUsers(), WithClock(clock.Now))

	_, err := controller.Me(context.Background())
	require.NoError(t, err)

	clock.Advance(60 * time.Second)

	_, err = controller.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, account.calls())
}

func TestAccountController_SetMeResetsFreshness(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	account := &stubAccount{users: []*reddit.User{{Name: "remote"}}}
	controller := NewAccountController(account, newStubUsers(), WithClock(clock.Now))
	ctx := context.Background()

	_, err := controller.Me(ctx)
	require.NoError(t, err)

	clock.Advance(50 * time.Second)
	controller.SetMe(&reddit.User{Name: "local"})
	clock.Advance(50 * time.Second)

	user, err := controller.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "local", user.Name)
	assert.Equal(t, 1, account.calls())

	controller.SetMe(nil)

	user, err = controller.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "remote", user.Name)
	assert.Equal(t, 2, account.calls())
}

func TestAccountController_GetMeForcesFetch(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	account := &stubAccount{users: []*reddit.User{{Name: "a"}, {Name: "b"}}}
	controller := NewAccountController(account, newStubUsers(), WithClock(clock.Now), WithMeCacheTTL(time.Hour))
	ctx := context.Background()

	_, err := controller.Me(ctx)
	require.NoError(t, err)

	user, err := controller.GetMe(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", user.Name)

	user, err = controller.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", user.Name)
	assert.Equal(t, 2, account.calls())
}

func TestAccountController_MeErrors(t *testing.T) {
	t.Parallel()

	t.Run("dispatch error propagates", func(t *testing.T) {
		t.Parallel()

		controller := NewAccountController(&stubAccount{err: errDispatch}, newStubUsers())

		_, err := controller.Me(context.Background())
		require.ErrorIs(t, err, errDispatch)
	})

	t.Run("missing envelope", func(t *testing.T) {
		t.Parallel()

		controller := NewAccountController(&stubAccount{users: []*reddit.User{nil}}, newStubUsers())

		_, err := controller.Me(context.Background())
		require.ErrorIs(t, err, reddit.ErrEmptyResponse)
	})

	t.Run("embedded error payload", func(t *testing.T) {
		t.Parallel()

		user := &reddit.User{JSON: &reddit.JSONErrors{Errors: []reddit.APIError{{Code: "USER_REQUIRED"}}}}
		controller := NewAccountController(&stubAccount{users: []*reddit.User{user}}, newStubUsers())

		_, err := controller.Me(context.Background())
		apiErr := &reddit.APIError{}
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "USER_REQUIRED", apiErr.Code)
	})
}

func TestAccountController_Karma(t *testing.T) {
	t.Parallel()

	account := &stubAccount{karma: &reddit.UserKarmaContainer{
		Kind: constants.KindKarmaList,
		Data: []reddit.UserKarma{{Subreddit: "golang", LinkKarma: 1}},
	}}
	controller := NewAccountController(account, newStubUsers())

	karma, err := controller.Karma(context.Background())
	require.NoError(t, err)
	require.Len(t, karma, 1)
	assert.Equal(t, "golang", karma[0].Subreddit)

	account.karma = &reddit.UserKarmaContainer{}
	karma, err = controller.Karma(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, karma)
	assert.Empty(t, karma)

	account.karma = nil
	_, err = controller.Karma(context.Background())
	require.ErrorIs(t, err, reddit.ErrEmptyResponse)
}

func TestAccountController_Prefs(t *testing.T) {
	t.Parallel()

	account := &stubAccount{prefs: &reddit.AccountPrefs{Lang: "en"}}
	controller := NewAccountController(account, newStubUsers())

	prefs, err := controller.Prefs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "en", prefs.Lang)

	lang := "fr"

	prefs, err = controller.UpdatePrefs(context.Background(), &reddit.AccountPrefsSubmit{Lang: &lang})
	require.NoError(t, err)
	assert.Equal(t, "fr", prefs.Lang)
}

func TestAccountController_Trophies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		trophies *reddit.TrophyList
		expected []string
	}{
		{name: "no envelope", trophies: nil, expected: []string{}},
		{name: "no data", trophies: &reddit.TrophyList{Kind: constants.KindTrophyList}, expected: []string{}},
		{name: "no trophies", trophies: &reddit.TrophyList{Data: &reddit.TrophyListData{}}, expected: []string{}},
		{
			name: "trophies in order",
			trophies: &reddit.TrophyList{Data: &reddit.TrophyListData{Trophies: []reddit.AwardContainer{
				{Kind: constants.KindAward, Data: &reddit.Award{Name: "one"}},
				{Kind: constants.KindAward, Data: &reddit.Award{Name: "two"}},
			}}},
			expected: []string{"one", "two"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			controller := NewAccountController(&stubAccount{trophies: tt.trophies}, newStubUsers())

			awards, err := controller.Trophies(context.Background())
			require.NoError(t, err)
			require.NotNil(t, awards)

			got := make([]string, 0, len(awards))
			for _, a := range awards {
				got = append(got, a.Name)
			}

			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestAccountController_TrophiesDispatchError(t *testing.T) {
	t.Parallel()

	controller := NewAccountController(&stubAccount{err: errDispatch}, newStubUsers())

	_, err := controller.Trophies(context.Background())
	require.ErrorIs(t, err, errDispatch)
}

func TestAccountController_FriendsAndMessagingFlatten(t *testing.T) {
	t.Parallel()

	account := &stubAccount{lists: reddit.UserPrefsContainers{userList("a", "b"), userList("c")}}
	controller := NewAccountController(account, newStubUsers())
	params := reddit.NewListingParams().WithLimit(50)

	friends, err := controller.Friends(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, names(friends))
	assert.Equal(t, "friends", account.lastWhere)
	assert.Same(t, params, account.lastParam)

	messaging, err := controller.Messaging(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, names(messaging))
	assert.Equal(t, "messaging", account.lastWhere)
}

func TestAccountController_FlattenKeepsDuplicates(t *testing.T) {
	t.Parallel()

	account := &stubAccount{lists: reddit.UserPrefsContainers{userList("a"), userList("a")}}
	controller := NewAccountController(account, newStubUsers())

	friends, err := controller.Friends(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a"}, names(friends))
}

func TestAccountController_FriendsValidation(t *testing.T) {
	t.Parallel()

	account := &stubAccount{lists: reddit.UserPrefsContainers{userList("a"), {Kind: constants.KindUserList}}}
	controller := NewAccountController(account, newStubUsers())

	_, err := controller.Friends(context.Background(), nil)
	require.ErrorIs(t, err, reddit.ErrMissingListingData)

	account.lists = nil
	_, err = controller.Friends(context.Background(), nil)
	require.ErrorIs(t, err, reddit.ErrEmptyResponse)
}

func TestAccountController_BlockedAndTrusted(t *testing.T) {
	t.Parallel()

	single := userList("x", "y")
	account := &stubAccount{single: &single}
	controller := NewAccountController(account, newStubUsers())

	blocked, err := controller.Blocked(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, names(blocked))
	assert.Equal(t, "blocked", account.lastWhere)

	trusted, err := controller.Trusted(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, names(trusted))
	assert.Equal(t, "trusted", account.lastWhere)

	account.single = &reddit.UserPrefsContainer{Data: &reddit.UserPrefsListing{}}
	blocked, err = controller.Blocked(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, blocked)
	assert.Empty(t, blocked)

	account.single = nil
	_, err = controller.Trusted(context.Background(), nil)
	require.ErrorIs(t, err, reddit.ErrEmptyResponse)
}

func TestAccountController_UpdateFriendIdempotent(t *testing.T) {
	t.Parallel()

	users := newStubUsers()
	controller := NewAccountController(&stubAccount{}, users)
	ctx := context.Background()

	payload := `{"name":"spez","note":"hi"}`

	first, err := controller.UpdateFriend(ctx, "spez", payload)
	require.NoError(t, err)

	second, err := controller.UpdateFriend(ctx, "spez", payload)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	got, err := controller.GetFriend(ctx, "spez")
	require.NoError(t, err)
	assert.Equal(t, payload, got.Note)
	assert.Len(t, users.friends, 1)
}

func TestAccountController_UpdateFriendDefaultPayload(t *testing.T) {
	t.Parallel()

	users := newStubUsers()
	controller := NewAccountController(&stubAccount{}, users)

	_, err := controller.UpdateFriend(context.Background(), "spez", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"{}"}, users.payloads)
}

func TestAccountController_FriendValidation(t *testing.T) {
	t.Parallel()

	controller := NewAccountController(&stubAccount{}, newStubUsers())
	ctx := context.Background()

	require.ErrorIs(t, controller.DeleteFriend(ctx, ""), constants.ErrUsernameRequired)

	_, err := controller.GetFriend(ctx, "")
	require.ErrorIs(t, err, constants.ErrUsernameRequired)

	_, err = controller.UpdateFriend(ctx, "", "{}")
	require.ErrorIs(t, err, constants.ErrUsernameRequired)

	_, err = controller.GetFriend(ctx, "stranger")
	require.Error(t, err)
}

func TestAccountController_DeleteFriend(t *testing.T) {
	t.Parallel()

	users := newStubUsers()
	users.friends["spez"] = "{}"
	controller := NewAccountController(&stubAccount{}, users)

	require.NoError(t, controller.DeleteFriend(context.Background(), "spez"))
	assert.Empty(t, users.friends)

	// Deleting again is left to the remote side.
	require.NoError(t, controller.DeleteFriend(context.Background(), "spez"))
}

func TestAccountController_AsyncFailureOnlyVisibleThroughWait(t *testing.T) {
	t.Parallel()

	users := newStubUsers()
	users.err = errDispatch
	users.block = make(chan struct{})

	logger := &RecordingLogger{}
	controller := NewAccountController(&stubAccount{}, users, WithAccountLogger(logger))

	ctx, cancel := context.WithCancel(context.Background())

	start := time.Now()
	task := controller.DeleteFriendAsync(ctx, "spez")
	assert.Less(t, time.Since(start), time.Second, "async call must not block on the operation")

	// Caller scope ends before the operation runs.
	cancel()
	close(users.block)

	_, err := task.Wait(context.Background())
	require.ErrorIs(t, err, errDispatch)

	entries := logger.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "warn", entries[0].Level)
	assert.Equal(t, "delete_friend", entries[0].Fields["operation"])
	assert.Equal(t, task.ID(), entries[0].Fields["task_id"])
	assert.Equal(t, "spez", entries[0].Fields["username"])
}

func TestAccountController_AsyncDiscarded(t *testing.T) {
	t.Parallel()

	users := newStubUsers()
	users.err = errDispatch
	controller := NewAccountController(&stubAccount{}, users)

	// Fire and forget; no logger configured.
	_ = controller.UpdateFriendAsync(context.Background(), "spez", "")
	task := controller.UpdateFriendAsync(context.Background(), "spez", "")

	select {
	case <-task.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("task did not finish")
	}

	_, err := task.Result()
	require.ErrorIs(t, err, errDispatch)
}

func TestAccountController_AsyncSuccess(t *testing.T) {
	t.Parallel()

	users := newStubUsers()
	controller := NewAccountController(&stubAccount{}, users)

	result, err := controller.UpdateFriendAsync(context.Background(), "spez", `{"note":"x"}`).Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "spez", result.Name)

	lang := "en"

	prefs, err := controller.UpdatePrefsAsync(context.Background(), &reddit.AccountPrefsSubmit{Lang: &lang}).Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "en", prefs.Lang)

	_, err = controller.DeleteFriendAsync(context.Background(), "spez").Wait(context.Background())
	require.NoError(t, err)
}

func TestAccountController_ConcurrentMe(t *testing.T) {
	t.Parallel()

	account := &stubAccount{users: []*reddit.User{{Name: "a"}}}
	controller := NewAccountController(account, newStubUsers())

	var wg sync.WaitGroup

	for range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			user, err := controller.Me(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, "a", user.Name)
		}()

		wg.Add(1)

		go func() {
			defer wg.Done()

			controller.SetMe(&reddit.User{Name: "a"})
		}()
	}

	wg.Wait()
}
