package dispatch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	internalhttp "github.com/fivetwenty-io/reddit-client/internal/http"
	"github.com/fivetwenty-io/reddit-client/pkg/reddit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, method, path, body string, check func(r *http.Request)) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, method, r.Method)
		assert.Equal(t, path, r.URL.Path)

		if check != nil {
			check(r)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
}

func TestAccountDispatch_Me(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, "GET", "/api/v1/me", `{"id":"abc","name":"spez","link_karma":10,"comment_karma":5}`, func(r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("raw_json"))
	})
	defer server.Close()

	d := NewAccountDispatch(internalhttp.NewClient(server.URL, nil))

	user, err := d.Me(context.Background())
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "spez", user.Name)
	assert.Equal(t, 10, user.LinkKarma)
	assert.Equal(t, "t2_abc", user.Fullname())
}

func TestAccountDispatch_MeNullBody(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, "GET", "/api/v1/me", `null`, nil)
	defer server.Close()

	d := NewAccountDispatch(internalhttp.NewClient(server.URL, nil))

	user, err := d.Me(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestAccountDispatch_Karma(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, "GET", "/api/v1/me/karma",
		`{"kind":"KarmaList","data":[{"sr":"golang","link_karma":3,"comment_karma":7}]}`, nil)
	defer server.Close()

	d := NewAccountDispatch(internalhttp.NewClient(server.URL, nil))

	karma, err := d.Karma(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "KarmaList", karma.Kind)
	require.Len(t, karma.Data, 1)
	assert.Equal(t, "golang", karma.Data[0].Subreddit)
	assert.Equal(t, 7, karma.Data[0].CommentKarma)
}

func TestAccountDispatch_Prefs(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, "GET", "/api/v1/me/prefs", `{"lang":"en","over_18":true,"num_comments":200}`, nil)
	defer server.Close()

	d := NewAccountDispatch(internalhttp.NewClient(server.URL, nil))

	prefs, err := d.Prefs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "en", prefs.Lang)
	assert.True(t, prefs.Over18)
	assert.Equal(t, 200, prefs.NumComments)
}

func TestAccountDispatch_UpdatePrefs(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, "PATCH", "/api/v1/me/prefs", `{"lang":"de","over_18":false}`, func(r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"lang":"de","over_18":false}`, string(body))
	})
	defer server.Close()

	d := NewAccountDispatch(internalhttp.NewClient(server.URL, nil))

	lang := "de"
	over18 := false

	prefs, err := d.UpdatePrefs(context.Background(), &reddit.AccountPrefsSubmit{Lang: &lang, Over18: &over18})
	require.NoError(t, err)
	assert.Equal(t, "de", prefs.Lang)
}

func TestAccountDispatch_Trophies(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, "GET", "/api/v1/me/trophies",
		`{"kind":"TrophyList","data":{"trophies":[{"kind":"t6","data":{"name":"Gilding I"}}]}}`, nil)
	defer server.Close()

	d := NewAccountDispatch(internalhttp.NewClient(server.URL, nil))

	trophies, err := d.Trophies(context.Background())
	require.NoError(t, err)
	require.Len(t, trophies.Awards(), 1)
	assert.Equal(t, "Gilding I", trophies.Awards()[0].Name)
}

func TestAccountDispatch_PrefsList(t *testing.T) {
	t.Parallel()

	t.Run("array body", func(t *testing.T) {
		t.Parallel()

		body := `[
			{"kind":"UserList","data":{"children":[{"name":"a","id":"t2_a"},{"name":"b","id":"t2_b"}]}},
			{"kind":"UserList","data":{"children":[{"name":"c","id":"t2_c"}]}}
		]`

		server := newTestServer(t, "GET", "/prefs/friends", body, func(r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "25", q.Get("limit"))
			assert.Equal(t, "all", q.Get("show"))
			assert.Equal(t, "0", q.Get("count"))
			assert.Equal(t, "false", q.Get("sr_detail"))
			assert.Equal(t, "false", q.Get("include_categories"))
			assert.Equal(t, "1", q.Get("raw_json"))
		})
		defer server.Close()

		d := NewAccountDispatch(internalhttp.NewClient(server.URL, nil))

		containers, err := d.PrefsList(context.Background(), "friends", nil)
		require.NoError(t, err)
		require.Len(t, containers, 2)
		assert.Len(t, containers.Children(), 3)
	})

	t.Run("object body", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, "GET", "/prefs/messaging",
			`{"kind":"UserList","data":{"children":[{"name":"x"}]}}`, func(r *http.Request) {
				assert.Equal(t, "t2_after", r.URL.Query().Get("after"))
			})
		defer server.Close()

		d := NewAccountDispatch(internalhttp.NewClient(server.URL, nil))

		containers, err := d.PrefsList(context.Background(), "messaging", reddit.NewListingParams().WithAfter("t2_after"))
		require.NoError(t, err)
		require.Len(t, containers, 1)
		assert.Equal(t, "x", containers.Children()[0].Name)
	})
}

func TestAccountDispatch_PrefsSingle(t *testing.T) {
	t.Parallel()

	t.Run("object body", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, "GET", "/prefs/blocked",
			`{"kind":"UserList","data":{"children":[{"name":"troll","rel_id":"r9_1"}]}}`, func(r *http.Request) {
				assert.Equal(t, "100", r.URL.Query().Get("limit"))
			})
		defer server.Close()

		d := NewAccountDispatch(internalhttp.NewClient(server.URL, nil))

		container, err := d.PrefsSingle(context.Background(), "blocked", reddit.NewListingParams().WithLimit(100))
		require.NoError(t, err)
		require.NotNil(t, container.Data)
		assert.Equal(t, "troll", container.Data.Children[0].Name)
		assert.Equal(t, "r9_1", container.Data.Children[0].RelID)
	})

	t.Run("array body takes first container", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, "GET", "/prefs/trusted",
			`[{"kind":"UserList","data":{"children":[{"name":"pal"}]}}]`, nil)
		defer server.Close()

		d := NewAccountDispatch(internalhttp.NewClient(server.URL, nil))

		container, err := d.PrefsSingle(context.Background(), "trusted", nil)
		require.NoError(t, err)
		assert.Equal(t, "pal", container.Data.Children[0].Name)
	})
}

func TestAccountDispatch_ErrorPropagation(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"message": "Forbidden", "error": 403})
	}))
	defer server.Close()

	d := NewAccountDispatch(internalhttp.NewClient(server.URL, nil))

	_, err := d.Prefs(context.Background())
	require.Error(t, err)
	assert.True(t, reddit.IsForbidden(err))
	assert.Contains(t, err.Error(), "getting preferences")
}
