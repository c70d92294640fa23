package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/reddit-client/internal/http"
	"github.com/fivetwenty-io/reddit-client/pkg/reddit"
)

// AccountDispatch calls the /api/v1/me and /prefs endpoints.
type AccountDispatch struct {
	httpClient *http.Client
}

// NewAccountDispatch creates a new account dispatcher.
func NewAccountDispatch(httpClient *http.Client) *AccountDispatch {
	return &AccountDispatch{
		httpClient: httpClient,
	}
}

// Me fetches the authenticated user.
func (d *AccountDispatch) Me(ctx context.Context) (*reddit.User, error) {
	resp, err := d.httpClient.Get(ctx, "/api/v1/me", rawJSON(nil))
	if err != nil {
		return nil, fmt.Errorf("getting current user: %w", err)
	}

	var user *reddit.User

	err = json.Unmarshal(resp.Body, &user)
	if err != nil {
		return nil, fmt.Errorf("parsing current user: %w", err)
	}

	return user, nil
}

// Karma fetches the per-subreddit karma breakdown.
func (d *AccountDispatch) Karma(ctx context.Context) (*reddit.UserKarmaContainer, error) {
	resp, err := d.httpClient.Get(ctx, "/api/v1/me/karma", rawJSON(nil))
	if err != nil {
		return nil, fmt.Errorf("getting karma: %w", err)
	}

	var karma *reddit.UserKarmaContainer

	err = json.Unmarshal(resp.Body, &karma)
	if err != nil {
		return nil, fmt.Errorf("parsing karma: %w", err)
	}

	return karma, nil
}

// Prefs fetches the account preferences.
func (d *AccountDispatch) Prefs(ctx context.Context) (*reddit.AccountPrefs, error) {
	resp, err := d.httpClient.Get(ctx, "/api/v1/me/prefs", rawJSON(nil))
	if err != nil {
		return nil, fmt.Errorf("getting preferences: %w", err)
	}

	var prefs *reddit.AccountPrefs

	err = json.Unmarshal(resp.Body, &prefs)
	if err != nil {
		return nil, fmt.Errorf("parsing preferences: %w", err)
	}

	return prefs, nil
}

// UpdatePrefs patches the account preferences and returns the new settings.
func (d *AccountDispatch) UpdatePrefs(ctx context.Context, submit *reddit.AccountPrefsSubmit) (*reddit.AccountPrefs, error) {
	if submit == nil {
		submit = &reddit.AccountPrefsSubmit{}
	}

	resp, err := d.httpClient.Patch(ctx, "/api/v1/me/prefs", submit)
	if err != nil {
		return nil, fmt.Errorf("updating preferences: %w", err)
	}

	var prefs *reddit.AccountPrefs

	err = json.Unmarshal(resp.Body, &prefs)
	if err != nil {
		return nil, fmt.Errorf("parsing preferences response: %w", err)
	}

	return prefs, nil
}

// Trophies fetches the trophy list.
func (d *AccountDispatch) Trophies(ctx context.Context) (*reddit.TrophyList, error) {
	resp, err := d.httpClient.Get(ctx, "/api/v1/me/trophies", rawJSON(nil))
	if err != nil {
		return nil, fmt.Errorf("getting trophies: %w", err)
	}

	var trophies *reddit.TrophyList

	err = json.Unmarshal(resp.Body, &trophies)
	if err != nil {
		return nil, fmt.Errorf("parsing trophies: %w", err)
	}

	return trophies, nil
}

// PrefsList fetches a relationship listing that may span several containers.
// The endpoint answers with either an array of UserList things or a single one.
func (d *AccountDispatch) PrefsList(ctx context.Context, where string, params *reddit.ListingParams) (reddit.UserPrefsContainers, error) {
	resp, err := d.httpClient.Get(ctx, "/prefs/"+url.PathEscape(where), rawJSON(params.ToValues()))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", where, err)
	}

	body := bytes.TrimSpace(resp.Body)

	if len(body) > 0 && body[0] == '{' {
		var single reddit.UserPrefsContainer

		err = json.Unmarshal(body, &single)
		if err != nil {
			return nil, fmt.Errorf("parsing %s listing: %w", where, err)
		}

		return reddit.UserPrefsContainers{single}, nil
	}

	var containers reddit.UserPrefsContainers

	err = json.Unmarshal(body, &containers)
	if err != nil {
		return nil, fmt.Errorf("parsing %s listing: %w", where, err)
	}

	return containers, nil
}

// PrefsSingle fetches a relationship listing made of one container.
func (d *AccountDispatch) PrefsSingle(ctx context.Context, where string, params *reddit.ListingParams) (*reddit.UserPrefsContainer, error) {
	resp, err := d.httpClient.Get(ctx, "/prefs/"+url.PathEscape(where), rawJSON(params.ToValues()))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", where, err)
	}

	body := bytes.TrimSpace(resp.Body)

	if len(body) > 0 && body[0] == '[' {
		var containers reddit.UserPrefsContainers

		err = json.Unmarshal(body, &containers)
		if err != nil {
			return nil, fmt.Errorf("parsing %s listing: %w", where, err)
		}

		if len(containers) == 0 {
			return nil, nil
		}

		return &containers[0], nil
	}

	var container *reddit.UserPrefsContainer

	err = json.Unmarshal(body, &container)
	if err != nil {
		return nil, fmt.Errorf("parsing %s listing: %w", where, err)
	}

	return container, nil
}

// rawJSON asks for unescaped bodies (no &amp; entities).
func rawJSON(values url.Values) url.Values {
	if values == nil {
		values = url.Values{}
	}

	values.Set("raw_json", "1")

	return values
}
