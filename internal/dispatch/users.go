package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/reddit-client/internal/http"
	"github.com/fivetwenty-io/reddit-client/pkg/reddit"
)

// UsersDispatch calls the /api/v1/me/friends endpoints.
type UsersDispatch struct {
	httpClient *http.Client
}

// NewUsersDispatch creates a new users dispatcher.
func NewUsersDispatch(httpClient *http.Client) *UsersDispatch {
	return &UsersDispatch{
		httpClient: httpClient,
	}
}

func friendPath(username string) string {
	return "/api/v1/me/friends/" + url.PathEscape(username)
}

// DeleteFriend removes a user from the friend list.
func (d *UsersDispatch) DeleteFriend(ctx context.Context, username string) error {
	_, err := d.httpClient.Delete(ctx, friendPath(username))
	if err != nil {
		return fmt.Errorf("deleting friend %s: %w", username, err)
	}

	return nil
}

// GetFriend fetches the friend relationship with a user.
func (d *UsersDispatch) GetFriend(ctx context.Context, username string) (*reddit.UserActionResult, error) {
	resp, err := d.httpClient.Get(ctx, friendPath(username), nil)
	if err != nil {
		return nil, fmt.Errorf("getting friend %s: %w", username, err)
	}

	var result *reddit.UserActionResult

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing friend %s: %w", username, err)
	}

	return result, nil
}

// UpdateFriend creates or updates a friend relationship. payload is sent as is.
func (d *UsersDispatch) UpdateFriend(ctx context.Context, username, payload string) (*reddit.UserActionResult, error) {
	resp, err := d.httpClient.Put(ctx, friendPath(username), []byte(payload))
	if err != nil {
		return nil, fmt.Errorf("updating friend %s: %w", username, err)
	}

	var result *reddit.UserActionResult

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing friend %s response: %w", username, err)
	}

	return result, nil
}
