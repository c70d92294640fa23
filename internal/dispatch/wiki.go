package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/reddit-client/internal/http"
	"github.com/fivetwenty-io/reddit-client/pkg/reddit"
)

// WikiDispatch calls the subreddit wiki endpoints.
type WikiDispatch struct {
	httpClient *http.Client
}

// NewWikiDispatch creates a new wiki dispatcher.
func NewWikiDispatch(httpClient *http.Client) *WikiDispatch {
	return &WikiDispatch{
		httpClient: httpClient,
	}
}

// Pages lists the wiki pages of a subreddit.
func (d *WikiDispatch) Pages(ctx context.Context, subreddit string) (*reddit.WikiPageListing, error) {
	path := "/r/" + url.PathEscape(subreddit) + "/wiki/pages"

	resp, err := d.httpClient.Get(ctx, path, url.Values{"raw_json": {"1"}})
	if err != nil {
		return nil, fmt.Errorf("listing wiki pages of %s: %w", subreddit, err)
	}

	var listing *reddit.WikiPageListing

	err = json.Unmarshal(resp.Body, &listing)
	if err != nil {
		return nil, fmt.Errorf("parsing wiki pages: %w", err)
	}

	return listing, nil
}
