package client

import (
	"context"

	"github.com/fivetwenty-io/reddit-client/internal/constants"
	"github.com/fivetwenty-io/reddit-client/pkg/reddit"
)

// WikiDispatcher is the transport behind WikiController.
type WikiDispatcher interface {
	Pages(ctx context.Context, subreddit string) (*reddit.WikiPageListing, error)
}

// WikiController implements reddit.WikiClient.
type WikiController struct {
	wiki WikiDispatcher
}

// NewWikiController creates a new wiki controller.
func NewWikiController(wiki WikiDispatcher) *WikiController {
	return &WikiController{wiki: wiki}
}

// Pages implements reddit.WikiClient.Pages.
func (c *WikiController) Pages(ctx context.Context, subreddit string) (*reddit.WikiPageListing, error) {
	if subreddit == "" {
		return nil, constants.ErrSubredditRequired
	}

	return validated(c.wiki.Pages(ctx, subreddit))
}
