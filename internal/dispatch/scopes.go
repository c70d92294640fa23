package dispatch

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/reddit-client/internal/http"
	"github.com/fivetwenty-io/reddit-client/pkg/reddit"
)

// ScopesDispatch calls the scope catalogue endpoint.
type ScopesDispatch struct {
	httpClient *http.Client
}

// NewScopesDispatch creates a new scopes dispatcher.
func NewScopesDispatch(httpClient *http.Client) *ScopesDispatch {
	return &ScopesDispatch{
		httpClient: httpClient,
	}
}

// List fetches every OAuth scope keyed by its ID.
func (d *ScopesDispatch) List(ctx context.Context) (map[string]reddit.Scope, error) {
	resp, err := d.httpClient.Get(ctx, "/api/v1/scopes", nil)
	if err != nil {
		return nil, fmt.Errorf("listing scopes: %w", err)
	}

	var scopes map[string]reddit.Scope

	err = json.Unmarshal(resp.Body, &scopes)
	if err != nil {
		return nil, fmt.Errorf("parsing scopes: %w", err)
	}

	return scopes, nil
}
