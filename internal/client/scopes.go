package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/fivetwenty-io/reddit-client/internal/constants"
	"github.com/fivetwenty-io/reddit-client/pkg/reddit"
)

// ScopesDispatcher is the transport behind ScopesController.
type ScopesDispatcher interface {
	List(ctx context.Context) (map[string]reddit.Scope, error)
}

// ScopesController implements reddit.ScopesClient. The catalogue is kept in a
// reddit.Cache since it rarely changes.
type ScopesController struct {
	scopes ScopesDispatcher
	cache  reddit.Cache
	ttl    time.Duration
	logger reddit.Logger
}

// NewScopesController creates a new scopes controller. A nil cache disables caching.
func NewScopesController(scopes ScopesDispatcher, cache reddit.Cache, ttl time.Duration, logger reddit.Logger) *ScopesController {
	if cache == nil {
		cache = reddit.NoOpCache{}
	}

	if ttl <= 0 {
		ttl = constants.ScopesCacheTTL
	}

	return &ScopesController{
		scopes: scopes,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// List implements reddit.ScopesClient.List. Scopes are sorted by ID.
func (c *ScopesController) List(ctx context.Context) ([]reddit.Scope, error) {
	if scopes, ok := c.cached(ctx); ok {
		return scopes, nil
	}

	catalogue, err := c.scopes.List(ctx)
	if err != nil {
		return nil, err
	}

	scopes := make([]reddit.Scope, 0, len(catalogue))

	for id, scope := range catalogue {
		if scope.ID == "" {
			scope.ID = id
		}

		scopes = append(scopes, scope)
	}

	sort.Slice(scopes, func(i, j int) bool {
		return scopes[i].ID < scopes[j].ID
	})

	c.store(ctx, scopes)

	return scopes, nil
}

// Get implements reddit.ScopesClient.Get.
func (c *ScopesController) Get(ctx context.Context, id string) (*reddit.Scope, error) {
	scopes, err := c.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range scopes {
		if scopes[i].ID == id {
			return &scopes[i], nil
		}
	}

	return nil, fmt.Errorf("%w: %s", reddit.ErrScopeNotFound, id)
}

func (c *ScopesController) cached(ctx context.Context) ([]reddit.Scope, bool) {
	entry, err := c.cache.Get(ctx, constants.ScopesCacheKey)
	if err != nil {
		return nil, false
	}

	var scopes []reddit.Scope

	err = json.Unmarshal(entry.Data, &scopes)
	if err != nil {
		c.debug("discarding unreadable scopes cache entry", err)

		return nil, false
	}

	return scopes, true
}

func (c *ScopesController) store(ctx context.Context, scopes []reddit.Scope) {
	data, err := json.Marshal(scopes)
	if err != nil {
		c.debug("encoding scopes for cache", err)

		return
	}

	err = c.cache.Set(ctx, constants.ScopesCacheKey, &reddit.CacheEntry{
		Data:      data,
		ExpiresAt: time.Now().Add(c.ttl),
	})
	if err != nil {
		c.debug("caching scopes", err)
	}
}

func (c *ScopesController) debug(msg string, err error) {
	if c.logger != nil {
		c.logger.Debug(msg, map[string]interface{}{"error": err.Error()})
	}
}
