// Package reddit provides types, interfaces, and helpers for working with the
// Reddit OAuth API.
//
// # Overview
//
// The reddit package defines the data models (User, AccountPrefs, Award,
// UserPrefs, ...) and the interfaces of the resource clients (AccountClient,
// ScopesClient, WikiClient). A concrete implementation is provided by the
// redditclient package, which wires configuration, transport and
// authentication. Most consumers should import redditclient to construct a
// client and then use the interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/reddit-client/pkg/reddit"
//	  "github.com/fivetwenty-io/reddit-client/pkg/redditclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := redditclient.New(ctx, &reddit.Config{
//	    ClientID:     "id",
//	    ClientSecret: "secret",
//	    Username:     "user",
//	    Password:     "pass",
//	    UserAgent:    "linux:my-bot:v1.0 (by /u/user)",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  me, err := cli.Account().Me(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = me
//	}
//
// # Listings
//
// Relationship listings take a *ListingParams. Passing nil uses the defaults
// (limit 25, show "all"):
//
//	friends, err := cli.Account().Friends(ctx, reddit.NewListingParams().WithLimit(100))
//
// # Asynchronous operations
//
// Mutating account operations have Async variants returning a *Task. The
// operation keeps running after the caller's context is canceled; failures are
// logged and reported through Wait:
//
//	task := cli.Account().DeleteFriendAsync(ctx, "spez")
//	_, err := task.Wait(ctx)
//
// # Errors
//
// HTTP failures are reported as *ResponseError; errors embedded in a JSON
// payload are reported as *APIError. IsNotFound, IsUnauthorized, IsForbidden
// and IsRateLimited branch on the common cases.
//
// # Caching
//
// The scope catalogue is stored in a Cache. MemoryCache, NATSKVCache,
// RedisCache and NoOpCache are provided. CacheConfig.Local puts a MemoryCache
// in front of a shared backend through TieredCache.
package reddit
