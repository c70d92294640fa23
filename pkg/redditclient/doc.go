// Package redditclient provides the primary entry point for constructing a
// Reddit API client that implements the reddit.Client interface.
//
// It layers configuration defaults, HTTP transport and OAuth2 authentication on
// top of the interfaces and types defined in the reddit package. Most
// applications should import redditclient to build a client, then use the
// returned reddit.Client to reach Account(), Scopes() and Wiki().
//
// Quick start
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
//
//	  // A "script" app acting as its own account.
//	  cli, err := redditclient.New(ctx, &reddit.Config{
//	    UserAgent:    "linux:my-bot:v0.1 (by /u/me)",
//	    ClientID:     "client-id",
//	    ClientSecret: "client-secret",
//	    Username:     "me",
//	    Password:     "pass",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  me, err := cli.Account().Me(ctx)
//	  if err != nil { log.Fatal(err) }
//
//	  friends, err := cli.Account().Friends(ctx, reddit.NewListingParams().WithLimit(100))
//	  if err != nil { log.Fatal(err) }
//	  _, _ = me, friends
//	}
//
// # Defaults
//
// BaseURL defaults to https://oauth.reddit.com and TokenURL to
// https://www.reddit.com/api/v1/access_token. A host without a scheme is
// treated as https. Reddit throttles generic user agents, so always set
// UserAgent in the "<platform>:<app ID>:<version> (by /u/<username>)" form.
//
// # Helpers
//
// The package also provides convenience constructors NewWithToken,
// NewWithClientCredentials, NewWithPassword, NewWithRefreshToken and
// NewWithInstalledClient that wrap New with the appropriate configuration.
package redditclient
