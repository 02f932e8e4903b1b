// Package ctpclient provides the primary entry point for constructing a
// commercetools API client that implements the ctp.Client interface.
//
// It layers URL normalization, HTTP transport and OAuth2 client credentials
// on top of the resource interfaces and types defined in the ctp package.
// Building a client performs no network I/O; the access token is requested by
// the first call and reused afterwards.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/ctp/pkg/ctp"
//	  "github.com/fivetwenty-io/ctp/pkg/ctpclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := ctpclient.New(&ctp.Config{
//	    AuthURL:      "https://auth.europe-west1.gcp.commercetools.com",
//	    APIURL:       "https://api.europe-west1.gcp.commercetools.com",
//	    ProjectKey:   "my-project",
//	    ClientID:     "client-id",
//	    ClientSecret: "client-secret",
//	    Scopes:       []string{"manage_project:my-project"},
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  products, err := cli.Products().List(ctx, ctp.NewQueryParams().WithLimit(2))
//	  if err != nil { log.Fatal(err) }
//
//	  page, err := ctp.NormalizeProducts(products)
//	  if err != nil { log.Fatal(err) }
//	  _ = page
//	}
//
// # URL handling
//
// Trailing slashes are removed and a missing scheme defaults to https. Only
// http and https are accepted. Every rejection is a *ctp.BuildError naming the
// offending field.
//
// # Helpers
//
// NewWithClientCredentials builds a client scoped to manage_project on a
// single project.
package ctpclient
