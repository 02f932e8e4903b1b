// Package ctp provides types, interfaces, and helpers for working with the
// commercetools HTTP and GraphQL APIs.
//
// # Overview
//
// The ctp package defines the domain types (Product, Category, Customer,
// Cart, Order), the interfaces of the resource clients and of the raw
// request executor, and the normalizer that flattens API responses into
// display records. A concrete client is built by the ctpclient package,
// which wires the OAuth2 client-credentials flow, the retrying transport and
// optional request logging.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/ctp/pkg/ctp"
//	  "github.com/fivetwenty-io/ctp/pkg/ctpclient"
//	)
//
//	func example(cfg *ctp.Config) {
//	  ctx := context.Background()
//	  cli, err := ctpclient.New(cfg)
//	  if err != nil { log.Fatal(err) }
//
//	  // First two products
//	  products, err := cli.Products().List(ctx, ctp.NewQueryParams().WithLimit(2))
//	  if err != nil { log.Fatal(err) }
//	  _ = products
//	}
//
// # Raw requests and normalization
//
// Execute issues one request described by a RequestSpec and returns the
// undecoded body, which Normalize turns into a DisplayPage:
//
//	raw, err := cli.Execute(ctx, &ctp.RequestSpec{
//	  Kind:       ctp.KindProduct,
//	  Pagination: &ctp.Pagination{Limit: 2},
//	})
//	if err != nil { /* handle error */ }
//	page, err := ctp.Normalize(ctp.KindProduct, raw.Body)
//
// Localized text is resolved through PreferredLocales, then the first locale
// of the document, then a placeholder.
//
// # Errors
//
// Every failure is one of ConfigError, BuildError, TransportError, APIError,
// GraphQLResultError or NormalizationError. Classify maps an error chain onto
// ErrorKind and GraphQLErrors extracts the structured entries of a failed
// GraphQL call:
//
//	if errs, ok := ctp.GraphQLErrors(err); ok {
//	  ctp.WriteGraphQLErrors(os.Stderr, errs)
//	}
package ctp
