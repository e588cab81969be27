// Package contentapi provides query builders, response types and helpers for
// working with a content-repository HTTP API (sections, tags, search and
// single-item lookups).
//
// # Overview
//
// A Client binds a Config (base URL and optional API key) to a Transport and
// a Parser. Each query kind is a builder composed from capability mixins
// (Pagination, ItemDisplay, Refinement, SearchTerm, ResultFilter). Setters
// chain and return the concrete builder; URL() assembles the request URL and
// the terminal operation issues it:
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/contentapi/pkg/contentapi"
//	  "github.com/fivetwenty-io/contentapi/pkg/contentclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := contentclient.New(&contentapi.Config{APIKey: "my-key"})
//	  if err != nil { log.Fatal(err) }
//
//	  res, err := cli.Search().
//	    WithQueryTerm("cats").
//	    WithPageSize(10).
//	    WithOrderBy(contentapi.OrderByNewest).
//	    Search(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = res.Results
//	}
//
// # URL format
//
// Every URL is the target followed by "?format=xml", then "&api-key=<key>"
// when a key is configured, then each mixin's fragment in the builder's
// declared order. Parameter names and their order are fixed. Only the q
// parameter is percent-encoded, once, when it is set; other values are sent
// as given.
//
// # Errors
//
// Non-2xx answers become *APIError carrying the status code and reason
// phrase. Bodies that cannot be parsed, or parse to the wrong shape, become
// *ParseError. An ItemQuery without a target fails with ErrTargetURLRequired
// before anything is sent. Helpers such as IsNotFound, IsForbidden and
// IsPrecondition make branching easy.
//
// # Interceptors and caching
//
// Retries, caching, rate limiting and metrics are layered around the
// Transport rather than built into queries: see InterceptingTransport,
// CachingTransport (memory, NATS KV or Redis backends), RateLimitInterceptor
// and PrometheusMetrics. pkg/contentclient wires them together.
package contentapi
