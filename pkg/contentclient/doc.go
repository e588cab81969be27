// Package contentclient provides the primary entry point for constructing a
// content API client.
//
// It wires the retrying HTTP transport and the XML document parser into a
// contentapi.Client, and optionally layers interceptors (rate limiting,
// metrics, logging) and a response cache around the transport.
//
// Quick start
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
//
//	  // Production endpoint with a key.
//	  cli, err := contentclient.New(&contentapi.Config{APIKey: "my-key"})
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with retries, a memory cache and client-side rate limiting:
//	  cli, err = contentclient.New(
//	    &contentapi.Config{APIKey: "my-key", RetryMax: 3},
//	    contentclient.WithCache(contentapi.NewMemoryCache(500), nil),
//	    contentclient.WithRateLimit(5, 1),
//	  )
//	  if err != nil { log.Fatal(err) }
//
//	  sections, err := cli.Sections().WithQueryTerm("sport").Sections(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = sections
//	}
package contentclient
