// Package pagination drives a cursor-paged list endpoint until a stop policy
// is met and aggregates every page into one result.
//
// Pages are fetched strictly one after another: each request resumes after
// the last item of the previous page, so page N+1 cannot start before page N
// completes.
//
// Example usage:
//
//	engine := pagination.NewEngine(pagination.DefaultConfig())
//	page, err := engine.Run(ctx, pagination.Request{
//		Endpoint: "charges",
//		Params:   &transport.ListParams{Limit: 250},
//		Fetch:    transport.ResourceFetcher(tr, "charges"),
//		Progress: func(fetched, total int) { fmt.Println(fetched, total) },
//	})
//
// The engine:
//   - Clamps every request to the page size (default 100)
//   - Continues while the page reports has_more and either RetrieveAll is set
//     or more than one page size of items is still wanted
//   - Counts each page against Params.Limit so the last request asks only for
//     the remainder
//   - Reports cumulative progress after every page, before returning
//   - Stops at the first failed fetch and returns no partial data
package pagination
