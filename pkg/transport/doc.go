// Package transport defines the paged-list capability the query builder drives.
//
// A Transport lists one page of a resource endpoint, or of the balance ledger,
// for a given set of ListParams. Authentication, serialization, retries and
// rate limiting belong to the implementation; the builder only relies on the
// page shape:
//
//	page, err := tr.List(ctx, "charges", &transport.ListParams{Limit: 100}, transport.Extras{})
//	if err != nil {
//		return err
//	}
//	for _, item := range page.Data {
//		fmt.Println(item.ID())
//	}
//
// ListParams.Values renders the params in the form-encoded wire layout used by
// the list API (created[gte]=..., include[]=..., starting_after=...). The
// encoding is deterministic, so it doubles as a cache key component.
package transport
