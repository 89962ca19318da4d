package transport

import "context"

// LedgerEndpoint names the balance transaction listing in logs and cache keys.
const LedgerEndpoint = "balance/history"

// Item is one decoded list entry.
type Item map[string]any

// ID returns the item's "id" field, or "" when absent.
func (i Item) ID() string {
	id, _ := i["id"].(string)
	return id
}

// Page is one list response. Data holds the page items; the remaining fields
// are list metadata.
type Page struct {
	Object     string `json:"object"`
	URL        string `json:"url"`
	HasMore    bool   `json:"has_more"`
	TotalCount int    `json:"total_count"`
	Data       []Item `json:"data"`
}

// Transport lists pages of resources and balance transactions.
type Transport interface {
	// List fetches one page of the named resource endpoint (e.g. "charges").
	List(ctx context.Context, endpoint string, params *ListParams, extras Extras) (*Page, error)

	// ListTransactions fetches one page of balance transactions.
	ListTransactions(ctx context.Context, params *ListParams, extras Extras) (*Page, error)
}

// FetchFunc fetches one page with the given params. It binds a Transport
// method to an endpoint.
type FetchFunc func(ctx context.Context, params *ListParams, extras Extras) (*Page, error)

// ResourceFetcher binds tr.List to endpoint.
func ResourceFetcher(tr Transport, endpoint string) FetchFunc {
	return func(ctx context.Context, params *ListParams, extras Extras) (*Page, error) {
		return tr.List(ctx, endpoint, params, extras)
	}
}

// LedgerFetcher binds tr.ListTransactions.
func LedgerFetcher(tr Transport) FetchFunc {
	return tr.ListTransactions
}
