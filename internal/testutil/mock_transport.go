// Package testutil provides testing utilities for the query builder.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Zertz/stripe-chainable/pkg/transport"
)

// DefaultLimit is the page size served when a request carries no limit.
const DefaultLimit = 10

// MockResponse defines one scripted page response.
type MockResponse struct {
	Page  *transport.Page
	Err   error
	Delay time.Duration
}

// Call records one transport invocation.
type Call struct {
	Endpoint string
	Params   transport.ListParams
	Extras   transport.Extras
}

// MockTransport is a configurable in-memory transport for testing.
//
// Each endpoint serves either scripted responses, consumed in order, or a
// dataset paged by limit and starting_after. Endpoints with neither answer
// with an empty list.
type MockTransport struct {
	mu        sync.Mutex
	responses map[string][]MockResponse
	datasets  map[string][]transport.Item
	calls     []Call
}

// NewMockTransport creates a new mock transport.
func NewMockTransport() *MockTransport {
	return &MockTransport{
		responses: make(map[string][]MockResponse),
		datasets:  make(map[string][]transport.Item),
	}
}

// List implements transport.Transport.
func (m *MockTransport) List(ctx context.Context, endpoint string, params *transport.ListParams, extras transport.Extras) (*transport.Page, error) {
	return m.serve(ctx, endpoint, params, extras)
}

// ListTransactions implements transport.Transport.
func (m *MockTransport) ListTransactions(ctx context.Context, params *transport.ListParams, extras transport.Extras) (*transport.Page, error) {
	return m.serve(ctx, transport.LedgerEndpoint, params, extras)
}

// SetResponses queues scripted responses for endpoint, replacing any queued
// before.
func (m *MockTransport) SetResponses(endpoint string, responses ...MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[endpoint] = append([]MockResponse(nil), responses...)
}

// SetDataset serves items from endpoint, paged by the request's limit and
// starting_after cursor.
func (m *MockTransport) SetDataset(endpoint string, items []transport.Item) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.datasets[endpoint] = items
}

// Reset clears scripted responses, datasets and recorded calls.
func (m *MockTransport) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = make(map[string][]MockResponse)
	m.datasets = make(map[string][]transport.Item)
	m.calls = nil
}

// Calls returns the recorded calls in order.
func (m *MockTransport) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// CallCount returns the number of calls made to the transport.
func (m *MockTransport) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Endpoints returns the distinct endpoints called, sorted.
func (m *MockTransport) Endpoints() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[string]bool)
	var endpoints []string
	for _, c := range m.calls {
		if !seen[c.Endpoint] {
			seen[c.Endpoint] = true
			endpoints = append(endpoints, c.Endpoint)
		}
	}
	sort.Strings(endpoints)
	return endpoints
}

func (m *MockTransport) serve(ctx context.Context, endpoint string, params *transport.ListParams, extras transport.Extras) (*transport.Page, error) {
	m.mu.Lock()
	m.calls = append(m.calls, Call{
		Endpoint: endpoint,
		Params:   *params.Clone(),
		Extras:   extras,
	})

	var resp *MockResponse
	if queue := m.responses[endpoint]; len(queue) > 0 {
		resp = &queue[0]
		m.responses[endpoint] = queue[1:]
	}
	dataset, hasDataset := m.datasets[endpoint]
	m.mu.Unlock()

	if resp != nil {
		if resp.Delay > 0 {
			select {
			case <-time.After(resp.Delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		return resp.Page, resp.Err
	}

	if hasDataset {
		return pageOf(endpoint, dataset, params), nil
	}

	return NewPage(endpoint, nil, false, 0), nil
}

func pageOf(endpoint string, dataset []transport.Item, params *transport.ListParams) *transport.Page {
	start := 0
	if params.StartingAfter != "" {
		for i, item := range dataset {
			if item.ID() == params.StartingAfter {
				start = i + 1
				break
			}
		}
	}

	limit := params.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	end := start + limit
	if end > len(dataset) {
		end = len(dataset)
	}

	return NewPage(endpoint, dataset[start:end], end < len(dataset), len(dataset))
}

// NewItems creates n items with ids "<prefix>_<i>", i counting from 1.
func NewItems(prefix string, n int) []transport.Item {
	items := make([]transport.Item, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, transport.Item{
			"id":     fmt.Sprintf("%s_%d", prefix, i),
			"object": prefix,
		})
	}
	return items
}

// NewPage creates a list page for endpoint.
func NewPage(endpoint string, items []transport.Item, hasMore bool, total int) *transport.Page {
	if items == nil {
		items = []transport.Item{}
	}
	return &transport.Page{
		Object:     "list",
		URL:        "/v1/" + endpoint,
		HasMore:    hasMore,
		TotalCount: total,
		Data:       items,
	}
}

// NewPageResponse creates a successful scripted response.
func NewPageResponse(endpoint string, items []transport.Item, hasMore bool, total int) MockResponse {
	return MockResponse{Page: NewPage(endpoint, items, hasMore, total)}
}

// NewErrorResponse creates a failing scripted response.
func NewErrorResponse(err error) MockResponse {
	return MockResponse{Err: err}
}
