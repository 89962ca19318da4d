package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Zertz/stripe-chainable/internal/testutil"
	"github.com/Zertz/stripe-chainable/pkg/transport"
	"github.com/rs/zerolog"
)

// memoryStore is an in-memory Store.
type memoryStore struct {
	mu      sync.Mutex
	entries map[string]*Entry
	getErr  error
	setErr  error
	sets    int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{entries: make(map[string]*Entry)}
}

func (s *memoryStore) Get(_ context.Context, key Key) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.getErr != nil {
		return nil, s.getErr
	}
	entry, ok := s.entries[key.String()]
	if !ok || entry.IsExpired() {
		return nil, ErrCacheMiss
	}
	return entry, nil
}

func (s *memoryStore) Set(_ context.Context, key Key, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sets++
	if s.setErr != nil {
		return s.setErr
	}
	s.entries[key.String()] = entry
	return nil
}

func newTestTransport(store Store) (*Transport, *testutil.MockTransport) {
	mock := testutil.NewMockTransport()
	return NewTransport(mock, store, Config{TTL: time.Minute, Logger: zerolog.Nop()}), mock
}

func TestNewTransport_DefaultTTL(t *testing.T) {
	tr := NewTransport(testutil.NewMockTransport(), newMemoryStore(), Config{})
	if tr.config.TTL != DefaultTTL {
		t.Errorf("TTL = %v, want %v", tr.config.TTL, DefaultTTL)
	}
}

func TestTransport_List_MissThenHit(t *testing.T) {
	store := newMemoryStore()
	tr, mock := newTestTransport(store)
	mock.SetDataset("charges", testutil.NewItems("ch", 5))
	ctx := context.Background()
	params := &transport.ListParams{Limit: 2}

	first, err := tr.List(ctx, "charges", params, transport.Extras{})
	if err != nil {
		t.Fatalf("first List() error = %v", err)
	}
	second, err := tr.List(ctx, "charges", params, transport.Extras{})
	if err != nil {
		t.Fatalf("second List() error = %v", err)
	}

	if mock.CallCount() != 1 {
		t.Errorf("CallCount() = %d, want 1", mock.CallCount())
	}
	if len(second.Data) != len(first.Data) || second.Data[1].ID() != "ch_2" {
		t.Errorf("cached page = %+v, want %+v", second, first)
	}
}

func TestTransport_KeysByParamsAndAccount(t *testing.T) {
	tr, mock := newTestTransport(newMemoryStore())
	ctx := context.Background()

	calls := []struct {
		params *transport.ListParams
		extras transport.Extras
	}{
		{&transport.ListParams{Limit: 2}, transport.Extras{}},
		{&transport.ListParams{Limit: 2, StartingAfter: "ch_2"}, transport.Extras{}},
		{&transport.ListParams{Limit: 2}, transport.Extras{Account: "acct_1"}},
	}
	for _, c := range calls {
		if _, err := tr.List(ctx, "charges", c.params, c.extras); err != nil {
			t.Fatalf("List() error = %v", err)
		}
	}
	if _, err := tr.ListTransactions(ctx, &transport.ListParams{Limit: 2}, transport.Extras{}); err != nil {
		t.Fatalf("ListTransactions() error = %v", err)
	}

	if mock.CallCount() != 4 {
		t.Errorf("CallCount() = %d, want 4", mock.CallCount())
	}
}

func TestTransport_ErrorsAreNotCached(t *testing.T) {
	store := newMemoryStore()
	tr, mock := newTestTransport(store)
	cause := errors.New("unavailable")
	mock.SetResponses("charges",
		testutil.NewErrorResponse(cause),
		testutil.NewPageResponse("charges", testutil.NewItems("ch", 1), false, 1),
	)
	ctx := context.Background()

	if _, err := tr.List(ctx, "charges", &transport.ListParams{}, transport.Extras{}); !errors.Is(err, cause) {
		t.Fatalf("List() error = %v, want %v", err, cause)
	}
	if store.sets != 0 {
		t.Errorf("sets = %d, want 0", store.sets)
	}

	page, err := tr.List(ctx, "charges", &transport.ListParams{}, transport.Extras{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page.Data) != 1 {
		t.Errorf("len(Data) = %d, want 1", len(page.Data))
	}
}

func TestTransport_StoreFailuresFallThrough(t *testing.T) {
	store := newMemoryStore()
	store.getErr = errors.New("connection refused")
	store.setErr = errors.New("connection refused")
	tr, mock := newTestTransport(store)
	mock.SetDataset("charges", testutil.NewItems("ch", 3))

	page, err := tr.List(context.Background(), "charges", &transport.ListParams{}, transport.Extras{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page.Data) != 3 {
		t.Errorf("len(Data) = %d, want 3", len(page.Data))
	}
	if store.sets != 1 {
		t.Errorf("sets = %d, want 1", store.sets)
	}
}

func TestTransport_CollapsesConcurrentMisses(t *testing.T) {
	tr, mock := newTestTransport(newMemoryStore())
	mock.SetResponses("charges", testutil.MockResponse{
		Page:  testutil.NewPage("charges", testutil.NewItems("ch", 1), false, 1),
		Delay: 100 * time.Millisecond,
	})

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := tr.List(context.Background(), "charges", &transport.ListParams{}, transport.Extras{}); err != nil {
				t.Errorf("List() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if mock.CallCount() != 1 {
		t.Errorf("CallCount() = %d, want 1", mock.CallCount())
	}
}
