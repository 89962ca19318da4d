package chain

import (
	"testing"
	"time"

	"github.com/Zertz/stripe-chainable/internal/testutil"
	"github.com/rs/zerolog"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fixedNow is the clock used by test queries.
var fixedNow = time.Date(2015, time.May, 2, 12, 24, 48, 753_000_000, time.UTC)

func newTestQuery(t *testing.T) (*Query, *testutil.MockTransport) {
	t.Helper()

	mock := testutil.NewMockTransport()
	q, err := New(mock, Config{
		PageSize: 100,
		Logger:   zerolog.Nop(),
		Now:      func() time.Time { return fixedNow },
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return q, mock
}
