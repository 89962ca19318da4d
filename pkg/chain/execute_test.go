package chain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Zertz/stripe-chainable/internal/testutil"
	"github.com/Zertz/stripe-chainable/pkg/pagination"
	"github.com/Zertz/stripe-chainable/pkg/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type progressCall struct {
	fetched, total int
}

func recordProgress(calls *[]progressCall) ProgressFunc {
	return func(fetched, total int) {
		*calls = append(*calls, progressCall{fetched, total})
	}
}

func TestList_SinglePageWithoutLimit(t *testing.T) {
	q, mock := newTestQuery(t)
	mock.SetDataset("charges", testutil.NewItems("ch", 250))

	page, err := q.Charges().List(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, 1, mock.CallCount())
	assert.Len(t, page.Data, testutil.DefaultLimit)
	assert.Equal(t, 250, page.TotalCount)
	assert.Zero(t, mock.Calls()[0].Params.Limit)
}

func TestList_RetrieveAllTwoPages(t *testing.T) {
	q, mock := newTestQuery(t)
	mock.SetResponses("charges",
		testutil.NewPageResponse("charges", testutil.NewItems("ch", 1), true, 2),
		testutil.NewPageResponse("charges", []transport.Item{{"id": "ch_2"}}, false, 2),
	)

	var calls []progressCall
	page, err := q.All().Charges().List(context.Background(), recordProgress(&calls))

	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.False(t, page.HasMore)
	assert.Equal(t, []progressCall{{1, 2}, {2, 2}}, calls)

	sent := mock.Calls()
	require.Len(t, sent, 2)
	assert.Empty(t, sent[0].Params.StartingAfter)
	assert.Equal(t, "ch_1", sent[1].Params.StartingAfter)
	assert.Equal(t, 100, sent[0].Params.Limit)
}

func TestList_ExplicitLimitAcrossPages(t *testing.T) {
	tests := []struct {
		limit  int
		limits []int
	}{
		{100, []int{100}},
		{101, []int{100, 1}},
		{250, []int{100, 100, 50}},
	}

	for _, tt := range tests {
		q, mock := newTestQuery(t)
		mock.SetDataset("customers", testutil.NewItems("cus", 1000))

		page, err := q.Find(tt.limit).Customers().List(context.Background(), nil)

		require.NoError(t, err)
		assert.Len(t, page.Data, tt.limit)

		var got []int
		for _, c := range mock.Calls() {
			got = append(got, c.Params.Limit)
		}
		assert.Equal(t, tt.limits, got, "limit %d", tt.limit)
	}
}

func TestList_StateErrorWithoutKind(t *testing.T) {
	q, mock := newTestQuery(t)

	_, err := q.All().List(context.Background(), nil)

	var stateErr *StateError
	require.ErrorAs(t, err, &stateErr)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, "list", stateErr.Operation)
	assert.Contains(t, err.Error(), "charge, customer, plan")
	assert.Contains(t, err.Error(), "(got none)")
	assert.Zero(t, mock.CallCount())
}

func TestList_StateErrorForLedgerOnlyKind(t *testing.T) {
	q, mock := newTestQuery(t)

	_, err := q.Refunds().List(context.Background(), nil)

	var stateErr *StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, KindRefund, stateErr.Kind)
	assert.Zero(t, mock.CallCount())
}

func TestList_Endpoints(t *testing.T) {
	tests := []struct {
		call     func(q *Query) *Query
		endpoint string
	}{
		{(*Query).Charges, "charges"},
		{(*Query).InvoiceItems, "invoice_items"},
		{(*Query).ApplicationFees, "application_fees"},
		{(*Query).BitcoinReceivers, "bitcoin_receivers"},
		{(*Query).FileUploads, "file_uploads"},
	}

	for _, tt := range tests {
		q, mock := newTestQuery(t)

		_, err := tt.call(q).List(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, []string{tt.endpoint}, mock.Endpoints())
	}
}

func TestList_InvoicesSendDate(t *testing.T) {
	q, mock := newTestQuery(t)

	_, err := q.Invoices().From(fixedNow).List(context.Background(), nil)

	require.NoError(t, err)
	sent := mock.Calls()[0].Params
	assert.Nil(t, sent.Created)
	require.NotNil(t, sent.Date)
	assert.Equal(t, transport.Int64(fixedSeconds), sent.Date.GTE)
}

func TestList_ExtrasOnEveryPage(t *testing.T) {
	q, mock := newTestQuery(t)
	mock.SetDataset("charges", testutil.NewItems("ch", 150))

	page, err := q.SetAccount("acct_1").All().Charges().List(context.Background(), nil)

	require.NoError(t, err)
	assert.Len(t, page.Data, 150)
	for _, c := range mock.Calls() {
		assert.Equal(t, "acct_1", c.Extras.Account)
	}
	assert.Equal(t, "acct_1", q.State().Extras.Account)
}

func TestList_ResetsAfterSuccess(t *testing.T) {
	q, _ := newTestQuery(t)

	_, err := q.All().Charges().For("cus_1").From(fixedNow).List(context.Background(), nil)

	require.NoError(t, err)
	assert.True(t, q.State().IsEmpty())
}

func TestList_SendsEpochBound(t *testing.T) {
	q, mock := newTestQuery(t)

	_, err := q.Charges().To(time.Unix(0, 0)).List(context.Background(), nil)

	require.NoError(t, err)
	sent := mock.Calls()[0].Params
	assert.Equal(t, []string{"0"}, sent.Values()["created[lte]"])
}

func TestList_TransportError(t *testing.T) {
	q, mock := newTestQuery(t)
	cause := errors.New("connection reset")
	mock.SetResponses("charges", testutil.NewErrorResponse(cause))

	var calls []progressCall
	page, err := q.All().Charges().List(context.Background(), recordProgress(&calls))

	assert.Nil(t, page)
	var transportErr *pagination.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.ErrorIs(t, err, cause)
	assert.Empty(t, calls)
	assert.True(t, q.State().IsEmpty())
}

func TestList_StickyErrorSkipsTransport(t *testing.T) {
	q, mock := newTestQuery(t)

	q.Charges().Last(0)
	_, err := q.List(context.Background(), nil)

	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Zero(t, mock.CallCount())
	assert.Equal(t, []Instruction{InstrCharges}, q.State().ChainLog.Entries())
}

func TestListTransactions(t *testing.T) {
	t.Run("unscoped", func(t *testing.T) {
		q, mock := newTestQuery(t)

		_, err := q.All().ListTransactions(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, []string{transport.LedgerEndpoint}, mock.Endpoints())
		assert.Empty(t, mock.Calls()[0].Params.Type)
	})

	t.Run("typed", func(t *testing.T) {
		q, mock := newTestQuery(t)

		_, err := q.ApplicationFeeRefunds().ListTransactions(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, "application_fee_refund", mock.Calls()[0].Params.Type)
	})

	t.Run("rejects non-ledger kind", func(t *testing.T) {
		q, mock := newTestQuery(t)

		_, err := q.Customers().ListTransactions(context.Background(), nil)

		var stateErr *StateError
		require.ErrorAs(t, err, &stateErr)
		assert.Equal(t, "listTransactions", stateErr.Operation)
		assert.Equal(t, LedgerKinds(), stateErr.Valid)
		assert.Zero(t, mock.CallCount())
	})
}

func TestPlease(t *testing.T) {
	t.Run("history lists transactions", func(t *testing.T) {
		q, mock := newTestQuery(t)

		_, err := q.All().History().Of().Charges().To(nil).Now().Please(context.Background(), nil)

		require.NoError(t, err)
		calls := mock.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, transport.LedgerEndpoint, calls[0].Endpoint)
		assert.Equal(t, "charge", calls[0].Params.Type)
		assert.Equal(t, transport.Int64(fixedSeconds+1), calls[0].Params.Created.LTE)
	})

	t.Run("plain listing otherwise", func(t *testing.T) {
		q, mock := newTestQuery(t)

		_, err := q.Last(5).Events().Type("charge.failed").Please(context.Background(), nil)

		require.NoError(t, err)
		calls := mock.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, "events", calls[0].Endpoint)
		assert.Equal(t, 5, calls[0].Params.Limit)
		assert.Equal(t, "charge.failed", calls[0].Params.Type)
	})
}

func TestList_CancelledContext(t *testing.T) {
	q, mock := newTestQuery(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := q.Charges().List(ctx, nil)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, mock.CallCount())
	assert.True(t, q.State().IsEmpty())
}
