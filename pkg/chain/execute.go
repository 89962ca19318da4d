package chain

import (
	"context"

	"github.com/Zertz/stripe-chainable/pkg/pagination"
	"github.com/Zertz/stripe-chainable/pkg/transport"
)

// ProgressFunc receives the cumulative item count and the transport's total
// count after every page. A nil ProgressFunc is ignored.
type ProgressFunc = pagination.ProgressFunc

// DoneFunc receives the outcome of an asynchronous terminal. It is called
// exactly once, after every progress call.
type DoneFunc func(page *transport.Page, err error)

// Names of the terminals in error messages.
const (
	opList             = "list"
	opListTransactions = "listTransactions"
	opPlease           = "please"
)

// List lists the selected resource kind and resets the query. It returns a
// *StateError when no listable kind is selected, and a
// *pagination.TransportError when a fetch fails.
func (q *Query) List(ctx context.Context, progress ProgressFunc) (*transport.Page, error) {
	req, err := q.prepareList()
	if err != nil {
		return nil, err
	}
	return q.execute(ctx, req, progress)
}

// ListTransactions lists balance transactions and resets the query. When a
// kind is selected it must be a transaction type and is sent as the type
// filter.
func (q *Query) ListTransactions(ctx context.Context, progress ProgressFunc) (*transport.Page, error) {
	req, err := q.prepareTransactions()
	if err != nil {
		return nil, err
	}
	return q.execute(ctx, req, progress)
}

// Please runs ListTransactions when History is in the chain and List
// otherwise.
func (q *Query) Please(ctx context.Context, progress ProgressFunc) (*transport.Page, error) {
	req, err := q.prepare()
	if err != nil {
		return nil, err
	}
	return q.execute(ctx, req, progress)
}

// ListAsync is List run in a goroutine. Validation errors are returned
// directly and done is not called.
func (q *Query) ListAsync(ctx context.Context, progress ProgressFunc, done DoneFunc) error {
	return q.async(ctx, opList, q.prepareList, progress, done)
}

// ListTransactionsAsync is ListTransactions run in a goroutine.
func (q *Query) ListTransactionsAsync(ctx context.Context, progress ProgressFunc, done DoneFunc) error {
	return q.async(ctx, opListTransactions, q.prepareTransactions, progress, done)
}

// PleaseAsync is Please run in a goroutine.
func (q *Query) PleaseAsync(ctx context.Context, progress ProgressFunc, done DoneFunc) error {
	return q.async(ctx, opPlease, q.prepare, progress, done)
}

func (q *Query) async(
	ctx context.Context,
	op string,
	prepare func() (pagination.Request, error),
	progress ProgressFunc,
	done DoneFunc,
) error {
	if done == nil {
		return &ArgumentError{Instruction: Instruction(op), Want: "a done callback"}
	}

	req, err := prepare()
	if err != nil {
		return err
	}

	go func() {
		page, err := q.execute(ctx, req, progress)
		done(page, err)
	}()
	return nil
}

func (q *Query) prepare() (pagination.Request, error) {
	if q.log.Contains(InstrHistory) {
		return q.prepareTransactions()
	}
	return q.prepareList()
}

// prepareList validates the chain for plain listing and resolves the
// endpoint.
func (q *Query) prepareList() (pagination.Request, error) {
	if q.err != nil {
		return pagination.Request{}, q.err
	}

	kind := q.flags.Kind
	if !kind.Listable() {
		return pagination.Request{}, &StateError{Operation: opList, Kind: kind, Valid: ListKinds()}
	}

	if kind == KindInvoice {
		q.params.Date = q.params.Created
		q.params.Created = nil
	}

	endpoint := kind.Endpoint()
	return q.request(endpoint, transport.ResourceFetcher(q.transport, endpoint)), nil
}

// prepareTransactions validates the chain for ledger listing. No kind is
// valid and lists every transaction type.
func (q *Query) prepareTransactions() (pagination.Request, error) {
	if q.err != nil {
		return pagination.Request{}, q.err
	}

	if kind := q.flags.Kind; kind != "" {
		if !kind.InLedger() {
			return pagination.Request{}, &StateError{Operation: opListTransactions, Kind: kind, Valid: LedgerKinds()}
		}
		q.params.Type = kind.TransactionType()
	}

	return q.request(transport.LedgerEndpoint, transport.LedgerFetcher(q.transport)), nil
}

func (q *Query) request(endpoint string, fetch transport.FetchFunc) pagination.Request {
	return pagination.Request{
		Endpoint:    endpoint,
		Params:      q.params,
		Extras:      q.extras,
		RetrieveAll: q.flags.RetrieveAll,
		Fetch:       fetch,
	}
}

// execute runs req and resets the query whatever the outcome.
func (q *Query) execute(ctx context.Context, req pagination.Request, progress ProgressFunc) (*transport.Page, error) {
	defer q.Reset()

	q.logger.Debug().
		Strs("chain", q.log.Strings()).
		Str("endpoint", req.Endpoint).
		Int("limit", req.Params.Limit).
		Bool("retrieve_all", req.RetrieveAll).
		Bool("acting_as", req.Extras.Account != "").
		Msg("Executing query")

	req.Progress = progress
	return q.engine.Run(ctx, req)
}
