// Package chain provides Query, a fluent builder that turns an English-like
// chain of calls into paginated list requests.
//
//	q, err := chain.New(tr, chain.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	page, err := q.All().Charges().From(start).To(end).List(ctx, nil)
//
// Every instruction mutates the query and returns it. A terminal (List,
// ListTransactions, Please and their Async forms) validates the chain, runs
// the pagination engine and resets the query.
//
// A Query holds one chain at a time and is not safe for concurrent use. Start
// a new chain only after the previous terminal has returned, or its done
// callback has fired.
//
// An instruction that receives a bad argument, or is called out of sequence,
// records an error instead of returning one. Later instructions are skipped,
// Err reports the error, and the next terminal returns it without calling the
// transport. Reset clears it.
package chain

import (
	"fmt"
	"time"

	"github.com/Zertz/stripe-chainable/pkg/logging"
	"github.com/Zertz/stripe-chainable/pkg/pagination"
	"github.com/Zertz/stripe-chainable/pkg/transport"
	"github.com/rs/zerolog"
)

// Config holds the builder configuration.
type Config struct {
	// PageSize is the default limit set by All and the largest page
	// requested per fetch.
	PageSize int

	// Logger receives execution events. The pagination engine logs through
	// a child logger.
	Logger zerolog.Logger

	// Now returns the current time for the Now instruction.
	Now func() time.Time
}

// DefaultConfig returns the default builder configuration.
func DefaultConfig() Config {
	return Config{
		PageSize: pagination.DefaultPageSize,
		Logger:   logging.NewLogger("chain"),
		Now:      time.Now,
	}
}

// Query is a chainable list query over one transport.
type Query struct {
	transport transport.Transport
	engine    *pagination.Engine
	logger    zerolog.Logger
	now       func() time.Time

	log    ChainLog
	flags  Flags
	params *transport.ListParams
	extras transport.Extras
	err    error
}

// New creates a query builder over tr.
func New(tr transport.Transport, cfg Config) (*Query, error) {
	if tr == nil {
		return nil, fmt.Errorf("transport is required")
	}

	if cfg.PageSize == 0 {
		cfg.PageSize = pagination.DefaultPageSize
	}
	if cfg.PageSize < 0 || cfg.PageSize > pagination.MaxPageSize {
		return nil, fmt.Errorf("page_size must be between 1 and %d (got %d)", pagination.MaxPageSize, cfg.PageSize)
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	engine := pagination.NewEngine(pagination.Config{
		PageSize: cfg.PageSize,
		Logger:   cfg.Logger.With().Str("component", "pagination").Logger(),
	})

	return &Query{
		transport: tr,
		engine:    engine,
		logger:    cfg.Logger,
		now:       cfg.Now,
		params:    &transport.ListParams{},
	}, nil
}

// Err returns the error recorded by an instruction since the last reset.
func (q *Query) Err() error {
	return q.err
}

// State returns a snapshot of the accumulator.
func (q *Query) State() State {
	return State{
		ChainLog: ChainLog{entries: q.log.Entries()},
		Flags:    q.flags,
		Params:   *q.params.Clone(),
		Extras:   q.extras,
	}
}

// Reset clears the chain log, flags, params and any recorded error. The
// acting-as account is kept.
func (q *Query) Reset() *Query {
	q.log = ChainLog{}
	q.flags = Flags{}
	q.params = &transport.ListParams{}
	q.err = nil
	return q
}

// fail records err unless an earlier error is pending.
func (q *Query) fail(err error) *Query {
	if q.err == nil {
		q.err = err
	}
	return q
}

// And is sugar and does nothing.
func (q *Query) And() *Query { return q }

// Of is sugar and does nothing.
func (q *Query) Of() *Query { return q }

// That is sugar and does nothing.
func (q *Query) That() *Query { return q }

// Find sets the number of items to fetch and disables retrieve-all. Zero
// leaves the limit unset.
func (q *Query) Find(limit int) *Query {
	if q.err != nil {
		return q
	}
	if limit < 0 {
		return q.fail(&ArgumentError{Instruction: InstrFind, Want: "a non-negative number", Got: limit})
	}

	q.log.append(InstrFind)
	q.params.Limit = limit
	q.flags.RetrieveAll = false
	return q
}

// Last sets the number of most recent items to fetch and disables
// retrieve-all. The limit must be positive.
func (q *Query) Last(limit int) *Query {
	if q.err != nil {
		return q
	}
	if limit <= 0 {
		return q.fail(&ArgumentError{Instruction: InstrLast, Want: "a positive number", Got: limit})
	}

	q.log.append(InstrLast)
	q.params.Limit = limit
	q.flags.RetrieveAll = false
	return q
}

// All fetches every page. It sets the default page size as limit when none
// is set and clears the selected resource kind.
func (q *Query) All() *Query {
	if q.err != nil {
		return q
	}

	q.log.append(InstrAll)
	if q.params.Limit == 0 {
		q.params.Limit = q.engine.PageSize()
	}
	q.flags.RetrieveAll = true
	q.flags.Kind = ""
	return q
}

// Entire is an alias for All.
func (q *Query) Entire() *Query {
	return q.All()
}

// Are filters by status.
func (q *Query) Are(status string) *Query {
	if q.err != nil {
		return q
	}
	if status == "" {
		return q.fail(&ArgumentError{Instruction: InstrAre, Want: "a status string"})
	}

	q.log.append(InstrAre)
	q.params.Status = status
	return q
}

// Type filters events by type.
func (q *Query) Type(eventType string) *Query {
	if q.err != nil {
		return q
	}
	if eventType == "" {
		return q.fail(&ArgumentError{Instruction: InstrType, Want: "an event type"})
	}

	q.log.append(InstrType)
	q.params.Type = eventType
	return q
}

// For scopes the query by identifier prefix: "acct_" acts as that account,
// "cus_" filters by customer, "ch_" by charge, and anything else is a file
// upload purpose. The account form is not logged.
func (q *Query) For(value string) *Query {
	if q.err != nil {
		return q
	}
	if value == "" {
		return q.fail(&ArgumentError{
			Instruction: InstrFor,
			Want:        "an account id, charge id, customer id or file upload purpose",
		})
	}

	rule := forRules.route(value)
	if rule.logged {
		q.log.append(InstrFor)
	}
	rule.apply(q, value)
	return q
}

// SetAccount makes every page fetch act as the given connected account. It is
// not logged and survives resets. An empty account is ignored.
func (q *Query) SetAccount(account string) *Query {
	if q.err != nil || account == "" {
		return q
	}

	q.extras.Account = account
	return q
}

// Include adds an embed directive. It is not logged. An empty directive is
// ignored.
func (q *Query) Include(directive string) *Query {
	if q.err != nil || directive == "" {
		return q
	}

	q.params.Include = append(q.params.Include, directive)
	return q
}

// Available makes later date bounds in the chain target the availability
// date instead of the creation date.
func (q *Query) Available() *Query {
	if q.err != nil {
		return q
	}

	q.log.append(InstrAvailable)
	return q
}

// History makes Please list balance transactions.
func (q *Query) History() *Query {
	if q.err != nil {
		return q
	}

	q.log.append(InstrHistory)
	return q
}
