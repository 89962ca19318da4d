package chain

import (
	"time"

	"github.com/Zertz/stripe-chainable/pkg/transport"
)

// windowRange returns the date range later bounds write to. Once Available
// has been logged the availability date is targeted, otherwise the creation
// date.
func (q *Query) windowRange() *transport.Range {
	if q.log.Contains(InstrAvailable) {
		if q.params.AvailableOn == nil {
			q.params.AvailableOn = &transport.Range{}
		}
		return q.params.AvailableOn
	}

	if q.params.Created == nil {
		q.params.Created = &transport.Range{}
	}
	return q.params.Created
}

// ceilSeconds converts t to epoch seconds, rounding up.
func ceilSeconds(t time.Time) int64 {
	ms := t.UnixMilli()
	s := ms / 1000
	if ms%1000 > 0 {
		s++
	}
	return s
}

// floorSeconds converts t to epoch seconds, rounding down.
func floorSeconds(t time.Time) int64 {
	ms := t.UnixMilli()
	s := ms / 1000
	if ms%1000 < 0 {
		s--
	}
	return s
}

// Before bounds the query to items created strictly before a time, or to
// items preceding an object id in list order. It is logged even when the
// argument is rejected.
func (q *Query) Before(v any) *Query {
	if q.err != nil {
		return q
	}

	q.log.append(InstrBefore)

	b := classifyBound(v)
	switch b.kind {
	case boundTime:
		q.windowRange().LT = transport.Int64(ceilSeconds(b.at))
	case boundID:
		q.params.EndingBefore = b.id
	case boundInvalid:
		return q.fail(&ArgumentError{Instruction: InstrBefore, Want: "an object id or time", Got: v})
	}
	return q
}

// After bounds the query to items created strictly after a time, or to items
// following an object id in list order. It is logged even when the argument
// is rejected.
func (q *Query) After(v any) *Query {
	if q.err != nil {
		return q
	}

	q.log.append(InstrAfter)

	b := classifyBound(v)
	switch b.kind {
	case boundTime:
		q.windowRange().GT = transport.Int64(floorSeconds(b.at))
	case boundID:
		q.params.StartingAfter = b.id
	case boundInvalid:
		return q.fail(&ArgumentError{Instruction: InstrAfter, Want: "an object id or time", Got: v})
	}
	return q
}

// From sets the inclusive lower date bound. It is logged even when the
// argument is rejected.
func (q *Query) From(v any) *Query {
	if q.err != nil {
		return q
	}

	q.log.append(InstrFrom)

	b := classifyBound(v)
	switch b.kind {
	case boundTime:
		q.windowRange().GTE = transport.Int64(floorSeconds(b.at))
	case boundID, boundInvalid:
		return q.fail(&ArgumentError{Instruction: InstrFrom, Want: "a time", Got: v})
	}
	return q
}

// To sets the inclusive upper date bound. It is logged even when the
// argument is rejected.
func (q *Query) To(v any) *Query {
	if q.err != nil {
		return q
	}

	q.log.append(InstrTo)

	b := classifyBound(v)
	switch b.kind {
	case boundTime:
		q.windowRange().LTE = transport.Int64(ceilSeconds(b.at))
	case boundID, boundInvalid:
		return q.fail(&ArgumentError{Instruction: InstrTo, Want: "a time", Got: v})
	}
	return q
}

// Since is From with a required time argument. A rejected argument is not
// logged.
func (q *Query) Since(v any) *Query {
	if q.err != nil {
		return q
	}

	if b := classifyBound(v); b.kind != boundTime {
		return q.fail(&ArgumentError{Instruction: instrSince, Want: "a time", Got: v})
	}
	return q.From(v)
}

// Until is To with a required time argument, logged as "to". A rejected
// argument is not logged.
func (q *Query) Until(v any) *Query {
	if q.err != nil {
		return q
	}

	if b := classifyBound(v); b.kind != boundTime {
		return q.fail(&ArgumentError{Instruction: instrUntil, Want: "a time", Got: v})
	}
	return q.To(v)
}

// Now sets the inclusive upper date bound to the current time. It must
// directly follow To or Until; otherwise nothing is logged and a
// *SequenceError is recorded.
func (q *Query) Now() *Query {
	if q.err != nil {
		return q
	}

	prev, _ := q.log.Last()
	if prev != InstrTo {
		return q.fail(&SequenceError{
			Instruction: InstrNow,
			Previous:    prev,
			Allowed:     []string{string(InstrTo), string(instrUntil)},
		})
	}

	q.log.append(InstrNow)
	q.windowRange().LTE = transport.Int64(ceilSeconds(q.now()))
	return q
}
