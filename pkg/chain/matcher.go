package chain

import (
	"strings"
	"time"
)

// prefixRule routes an identifier to a handler when match accepts it.
type prefixRule struct {
	name   string
	match  func(string) bool
	logged bool
	apply  func(q *Query, value string)
}

// prefixRules are evaluated top to bottom; the first match wins.
type prefixRules []prefixRule

func (r prefixRules) route(value string) prefixRule {
	for _, rule := range r {
		if rule.match(value) {
			return rule
		}
	}
	return prefixRule{}
}

func hasPrefix(prefix string) func(string) bool {
	return func(s string) bool {
		return strings.HasPrefix(s, prefix)
	}
}

func anyValue(string) bool { return true }

// forRules route the argument of For.
var forRules = prefixRules{
	{
		name:  "account",
		match: hasPrefix("acct_"),
		apply: func(q *Query, v string) { q.extras.Account = v },
	},
	{
		name:   "customer",
		match:  hasPrefix("cus_"),
		logged: true,
		apply:  func(q *Query, v string) { q.params.Customer = v },
	},
	{
		name:   "charge",
		match:  hasPrefix("ch_"),
		logged: true,
		apply:  func(q *Query, v string) { q.params.Charge = v },
	},
	{
		name:   "purpose",
		match:  anyValue,
		logged: true,
		apply:  func(q *Query, v string) { q.params.Purpose = v },
	},
}

// isObjectID reports whether s looks like an object id: a two character
// prefix followed by an underscore, e.g. "ch_1A2b".
func isObjectID(s string) bool {
	return strings.IndexByte(s, '_') == 2
}

// boundKind classifies the argument of a date-bound instruction.
type boundKind int

const (
	boundInvalid boundKind = iota
	boundNone
	boundTime
	boundID
)

// bound is a classified date-bound argument.
type bound struct {
	kind boundKind
	at   time.Time
	id   string
}

// classifyBound accepts a time.Time, a *time.Time, an object id string or
// nil. Nil, nil pointers and zero times mean "no argument".
func classifyBound(v any) bound {
	switch arg := v.(type) {
	case nil:
		return bound{kind: boundNone}
	case time.Time:
		if arg.IsZero() {
			return bound{kind: boundNone}
		}
		return bound{kind: boundTime, at: arg}
	case *time.Time:
		if arg == nil || arg.IsZero() {
			return bound{kind: boundNone}
		}
		return bound{kind: boundTime, at: *arg}
	case string:
		if arg == "" {
			return bound{kind: boundNone}
		}
		if isObjectID(arg) {
			return bound{kind: boundID, id: arg}
		}
	}
	return bound{kind: boundInvalid}
}
