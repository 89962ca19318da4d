package transport

import (
	"net/url"
	"strconv"

	"github.com/jinzhu/copier"
)

// Range is a time window expressed as comparator bounds in epoch seconds.
// A nil bound is unset; a bound of 0 is the Unix epoch and is sent.
type Range struct {
	LT  *int64 `json:"lt,omitempty"`
	LTE *int64 `json:"lte,omitempty"`
	GT  *int64 `json:"gt,omitempty"`
	GTE *int64 `json:"gte,omitempty"`
}

// Int64 returns a pointer to v, for filling Range bounds.
func Int64(v int64) *int64 {
	return &v
}

// IsZero reports whether no bound is set.
func (r *Range) IsZero() bool {
	return r == nil || (r.LT == nil && r.LTE == nil && r.GT == nil && r.GTE == nil)
}

func (r *Range) encode(values url.Values, field string) {
	if r.IsZero() {
		return
	}
	bounds := []struct {
		op    string
		value *int64
	}{
		{"gt", r.GT},
		{"gte", r.GTE},
		{"lt", r.LT},
		{"lte", r.LTE},
	}
	for _, b := range bounds {
		if b.value != nil {
			values.Set(field+"["+b.op+"]", strconv.FormatInt(*b.value, 10))
		}
	}
}

// ListParams are the filter and paging fields of one list request.
// Zero values are unset and are not sent.
type ListParams struct {
	// Limit is the number of items requested.
	Limit int `json:"limit,omitempty"`

	// StartingAfter and EndingBefore are opaque pagination cursors.
	StartingAfter string `json:"starting_after,omitempty"`
	EndingBefore  string `json:"ending_before,omitempty"`

	// Created, AvailableOn and Date are time windows. Date is only used by
	// the invoices endpoint.
	Created     *Range `json:"created,omitempty"`
	AvailableOn *Range `json:"available_on,omitempty"`
	Date        *Range `json:"date,omitempty"`

	Status string `json:"status,omitempty"`

	// Type is the event type filter, or the transaction type on the ledger.
	Type string `json:"type,omitempty"`

	// Include lists embed directives.
	Include []string `json:"include,omitempty"`

	Customer string `json:"customer,omitempty"`
	Charge   string `json:"charge,omitempty"`
	Purpose  string `json:"purpose,omitempty"`
}

// Clone returns a deep copy of p. copier only fails on mismatched or nil
// destinations, which cannot happen for two *ListParams, so the error is
// dropped.
func (p *ListParams) Clone() *ListParams {
	out := new(ListParams)
	if p == nil {
		return out
	}
	_ = copier.CopyWithOption(out, p, copier.Option{DeepCopy: true})
	return out
}

// IsZero reports whether no field is set.
func (p *ListParams) IsZero() bool {
	return p == nil || len(p.Values()) == 0
}

// Values renders p in the list API's form encoding.
func (p *ListParams) Values() url.Values {
	values := url.Values{}
	if p == nil {
		return values
	}

	if p.Limit != 0 {
		values.Set("limit", strconv.Itoa(p.Limit))
	}
	setString(values, "starting_after", p.StartingAfter)
	setString(values, "ending_before", p.EndingBefore)

	p.Created.encode(values, "created")
	p.AvailableOn.encode(values, "available_on")
	p.Date.encode(values, "date")

	setString(values, "status", p.Status)
	setString(values, "type", p.Type)
	for _, include := range p.Include {
		values.Add("include[]", include)
	}
	setString(values, "customer", p.Customer)
	setString(values, "charge", p.Charge)
	setString(values, "purpose", p.Purpose)

	return values
}

func setString(values url.Values, key, value string) {
	if value != "" {
		values.Set(key, value)
	}
}

// Extras are side-channel request parameters sent with every page fetch but
// never merged into the filter.
type Extras struct {
	// Account is the connected account the request acts as.
	Account string `json:"account,omitempty"`
}
