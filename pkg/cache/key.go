package cache

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/Zertz/stripe-chainable/pkg/transport"
)

// Key identifies one cached page request.
type Key struct {
	// Endpoint is the list endpoint (e.g. "charges" or "balance/history").
	Endpoint string

	// Params are the encoded request params, cursor and limit included.
	Params url.Values

	// Account is the acting-as account, empty for the platform account.
	Account string
}

// NewKey builds the key of a page request.
func NewKey(endpoint string, params *transport.ListParams, extras transport.Extras) Key {
	return Key{
		Endpoint: endpoint,
		Params:   params.Values(),
		Account:  extras.Account,
	}
}

// String generates a deterministic cache key string.
// Format: endpoint:param1=val1:param2=val2a,val2b:acct=acct_123
//
// Example:
//
//	charges:created[gte]=1430569488:limit=100:acct=acct_1
func (k Key) String() string {
	parts := []string{}

	endpoint := strings.Trim(k.Endpoint, "/")
	if endpoint != "" {
		parts = append(parts, endpoint)
	}

	// Sorted for determinism
	if len(k.Params) > 0 {
		keys := make([]string, 0, len(k.Params))
		for key := range k.Params {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			parts = append(parts, fmt.Sprintf("%s=%s", key, strings.Join(k.Params[key], ",")))
		}
	}

	if k.Account != "" {
		parts = append(parts, "acct="+k.Account)
	}

	return strings.Join(parts, ":")
}
