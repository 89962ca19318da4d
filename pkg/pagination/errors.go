package pagination

import (
	"errors"
	"fmt"
)

// ErrMissingCursor is returned when a further page is needed but the last
// fetched item carries no id to resume after.
var ErrMissingCursor = errors.New("last item has no id to continue from")

// TransportError reports a failed page fetch.
type TransportError struct {
	// Endpoint is the resource endpoint or the ledger endpoint.
	Endpoint string

	// Page is the 1-based number of the page that failed.
	Page int

	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("list %s: page %d: %v", e.Endpoint, e.Page, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *TransportError) Unwrap() error {
	return e.Err
}
