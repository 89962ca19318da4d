package chain

import (
	"slices"

	"github.com/Zertz/stripe-chainable/pkg/transport"
)

// Instruction names a logged chain call.
type Instruction string

// Logged instructions. Sugar (and, of, that), include, setAccount and the
// account branch of for are never logged.
const (
	InstrFind      Instruction = "find"
	InstrLast      Instruction = "last"
	InstrAll       Instruction = "all"
	InstrAre       Instruction = "are"
	InstrType      Instruction = "type"
	InstrFor       Instruction = "for"
	InstrAvailable Instruction = "available"
	InstrBefore    Instruction = "before"
	InstrAfter     Instruction = "after"
	InstrFrom      Instruction = "from"
	InstrTo        Instruction = "to"
	InstrNow       Instruction = "now"
	InstrHistory   Instruction = "history"

	InstrCharges               Instruction = "charges"
	InstrCustomers             Instruction = "customers"
	InstrPlans                 Instruction = "plans"
	InstrSubscriptions         Instruction = "subscriptions"
	InstrCoupons               Instruction = "coupons"
	InstrInvoices              Instruction = "invoices"
	InstrInvoiceItems          Instruction = "invoiceItems"
	InstrTransfers             Instruction = "transfers"
	InstrApplicationFees       Instruction = "applicationFees"
	InstrAccounts              Instruction = "accounts"
	InstrEvents                Instruction = "events"
	InstrBitcoinReceivers      Instruction = "bitcoinReceivers"
	InstrFileUploads           Instruction = "fileUploads"
	InstrRefunds               Instruction = "refunds"
	InstrAdjustments           Instruction = "adjustments"
	InstrApplicationFeeRefunds Instruction = "applicationFeeRefunds"
	InstrTransferFailures      Instruction = "transferFailures"
)

// Names of instructions that are not logged, used in error messages.
const (
	instrSince Instruction = "since"
	instrUntil Instruction = "until"
)

// ChainLog is the ordered, append-only record of instructions since the last
// reset. It is inspected by position, never sent over the wire.
type ChainLog struct {
	entries []Instruction
}

func (l *ChainLog) append(instr Instruction) {
	l.entries = append(l.entries, instr)
}

// Len returns the number of logged instructions.
func (l ChainLog) Len() int {
	return len(l.entries)
}

// Last returns the most recent instruction.
func (l ChainLog) Last() (Instruction, bool) {
	if len(l.entries) == 0 {
		return "", false
	}
	return l.entries[len(l.entries)-1], true
}

// Contains reports whether instr was logged.
func (l ChainLog) Contains(instr Instruction) bool {
	return slices.Contains(l.entries, instr)
}

// Entries returns a copy of the logged instructions.
func (l ChainLog) Entries() []Instruction {
	return slices.Clone(l.entries)
}

// Strings returns the logged instructions as strings.
func (l ChainLog) Strings() []string {
	out := make([]string, len(l.entries))
	for i, e := range l.entries {
		out[i] = string(e)
	}
	return out
}

// Flags are the control flags of a query.
type Flags struct {
	// RetrieveAll fetches every page regardless of limit.
	RetrieveAll bool

	// Kind is the selected resource kind, empty when none is selected.
	Kind ResourceKind
}

// State is a snapshot of a query's accumulator.
type State struct {
	ChainLog ChainLog
	Flags    Flags
	Params   transport.ListParams
	Extras   transport.Extras
}

// IsEmpty reports whether the chain log, flags and params are all empty.
// Extras survive resets and are not considered.
func (s State) IsEmpty() bool {
	return s.ChainLog.Len() == 0 && s.Flags == (Flags{}) && s.Params.IsZero()
}
