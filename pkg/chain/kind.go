package chain

import "slices"

// ResourceKind is the entity type a terminal lists, in singular snake case.
type ResourceKind string

// Resource kinds.
const (
	KindCharge               ResourceKind = "charge"
	KindCustomer             ResourceKind = "customer"
	KindPlan                 ResourceKind = "plan"
	KindSubscription         ResourceKind = "subscription"
	KindCoupon               ResourceKind = "coupon"
	KindInvoice              ResourceKind = "invoice"
	KindInvoiceItem          ResourceKind = "invoice_item"
	KindTransfer             ResourceKind = "transfer"
	KindApplicationFee       ResourceKind = "application_fee"
	KindAccount              ResourceKind = "account"
	KindEvent                ResourceKind = "event"
	KindBitcoinReceiver      ResourceKind = "bitcoin_receiver"
	KindFileUpload           ResourceKind = "file_upload"
	KindRefund               ResourceKind = "refund"
	KindAdjustment           ResourceKind = "adjustment"
	KindApplicationFeeRefund ResourceKind = "application_fee_refund"
	KindTransferFailure      ResourceKind = "transfer_failure"
)

// listKinds are the kinds List accepts.
var listKinds = []ResourceKind{
	KindCharge,
	KindCustomer,
	KindPlan,
	KindSubscription,
	KindCoupon,
	KindInvoice,
	KindInvoiceItem,
	KindTransfer,
	KindApplicationFee,
	KindAccount,
	KindEvent,
	KindBitcoinReceiver,
	KindFileUpload,
}

// ledgerKinds are the transaction kinds ListTransactions accepts.
var ledgerKinds = []ResourceKind{
	KindCharge,
	KindRefund,
	KindAdjustment,
	KindApplicationFeeRefund,
	KindTransfer,
	KindTransferFailure,
}

// ListKinds returns the kinds accepted by plain listing.
func ListKinds() []ResourceKind {
	return slices.Clone(listKinds)
}

// LedgerKinds returns the kinds accepted by ledger listing.
func LedgerKinds() []ResourceKind {
	return slices.Clone(ledgerKinds)
}

// Listable reports whether k can be listed through its own endpoint.
func (k ResourceKind) Listable() bool {
	return slices.Contains(listKinds, k)
}

// InLedger reports whether k is a balance transaction type.
func (k ResourceKind) InLedger() bool {
	return slices.Contains(ledgerKinds, k)
}

// Endpoint returns the list endpoint for k, its plural form.
func (k ResourceKind) Endpoint() string {
	return string(k) + "s"
}

// TransactionType returns the ledger "type" filter value for k.
func (k ResourceKind) TransactionType() string {
	return string(k)
}
