package chain

// selectKind logs instr and makes kind the target of the next terminal. The
// last selection wins.
func (q *Query) selectKind(instr Instruction, kind ResourceKind) *Query {
	if q.err != nil {
		return q
	}

	q.log.append(instr)
	q.flags.Kind = kind
	return q
}

// Charges selects charges.
//
// Selectors never execute. A chain that reads as a resource fetch, such as
// q.All().Charges(), is run by ending it with Please or PleaseAsync:
//
//	err := q.All().Charges().PleaseAsync(ctx, progress, done)
func (q *Query) Charges() *Query { return q.selectKind(InstrCharges, KindCharge) }

// Customers selects customers.
func (q *Query) Customers() *Query { return q.selectKind(InstrCustomers, KindCustomer) }

// Plans selects plans.
func (q *Query) Plans() *Query { return q.selectKind(InstrPlans, KindPlan) }

// Subscriptions selects subscriptions.
func (q *Query) Subscriptions() *Query { return q.selectKind(InstrSubscriptions, KindSubscription) }

// Coupons selects coupons.
func (q *Query) Coupons() *Query { return q.selectKind(InstrCoupons, KindCoupon) }

// Invoices selects invoices. Their time window is sent as "date".
func (q *Query) Invoices() *Query { return q.selectKind(InstrInvoices, KindInvoice) }

// InvoiceItems selects invoice items.
func (q *Query) InvoiceItems() *Query { return q.selectKind(InstrInvoiceItems, KindInvoiceItem) }

// Transfers selects transfers, as a resource or a transaction type.
func (q *Query) Transfers() *Query { return q.selectKind(InstrTransfers, KindTransfer) }

// ApplicationFees selects application fees.
func (q *Query) ApplicationFees() *Query {
	return q.selectKind(InstrApplicationFees, KindApplicationFee)
}

// Accounts selects connected accounts.
func (q *Query) Accounts() *Query { return q.selectKind(InstrAccounts, KindAccount) }

// Events selects events.
func (q *Query) Events() *Query { return q.selectKind(InstrEvents, KindEvent) }

// BitcoinReceivers selects bitcoin receivers.
func (q *Query) BitcoinReceivers() *Query {
	return q.selectKind(InstrBitcoinReceivers, KindBitcoinReceiver)
}

// FileUploads selects file uploads.
func (q *Query) FileUploads() *Query { return q.selectKind(InstrFileUploads, KindFileUpload) }

// The selectors below are transaction types only, for use with History.

// Refunds selects refund transactions.
func (q *Query) Refunds() *Query { return q.selectKind(InstrRefunds, KindRefund) }

// Adjustments selects adjustment transactions.
func (q *Query) Adjustments() *Query { return q.selectKind(InstrAdjustments, KindAdjustment) }

// ApplicationFeeRefunds selects application fee refund transactions.
func (q *Query) ApplicationFeeRefunds() *Query {
	return q.selectKind(InstrApplicationFeeRefunds, KindApplicationFeeRefund)
}

// TransferFailures selects transfer failure transactions.
func (q *Query) TransferFailures() *Query {
	return q.selectKind(InstrTransferFailures, KindTransferFailure)
}
