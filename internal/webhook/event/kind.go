package event

// Kind is the processor's event type string. The set is open-ended; only
// the kinds below have handlers.
type Kind string

const (
	KindCheckoutSessionCompleted Kind = "checkout.session.completed"
	KindInvoiceCreated           Kind = "invoice.created"
	KindInvoiceFinalized         Kind = "invoice.finalized"
	KindInvoicePaymentSucceeded  Kind = "invoice.payment_succeeded"
	KindInvoicePaid              Kind = "invoice.paid"
	KindChargeRefunded           Kind = "charge.refunded"
	KindPaymentIntentCreated     Kind = "payment_intent.created"
	KindPaymentIntentSucceeded   Kind = "payment_intent.succeeded"
)

func (k Kind) Known() bool {
	switch k {
	case KindCheckoutSessionCompleted,
		KindInvoiceCreated, KindInvoiceFinalized,
		KindInvoicePaymentSucceeded, KindInvoicePaid,
		KindChargeRefunded,
		KindPaymentIntentCreated, KindPaymentIntentSucceeded:
		return true
	}
	return false
}

func (k Kind) String() string {
	return string(k)
}
