package event

import (
	"encoding/json"
	"strings"

	"github.com/stripe/stripe-go/v76"
)

// Resource is the typed data.object of an envelope.
type Resource interface {
	resource()
}

// Buyer is the customer detail block of a checkout session.
type Buyer struct {
	Name       string
	Email      string
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
}

// Payment is a validated settled amount for an order.
type Payment struct {
	OrderID     string
	Reference   string
	AmountMinor int64
	Currency    string
	Buyer       *Buyer
}

type InvoiceRef struct {
	OrderID   string
	InvoiceID string
}

type Refund struct {
	RefundID    string
	OriginalRef string
	AmountMinor int64
	Currency    string
}

type IntentAudit struct {
	IntentID    string
	OrderID     string
	AmountMinor int64
	Currency    string
	Status      string
}

// amounts records which integer amount fields were present at all, since
// the typed structs cannot tell zero from absent.
type amounts struct {
	AmountTotal    *int64 `json:"amount_total"`
	AmountPaid     *int64 `json:"amount_paid"`
	AmountRefunded *int64 `json:"amount_refunded"`
}

type CheckoutSession struct {
	*stripe.CheckoutSession
	kind    Kind
	present amounts
}

type Invoice struct {
	*stripe.Invoice
	kind    Kind
	present amounts
}

type Charge struct {
	*stripe.Charge
	kind    Kind
	present amounts
}

type PaymentIntent struct {
	*stripe.PaymentIntent
	kind Kind
}

// Unknown carries data.object of kinds without a handler.
type Unknown struct {
	Object json.RawMessage
}

func (CheckoutSession) resource() {}
func (Invoice) resource()         {}
func (Charge) resource()          {}
func (PaymentIntent) resource()   {}
func (Unknown) resource()         {}

func decodeResource(kind Kind, object json.RawMessage) (Resource, error) {
	var present amounts
	if err := json.Unmarshal(object, &present); err != nil {
		return nil, err
	}

	switch kind {
	case KindCheckoutSessionCompleted:
		var s stripe.CheckoutSession
		if err := json.Unmarshal(object, &s); err != nil {
			return nil, err
		}
		return CheckoutSession{CheckoutSession: &s, kind: kind, present: present}, nil
	case KindInvoiceCreated, KindInvoiceFinalized, KindInvoicePaymentSucceeded, KindInvoicePaid:
		var inv stripe.Invoice
		if err := json.Unmarshal(object, &inv); err != nil {
			return nil, err
		}
		return Invoice{Invoice: &inv, kind: kind, present: present}, nil
	case KindChargeRefunded:
		var ch stripe.Charge
		if err := json.Unmarshal(object, &ch); err != nil {
			return nil, err
		}
		return Charge{Charge: &ch, kind: kind, present: present}, nil
	case KindPaymentIntentCreated, KindPaymentIntentSucceeded:
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(object, &pi); err != nil {
			return nil, err
		}
		return PaymentIntent{PaymentIntent: &pi, kind: kind}, nil
	}
	return Unknown{Object: object}, nil
}

// Payment extracts client_reference_id, payment_intent and amount_total.
func (c CheckoutSession) Payment() (Payment, error) {
	s := c.CheckoutSession
	if s.ClientReferenceID == "" {
		return Payment{}, missing(c.kind, "client_reference_id")
	}
	if s.PaymentIntent == nil || s.PaymentIntent.ID == "" {
		return Payment{}, missing(c.kind, "payment_intent")
	}
	if c.present.AmountTotal == nil {
		return Payment{}, missing(c.kind, "amount_total")
	}
	if s.Currency == "" {
		return Payment{}, missing(c.kind, "currency")
	}

	return Payment{
		OrderID:     s.ClientReferenceID,
		Reference:   s.PaymentIntent.ID,
		AmountMinor: *c.present.AmountTotal,
		Currency:    strings.ToUpper(string(s.Currency)),
		Buyer:       buyer(s.CustomerDetails),
	}, nil
}

func buyer(d *stripe.CheckoutSessionCustomerDetails) *Buyer {
	if d == nil {
		return nil
	}
	b := Buyer{Name: d.Name, Email: d.Email}
	if a := d.Address; a != nil {
		b.Line1, b.Line2 = a.Line1, a.Line2
		b.City, b.State = a.City, a.State
		b.PostalCode, b.Country = a.PostalCode, a.Country
	}
	if b == (Buyer{}) {
		return nil
	}
	return &b
}

func orderIDFromMetadata(md map[string]string) string {
	return strings.TrimSpace(md["order_id"])
}

// InvoiceRef extracts metadata.order_id and the invoice id.
func (i Invoice) InvoiceRef() (InvoiceRef, error) {
	orderID := orderIDFromMetadata(i.Metadata)
	if orderID == "" {
		return InvoiceRef{}, missing(i.kind, "metadata.order_id")
	}
	if i.ID == "" {
		return InvoiceRef{}, missing(i.kind, "id")
	}
	return InvoiceRef{OrderID: orderID, InvoiceID: i.ID}, nil
}

// Payment extracts metadata.order_id, payment_intent and amount_paid.
func (i Invoice) Payment() (Payment, error) {
	orderID := orderIDFromMetadata(i.Metadata)
	if orderID == "" {
		return Payment{}, missing(i.kind, "metadata.order_id")
	}
	if i.Invoice.PaymentIntent == nil || i.Invoice.PaymentIntent.ID == "" {
		return Payment{}, missing(i.kind, "payment_intent")
	}
	if i.present.AmountPaid == nil {
		return Payment{}, missing(i.kind, "amount_paid")
	}
	if i.Currency == "" {
		return Payment{}, missing(i.kind, "currency")
	}

	return Payment{
		OrderID:     orderID,
		Reference:   i.Invoice.PaymentIntent.ID,
		AmountMinor: *i.present.AmountPaid,
		Currency:    strings.ToUpper(string(i.Currency)),
	}, nil
}

// Refund prefers refunds.data[0]. Charges delivered without the refund list
// fall back to the charge's payment_intent and cumulative amount_refunded,
// keyed by the event id.
func (c Charge) Refund(eventID string) (Refund, error) {
	ch := c.Charge
	if ch.Refunds != nil && len(ch.Refunds.Data) > 0 && ch.Refunds.Data[0] != nil {
		r := ch.Refunds.Data[0]
		if r.ID == "" {
			return Refund{}, missing(c.kind, "refunds.data[0].id")
		}
		original := paymentIntentID(r.PaymentIntent)
		if original == "" {
			original = paymentIntentID(ch.PaymentIntent)
		}
		if original == "" {
			return Refund{}, missing(c.kind, "refunds.data[0].payment_intent")
		}
		if r.Amount <= 0 {
			return Refund{}, missing(c.kind, "refunds.data[0].amount")
		}
		cur := r.Currency
		if cur == "" {
			cur = ch.Currency
		}
		if cur == "" {
			return Refund{}, missing(c.kind, "currency")
		}
		return Refund{
			RefundID:    r.ID,
			OriginalRef: original,
			AmountMinor: r.Amount,
			Currency:    strings.ToUpper(string(cur)),
		}, nil
	}

	original := paymentIntentID(ch.PaymentIntent)
	if original == "" {
		return Refund{}, missing(c.kind, "payment_intent")
	}
	if c.present.AmountRefunded == nil || *c.present.AmountRefunded <= 0 {
		return Refund{}, missing(c.kind, "amount_refunded")
	}
	if ch.Currency == "" {
		return Refund{}, missing(c.kind, "currency")
	}
	if eventID == "" {
		return Refund{}, missing(c.kind, "id")
	}
	return Refund{
		RefundID:    eventID,
		OriginalRef: original,
		AmountMinor: *c.present.AmountRefunded,
		Currency:    strings.ToUpper(string(ch.Currency)),
	}, nil
}

func paymentIntentID(pi *stripe.PaymentIntent) string {
	if pi == nil {
		return ""
	}
	return pi.ID
}

// Audit extracts the intent id; order id and amount are informational.
func (p PaymentIntent) Audit() (IntentAudit, error) {
	if p.ID == "" {
		return IntentAudit{}, missing(p.kind, "id")
	}
	return IntentAudit{
		IntentID:    p.ID,
		OrderID:     orderIDFromMetadata(p.Metadata),
		AmountMinor: p.Amount,
		Currency:    strings.ToUpper(string(p.Currency)),
		Status:      string(p.Status),
	}, nil
}
