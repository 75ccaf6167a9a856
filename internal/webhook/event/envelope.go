// Package event turns verified webhook payloads into typed envelopes.
package event

import (
	"encoding/json"
	"fmt"
	"time"

	"PaymentWebhooks/internal/webhook/signature"

	"github.com/stripe/stripe-go/v76"
)

// Envelope is one parsed delivery. Nothing may act on it unless Verified.
type Envelope struct {
	ID       string
	Kind     Kind
	Created  time.Time
	Livemode bool
	Resource Resource
	Verified bool
	// Bypassed marks envelopes accepted while signature checks are disabled.
	Bypassed bool
}

// Parse decodes a verified payload.
func Parse(p signature.VerifiedPayload) (Envelope, error) {
	env, err := decode(p.Bytes())
	if err != nil {
		return Envelope{}, err
	}
	env.Verified = true
	env.Bypassed = p.Bypassed()
	return env, nil
}

// ParseUnverified decodes raw bytes for inspection only; the result is never
// dispatched.
func ParseUnverified(raw []byte) (Envelope, error) {
	return decode(raw)
}

func decode(raw []byte) (Envelope, error) {
	var evt stripe.Event
	if err := json.Unmarshal(raw, &evt); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if evt.ID == "" {
		return Envelope{}, fmt.Errorf("%w: missing id", ErrParse)
	}
	if evt.Type == "" {
		return Envelope{}, fmt.Errorf("%w: missing type", ErrParse)
	}

	env := Envelope{
		ID:       evt.ID,
		Kind:     Kind(evt.Type),
		Created:  time.Unix(evt.Created, 0).UTC(),
		Livemode: evt.Livemode,
	}

	var object json.RawMessage
	if evt.Data != nil {
		object = evt.Data.Raw
	}
	if !env.Kind.Known() {
		env.Resource = Unknown{Object: object}
		return env, nil
	}
	if len(object) == 0 {
		return Envelope{}, fmt.Errorf("%w: %s without data.object", ErrParse, env.Kind)
	}

	res, err := decodeResource(env.Kind, object)
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: %s data.object: %v", ErrParse, env.Kind, err)
	}
	env.Resource = res
	return env, nil
}

// Validate runs the per-kind field extraction without acting on it. Kinds
// without a handler always pass.
func (e Envelope) Validate() error {
	var err error
	switch res := e.Resource.(type) {
	case CheckoutSession:
		_, err = res.Payment()
	case Invoice:
		if e.Kind == KindInvoiceCreated || e.Kind == KindInvoiceFinalized {
			_, err = res.InvoiceRef()
		} else {
			_, err = res.Payment()
		}
	case Charge:
		_, err = res.Refund(e.ID)
	case PaymentIntent:
		_, err = res.Audit()
	}
	return err
}
