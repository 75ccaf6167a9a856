package event

import (
	"errors"
	"testing"

	"PaymentWebhooks/internal/webhook/signature"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, payload string) Envelope {
	t.Helper()
	env, err := Parse(signature.FromTrustedSource([]byte(payload)))
	require.NoError(t, err)
	return env
}

func assertMissing(t *testing.T, err error, field string) {
	t.Helper()
	require.ErrorIs(t, err, ErrMissingField)
	var mf *MissingFieldError
	require.True(t, errors.As(err, &mf))
	assert.Equal(t, field, mf.Field)
}

func TestCheckoutSession_MissingFields(t *testing.T) {
	tests := []struct {
		object string
		field  string
	}{
		{`{"payment_intent":"pi_1","amount_total":100,"currency":"usd"}`, "client_reference_id"},
		{`{"client_reference_id":"ORD-1","amount_total":100,"currency":"usd"}`, "payment_intent"},
		{`{"client_reference_id":"ORD-1","payment_intent":"pi_1","currency":"usd"}`, "amount_total"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			env := parse(t, `{"id":"evt_1","type":"checkout.session.completed","data":{"object":`+tt.object+`}}`)

			_, err := env.Resource.(CheckoutSession).Payment()

			assertMissing(t, err, tt.field)
		})
	}
}

func TestInvoice(t *testing.T) {
	t.Run("payment succeeded", func(t *testing.T) {
		env := parse(t, `{"id":"evt_1","type":"invoice.payment_succeeded","data":{"object":{
			"id":"in_1","metadata":{"order_id":"ORD-9"},"payment_intent":"pi_9","amount_paid":1250,"currency":"gbp"}}}`)

		p, err := env.Resource.(Invoice).Payment()

		require.NoError(t, err)
		assert.Equal(t, Payment{OrderID: "ORD-9", Reference: "pi_9", AmountMinor: 1250, Currency: "GBP"}, p)
	})

	t.Run("created", func(t *testing.T) {
		env := parse(t, `{"id":"evt_2","type":"invoice.created","data":{"object":{"id":"in_2","metadata":{"order_id":"ORD-9"}}}}`)

		ref, err := env.Resource.(Invoice).InvoiceRef()

		require.NoError(t, err)
		assert.Equal(t, InvoiceRef{OrderID: "ORD-9", InvoiceID: "in_2"}, ref)
	})

	t.Run("missing order id", func(t *testing.T) {
		env := parse(t, `{"id":"evt_3","type":"invoice.finalized","data":{"object":{"id":"in_3","metadata":{}}}}`)

		_, err := env.Resource.(Invoice).InvoiceRef()

		assertMissing(t, err, "metadata.order_id")
	})

	t.Run("missing amount paid", func(t *testing.T) {
		env := parse(t, `{"id":"evt_4","type":"invoice.paid","data":{"object":{
			"id":"in_4","metadata":{"order_id":"ORD-9"},"payment_intent":"pi_9","currency":"usd"}}}`)

		_, err := env.Resource.(Invoice).Payment()

		assertMissing(t, err, "amount_paid")
	})
}

func TestCharge_Refund(t *testing.T) {
	t.Run("nested refund", func(t *testing.T) {
		env := parse(t, `{"id":"evt_1","type":"charge.refunded","data":{"object":{
			"id":"ch_1","payment_intent":"pi_123","amount_refunded":5000,"currency":"usd",
			"refunds":{"object":"list","data":[{"id":"re_1","amount":2000,"currency":"usd","payment_intent":"pi_123"}]}}}}`)

		r, err := env.Resource.(Charge).Refund(env.ID)

		require.NoError(t, err)
		assert.Equal(t, Refund{RefundID: "re_1", OriginalRef: "pi_123", AmountMinor: 2000, Currency: "USD"}, r)
	})

	t.Run("top level fallback", func(t *testing.T) {
		env := parse(t, `{"id":"evt_2","type":"charge.refunded","data":{"object":{
			"id":"ch_2","payment_intent":"pi_123","amount_refunded":5000,"currency":"usd"}}}`)

		r, err := env.Resource.(Charge).Refund(env.ID)

		require.NoError(t, err)
		assert.Equal(t, Refund{RefundID: "evt_2", OriginalRef: "pi_123", AmountMinor: 5000, Currency: "USD"}, r)
	})

	t.Run("nested refund without intent uses charge intent", func(t *testing.T) {
		env := parse(t, `{"id":"evt_3","type":"charge.refunded","data":{"object":{
			"id":"ch_3","payment_intent":"pi_777","currency":"usd",
			"refunds":{"data":[{"id":"re_3","amount":100}]}}}}`)

		r, err := env.Resource.(Charge).Refund(env.ID)

		require.NoError(t, err)
		assert.Equal(t, "pi_777", r.OriginalRef)
		assert.Equal(t, "USD", r.Currency)
	})

	t.Run("no intent anywhere", func(t *testing.T) {
		env := parse(t, `{"id":"evt_4","type":"charge.refunded","data":{"object":{"id":"ch_4","amount_refunded":100,"currency":"usd"}}}`)

		_, err := env.Resource.(Charge).Refund(env.ID)

		assertMissing(t, err, "payment_intent")
	})
}

func TestPaymentIntent_Audit(t *testing.T) {
	env := parse(t, `{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{
		"id":"pi_1","amount":900,"currency":"jpy","status":"succeeded","metadata":{"order_id":"ORD-3"}}}}`)

	a, err := env.Resource.(PaymentIntent).Audit()

	require.NoError(t, err)
	assert.Equal(t, IntentAudit{IntentID: "pi_1", OrderID: "ORD-3", AmountMinor: 900, Currency: "JPY", Status: "succeeded"}, a)
}
