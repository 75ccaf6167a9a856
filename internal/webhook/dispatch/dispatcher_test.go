package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"PaymentWebhooks/internal/domain/audit"
	"PaymentWebhooks/internal/domain/order"
	"PaymentWebhooks/internal/domain/payment"
	"PaymentWebhooks/internal/domain/payment/paymenttest"
	"PaymentWebhooks/internal/webhook/event"
	"PaymentWebhooks/internal/webhook/signature"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type auditLog struct {
	mu      sync.Mutex
	records []audit.EventRecord
}

func (l *auditLog) RecordEvent(_ context.Context, r audit.EventRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, r)
	return nil
}

type fixture struct {
	store      *paymenttest.Store
	completer  *paymenttest.Completer
	audit      *auditLog
	dispatcher *Dispatcher
}

func newFixture(orders ...order.Order) fixture {
	store := paymenttest.NewStore(orders...)
	completer := paymenttest.NewCompleter()
	log := &auditLog{}
	return fixture{
		store:     store,
		completer: completer,
		audit:     log,
		dispatcher: NewDispatcher(
			payment.NewRecorder(store, completer, "stripe"),
			payment.NewRefundHandler(store, log, "stripe"),
		),
	}
}

func envelope(t *testing.T, payload string) event.Envelope {
	t.Helper()
	env, err := event.Parse(signature.FromTrustedSource([]byte(payload)))
	require.NoError(t, err)
	return env
}

func checkout(eventID, orderID, intent string, amount int64) string {
	return fmt.Sprintf(`{"id":%q,"type":"checkout.session.completed","data":{"object":{
		"client_reference_id":%q,"payment_intent":%q,"amount_total":%d,"currency":"usd",
		"customer_details":{"name":"Jane Doe","address":{"line1":"1 Main St","country":"US"}}}}}`,
		eventID, orderID, intent, amount)
}

func refund(eventID, refundID, intent string, amount int64) string {
	return fmt.Sprintf(`{"id":%q,"type":"charge.refunded","data":{"object":{
		"id":"ch_1","payment_intent":%q,"currency":"usd",
		"refunds":{"data":[{"id":%q,"amount":%d,"currency":"usd","payment_intent":%q}]}}}}`,
		eventID, intent, refundID, amount, intent)
}

func pendingOrder(id string) order.Order {
	return order.Order{ID: id, Status: order.StatusPending, Total: decimal.RequireFromString("50.00"), Currency: "USD"}
}

func TestDispatch_CheckoutCompleted(t *testing.T) {
	ctx := context.Background()
	f := newFixture(pendingOrder("ORD-1"))

	// when
	res, err := f.dispatcher.Dispatch(ctx, envelope(t, checkout("evt_1", "ORD-1", "pi_123", 5000)))

	// then
	require.NoError(t, err)
	assert.Equal(t, Result{Outcome: Handled, OrderID: "ORD-1", Reference: "pi_123"}, res)

	entries := f.store.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "pi_123", entries[0].RefID)
	assert.Equal(t, "ORD-1", entries[0].OrderID)
	assert.True(t, decimal.RequireFromString("50.00").Equal(entries[0].Amount))
	assert.True(t, entries[0].Complete)

	o := f.store.Order("ORD-1")
	assert.Equal(t, order.StatusProcessing, o.Status)
	require.NotNil(t, o.Address)
	assert.Equal(t, "1 Main St", o.Address.Line1)
	assert.Equal(t, 1, f.completer.Calls("ORD-1"))

	t.Run("redelivery is a duplicate and changes nothing", func(t *testing.T) {
		res, err := f.dispatcher.Dispatch(ctx, envelope(t, checkout("evt_1", "ORD-1", "pi_123", 5000)))

		require.NoError(t, err)
		assert.Equal(t, DuplicateIgnored, res.Outcome)
		assert.Len(t, f.store.Entries(), 1)
		assert.Equal(t, 1, f.completer.Calls("ORD-1"))
	})
}

func TestDispatch_AddressNotOverwritten(t *testing.T) {
	existing := pendingOrder("ORD-2")
	existing.Address = &order.Address{Line1: "9 Old Rd"}
	f := newFixture(existing)

	_, err := f.dispatcher.Dispatch(context.Background(), envelope(t, checkout("evt_2", "ORD-2", "pi_2", 5000)))

	require.NoError(t, err)
	assert.Equal(t, "9 Old Rd", f.store.Order("ORD-2").Address.Line1)
}

func TestDispatch_UnknownKind(t *testing.T) {
	f := newFixture()

	res, err := f.dispatcher.Dispatch(context.Background(), envelope(t, `{"id":"evt_x","type":"foo.bar","data":{"object":{}}}`))

	require.NoError(t, err)
	assert.Equal(t, UnhandledKindIgnored, res.Outcome)
}

func TestDispatch_Unverified(t *testing.T) {
	f := newFixture(pendingOrder("ORD-1"))
	env, err := event.ParseUnverified([]byte(checkout("evt_1", "ORD-1", "pi_1", 5000)))
	require.NoError(t, err)

	_, err = f.dispatcher.Dispatch(context.Background(), env)

	assert.ErrorIs(t, err, ErrUnverified)
	assert.Empty(t, f.store.Entries())
}

func TestDispatch_Failures(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr error
	}{
		{
			name:    "missing field on known kind",
			payload: `{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"payment_intent":"pi_1","amount_total":1,"currency":"usd"}}}`,
			wantErr: event.ErrMissingField,
		},
		{
			name:    "order not found",
			payload: checkout("evt_2", "ORD-404", "pi_2", 100),
			wantErr: order.ErrNotFound,
		},
		{
			name:    "invoice for unknown order",
			payload: `{"id":"evt_3","type":"invoice.created","data":{"object":{"id":"in_1","metadata":{"order_id":"ORD-404"}}}}`,
			wantErr: order.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(pendingOrder("ORD-1"))

			_, err := f.dispatcher.Dispatch(context.Background(), envelope(t, tt.payload))

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.store.Entries())
		})
	}
}

func TestDispatch_StoreFailurePropagates(t *testing.T) {
	f := newFixture(pendingOrder("ORD-1"))
	f.store.Fail(errors.New("connection reset"))

	_, err := f.dispatcher.Dispatch(context.Background(), envelope(t, checkout("evt_1", "ORD-1", "pi_1", 5000)))

	assert.EqualError(t, err, "connection reset")
}

func TestDispatch_InvoiceLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(pendingOrder("ORD-5"))

	// given an invoice was created for the order
	res, err := f.dispatcher.Dispatch(ctx, envelope(t,
		`{"id":"evt_c","type":"invoice.created","data":{"object":{"id":"in_5","metadata":{"order_id":"ORD-5"}}}}`))
	require.NoError(t, err)
	assert.Equal(t, Handled, res.Outcome)
	assert.Equal(t, "in_5", f.store.Order("ORD-5").GatewayRef)
	assert.Equal(t, order.StatusProcessing, f.store.Order("ORD-5").Status)
	assert.Empty(t, f.store.Entries())

	// when the invoice is paid
	res, err = f.dispatcher.Dispatch(ctx, envelope(t,
		`{"id":"evt_p","type":"invoice.payment_succeeded","data":{"object":{"id":"in_5","metadata":{"order_id":"ORD-5"},
		"payment_intent":"pi_5","amount_paid":5000,"currency":"usd"}}}`))

	// then the payment is recorded but fulfillment is not triggered twice
	require.NoError(t, err)
	assert.Equal(t, Handled, res.Outcome)
	require.Len(t, f.store.Entries(), 1)
	assert.Equal(t, "pi_5", f.store.Entries()[0].RefID)
	assert.Equal(t, 1, f.completer.Calls("ORD-5"))
}

func TestDispatch_InvoiceCreatedDoesNotRegressStatus(t *testing.T) {
	shipped := pendingOrder("ORD-6")
	shipped.Status = order.StatusShipped
	f := newFixture(shipped)

	res, err := f.dispatcher.Dispatch(context.Background(), envelope(t,
		`{"id":"evt_c","type":"invoice.created","data":{"object":{"id":"in_6","metadata":{"order_id":"ORD-6"}}}}`))

	require.NoError(t, err)
	assert.Equal(t, Handled, res.Outcome)
	assert.Equal(t, order.StatusShipped, f.store.Order("ORD-6").Status)
	assert.Equal(t, 0, f.completer.Calls("ORD-6"))
	assert.Empty(t, f.store.Entries())
}

func TestDispatch_Refunds(t *testing.T) {
	tests := []struct {
		name           string
		amount         int64
		expectedStatus order.Status
	}{
		{name: "full refund", amount: 5000, expectedStatus: order.StatusRefunded},
		{name: "partial refund", amount: 1000, expectedStatus: order.StatusProcessing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(pendingOrder("ORD-1"))
			_, err := f.dispatcher.Dispatch(ctx, envelope(t, checkout("evt_1", "ORD-1", "pi_123", 5000)))
			require.NoError(t, err)

			// when
			res, err := f.dispatcher.Dispatch(ctx, envelope(t, refund("evt_r", "re_1", "pi_123", tt.amount)))

			// then
			require.NoError(t, err)
			assert.Equal(t, Result{Outcome: Handled, OrderID: "ORD-1", Reference: "re_1"}, res)
			assert.Equal(t, tt.expectedStatus, f.store.Order("ORD-1").Status)

			entries := f.store.Entries()
			require.Len(t, entries, 2)
			assert.Equal(t, payment.MethodRefund, entries[1].Method)
			assert.Equal(t, "pi_123", entries[1].ParentRef)
			assert.True(t, entries[1].Amount.IsNegative())

			// and a redelivered refund is a duplicate
			res, err = f.dispatcher.Dispatch(ctx, envelope(t, refund("evt_r", "re_1", "pi_123", tt.amount)))
			require.NoError(t, err)
			assert.Equal(t, DuplicateIgnored, res.Outcome)
			assert.Len(t, f.store.Entries(), 2)
		})
	}
}

func TestDispatch_RefundWithoutOriginal(t *testing.T) {
	f := newFixture(pendingOrder("ORD-1"))

	_, err := f.dispatcher.Dispatch(context.Background(), envelope(t, refund("evt_r", "re_9", "pi_unknown", 100)))

	assert.ErrorIs(t, err, payment.ErrOriginalPaymentNotFound)
	assert.Empty(t, f.store.Entries())
	require.Len(t, f.audit.records, 1)
	assert.Equal(t, audit.OutcomeRefundUnmatched, f.audit.records[0].Outcome)
	assert.Equal(t, order.StatusPending, f.store.Order("ORD-1").Status)
}

func TestDispatch_PaymentIntentAudit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(pendingOrder("ORD-1"))
	payload := `{"id":"evt_pi","type":"payment_intent.succeeded","data":{"object":{
		"id":"pi_1","amount":5000,"currency":"usd","status":"succeeded","metadata":{"order_id":"ORD-1"}}}}`

	res, err := f.dispatcher.Dispatch(ctx, envelope(t, payload))

	require.NoError(t, err)
	assert.Equal(t, Handled, res.Outcome)
	entries := f.store.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "evt_pi", entries[0].RefID)
	assert.Equal(t, payment.MethodAudit, entries[0].Method)
	assert.False(t, entries[0].Complete)
	assert.Equal(t, order.StatusPending, f.store.Order("ORD-1").Status)

	res, err = f.dispatcher.Dispatch(ctx, envelope(t, payload))
	require.NoError(t, err)
	assert.Equal(t, DuplicateIgnored, res.Outcome)
}

func TestDispatch_PaymentIntentForForeignOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(pendingOrder("ORD-1"))
	payload := `{"id":"evt_pi_other","type":"payment_intent.created","data":{"object":{
		"id":"pi_9","amount":700,"currency":"usd","status":"requires_payment_method","metadata":{"order_id":"EXT-77"}}}}`

	res, err := f.dispatcher.Dispatch(ctx, envelope(t, payload))

	require.NoError(t, err)
	assert.Equal(t, Handled, res.Outcome)
	entries := f.store.Entries()
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].OrderID)
	assert.Contains(t, entries[0].Comment, "order_id=EXT-77")
}

func TestDispatch_ConcurrentDuplicates(t *testing.T) {
	const n = 20
	ctx := context.Background()
	f := newFixture(pendingOrder("ORD-1"))
	env := envelope(t, checkout("evt_1", "ORD-1", "pi_123", 5000))

	outcomes := make([]Outcome, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := f.dispatcher.Dispatch(ctx, env)
			assert.NoError(t, err)
			outcomes[i] = res.Outcome
		}()
	}
	wg.Wait()

	counts := map[Outcome]int{}
	for _, o := range outcomes {
		counts[o]++
	}
	assert.Equal(t, 1, counts[Handled])
	assert.Equal(t, n-1, counts[DuplicateIgnored])
	assert.Len(t, f.store.Entries(), 1)
	assert.Equal(t, 1, f.completer.Calls("ORD-1"))
}
