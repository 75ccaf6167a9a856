package payment

import (
	"context"
	"testing"

	"PaymentWebhooks/internal/domain/audit"
	"PaymentWebhooks/internal/domain/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRefundHandler_HandleRefund(t *testing.T) {
	ctx := context.Background()
	original := &Entry{RefID: "pi_123", OrderID: "ORD-1", Amount: decimal.RequireFromString("50")}
	paid := order.Order{ID: "ORD-1", Status: order.StatusProcessing, Total: decimal.RequireFromString("50"), Currency: "USD"}

	setup := func(t *testing.T) (*RefundHandler, *MockStore, *MockTxRepo, *audit.MockEventLog) {
		ctrl := gomock.NewController(t)
		store, tx, auditLog := NewMockStore(ctrl), NewMockTxRepo(ctrl), audit.NewMockEventLog(ctrl)
		store.EXPECT().InTransaction(ctx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, fn func(TxRepo) error) error {
				return fn(tx)
			},
		)
		return NewRefundHandler(store, auditLog, "stripe"), store, tx, auditLog
	}

	testCases := []struct {
		name          string
		amount        string
		fullRefund    bool
		expectAdvance bool
	}{
		{name: "full refund transitions order", amount: "50.00", fullRefund: true, expectAdvance: true},
		{name: "over refund transitions order", amount: "60.00", fullRefund: true, expectAdvance: true},
		{name: "partial refund keeps status", amount: "20.00", fullRefund: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			handler, _, tx, _ := setup(t)
			tx.EXPECT().FindByReference(ctx, "pi_123").Return(original, nil)
			tx.EXPECT().GetOrder(ctx, "ORD-1").Return(paid, nil)
			tx.EXPECT().InsertEntry(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e NewEntry) (Entry, error) {
				assert.Equal(t, MethodRefund, e.Method)
				assert.Equal(t, "pi_123", e.ParentRef)
				assert.True(t, e.Amount.IsNegative())
				return Entry{RefID: e.RefID, ParentRef: e.ParentRef, OrderID: e.OrderID, Amount: e.Amount}, nil
			})
			if tc.expectAdvance {
				tx.EXPECT().AdvanceStatus(ctx, "ORD-1", order.StatusRefunded).Return(true, nil)
			}

			// when
			res, err := handler.HandleRefund(ctx, RefundRequest{
				RefundID:    "re_1",
				OriginalRef: "pi_123",
				Amount:      decimal.RequireFromString(tc.amount),
				Currency:    "USD",
				Status:      "charge.refunded",
			})

			// then
			require.NoError(t, err)
			assert.Equal(t, tc.fullRefund, res.FullRefund)
			assert.Equal(t, "ORD-1", res.OrderID)
			assert.True(t, decimal.RequireFromString(tc.amount).Neg().Equal(res.Entry.Amount))
		})
	}

	t.Run("refund in another currency keeps status", func(t *testing.T) {
		// given
		handler, _, tx, _ := setup(t)
		tx.EXPECT().FindByReference(ctx, "pi_123").Return(original, nil)
		tx.EXPECT().GetOrder(ctx, "ORD-1").Return(paid, nil)
		tx.EXPECT().InsertEntry(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e NewEntry) (Entry, error) {
			return Entry{RefID: e.RefID, OrderID: e.OrderID, Amount: e.Amount, Currency: e.Currency}, nil
		})

		// when
		res, err := handler.HandleRefund(ctx, RefundRequest{
			RefundID:    "re_3",
			OriginalRef: "pi_123",
			Amount:      decimal.RequireFromString("5000"),
			Currency:    "JPY",
			Status:      "charge.refunded",
		})

		// then
		require.NoError(t, err)
		assert.False(t, res.FullRefund)
		assert.Equal(t, "JPY", res.Entry.Currency)
	})

	t.Run("unknown original payment is audited and reported", func(t *testing.T) {
		// given
		handler, _, tx, auditLog := setup(t)
		tx.EXPECT().FindByReference(ctx, "pi_missing").Return(nil, nil)
		auditLog.EXPECT().RecordEvent(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, r audit.EventRecord) error {
			assert.Equal(t, audit.OutcomeRefundUnmatched, r.Outcome)
			assert.Equal(t, "evt_9", r.EventID)
			return nil
		})

		// when
		_, err := handler.HandleRefund(ctx, RefundRequest{
			RefundID:    "re_2",
			OriginalRef: "pi_missing",
			Amount:      decimal.RequireFromString("5"),
			EventID:     "evt_9",
			Status:      "charge.refunded",
		})

		// then
		assert.ErrorIs(t, err, ErrOriginalPaymentNotFound)
	})

	t.Run("redelivered refund is a duplicate", func(t *testing.T) {
		// given
		handler, _, tx, _ := setup(t)
		tx.EXPECT().FindByReference(ctx, "pi_123").Return(original, nil)
		tx.EXPECT().GetOrder(ctx, "ORD-1").Return(paid, nil)
		tx.EXPECT().InsertEntry(ctx, gomock.Any()).Return(Entry{}, ErrDuplicateReference)

		// when
		_, err := handler.HandleRefund(ctx, RefundRequest{RefundID: "re_1", OriginalRef: "pi_123", Amount: decimal.RequireFromString("50")})

		// then
		assert.ErrorIs(t, err, ErrDuplicateReference)
	})
}
