package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"PaymentWebhooks/internal/domain/audit"
	"PaymentWebhooks/internal/domain/order"

	"github.com/shopspring/decimal"
)

type RefundRequest struct {
	RefundID    string
	OriginalRef string
	// Amount is positive, in major units.
	Amount   decimal.Decimal
	Currency string
	EventID  string
	Status   string
	Comment  string
}

type RefundResult struct {
	Entry      Entry
	OrderID    string
	FullRefund bool
}

type RefundHandler struct {
	store   Store
	guard   *IdempotencyGuard
	audit   audit.EventLog
	gateway string
}

func NewRefundHandler(store Store, auditLog audit.EventLog, gateway string) *RefundHandler {
	return &RefundHandler{
		store:   store,
		guard:   NewIdempotencyGuard(store),
		audit:   auditLog,
		gateway: gateway,
	}
}

// HandleRefund records a negative entry against the order of the original
// payment. A refund covering the recorded order total moves the order to
// refunded.
func (h *RefundHandler) HandleRefund(ctx context.Context, req RefundRequest) (RefundResult, error) {
	var result RefundResult
	err := h.store.InTransaction(ctx, func(tx TxRepo) error {
		original, err := tx.FindByReference(ctx, req.OriginalRef)
		if err != nil {
			return fmt.Errorf("find original payment: %w", err)
		}
		if original == nil || original.OrderID == "" {
			return ErrOriginalPaymentNotFound
		}

		o, err := tx.GetOrder(ctx, original.OrderID)
		if err != nil {
			return fmt.Errorf("load order: %w", err)
		}

		entry, err := h.guard.Claim(ctx, tx, NewEntry{
			RefID:     req.RefundID,
			ParentRef: original.RefID,
			OrderID:   o.ID,
			Amount:    req.Amount.Neg(),
			Currency:  req.Currency,
			Gateway:   h.gateway,
			Method:    MethodRefund,
			Status:    req.Status,
			Complete:  true,
			Comment:   req.Comment,
		})
		if err != nil {
			return err
		}
		result = RefundResult{Entry: entry, OrderID: o.ID}

		if !strings.EqualFold(req.Currency, o.Currency) {
			slog.WarnContext(ctx, "Refund currency differs from order currency, order status kept",
				slog.String("order_id", o.ID),
				slog.String("refund_id", req.RefundID),
				slog.String("refund_currency", req.Currency),
				slog.String("order_currency", o.Currency))
			return nil
		}
		if req.Amount.LessThan(o.Total) {
			return nil
		}
		result.FullRefund = true

		advanced, err := tx.AdvanceStatus(ctx, o.ID, order.StatusRefunded)
		if err != nil {
			return fmt.Errorf("mark order refunded: %w", err)
		}
		if !advanced {
			slog.InfoContext(ctx, "Order already refunded",
				slog.String("order_id", o.ID),
				slog.String("refund_id", req.RefundID))
		}
		return nil
	})

	if errors.Is(err, ErrOriginalPaymentNotFound) {
		h.recordUnmatched(ctx, req)
		return RefundResult{}, fmt.Errorf("refund %s for %s: %w", req.RefundID, req.OriginalRef, err)
	}
	if err != nil {
		return RefundResult{}, err
	}

	slog.InfoContext(ctx, "Refund recorded",
		slog.String("order_id", result.OrderID),
		slog.String("refund_id", req.RefundID),
		slog.String("original_ref", req.OriginalRef),
		slog.String("amount", req.Amount.String()),
		slog.Bool("full_refund", result.FullRefund))
	return result, nil
}

func (h *RefundHandler) recordUnmatched(ctx context.Context, req RefundRequest) {
	slog.ErrorContext(ctx, "Refund without matching payment",
		slog.String("event_id", req.EventID),
		slog.String("refund_id", req.RefundID),
		slog.String("original_ref", req.OriginalRef),
		slog.String("amount", req.Amount.String()))

	if h.audit == nil {
		return
	}
	err := h.audit.RecordEvent(ctx, audit.EventRecord{
		EventID:   req.EventID,
		Kind:      req.Status,
		Reference: req.RefundID,
		Outcome:   audit.OutcomeRefundUnmatched,
		Error:     fmt.Sprintf("no ledger entry for %s, amount %s %s", req.OriginalRef, req.Amount, req.Currency),
	})
	if err != nil {
		slog.ErrorContext(ctx, "Failed to audit unmatched refund", slog.Any("error", err))
	}
}
