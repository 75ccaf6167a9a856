package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"PaymentWebhooks/internal/domain/order"

	"github.com/shopspring/decimal"
)

type RecordRequest struct {
	OrderID  string
	Ref      string
	Amount   decimal.Decimal
	Currency string
	Method   string
	Status   string
	Comment  string
	Address  *order.Address
}

type AuditRequest struct {
	Ref      string
	OrderID  string
	Amount   decimal.Decimal
	Currency string
	Status   string
	Comment  string
}

// Recorder turns verified payments into ledger entries and order
// transitions.
type Recorder struct {
	store     Store
	guard     *IdempotencyGuard
	completer PurchaseCompleter
	gateway   string
}

func NewRecorder(store Store, completer PurchaseCompleter, gateway string) *Recorder {
	return &Recorder{
		store:     store,
		guard:     NewIdempotencyGuard(store),
		completer: completer,
		gateway:   gateway,
	}
}

// Record writes one complete entry for req.Ref and moves the order to
// processing. Returns ErrDuplicateReference when the reference is taken, in
// which case nothing else changes.
func (r *Recorder) Record(ctx context.Context, req RecordRequest) (Entry, error) {
	var entry Entry
	err := r.store.InTransaction(ctx, func(tx TxRepo) error {
		o, err := tx.GetOrder(ctx, req.OrderID)
		if err != nil {
			return fmt.Errorf("load order: %w", err)
		}

		entry, err = r.guard.Claim(ctx, tx, NewEntry{
			RefID:    req.Ref,
			OrderID:  o.ID,
			Amount:   req.Amount,
			Currency: req.Currency,
			Gateway:  r.gateway,
			Method:   req.Method,
			Status:   req.Status,
			Complete: true,
			Comment:  req.Comment,
		})
		if err != nil {
			return err
		}

		if req.Address != nil && !req.Address.IsZero() && !o.HasAddress() {
			if _, err := tx.SetAddressIfEmpty(ctx, o.ID, *req.Address); err != nil {
				return fmt.Errorf("store address: %w", err)
			}
		}

		return r.complete(ctx, tx, o)
	})
	if err != nil {
		return Entry{}, err
	}

	slog.InfoContext(ctx, "Payment recorded",
		slog.String("order_id", entry.OrderID),
		slog.String("ref_id", entry.RefID),
		slog.String("amount", entry.Amount.String()),
		slog.String("currency", entry.Currency))
	return entry, nil
}

// AttachInvoice stores the processor's invoice id on the order and treats
// the order as paid for fulfillment purposes. No ledger entry is written.
func (r *Recorder) AttachInvoice(ctx context.Context, orderID, invoiceID string) (order.Order, error) {
	var result order.Order
	err := r.store.InTransaction(ctx, func(tx TxRepo) error {
		o, err := tx.GetOrder(ctx, orderID)
		if err != nil {
			return fmt.Errorf("load order: %w", err)
		}

		if err := tx.SetGatewayRef(ctx, o.ID, invoiceID); err != nil {
			return fmt.Errorf("set gateway ref: %w", err)
		}
		o.GatewayRef = invoiceID

		if o.Status.AtLeast(order.StatusProcessing) {
			slog.WarnContext(ctx, "Invoice received for order that is already processing",
				slog.String("order_id", o.ID),
				slog.String("invoice_id", invoiceID),
				slog.String("status", string(o.Status)))
		}

		result = o
		return r.complete(ctx, tx, o)
	})
	return result, err
}

// RecordAudit stores an informational entry with no order side effects. An
// order id that does not resolve to a stored order is kept in the comment
// only.
func (r *Recorder) RecordAudit(ctx context.Context, req AuditRequest) (Entry, error) {
	orderID, comment := req.OrderID, req.Comment
	if orderID != "" {
		_, err := r.store.GetOrder(ctx, orderID)
		switch {
		case errors.Is(err, order.ErrNotFound):
			slog.InfoContext(ctx, "Audit entry names an unknown order",
				slog.String("ref", req.Ref),
				slog.String("order_id", orderID))
			comment = strings.TrimSpace(comment + " order_id=" + orderID)
			orderID = ""
		case err != nil:
			return Entry{}, fmt.Errorf("load order: %w", err)
		}
	}

	return r.guard.Claim(ctx, r.store, NewEntry{
		RefID:    req.Ref,
		OrderID:  orderID,
		Amount:   req.Amount,
		Currency: req.Currency,
		Gateway:  r.gateway,
		Method:   MethodAudit,
		Status:   req.Status,
		Complete: false,
		Comment:  comment,
	})
}

// complete fires purchase completion only when this transaction is the one
// that moved the order into processing.
func (r *Recorder) complete(ctx context.Context, tx TxRepo, o order.Order) error {
	advanced, err := tx.AdvanceStatus(ctx, o.ID, order.StatusProcessing)
	if err != nil {
		return fmt.Errorf("advance order: %w", err)
	}
	if !advanced {
		slog.DebugContext(ctx, "Order not advanced, purchase completion skipped",
			slog.String("order_id", o.ID),
			slog.String("status", string(o.Status)))
		return nil
	}

	o.Status = order.StatusProcessing
	if err := r.completer.CompletePurchase(ctx, o); err != nil {
		return fmt.Errorf("complete purchase: %w", err)
	}
	return nil
}
