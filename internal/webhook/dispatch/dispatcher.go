// Package dispatch routes verified envelopes to the payment recorder and
// refund handler by event kind.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"PaymentWebhooks/internal/domain/currency"
	"PaymentWebhooks/internal/domain/order"
	"PaymentWebhooks/internal/domain/payment"
	"PaymentWebhooks/internal/webhook/event"
)

type Outcome string

const (
	Handled              Outcome = "handled"
	DuplicateIgnored     Outcome = "duplicate_ignored"
	UnhandledKindIgnored Outcome = "unhandled_kind_ignored"
)

var ErrUnverified = errors.New("envelope has not been verified")

// Result describes what a dispatch did. OrderID and Reference are set
// whenever they were extracted, including on failure.
type Result struct {
	Outcome   Outcome
	OrderID   string
	Reference string
}

type Recorder interface {
	Record(ctx context.Context, req payment.RecordRequest) (payment.Entry, error)
	AttachInvoice(ctx context.Context, orderID, invoiceID string) (order.Order, error)
	RecordAudit(ctx context.Context, req payment.AuditRequest) (payment.Entry, error)
}

type Refunder interface {
	HandleRefund(ctx context.Context, req payment.RefundRequest) (payment.RefundResult, error)
}

type Dispatcher struct {
	recorder Recorder
	refunder Refunder
}

func NewDispatcher(recorder Recorder, refunder Refunder) *Dispatcher {
	return &Dispatcher{recorder: recorder, refunder: refunder}
}

// Dispatch applies env. Duplicate references and kinds without a handler are
// outcomes, not errors.
func (d *Dispatcher) Dispatch(ctx context.Context, env event.Envelope) (Result, error) {
	if !env.Verified {
		return Result{}, ErrUnverified
	}

	switch res := env.Resource.(type) {
	case event.CheckoutSession:
		p, err := res.Payment()
		if err != nil {
			return Result{}, err
		}
		return d.recordPayment(ctx, env, p, "checkout")

	case event.Invoice:
		if env.Kind == event.KindInvoiceCreated || env.Kind == event.KindInvoiceFinalized {
			return d.attachInvoice(ctx, res)
		}
		p, err := res.Payment()
		if err != nil {
			return Result{}, err
		}
		return d.recordPayment(ctx, env, p, "invoice")

	case event.Charge:
		r, err := res.Refund(env.ID)
		if err != nil {
			return Result{}, err
		}
		return d.refund(ctx, env, r)

	case event.PaymentIntent:
		a, err := res.Audit()
		if err != nil {
			return Result{}, err
		}
		return d.audit(ctx, env, a)
	}

	slog.InfoContext(ctx, "Unhandled webhook kind ignored",
		slog.String("event_id", env.ID),
		slog.String("kind", env.Kind.String()))
	return Result{Outcome: UnhandledKindIgnored}, nil
}

func (d *Dispatcher) recordPayment(ctx context.Context, env event.Envelope, p event.Payment, method string) (Result, error) {
	result := Result{OrderID: p.OrderID, Reference: p.Reference}

	_, err := d.recorder.Record(ctx, payment.RecordRequest{
		OrderID:  p.OrderID,
		Ref:      p.Reference,
		Amount:   currency.FromMinorUnits(p.AmountMinor, p.Currency),
		Currency: p.Currency,
		Method:   method,
		Status:   env.Kind.String(),
		Comment:  fmt.Sprintf("%s via %s", env.ID, env.Kind),
		Address:  address(p.Buyer),
	})
	return d.outcome(ctx, env, result, err)
}

func (d *Dispatcher) attachInvoice(ctx context.Context, inv event.Invoice) (Result, error) {
	ref, err := inv.InvoiceRef()
	if err != nil {
		return Result{}, err
	}

	result := Result{OrderID: ref.OrderID, Reference: ref.InvoiceID}
	if _, err := d.recorder.AttachInvoice(ctx, ref.OrderID, ref.InvoiceID); err != nil {
		return result, err
	}
	result.Outcome = Handled
	return result, nil
}

func (d *Dispatcher) refund(ctx context.Context, env event.Envelope, r event.Refund) (Result, error) {
	result := Result{Reference: r.RefundID}

	res, err := d.refunder.HandleRefund(ctx, payment.RefundRequest{
		RefundID:    r.RefundID,
		OriginalRef: r.OriginalRef,
		Amount:      currency.FromMinorUnits(r.AmountMinor, r.Currency),
		Currency:    r.Currency,
		EventID:     env.ID,
		Status:      env.Kind.String(),
		Comment:     fmt.Sprintf("refund of %s", r.OriginalRef),
	})
	result.OrderID = res.OrderID
	return d.outcome(ctx, env, result, err)
}

func (d *Dispatcher) audit(ctx context.Context, env event.Envelope, a event.IntentAudit) (Result, error) {
	result := Result{OrderID: a.OrderID, Reference: env.ID}

	_, err := d.recorder.RecordAudit(ctx, payment.AuditRequest{
		Ref:      env.ID,
		OrderID:  a.OrderID,
		Amount:   currency.FromMinorUnits(a.AmountMinor, a.Currency),
		Currency: a.Currency,
		Status:   env.Kind.String(),
		Comment:  fmt.Sprintf("%s %s", a.IntentID, a.Status),
	})
	return d.outcome(ctx, env, result, err)
}

func (d *Dispatcher) outcome(ctx context.Context, env event.Envelope, result Result, err error) (Result, error) {
	if errors.Is(err, payment.ErrDuplicateReference) {
		slog.InfoContext(ctx, "Duplicate webhook ignored",
			slog.String("event_id", env.ID),
			slog.String("kind", env.Kind.String()),
			slog.String("order_id", result.OrderID),
			slog.String("reference", result.Reference))
		result.Outcome = DuplicateIgnored
		return result, nil
	}
	if err != nil {
		return result, err
	}
	result.Outcome = Handled
	return result, nil
}

func address(b *event.Buyer) *order.Address {
	if b == nil {
		return nil
	}
	return &order.Address{
		Name:       b.Name,
		Email:      b.Email,
		Line1:      b.Line1,
		Line2:      b.Line2,
		City:       b.City,
		State:      b.State,
		PostalCode: b.PostalCode,
		Country:    b.Country,
	}
}
