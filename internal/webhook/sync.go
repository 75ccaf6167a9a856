package webhook

import (
	"context"
	"log/slog"
	"time"

	"PaymentWebhooks/internal/domain/audit"
	"PaymentWebhooks/internal/webhook/event"
	"PaymentWebhooks/internal/webhook/signature"
	"PaymentWebhooks/pkg/logger"
	"PaymentWebhooks/pkg/metrics"
)

// SyncProcessor dispatches each delivery before the HTTP response is sent.
type SyncProcessor struct {
	verifier   *signature.Verifier
	dispatcher Dispatcher
	deliveries audit.DeliveryLog
	events     audit.EventLog
	timeout    time.Duration
}

func NewSyncProcessor(
	verifier *signature.Verifier,
	dispatcher Dispatcher,
	deliveries audit.DeliveryLog,
	events audit.EventLog,
	timeout time.Duration,
) *SyncProcessor {
	return &SyncProcessor{
		verifier:   verifier,
		dispatcher: dispatcher,
		deliveries: deliveries,
		events:     events,
		timeout:    timeout,
	}
}

func (p *SyncProcessor) Process(ctx context.Context, d Delivery) (Result, error) {
	started := time.Now()
	if d.ReceivedAt.IsZero() {
		d.ReceivedAt = started.UTC()
	}

	verified, err := p.verifier.Verify(d.Payload, d.Signature)
	if err != nil {
		recordDelivery(ctx, p.deliveries, d, event.Envelope{}, false, err)
		slog.WarnContext(ctx, "Webhook rejected", slog.Any("error", err))
		metrics.ObserveWebhook("", audit.OutcomeRejected, started)
		return Result{}, err
	}

	env, err := event.Parse(verified)
	recordDelivery(ctx, p.deliveries, d, env, true, err)
	if err != nil {
		slog.WarnContext(ctx, "Webhook payload rejected", slog.Any("error", err))
		metrics.ObserveWebhook("", audit.OutcomeRejected, started)
		return Result{}, err
	}

	return p.dispatch(ctx, env, started)
}

// HandleVerified dispatches a payload that was verified before it was
// queued.
func (p *SyncProcessor) HandleVerified(ctx context.Context, payload signature.VerifiedPayload) (Result, error) {
	started := time.Now()

	env, err := event.Parse(payload)
	if err != nil {
		metrics.ObserveWebhook("", audit.OutcomeRejected, started)
		return Result{}, err
	}
	return p.dispatch(ctx, env, started)
}

func (p *SyncProcessor) dispatch(ctx context.Context, env event.Envelope, started time.Time) (Result, error) {
	ctx = logger.WithEventID(ctx, env.ID)
	dctx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		dctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	res, err := p.dispatcher.Dispatch(dctx, env)
	result := Result{Outcome: res.Outcome, EventID: env.ID, Kind: env.Kind, OrderID: res.OrderID}

	rec := audit.EventRecord{
		EventID:   env.ID,
		Kind:      env.Kind.String(),
		OrderID:   res.OrderID,
		Reference: res.Reference,
		Outcome:   string(res.Outcome),
	}
	if err != nil {
		rec.Outcome = audit.OutcomeFailed
		rec.Error = err.Error()
	}
	if p.events != nil {
		if aerr := p.events.RecordEvent(ctx, rec); aerr != nil {
			slog.ErrorContext(ctx, "Failed to audit webhook event",
				slog.String("event_id", env.ID),
				slog.Any("error", aerr))
		}
	}
	metrics.ObserveWebhook(env.Kind.String(), rec.Outcome, started)

	if err != nil {
		slog.ErrorContext(ctx, "Webhook processing failed",
			slog.String("event_id", env.ID),
			slog.String("kind", env.Kind.String()),
			slog.String("order_id", res.OrderID),
			slog.Any("error", err))
		return result, err
	}

	slog.InfoContext(ctx, "Webhook processed",
		slog.String("event_id", env.ID),
		slog.String("kind", env.Kind.String()),
		slog.String("order_id", res.OrderID),
		slog.String("outcome", string(res.Outcome)),
		slog.Bool("bypassed", env.Bypassed))
	return result, nil
}
