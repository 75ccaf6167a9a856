package webhook

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"PaymentWebhooks/internal/domain/audit"
	"PaymentWebhooks/internal/messaging"
	"PaymentWebhooks/internal/webhook/event"
	"PaymentWebhooks/internal/webhook/signature"
	"PaymentWebhooks/pkg/metrics"
)

// MessageType tags queued deliveries on the webhooks topic.
const MessageType = "webhook.delivery"

// AsyncProcessor verifies and parses a delivery, then queues the raw payload
// keyed by event id. Dispatch happens in the consumer.
type AsyncProcessor struct {
	verifier   *signature.Verifier
	publisher  messaging.Publisher
	deliveries audit.DeliveryLog
}

// NewAsyncProcessor accepts a nil deliveries log when the ingest binary runs
// without a database.
func NewAsyncProcessor(verifier *signature.Verifier, publisher messaging.Publisher, deliveries audit.DeliveryLog) *AsyncProcessor {
	return &AsyncProcessor{
		verifier:   verifier,
		publisher:  publisher,
		deliveries: deliveries,
	}
}

func (p *AsyncProcessor) Process(ctx context.Context, d Delivery) (Result, error) {
	started := time.Now()
	if d.ReceivedAt.IsZero() {
		d.ReceivedAt = started.UTC()
	}

	verified, err := p.verifier.Verify(d.Payload, d.Signature)
	if err != nil {
		recordDelivery(ctx, p.deliveries, d, event.Envelope{}, false, err)
		metrics.ObserveWebhook("", audit.OutcomeRejected, started)
		return Result{}, err
	}

	env, err := event.Parse(verified)
	if err == nil {
		// the consumer cannot ask for a redelivery once the delivery is acknowledged
		err = env.Validate()
	}
	recordDelivery(ctx, p.deliveries, d, env, true, err)
	if err != nil {
		metrics.ObserveWebhook(env.Kind.String(), audit.OutcomeRejected, started)
		return Result{}, err
	}

	msg := messaging.NewRawEnvelope(env.ID, env.ID, MessageType, verified.Bytes())
	if err := p.publisher.Publish(ctx, msg); err != nil {
		metrics.ObserveWebhook(env.Kind.String(), audit.OutcomeFailed, started)
		return Result{}, fmt.Errorf("queue webhook %s: %w", env.ID, err)
	}

	metrics.ObserveWebhook(env.Kind.String(), string(Queued), started)
	slog.InfoContext(ctx, "Webhook queued",
		slog.String("event_id", env.ID),
		slog.String("kind", env.Kind.String()))
	return Result{Outcome: Queued, EventID: env.ID, Kind: env.Kind}, nil
}
