// Package webhook runs inbound deliveries through verification, parsing and
// dispatch, either in the request (SyncProcessor) or via Kafka
// (AsyncProcessor).
package webhook

import (
	"context"
	"log/slog"
	"time"

	"PaymentWebhooks/internal/domain/audit"
	"PaymentWebhooks/internal/webhook/dispatch"
	"PaymentWebhooks/internal/webhook/event"
)

// Queued is returned by AsyncProcessor once the delivery is on the topic.
const Queued dispatch.Outcome = "queued"

// Delivery is one inbound HTTP call.
type Delivery struct {
	Payload    []byte
	Signature  string
	ReceivedAt time.Time
}

type Result struct {
	Outcome dispatch.Outcome `json:"outcome"`
	EventID string           `json:"event_id,omitempty"`
	Kind    event.Kind       `json:"kind,omitempty"`
	OrderID string           `json:"order_id,omitempty"`
}

type Processor interface {
	Process(ctx context.Context, d Delivery) (Result, error)
}

type Dispatcher interface {
	Dispatch(ctx context.Context, env event.Envelope) (dispatch.Result, error)
}

func recordDelivery(ctx context.Context, log audit.DeliveryLog, d Delivery, env event.Envelope, verified bool, cause error) {
	if log == nil {
		return
	}

	rec := audit.Delivery{
		EventID:    env.ID,
		Kind:       env.Kind.String(),
		Signature:  d.Signature,
		Payload:    d.Payload,
		Verified:   verified,
		ReceivedAt: d.ReceivedAt,
	}
	if cause != nil {
		rec.Error = cause.Error()
	}
	if err := log.RecordDelivery(ctx, rec); err != nil {
		slog.ErrorContext(ctx, "Failed to store webhook delivery",
			slog.String("event_id", env.ID),
			slog.Any("error", err))
	}
}
