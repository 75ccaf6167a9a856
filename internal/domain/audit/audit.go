// Package audit is the append-only trail of webhook deliveries and dispatch
// results, kept apart from the payment ledger.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source audit.go -destination mock_audit.go -package audit

// Outcomes recorded besides the dispatcher's own.
const (
	OutcomeRejected        = "rejected"
	OutcomeFailed          = "failed"
	OutcomeRefundUnmatched = "refund_unmatched"
)

// Delivery is the raw inbound request as received.
type Delivery struct {
	ID         uuid.UUID `json:"id"`
	EventID    string    `json:"event_id,omitempty"`
	Kind       string    `json:"kind,omitempty"`
	Signature  string    `json:"signature"`
	Payload    []byte    `json:"payload"`
	Verified   bool      `json:"verified"`
	Error      string    `json:"error,omitempty"`
	ReceivedAt time.Time `json:"received_at"`
}

// EventRecord is the structured result of handling one event.
type EventRecord struct {
	ID         uuid.UUID `json:"id"`
	EventID    string    `json:"event_id"`
	Kind       string    `json:"kind"`
	OrderID    string    `json:"order_id,omitempty"`
	Reference  string    `json:"reference,omitempty"`
	Outcome    string    `json:"outcome"`
	Error      string    `json:"error,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

type DeliveryQuery struct {
	EventID string `form:"event_id" url:"event_id,omitempty"`
	Limit   int    `form:"limit" url:"limit,omitempty"`
}

const (
	DefaultDeliveryLimit = 50
	MaxDeliveryLimit     = 500
)

// Normalize clamps Limit into [1, MaxDeliveryLimit].
func (q DeliveryQuery) Normalize() DeliveryQuery {
	switch {
	case q.Limit <= 0:
		q.Limit = DefaultDeliveryLimit
	case q.Limit > MaxDeliveryLimit:
		q.Limit = MaxDeliveryLimit
	}
	return q
}

type DeliveryLog interface {
	RecordDelivery(ctx context.Context, d Delivery) error
	GetDeliveries(ctx context.Context, q DeliveryQuery) ([]Delivery, error)
}

type EventLog interface {
	RecordEvent(ctx context.Context, r EventRecord) error
}
