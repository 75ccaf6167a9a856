package fulfillment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"PaymentWebhooks/internal/domain/order"
	"PaymentWebhooks/internal/domain/payment"
	"PaymentWebhooks/internal/messaging"
)

// KafkaNotifier publishes PurchaseCompleted keyed by order id.
type KafkaNotifier struct {
	publisher messaging.Publisher
	now       func() time.Time
}

var _ payment.PurchaseCompleter = (*KafkaNotifier)(nil)

func NewKafkaNotifier(publisher messaging.Publisher) *KafkaNotifier {
	return &KafkaNotifier{publisher: publisher, now: time.Now}
}

func (n *KafkaNotifier) CompletePurchase(ctx context.Context, o order.Order) error {
	body, err := json.Marshal(newPurchaseCompleted(o, n.now()))
	if err != nil {
		return fmt.Errorf("encode purchase completed: %w", err)
	}

	env := messaging.NewRawEnvelope(eventID(o.ID), o.ID, MessageType, body)
	if err := n.publisher.Publish(ctx, env); err != nil {
		return fmt.Errorf("publish purchase completed %s: %w", o.ID, err)
	}

	slog.InfoContext(ctx, "Purchase completion published", slog.String("order_id", o.ID))
	return nil
}
