package fulfillment

import (
	"context"
	"log/slog"

	"PaymentWebhooks/internal/domain/order"
	"PaymentWebhooks/internal/domain/payment"
)

// LogNotifier only logs; used when no fulfillment transport is configured.
type LogNotifier struct{}

var _ payment.PurchaseCompleter = LogNotifier{}

func (LogNotifier) CompletePurchase(ctx context.Context, o order.Order) error {
	slog.InfoContext(ctx, "Purchase completed",
		slog.String("order_id", o.ID),
		slog.String("total", o.Total.String()),
		slog.String("currency", o.Currency))
	return nil
}
