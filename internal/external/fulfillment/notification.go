// Package fulfillment hands paid orders to the shop's fulfillment side.
package fulfillment

import (
	"time"

	"PaymentWebhooks/internal/domain/order"

	"github.com/shopspring/decimal"
)

const MessageType = "order.purchase_completed"

// PurchaseCompleted is the body published for every order that reached
// processing.
type PurchaseCompleted struct {
	OrderID     string          `json:"order_id"`
	Total       decimal.Decimal `json:"total"`
	Currency    string          `json:"currency"`
	GatewayRef  string          `json:"gateway_ref,omitempty"`
	Address     *order.Address  `json:"address,omitempty"`
	CompletedAt time.Time       `json:"completed_at"`
}

func newPurchaseCompleted(o order.Order, now time.Time) PurchaseCompleted {
	return PurchaseCompleted{
		OrderID:     o.ID,
		Total:       o.Total,
		Currency:    o.Currency,
		GatewayRef:  o.GatewayRef,
		Address:     o.Address,
		CompletedAt: now.UTC(),
	}
}

// eventID is stable per order so consumers can drop a notification that was
// re-sent after a rolled back transaction.
func eventID(orderID string) string {
	return MessageType + ":" + orderID
}
