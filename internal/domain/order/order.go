package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is owned by the shop; webhooks only touch GatewayRef, Status and
// Address.
type Order struct {
	ID         string          `json:"order_id"`
	Status     Status          `json:"status"`
	Total      decimal.Decimal `json:"total"`
	Currency   string          `json:"currency"`
	GatewayRef string          `json:"gateway_ref,omitempty"`
	Address    *Address        `json:"address,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// HasAddress reports whether a buyer address was already captured.
func (o Order) HasAddress() bool {
	return o.Address != nil && !o.Address.IsZero()
}

type Address struct {
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

func (a Address) IsZero() bool {
	return a == Address{}
}
