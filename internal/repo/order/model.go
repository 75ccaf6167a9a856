package order_repo

import (
	"encoding/json"
	"fmt"
	"time"

	"PaymentWebhooks/internal/domain/order"

	"github.com/shopspring/decimal"
)

type orderRow struct {
	ID         string
	Status     string
	Total      string
	Currency   string
	GatewayRef string
	Address    []byte
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (m orderRow) toDomain() (order.Order, error) {
	status, err := order.NewStatus(m.Status)
	if err != nil {
		return order.Order{}, err
	}

	total, err := decimal.NewFromString(m.Total)
	if err != nil {
		return order.Order{}, fmt.Errorf("parse total %q: %w", m.Total, err)
	}

	o := order.Order{
		ID:         m.ID,
		Status:     status,
		Total:      total,
		Currency:   m.Currency,
		GatewayRef: m.GatewayRef,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}

	if len(m.Address) > 0 {
		var addr order.Address
		if err := json.Unmarshal(m.Address, &addr); err != nil {
			return order.Order{}, fmt.Errorf("decode address: %w", err)
		}
		o.Address = &addr
	}

	return o, nil
}
