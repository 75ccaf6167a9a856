package order_repo

import (
	"PaymentWebhooks/internal/domain/order"

	"github.com/jackc/pgx/v5"
)

var orderColumns = []string{
	"id",
	"status",
	"total::text",
	"currency",
	"COALESCE(gateway_ref, '')",
	"address",
	"created_at",
	"updated_at",
}

func parseOrderRow(row pgx.Row) (order.Order, error) {
	var m orderRow

	err := row.Scan(&m.ID,
		&m.Status,
		&m.Total,
		&m.Currency,
		&m.GatewayRef,
		&m.Address,
		&m.CreatedAt,
		&m.UpdatedAt)
	if err != nil {
		return order.Order{}, err
	}

	return m.toDomain()
}
