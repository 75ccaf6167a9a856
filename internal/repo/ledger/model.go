package ledger_repo

import (
	"fmt"
	"time"

	"PaymentWebhooks/internal/domain/payment"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var entryColumns = []string{
	"id",
	"ref_id",
	"COALESCE(parent_ref, '')",
	"COALESCE(order_id, '')",
	"amount::text",
	"currency",
	"gateway",
	"method",
	"status",
	"complete",
	"COALESCE(comment, '')",
	"created_at",
}

type entryRow struct {
	ID        uuid.UUID
	RefID     string
	ParentRef string
	OrderID   string
	Amount    string
	Currency  string
	Gateway   string
	Method    string
	Status    string
	Complete  bool
	Comment   string
	CreatedAt time.Time
}

func (m entryRow) toDomain() (payment.Entry, error) {
	amount, err := decimal.NewFromString(m.Amount)
	if err != nil {
		return payment.Entry{}, fmt.Errorf("parse amount %q: %w", m.Amount, err)
	}

	return payment.Entry{
		ID:        m.ID,
		RefID:     m.RefID,
		ParentRef: m.ParentRef,
		OrderID:   m.OrderID,
		Amount:    amount,
		Currency:  m.Currency,
		Gateway:   m.Gateway,
		Method:    m.Method,
		Status:    m.Status,
		Complete:  m.Complete,
		Comment:   m.Comment,
		CreatedAt: m.CreatedAt,
	}, nil
}

func parseEntryRow(row pgx.Row) (payment.Entry, error) {
	var m entryRow

	err := row.Scan(&m.ID,
		&m.RefID,
		&m.ParentRef,
		&m.OrderID,
		&m.Amount,
		&m.Currency,
		&m.Gateway,
		&m.Method,
		&m.Status,
		&m.Complete,
		&m.Comment,
		&m.CreatedAt)
	if err != nil {
		return payment.Entry{}, err
	}

	return m.toDomain()
}

func parseEntryRows(rows pgx.Rows) ([]payment.Entry, error) {
	defer rows.Close()

	var entries []payment.Entry
	for rows.Next() {
		e, err := parseEntryRow(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// nullable stores empty optional columns as NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
