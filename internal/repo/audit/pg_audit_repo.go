package audit_repo

import (
	"context"
	"fmt"
	"time"

	"PaymentWebhooks/internal/domain/audit"
	"PaymentWebhooks/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PgAuditRepo stores raw deliveries and per-event dispatch results.
type PgAuditRepo struct {
	db      postgres.Executor
	builder squirrel.StatementBuilderType
}

var (
	_ audit.DeliveryLog = (*PgAuditRepo)(nil)
	_ audit.EventLog    = (*PgAuditRepo)(nil)
)

func NewPgAuditRepo(db postgres.Executor, builder squirrel.StatementBuilderType) *PgAuditRepo {
	return &PgAuditRepo{db: db, builder: builder}
}

func (r *PgAuditRepo) RecordDelivery(ctx context.Context, d audit.Delivery) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.ReceivedAt.IsZero() {
		d.ReceivedAt = time.Now().UTC()
	}

	query, args, err := r.builder.Insert("webhook_deliveries").
		Columns("id", "event_id", "kind", "signature", "payload", "verified", "error", "received_at").
		Values(d.ID, d.EventID, d.Kind, d.Signature, d.Payload, d.Verified, d.Error, d.ReceivedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert delivery query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("record delivery: %w", err)
	}
	return nil
}

func (r *PgAuditRepo) GetDeliveries(ctx context.Context, q audit.DeliveryQuery) ([]audit.Delivery, error) {
	q = q.Normalize()

	builder := r.builder.Select("id", "event_id", "kind", "signature", "payload", "verified", "error", "received_at").
		From("webhook_deliveries").
		OrderBy("received_at DESC", "id DESC").
		Limit(uint64(q.Limit))
	if q.EventID != "" {
		builder = builder.Where(squirrel.Eq{"event_id": q.EventID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get deliveries query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query deliveries: %w", err)
	}

	deliveries, err := parseDeliveryRows(rows)
	if err != nil {
		return nil, fmt.Errorf("parse deliveries: %w", err)
	}
	return deliveries, nil
}

func (r *PgAuditRepo) RecordEvent(ctx context.Context, rec audit.EventRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now().UTC()
	}

	query, args, err := r.builder.Insert("webhook_events").
		Columns("id", "event_id", "kind", "order_id", "reference", "outcome", "error", "recorded_at").
		Values(rec.ID, rec.EventID, rec.Kind, rec.OrderID, rec.Reference, rec.Outcome, rec.Error, rec.RecordedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert event query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("record event %s: %w", rec.EventID, err)
	}
	return nil
}

func parseDeliveryRows(rows pgx.Rows) ([]audit.Delivery, error) {
	defer rows.Close()

	deliveries := []audit.Delivery{}
	for rows.Next() {
		var d audit.Delivery
		err := rows.Scan(&d.ID,
			&d.EventID,
			&d.Kind,
			&d.Signature,
			&d.Payload,
			&d.Verified,
			&d.Error,
			&d.ReceivedAt)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return deliveries, nil
}
