package order_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"PaymentWebhooks/internal/domain/order"
	"PaymentWebhooks/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

// Repo runs every statement on db, which is either the pool or an open
// transaction.
type Repo struct {
	db      postgres.Executor
	builder squirrel.StatementBuilderType
}

var _ order.Repo = (*Repo)(nil)

func New(db postgres.Executor, builder squirrel.StatementBuilderType) *Repo {
	return &Repo{db: db, builder: builder}
}

func NewPgOrderRepo(pg *postgres.Postgres) *Repo {
	return New(pg.Pool, pg.Builder)
}

func (r *Repo) GetOrder(ctx context.Context, id string) (order.Order, error) {
	query, args, err := r.builder.Select(orderColumns...).
		From("orders").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("build get order query: %w", err)
	}

	o, err := parseOrderRow(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return order.Order{}, order.ErrNotFound
	}
	if err != nil {
		return order.Order{}, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (r *Repo) SetGatewayRef(ctx context.Context, id, ref string) error {
	query, args, err := r.builder.Update("orders").
		Set("gateway_ref", ref).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set gateway ref query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set gateway ref: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}
	return nil
}

func (r *Repo) AdvanceStatus(ctx context.Context, id string, status order.Status) (bool, error) {
	from := order.Predecessors(status)
	if len(from) == 0 {
		return false, nil
	}

	allowed := make([]string, 0, len(from))
	for _, s := range from {
		allowed = append(allowed, string(s))
	}

	query, args, err := r.builder.Update("orders").
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": allowed}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build advance status query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("advance order status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repo) SetAddressIfEmpty(ctx context.Context, id string, addr order.Address) (bool, error) {
	if addr.IsZero() {
		return false, nil
	}

	data, err := json.Marshal(addr)
	if err != nil {
		return false, fmt.Errorf("encode address: %w", err)
	}

	query, args, err := r.builder.Update("orders").
		Set("address", data).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"address": nil}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build set address query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("set order address: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
