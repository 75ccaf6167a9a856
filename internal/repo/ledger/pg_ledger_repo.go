package ledger_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"PaymentWebhooks/internal/domain/payment"
	"PaymentWebhooks/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repo is the append-only payments ledger.
type Repo struct {
	db      postgres.Executor
	builder squirrel.StatementBuilderType
}

var _ payment.LedgerRepo = (*Repo)(nil)

func New(db postgres.Executor, builder squirrel.StatementBuilderType) *Repo {
	return &Repo{db: db, builder: builder}
}

func (r *Repo) FindByReference(ctx context.Context, ref string) (*payment.Entry, error) {
	query, args, err := r.builder.Select(entryColumns...).
		From("payments").
		Where(squirrel.Eq{"ref_id": ref}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find payment query: %w", err)
	}

	e, err := parseEntryRow(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find payment %s: %w", ref, err)
	}
	return &e, nil
}

// InsertEntry relies on the ref_id unique index; a conflicting insert affects
// no rows and is reported as ErrDuplicateReference.
func (r *Repo) InsertEntry(ctx context.Context, e payment.NewEntry) (payment.Entry, error) {
	if err := e.Validate(); err != nil {
		return payment.Entry{}, err
	}

	entry := payment.Entry{
		ID:        uuid.New(),
		RefID:     e.RefID,
		ParentRef: e.ParentRef,
		OrderID:   e.OrderID,
		Amount:    e.Amount,
		Currency:  e.Currency,
		Gateway:   e.Gateway,
		Method:    e.Method,
		Status:    e.Status,
		Complete:  e.Complete,
		Comment:   e.Comment,
		CreatedAt: time.Now().UTC(),
	}

	query, args, err := r.builder.Insert("payments").
		Columns("id", "ref_id", "parent_ref", "order_id", "amount", "currency",
			"gateway", "method", "status", "complete", "comment", "created_at").
		Values(entry.ID, entry.RefID, nullable(entry.ParentRef), nullable(entry.OrderID),
			entry.Amount.String(), entry.Currency, entry.Gateway, entry.Method, entry.Status,
			entry.Complete, nullable(entry.Comment), entry.CreatedAt).
		Suffix("ON CONFLICT (ref_id) DO NOTHING").
		ToSql()
	if err != nil {
		return payment.Entry{}, fmt.Errorf("build insert payment query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if postgres.IsPgErrorUniqueViolation(err) {
		return payment.Entry{}, payment.ErrDuplicateReference
	}
	if err != nil {
		return payment.Entry{}, fmt.Errorf("insert payment %s: %w", entry.RefID, err)
	}
	if tag.RowsAffected() == 0 {
		return payment.Entry{}, payment.ErrDuplicateReference
	}

	return entry, nil
}

func (r *Repo) GetEntries(ctx context.Context, orderID string) ([]payment.Entry, error) {
	query, args, err := r.builder.Select(entryColumns...).
		From("payments").
		Where(squirrel.Eq{"order_id": orderID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get payments query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}

	entries, err := parseEntryRows(rows)
	if err != nil {
		return nil, fmt.Errorf("parse payments: %w", err)
	}
	return entries, nil
}
