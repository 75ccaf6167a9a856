package ledger_repo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"PaymentWebhooks/internal/domain/payment"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const (
	selectColumns = `SELECT id, ref_id, COALESCE(parent_ref, ''), COALESCE(order_id, ''), amount::text, currency, gateway, method, status, complete, COALESCE(comment, ''), created_at FROM payments`
	insertSQL     = `INSERT INTO payments (id,ref_id,parent_ref,order_id,amount,currency,gateway,method,status,complete,comment,created_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12) ON CONFLICT (ref_id) DO NOTHING`
)

func entryRows(mock pgxmock.PgxPoolIface) *pgxmock.Rows {
	return mock.NewRows([]string{"id", "ref_id", "parent_ref", "order_id", "amount", "currency",
		"gateway", "method", "status", "complete", "comment", "created_at"})
}

func TestFindByReference(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := New(mock, testBuilder)
	ctx := context.Background()
	sql := regexp.QuoteMeta(selectColumns + ` WHERE ref_id = $1`)

	t.Run("should return stored entry", func(t *testing.T) {
		// given
		id := uuid.New()
		rows := entryRows(mock).AddRow(id, "pi_1", "", "ord_1", "49.9900", "EUR",
			"stripe", "card", "succeeded", true, "", time.Now())
		mock.ExpectQuery(sql).WithArgs("pi_1").WillReturnRows(rows)

		// when
		e, err := repo.FindByReference(ctx, "pi_1")

		// then
		require.NoError(t, err)
		require.NotNil(t, e)
		assert.Equal(t, id, e.ID)
		assert.Equal(t, "ord_1", e.OrderID)
		assert.True(t, decimal.RequireFromString("49.99").Equal(e.Amount))
		assert.True(t, e.Complete)
	})

	t.Run("should return nil for unknown reference", func(t *testing.T) {
		mock.ExpectQuery(sql).WithArgs("pi_unknown").WillReturnRows(entryRows(mock))

		e, err := repo.FindByReference(ctx, "pi_unknown")

		require.NoError(t, err)
		assert.Nil(t, e)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertEntry(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := New(mock, testBuilder)
	ctx := context.Background()
	sql := regexp.QuoteMeta(insertSQL)

	refund := payment.NewEntry{
		RefID:     "re_1",
		ParentRef: "pi_1",
		OrderID:   "ord_1",
		Amount:    decimal.RequireFromString("-20.5"),
		Currency:  "EUR",
		Gateway:   "stripe",
		Method:    payment.MethodRefund,
		Status:    "succeeded",
		Complete:  true,
	}

	t.Run("should insert entry and assign id", func(t *testing.T) {
		// given
		mock.ExpectExec(sql).
			WithArgs(pgxmock.AnyArg(), "re_1", "pi_1", "ord_1", "-20.5", "EUR", "stripe",
				payment.MethodRefund, "succeeded", true, nil, pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		// when
		e, err := repo.InsertEntry(ctx, refund)

		// then
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, e.ID)
		assert.Equal(t, "re_1", e.RefID)
		assert.False(t, e.CreatedAt.IsZero())
	})

	t.Run("should report duplicate when conflict skipped the insert", func(t *testing.T) {
		mock.ExpectExec(sql).WillReturnResult(pgxmock.NewResult("INSERT", 0))

		_, err := repo.InsertEntry(ctx, refund)

		assert.ErrorIs(t, err, payment.ErrDuplicateReference)
	})

	t.Run("should map unique violation to duplicate", func(t *testing.T) {
		mock.ExpectExec(sql).WillReturnError(&pgconn.PgError{Code: "23505"})

		_, err := repo.InsertEntry(ctx, refund)

		assert.ErrorIs(t, err, payment.ErrDuplicateReference)
	})

	t.Run("should wrap other database errors", func(t *testing.T) {
		mock.ExpectExec(sql).WillReturnError(errors.New("disk full"))

		_, err := repo.InsertEntry(ctx, refund)

		require.Error(t, err)
		assert.NotErrorIs(t, err, payment.ErrDuplicateReference)
		assert.Contains(t, err.Error(), "insert payment re_1")
	})

	t.Run("should validate before touching the database", func(t *testing.T) {
		invalid := refund
		invalid.ParentRef = ""

		_, err := repo.InsertEntry(ctx, invalid)

		assert.ErrorIs(t, err, payment.ErrInvalidEntry)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetEntries(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := New(mock, testBuilder)
	ctx := context.Background()

	// given
	now := time.Now()
	rows := entryRows(mock).
		AddRow(uuid.New(), "pi_1", "", "ord_1", "100.0000", "USD", "stripe", "card", "succeeded", true, "", now).
		AddRow(uuid.New(), "re_1", "pi_1", "ord_1", "-100.0000", "USD", "stripe", "refund", "succeeded", true, "", now.Add(time.Minute))
	mock.ExpectQuery(regexp.QuoteMeta(selectColumns + ` WHERE order_id = $1 ORDER BY created_at ASC, id ASC`)).
		WithArgs("ord_1").
		WillReturnRows(rows)

	// when
	entries, err := repo.GetEntries(ctx, "ord_1")

	// then
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "pi_1", entries[0].RefID)
	assert.Equal(t, "pi_1", entries[1].ParentRef)
	assert.True(t, decimal.RequireFromString("-100").Equal(entries[1].Amount))
	require.NoError(t, mock.ExpectationsWereMet())
}
