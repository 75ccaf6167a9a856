package payment_repo

import (
	"context"

	"PaymentWebhooks/internal/domain/order"
	"PaymentWebhooks/internal/domain/payment"
	ledger_repo "PaymentWebhooks/internal/repo/ledger"
	order_repo "PaymentWebhooks/internal/repo/order"
	"PaymentWebhooks/pkg/postgres"

	"github.com/Masterminds/squirrel"
)

// PgStore is the Postgres unit of work for webhook processing. Outside of
// InTransaction every call runs on the pool.
type PgStore struct {
	db      postgres.Transactor
	builder squirrel.StatementBuilderType
	txRepo
}

var _ payment.Store = (*PgStore)(nil)

type txRepo struct {
	order.Repo
	payment.LedgerRepo
}

func newTxRepo(db postgres.Executor, builder squirrel.StatementBuilderType) txRepo {
	return txRepo{
		Repo:       order_repo.New(db, builder),
		LedgerRepo: ledger_repo.New(db, builder),
	}
}

func NewPgStore(pg *postgres.Postgres) *PgStore {
	return newPgStore(pg.Pool, pg.Builder)
}

func newPgStore(db postgres.Transactor, builder squirrel.StatementBuilderType) *PgStore {
	return &PgStore{
		db:      db,
		builder: builder,
		txRepo:  newTxRepo(db, builder),
	}
}

func (s *PgStore) InTransaction(ctx context.Context, fn func(tx payment.TxRepo) error) error {
	return postgres.InTransaction(ctx, s.db, func(tx postgres.Executor) error {
		return fn(newTxRepo(tx, s.builder))
	})
}
