package payment

import (
	"context"

	"PaymentWebhooks/internal/domain/order"
)

//go:generate mockgen -source store.go -destination mock_store.go -package payment

type LedgerRepo interface {
	// FindByReference returns nil, nil when ref is unknown.
	FindByReference(ctx context.Context, ref string) (*Entry, error)
	// InsertEntry returns ErrDuplicateReference when ref_id is taken.
	InsertEntry(ctx context.Context, e NewEntry) (Entry, error)
	GetEntries(ctx context.Context, orderID string) ([]Entry, error)
}

// TxRepo is everything a webhook unit of work touches.
type TxRepo interface {
	order.Repo
	LedgerRepo
}

type Store interface {
	TxRepo
	InTransaction(ctx context.Context, fn func(tx TxRepo) error) error
}

// PurchaseCompleter hands a paid order over to fulfillment. It is invoked at
// most once per order, by the unit of work that moved it to processing.
type PurchaseCompleter interface {
	CompletePurchase(ctx context.Context, o order.Order) error
}
