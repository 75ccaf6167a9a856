package payment

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MethodRefund = "refund"
	MethodAudit  = "audit"
)

// Entry is an immutable ledger row. RefID is unique across the ledger.
type Entry struct {
	ID        uuid.UUID       `json:"id"`
	RefID     string          `json:"ref_id"`
	ParentRef string          `json:"parent_ref,omitempty"`
	OrderID   string          `json:"order_id,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Gateway   string          `json:"gateway"`
	Method    string          `json:"method"`
	Status    string          `json:"status"`
	Complete  bool            `json:"complete"`
	Comment   string          `json:"comment,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewEntry is what gets inserted; ID and CreatedAt are assigned by the store.
type NewEntry struct {
	RefID     string
	ParentRef string
	OrderID   string
	Amount    decimal.Decimal
	Currency  string
	Gateway   string
	Method    string
	Status    string
	Complete  bool
	Comment   string
}

func (e NewEntry) Validate() error {
	if e.RefID == "" {
		return fmt.Errorf("%w: empty ref_id", ErrInvalidEntry)
	}
	if e.Method == MethodRefund && e.ParentRef == "" {
		return fmt.Errorf("%w: refund %s without parent_ref", ErrInvalidEntry, e.RefID)
	}
	return nil
}
