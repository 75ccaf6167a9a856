package payment

import (
	"context"
	"fmt"
)

// IdempotencyGuard decides whether a reference was already processed. The
// unique index on ref_id is the authority; IsUnique is only a hint.
type IdempotencyGuard struct {
	ledger LedgerRepo
}

func NewIdempotencyGuard(ledger LedgerRepo) *IdempotencyGuard {
	return &IdempotencyGuard{ledger: ledger}
}

func (g *IdempotencyGuard) IsUnique(ctx context.Context, ref string) (bool, error) {
	e, err := g.ledger.FindByReference(ctx, ref)
	if err != nil {
		return false, fmt.Errorf("find payment %s: %w", ref, err)
	}
	return e == nil, nil
}

// Claim inserts e through ledger, which is usually the caller's transaction.
// A lost race surfaces as ErrAlreadyClaimed.
func (g *IdempotencyGuard) Claim(ctx context.Context, ledger LedgerRepo, e NewEntry) (Entry, error) {
	if err := e.Validate(); err != nil {
		return Entry{}, err
	}
	if ledger == nil {
		ledger = g.ledger
	}

	entry, err := ledger.InsertEntry(ctx, e)
	if err != nil {
		return Entry{}, fmt.Errorf("claim %s: %w", e.RefID, err)
	}
	return entry, nil
}
