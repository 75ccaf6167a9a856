package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestIdempotencyGuard(t *testing.T) {
	ctx := context.Background()

	t.Run("IsUnique reflects ledger lookup", func(t *testing.T) {
		ledger := NewMockLedgerRepo(gomock.NewController(t))
		guard := NewIdempotencyGuard(ledger)

		ledger.EXPECT().FindByReference(ctx, "pi_new").Return(nil, nil)
		ledger.EXPECT().FindByReference(ctx, "pi_old").Return(&Entry{RefID: "pi_old"}, nil)
		ledger.EXPECT().FindByReference(ctx, "pi_err").Return(nil, errors.New("timeout"))

		unique, err := guard.IsUnique(ctx, "pi_new")
		require.NoError(t, err)
		assert.True(t, unique)

		unique, err = guard.IsUnique(ctx, "pi_old")
		require.NoError(t, err)
		assert.False(t, unique)

		_, err = guard.IsUnique(ctx, "pi_err")
		assert.Error(t, err)
	})

	t.Run("Claim rejects entries without reference", func(t *testing.T) {
		guard := NewIdempotencyGuard(NewMockLedgerRepo(gomock.NewController(t)))

		_, err := guard.Claim(ctx, nil, NewEntry{})

		assert.ErrorIs(t, err, ErrInvalidEntry)
	})

	t.Run("Claim surfaces lost race as ErrAlreadyClaimed", func(t *testing.T) {
		ledger := NewMockLedgerRepo(gomock.NewController(t))
		guard := NewIdempotencyGuard(ledger)
		ledger.EXPECT().InsertEntry(ctx, gomock.Any()).Return(Entry{}, ErrDuplicateReference)

		_, err := guard.Claim(ctx, nil, NewEntry{RefID: "pi_1"})

		assert.ErrorIs(t, err, ErrAlreadyClaimed)
	})
}
