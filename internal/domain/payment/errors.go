package payment

import "errors"

var (
	// ErrDuplicateReference means the ledger already holds an entry for the
	// reference. Webhook processing acknowledges it as a duplicate.
	ErrDuplicateReference = errors.New("payment reference already recorded")
	ErrAlreadyClaimed     = ErrDuplicateReference

	ErrOriginalPaymentNotFound = errors.New("original payment not found")
	ErrInvalidEntry            = errors.New("invalid ledger entry")
)
