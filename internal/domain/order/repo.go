package order

import "context"

//go:generate mockgen -source repo.go -destination mock_repo.go -package order

// Repo is the order collaborator used by webhook processing. Implementations
// apply every mutation as a single statement.
type Repo interface {
	// GetOrder returns ErrNotFound for unknown ids.
	GetOrder(ctx context.Context, id string) (Order, error)
	SetGatewayRef(ctx context.Context, id, ref string) error
	// AdvanceStatus moves the order to status only from one of
	// Predecessors(status) and reports whether the row changed.
	AdvanceStatus(ctx context.Context, id string, status Status) (bool, error)
	// SetAddressIfEmpty stores addr unless the order already has one.
	SetAddressIfEmpty(ctx context.Context, id string, addr Address) (bool, error)
}
