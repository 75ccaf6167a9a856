package order

import (
	"fmt"
	"slices"
)

type Status string

const (
	StatusNew        Status = "new"
	StatusPending    Status = "pending"
	StatusInvoiced   Status = "invoiced"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusClosed     Status = "closed"
	StatusRefunded   Status = "refunded"
)

// progression lists the forward statuses in rank order. Refunded sits
// outside it.
var progression = []Status{
	StatusNew,
	StatusPending,
	StatusInvoiced,
	StatusProcessing,
	StatusShipped,
	StatusClosed,
}

var AvailableStatuses = append(slices.Clone(progression), StatusRefunded)

func NewStatus(raw string) (Status, error) {
	if slices.Contains(AvailableStatuses, Status(raw)) {
		return Status(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

func (s Status) rank() int {
	return slices.Index(progression, s)
}

// AtLeast reports whether s has progressed to target or further. A refunded
// order counts as past every forward status.
func (s Status) AtLeast(target Status) bool {
	if s == StatusRefunded {
		return true
	}
	r, t := s.rank(), target.rank()
	return r >= 0 && t >= 0 && r >= t
}

// CanAdvanceTo reports whether moving from s to next keeps the order
// monotonic. Only the refund path may move into refunded.
func (s Status) CanAdvanceTo(next Status) bool {
	return slices.Contains(Predecessors(next), s)
}

// Predecessors returns the statuses an order may be in for a transition to
// target to apply. Every other status makes the transition a no-op.
func Predecessors(target Status) []Status {
	if target == StatusRefunded {
		return slices.Clone(progression)
	}
	r := target.rank()
	if r <= 0 {
		return nil
	}
	return slices.Clone(progression[:r])
}
