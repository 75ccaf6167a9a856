// Package paymenttest provides an in-memory payment.Store with the same
// uniqueness and monotonic-transition guarantees as the Postgres store.
package paymenttest

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"PaymentWebhooks/internal/domain/order"
	"PaymentWebhooks/internal/domain/payment"

	"github.com/google/uuid"
)

// Store serializes transactions behind one mutex and restores a snapshot
// when fn fails.
type Store struct {
	mu      sync.Mutex
	orders  map[string]order.Order
	entries map[string]payment.Entry
	order   []string
	failure error
}

var _ payment.Store = (*Store)(nil)

// ErrForeignKey mirrors the payments.order_id reference to orders.
var ErrForeignKey = errors.New("entry references a missing order")

func NewStore(orders ...order.Order) *Store {
	s := &Store{
		orders:  make(map[string]order.Order),
		entries: make(map[string]payment.Entry),
	}
	for _, o := range orders {
		s.orders[o.ID] = o
	}
	return s
}

// Fail makes every subsequent call return err until Fail(nil).
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = err
}

func (s *Store) Order(id string) order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[id]
}

// Entries returns all ledger entries in insertion order.
func (s *Store) Entries() []payment.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]payment.Entry, 0, len(s.order))
	for _, ref := range s.order {
		out = append(out, s.entries[ref])
	}
	return out
}

func (s *Store) InTransaction(ctx context.Context, fn func(tx payment.TxRepo) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return s.failure
	}

	orders, entries, seq := maps.Clone(s.orders), maps.Clone(s.entries), slices.Clone(s.order)
	if err := fn(&tx{s: s}); err != nil {
		s.orders, s.entries, s.order = orders, entries, seq
		return err
	}
	return nil
}

func (s *Store) GetOrder(ctx context.Context, id string) (order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&tx{s: s}).GetOrder(ctx, id)
}

func (s *Store) SetGatewayRef(ctx context.Context, id, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&tx{s: s}).SetGatewayRef(ctx, id, ref)
}

func (s *Store) AdvanceStatus(ctx context.Context, id string, status order.Status) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&tx{s: s}).AdvanceStatus(ctx, id, status)
}

func (s *Store) SetAddressIfEmpty(ctx context.Context, id string, addr order.Address) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&tx{s: s}).SetAddressIfEmpty(ctx, id, addr)
}

func (s *Store) FindByReference(ctx context.Context, ref string) (*payment.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&tx{s: s}).FindByReference(ctx, ref)
}

func (s *Store) InsertEntry(ctx context.Context, e payment.NewEntry) (payment.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&tx{s: s}).InsertEntry(ctx, e)
}

func (s *Store) GetEntries(ctx context.Context, orderID string) ([]payment.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&tx{s: s}).GetEntries(ctx, orderID)
}

// tx operates on the store with s.mu already held.
type tx struct {
	s *Store
}

func (t *tx) GetOrder(_ context.Context, id string) (order.Order, error) {
	if t.s.failure != nil {
		return order.Order{}, t.s.failure
	}
	o, ok := t.s.orders[id]
	if !ok {
		return order.Order{}, order.ErrNotFound
	}
	if o.Address != nil {
		addr := *o.Address
		o.Address = &addr
	}
	return o, nil
}

func (t *tx) SetGatewayRef(_ context.Context, id, ref string) error {
	if t.s.failure != nil {
		return t.s.failure
	}
	o, ok := t.s.orders[id]
	if !ok {
		return order.ErrNotFound
	}
	o.GatewayRef = ref
	o.UpdatedAt = time.Now()
	t.s.orders[id] = o
	return nil
}

func (t *tx) AdvanceStatus(_ context.Context, id string, status order.Status) (bool, error) {
	if t.s.failure != nil {
		return false, t.s.failure
	}
	o, ok := t.s.orders[id]
	if !ok || !o.Status.CanAdvanceTo(status) {
		return false, nil
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	t.s.orders[id] = o
	return true, nil
}

func (t *tx) SetAddressIfEmpty(_ context.Context, id string, addr order.Address) (bool, error) {
	if t.s.failure != nil {
		return false, t.s.failure
	}
	o, ok := t.s.orders[id]
	if !ok || o.HasAddress() {
		return false, nil
	}
	o.Address = &addr
	o.UpdatedAt = time.Now()
	t.s.orders[id] = o
	return true, nil
}

func (t *tx) FindByReference(_ context.Context, ref string) (*payment.Entry, error) {
	if t.s.failure != nil {
		return nil, t.s.failure
	}
	e, ok := t.s.entries[ref]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (t *tx) InsertEntry(_ context.Context, e payment.NewEntry) (payment.Entry, error) {
	if t.s.failure != nil {
		return payment.Entry{}, t.s.failure
	}
	if _, ok := t.s.entries[e.RefID]; ok {
		return payment.Entry{}, payment.ErrDuplicateReference
	}
	if _, ok := t.s.orders[e.OrderID]; e.OrderID != "" && !ok {
		return payment.Entry{}, fmt.Errorf("%w: order %s", ErrForeignKey, e.OrderID)
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
	t.s.entries[e.RefID] = entry
	t.s.order = append(t.s.order, e.RefID)
	return entry, nil
}

func (t *tx) GetEntries(_ context.Context, orderID string) ([]payment.Entry, error) {
	if t.s.failure != nil {
		return nil, t.s.failure
	}
	var out []payment.Entry
	for _, ref := range t.s.order {
		if e := t.s.entries[ref]; e.OrderID == orderID {
			out = append(out, e)
		}
	}
	return out, nil
}

// Completer counts purchase completions per order.
type Completer struct {
	mu    sync.Mutex
	calls map[string]int
	Err   error
}

func NewCompleter() *Completer {
	return &Completer{calls: make(map[string]int)}
}

func (c *Completer) CompletePurchase(_ context.Context, o order.Order) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.calls[o.ID]++
	return nil
}

func (c *Completer) Calls(orderID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[orderID]
}
