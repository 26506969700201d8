package cart

import (
	"go.uber.org/zap"

	"github.com/retailedge/storekit/internal/domain"
)

// Subscriber receives the full current cart snapshot after every mutation.
type Subscriber func(items []domain.CartItem)

// Store is the single source of truth for the current cart. It keeps an
// ordered list of items unique by product ID, notifies subscribers after
// every mutation and persists to storage best-effort. The in-memory state
// is authoritative for the session; persistence failures never roll back
// a mutation.
//
// Store is not safe for concurrent use. There is exactly one writer, the
// goroutine driving the storefront session.
type Store struct {
	items   []domain.CartItem
	storage Storage
	logger  *zap.Logger
	subs    []subscription
	nextSub int
}

type subscription struct {
	id int
	fn Subscriber
}

// NewStore creates a cart store and loads any previously persisted cart.
// A missing or unreadable persisted cart falls back to an empty one and
// is never surfaced as an error.
func NewStore(storage Storage, logger *zap.Logger) *Store {
	s := &Store{
		storage: storage,
		logger:  logger,
	}

	items, err := storage.Load()
	if err != nil {
		logger.Warn("Failed to load persisted cart, starting empty", zap.Error(err))
		items = nil
	}
	s.items = items

	return s
}

// Subscribe registers a callback for cart updates and returns an
// unsubscribe function. Subscribers observe mutations in the order they
// were applied, never coalesced.
func (s *Store) Subscribe(fn Subscriber) func() {
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscription{id: id, fn: fn})

	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Add puts quantity units of product into the cart. If a line for the
// product already exists its quantity is incremented, so the cart never
// holds two lines for the same product ID. Quantities below one are
// treated as one.
//
// Stock is not checked here; callers decide whether exceeding
// product.Stock is acceptable.
func (s *Store) Add(product domain.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	merged := false
	for i := range s.items {
		if s.items[i].Product.ID == product.ID {
			s.items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, domain.CartItem{Product: product, Quantity: quantity})
	}

	s.emit()
	s.persist()
}

// Remove deletes the line for productID. Removing an absent product
// never fails; subscribers are still notified.
func (s *Store) Remove(productID string) {
	filtered := s.items[:0]
	for _, item := range s.items {
		if item.Product.ID != productID {
			filtered = append(filtered, item)
		}
	}
	s.items = filtered

	s.emit()
	s.persist()
}

// SetQuantity overwrites the quantity for productID. A quantity of zero
// or less removes the line. Unknown product IDs are a no-op.
func (s *Store) SetQuantity(productID string, quantity int) {
	for i := range s.items {
		if s.items[i].Product.ID == productID {
			if quantity <= 0 {
				s.Remove(productID)
				return
			}
			s.items[i].Quantity = quantity
			s.emit()
			s.persist()
			return
		}
	}
}

// Clear empties the cart unconditionally.
func (s *Store) Clear() {
	s.items = nil
	s.emit()
	s.persist()
}

// Items returns a copy of the current cart lines in insertion order.
func (s *Store) Items() []domain.CartItem {
	return s.snapshot()
}

// Subtotal returns the pre-tax sum of price times quantity over all lines.
func (s *Store) Subtotal() float64 {
	return s.Totals().Subtotal.InexactFloat64()
}

// Totals derives subtotal, tax and grand total from the current cart.
func (s *Store) Totals() Totals {
	return ComputeTotals(s.items)
}

// ItemCount returns the total unit count across all lines, used for the
// cart badge.
func (s *Store) ItemCount() int {
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

func (s *Store) snapshot() []domain.CartItem {
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) emit() {
	snap := s.snapshot()
	// A callback may unsubscribe itself or a peer; iterate over a copy so
	// nobody is skipped mid-emission.
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	for _, sub := range subs {
		sub.fn(snap)
	}
}

func (s *Store) persist() {
	if err := s.storage.Save(s.items); err != nil {
		// Best-effort: the session keeps its in-memory cart.
		s.logger.Warn("Failed to persist cart", zap.Error(err))
	}
}
