// Package store holds the shopping session: sign-in flag, cart, wishlist,
// exchange selection, delivery address and order history. Every mutation is
// written through to a session repository; when a write fails the store keeps
// working in memory for the rest of its life and stops writing.
package store

import (
	"context"
	"errors"
	"slices"
	"sync"

	"shopfront/internal/domain"
	sessionrepo "shopfront/internal/repository/session"

	"go.uber.org/zap"
)

// Observer receives store events. telemetry.Metrics satisfies it.
type Observer interface {
	CartMutated(op string)
	PersistFailed()
	StateRejected()
}

type nopObserver struct{}

func (nopObserver) CartMutated(string) {}
func (nopObserver) PersistFailed()     {}
func (nopObserver) StateRejected()     {}

type Store struct {
	mu       sync.RWMutex
	key      string
	repo     sessionrepo.Repository
	logger   *zap.Logger
	observer Observer
	degraded bool
	state    State
}

type Option func(*Store)

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(s *Store) {
		if o != nil {
			s.observer = o
		}
	}
}

// Open rehydrates the store saved under key. A missing blob starts an empty
// session. A blob that cannot be decoded is discarded. A repository read error
// puts the store in memory-only mode so it never overwrites state it could not read.
func Open(ctx context.Context, key string, repo sessionrepo.Repository, opts ...Option) *Store {
	s := &Store{
		key:      key,
		repo:     repo,
		logger:   zap.NewNop(),
		observer: nopObserver{},
		state:    State{}.normalized(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("key", key))

	if repo == nil {
		s.degraded = true
		return s
	}
	if err := s.reloadLocked(ctx); err != nil {
		s.degraded = true
		s.observer.PersistFailed()
		s.logger.Warn("store: load failed, continuing in memory only", zap.Error(err))
	}
	return s
}

// Refresh replaces the in-memory state with the persisted blob so a write made
// by another process is not overwritten by the next mutation. A degraded store
// keeps its memory state. A failed read keeps the current state.
func (s *Store) Refresh(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.degraded {
		return
	}
	if err := s.reloadLocked(ctx); err != nil {
		s.logger.Warn("store: refresh failed, serving cached state", zap.Error(err))
	}
}

// reloadLocked reads and decodes the blob. Only a repository error is
// returned; the state is untouched in that case.
func (s *Store) reloadLocked(ctx context.Context) error {
	blob, err := s.repo.Load(ctx, s.key)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.state = State{}.normalized()
	case err != nil:
		return err
	default:
		st, err := Decode(blob)
		if err != nil {
			s.observer.StateRejected()
			s.logger.Warn("store: discarding persisted state", zap.Error(err))
			st = State{}.normalized()
		}
		s.state = st
	}
	return nil
}

// Key is the repository key the store persists under.
func (s *Store) Key() string {
	return s.key
}

// Degraded reports whether writes to the repository have been abandoned.
func (s *Store) Degraded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.degraded
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// mutate applies fn under the write lock and then persists the result.
func (s *Store) mutate(ctx context.Context, fn func(st *State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
	s.persistLocked(ctx)
}

func (s *Store) persistLocked(ctx context.Context) {
	if s.degraded {
		return
	}
	blob, err := Encode(s.state)
	if err == nil {
		err = s.repo.Save(ctx, s.key, blob)
	}
	if err != nil {
		s.degraded = true
		s.observer.PersistFailed()
		s.logger.Warn("store: persist failed, continuing in memory only", zap.Error(err))
	}
}

// Session

func (s *Store) Login(ctx context.Context, user domain.User) {
	s.mutate(ctx, func(st *State) {
		st.IsAuthenticated = true
		st.User = &user
	})
}

func (s *Store) Logout(ctx context.Context) {
	s.mutate(ctx, func(st *State) {
		st.IsAuthenticated = false
		st.User = nil
	})
}

// User returns the signed-in user, or nil for a guest.
func (s *Store) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.state.IsAuthenticated || s.state.User == nil {
		return nil
	}
	u := *s.state.User
	return &u
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsAuthenticated
}

// Cart

// AddToCart increments the entry for product.ID or appends one with quantity 1.
// Stock is informational and never blocks the add.
func (s *Store) AddToCart(ctx context.Context, product domain.Product) {
	s.mutate(ctx, func(st *State) {
		if i := cartIndex(st.Cart, product.ID); i >= 0 {
			st.Cart[i].Quantity++
			return
		}
		st.Cart = append(st.Cart, domain.CartItem{Product: product, Quantity: 1})
	})
	s.observer.CartMutated("add")
}

func (s *Store) RemoveFromCart(ctx context.Context, productID string) {
	s.mutate(ctx, func(st *State) {
		st.Cart = slices.DeleteFunc(st.Cart, func(item domain.CartItem) bool {
			return item.Product.ID == productID
		})
	})
	s.observer.CartMutated("remove")
}

// UpdateQuantity sets the quantity of an existing entry. A quantity of zero or
// less removes the entry. An absent productID is ignored.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveFromCart(ctx, productID)
		return
	}
	s.mutate(ctx, func(st *State) {
		if i := cartIndex(st.Cart, productID); i >= 0 {
			st.Cart[i].Quantity = quantity
		}
	})
	s.observer.CartMutated("update")
}

func (s *Store) ClearCart(ctx context.Context) {
	s.mutate(ctx, func(st *State) {
		st.Cart = []domain.CartItem{}
	})
	s.observer.CartMutated("clear")
}

func (s *Store) Cart() []domain.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.state.Cart)
}

// CartItem returns the entry for productID.
func (s *Store) CartItem(productID string) (domain.CartItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := cartIndex(s.state.Cart, productID); i >= 0 {
		return s.state.Cart[i], true
	}
	return domain.CartItem{}, false
}

// CartTotal is the subtotal minus the exchange discount, floored at zero.
// Delivery fees are not included.
func (s *Store) CartTotal() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var discount int64
	if s.state.ExchangeProduct != nil {
		discount = s.state.ExchangeProduct.ExchangeDiscount()
	}
	return max(0, domain.Subtotal(s.state.Cart)-discount)
}

// CartCount is the sum of all quantities.
func (s *Store) CartCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, item := range s.state.Cart {
		count += item.Quantity
	}
	return count
}

func cartIndex(cart []domain.CartItem, productID string) int {
	return slices.IndexFunc(cart, func(item domain.CartItem) bool {
		return item.Product.ID == productID
	})
}

// Wishlist

// AddToWishlist adds product unless an entry with the same id exists.
func (s *Store) AddToWishlist(ctx context.Context, product domain.Product) {
	s.mutate(ctx, func(st *State) {
		if wishlistIndex(st.Wishlist, product.ID) < 0 {
			st.Wishlist = append(st.Wishlist, product)
		}
	})
}

func (s *Store) RemoveFromWishlist(ctx context.Context, productID string) {
	s.mutate(ctx, func(st *State) {
		st.Wishlist = slices.DeleteFunc(st.Wishlist, func(p domain.Product) bool {
			return p.ID == productID
		})
	})
}

func (s *Store) IsInWishlist(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return wishlistIndex(s.state.Wishlist, productID) >= 0
}

func (s *Store) Wishlist() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.state.Wishlist)
}

func wishlistIndex(list []domain.Product, productID string) int {
	return slices.IndexFunc(list, func(p domain.Product) bool {
		return p.ID == productID
	})
}

// Exchange

// SetExchangeProduct replaces the exchange selection. nil clears it.
func (s *Store) SetExchangeProduct(ctx context.Context, product *domain.Product) {
	var selected *domain.Product
	if product != nil {
		p := *product
		selected = &p
	}
	s.mutate(ctx, func(st *State) {
		st.ExchangeProduct = selected
	})
}

func (s *Store) ExchangeProduct() *domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.ExchangeProduct == nil {
		return nil
	}
	p := *s.state.ExchangeProduct
	return &p
}

// Address

func (s *Store) SetSavedAddress(ctx context.Context, address domain.Address) {
	s.mutate(ctx, func(st *State) {
		st.SavedAddress = &address
	})
}

func (s *Store) SavedAddress() *domain.Address {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.SavedAddress == nil {
		return nil
	}
	a := *s.state.SavedAddress
	return &a
}

// Orders

// AddOrder appends order to the history. Orders are never changed or removed.
func (s *Store) AddOrder(ctx context.Context, order domain.Order) {
	order.Items = slices.Clone(order.Items)
	s.mutate(ctx, func(st *State) {
		st.Orders = append(st.Orders, order)
	})
}

func (s *Store) Orders() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Order, len(s.state.Orders))
	for i, o := range s.state.Orders {
		out[i] = cloneOrder(o)
	}
	return out
}

// Order looks up a past order by id.
func (s *Store) Order(id string) (domain.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.state.Orders {
		if o.ID == id {
			return cloneOrder(o), true
		}
	}
	return domain.Order{}, false
}

func cloneOrder(o domain.Order) domain.Order {
	o.Items = slices.Clone(o.Items)
	return o
}
