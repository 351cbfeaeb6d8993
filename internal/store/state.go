package store

import (
	"encoding/json"
	"fmt"
	"slices"

	"shopfront/internal/domain"
)

// SchemaVersion tags every persisted blob. Blobs carrying any other version
// are rejected on load.
const SchemaVersion = 1

// State is the full content of a shopping session.
type State struct {
	IsAuthenticated bool              `json:"isAuthenticated"`
	User            *domain.User      `json:"user"`
	Cart            []domain.CartItem `json:"cart"`
	Wishlist        []domain.Product  `json:"wishlist"`
	ExchangeProduct *domain.Product   `json:"exchangeProduct"`
	SavedAddress    *domain.Address   `json:"savedAddress"`
	Orders          []domain.Order    `json:"orders"`
}

type snapshot struct {
	Version int `json:"version"`
	State
}

// Encode serializes s with the current schema version.
func Encode(s State) ([]byte, error) {
	return json.Marshal(snapshot{Version: SchemaVersion, State: s.normalized()})
}

// Decode parses a persisted blob and rejects duplicate ids or bad quantities.
func Decode(blob []byte) (State, error) {
	var snap snapshot
	if err := json.Unmarshal(blob, &snap); err != nil {
		return State{}, fmt.Errorf("decode state: %w", err)
	}
	if snap.Version != SchemaVersion {
		return State{}, fmt.Errorf("%w: %d", domain.ErrUnsupportedVersion, snap.Version)
	}
	if err := snap.State.validate(); err != nil {
		return State{}, err
	}
	return snap.State.normalized(), nil
}

func (s State) validate() error {
	seen := make(map[string]struct{}, len(s.Cart))
	for _, item := range s.Cart {
		if item.Product.ID == "" {
			return fmt.Errorf("invalid state: cart item without product id")
		}
		if item.Quantity < 1 {
			return fmt.Errorf("invalid state: quantity %d for %s", item.Quantity, item.Product.ID)
		}
		if _, dup := seen[item.Product.ID]; dup {
			return fmt.Errorf("invalid state: duplicate cart entry %s", item.Product.ID)
		}
		seen[item.Product.ID] = struct{}{}
	}
	clear(seen)
	for _, p := range s.Wishlist {
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("invalid state: duplicate wishlist entry %s", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	if s.IsAuthenticated && s.User == nil {
		return fmt.Errorf("invalid state: authenticated without user")
	}
	return nil
}

// normalized replaces nil slices with empty ones so encoded state is stable.
func (s State) normalized() State {
	if s.Cart == nil {
		s.Cart = []domain.CartItem{}
	}
	if s.Wishlist == nil {
		s.Wishlist = []domain.Product{}
	}
	if s.Orders == nil {
		s.Orders = []domain.Order{}
	}
	return s
}

// clone returns a copy that shares no slices or pointers with s.
func (s State) clone() State {
	out := State{
		IsAuthenticated: s.IsAuthenticated,
		Cart:            slices.Clone(s.Cart),
		Wishlist:        slices.Clone(s.Wishlist),
	}
	if s.Orders != nil {
		out.Orders = make([]domain.Order, len(s.Orders))
		for i, o := range s.Orders {
			out.Orders[i] = cloneOrder(o)
		}
	}
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	if s.ExchangeProduct != nil {
		p := *s.ExchangeProduct
		out.ExchangeProduct = &p
	}
	if s.SavedAddress != nil {
		a := *s.SavedAddress
		out.SavedAddress = &a
	}
	return out.normalized()
}
