// Package seed fills a session with demo shopping state for manual testing.
package seed

import (
	"context"
	"fmt"

	"shopfront/internal/domain"
)

// Catalog resolves the demo product ids.
type Catalog interface {
	Get(ctx context.Context, id string) (*domain.Product, error)
}

// Session is the part of the shopping store the seed writes to.
type Session interface {
	Cart() []domain.CartItem
	AddToCart(ctx context.Context, product domain.Product)
	UpdateQuantity(ctx context.Context, productID string, quantity int)
	AddToWishlist(ctx context.Context, product domain.Product)
	SetExchangeProduct(ctx context.Context, product *domain.Product)
	SetSavedAddress(ctx context.Context, address domain.Address)
}

type cartSeed struct {
	ProductID string
	Quantity  int
}

var (
	demoCart = []cartSeed{
		{ProductID: "g1", Quantity: 1},
		{ProductID: "s2", Quantity: 2},
	}
	demoWishlist = []string{"f1", "b1"}
	demoExchange = "g2"

	DemoAddress = domain.Address{
		Name:    "Demo Shopper",
		Email:   "demo@example.com",
		Phone:   "9876543210",
		Address: "221 MG Road",
		City:    "Bengaluru",
		State:   "Karnataka",
		Pincode: "560001",
	}
)

// Apply writes the demo cart, wishlist, exchange item and address. A session
// that already has a cart is left untouched, so Apply is idempotent.
func Apply(ctx context.Context, catalog Catalog, sess Session) (bool, error) {
	if len(sess.Cart()) > 0 {
		return false, nil
	}

	lookup := func(id string) (domain.Product, error) {
		p, err := catalog.Get(ctx, id)
		if err != nil {
			return domain.Product{}, fmt.Errorf("lookup product %q: %w", id, err)
		}
		return *p, nil
	}

	for _, item := range demoCart {
		p, err := lookup(item.ProductID)
		if err != nil {
			return false, err
		}
		sess.AddToCart(ctx, p)
		if item.Quantity > 1 {
			sess.UpdateQuantity(ctx, p.ID, item.Quantity)
		}
	}
	for _, id := range demoWishlist {
		p, err := lookup(id)
		if err != nil {
			return false, err
		}
		sess.AddToWishlist(ctx, p)
	}
	exchange, err := lookup(demoExchange)
	if err != nil {
		return false, err
	}
	sess.SetExchangeProduct(ctx, &exchange)
	sess.SetSavedAddress(ctx, DemoAddress)
	return true, nil
}
