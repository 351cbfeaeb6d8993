package product

import (
	"context"
	"maps"
	"slices"

	"shopfront/internal/domain"
)

type staticRepo struct {
	products []domain.Product
	byID     map[string]int
}

// NewStatic returns a Repository over a fixed product list. A nil list uses the
// compiled-in catalog.
func NewStatic(products []domain.Product) Repository {
	if products == nil {
		products = catalog
	}
	idx := make(map[string]int, len(products))
	for i, p := range products {
		idx[p.ID] = i
	}
	return &staticRepo{products: products, byID: idx}
}

func (r *staticRepo) List(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, clone(p))
	}
	return out, nil
}

func (r *staticRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p := clone(r.products[i])
	return &p, nil
}

// clone keeps callers from mutating the shared catalog through map or slice fields.
func clone(p domain.Product) domain.Product {
	p.Specifications = maps.Clone(p.Specifications)
	p.Reviews = slices.Clone(p.Reviews)
	return p
}
