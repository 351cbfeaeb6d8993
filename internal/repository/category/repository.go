package category

import (
	"context"

	"shopfront/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.CategoryInfo, error)
}

type staticRepo struct {
	categories []domain.CategoryInfo
}

// NewStatic returns the compiled-in category list in display order.
func NewStatic() Repository {
	return &staticRepo{categories: []domain.CategoryInfo{
		{ID: domain.CategoryGadgets, Name: "Gadgets"},
		{ID: domain.CategoryElectronics, Name: "Electronics"},
		{ID: domain.CategorySports, Name: "Sports"},
		{ID: domain.CategoryFashion, Name: "Fashion"},
		{ID: domain.CategoryBeauty, Name: "Beauty"},
		{ID: domain.CategoryHome, Name: "Home"},
	}}
}

func (r *staticRepo) List(_ context.Context) ([]domain.CategoryInfo, error) {
	out := make([]domain.CategoryInfo, len(r.categories))
	copy(out, r.categories)
	return out, nil
}
