package product

import (
	"context"

	"shopfront/internal/domain"
)

// Repository is a read-only product source.
type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}
