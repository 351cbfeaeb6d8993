package product

import (
	"context"
	"strings"

	"shopfront/internal/domain"
	productrepo "shopfront/internal/repository/product"
)

// Service exposes catalog lookups. The catalog has no mutation operations.
type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

// ByCategory returns products whose category equals category, in catalog order.
func (s *Service) ByCategory(ctx context.Context, category domain.Category) ([]domain.Product, error) {
	return s.filter(ctx, func(p domain.Product) bool {
		return p.Category == category
	})
}

// InCategories returns products belonging to any of the given categories.
func (s *Service) InCategories(ctx context.Context, categories ...domain.Category) ([]domain.Product, error) {
	set := make(map[domain.Category]struct{}, len(categories))
	for _, c := range categories {
		set[c] = struct{}{}
	}
	return s.filter(ctx, func(p domain.Product) bool {
		_, ok := set[p.Category]
		return ok
	})
}

// Search matches query case-insensitively as a substring of name, description
// or category. An empty query matches every product.
func (s *Service) Search(ctx context.Context, query string) ([]domain.Product, error) {
	q := strings.ToLower(query)
	return s.filter(ctx, func(p domain.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(string(p.Category)), q)
	})
}

func (s *Service) filter(ctx context.Context, keep func(domain.Product) bool) ([]domain.Product, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out, nil
}
