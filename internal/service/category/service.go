package category

import (
	"context"

	"shopfront/internal/domain"
	categoryrepo "shopfront/internal/repository/category"
)

type Service struct {
	repo categoryrepo.Repository
}

func New(repo categoryrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.CategoryInfo, error) {
	return s.repo.List(ctx)
}

// Exists reports whether id names a known category.
func (s *Service) Exists(ctx context.Context, id domain.Category) (bool, error) {
	cats, err := s.repo.List(ctx)
	if err != nil {
		return false, err
	}
	for _, c := range cats {
		if c.ID == id {
			return true, nil
		}
	}
	return false, nil
}
