// Package lens answers a camera capture with product suggestions.
//
// RandomSuggester is a placeholder. It performs no image analysis and is not a
// computer-vision system: it samples the catalog at random from a fixed set of
// categories. A real engine can replace it behind the Suggester interface.
package lens

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"shopfront/internal/domain"
	"shopfront/internal/simulate"
)

const (
	DefaultDelay = 2500 * time.Millisecond
	DefaultLimit = 4
)

// DefaultCategories are the sections RandomSuggester samples from.
var DefaultCategories = []domain.Category{
	domain.CategoryFashion,
	domain.CategoryBeauty,
	domain.CategorySports,
}

// Suggester returns products resembling a capture.
type Suggester interface {
	Suggest(ctx context.Context) ([]domain.Product, error)
}

type catalog interface {
	InCategories(ctx context.Context, categories ...domain.Category) ([]domain.Product, error)
}

type RandomSuggester struct {
	catalog    catalog
	delay      time.Duration
	limit      int
	categories []domain.Category
	shuffle    func(n int, swap func(i, j int))
}

func NewRandomSuggester(catalog catalog, delay time.Duration) *RandomSuggester {
	return &RandomSuggester{
		catalog:    catalog,
		delay:      delay,
		limit:      DefaultLimit,
		categories: DefaultCategories,
		shuffle:    rand.Shuffle,
	}
}

// Suggest waits out the simulated analysis, then returns up to four random
// products. Nothing is returned when ctx ends first, so a dismissed capture
// never delivers a late result.
func (s *RandomSuggester) Suggest(ctx context.Context) ([]domain.Product, error) {
	if err := simulate.Wait(ctx, s.delay); err != nil {
		return nil, fmt.Errorf("lens: %w", err)
	}
	pool, err := s.catalog.InCategories(ctx, s.categories...)
	if err != nil {
		return nil, err
	}
	s.shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > s.limit {
		pool = pool[:s.limit]
	}
	return pool, nil
}
