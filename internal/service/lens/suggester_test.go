package lens

import (
	"context"
	"testing"
	"time"

	"shopfront/internal/domain"
	productrepo "shopfront/internal/repository/product"
	productsvc "shopfront/internal/service/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestSamplesAllowedCategories(t *testing.T) {
	s := NewRandomSuggester(productsvc.New(productrepo.NewStatic(nil)), 0)

	for i := 0; i < 20; i++ {
		got, err := s.Suggest(context.Background())
		require.NoError(t, err)
		assert.Len(t, got, DefaultLimit)

		seen := map[string]bool{}
		for _, p := range got {
			assert.Contains(t, DefaultCategories, p.Category)
			assert.False(t, seen[p.ID], "duplicate %s", p.ID)
			seen[p.ID] = true
		}
	}
}

func TestSuggestShortPool(t *testing.T) {
	repo := productrepo.NewStatic([]domain.Product{
		{ID: "f1", Category: domain.CategoryFashion},
		{ID: "g1", Category: domain.CategoryGadgets},
	})
	got, err := NewRandomSuggester(productsvc.New(repo), 0).Suggest(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "f1", got[0].ID)
}

func TestSuggestCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, err := NewRandomSuggester(productsvc.New(productrepo.NewStatic(nil)), time.Hour).Suggest(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, got)
}

func TestSuggesterInterface(t *testing.T) {
	var _ Suggester = (*RandomSuggester)(nil)
}
