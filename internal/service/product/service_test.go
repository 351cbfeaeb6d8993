package product

import (
	"context"
	"errors"
	"testing"

	"shopfront/internal/domain"
	productrepo "shopfront/internal/repository/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	products []domain.Product
	err      error
}

func (s *stubRepo) List(_ context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func ids(products []domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestServiceByCategory(t *testing.T) {
	svc := New(productrepo.NewStatic(nil))
	got, err := svc.ByCategory(context.Background(), domain.CategoryGadgets)
	require.NoError(t, err)
	assert.Equal(t, []string{"g1", "g2"}, ids(got))

	got, err = svc.ByCategory(context.Background(), "toys")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestServiceGet(t *testing.T) {
	svc := New(productrepo.NewStatic(nil))
	p, err := svc.Get(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, "Smart Watch Pro X", p.Name)
	assert.Equal(t, int64(12999), p.Price)
	assert.Equal(t, int64(3000), p.ExchangeDiscount())

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestServiceGetReturnsCopy(t *testing.T) {
	svc := New(productrepo.NewStatic(nil))
	p, err := svc.Get(context.Background(), "g1")
	require.NoError(t, err)
	p.Specifications["Display"] = "changed"

	again, err := svc.Get(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, "1.4\" AMOLED", again.Specifications["Display"])
}

func TestServiceSearchIsCaseInsensitive(t *testing.T) {
	svc := New(&stubRepo{products: []domain.Product{
		{ID: "a", Name: "Yoga Mat", Description: "thick", Category: domain.CategorySports},
		{ID: "b", Name: "Lamp", Description: "warm YOGA light", Category: domain.CategoryHome},
		{ID: "c", Name: "Serum", Description: "glow", Category: domain.CategoryBeauty},
	}})

	got, err := svc.Search(context.Background(), "yOgA")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(got))

	got, err = svc.Search(context.Background(), "BEAUTY")
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, ids(got))

	got, err = svc.Search(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestServiceInCategories(t *testing.T) {
	svc := New(productrepo.NewStatic(nil))
	got, err := svc.InCategories(context.Background(), domain.CategoryFashion, domain.CategoryBeauty, domain.CategorySports)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"s1", "s2", "f1", "f2", "b1", "b2"}, ids(got))
}

func TestServiceRepoError(t *testing.T) {
	svc := New(&stubRepo{err: errors.New("boom")})
	_, err := svc.Search(context.Background(), "x")
	assert.EqualError(t, err, "boom")
}
