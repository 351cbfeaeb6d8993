package httpserver

import (
	"net/http"
	"strings"

	"shopfront/internal/domain"

	"github.com/gin-gonic/gin"
)

const maxExchangeCandidates = 5

func listCategoriesHandler(svc categoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cats, err := svc.List(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": cats})
	}
}

// listProductsHandler serves the whole catalog, one category, or a search.
// A search takes precedence when both filters are given.
func listProductsHandler(products productService, categories categoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		query := strings.TrimSpace(c.Query("q"))
		category := domain.Category(strings.TrimSpace(c.Query("category")))

		var (
			result []domain.Product
			err    error
		)
		switch {
		case query != "":
			result, err = products.Search(ctx, query)
		case category != "":
			ok, existsErr := categories.Exists(ctx, category)
			if existsErr != nil {
				writeError(c, existsErr)
				return
			}
			if !ok {
				writeError(c, domain.ErrNotFound)
				return
			}
			result, err = products.ByCategory(ctx, category)
		default:
			result, err = products.List(ctx)
		}
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": len(result), "results": toProductViews(result)})
	}
}

func getProductHandler(products productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := products.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toProductView(*p))
	}
}

// exchangeCandidatesHandler lists other products that carry a trade-in value.
func exchangeCandidatesHandler(products productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		p, err := products.Get(ctx, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		all, err := products.List(ctx)
		if err != nil {
			writeError(c, err)
			return
		}
		out := make([]domain.Product, 0, maxExchangeCandidates)
		for _, candidate := range all {
			if candidate.ExchangeValue == nil || candidate.ID == p.ID {
				continue
			}
			out = append(out, candidate)
			if len(out) == maxExchangeCandidates {
				break
			}
		}
		c.JSON(http.StatusOK, gin.H{"results": toProductViews(out)})
	}
}
