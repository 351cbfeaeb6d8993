package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"shopfront/internal/domain"

	"github.com/gin-gonic/gin"
)

const maxAddQuantity = 99

type addCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

type productRefRequest struct {
	ProductID string `json:"productId"`
}

func getCartHandler(quoter checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, toCartView(currentStore(c), quoter))
	}
}

// addCartItemHandler adds quantity units of a product, one addToCart per unit.
func addCartItemHandler(products productService, quoter checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "body", "invalid JSON body")
			return
		}
		if strings.TrimSpace(req.ProductID) == "" {
			badRequest(c, "productId", "productId is required")
			return
		}
		qty := 1
		if req.Quantity != nil {
			qty = *req.Quantity
		}
		if qty < 1 || qty > maxAddQuantity {
			badRequest(c, "quantity", "quantity must be between 1 and 99")
			return
		}
		p, err := products.Get(c.Request.Context(), req.ProductID)
		if err != nil {
			writeError(c, err)
			return
		}

		st := currentStore(c)
		ctx := persistCtx(c)
		for i := 0; i < qty; i++ {
			st.AddToCart(ctx, *p)
		}
		c.JSON(http.StatusOK, toCartView(st, quoter))
	}
}

// updateCartItemHandler sets a line's quantity; zero or less removes the line.
// Products not in the cart are 404.
func updateCartItemHandler(quoter checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
			badRequest(c, "quantity", "quantity is required")
			return
		}
		st := currentStore(c)
		id := c.Param("productId")
		if _, ok := st.CartItem(id); !ok {
			writeError(c, domain.ErrNotFound)
			return
		}
		st.UpdateQuantity(persistCtx(c), id, *req.Quantity)
		c.JSON(http.StatusOK, toCartView(st, quoter))
	}
}

func removeCartItemHandler(c *gin.Context) {
	currentStore(c).RemoveFromCart(persistCtx(c), c.Param("productId"))
	c.Status(http.StatusNoContent)
}

func clearCartHandler(c *gin.Context) {
	currentStore(c).ClearCart(persistCtx(c))
	c.Status(http.StatusNoContent)
}

func getWishlistHandler(c *gin.Context) {
	list := currentStore(c).Wishlist()
	c.JSON(http.StatusOK, gin.H{"count": len(list), "results": toProductViews(list)})
}

func addWishlistHandler(products productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req productRefRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.ProductID) == "" {
			badRequest(c, "productId", "productId is required")
			return
		}
		p, err := products.Get(c.Request.Context(), req.ProductID)
		if err != nil {
			writeError(c, err)
			return
		}
		st := currentStore(c)
		st.AddToWishlist(persistCtx(c), *p)
		list := st.Wishlist()
		c.JSON(http.StatusOK, gin.H{"count": len(list), "results": toProductViews(list)})
	}
}

func removeWishlistHandler(c *gin.Context) {
	currentStore(c).RemoveFromWishlist(persistCtx(c), c.Param("productId"))
	c.Status(http.StatusNoContent)
}

// moveToCartHandler adds a wishlisted product to the cart, then drops it from
// the wishlist.
func moveToCartHandler(quoter checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		st := currentStore(c)
		id := c.Param("productId")
		var product *domain.Product
		for _, p := range st.Wishlist() {
			if p.ID == id {
				product = &p
				break
			}
		}
		if product == nil {
			writeError(c, domain.ErrNotFound)
			return
		}
		ctx := persistCtx(c)
		st.AddToCart(ctx, *product)
		st.RemoveFromWishlist(ctx, id)
		c.JSON(http.StatusOK, toCartView(st, quoter))
	}
}

// setExchangeHandler selects the product traded in. It must carry an exchange value.
func setExchangeHandler(products productService, quoter checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req productRefRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.ProductID) == "" {
			badRequest(c, "productId", "productId is required")
			return
		}
		p, err := products.Get(c.Request.Context(), req.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				badRequest(c, "productId", "unknown product")
				return
			}
			writeError(c, err)
			return
		}
		if p.ExchangeValue == nil {
			badRequest(c, "productId", "product has no exchange offer")
			return
		}
		st := currentStore(c)
		st.SetExchangeProduct(persistCtx(c), p)
		c.JSON(http.StatusOK, toCartView(st, quoter))
	}
}

func clearExchangeHandler(quoter checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		st := currentStore(c)
		st.SetExchangeProduct(persistCtx(c), nil)
		c.JSON(http.StatusOK, toCartView(st, quoter))
	}
}
