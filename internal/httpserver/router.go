package httpserver

import (
	"context"
	"errors"
	"time"

	"shopfront/internal/domain"
	"shopfront/internal/logger"
	"shopfront/internal/service/anonymous"
	"shopfront/internal/service/auth"
	"shopfront/internal/service/checkout"
	"shopfront/internal/service/lens"
	"shopfront/internal/store"
	"shopfront/internal/telemetry"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type productService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	ByCategory(ctx context.Context, category domain.Category) ([]domain.Product, error)
	Search(ctx context.Context, query string) ([]domain.Product, error)
}

type categoryService interface {
	List(ctx context.Context) ([]domain.CategoryInfo, error)
	Exists(ctx context.Context, id domain.Category) (bool, error)
}

type sessionService interface {
	Issue(ctx context.Context) (anonymous.Token, error)
	Refresh(ctx context.Context, token string) (anonymous.Token, error)
	LookupByToken(ctx context.Context, token string) (string, error)
}

type storeRegistry interface {
	Get(ctx context.Context, sessionID string) *store.Store
	Len() int
}

type checkoutService interface {
	Quote(cart []domain.CartItem, exchange *domain.Product) checkout.Summary
	SaveAddress(ctx context.Context, sess checkout.Session, address domain.Address) (domain.Address, error)
	PlaceOrder(ctx context.Context, sess checkout.Session, in checkout.PaymentInput) (domain.Order, error)
}

type authService interface {
	RequestCode(ctx context.Context, sessionID, email, password string) (auth.Challenge, error)
	Verify(ctx context.Context, sessionID, code string, sess auth.Session) (domain.User, error)
}

// Deps groups the services the API is built on.
type Deps struct {
	ProductSvc  productService
	CategorySvc categoryService
	SessionSvc  sessionService
	Stores      storeRegistry
	CheckoutSvc checkoutService
	AuthSvc     authService
	Lens        lens.Suggester
	Metrics     *telemetry.Metrics
	Ready       ReadyCheck
	CORSOrigins []string
}

func (d Deps) validate() error {
	switch {
	case d.ProductSvc == nil:
		return errors.New("product service is required")
	case d.CategorySvc == nil:
		return errors.New("category service is required")
	case d.SessionSvc == nil:
		return errors.New("session service is required")
	case d.Stores == nil:
		return errors.New("store registry is required")
	case d.CheckoutSvc == nil:
		return errors.New("checkout service is required")
	case d.AuthSvc == nil:
		return errors.New("auth service is required")
	case d.Lens == nil:
		return errors.New("lens suggester is required")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(log *zap.Logger, deps Deps) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(
		logger.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		deps.Metrics.Middleware(),
	)
	if len(deps.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Authorization", "Content-Type", logger.RequestIDHeader},
			ExposeHeaders:    []string{logger.RequestIDHeader},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Ready))
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	router.POST("/sessions", issueSessionHandler(deps.SessionSvc, deps.Metrics))

	router.GET("/categories", listCategoriesHandler(deps.CategorySvc))
	router.GET("/products", listProductsHandler(deps.ProductSvc, deps.CategorySvc))
	router.GET("/products/:id", getProductHandler(deps.ProductSvc))
	router.GET("/products/:id/exchange-candidates", exchangeCandidatesHandler(deps.ProductSvc))

	me := router.Group("/me", sessionMiddleware(deps.SessionSvc, deps.Stores, deps.Metrics))
	{
		me.GET("/state", stateHandler)
		me.GET("/profile", profileHandler)

		me.POST("/login/otp", requestOTPHandler(deps.AuthSvc))
		me.POST("/login/verify", verifyOTPHandler(deps.AuthSvc))
		me.POST("/logout", logoutHandler)

		me.GET("/cart", getCartHandler(deps.CheckoutSvc))
		me.POST("/cart/items", addCartItemHandler(deps.ProductSvc, deps.CheckoutSvc))
		me.PUT("/cart/items/:productId", updateCartItemHandler(deps.CheckoutSvc))
		me.DELETE("/cart/items/:productId", removeCartItemHandler)
		me.DELETE("/cart", clearCartHandler)

		me.GET("/wishlist", getWishlistHandler)
		me.POST("/wishlist", addWishlistHandler(deps.ProductSvc))
		me.DELETE("/wishlist/:productId", removeWishlistHandler)
		me.POST("/wishlist/:productId/move-to-cart", moveToCartHandler(deps.CheckoutSvc))

		me.PUT("/exchange", setExchangeHandler(deps.ProductSvc, deps.CheckoutSvc))
		me.DELETE("/exchange", clearExchangeHandler(deps.CheckoutSvc))

		me.GET("/address", getAddressHandler)
		me.PUT("/address", saveAddressHandler(deps.CheckoutSvc))
		me.GET("/checkout/summary", checkoutSummaryHandler(deps.CheckoutSvc))
		me.POST("/checkout/payment", paymentHandler(deps.CheckoutSvc))

		me.GET("/orders", listOrdersHandler)
		me.GET("/orders/:id", getOrderHandler)

		me.POST("/lens/capture", lensCaptureHandler(deps.Lens, deps.Metrics))
	}

	return router, nil
}
