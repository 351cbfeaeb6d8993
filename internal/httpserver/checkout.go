package httpserver

import (
	"net/http"

	"shopfront/internal/domain"
	"shopfront/internal/service/checkout"

	"github.com/gin-gonic/gin"
)

func getAddressHandler(c *gin.Context) {
	addr := currentStore(c).SavedAddress()
	if addr == nil {
		writeError(c, domain.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, addr)
}

func saveAddressHandler(svc checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req domain.Address
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "body", "invalid JSON body")
			return
		}
		addr, err := svc.SaveAddress(persistCtx(c), currentStore(c), req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, addr)
	}
}

type paymentMethodView struct {
	ID    checkout.PaymentMethod `json:"id"`
	Label string                 `json:"label"`
}

// checkoutSummaryHandler serves the payment step: price breakdown and the
// accepted methods. It needs items in the cart and a saved address.
func checkoutSummaryHandler(svc checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		st := currentStore(c)
		cart := st.Cart()
		if len(cart) == 0 {
			writeError(c, domain.ErrCartEmpty)
			return
		}
		addr := st.SavedAddress()
		if addr == nil {
			writeError(c, domain.ErrAddressRequired)
			return
		}
		methods := make([]paymentMethodView, 0, len(checkout.PaymentMethods))
		for _, m := range checkout.PaymentMethods {
			methods = append(methods, paymentMethodView{ID: m, Label: m.Label()})
		}
		c.JSON(http.StatusOK, gin.H{
			"summary":        toSummaryView(svc.Quote(cart, st.ExchangeProduct())),
			"address":        addr,
			"paymentMethods": methods,
		})
	}
}

// paymentHandler runs the simulated payment. The request context bounds the
// gateway wait, so a client that disconnects places no order.
func paymentHandler(svc checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkout.PaymentInput
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "body", "invalid JSON body")
			return
		}
		order, err := svc.PlaceOrder(c.Request.Context(), currentStore(c), req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

func listOrdersHandler(c *gin.Context) {
	orders := currentStore(c).Orders()
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "results": orders})
}

func getOrderHandler(c *gin.Context) {
	order, ok := currentStore(c).Order(c.Param("id"))
	if !ok {
		writeError(c, domain.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, order)
}
