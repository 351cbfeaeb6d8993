package httpserver

import (
	"net/http"

	"shopfront/internal/service/lens"
	"shopfront/internal/telemetry"

	"github.com/gin-gonic/gin"
)

// lensCaptureHandler returns suggestions for a camera capture. The request
// body, if any, is ignored.
func lensCaptureHandler(suggester lens.Suggester, metrics *telemetry.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := suggester.Suggest(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		metrics.LensCaptured()
		c.JSON(http.StatusOK, gin.H{"results": toProductViews(products)})
	}
}
