package httpserver

import (
	"context"
	"errors"
	"net/http"

	"shopfront/internal/domain"
	"shopfront/internal/logger"
	anonymoussvc "shopfront/internal/service/anonymous"
	authsvc "shopfront/internal/service/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusClientClosed is recorded when the caller went away mid-request.
const statusClientClosed = 499

type errorResponse struct {
	Error    string            `json:"error"`
	Fields   map[string]string `json:"fields,omitempty"`
	Redirect string            `json:"redirect,omitempty"`
}

// writeError maps service errors onto HTTP responses. Validation problems are
// 400 with per-field messages; a step reached too early is 409 naming the step
// the client should go back to.
func writeError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, errorResponse{Error: ve.Error(), Fields: ve.Fields})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrCartEmpty):
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error(), Redirect: "cart"})
	case errors.Is(err, domain.ErrAddressRequired):
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error(), Redirect: "checkout"})
	case errors.Is(err, domain.ErrCheckoutInProgress):
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, authsvc.ErrNoChallenge):
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error(), Redirect: "login"})
	case errors.Is(err, anonymoussvc.ErrInvalidToken), errors.Is(err, anonymoussvc.ErrExpiredToken):
		c.JSON(http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.AbortWithStatus(statusClientClosed)
	default:
		logger.FromGin(c).Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func badRequest(c *gin.Context, field, message string) {
	writeError(c, domain.NewValidationError("request", field, message))
}
