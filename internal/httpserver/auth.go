package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type otpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyRequest struct {
	OTP string `json:"otp"`
}

func requestOTPHandler(svc authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req otpRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "body", "invalid JSON body")
			return
		}
		challenge, err := svc.RequestCode(c.Request.Context(), currentSessionID(c), req.Email, req.Password)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"challenge": challenge, "message": "OTP sent to your email!"})
	}
}

func verifyOTPHandler(svc authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req verifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "body", "invalid JSON body")
			return
		}
		user, err := svc.Verify(c.Request.Context(), currentSessionID(c), req.OTP, currentStore(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user, "isAuthenticated": true})
	}
}

func logoutHandler(c *gin.Context) {
	currentStore(c).Logout(persistCtx(c))
	c.Status(http.StatusNoContent)
}
