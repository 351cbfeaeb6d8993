package httpserver

import (
	"context"
	"net/http"
	"strings"

	"shopfront/internal/domain"
	"shopfront/internal/store"
	"shopfront/internal/telemetry"

	"github.com/gin-gonic/gin"
)

type ctxKey string

const (
	sessionIDKey ctxKey = "sessionID"
	storeKey     ctxKey = "store"
)

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// sessionMiddleware resolves the bearer token to the caller's store.
func sessionMiddleware(sessions sessionService, stores storeRegistry, metrics *telemetry.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
			return
		}
		sessionID, err := sessions.LookupByToken(c.Request.Context(), token)
		if err != nil {
			writeError(c, err)
			c.Abort()
			return
		}
		st := stores.Get(persistCtx(c), sessionID)
		metrics.SetActiveSessions(stores.Len())

		c.Set(string(sessionIDKey), sessionID)
		c.Set(string(storeKey), st)
		c.Next()
	}
}

func currentStore(c *gin.Context) *store.Store {
	return c.MustGet(string(storeKey)).(*store.Store)
}

func currentSessionID(c *gin.Context) string {
	return c.GetString(string(sessionIDKey))
}

// persistCtx is the context for store writes. It outlives the client so a
// dropped connection cannot leave a write half done.
func persistCtx(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}

// issueSessionHandler starts a session, or renews the one named by a valid
// bearer token.
func issueSessionHandler(sessions sessionService, metrics *telemetry.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if token := bearerToken(c); token != "" {
			tok, err := sessions.Refresh(ctx, token)
			if err != nil {
				writeError(c, err)
				return
			}
			c.JSON(http.StatusOK, tok)
			return
		}
		tok, err := sessions.Issue(ctx)
		if err != nil {
			writeError(c, err)
			return
		}
		metrics.SessionIssued()
		c.JSON(http.StatusCreated, tok)
	}
}

type stateResponse struct {
	store.State
	Degraded bool `json:"degraded"`
}

func stateHandler(c *gin.Context) {
	st := currentStore(c)
	c.JSON(http.StatusOK, stateResponse{State: st.Snapshot(), Degraded: st.Degraded()})
}

type profileResponse struct {
	IsAuthenticated bool            `json:"isAuthenticated"`
	User            *domain.User    `json:"user"`
	OrderCount      int             `json:"orderCount"`
	WishlistCount   int             `json:"wishlistCount"`
	CartCount       int             `json:"cartCount"`
	SavedAddress    *domain.Address `json:"savedAddress"`
}

func profileHandler(c *gin.Context) {
	st := currentStore(c)
	c.JSON(http.StatusOK, profileResponse{
		IsAuthenticated: st.IsAuthenticated(),
		User:            st.User(),
		OrderCount:      len(st.Orders()),
		WishlistCount:   len(st.Wishlist()),
		CartCount:       st.CartCount(),
		SavedAddress:    st.SavedAddress(),
	})
}
