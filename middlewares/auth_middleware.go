package middlewares

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/food-ordering/utils"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*utils.Identity, error)
}

// SessionMiddleware resolves the caller once per request and stores the
// identity in the context. It never rejects a request itself: handlers decide
// with utils.RequireSession / utils.RequireRole.
func SessionMiddleware(auth Authenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c, cookieName)
		if token == "" {
			c.Next()
			return
		}

		id, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if utils.KindOf(err) != utils.KindUnauthorized {
				utils.ErrorLogger.WithError(err).Error("session lookup failed")
			}
			c.Next()
			return
		}

		utils.SetIdentity(c, id)
		c.Next()
	}
}

// sessionToken prefers the Authorization header, then the session cookie.
// Browsers cannot set headers on websocket upgrades, so those may also pass
// ?token=.
func sessionToken(c *gin.Context, cookieName string) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	if websocket.IsWebSocketUpgrade(c.Request) {
		return c.Query("token")
	}
	return ""
}
