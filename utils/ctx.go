package utils

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/food-ordering/models"
)

const identityKey = "identity"

// Identity is the authenticated caller of one request. It is built from the
// session token by the session middleware and lives only in the gin context.
type Identity struct {
	UserID    uint
	Email     string
	Role      models.Role
	SessionID string
	ExpiresAt time.Time
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == models.RoleAdmin
}

func SetIdentity(c *gin.Context, id *Identity) {
	c.Set(identityKey, id)
}

func CurrentIdentity(c *gin.Context) (*Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	id, ok := v.(*Identity)
	return id, ok && id != nil
}

// RequireSession writes a 401 and returns false when the request carries no
// valid session.
func RequireSession(c *gin.Context) (*Identity, bool) {
	id, ok := CurrentIdentity(c)
	if !ok {
		RespondError(c, StatusForKind(KindUnauthorized), NewUnauthorized("Not authenticated"))
		c.Abort()
		return nil, false
	}
	return id, true
}

// RequireRole is RequireSession plus a role check that writes a 403 with msg.
func RequireRole(c *gin.Context, role models.Role, msg string) (*Identity, bool) {
	id, ok := RequireSession(c)
	if !ok {
		return nil, false
	}
	if id.Role != role {
		RespondError(c, StatusForKind(KindForbidden), NewForbidden("%s", msg))
		c.Abort()
		return nil, false
	}
	return id, true
}
