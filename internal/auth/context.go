package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/projtrack-app/projtrack-backend/internal/auth/domain"
)

const CtxIdentity = "identity"

// SetIdentity stores the caller identity in the Gin context.
// This is set by the session middleware.
func SetIdentity(c *gin.Context, identity *domain.Identity) {
	c.Set(CtxIdentity, identity)
}

// CurrentIdentity extracts the caller identity from the Gin context,
// or nil when the request is unauthenticated.
func CurrentIdentity(c *gin.Context) *domain.Identity {
	v, ok := c.Get(CtxIdentity)
	if !ok {
		return nil
	}
	identity, ok := v.(*domain.Identity)
	if !ok {
		return nil
	}
	return identity
}
