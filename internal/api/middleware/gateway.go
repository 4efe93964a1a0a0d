package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	ownerKey       = "owner_id"
	emailKey       = "user_email"
	anonymousOwner = "anonymous"
)

// GatewayAuth trusts user info from gateway headers (X-User-ID, X-User-Email).
// The gateway validates credentials; this API only scopes history and
// favorites to the forwarded user.
//
// When AUTH_MODE=gateway, the API trusts these headers unconditionally.
// This should ONLY be used behind the gateway with proper network isolation.
func GatewayAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Authentication required",
				"message": "Missing X-User-ID header from gateway",
			})
			c.Abort()
			return
		}

		c.Set(ownerKey, userID)
		if email := c.GetHeader("X-User-Email"); email != "" {
			c.Set(emailKey, email)
		}

		c.Next()
	}
}

// OwnerID returns the owner set by GatewayAuth or NoAuth.
func OwnerID(c *gin.Context) string {
	if owner := c.GetString(ownerKey); owner != "" {
		return owner
	}
	return anonymousOwner
}
