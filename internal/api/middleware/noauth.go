package middleware

import (
	"github.com/gin-gonic/gin"
)

// NoAuth is a pass-through middleware for when AUTH_MODE=none.
// Every request shares the anonymous owner's history and favorites.
func NoAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ownerKey, anonymousOwner)
		c.Next()
	}
}
