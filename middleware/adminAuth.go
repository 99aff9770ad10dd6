package middleware

import (
	"crypto/subtle"
	"net/http"

	"stayease/config"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware guards operator endpoints with the configured admin
// API key, sent in the X-Admin-Key header.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-Admin-Key")
		expected := config.AppConfig.AdminAPIKey
		if expected == "" || subtle.ConstantTimeCompare([]byte(key), []byte(expected)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access"})
			return
		}
		c.Set("isAdmin", true)
		c.Next()
	}
}
