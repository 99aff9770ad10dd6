package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	customerRepo "stayease/database/repository/customer"
	"stayease/utils"

	"github.com/gin-gonic/gin"
)

// CustomerIDKey is the gin context key carrying the authenticated customer ID.
const CustomerIDKey = "customerID"

// JWTAuthCustomerMiddleware authenticates a customer by bearer token and
// verifies the account still exists and is not soft-deleted.
func JWTAuthCustomerMiddleware(customers customerRepo.CustomerRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		customerID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || customerID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		if _, err := customers.GetByID(ctx, customerID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Account not found"})
			return
		}

		c.Set(CustomerIDKey, customerID)
		c.Next()
	}
}
