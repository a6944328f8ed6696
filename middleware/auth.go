package middleware

import (
	"net/http"
	"strings"

	"codeforge/auth"

	"github.com/gin-gonic/gin"
)

// OwnerIDKey is the gin context key the authenticated owner ID is
// stored under.
const OwnerIDKey = "owner_id"

// AuthRequired validates the Bearer token issued by the identity
// provider and stores the owner ID in the request context. Requests
// with a missing or invalid token fail with 401.
func AuthRequired(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			c.Abort()
			return
		}

		ownerID, err := jwtManager.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(OwnerIDKey, ownerID)
		c.Next()
	}
}
