package middleware

import (
	"net/http"
	"strings"

	"xero_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ActorIDKey is the context key under which AuthMiddleware stores the
// authenticated caller identity.
const ActorIDKey = "actorID"

// AuthMiddleware creates a Gin middleware for JWT bearer authentication.
// It does not manage users; it only establishes the caller identity that
// audit trails and owner checks rely on.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format. Use Bearer <token>"})
			c.Abort()
			return
		}

		tokenString := parts[1]
		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token: " + err.Error()})
			c.Abort()
			return
		}

		c.Set(ActorIDKey, claims.ActorID)

		c.Next()
	}
}

// ActorID returns the authenticated caller identity set by AuthMiddleware.
func ActorID(c *gin.Context) string {
	actor, _ := c.Get(ActorIDKey)
	actorStr, _ := actor.(string)
	return actorStr
}
