package middleware

import (
	"net/http"
	"strings"

	"clienteflow_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware creates a Gin middleware that requires a live session.
// The bearer token is validated against both its signature and the session
// store, so a logged-out session is rejected before its token expires.
func AuthMiddleware(authService services.AuthService) gin.HandlerFunc {
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
		session, err := authService.ValidateSession(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			c.Abort()
			return
		}

		// Session information for downstream handlers
		c.Set("sessionID", session.ID)
		c.Set("sessionToken", tokenString)
		c.Set("username", session.Username)

		c.Next()
	}
}
