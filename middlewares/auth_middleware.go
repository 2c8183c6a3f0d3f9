package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenVerifier turns a bearer token into a user id.
type TokenVerifier interface {
	VerifyToken(token string) (uint, error)
}

// AuthMiddleware requires a valid JWT and stores the caller under "userID".
// Websocket clients that cannot set headers may pass ?token= instead.
func AuthMiddleware(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		switch {
		case strings.HasPrefix(authHeader, "Bearer "):
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		case c.Query("token") != "":
			tokenString = c.Query("token")
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authorization header required"})
			return
		}

		userID, err := v.VerifyToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid token"})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
