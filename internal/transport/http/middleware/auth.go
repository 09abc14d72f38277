package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskdeck/taskdeck/internal/token"
)

const (
	errTokenRequired = "Access token required"
	errTokenInvalid  = "Invalid or expired token"
)

// Verifier is the part of the token manager the middleware needs.
type Verifier interface {
	Verify(raw string) (*token.Claims, error)
}

// Auth validates a Bearer JWT and sets "userID" and "email" in the gin
// context. A missing token is 401; a token that fails verification is 403.
// The split comes from the first release and is kept for client
// compatibility.
func Auth(tokens Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"success": false, "message": errTokenRequired})
			return
		}

		claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden,
				gin.H{"success": false, "message": errTokenInvalid})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)
		c.Next()
	}
}
