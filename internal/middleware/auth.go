package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/caremesh/hospital-api/internal/service"
	"github.com/caremesh/hospital-api/pkg/auth"
)

// Authenticate validates the bearer token and threads the caller's claims
// into the request context for the service layer's audit trail.
func Authenticate(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		claims, err := jwtManager.ValidateAccessToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Request = c.Request.WithContext(service.WithActor(c.Request.Context(), claims))
		c.Next()
	}
}
