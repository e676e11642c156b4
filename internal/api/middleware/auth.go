package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/shopadmin/internal/domain"
)

const SessionContextKey = "session"

// Authenticator resolves the Shopify session of an inbound request
type Authenticator interface {
	Authenticate(ctx context.Context, r *http.Request) (domain.Session, error)
}

// AuthMiddleware rejects requests without a usable shop session and stores
// the session in the Gin context
func AuthMiddleware(auth Authenticator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := auth.Authenticate(c.Request.Context(), c.Request)
		if err != nil {
			logger.Warn("Failed to authenticate request",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", GetRequestID(c)),
				zap.Error(err),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": err.Error(),
			})
			return
		}

		c.Set(SessionContextKey, session)
		c.Next()
	}
}

// GetSessionFromContext retrieves the session from the Gin context
func GetSessionFromContext(c *gin.Context) (domain.Session, bool) {
	v, exists := c.Get(SessionContextKey)
	if !exists {
		return domain.Session{}, false
	}
	s, ok := v.(domain.Session)
	return s, ok
}
