package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"skillpath_backend/internal/session"
	"skillpath_backend/internal/util"
	"skillpath_backend/pkg/logger"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*util.Claims, error)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func setIdentity(c *gin.Context, claims *util.Claims) {
	c.Set(util.ContextUserKey, claims)
	session.Set(c, session.ForUser(claims.UserID, claims.Name, claims.Email))
}

// AuthMiddleware rejects requests without a valid, unrevoked bearer token.
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			util.Unauthorized(c, "Not authenticated")
			c.Abort()
			return
		}

		claims, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.Log.Debug("Rejected token", zap.String("path", c.Request.URL.Path), zap.Error(err))
			msg := "Invalid or expired token"
			if errors.Is(err, util.ErrTokenRevoked) {
				msg = "Token has been revoked"
			}
			util.Unauthorized(c, msg)
			c.Abort()
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// SessionMiddleware resolves the session of every request. A missing or
// invalid token yields a guest session instead of an error.
func SessionMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			claims, err := auth.Authenticate(c.Request.Context(), token)
			if err == nil {
				setIdentity(c, claims)
				c.Next()
				return
			}
			logger.Log.Debug("Ignoring invalid token", zap.Error(err))
		}
		session.Set(c, session.Guest())
		c.Next()
	}
}
