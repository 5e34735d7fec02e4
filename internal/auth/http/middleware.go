package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authService "github.com/allisson/wopihost/internal/auth/service"
	apperrors "github.com/allisson/wopihost/internal/errors"
	"github.com/allisson/wopihost/internal/httputil"
)

// AuthenticationMiddleware authenticates host users via a Bearer JWT in the Authorization
// header and stores the user id in the request context.
//
// Authorization header format: "Bearer <token>" (case-insensitive "bearer"). Any failure
// produces 401 Unauthorized.
func AuthenticationMiddleware(tokenService authService.TokenService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if tokenString == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		userID, err := tokenService.Verify(tokenString)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithUserID(c.Request.Context(), userID))

		logger.Debug("authentication successful", slog.String("user_id", userID))

		c.Next()
	}
}
