package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/infrastructure/auth"
	"github.com/deskhub/deskhub/internal/shared/constants"
	"github.com/deskhub/deskhub/internal/shared/logger"
	"github.com/deskhub/deskhub/internal/shared/utils"
)

const contextKeyAdmin = "is_admin"

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

// RequireAuth accepts a bearer token, or a ?token= query parameter for
// clients that cannot set headers on a websocket upgrade.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")

		if token == "" {
			authHeader := c.GetHeader(constants.HeaderAuthorization)
			if authHeader == "" {
				utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
				c.Abort()
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
				c.Abort()
				return
			}

			token = parts[1]
		}

		claims, err := m.jwtService.Verify(token)
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err, "ip", c.ClientIP())
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, claims.ActorID)
		c.Set(constants.ContextKeyUserRole, claims.Role)
		c.Set(contextKeyAdmin, claims.IsAdmin())

		c.Next()
	}
}

// Caller builds the principal of an authenticated request.
func Caller(c *gin.Context) common.Caller {
	return common.Caller{
		ActorID: c.GetUint(constants.ContextKeyUserID),
		Admin:   c.GetBool(contextKeyAdmin),
	}
}

// SetCaller stores a principal as RequireAuth would. Used by handler tests.
func SetCaller(c *gin.Context, actorID uint, role string) {
	c.Set(constants.ContextKeyUserID, actorID)
	c.Set(constants.ContextKeyUserRole, role)
	c.Set(contextKeyAdmin, role == constants.RoleAdmin)
}
