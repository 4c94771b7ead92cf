package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tenantgate/tenantgate/internal/infrastructure/auth"
	"github.com/tenantgate/tenantgate/internal/shared/authorization"
	"github.com/tenantgate/tenantgate/internal/shared/constants"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
	"github.com/tenantgate/tenantgate/internal/shared/utils"
)

const contextKeyActor = "actor"

// TokenVerifier checks a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
	logger   logger.Interface
}

func NewAuthMiddleware(verifier TokenVerifier, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		logger:   logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.verifier.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		SetActor(c, claims.Actor())
		c.Next()
	}
}

// SetActor stores the authenticated caller on the request.
func SetActor(c *gin.Context, actor authorization.Actor) {
	c.Set(contextKeyActor, actor)
	c.Set(constants.ContextKeyUserID, actor.UserID)
	c.Set(constants.ContextKeyTenantID, actor.TenantID)
	c.Set(constants.ContextKeyUserRole, actor.Role.String())
}

// ActorFromContext returns the caller stored by RequireAuth. ok is false for anonymous requests.
func ActorFromContext(c *gin.Context) (authorization.Actor, bool) {
	v, exists := c.Get(contextKeyActor)
	if !exists {
		return authorization.Actor{}, false
	}
	actor, ok := v.(authorization.Actor)
	return actor, ok
}

// requireActor aborts with 401 when no caller is on the request.
func requireActor(c *gin.Context) (authorization.Actor, bool) {
	actor, ok := ActorFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		c.Abort()
	}
	return actor, ok
}
