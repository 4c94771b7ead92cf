package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/tenantgate/tenantgate/internal/domain/catalog"
	"github.com/tenantgate/tenantgate/internal/shared/authorization"
	"github.com/tenantgate/tenantgate/internal/shared/constants"
	"github.com/tenantgate/tenantgate/internal/shared/errors"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
	"github.com/tenantgate/tenantgate/internal/shared/utils"
)

// EntitlementChecker resolves whether an actor's plan covers a request path.
type EntitlementChecker interface {
	IsEntitled(ctx context.Context, actor authorization.Actor, requestPath string) (bool, error)
}

type EntitlementMiddleware struct {
	checker EntitlementChecker
	logger  logger.Interface
}

func NewEntitlementMiddleware(checker EntitlementChecker, logger logger.Interface) *EntitlementMiddleware {
	return &EntitlementMiddleware{
		checker: checker,
		logger:  logger,
	}
}

// RequireEntitlement guards a route that belongs to the feature featurePattern.
// The pattern is parsed once here and panics on a malformed route declaration.
// A request passes when the pattern covers its path and the tenant's plan grants that path.
func (m *EntitlementMiddleware) RequireEntitlement(featurePattern string) gin.HandlerFunc {
	pattern := catalog.MustParseFeaturePattern(featurePattern)

	return func(c *gin.Context) {
		actor, ok := requireActor(c)
		if !ok {
			return
		}
		if actor.IsOperator() {
			c.Next()
			return
		}

		path := c.Request.URL.Path
		if !pattern.Matches(path) {
			m.logger.Warnw("route is outside its declared feature",
				"feature", pattern.String(),
				"path", path,
			)
			m.deny(c, actor, path)
			return
		}

		entitled, err := m.checker.IsEntitled(c.Request.Context(), actor, path)
		if err != nil {
			m.logger.Errorw("failed to resolve entitlement", "error", err, "tenant_id", actor.TenantID, "path", path)
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}
		if !entitled {
			m.deny(c, actor, path)
			return
		}

		c.Next()
	}
}

func (m *EntitlementMiddleware) deny(c *gin.Context, actor authorization.Actor, path string) {
	m.logger.Infow("request denied, feature not in plan",
		"tenant_id", actor.TenantID,
		"user_id", actor.UserID,
		"path", path,
	)
	utils.ErrorResponseWithError(c, errors.NewForbiddenError(constants.ErrMsgNotEntitled))
	c.Abort()
}
