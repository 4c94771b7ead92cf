package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/tenantgate/tenantgate/internal/shared/authorization"
	"github.com/tenantgate/tenantgate/internal/shared/constants"
	"github.com/tenantgate/tenantgate/internal/shared/errors"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
	"github.com/tenantgate/tenantgate/internal/shared/utils"
)

// SubscriptionChecker reports whether the actor's tenant is locked out for non-payment.
type SubscriptionChecker interface {
	IsBlocking(ctx context.Context, actor authorization.Actor) (bool, error)
}

type SubscriptionGateMiddleware struct {
	checker SubscriptionChecker
	logger  logger.Interface
}

func NewSubscriptionGateMiddleware(checker SubscriptionChecker, logger logger.Interface) *SubscriptionGateMiddleware {
	return &SubscriptionGateMiddleware{
		checker: checker,
		logger:  logger,
	}
}

// RequireActiveSubscription rejects overdue tenants with 402.
func (m *SubscriptionGateMiddleware) RequireActiveSubscription() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := requireActor(c)
		if !ok {
			return
		}
		if actor.IsOperator() {
			c.Next()
			return
		}

		blocking, err := m.checker.IsBlocking(c.Request.Context(), actor)
		if err != nil {
			m.logger.Errorw("failed to check subscription status", "error", err, "tenant_id", actor.TenantID)
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		if blocking {
			m.logger.Infow("request blocked by overdue subscription",
				"tenant_id", actor.TenantID,
				"user_id", actor.UserID,
				"path", c.Request.URL.Path,
			)
			utils.ErrorResponseWithError(c, errors.NewPaymentRequiredError(constants.ErrMsgSubscriptionBlocked))
			c.Abort()
			return
		}

		c.Next()
	}
}
