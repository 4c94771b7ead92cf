package usecases

import (
	"context"
	"fmt"

	"github.com/tenantgate/tenantgate/internal/domain/tenant"
	"github.com/tenantgate/tenantgate/internal/shared/authorization"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

// CheckSubscriptionUseCase backs the payment-required gate.
type CheckSubscriptionUseCase struct {
	tenantRepo tenant.Repository
	logger     logger.Interface
}

func NewCheckSubscriptionUseCase(tenantRepo tenant.Repository, logger logger.Interface) *CheckSubscriptionUseCase {
	return &CheckSubscriptionUseCase{tenantRepo: tenantRepo, logger: logger}
}

// IsBlocking is true iff the actor's tenant is overdue and the actor is not the operator.
// An actor without a resolvable tenant is not blocked here; the entitlement gate denies it.
func (uc *CheckSubscriptionUseCase) IsBlocking(ctx context.Context, actor authorization.Actor) (bool, error) {
	if actor.IsOperator() || actor.TenantID == 0 {
		return false, nil
	}

	t, err := uc.tenantRepo.GetByID(ctx, actor.TenantID)
	if err != nil {
		uc.logger.Errorw("failed to get tenant", "error", err, "tenant_id", actor.TenantID)
		return false, fmt.Errorf("failed to get tenant: %w", err)
	}
	if t == nil {
		return false, nil
	}
	return t.IsOverdue(), nil
}
