package usecases

import (
	"context"
	"fmt"

	"github.com/tenantgate/tenantgate/internal/application/subscription/dto"
	"github.com/tenantgate/tenantgate/internal/domain/tenant"
	"github.com/tenantgate/tenantgate/internal/shared/errors"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

type SetTenantActiveCommand struct {
	TenantID uint
	Active   bool
}

// SetTenantActiveUseCase is the explicit operator switch for the active axis.
// The payment status is left as is.
type SetTenantActiveUseCase struct {
	tenantRepo tenant.Repository
	logger     logger.Interface
}

func NewSetTenantActiveUseCase(tenantRepo tenant.Repository, logger logger.Interface) *SetTenantActiveUseCase {
	return &SetTenantActiveUseCase{tenantRepo: tenantRepo, logger: logger}
}

func (uc *SetTenantActiveUseCase) Execute(ctx context.Context, cmd SetTenantActiveCommand) (*dto.TenantDTO, error) {
	t, err := uc.tenantRepo.GetByID(ctx, cmd.TenantID)
	if err != nil {
		uc.logger.Errorw("failed to get tenant", "error", err, "tenant_id", cmd.TenantID)
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	if t == nil {
		return nil, errors.NewNotFoundError("tenant not found")
	}

	t.SetActive(cmd.Active)

	if err := uc.tenantRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update tenant", "error", err, "tenant_id", cmd.TenantID)
		return nil, fmt.Errorf("failed to update tenant: %w", err)
	}

	uc.logger.Infow("tenant active flag changed", "tenant_id", t.ID(), "active", cmd.Active)
	return dto.ToTenantDTO(t), nil
}
