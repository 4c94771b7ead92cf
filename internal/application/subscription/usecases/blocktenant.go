package usecases

import (
	"context"
	"fmt"

	"github.com/tenantgate/tenantgate/internal/application/subscription/dto"
	"github.com/tenantgate/tenantgate/internal/domain/tenant"
	"github.com/tenantgate/tenantgate/internal/shared/errors"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

// BlockTenantUseCase forces a tenant overdue, independent of its payment dates.
type BlockTenantUseCase struct {
	tenantRepo tenant.Repository
	logger     logger.Interface
}

func NewBlockTenantUseCase(tenantRepo tenant.Repository, logger logger.Interface) *BlockTenantUseCase {
	return &BlockTenantUseCase{tenantRepo: tenantRepo, logger: logger}
}

func (uc *BlockTenantUseCase) Execute(ctx context.Context, tenantID uint) (*dto.TenantDTO, error) {
	return changePaymentStatus(ctx, uc.tenantRepo, uc.logger, tenantID, "blocked", (*tenant.Tenant).Block)
}

// UnblockTenantUseCase restores an active payment status without touching dates.
type UnblockTenantUseCase struct {
	tenantRepo tenant.Repository
	logger     logger.Interface
}

func NewUnblockTenantUseCase(tenantRepo tenant.Repository, logger logger.Interface) *UnblockTenantUseCase {
	return &UnblockTenantUseCase{tenantRepo: tenantRepo, logger: logger}
}

func (uc *UnblockTenantUseCase) Execute(ctx context.Context, tenantID uint) (*dto.TenantDTO, error) {
	return changePaymentStatus(ctx, uc.tenantRepo, uc.logger, tenantID, "unblocked", (*tenant.Tenant).Unblock)
}

func changePaymentStatus(
	ctx context.Context,
	repo tenant.Repository,
	log logger.Interface,
	tenantID uint,
	action string,
	apply func(*tenant.Tenant),
) (*dto.TenantDTO, error) {
	t, err := repo.GetByID(ctx, tenantID)
	if err != nil {
		log.Errorw("failed to get tenant", "error", err, "tenant_id", tenantID)
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	if t == nil {
		return nil, errors.NewNotFoundError("tenant not found")
	}

	previous := t.PaymentStatus()
	apply(t)

	if err := repo.Update(ctx, t); err != nil {
		log.Errorw("failed to update tenant", "error", err, "tenant_id", tenantID)
		return nil, fmt.Errorf("failed to update tenant: %w", err)
	}

	log.Infow("tenant "+action,
		"tenant_id", tenantID,
		"previous_status", previous,
		"payment_status", t.PaymentStatus(),
	)
	return dto.ToTenantDTO(t), nil
}
