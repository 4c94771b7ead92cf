package handlers

import (
	"context"

	subdto "github.com/tenantgate/tenantgate/internal/application/subscription/dto"
	"github.com/tenantgate/tenantgate/internal/application/subscription/usecases"
)

// Use case interfaces for TenantHandler

type createTenantUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateTenantCommand) (*subdto.TenantDTO, error)
}

type getTenantUseCase interface {
	Execute(ctx context.Context, tenantID uint) (*subdto.TenantDTO, error)
}

type listTenantsUseCase interface {
	Execute(ctx context.Context, query usecases.ListTenantsQuery) (*usecases.ListTenantsResult, error)
}

type changeTenantPlanUseCase interface {
	Execute(ctx context.Context, cmd usecases.ChangeTenantPlanCommand) (*subdto.TenantDTO, error)
}

type setTenantActiveUseCase interface {
	Execute(ctx context.Context, cmd usecases.SetTenantActiveCommand) (*subdto.TenantDTO, error)
}

type renewTenantUseCase interface {
	Execute(ctx context.Context, cmd usecases.RenewTenantCommand) (*subdto.TenantDTO, error)
}

// blockTenantUseCase is satisfied by both the block and the unblock use case.
type blockTenantUseCase interface {
	Execute(ctx context.Context, tenantID uint) (*subdto.TenantDTO, error)
}

type getSubscriptionSummaryUseCase interface {
	Execute(ctx context.Context, tenantID uint) (*subdto.SubscriptionSummaryDTO, error)
}

type sweepSubscriptionsUseCase interface {
	Run(ctx context.Context) (*subdto.SweepResultDTO, error)
}
