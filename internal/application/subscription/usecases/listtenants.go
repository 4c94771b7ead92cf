package usecases

import (
	"context"
	"fmt"

	"github.com/tenantgate/tenantgate/internal/application/subscription/dto"
	"github.com/tenantgate/tenantgate/internal/domain/tenant"
	"github.com/tenantgate/tenantgate/internal/shared/constants"
	"github.com/tenantgate/tenantgate/internal/shared/errors"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

type ListTenantsQuery struct {
	PaymentStatus string
	PlanID        uint
	Page          int
	PageSize      int
}

type ListTenantsResult struct {
	Tenants  []*dto.TenantDTO
	Total    int64
	Page     int
	PageSize int
}

type ListTenantsUseCase struct {
	tenantRepo tenant.Repository
	logger     logger.Interface
}

func NewListTenantsUseCase(tenantRepo tenant.Repository, logger logger.Interface) *ListTenantsUseCase {
	return &ListTenantsUseCase{tenantRepo: tenantRepo, logger: logger}
}

func (uc *ListTenantsUseCase) Execute(ctx context.Context, query ListTenantsQuery) (*ListTenantsResult, error) {
	page, pageSize := query.Page, query.PageSize
	if page < 1 {
		page = constants.DefaultPage
	}
	if pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}

	filter := tenant.ListFilter{
		Offset: (page - 1) * pageSize,
		Limit:  pageSize,
	}
	if query.PaymentStatus != "" {
		status, err := tenant.ParsePaymentStatus(query.PaymentStatus)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.PaymentStatus = &status
	}
	if query.PlanID != 0 {
		planID := query.PlanID
		filter.PlanID = &planID
	}

	tenants, total, err := uc.tenantRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tenants", "error", err)
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}

	return &ListTenantsResult{
		Tenants:  dto.ToTenantDTOList(tenants),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}
