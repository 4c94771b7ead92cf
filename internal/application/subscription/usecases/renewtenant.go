package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tenantgate/tenantgate/internal/application/subscription/dto"
	"github.com/tenantgate/tenantgate/internal/domain/tenant"
	"github.com/tenantgate/tenantgate/internal/shared/biztime"
	"github.com/tenantgate/tenantgate/internal/shared/errors"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

// RenewTenantCommand carries raw operator input. PaymentDate may be empty or
// unparseable and DurationMonths may be non-positive; both are normalized, never rejected.
type RenewTenantCommand struct {
	TenantID       uint
	PaymentDate    string
	DurationMonths int
}

type RenewTenantUseCase struct {
	tenantRepo tenant.Repository
	clock      Clock
	logger     logger.Interface
}

func NewRenewTenantUseCase(tenantRepo tenant.Repository, logger logger.Interface) *RenewTenantUseCase {
	return &RenewTenantUseCase{
		tenantRepo: tenantRepo,
		clock:      biztime.NowUTC,
		logger:     logger,
	}
}

func (uc *RenewTenantUseCase) SetClock(clock Clock) {
	uc.clock = clock
}

func (uc *RenewTenantUseCase) Execute(ctx context.Context, cmd RenewTenantCommand) (*dto.TenantDTO, error) {
	t, err := uc.tenantRepo.GetByID(ctx, cmd.TenantID)
	if err != nil {
		uc.logger.Errorw("failed to get tenant", "error", err, "tenant_id", cmd.TenantID)
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	if t == nil {
		return nil, errors.NewNotFoundError("tenant not found")
	}

	paymentDate := uc.clock()
	if raw := strings.TrimSpace(cmd.PaymentDate); raw != "" {
		parsed, err := biztime.ParseFlexible(raw)
		if err != nil {
			uc.logger.Warnw("invalid payment date, using now", "tenant_id", cmd.TenantID, "payment_date", raw)
		} else {
			paymentDate = parsed
		}
	}

	months := cmd.DurationMonths
	if months < 1 {
		months = 1
	}

	t.Renew(paymentDate, months)

	if err := uc.tenantRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update tenant", "error", err, "tenant_id", cmd.TenantID)
		return nil, fmt.Errorf("failed to update tenant: %w", err)
	}

	uc.logger.Infow("tenant subscription renewed",
		"tenant_id", t.ID(),
		"payment_date", biztime.FormatDate(paymentDate),
		"months", months,
		"next_payment_date", biztime.FormatDate(*t.NextPaymentDate()),
	)
	return dto.ToTenantDTO(t), nil
}

// NormalizePaymentDate extracts a JSON string. Any other JSON value yields "",
// which Execute treats as now.
func NormalizePaymentDate(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// NormalizeDurationMonths turns a loosely typed JSON value into a month count.
// Missing, non-numeric or non-positive input yields 1.
func NormalizeDurationMonths(raw json.RawMessage) int {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if s == "" || s == "null" {
		return 1
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || f < 1 {
		return 1
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}
