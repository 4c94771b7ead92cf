package usecases

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenantgate/tenantgate/internal/application/testutil"
	"github.com/tenantgate/tenantgate/internal/domain/tenant"
	"github.com/tenantgate/tenantgate/internal/shared/authorization"
	apperrors "github.com/tenantgate/tenantgate/internal/shared/errors"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRenewTenantUseCase_KeepsActiveFlag(t *testing.T) {
	store := testutil.NewStore()
	tn := store.MustTenant(testutil.TenantSeed{PlanID: 1, Active: false, Status: tenant.PaymentStatusOverdue})
	uc := NewRenewTenantUseCase(store.Tenants(), logger.NewNop())

	got, err := uc.Execute(context.Background(), RenewTenantCommand{
		TenantID:       tn.ID(),
		PaymentDate:    "2025-01-01",
		DurationMonths: 3,
	})

	require.NoError(t, err)
	assert.Equal(t, "active", got.PaymentStatus)
	assert.False(t, got.Active)
	require.NotNil(t, got.NextPaymentDate)
	assert.Equal(t, date(2025, time.April, 1), *got.NextPaymentDate)
	require.NotNil(t, got.LastPaymentDate)
	assert.Equal(t, date(2025, time.January, 1), *got.LastPaymentDate)

	stored, err := store.Tenants().GetByID(context.Background(), tn.ID())
	require.NoError(t, err)
	assert.False(t, stored.IsActive())
	assert.Equal(t, tenant.PaymentStatusActive, stored.PaymentStatus())
}

func TestRenewTenantUseCase_NormalizesInput(t *testing.T) {
	now := date(2025, time.March, 10)
	tests := []struct {
		name     string
		date     string
		months   int
		wantLast time.Time
		wantNext time.Time
	}{
		{"empty date uses now", "", 2, now, date(2025, time.May, 10)},
		{"garbage date uses now", "not-a-date", 1, now, date(2025, time.April, 10)},
		{"zero months is one", "2025-02-01", 0, date(2025, time.February, 1), date(2025, time.March, 1)},
		{"negative months is one", "2025-02-01", -4, date(2025, time.February, 1), date(2025, time.March, 1)},
		{"rfc3339 accepted", "2025-02-01T12:00:00Z", 1, date(2025, time.February, 1).Add(12 * time.Hour), date(2025, time.March, 1).Add(12 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testutil.NewStore()
			tn := store.MustTenant(testutil.TenantSeed{PlanID: 1, Active: true})
			uc := NewRenewTenantUseCase(store.Tenants(), logger.NewNop())
			uc.SetClock(fixedClock(now))

			got, err := uc.Execute(context.Background(), RenewTenantCommand{
				TenantID: tn.ID(), PaymentDate: tt.date, DurationMonths: tt.months,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.wantLast, *got.LastPaymentDate)
			assert.Equal(t, tt.wantNext, *got.NextPaymentDate)
		})
	}
}

func TestRenewTenantUseCase_MissingTenantFails(t *testing.T) {
	store := testutil.NewStore()
	_, err := NewRenewTenantUseCase(store.Tenants(), logger.NewNop()).Execute(context.Background(),
		RenewTenantCommand{TenantID: 42, DurationMonths: 1})

	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestNormalizeDurationMonths(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{`3`, 3},
		{`"6"`, 6},
		{`2.9`, 2},
		{`0`, 1},
		{`-2`, 1},
		{`"abc"`, 1},
		{`null`, 1},
		{``, 1},
		{`true`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDurationMonths(json.RawMessage(tt.raw)))
		})
	}
}

func TestNormalizePaymentDate(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`"2026-01-31"`, "2026-01-31"},
		{`" 2026-01-31T10:00:00Z "`, "2026-01-31T10:00:00Z"},
		{`20250101`, ""},
		{`true`, ""},
		{`{"day":1}`, ""},
		{`null`, ""},
		{``, ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePaymentDate(json.RawMessage(tt.raw)))
		})
	}
}

func TestBlockUnblock_NeverTouchActive(t *testing.T) {
	next := date(2030, time.January, 1)
	for _, active := range []bool{true, false} {
		store := testutil.NewStore()
		tn := store.MustTenant(testutil.TenantSeed{PlanID: 1, Active: active, NextPaymentDate: &next})
		ctx := context.Background()

		blocked, err := NewBlockTenantUseCase(store.Tenants(), logger.NewNop()).Execute(ctx, tn.ID())
		require.NoError(t, err)
		assert.Equal(t, "overdue", blocked.PaymentStatus)
		assert.Equal(t, active, blocked.Active)
		assert.Equal(t, next, *blocked.NextPaymentDate)

		unblocked, err := NewUnblockTenantUseCase(store.Tenants(), logger.NewNop()).Execute(ctx, tn.ID())
		require.NoError(t, err)
		assert.Equal(t, "active", unblocked.PaymentStatus)
		assert.Equal(t, active, unblocked.Active)
		assert.Equal(t, next, *unblocked.NextPaymentDate)
	}
}

func TestBlockUnblock_MissingTenant(t *testing.T) {
	store := testutil.NewStore()
	_, err := NewBlockTenantUseCase(store.Tenants(), logger.NewNop()).Execute(context.Background(), 5)
	assert.True(t, apperrors.IsNotFoundError(err))
	_, err = NewUnblockTenantUseCase(store.Tenants(), logger.NewNop()).Execute(context.Background(), 5)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestCheckSubscriptionUseCase_IsBlocking(t *testing.T) {
	store := testutil.NewStore()
	overdue := store.MustTenant(testutil.TenantSeed{PlanID: 1, Status: tenant.PaymentStatusOverdue})
	pending := store.MustTenant(testutil.TenantSeed{PlanID: 1, Status: tenant.PaymentStatusPending})
	uc := NewCheckSubscriptionUseCase(store.Tenants(), logger.NewNop())
	ctx := context.Background()

	tests := []struct {
		name  string
		actor authorization.Actor
		want  bool
	}{
		{"overdue tenant user", authorization.Actor{TenantID: overdue.ID(), Role: authorization.RoleUser}, true},
		{"overdue tenant admin", authorization.Actor{TenantID: overdue.ID(), Role: authorization.RoleAdminTenant}, true},
		{"operator on overdue tenant", authorization.Actor{TenantID: overdue.ID(), Role: authorization.RoleAdmin}, false},
		{"pending is a warning only", authorization.Actor{TenantID: pending.ID(), Role: authorization.RoleUser}, false},
		{"no tenant", authorization.Actor{Role: authorization.RoleUser}, false},
		{"unknown tenant", authorization.Actor{TenantID: 999, Role: authorization.RoleUser}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := uc.IsBlocking(ctx, tt.actor)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	store.Fail = true
	_, err := uc.IsBlocking(ctx, authorization.Actor{TenantID: overdue.ID(), Role: authorization.RoleUser})
	assert.ErrorIs(t, err, testutil.ErrInjected)
}

func TestGetSubscriptionSummaryUseCase(t *testing.T) {
	store := testutil.NewStore()
	plan := store.MustPlan("B", 5120)
	now := date(2025, time.June, 10).Add(15 * time.Hour)
	soon := date(2025, time.June, 13)
	lapsed := date(2025, time.June, 1)

	withDate := store.MustTenant(testutil.TenantSeed{PlanID: plan.ID(), Active: true, NextPaymentDate: &soon, StorageUsedMB: 120})
	late := store.MustTenant(testutil.TenantSeed{PlanID: plan.ID(), Status: tenant.PaymentStatusOverdue, NextPaymentDate: &lapsed})
	noDate := store.MustTenant(testutil.TenantSeed{PlanID: plan.ID(), Active: true})
	orphan := store.MustTenant(testutil.TenantSeed{PlanID: 999, Active: true})

	uc := NewGetSubscriptionSummaryUseCase(store.Tenants(), store.Plans(), logger.NewNop())
	uc.SetClock(fixedClock(now))
	ctx := context.Background()

	got, err := uc.Execute(ctx, withDate.ID())
	require.NoError(t, err)
	assert.Equal(t, "B", got.PlanCode)
	require.NotNil(t, got.DaysToExpiration)
	assert.Equal(t, 3, *got.DaysToExpiration)
	assert.False(t, got.IsBlocked)
	assert.Equal(t, int64(5120), got.StorageLimitMB)
	assert.InDelta(t, 5000.0, got.StorageRemainingMB, 1e-9)

	got, err = uc.Execute(ctx, late.ID())
	require.NoError(t, err)
	assert.Equal(t, -9, *got.DaysToExpiration)
	assert.True(t, got.IsBlocked)

	got, err = uc.Execute(ctx, noDate.ID())
	require.NoError(t, err)
	assert.Nil(t, got.DaysToExpiration)

	got, err = uc.Execute(ctx, orphan.ID())
	require.NoError(t, err)
	assert.Empty(t, got.PlanCode)
	assert.Zero(t, got.StorageLimitMB)

	_, err = uc.Execute(ctx, 4242)
	assert.True(t, apperrors.IsNotFoundError(err))
}
