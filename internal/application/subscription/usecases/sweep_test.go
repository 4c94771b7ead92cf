package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tenantgate/tenantgate/internal/application/testutil"
	"github.com/tenantgate/tenantgate/internal/domain/tenant"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

type mockLocker struct {
	mock.Mock
	released int
}

func (m *mockLocker) TryLock(ctx context.Context) (func(), bool, error) {
	args := m.Called(ctx)
	if !args.Bool(0) {
		return nil, false, args.Error(1)
	}
	return func() { m.released++ }, true, args.Error(1)
}

// flakyRepo fails MarkOverdue for one tenant.
type flakyRepo struct {
	tenant.Repository
	failID uint
}

func (r flakyRepo) MarkOverdue(ctx context.Context, id uint, dueBefore time.Time) (bool, error) {
	if id == r.failID {
		return false, errors.New("deadlock detected")
	}
	return r.Repository.MarkOverdue(ctx, id, dueBefore)
}

// renewingRepo runs renew after each page is read, before any transition is written.
type renewingRepo struct {
	tenant.Repository
	renew func()
}

func (r renewingRepo) ListWithNextPaymentDate(ctx context.Context, afterID uint, limit int) ([]*tenant.Tenant, error) {
	page, err := r.Repository.ListWithNextPaymentDate(ctx, afterID, limit)
	if err == nil && len(page) > 0 {
		r.renew()
	}
	return page, err
}

func newSweep(repo tenant.Repository, now time.Time) *SweepSubscriptionsUseCase {
	uc := NewSweepSubscriptionsUseCase(repo, tenant.DefaultPendingWindowDays, logger.NewNop())
	uc.SetClock(fixedClock(now))
	return uc
}

func TestSweep_LapsedTenantGoesOverdueAndInactive(t *testing.T) {
	store := testutil.NewStore()
	now := date(2025, time.June, 10).Add(9 * time.Hour)
	yesterday := date(2025, time.June, 9)
	tn := store.MustTenant(testutil.TenantSeed{PlanID: 1, Active: true, NextPaymentDate: &yesterday})

	updated, err := newSweep(store.Tenants(), now).Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, updated)
	got, err := store.Tenants().GetByID(context.Background(), tn.ID())
	require.NoError(t, err)
	assert.Equal(t, tenant.PaymentStatusOverdue, got.PaymentStatus())
	assert.False(t, got.IsActive())
}

func TestSweep_RenewalAfterReadIsNotOverwritten(t *testing.T) {
	ctx := context.Background()
	now := date(2025, time.June, 10).Add(9 * time.Hour)
	lapsed := date(2025, time.June, 7)
	nearDue := date(2025, time.June, 12)

	store := testutil.NewStore()
	overdue := store.MustTenant(testutil.TenantSeed{PlanID: 1, Active: true, NextPaymentDate: &lapsed})
	pending := store.MustTenant(testutil.TenantSeed{PlanID: 1, Active: true, NextPaymentDate: &nearDue})

	repo := renewingRepo{Repository: store.Tenants(), renew: func() {
		for _, id := range []uint{overdue.ID(), pending.ID()} {
			got, err := store.Tenants().GetByID(ctx, id)
			require.NoError(t, err)
			got.Renew(now, 1)
			require.NoError(t, store.Tenants().Update(ctx, got))
		}
	}}

	result, err := newSweep(repo, now).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Updated())

	for _, id := range []uint{overdue.ID(), pending.ID()} {
		got, err := store.Tenants().GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, tenant.PaymentStatusActive, got.PaymentStatus())
		assert.True(t, got.IsActive())
	}
}

func TestSweep_Transitions(t *testing.T) {
	now := date(2025, time.June, 10).Add(9 * time.Hour)
	day := func(offset int) *time.Time {
		d := date(2025, time.June, 10).AddDate(0, 0, offset)
		return &d
	}

	tests := []struct {
		name       string
		seed       testutil.TenantSeed
		wantStatus tenant.PaymentStatus
		wantActive bool
	}{
		{"due today is pending", testutil.TenantSeed{Active: true, NextPaymentDate: day(0)}, tenant.PaymentStatusPending, true},
		{"due in five days is pending", testutil.TenantSeed{Active: true, NextPaymentDate: day(5)}, tenant.PaymentStatusPending, true},
		{"due in six days unchanged", testutil.TenantSeed{Active: true, NextPaymentDate: day(6)}, tenant.PaymentStatusActive, true},
		{"pending and lapsed goes overdue", testutil.TenantSeed{Active: true, Status: tenant.PaymentStatusPending, NextPaymentDate: day(-1)}, tenant.PaymentStatusOverdue, false},
		{"pending within window stays pending", testutil.TenantSeed{Active: true, Status: tenant.PaymentStatusPending, NextPaymentDate: day(2)}, tenant.PaymentStatusPending, true},
		{"already overdue untouched", testutil.TenantSeed{Active: true, Status: tenant.PaymentStatusOverdue, NextPaymentDate: day(-30)}, tenant.PaymentStatusOverdue, true},
		{"blocked with future date untouched", testutil.TenantSeed{Active: true, Status: tenant.PaymentStatusOverdue, NextPaymentDate: day(2)}, tenant.PaymentStatusOverdue, true},
		{"no date untouched", testutil.TenantSeed{Active: true}, tenant.PaymentStatusActive, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testutil.NewStore()
			tt.seed.PlanID = 1
			tn := store.MustTenant(tt.seed)

			_, err := newSweep(store.Tenants(), now).Run(context.Background())
			require.NoError(t, err)

			got, err := store.Tenants().GetByID(context.Background(), tn.ID())
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got.PaymentStatus())
			assert.Equal(t, tt.wantActive, got.IsActive())
		})
	}
}

func TestSweep_Idempotent(t *testing.T) {
	store := testutil.NewStore()
	now := date(2025, time.June, 10)
	lapsed := date(2025, time.May, 1)
	soon := date(2025, time.June, 12)
	store.MustTenant(testutil.TenantSeed{PlanID: 1, Active: true, NextPaymentDate: &lapsed})
	store.MustTenant(testutil.TenantSeed{PlanID: 1, Active: true, NextPaymentDate: &soon})
	uc := newSweep(store.Tenants(), now)
	ctx := context.Background()

	first, err := uc.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Overdue)
	assert.Equal(t, 1, first.Pending)
	snapshot := snapshotTenants(t, store)

	second, err := uc.Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, second.Updated())
	assert.Equal(t, snapshot, snapshotTenants(t, store))
}

func TestSweep_PagesThroughAllTenants(t *testing.T) {
	store := testutil.NewStore()
	now := date(2025, time.June, 10)
	lapsed := date(2025, time.June, 1)
	for i := 0; i < 7; i++ {
		store.MustTenant(testutil.TenantSeed{PlanID: 1, Active: true, NextPaymentDate: &lapsed})
	}
	uc := newSweep(store.Tenants(), now)
	uc.SetBatchSize(3)

	result, err := uc.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 7, result.Scanned)
	assert.Equal(t, 7, result.Overdue)
	assert.Equal(t, 3, store.CallCount("tenants.ListWithNextPaymentDate"))
}

func TestSweep_TenantFailureDoesNotAbort(t *testing.T) {
	store := testutil.NewStore()
	now := date(2025, time.June, 10)
	lapsed := date(2025, time.June, 1)
	bad := store.MustTenant(testutil.TenantSeed{PlanID: 1, Active: true, NextPaymentDate: &lapsed})
	good := store.MustTenant(testutil.TenantSeed{PlanID: 1, Active: true, NextPaymentDate: &lapsed})

	result, err := newSweep(flakyRepo{Repository: store.Tenants(), failID: bad.ID()}, now).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.Overdue)
	got, err := store.Tenants().GetByID(context.Background(), good.ID())
	require.NoError(t, err)
	assert.Equal(t, tenant.PaymentStatusOverdue, got.PaymentStatus())
}

func TestSweep_ListFailureIsReturned(t *testing.T) {
	store := testutil.NewStore()
	store.Fail = true

	_, err := newSweep(store.Tenants(), time.Now()).Execute(context.Background())

	assert.ErrorIs(t, err, testutil.ErrInjected)
}

func TestSweep_Locking(t *testing.T) {
	store := testutil.NewStore()
	lapsed := date(2025, time.June, 1)
	store.MustTenant(testutil.TenantSeed{PlanID: 1, Active: true, NextPaymentDate: &lapsed})
	ctx := context.Background()

	busy := new(mockLocker)
	busy.On("TryLock", mock.Anything).Return(false, nil)
	uc := newSweep(store.Tenants(), date(2025, time.June, 10))
	uc.SetLocker(busy)

	result, err := uc.Run(ctx)
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Zero(t, store.CallCount("tenants.ListWithNextPaymentDate"))

	free := new(mockLocker)
	free.On("TryLock", mock.Anything).Return(true, nil)
	uc.SetLocker(free)

	updated, err := uc.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)
	assert.Equal(t, 1, free.released)

	broken := new(mockLocker)
	broken.On("TryLock", mock.Anything).Return(false, errors.New("connection refused"))
	uc.SetLocker(broken)

	_, err = uc.Execute(ctx)
	assert.Error(t, err)
}

type tenantState struct {
	Status tenant.PaymentStatus
	Active bool
}

func snapshotTenants(t *testing.T, store *testutil.Store) map[uint]tenantState {
	t.Helper()
	tenants, _, err := store.Tenants().List(context.Background(), tenant.ListFilter{})
	require.NoError(t, err)
	out := make(map[uint]tenantState, len(tenants))
	for _, tn := range tenants {
		out[tn.ID()] = tenantState{Status: tn.PaymentStatus(), Active: tn.IsActive()}
	}
	return out
}
