package tenant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenantgate/tenantgate/internal/shared/biztime"
)

func TestMain(m *testing.M) {
	biztime.MustInit("UTC")
	m.Run()
}

// --- helpers ---

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := biztime.ParseDateInBizTimezone(s)
	require.NoError(t, err)
	return d
}

func newTenant(t *testing.T, status PaymentStatus, active bool, next *time.Time) *Tenant {
	t.Helper()
	now := time.Now().UTC()
	tn, err := ReconstructTenant(1, 2, "Acme", active, string(status), nil, next, 0, nil, now, now)
	require.NoError(t, err)
	return tn
}

func ptr(t time.Time) *time.Time { return &t }

// =====================================================================
// Constructors
// =====================================================================

func TestNewTenant(t *testing.T) {
	tn, err := NewTenant("  Acme  ", 3, nil)

	require.NoError(t, err)
	assert.Equal(t, "Acme", tn.Name())
	assert.Equal(t, uint(3), tn.PlanID())
	assert.True(t, tn.IsActive())
	assert.Equal(t, PaymentStatusActive, tn.PaymentStatus())
	assert.Nil(t, tn.NextPaymentDate())
	assert.Zero(t, tn.StorageUsedMB())
}

func TestNewTenant_Invalid(t *testing.T) {
	_, err := NewTenant("", 3, nil)
	assert.ErrorIs(t, err, ErrInvalidTenantInput)

	_, err = NewTenant("Acme", 0, nil)
	assert.ErrorIs(t, err, ErrInvalidTenantInput)
}

func TestReconstructTenant_RejectsUnknownStatus(t *testing.T) {
	_, err := ReconstructTenant(1, 1, "Acme", true, "suspended", nil, nil, 0, nil, time.Now(), time.Now())
	assert.ErrorIs(t, err, ErrInvalidPaymentStatus)
}

// =====================================================================
// Operator transitions never touch Active
// =====================================================================

func TestRenew_FromInactiveOverdueTenant(t *testing.T) {
	tn := newTenant(t, PaymentStatusOverdue, false, nil)

	tn.Renew(date(t, "2025-01-01"), 3)

	assert.Equal(t, PaymentStatusActive, tn.PaymentStatus())
	assert.Equal(t, "2025-01-01", biztime.FormatDate(*tn.LastPaymentDate()))
	assert.Equal(t, "2025-04-01", biztime.FormatDate(*tn.NextPaymentDate()))
	assert.False(t, tn.IsActive())
}

func TestRenew_NonPositiveMonthsDefaultsToOne(t *testing.T) {
	for _, months := range []int{0, -4} {
		tn := newTenant(t, PaymentStatusPending, true, nil)
		tn.Renew(date(t, "2025-05-10"), months)
		assert.Equal(t, "2025-06-10", biztime.FormatDate(*tn.NextPaymentDate()))
	}
}

func TestBlockUnblock_PreserveActiveAndDates(t *testing.T) {
	next := date(t, "2030-01-01")

	for _, active := range []bool{true, false} {
		tn := newTenant(t, PaymentStatusActive, active, &next)

		tn.Block()
		assert.Equal(t, PaymentStatusOverdue, tn.PaymentStatus())
		assert.True(t, tn.IsOverdue())
		assert.Equal(t, active, tn.IsActive())

		tn.Unblock()
		assert.Equal(t, PaymentStatusActive, tn.PaymentStatus())
		assert.Equal(t, active, tn.IsActive())
		assert.Equal(t, next, *tn.NextPaymentDate())
	}
}

// =====================================================================
// Sweep rules
// =====================================================================

func TestEvaluateSweep(t *testing.T) {
	now := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)
	day := func(offset int) *time.Time {
		return ptr(time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC).AddDate(0, 0, offset))
	}

	tests := []struct {
		name   string
		status PaymentStatus
		next   *time.Time
		want   SweepTransition
	}{
		{"no next payment date", PaymentStatusActive, nil, SweepNone},
		{"lapsed yesterday while active", PaymentStatusActive, day(-1), SweepOverdue},
		{"lapsed while pending", PaymentStatusPending, day(-3), SweepOverdue},
		{"lapsed but already overdue", PaymentStatusOverdue, day(-3), SweepNone},
		{"due today earlier hour is not lapsed", PaymentStatusActive, day(0), SweepPending},
		{"due in five days", PaymentStatusActive, day(5), SweepPending},
		{"due in six days", PaymentStatusActive, day(6), SweepNone},
		{"pending stays pending", PaymentStatusPending, day(2), SweepNone},
		{"overdue with future date is left alone", PaymentStatusOverdue, day(2), SweepNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tn := newTenant(t, tt.status, true, tt.next)
			assert.Equal(t, tt.want, tn.EvaluateSweep(now, DefaultPendingWindowDays))
		})
	}
}

func TestSweepCutoffs_MatchEvaluateSweep(t *testing.T) {
	now := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)
	overdueBefore, pendingBefore := SweepCutoffs(now, DefaultPendingWindowDays)

	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), overdueBefore)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), pendingBefore)

	for offset := -3; offset <= 7; offset++ {
		next := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
		tn := newTenant(t, PaymentStatusActive, true, &next)
		switch tn.EvaluateSweep(now, DefaultPendingWindowDays) {
		case SweepOverdue:
			assert.True(t, next.Before(overdueBefore), "offset %d", offset)
		case SweepPending:
			assert.False(t, next.Before(overdueBefore), "offset %d", offset)
			assert.True(t, next.Before(pendingBefore), "offset %d", offset)
		default:
			assert.False(t, next.Before(pendingBefore), "offset %d", offset)
		}
	}
}

func TestApplySweep_OverdueDeactivates(t *testing.T) {
	now := time.Now().UTC()
	tn := newTenant(t, PaymentStatusActive, true, ptr(now.AddDate(0, 0, -1)))

	assert.Equal(t, SweepOverdue, tn.ApplySweep(now, DefaultPendingWindowDays))
	assert.Equal(t, PaymentStatusOverdue, tn.PaymentStatus())
	assert.False(t, tn.IsActive())
}

func TestApplySweep_Idempotent(t *testing.T) {
	now := time.Now().UTC()

	for _, next := range []time.Time{now.AddDate(0, 0, -1), now.AddDate(0, 0, 3), now.AddDate(0, 1, 0)} {
		tn := newTenant(t, PaymentStatusActive, true, ptr(next))

		tn.ApplySweep(now, DefaultPendingWindowDays)
		status, active := tn.PaymentStatus(), tn.IsActive()

		assert.Equal(t, SweepNone, tn.ApplySweep(now, DefaultPendingWindowDays))
		assert.Equal(t, status, tn.PaymentStatus())
		assert.Equal(t, active, tn.IsActive())
	}
}

func TestApplySweep_PendingKeepsAccess(t *testing.T) {
	now := time.Now().UTC()
	tn := newTenant(t, PaymentStatusActive, true, ptr(now.AddDate(0, 0, 2)))

	assert.Equal(t, SweepPending, tn.ApplySweep(now, DefaultPendingWindowDays))
	assert.True(t, tn.IsActive())
	assert.False(t, tn.IsOverdue())
}

// =====================================================================
// Derived values
// =====================================================================

func TestDaysToExpiration(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)

	assert.Nil(t, newTenant(t, PaymentStatusActive, true, nil).DaysToExpiration(now))

	future := newTenant(t, PaymentStatusActive, true, ptr(time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 10, *future.DaysToExpiration(now))

	past := newTenant(t, PaymentStatusOverdue, false, ptr(time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, -3, *past.DaysToExpiration(now))
}

func TestRemainingStorageMB(t *testing.T) {
	now := time.Now()
	tn, err := ReconstructTenant(1, 1, "Acme", true, "active", nil, nil, 5119, nil, now, now)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, tn.RemainingStorageMB(5120), 1e-9)
	assert.Zero(t, tn.RemainingStorageMB(100))
}
