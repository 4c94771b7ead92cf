package tenant

import (
	"fmt"
	"strings"
	"time"

	"github.com/tenantgate/tenantgate/internal/shared/biztime"
)

// DefaultPendingWindowDays is how close the next payment date must be to flag a tenant pending.
const DefaultPendingWindowDays = 5

// Tenant is a billed customer account.
//
// PaymentStatus and Active are separate axes: Renew, Block and Unblock only touch
// the payment status. Only the sweep's overdue transition also clears Active.
type Tenant struct {
	id              uint
	planID          uint
	name            string
	active          bool
	paymentStatus   PaymentStatus
	lastPaymentDate *time.Time
	nextPaymentDate *time.Time
	storageUsedMB   float64
	metadata        map[string]interface{}
	createdAt       time.Time
	updatedAt       time.Time
}

func NewTenant(name string, planID uint, nextPaymentDate *time.Time) (*Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: tenant name is required", ErrInvalidTenantInput)
	}
	if planID == 0 {
		return nil, fmt.Errorf("%w: plan ID is required", ErrInvalidTenantInput)
	}

	now := biztime.NowUTC()
	return &Tenant{
		planID:          planID,
		name:            name,
		active:          true,
		paymentStatus:   PaymentStatusActive,
		nextPaymentDate: utcPtr(nextPaymentDate),
		metadata:        make(map[string]interface{}),
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

func ReconstructTenant(id, planID uint, name string, active bool, paymentStatus string,
	lastPaymentDate, nextPaymentDate *time.Time, storageUsedMB float64,
	metadata map[string]interface{}, createdAt, updatedAt time.Time) (*Tenant, error) {

	if id == 0 {
		return nil, fmt.Errorf("tenant ID cannot be zero")
	}
	status, err := ParsePaymentStatus(paymentStatus)
	if err != nil {
		return nil, err
	}
	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	return &Tenant{
		id:              id,
		planID:          planID,
		name:            name,
		active:          active,
		paymentStatus:   status,
		lastPaymentDate: utcPtr(lastPaymentDate),
		nextPaymentDate: utcPtr(nextPaymentDate),
		storageUsedMB:   storageUsedMB,
		metadata:        metadata,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}, nil
}

func (t *Tenant) ID() uint                         { return t.id }
func (t *Tenant) PlanID() uint                     { return t.planID }
func (t *Tenant) Name() string                     { return t.name }
func (t *Tenant) IsActive() bool                   { return t.active }
func (t *Tenant) PaymentStatus() PaymentStatus     { return t.paymentStatus }
func (t *Tenant) LastPaymentDate() *time.Time      { return t.lastPaymentDate }
func (t *Tenant) NextPaymentDate() *time.Time      { return t.nextPaymentDate }
func (t *Tenant) StorageUsedMB() float64           { return t.storageUsedMB }
func (t *Tenant) Metadata() map[string]interface{} { return t.metadata }
func (t *Tenant) CreatedAt() time.Time             { return t.createdAt }
func (t *Tenant) UpdatedAt() time.Time             { return t.updatedAt }

func (t *Tenant) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("tenant ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("tenant ID cannot be zero")
	}
	t.id = id
	return nil
}

// IsOverdue reports whether the subscription gate should reject this tenant.
// The operator bypass is applied by the caller.
func (t *Tenant) IsOverdue() bool {
	return t.paymentStatus == PaymentStatusOverdue
}

// Renew records a payment and pushes the next payment date months ahead of paymentDate.
// months below 1 is treated as 1. Active is left untouched.
func (t *Tenant) Renew(paymentDate time.Time, months int) {
	if months < 1 {
		months = 1
	}
	paid := paymentDate.UTC()
	next := biztime.AddMonths(paid, months)

	t.paymentStatus = PaymentStatusActive
	t.lastPaymentDate = &paid
	t.nextPaymentDate = &next
	t.touch()
}

// Block forces the tenant overdue without touching Active or dates.
func (t *Tenant) Block() {
	t.paymentStatus = PaymentStatusOverdue
	t.touch()
}

// Unblock restores an active payment status without touching Active or dates.
func (t *Tenant) Unblock() {
	t.paymentStatus = PaymentStatusActive
	t.touch()
}

func (t *Tenant) SetActive(active bool) {
	t.active = active
	t.touch()
}

func (t *Tenant) ChangePlan(planID uint) error {
	if planID == 0 {
		return fmt.Errorf("%w: plan ID is required", ErrInvalidTenantInput)
	}
	t.planID = planID
	t.touch()
	return nil
}

func (t *Tenant) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: tenant name is required", ErrInvalidTenantInput)
	}
	t.name = name
	t.touch()
	return nil
}

// EvaluateSweep decides the date-driven transition for now without mutating the tenant.
//
// Dates are compared at business-day granularity. A next payment date strictly before
// today moves a not-yet-overdue tenant to overdue. Otherwise an active tenant whose
// next payment date is at most windowDays away becomes pending.
func (t *Tenant) EvaluateSweep(now time.Time, windowDays int) SweepTransition {
	if t.nextPaymentDate == nil {
		return SweepNone
	}

	days := biztime.DaysBetween(now, *t.nextPaymentDate)
	if days < 0 && t.paymentStatus != PaymentStatusOverdue {
		return SweepOverdue
	}
	if t.paymentStatus == PaymentStatusActive && days >= 0 && days <= windowDays {
		return SweepPending
	}
	return SweepNone
}

// SweepCutoffs returns the instants EvaluateSweep compares against for now.
// A next payment date before overdueBefore is lapsed; one in [overdueBefore, pendingBefore)
// is inside the pending window.
func SweepCutoffs(now time.Time, windowDays int) (overdueBefore, pendingBefore time.Time) {
	return biztime.StartOfDay(now), biztime.StartOfDayAfter(now, windowDays+1)
}

// ApplySweep evaluates and applies the transition in memory.
func (t *Tenant) ApplySweep(now time.Time, windowDays int) SweepTransition {
	transition := t.EvaluateSweep(now, windowDays)
	switch transition {
	case SweepOverdue:
		t.paymentStatus = PaymentStatusOverdue
		t.active = false
		t.touch()
	case SweepPending:
		t.paymentStatus = PaymentStatusPending
		t.touch()
	}
	return transition
}

// DaysToExpiration counts business days from now until the next payment date.
// It is nil when no date is set and negative once the date has passed.
func (t *Tenant) DaysToExpiration(now time.Time) *int {
	if t.nextPaymentDate == nil {
		return nil
	}
	days := biztime.DaysBetween(now, *t.nextPaymentDate)
	return &days
}

// RemainingStorageMB is the headroom left under limitMB, never below zero.
func (t *Tenant) RemainingStorageMB(limitMB int64) float64 {
	remaining := float64(limitMB) - t.storageUsedMB
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (t *Tenant) touch() {
	t.updatedAt = biztime.NowUTC()
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
