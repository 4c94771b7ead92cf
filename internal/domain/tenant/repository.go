package tenant

import (
	"context"
	"time"
)

type ListFilter struct {
	PaymentStatus *PaymentStatus
	PlanID        *uint
	Offset        int
	Limit         int
}

// Repository persists tenants. GetByID returns (nil, nil) when the tenant does not exist.
type Repository interface {
	Create(ctx context.Context, t *Tenant) error
	// Update writes every field except the storage counter, which only IncrementStorageUsed changes.
	Update(ctx context.Context, t *Tenant) error
	GetByID(ctx context.Context, id uint) (*Tenant, error)
	List(ctx context.Context, filter ListFilter) ([]*Tenant, int64, error)
	CountByPlan(ctx context.Context, planID uint) (int64, error)

	// ListWithNextPaymentDate returns a page of tenants that have a next payment date, ordered by ID.
	ListWithNextPaymentDate(ctx context.Context, afterID uint, limit int) ([]*Tenant, error)
	// MarkOverdue sets overdue and inactive in one statement unless already overdue
	// or the next payment date is no longer before dueBefore.
	MarkOverdue(ctx context.Context, id uint, dueBefore time.Time) (bool, error)
	// MarkPending moves an active tenant to pending while its next payment date
	// still falls in [from, until).
	MarkPending(ctx context.Context, id uint, from, until time.Time) (bool, error)

	// IncrementStorageUsed atomically adds deltaMB and returns the new total.
	IncrementStorageUsed(ctx context.Context, id uint, deltaMB float64) (float64, error)
}
