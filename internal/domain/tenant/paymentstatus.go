package tenant

// PaymentStatus is the subscription axis of a tenant. It is independent of Tenant.Active.
type PaymentStatus string

const (
	PaymentStatusActive  PaymentStatus = "active"
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusOverdue PaymentStatus = "overdue"
)

func (s PaymentStatus) String() string {
	return string(s)
}

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusActive, PaymentStatusPending, PaymentStatusOverdue:
		return true
	}
	return false
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	status := PaymentStatus(s)
	if !status.IsValid() {
		return "", ErrStatusInvalid(s)
	}
	return status, nil
}

// SweepTransition is the outcome of evaluating a tenant against the calendar.
type SweepTransition int

const (
	SweepNone SweepTransition = iota
	// SweepOverdue moves to overdue and deactivates the tenant.
	SweepOverdue
	// SweepPending is a warning state with no access change.
	SweepPending
)

func (t SweepTransition) String() string {
	switch t {
	case SweepOverdue:
		return "overdue"
	case SweepPending:
		return "pending"
	default:
		return "none"
	}
}
