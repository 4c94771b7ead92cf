package tenant

import (
	"errors"
	"fmt"
)

var (
	ErrTenantNotFound       = errors.New("tenant not found")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
	ErrInvalidTenantInput   = errors.New("invalid tenant input")
)

func ErrStatusInvalid(status string) error {
	return fmt.Errorf("%w: %s", ErrInvalidPaymentStatus, status)
}
