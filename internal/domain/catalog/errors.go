package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrPlanNotFound       = errors.New("plan not found")
	ErrPlanCodeExists     = errors.New("plan code already exists")
	ErrPlanInUse          = errors.New("plan is referenced by tenants")
	ErrModuleNotFound     = errors.New("module not found")
	ErrModuleCodeExists   = errors.New("module code already exists")
	ErrFeatureNotFound    = errors.New("module feature not found")
	ErrInvalidPattern     = errors.New("invalid feature pattern")
	ErrInvalidPlanLimits  = errors.New("invalid plan limits")
	ErrInvalidModuleInput = errors.New("invalid module input")
)

func ErrPatternInvalid(raw, reason string) error {
	return fmt.Errorf("%w %q: %s", ErrInvalidPattern, raw, reason)
}
