package handlers

import (
	"strconv"

	"github.com/tenantgate/tenantgate/internal/shared/errors"
)

func parseUintQuery(raw, entityName string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid " + entityName + " ID")
	}
	return uint(id), nil
}
