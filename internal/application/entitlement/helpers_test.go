package entitlement

import (
	"time"

	"github.com/tenantgate/tenantgate/internal/domain/catalog"
)

var zeroTime = time.Time{}

func moduleIDs(modules []*catalog.Module) []uint {
	ids := make([]uint, 0, len(modules))
	for _, m := range modules {
		ids = append(ids, m.ID())
	}
	return ids
}
