// Package usecases implements the tenant subscription lifecycle: renewal, operator
// block and unblock, the date-driven sweep and tenant administration.
package usecases

import (
	"context"
	"time"
)

// SweepLocker gives one process at a time the right to sweep.
// acquired is false when another holder has the lock; release is nil in that case.
type SweepLocker interface {
	TryLock(ctx context.Context) (release func(), acquired bool, err error)
}

// Clock returns the current instant. It defaults to biztime.NowUTC.
type Clock func() time.Time
