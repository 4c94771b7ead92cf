package handlers

import (
	"context"

	"github.com/tenantgate/tenantgate/internal/application/storagequota"
)

// Use case interfaces for SubscriptionHandler. The summary reuses getSubscriptionSummaryUseCase.

type storageUsageReader interface {
	GetUsage(ctx context.Context, tenantID uint) (*storagequota.Usage, error)
}
