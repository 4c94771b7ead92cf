package usecases

import (
	"context"

	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

// notifyCatalogChanged never fails the caller; the mutation is already committed.
func notifyCatalogChanged(ctx context.Context, notifier CatalogChangeNotifier, log logger.Interface, reason string) {
	if notifier == nil {
		return
	}
	if err := notifier.NotifyCatalogChanged(ctx, reason); err != nil {
		log.Warnw("failed to broadcast catalog change", "reason", reason, "error", err)
	}
}
