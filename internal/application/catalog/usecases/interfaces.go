// Package usecases implements operator management of the plan/module/feature catalog.
package usecases

import "context"

// CatalogChangeNotifier is told about every catalog mutation so cached entitlements can be dropped.
type CatalogChangeNotifier interface {
	NotifyCatalogChanged(ctx context.Context, reason string) error
}

// TransactionRunner is satisfied by db.TransactionManager.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
