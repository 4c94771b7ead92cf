package testutil

import (
	"context"
	"time"

	"github.com/tenantgate/tenantgate/internal/domain/catalog"
	"github.com/tenantgate/tenantgate/internal/domain/tenant"
)

// MustPlan creates and stores a plan.
func (s *Store) MustPlan(code string, storageLimitMB int64) *catalog.Plan {
	p, err := catalog.NewPlan(code, "Plan "+code, "", 0, storageLimitMB, 0, 0)
	if err != nil {
		panic(err)
	}
	if err := s.Plans().Create(context.Background(), p); err != nil {
		panic(err)
	}
	return p
}

// MustModule creates and stores a module with the given feature paths.
func (s *Store) MustModule(code string, isCore bool, featurePaths ...string) *catalog.Module {
	m, err := catalog.NewModule(code, code, "", isCore)
	if err != nil {
		panic(err)
	}
	if err := s.Modules().Create(context.Background(), m); err != nil {
		panic(err)
	}
	for _, path := range featurePaths {
		f, err := catalog.NewModuleFeature(m.ID(), path, path, "")
		if err != nil {
			panic(err)
		}
		if err := s.Features().Create(context.Background(), f); err != nil {
			panic(err)
		}
	}
	return m
}

// MustLink replaces the plan's module set.
func (s *Store) MustLink(planID uint, moduleIDs ...uint) {
	if err := s.Modules().ReplacePlanModules(context.Background(), planID, moduleIDs); err != nil {
		panic(err)
	}
}

// TenantSeed describes a stored tenant for MustTenant.
type TenantSeed struct {
	PlanID          uint
	Active          bool
	Status          tenant.PaymentStatus
	NextPaymentDate *time.Time
	StorageUsedMB   float64
}

// MustTenant stores a tenant in the given state.
func (s *Store) MustTenant(seed TenantSeed) *tenant.Tenant {
	if seed.Status == "" {
		seed.Status = tenant.PaymentStatusActive
	}
	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := tenant.ReconstructTenant(s.id(), seed.PlanID, "Tenant", seed.Active, string(seed.Status),
		nil, seed.NextPaymentDate, seed.StorageUsedMB, nil, now, now)
	if err != nil {
		panic(err)
	}
	s.tenants[t.ID()] = t
	return cloneTenant(t, t.StorageUsedMB())
}
