// Package testutil provides in-memory repositories for application and HTTP tests.
package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/tenantgate/tenantgate/internal/domain/catalog"
	"github.com/tenantgate/tenantgate/internal/domain/tenant"
	apperrors "github.com/tenantgate/tenantgate/internal/shared/errors"
)

// ErrInjected is returned by a store whose Fail field is set.
var ErrInjected = errors.New("injected failure")

// Store holds catalog and tenant records in memory and exposes each repository view.
type Store struct {
	mu sync.Mutex

	plans    map[uint]*catalog.Plan
	modules  map[uint]*catalog.Module
	features map[uint]*catalog.ModuleFeature
	links    map[uint]map[uint]struct{}
	tenants  map[uint]*tenant.Tenant

	nextID uint

	// Fail makes every call return ErrInjected.
	Fail bool
	// Calls counts repository calls by name.
	Calls map[string]int
}

func NewStore() *Store {
	return &Store{
		plans:    make(map[uint]*catalog.Plan),
		modules:  make(map[uint]*catalog.Module),
		features: make(map[uint]*catalog.ModuleFeature),
		links:    make(map[uint]map[uint]struct{}),
		tenants:  make(map[uint]*tenant.Tenant),
		Calls:    make(map[string]int),
	}
}

func (s *Store) enter(name string) error {
	s.mu.Lock()
	s.Calls[name]++
	if s.Fail {
		s.mu.Unlock()
		return ErrInjected
	}
	return nil
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

func (s *Store) CallCount(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Calls[name]
}

func (s *Store) Plans() catalog.PlanRepository        { return planRepo{s} }
func (s *Store) Modules() catalog.ModuleRepository    { return moduleRepo{s} }
func (s *Store) Features() catalog.FeatureRepository  { return featureRepo{s} }
func (s *Store) Tenants() tenant.Repository           { return tenantRepo{s} }
func (s *Store) Transactions() *NoopTransactionRunner { return &NoopTransactionRunner{} }

// NoopTransactionRunner runs fn directly.
type NoopTransactionRunner struct{}

func (NoopTransactionRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// --- plans ---

type planRepo struct{ s *Store }

func (r planRepo) Create(ctx context.Context, p *catalog.Plan) error {
	if err := r.s.enter("plans.Create"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	for _, existing := range r.s.plans {
		if existing.Code() == p.Code() {
			return apperrors.NewConflictError("plan code already exists")
		}
	}
	if err := p.SetID(r.s.id()); err != nil {
		return err
	}
	r.s.plans[p.ID()] = p
	return nil
}

func (r planRepo) Update(ctx context.Context, p *catalog.Plan) error {
	if err := r.s.enter("plans.Update"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if _, ok := r.s.plans[p.ID()]; !ok {
		return apperrors.NewNotFoundError("plan not found")
	}
	r.s.plans[p.ID()] = p
	return nil
}

func (r planRepo) Delete(ctx context.Context, id uint) error {
	if err := r.s.enter("plans.Delete"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if _, ok := r.s.plans[id]; !ok {
		return apperrors.NewNotFoundError("plan not found")
	}
	delete(r.s.plans, id)
	delete(r.s.links, id)
	return nil
}

func (r planRepo) GetByID(ctx context.Context, id uint) (*catalog.Plan, error) {
	if err := r.s.enter("plans.GetByID"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	return r.s.plans[id], nil
}

func (r planRepo) GetByCode(ctx context.Context, code string) (*catalog.Plan, error) {
	if err := r.s.enter("plans.GetByCode"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	for _, p := range r.s.plans {
		if p.Code() == code {
			return p, nil
		}
	}
	return nil, nil
}

func (r planRepo) List(ctx context.Context) ([]*catalog.Plan, error) {
	if err := r.s.enter("plans.List"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	result := make([]*catalog.Plan, 0, len(r.s.plans))
	for _, p := range r.s.plans {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })
	return result, nil
}

// --- modules ---

type moduleRepo struct{ s *Store }

func (r moduleRepo) Create(ctx context.Context, m *catalog.Module) error {
	if err := r.s.enter("modules.Create"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	for _, existing := range r.s.modules {
		if existing.Code() == m.Code() {
			return apperrors.NewConflictError("module code already exists")
		}
	}
	if err := m.SetID(r.s.id()); err != nil {
		return err
	}
	r.s.modules[m.ID()] = m
	return nil
}

func (r moduleRepo) Update(ctx context.Context, m *catalog.Module) error {
	if err := r.s.enter("modules.Update"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if _, ok := r.s.modules[m.ID()]; !ok {
		return apperrors.NewNotFoundError("module not found")
	}
	r.s.modules[m.ID()] = m
	return nil
}

func (r moduleRepo) Delete(ctx context.Context, id uint) error {
	if err := r.s.enter("modules.Delete"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if _, ok := r.s.modules[id]; !ok {
		return apperrors.NewNotFoundError("module not found")
	}
	delete(r.s.modules, id)
	for _, set := range r.s.links {
		delete(set, id)
	}
	for fid, f := range r.s.features {
		if f.ModuleID() == id {
			delete(r.s.features, fid)
		}
	}
	return nil
}

func (r moduleRepo) GetByID(ctx context.Context, id uint) (*catalog.Module, error) {
	if err := r.s.enter("modules.GetByID"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	return r.s.modules[id], nil
}

func (r moduleRepo) GetByCode(ctx context.Context, code string) (*catalog.Module, error) {
	if err := r.s.enter("modules.GetByCode"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	for _, m := range r.s.modules {
		if m.Code() == code {
			return m, nil
		}
	}
	return nil, nil
}

func (r moduleRepo) List(ctx context.Context) ([]*catalog.Module, error) {
	if err := r.s.enter("modules.List"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	return r.s.sortedModules(func(*catalog.Module) bool { return true }), nil
}

func (r moduleRepo) ListByIDs(ctx context.Context, ids []uint) ([]*catalog.Module, error) {
	if err := r.s.enter("modules.ListByIDs"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	want := make(map[uint]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	return r.s.sortedModules(func(m *catalog.Module) bool { return want[m.ID()] }), nil
}

func (r moduleRepo) ListByPlan(ctx context.Context, planID uint) ([]*catalog.Module, error) {
	if err := r.s.enter("modules.ListByPlan"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	linked := r.s.links[planID]
	return r.s.sortedModules(func(m *catalog.Module) bool {
		_, ok := linked[m.ID()]
		return ok
	}), nil
}

func (r moduleRepo) ListCore(ctx context.Context) ([]*catalog.Module, error) {
	if err := r.s.enter("modules.ListCore"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	return r.s.sortedModules(func(m *catalog.Module) bool { return m.IsCore() }), nil
}

func (r moduleRepo) ListPlanModuleIDs(ctx context.Context, planID uint) ([]uint, error) {
	if err := r.s.enter("modules.ListPlanModuleIDs"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	ids := make([]uint, 0, len(r.s.links[planID]))
	for id := range r.s.links[planID] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r moduleRepo) ReplacePlanModules(ctx context.Context, planID uint, moduleIDs []uint) error {
	if err := r.s.enter("modules.ReplacePlanModules"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	set := make(map[uint]struct{}, len(moduleIDs))
	for _, id := range moduleIDs {
		set[id] = struct{}{}
	}
	r.s.links[planID] = set
	return nil
}

func (s *Store) sortedModules(keep func(*catalog.Module) bool) []*catalog.Module {
	result := make([]*catalog.Module, 0)
	for _, m := range s.modules {
		if keep(m) {
			result = append(result, m)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })
	return result
}

// --- features ---

type featureRepo struct{ s *Store }

func (r featureRepo) Create(ctx context.Context, f *catalog.ModuleFeature) error {
	if err := r.s.enter("features.Create"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if err := f.SetID(r.s.id()); err != nil {
		return err
	}
	r.s.features[f.ID()] = f
	return nil
}

func (r featureRepo) Update(ctx context.Context, f *catalog.ModuleFeature) error {
	if err := r.s.enter("features.Update"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if _, ok := r.s.features[f.ID()]; !ok {
		return apperrors.NewNotFoundError("module feature not found")
	}
	r.s.features[f.ID()] = f
	return nil
}

func (r featureRepo) Delete(ctx context.Context, id uint) error {
	if err := r.s.enter("features.Delete"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if _, ok := r.s.features[id]; !ok {
		return apperrors.NewNotFoundError("module feature not found")
	}
	delete(r.s.features, id)
	return nil
}

func (r featureRepo) GetByID(ctx context.Context, id uint) (*catalog.ModuleFeature, error) {
	if err := r.s.enter("features.GetByID"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	return r.s.features[id], nil
}

func (r featureRepo) ListByModule(ctx context.Context, moduleID uint) ([]*catalog.ModuleFeature, error) {
	return r.ListByModules(ctx, []uint{moduleID})
}

func (r featureRepo) ListByModules(ctx context.Context, moduleIDs []uint) ([]*catalog.ModuleFeature, error) {
	if err := r.s.enter("features.ListByModules"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	want := make(map[uint]bool, len(moduleIDs))
	for _, id := range moduleIDs {
		want[id] = true
	}
	result := make([]*catalog.ModuleFeature, 0)
	for _, f := range r.s.features {
		if want[f.ModuleID()] {
			result = append(result, f)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })
	return result, nil
}

// --- tenants ---

type tenantRepo struct{ s *Store }

func (r tenantRepo) Create(ctx context.Context, t *tenant.Tenant) error {
	if err := r.s.enter("tenants.Create"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if err := t.SetID(r.s.id()); err != nil {
		return err
	}
	r.s.tenants[t.ID()] = cloneTenant(t, t.StorageUsedMB())
	return nil
}

func (r tenantRepo) Update(ctx context.Context, t *tenant.Tenant) error {
	if err := r.s.enter("tenants.Update"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	current, ok := r.s.tenants[t.ID()]
	if !ok {
		return apperrors.NewNotFoundError("tenant not found")
	}
	r.s.tenants[t.ID()] = cloneTenant(t, current.StorageUsedMB())
	return nil
}

func (r tenantRepo) GetByID(ctx context.Context, id uint) (*tenant.Tenant, error) {
	if err := r.s.enter("tenants.GetByID"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	t, ok := r.s.tenants[id]
	if !ok {
		return nil, nil
	}
	return cloneTenant(t, t.StorageUsedMB()), nil
}

func (r tenantRepo) List(ctx context.Context, filter tenant.ListFilter) ([]*tenant.Tenant, int64, error) {
	if err := r.s.enter("tenants.List"); err != nil {
		return nil, 0, err
	}
	defer r.s.mu.Unlock()
	all := r.s.sortedTenants(func(t *tenant.Tenant) bool {
		if filter.PaymentStatus != nil && t.PaymentStatus() != *filter.PaymentStatus {
			return false
		}
		if filter.PlanID != nil && t.PlanID() != *filter.PlanID {
			return false
		}
		return true
	})
	total := int64(len(all))
	start := min(filter.Offset, len(all))
	end := len(all)
	if filter.Limit > 0 {
		end = min(start+filter.Limit, len(all))
	}
	return all[start:end], total, nil
}

func (r tenantRepo) CountByPlan(ctx context.Context, planID uint) (int64, error) {
	if err := r.s.enter("tenants.CountByPlan"); err != nil {
		return 0, err
	}
	defer r.s.mu.Unlock()
	var n int64
	for _, t := range r.s.tenants {
		if t.PlanID() == planID {
			n++
		}
	}
	return n, nil
}

func (r tenantRepo) ListWithNextPaymentDate(ctx context.Context, afterID uint, limit int) ([]*tenant.Tenant, error) {
	if err := r.s.enter("tenants.ListWithNextPaymentDate"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	all := r.s.sortedTenants(func(t *tenant.Tenant) bool {
		return t.ID() > afterID && t.NextPaymentDate() != nil
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r tenantRepo) MarkOverdue(ctx context.Context, id uint, dueBefore time.Time) (bool, error) {
	if err := r.s.enter("tenants.MarkOverdue"); err != nil {
		return false, err
	}
	defer r.s.mu.Unlock()
	t, ok := r.s.tenants[id]
	if !ok || t.PaymentStatus() == tenant.PaymentStatusOverdue ||
		t.NextPaymentDate() == nil || !t.NextPaymentDate().Before(dueBefore) {
		return false, nil
	}
	r.s.tenants[id] = rebuildTenant(t, string(tenant.PaymentStatusOverdue), false, t.StorageUsedMB())
	return true, nil
}

func (r tenantRepo) MarkPending(ctx context.Context, id uint, from, until time.Time) (bool, error) {
	if err := r.s.enter("tenants.MarkPending"); err != nil {
		return false, err
	}
	defer r.s.mu.Unlock()
	t, ok := r.s.tenants[id]
	if !ok || t.PaymentStatus() != tenant.PaymentStatusActive || t.NextPaymentDate() == nil {
		return false, nil
	}
	if next := *t.NextPaymentDate(); next.Before(from) || !next.Before(until) {
		return false, nil
	}
	r.s.tenants[id] = rebuildTenant(t, string(tenant.PaymentStatusPending), t.IsActive(), t.StorageUsedMB())
	return true, nil
}

func (r tenantRepo) IncrementStorageUsed(ctx context.Context, id uint, deltaMB float64) (float64, error) {
	if err := r.s.enter("tenants.IncrementStorageUsed"); err != nil {
		return 0, err
	}
	defer r.s.mu.Unlock()
	t, ok := r.s.tenants[id]
	if !ok {
		return 0, apperrors.NewNotFoundError("tenant not found")
	}
	used := t.StorageUsedMB() + deltaMB
	r.s.tenants[id] = cloneTenant(t, used)
	return used, nil
}

func (s *Store) sortedTenants(keep func(*tenant.Tenant) bool) []*tenant.Tenant {
	result := make([]*tenant.Tenant, 0)
	for _, t := range s.tenants {
		if keep(t) {
			result = append(result, cloneTenant(t, t.StorageUsedMB()))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })
	return result
}

func cloneTenant(t *tenant.Tenant, storageUsedMB float64) *tenant.Tenant {
	return rebuildTenant(t, string(t.PaymentStatus()), t.IsActive(), storageUsedMB)
}

func rebuildTenant(t *tenant.Tenant, status string, active bool, storageUsedMB float64) *tenant.Tenant {
	c, err := tenant.ReconstructTenant(t.ID(), t.PlanID(), t.Name(), active, status,
		t.LastPaymentDate(), t.NextPaymentDate(), storageUsedMB, t.Metadata(), t.CreatedAt(), time.Now().UTC())
	if err != nil {
		panic(err)
	}
	return c
}
