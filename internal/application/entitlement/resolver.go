// Package entitlement decides whether a tenant's plan reaches a requested path.
package entitlement

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/tenantgate/tenantgate/internal/domain/catalog"
	"github.com/tenantgate/tenantgate/internal/domain/tenant"
	"github.com/tenantgate/tenantgate/internal/shared/authorization"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

const (
	DefaultCacheSize = 256
	DefaultCacheTTL  = 5 * time.Minute

	featureSetLoadTimeout = 10 * time.Second
)

// Resolver computes entitlements from the catalog. Compiled feature sets are cached
// per plan until Invalidate is called or the TTL passes.
type Resolver struct {
	planRepo    catalog.PlanRepository
	moduleRepo  catalog.ModuleRepository
	featureRepo catalog.FeatureRepository
	tenantRepo  tenant.Repository
	cache       *expirable.LRU[uint, *FeatureSet]
	loads       singleflight.Group
	generation  atomic.Uint64
	logger      logger.Interface
}

func NewResolver(
	planRepo catalog.PlanRepository,
	moduleRepo catalog.ModuleRepository,
	featureRepo catalog.FeatureRepository,
	tenantRepo tenant.Repository,
	cacheSize int,
	cacheTTL time.Duration,
	logger logger.Interface,
) *Resolver {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &Resolver{
		planRepo:    planRepo,
		moduleRepo:  moduleRepo,
		featureRepo: featureRepo,
		tenantRepo:  tenantRepo,
		cache:       expirable.NewLRU[uint, *FeatureSet](cacheSize, nil, cacheTTL),
		logger:      logger,
	}
}

// IsEntitled reports whether actor may reach requestPath.
//
// The operator is always entitled. A missing tenant, plan or feature resolves to
// false; only data access failures are returned as errors.
func (r *Resolver) IsEntitled(ctx context.Context, actor authorization.Actor, requestPath string) (bool, error) {
	if actor.IsOperator() {
		return true, nil
	}
	if actor.TenantID == 0 {
		return false, nil
	}

	t, err := r.tenantRepo.GetByID(ctx, actor.TenantID)
	if err != nil {
		return false, fmt.Errorf("failed to get tenant: %w", err)
	}
	if t == nil {
		r.logger.Debugw("entitlement denied, tenant not found", "tenant_id", actor.TenantID)
		return false, nil
	}

	fs, err := r.FeatureSetForPlan(ctx, t.PlanID())
	if err != nil {
		return false, err
	}
	return fs.Allows(requestPath), nil
}

// FeatureSetForPlan returns the cached feature set, loading it once across concurrent callers.
func (r *Resolver) FeatureSetForPlan(ctx context.Context, planID uint) (*FeatureSet, error) {
	if fs, ok := r.cache.Get(planID); ok {
		return fs, nil
	}

	v, err, _ := r.loads.Do(strconv.FormatUint(uint64(planID), 10), func() (interface{}, error) {
		// the load is shared, so it must outlive the request that started it
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), featureSetLoadTimeout)
		defer cancel()

		gen := r.generation.Load()
		fs, err := r.loadFeatureSet(loadCtx, planID)
		if err != nil {
			return nil, err
		}
		// a catalog change during the load makes fs stale
		if r.generation.Load() == gen {
			r.cache.Add(planID, fs)
		}
		return fs, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*FeatureSet), nil
}

func (r *Resolver) loadFeatureSet(ctx context.Context, planID uint) (*FeatureSet, error) {
	plan, err := r.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		r.logger.Warnw("tenant references a missing plan", "plan_id", planID)
		return newFeatureSet(planID, nil, nil), nil
	}

	modules, err := r.EffectiveModules(ctx, planID)
	if err != nil {
		return nil, err
	}
	if len(modules) == 0 {
		return newFeatureSet(planID, nil, nil), nil
	}

	ids := make([]uint, 0, len(modules))
	for _, m := range modules {
		ids = append(ids, m.ID())
	}
	features, err := r.featureRepo.ListByModules(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list module features: %w", err)
	}

	r.logger.Debugw("compiled plan feature set",
		"plan_id", planID,
		"modules", len(modules),
		"features", len(features),
	)
	return newFeatureSet(planID, modules, features), nil
}

// EffectiveModules is PlanModules(planID) ∪ CoreModules(), restricted to active modules
// and ordered by ID.
func (r *Resolver) EffectiveModules(ctx context.Context, planID uint) ([]*catalog.Module, error) {
	linked, err := r.moduleRepo.ListByPlan(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plan modules: %w", err)
	}
	core, err := r.moduleRepo.ListCore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list core modules: %w", err)
	}
	return UnionModules(linked, core), nil
}

// UnionModules merges module lists by ID, dropping inactive modules.
func UnionModules(lists ...[]*catalog.Module) []*catalog.Module {
	seen := make(map[uint]*catalog.Module)
	for _, list := range lists {
		for _, m := range list {
			if m == nil || !m.IsActive() {
				continue
			}
			seen[m.ID()] = m
		}
	}

	result := make([]*catalog.Module, 0, len(seen))
	for _, m := range seen {
		result = append(result, m)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })
	return result
}

// Invalidate drops every cached feature set.
func (r *Resolver) Invalidate() {
	r.generation.Add(1)
	r.cache.Purge()
	r.logger.Debugw("entitlement cache invalidated")
}
