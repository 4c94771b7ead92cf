package catalog

import "context"

// Lookups return (nil, nil) when the record does not exist.

type PlanRepository interface {
	Create(ctx context.Context, plan *Plan) error
	Update(ctx context.Context, plan *Plan) error
	// Delete removes the plan and its module links.
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Plan, error)
	GetByCode(ctx context.Context, code string) (*Plan, error)
	List(ctx context.Context) ([]*Plan, error)
}

type ModuleRepository interface {
	Create(ctx context.Context, module *Module) error
	Update(ctx context.Context, module *Module) error
	// Delete removes the module, its plan links and its features.
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Module, error)
	GetByCode(ctx context.Context, code string) (*Module, error)
	List(ctx context.Context) ([]*Module, error)
	ListByIDs(ctx context.Context, ids []uint) ([]*Module, error)

	// ListByPlan returns only the modules explicitly linked to the plan.
	ListByPlan(ctx context.Context, planID uint) ([]*Module, error)
	ListCore(ctx context.Context) ([]*Module, error)
	ListPlanModuleIDs(ctx context.Context, planID uint) ([]uint, error)
	// ReplacePlanModules swaps the plan's whole link set for moduleIDs.
	ReplacePlanModules(ctx context.Context, planID uint, moduleIDs []uint) error
}

type FeatureRepository interface {
	Create(ctx context.Context, feature *ModuleFeature) error
	Update(ctx context.Context, feature *ModuleFeature) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*ModuleFeature, error)
	ListByModule(ctx context.Context, moduleID uint) ([]*ModuleFeature, error)
	ListByModules(ctx context.Context, moduleIDs []uint) ([]*ModuleFeature, error)
}
