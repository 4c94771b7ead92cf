package entitlement

import "github.com/tenantgate/tenantgate/internal/domain/catalog"

// FeatureSet is the compiled list of patterns a plan entitles.
type FeatureSet struct {
	planID    uint
	moduleIDs []uint
	patterns  []catalog.FeaturePattern
}

func newFeatureSet(planID uint, modules []*catalog.Module, features []*catalog.ModuleFeature) *FeatureSet {
	fs := &FeatureSet{
		planID:    planID,
		moduleIDs: make([]uint, 0, len(modules)),
		patterns:  make([]catalog.FeaturePattern, 0, len(features)),
	}
	for _, m := range modules {
		fs.moduleIDs = append(fs.moduleIDs, m.ID())
	}
	for _, f := range features {
		fs.patterns = append(fs.patterns, f.Pattern())
	}
	return fs
}

func (fs *FeatureSet) PlanID() uint                       { return fs.planID }
func (fs *FeatureSet) ModuleIDs() []uint                  { return fs.moduleIDs }
func (fs *FeatureSet) Patterns() []catalog.FeaturePattern { return fs.patterns }

// Allows returns true on the first pattern matching requestPath.
func (fs *FeatureSet) Allows(requestPath string) bool {
	for _, p := range fs.patterns {
		if p.Matches(requestPath) {
			return true
		}
	}
	return false
}
