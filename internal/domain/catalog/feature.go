package catalog

import (
	"fmt"
	"strings"
	"time"
)

// ModuleFeature is a single route guarded by entitlement. It belongs to exactly one module.
type ModuleFeature struct {
	id          uint
	moduleID    uint
	pattern     FeaturePattern
	featureName string
	description string
	createdAt   time.Time
	updatedAt   time.Time
}

func NewModuleFeature(moduleID uint, featurePath, featureName, description string) (*ModuleFeature, error) {
	if moduleID == 0 {
		return nil, fmt.Errorf("module ID is required")
	}
	pattern, err := ParseFeaturePattern(featurePath)
	if err != nil {
		return nil, err
	}
	featureName = strings.TrimSpace(featureName)
	if featureName == "" {
		return nil, fmt.Errorf("feature name is required")
	}

	now := time.Now().UTC()
	return &ModuleFeature{
		moduleID:    moduleID,
		pattern:     pattern,
		featureName: featureName,
		description: description,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructModuleFeature rebuilds a stored feature. The path is parsed here, once,
// so request-time matching never re-parses it.
func ReconstructModuleFeature(id, moduleID uint, featurePath, featureName, description string, createdAt, updatedAt time.Time) (*ModuleFeature, error) {
	if id == 0 {
		return nil, fmt.Errorf("feature ID cannot be zero")
	}
	pattern, err := ParseFeaturePattern(featurePath)
	if err != nil {
		return nil, err
	}
	return &ModuleFeature{
		id:          id,
		moduleID:    moduleID,
		pattern:     pattern,
		featureName: featureName,
		description: description,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (f *ModuleFeature) ID() uint                { return f.id }
func (f *ModuleFeature) ModuleID() uint          { return f.moduleID }
func (f *ModuleFeature) Pattern() FeaturePattern { return f.pattern }
func (f *ModuleFeature) FeaturePath() string     { return f.pattern.String() }
func (f *ModuleFeature) FeatureName() string     { return f.featureName }
func (f *ModuleFeature) Description() string     { return f.description }
func (f *ModuleFeature) CreatedAt() time.Time    { return f.createdAt }
func (f *ModuleFeature) UpdatedAt() time.Time    { return f.updatedAt }

func (f *ModuleFeature) SetID(id uint) error {
	if f.id != 0 {
		return fmt.Errorf("feature ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("feature ID cannot be zero")
	}
	f.id = id
	return nil
}

func (f *ModuleFeature) Update(featurePath, featureName, description string) error {
	pattern, err := ParseFeaturePattern(featurePath)
	if err != nil {
		return err
	}
	featureName = strings.TrimSpace(featureName)
	if featureName == "" {
		return fmt.Errorf("feature name is required")
	}
	f.pattern = pattern
	f.featureName = featureName
	f.description = description
	f.updatedAt = time.Now().UTC()
	return nil
}

// Matches reports whether requestPath is covered by this feature.
func (f *ModuleFeature) Matches(requestPath string) bool {
	return f.pattern.Matches(requestPath)
}
