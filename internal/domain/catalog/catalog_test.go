package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlan(t *testing.T) {
	plan, err := NewPlan(" B ", "Business", "mid tier", 4900, 5120, 5, 10)

	require.NoError(t, err)
	assert.Equal(t, "B", plan.Code())
	assert.Equal(t, "Business", plan.Name())
	assert.Equal(t, int64(5120), plan.StorageLimitMB())
	assert.Equal(t, int64(5), plan.MaxFileSizeMB())
	assert.Equal(t, 1, plan.Version())
	assert.NotNil(t, plan.Metadata())
	assert.Zero(t, plan.ID())
}

func TestNewPlan_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		plan    string
		storage int64
	}{
		{"missing code", "", "Basic", 100},
		{"missing name", "A", "", 100},
		{"negative storage", "A", "Basic", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPlan(tt.code, tt.plan, "", 0, tt.storage, 0, 0)
			assert.Error(t, err)
		})
	}
}

func TestPlan_UpdateLimitsBumpsVersion(t *testing.T) {
	plan, err := NewPlan("A", "Basic", "", 0, 1024, 2, 3)
	require.NoError(t, err)

	require.NoError(t, plan.UpdateLimits(2048, 2, 5))
	assert.Equal(t, int64(2048), plan.StorageLimitMB())
	assert.Equal(t, 2, plan.Version())

	assert.ErrorIs(t, plan.UpdateLimits(10, -1, 0), ErrInvalidPlanLimits)
}

func TestPlan_SetID(t *testing.T) {
	plan, err := NewPlan("A", "Basic", "", 0, 1024, 2, 3)
	require.NoError(t, err)

	assert.Error(t, plan.SetID(0))
	require.NoError(t, plan.SetID(4))
	assert.Error(t, plan.SetID(5))
	assert.Equal(t, uint(4), plan.ID())
}

func TestNewModule(t *testing.T) {
	m, err := NewModule("core", "Core", "always on", true)
	require.NoError(t, err)
	assert.True(t, m.IsCore())
	assert.True(t, m.IsActive())

	_, err = NewModule("", "Core", "", false)
	assert.ErrorIs(t, err, ErrInvalidModuleInput)
}

func TestModuleFeature_ParsesOnce(t *testing.T) {
	f, err := NewModuleFeature(3, "/api/suppliers*", "Suppliers", "")
	require.NoError(t, err)

	assert.Equal(t, PatternPrefix, f.Pattern().Kind())
	assert.Equal(t, "/api/suppliers*", f.FeaturePath())
	assert.True(t, f.Matches("/api/suppliers/12"))

	require.NoError(t, f.Update("/api/suppliers", "Suppliers list", ""))
	assert.False(t, f.Matches("/api/suppliers/12"))
}

func TestModuleFeature_Invalid(t *testing.T) {
	_, err := NewModuleFeature(0, "/api/x", "X", "")
	assert.Error(t, err)

	_, err = NewModuleFeature(1, "api/x", "X", "")
	assert.ErrorIs(t, err, ErrInvalidPattern)

	_, err = ReconstructModuleFeature(1, 1, "/api/*/x", "X", "", time.Now(), time.Now())
	assert.ErrorIs(t, err, ErrInvalidPattern)
}
