package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestConfig_ValidateRejectsInvertedClampRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RoleMultiplierClamp = ClampRange{Min: 2, Max: 1}

	err := cfg.Validate()
	require.Error(t, err)
	var ae *AnalysisError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, KindConfigError, ae.Kind)
}

func TestConfig_ValidateRejectsNegativeWeight(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scoring.WeightCyclomatic = -1
	assert.Error(t, cfg.Validate())
}

func TestConfig_ValidateRejectsNegativeEntropyCacheSize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Entropy.MaxCacheSize = -1
	assert.Error(t, cfg.Validate())
}

func TestDefaultConfig_RoleMultiplierDefaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 1.5, cfg.RoleMultipliers[RoleEntryPoint])
	assert.Equal(t, 0.3, cfg.RoleMultipliers[RoleTest])
	assert.Equal(t, 0.3, cfg.RoleMultiplierClamp.Min)
	assert.Equal(t, 1.8, cfg.RoleMultiplierClamp.Max)
}
