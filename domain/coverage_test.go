package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunctionCoverage_PercentageComputesRatio(t *testing.T) {
	fc := FunctionCoverage{LinesHit: 3, LinesTotal: 4}
	assert.InDelta(t, 75.0, fc.Percentage(), 0.001)
}

func TestFunctionCoverage_PercentageZeroTotalIsZero(t *testing.T) {
	fc := FunctionCoverage{LinesHit: 0, LinesTotal: 0}
	assert.Equal(t, float64(0), fc.Percentage())
}

func TestNormalizeFunctionName_StripsGenericSuffix(t *testing.T) {
	assert.Equal(t, "push", NormalizeFunctionName("push<T>"))
	assert.Equal(t, "push", NormalizeFunctionName("push"))
}

func TestCoverageData_LookupDirectHit(t *testing.T) {
	data := CoverageData{Files: map[string]FileCoverage{
		"src/lib.rs": {File: "src/lib.rs", Functions: map[string]FunctionCoverage{
			"compute": {Name: "compute", LinesHit: 1, LinesTotal: 1},
		}},
	}}

	fc, ok := data.Lookup("src/lib.rs", "compute")
	require.True(t, ok)
	assert.Equal(t, "compute", fc.Name)
}

func TestCoverageData_LookupFallsBackToBareMethodName(t *testing.T) {
	data := CoverageData{Files: map[string]FileCoverage{
		"src/lib.rs": {File: "src/lib.rs", Functions: map[string]FunctionCoverage{
			"push": {Name: "push", LinesHit: 2, LinesTotal: 2},
		}},
	}}

	fc, ok := data.Lookup("src/lib.rs", "Vec::push")
	require.True(t, ok)
	assert.Equal(t, "push", fc.Name)
}

func TestCoverageData_LookupMissingFileReturnsFalse(t *testing.T) {
	data := CoverageData{Files: map[string]FileCoverage{}}
	_, ok := data.Lookup("missing.rs", "anything")
	assert.False(t, ok)
}

func TestCoverageData_LookupMissingFunctionReturnsFalse(t *testing.T) {
	data := CoverageData{Files: map[string]FileCoverage{
		"src/lib.rs": {File: "src/lib.rs", Functions: map[string]FunctionCoverage{}},
	}}
	_, ok := data.Lookup("src/lib.rs", "absent")
	assert.False(t, ok)
}
