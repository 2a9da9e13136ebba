package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/debtcore/debtcore/domain"
)

func defaultInput() Input {
	cfg := domain.DefaultConfig()
	return Input{
		Cyclomatic:          5,
		Cognitive:           8,
		Weights:             cfg.Scoring,
		RoleMultipliers:     cfg.RoleMultipliers,
		RoleMultiplierClamp: cfg.RoleMultiplierClamp,
		RoleCoverageWeights: cfg.RoleCoverageWeights,
		PurityFactor:        1.0,
	}
}

func pct(v float64) *float64 { return &v }

func TestCompute_BasicFunctionHasPositiveBoundedScore(t *testing.T) {
	in := defaultInput()
	s := Compute(in)
	assert.Greater(t, s.ComplexityFactor, 0.0)
	assert.Greater(t, s.CoverageFactor, 0.0)
	assert.Greater(t, s.FinalScore, 0.0)
	assert.LessOrEqual(t, s.FinalScore, 100.0)
}

func TestCompute_ComplexityFactorMatchesWeightedFormula(t *testing.T) {
	in := defaultInput()
	in.Cyclomatic = 5
	in.Cognitive = 15
	s := Compute(in)
	assert.InDelta(t, 0.675, s.ComplexityFactor, 0.001)
}

func TestCompute_IOWrapperWithFullCoverageScoresExactlyZero(t *testing.T) {
	in := defaultInput()
	in.Cyclomatic = 1
	in.Cognitive = 1
	in.Role = domain.RoleIOWrapper
	in.CoveragePercent = pct(100.0)
	s := Compute(in)
	assert.Equal(t, 0.0, s.FinalScore)
	assert.Equal(t, 0.0, s.ComplexityFactor)
	assert.Equal(t, 0.0, s.CoverageFactor)
}

func TestCompute_UntestedIOWrapperScoresAboveZero(t *testing.T) {
	in := defaultInput()
	in.Cyclomatic = 1
	in.Cognitive = 1
	in.Role = domain.RoleIOWrapper
	in.CoveragePercent = pct(0.0)
	s := Compute(in)
	assert.Greater(t, s.FinalScore, 0.0)
}

func TestCompute_TestFunctionNeverGetsZeroCoverageBoost(t *testing.T) {
	in := defaultInput()
	in.Cyclomatic = 5
	in.Cognitive = 8
	in.Role = domain.RoleTest
	in.IsTestFunction = true
	in.CoveragePercent = nil
	s := Compute(in)
	assert.Less(t, s.FinalScore, 10.0)
}

func TestCompute_LowerCoverageYieldsStrictlyHigherScore(t *testing.T) {
	low := defaultInput()
	low.Cyclomatic = 5
	low.Cognitive = 8
	low.CoveragePercent = pct(10.0)

	mid := defaultInput()
	mid.Cyclomatic = 5
	mid.Cognitive = 8
	mid.CoveragePercent = pct(50.0)

	sLow := Compute(low)
	sMid := Compute(mid)
	assert.Greater(t, sLow.FinalScore, sMid.FinalScore)
}

func TestCompute_EntryPointCoverageWeightScoresLowerThanPureLogic(t *testing.T) {
	entry := defaultInput()
	entry.Cyclomatic = 17
	entry.Cognitive = 17
	entry.Role = domain.RoleEntryPoint
	entry.CoveragePercent = pct(0.0)

	logic := defaultInput()
	logic.Cyclomatic = 17
	logic.Cognitive = 17
	logic.Role = domain.RolePureLogic
	logic.CoveragePercent = pct(0.0)

	sEntry := Compute(entry)
	sLogic := Compute(logic)
	assert.Less(t, sEntry.FinalScore, sLogic.FinalScore)
}

func TestCompute_RoleMultiplierIsClampedNotRejected(t *testing.T) {
	in := defaultInput()
	in.RoleMultipliers = map[domain.Role]float64{domain.RoleEntryPoint: 5.0}
	in.RoleMultiplierClamp = domain.ClampRange{Min: 0.3, Max: 1.8}
	in.Role = domain.RoleEntryPoint
	s := Compute(in)
	assert.Equal(t, 1.8, s.RoleMultiplier)
}

func TestCompute_IOWrapperRoleMultiplierNotClampedUpward(t *testing.T) {
	in := defaultInput()
	in.Role = domain.RoleIOWrapper
	s := Compute(in)
	assert.LessOrEqual(t, s.RoleMultiplier, 0.8)
}

func TestCompute_EntropyDampenedScoreIsStrictlyLessThanUndampened(t *testing.T) {
	undampened := defaultInput()
	undampened.Cyclomatic = 10
	undampened.Cognitive = 10

	dampened := defaultInput()
	dampened.Cyclomatic = 10
	dampened.Cognitive = 10
	dampened.EntropyCyclomatic = pct(4.0)
	dampened.EntropyCognitive = pct(4.0)

	sUndampened := Compute(undampened)
	sDampened := Compute(dampened)
	assert.Less(t, sDampened.FinalScore, sUndampened.FinalScore)
}

func TestCompute_TestFileContextAdjustmentReducesScore(t *testing.T) {
	in := defaultInput()
	in.IsTestFile = true
	s := Compute(in)
	assert.True(t, s.AdjustmentApplied)
	assert.Less(t, s.FinalScore, s.PreAdjustmentScore)
}

func TestCompute_PatternMatchReplacesComplexityComponent(t *testing.T) {
	in := defaultInput()
	in.Cyclomatic = 20
	in.Cognitive = 20
	in.Pattern = &domain.PatternMatch{Kind: domain.PatternMatchDispatch, AdjustedComplexity: 1, AdjustedCognitive: 1, Confidence: 0.9}
	s := Compute(in)
	assert.Less(t, s.ComplexityFactor, 1.0)
	assert.Equal(t, 0.9, s.PatternFactor)
}
