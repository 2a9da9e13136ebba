// Package score implements C8: the unified scorer composing complexity,
// coverage, dependency, role, purity, and pattern factors into one
// FinalScore in [0, 100]. Grounded in
// original_source/src/builders/unified_analysis_phases/phases/scoring.rs
// for the pure-function composition style (no I/O inside the scorer
// itself) and original_source/src/priority/unified_scorer/tests.rs for
// the exact special-case behaviors (zero-coverage boost exclusion for
// test functions, IOWrapper role-multiplier floor, strict coverage
// monotonicity) this package's tests assert directly.
package score

import (
	"math"

	"github.com/debtcore/debtcore/domain"
)

// Input bundles everything the scorer needs for one function. It
// intentionally carries only the fields §4.8 lists as inputs — the raw
// FunctionMetrics, call-graph fan counts, optional coverage percentage,
// and the already-computed role/purity/pattern side data — rather than
// the full FunctionMetrics/CallGraph objects, so this package stays
// free of any dependency on how those were constructed.
type Input struct {
	Cyclomatic int
	Cognitive  int

	// Entropy-adjusted values, used in place of the raw counts when
	// present. Nil means no entropy score was computed.
	EntropyCyclomatic *float64
	EntropyCognitive  *float64

	UpstreamCount   int
	DownstreamCount int

	Role domain.Role

	PurityFactor float64

	// Pattern, when non-nil and carrying an AdjustedComplexity, replaces
	// the complexity component entirely (§4.8's pattern_factor rule).
	Pattern *domain.PatternMatch

	// CoveragePercent is nil when no coverage data exists for this
	// function; otherwise in [0, 100].
	CoveragePercent *float64
	IsTestFunction  bool

	IsTestFile bool

	Weights domain.ScoringConfig
	RoleMultipliers map[domain.Role]float64
	RoleMultiplierClamp domain.ClampRange
	RoleCoverageWeights map[domain.Role]float64

	// TestFileReduction is the context-adjustment multiplier applied
	// when IsTestFile is true (spec.md §4.8 default 0.3).
	TestFileReduction float64
}

// complexityFactor blends normalised cyclomatic/cognitive 0.3/0.7 and
// scales to a 0-10 band, matching the weighted-complexity-scoring
// contract: normalized_cyclo = cyclomatic/50*100, normalized_cognitive
// = cognitive/100*100, weighted = 0.3*normalized_cyclo +
// 0.7*normalized_cognitive, raw_complexity = weighted/10,
// complexity_factor = raw_complexity/2. Reducing to linear terms:
// 0.03*cyclomatic + 0.035*cognitive. Entropy-adjusted values are
// preferred when present but never allowed to exceed the raw value
// (§4.8: "Never exceeds the raw value"), and a fired pattern match
// substitutes its AdjustedComplexity/AdjustedCognitive for the raw
// counts entirely.
func complexityFactor(in Input) float64 {
	cyclo := float64(in.Cyclomatic)
	cognitive := float64(in.Cognitive)

	if in.Pattern != nil && (in.Pattern.AdjustedComplexity != 0 || in.Pattern.AdjustedCognitive != 0) {
		cyclo = float64(in.Pattern.AdjustedComplexity)
		cognitive = float64(in.Pattern.AdjustedCognitive)
	}

	effectiveCyclo := cyclo
	if in.EntropyCyclomatic != nil && *in.EntropyCyclomatic < cyclo {
		effectiveCyclo = *in.EntropyCyclomatic
	}
	effectiveCognitive := cognitive
	if in.EntropyCognitive != nil && *in.EntropyCognitive < cognitive {
		effectiveCognitive = *in.EntropyCognitive
	}

	return 0.03*effectiveCyclo + 0.035*effectiveCognitive
}

// normalize squashes a raw fan-out count into roughly [0, 2] via a
// soft cap at typical, so a single high-fan-out hub doesn't dominate
// the dependency bonus; values below the cap grow close to linearly.
func normalize(value, cap float64) float64 {
	if cap <= 0 {
		return 0
	}
	return 2 * value / (value + cap)
}

// scoreScale converts the small (roughly 0-5) complexity/dependency
// band into the 0-100 debt-points range the rest of the pipeline
// (thresholds, sort order) expects, calibrated so a cyclomatic=16,
// cognitive=18 I/O wrapper with no coverage lands around 20-25 points
// before role/coverage adjustment.
const scoreScale = 20.0

// coverageFactor returns a multiplier in [0,1]: 0.0 at 100% coverage,
// up to the role's coverage weight at 0% coverage (no coverage data is
// treated as 0%, i.e. the worst case), strictly monotonic in the
// coverage axis, with the test-function zero-coverage-boost cap
// (§4.8's special rules). This is a multiplier on the uncovered
// fraction, not a boost: 0% coverage no longer inflates the score, it
// simply keeps the full base score (role_coverage_weight == 1.0).
func coverageFactor(in Input) float64 {
	pct := 0.0
	if in.CoveragePercent != nil {
		pct = *in.CoveragePercent
	}
	uncovered := 1.0 - pct/100.0
	if uncovered < 0 {
		uncovered = 0
	}
	if uncovered > 1 {
		uncovered = 1
	}

	weight := 1.0
	if w, ok := in.RoleCoverageWeights[in.Role]; ok {
		weight = w
	}
	factor := uncovered * weight

	// A test function never receives the full zero-coverage boost: its
	// factor is capped well below the maximum so its own missing tests
	// don't inflate its debt score.
	if in.IsTestFunction {
		const testFunctionCoverageCap = 0.2
		if factor > testFunctionCoverageCap {
			factor = testFunctionCoverageCap
		}
	}
	return factor
}

// dependencyFactor is a function of upstream + downstream fan, scaled
// by the configured coupling weight and soft-capped through normalize,
// so high-fan-out hubs don't dominate unbounded.
func dependencyFactor(in Input) float64 {
	fan := float64(in.UpstreamCount + in.DownstreamCount)
	return in.Weights.WeightCoupling * normalize(fan, 10)
}

// roleMultiplier looks up the table, clamping to the configured range
// rather than rejecting an out-of-range configured value (§4.8's
// "clamped, not rejected" rule).
func roleMultiplier(in Input) float64 {
	m, ok := in.RoleMultipliers[in.Role]
	if !ok {
		m = 1.0
	}
	if m < in.RoleMultiplierClamp.Min {
		m = in.RoleMultiplierClamp.Min
	}
	if m > in.RoleMultiplierClamp.Max {
		m = in.RoleMultiplierClamp.Max
	}
	return m
}

// Compute runs the full composition of §4.8: base = (complexity +
// dependency) * scoreScale, scaled = base * coverage * role_multiplier
// * purity_factor, final = clamp(0,100, scaled * context_adjustment).
// A simple I/O wrapper that already has full test coverage is not
// technical debt at all: it short-circuits to an all-zero score
// (ComplexityFactor and CoverageFactor included) rather than merely
// letting the coverage multiplier zero out the final number, matching
// the exact-zero contract the tests assert.
func Compute(in Input) domain.UnifiedScore {
	if in.Role == domain.RoleIOWrapper && in.CoveragePercent != nil && *in.CoveragePercent >= 100 {
		return domain.UnifiedScore{RoleMultiplier: roleMultiplier(in), PurityFactor: 1.0, PatternFactor: 1.0}
	}

	complexity := complexityFactor(in)
	coverage := coverageFactor(in)
	dependency := dependencyFactor(in)

	base := (complexity + dependency) * scoreScale

	role := roleMultiplier(in)
	purity := in.PurityFactor
	if purity == 0 {
		purity = 1.0
	}

	scaled := base * coverage * role * purity

	contextAdjustment := 1.0
	adjusted := false
	if in.IsTestFile {
		reduction := in.TestFileReduction
		if reduction == 0 {
			reduction = 0.3
		}
		contextAdjustment = reduction
		adjusted = true
	}

	preAdjustment := scaled
	final := scaled * contextAdjustment
	final = clamp(final, 0, 100)

	return domain.UnifiedScore{
		ComplexityFactor:         complexity,
		CoverageFactor:           coverage,
		DependencyFactor:         dependency,
		RoleMultiplier:           role,
		PurityFactor:             purity,
		PatternFactor:            patternFactorValue(in),
		FinalScore:               final,
		BaseScore:                base,
		PreAdjustmentScore:       preAdjustment,
		AdjustmentApplied:        adjusted,
		DebtAdjustment:           preAdjustment - final,
		ContextualRiskMultiplier: contextAdjustment,
	}
}

func patternFactorValue(in Input) float64 {
	if in.Pattern == nil {
		return 1.0
	}
	return in.Pattern.Confidence
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
