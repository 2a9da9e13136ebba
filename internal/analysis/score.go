package analysis

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/debtcore/debtcore/domain"
	"github.com/debtcore/debtcore/internal/callgraph"
	"github.com/debtcore/debtcore/internal/entropy"
	"github.com/debtcore/debtcore/internal/pattern"
	"github.com/debtcore/debtcore/internal/purity"
	"github.com/debtcore/debtcore/internal/role"
	"github.com/debtcore/debtcore/internal/score"
)

// scoreAll runs step 5 (spec.md §4.9): the per-function fan-out of
// C3 (entropy), C4 (pattern), C7 (role) and C8 (unified score), sharing one
// entropy.Analyzer (and its memoization cache) and one already-built
// CallGraph across every task, per §5's "shared immutable reference"
// requirement. It also folds C3/C5/C6 results back into funcs in place,
// since FunctionMetrics is the single record a caller inspects afterward.
func (d *Driver) scoreAll(
	funcs []domain.FunctionMetrics,
	infos []callgraph.FuncInfo,
	graph *domain.CallGraph,
	purityResults []purity.Result,
	entropyAnalyzer *entropy.Analyzer,
) ([]domain.UnifiedScore, []domain.Role) {
	scores := make([]domain.UnifiedScore, len(funcs))
	roles := make([]domain.Role, len(funcs))

	g, _ := errgroup.WithContext(context.Background())
	for i := range funcs {
		i := i
		g.Go(func() error {
			d.scoreOne(&funcs[i], infos[i], graph, purityResults[i], entropyAnalyzer, &scores[i], &roles[i])
			return nil
		})
	}
	_ = g.Wait()

	return scores, roles
}

func (d *Driver) scoreOne(
	fm *domain.FunctionMetrics,
	info callgraph.FuncInfo,
	graph *domain.CallGraph,
	pr purity.Result,
	entropyAnalyzer *entropy.Analyzer,
	outScore *domain.UnifiedScore,
	outRole *domain.Role,
) {
	es := entropyAnalyzer.Calculate(info.Body, fm.Nesting)
	fm.EntropyScore = &es

	isPure := pr.Purity.Level == domain.PurityStrictlyPure
	fm.IsPure = &isPure
	fm.PurityConfidence = pr.Purity.Confidence
	fm.PurityLevel = pr.Purity.Level

	patternMatch := pattern.Recognize(pattern.Input{
		Name:        fm.ID.Name,
		Body:        info.Body,
		Language:    fm.Language,
		Cyclomatic:  fm.Cyclomatic,
		Cognitive:   fm.Cognitive,
		IsTraitImpl: fm.IsTraitMethod,
		HasSelfRecv: fm.EnclosingType != "",
		ParamCount:  fm.ParamCount,
	})
	fm.Pattern = patternMatch
	if patternMatch != nil {
		fm.MappingPatternResult = patternMatch.Mapping
		if patternMatch.AdjustedComplexity != 0 {
			adj := patternMatch.AdjustedComplexity
			fm.AdjustedComplexity = &adj
		}
	}

	upstream := graph.Callers(fm.ID)
	downstream := graph.Callees(fm.ID)
	fm.UpstreamCallers = upstream
	fm.DownstreamCallees = downstream

	r := role.Classify(role.Input{
		Name:                 fm.ID.Name,
		IsTest:               fm.IsTest,
		InTestModule:         fm.InTestModule,
		IsTraitMethod:        fm.IsTraitMethod,
		IsFrameworkExclusion: graph.IsFrameworkExclusion(fm.ID),
		Cyclomatic:           fm.Cyclomatic,
		Cognitive:            fm.Cognitive,
		UpstreamCount:        len(upstream),
		DownstreamCount:      len(downstream),
		Pattern:              patternMatch,
	})
	*outRole = r

	var coveragePct *float64
	if d.Coverage != nil {
		if fc, ok := d.Coverage.Lookup(fm.File, fm.ID.Name); ok {
			pct := fc.Percentage()
			coveragePct = &pct
		}
	}

	entropyCyclo := float64(fm.Cyclomatic) * es.DampeningApplied
	entropyCognitive := float64(fm.Cognitive) * es.DampeningApplied

	*outScore = score.Compute(score.Input{
		Cyclomatic:          fm.Cyclomatic,
		Cognitive:           fm.Cognitive,
		EntropyCyclomatic:   &entropyCyclo,
		EntropyCognitive:    &entropyCognitive,
		UpstreamCount:       len(upstream),
		DownstreamCount:     len(downstream),
		Role:                r,
		PurityFactor:        purity.Multiplier(pr.Purity.Level, pr.Purity.Confidence),
		Pattern:             patternMatch,
		CoveragePercent:     coveragePct,
		IsTestFunction:      fm.IsTest,
		IsTestFile:          fm.InTestModule,
		Weights:             d.Config.Scoring,
		RoleMultipliers:     d.Config.RoleMultipliers,
		RoleMultiplierClamp: d.Config.RoleMultiplierClamp,
		RoleCoverageWeights: d.Config.RoleCoverageWeights,
	})
}
