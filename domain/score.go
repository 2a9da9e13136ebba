package domain

// UnifiedScore composes complexity, coverage, dependency, role, purity and
// pattern factors into one comparable score (§3, §4.8). All factor fields
// are non-negative floats; FinalScore is clamped to [0, 100].
type UnifiedScore struct {
	ComplexityFactor      float64
	CoverageFactor        float64
	DependencyFactor      float64
	RoleMultiplier        float64
	PurityFactor          float64
	RefactorabilityFactor float64
	PatternFactor         float64
	FinalScore            float64

	// Transparency fields so a consumer can reconstruct exactly why the
	// final score is what it is.
	BaseScore               float64
	PreAdjustmentScore      float64
	AdjustmentApplied       bool
	DebtAdjustment          float64
	ContextualRiskMultiplier float64
}

// Validate enforces §8 invariant #2: 0 <= FinalScore <= 100, all factors
// finite. This is an InternalInvariant — callers must panic, not recover,
// on violation (§7).
func (s *UnifiedScore) Validate() {
	CheckFiniteScore("UnifiedScore.FinalScore", s.FinalScore)
	CheckFiniteScore("UnifiedScore.ComplexityFactor", s.ComplexityFactor)
	CheckFiniteScore("UnifiedScore.CoverageFactor", s.CoverageFactor)
	CheckFiniteScore("UnifiedScore.DependencyFactor", s.DependencyFactor)
	CheckFiniteScore("UnifiedScore.RoleMultiplier", s.RoleMultiplier)
	CheckFiniteScore("UnifiedScore.PurityFactor", s.PurityFactor)
	CheckFiniteScore("UnifiedScore.PatternFactor", s.PatternFactor)
	if s.FinalScore < 0 || s.FinalScore > 100 {
		panic(InternalInvariantViolation{What: "UnifiedScore.FinalScore out of [0,100]"})
	}
}
