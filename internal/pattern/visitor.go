package pattern

import (
	"math"
	"strings"

	"github.com/debtcore/debtcore/domain"
	"github.com/debtcore/debtcore/internal/metrics"
)

// detectVisitorMethod fires when a function overrides a visitor
// trait/method and dispatches on enum variants: it must be a trait impl
// method whose name starts with "visit" and whose body contains a
// match/switch with at least 2 arms (how much of the body the match
// covers, and what it matches on, is not checked). Cognitive is rescaled to
// max(1, ceil(log2(arms))).
func detectVisitorMethod(in Input) *domain.PatternMatch {
	if !in.IsTraitImpl {
		return nil
	}
	lower := strings.ToLower(in.Name)
	if !strings.HasPrefix(lower, "visit") {
		return nil
	}

	toks := metrics.Tokenize(in.Body)
	kw := "match"
	if in.Language != domain.LangRust {
		kw = "switch"
	}
	matchIdx := -1
	for i, t := range toks {
		if t.Text == kw {
			matchIdx = i
			break
		}
	}
	if matchIdx < 0 {
		return nil
	}
	braceIdx := findBrace(toks, matchIdx)
	if braceIdx < 0 {
		return nil
	}
	closeIdx := matchBraceIdx(toks, braceIdx)
	arms, wildcard, _ := scanArms(toks, braceIdx, closeIdx, in.Language)
	if arms < 2 {
		return nil
	}

	cognitive := int(math.Ceil(math.Log2(float64(arms))))
	if cognitive < 1 {
		cognitive = 1
	}

	return &domain.PatternMatch{
		Kind:              domain.PatternVisitorMethod,
		AdjustedCognitive: cognitive,
		Confidence:        0.85,
		MatchArms:         arms,
		HasWildcard:       wildcard,
	}
}
