package pattern

import (
	"strings"

	"github.com/debtcore/debtcore/domain"
	"github.com/debtcore/debtcore/internal/metrics"
)

// detectValidationChain fires on ≥3 consecutive
// "if <cond> { return Err(...) }" guard clauses (only braces may stand
// between two of them; how deeply they are nested is not checked). Structural similarity
// ≥0.85 raises confidence to "high"; a validate/check/verify name gives a
// bonus. Per spec.md §4.4 this does not adjust complexity directly —
// it records ValidationSignals for the scorer to consume.
func detectValidationChain(in Input) *domain.PatternMatch {
	toks := metrics.Tokenize(in.Body)

	var guardBodies, run [][]metrics.Tok
	endRun := func() {
		if len(run) > len(guardBodies) {
			guardBodies = run
		}
		run = nil
	}
	i := 0
	for i < len(toks) {
		if toks[i].Text != "if" {
			if toks[i].Text != "{" && toks[i].Text != "}" {
				endRun()
			}
			i++
			continue
		}
		braceIdx := findBrace(toks, i)
		if braceIdx < 0 {
			i++
			continue
		}
		closeIdx := matchBraceIdx(toks, braceIdx)
		body := toks[braceIdx+1 : closeIdx]
		if isEarlyReturnErr(body) {
			run = append(run, body)
			i = closeIdx + 1
			continue
		}
		endRun()
		i = closeIdx + 1
	}
	endRun()

	if len(guardBodies) < 3 {
		return nil
	}

	similarity := averagePairSimilarity(guardBodies)
	confidence := 0.6
	if similarity >= 0.85 {
		confidence = 0.9
	}
	lower := strings.ToLower(in.Name)
	hasValidationName := strings.Contains(lower, "validate") || strings.Contains(lower, "check") || strings.Contains(lower, "verify")
	if hasValidationName {
		confidence += 0.05
		if confidence > 1.0 {
			confidence = 1.0
		}
	}

	return &domain.PatternMatch{
		Kind:       domain.PatternValidationChain,
		Confidence: confidence,
		Validation: &domain.ValidationSignals{
			CheckCount:           len(guardBodies),
			EarlyReturnCount:     len(guardBodies),
			StructuralSimilarity: similarity,
			HasValidationName:    hasValidationName,
			Confidence:           confidence,
		},
	}
}

func isEarlyReturnErr(body []metrics.Tok) bool {
	hasReturn := false
	hasErr := false
	for _, t := range body {
		switch t.Text {
		case "return", "raise", "throw":
			hasReturn = true
		case "Err", "Error", "Exception", "ValueError", "TypeError":
			hasErr = true
		}
	}
	return hasReturn && hasErr
}

func averagePairSimilarity(bodies [][]metrics.Tok) float64 {
	if len(bodies) < 2 {
		return 0.0
	}
	total := 0.0
	pairs := 0
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			total += tokenSimilarity(bodies[i], bodies[j])
			pairs++
		}
	}
	if pairs == 0 {
		return 0.0
	}
	return total / float64(pairs)
}

func tokenSimilarity(a, b []metrics.Tok) float64 {
	longer, shorter := len(a), len(b)
	if shorter > longer {
		longer, shorter = shorter, longer
	}
	if longer == 0 {
		return 1.0
	}
	matches := 0
	for k := 0; k < shorter; k++ {
		if a[k].Text == b[k].Text {
			matches++
		}
	}
	return float64(matches) / float64(longer)
}
