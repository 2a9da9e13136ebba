package pattern

import (
	"github.com/debtcore/debtcore/domain"
	"github.com/debtcore/debtcore/internal/metrics"
)

// detectSimpleDelegation fires when a body has no control flow
// (cyclomatic == 1) and at least 2 top-level statements, the last of
// which is a return-like expression — a thin forwarding wrapper around
// another call. Adjusted complexity is always 1.
func detectSimpleDelegation(in Input) *domain.PatternMatch {
	if in.Cyclomatic != 1 {
		return nil
	}
	toks := metrics.Tokenize(in.Body)
	statementCount, _ := scanTopLevelStatements(toks)
	if statementCount < 2 {
		return nil
	}
	if !endsInReturnLike(toks) {
		return nil
	}
	return &domain.PatternMatch{
		Kind:               domain.PatternSimpleDelegation,
		AdjustedComplexity: 1,
		AdjustedCognitive:  0,
		Confidence:         0.75,
	}
}

func endsInReturnLike(toks []metrics.Tok) bool {
	terminated := false
	for i := len(toks) - 1; i >= 0; i-- {
		t := toks[i].Text
		if t == "}" || t == ";" {
			if t == ";" {
				terminated = true
			}
			continue
		}
		// Walk back to the start of this final statement/expression,
		// looking for a leading "return" keyword; a bare tail expression
		// (Rust style, no trailing semicolon) also counts.
		for j := i; j >= 0; j-- {
			if toks[j].Text == "return" {
				return true
			}
			if toks[j].Text == ";" || toks[j].Text == "{" {
				break
			}
		}
		// No "return": only an unterminated tail expression counts.
		return !terminated
	}
	return false
}
