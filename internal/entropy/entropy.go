// Package entropy implements C3: an information-theoretic dampening signal
// that keeps repetitive or structurally uniform code from scoring as
// complex as its raw cyclomatic/cognitive counts would suggest. Grounded
// directly in original_source/src/complexity/entropy.rs, the literal
// origin of these formulas — weighted Shannon entropy over a token
// category distribution, sliding-window pattern-repetition detection, and
// branch-similarity scoring compose into a single dampening factor applied
// to the raw complexity metrics in internal/score.
package entropy

import (
	"github.com/debtcore/debtcore/domain"
	"github.com/debtcore/debtcore/internal/metrics"
)

// category weights mirror entropy.rs's TokenClassifier ranking: keywords
// carry the most structural signal, then operators, then identifiers and
// literals roughly equally.
const (
	weightKeyword    = 3.0
	weightOperator   = 2.0
	weightIdentifier = 1.0
	weightLiteral    = 1.0
)

var operatorSet = map[string]bool{
	"&&": true, "||": true, "??": true, "?.": true, "?": true, "::": true,
	"=>": true, "{": true, "}": true, "(": true, ")": true, ":": true, ",": true,
}

func category(tok metrics.Tok) string {
	switch {
	case operatorSet[tok.Text]:
		return "operator"
	case metrics.IsKeyword(tok.Text):
		return "keyword"
	default:
		if len(tok.Text) > 0 && (tok.Text[0] >= '0' && tok.Text[0] <= '9') {
			return "literal"
		}
		return "identifier"
	}
}

func weightOf(cat string) float64 {
	switch cat {
	case "keyword":
		return weightKeyword
	case "operator":
		return weightOperator
	case "literal":
		return weightLiteral
	default:
		return weightIdentifier
	}
}
