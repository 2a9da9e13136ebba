package pattern

import (
	"math"
	"strings"

	"github.com/debtcore/debtcore/domain"
	"github.com/debtcore/debtcore/internal/metrics"
)

// detectMatchDispatch fires when a body is dominated by a single match (or
// switch) whose arms are all "simple" — no if/while/for/loop/match/switch
// of their own; the shape of an arm is not otherwise checked — and there
// are at least 3 arms. adjusted = ceil(log2(arms)) + 1, minus 1
// if a wildcard arm is present, per spec.md §4.4.
func detectMatchDispatch(in Input) *domain.PatternMatch {
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

	arms, wildcard, simple := scanArms(toks, braceIdx, closeIdx, in.Language)
	if arms < 3 || !simple {
		return nil
	}

	// The match must dominate the body: nothing of substance outside it.
	if !dominatesBody(toks, matchIdx, closeIdx) {
		return nil
	}

	adjustedCognitive := int(math.Ceil(math.Log2(float64(arms))))
	if !wildcard {
		adjustedCognitive++
	}
	if adjustedCognitive < 1 {
		adjustedCognitive = 1
	}

	return &domain.PatternMatch{
		Kind:               domain.PatternMatchDispatch,
		AdjustedComplexity: adjustedCognitive,
		AdjustedCognitive:  adjustedCognitive,
		Confidence:         0.9,
		MatchArms:          arms,
		HasWildcard:        wildcard,
	}
}

func dominatesBody(toks []metrics.Tok, matchIdx, closeIdx int) bool {
	before := 0
	for i := 0; i < matchIdx; i++ {
		if toks[i].Text != "{" && toks[i].Text != "}" {
			before++
		}
	}
	after := 0
	for i := closeIdx + 1; i < len(toks); i++ {
		if toks[i].Text != "{" && toks[i].Text != "}" {
			after++
		}
	}
	return before <= 3 && after <= 1
}

// scanArms walks the match/switch body counting arms and checking every
// arm's content is "simple" (no nested match/if/for/while of its own).
func scanArms(toks []metrics.Tok, open, close int, language domain.Language) (count int, wildcard bool, simple bool) {
	simple = true
	depth := 0
	marker := "=>"
	if language != domain.LangRust {
		marker = "case"
	}

	for k := open + 1; k < close; k++ {
		t := toks[k].Text
		switch t {
		case "{", "(", "[":
			depth++
		case "}", ")", "]":
			depth--
		case "if", "while", "for", "loop", "match", "switch":
			if depth == 0 || (language != domain.LangRust && depth <= 1) {
				simple = false
			}
		}
		if depth == 0 {
			isDefault := strings.EqualFold(t, "default")
			if t == marker || (language != domain.LangRust && isDefault) {
				count++
			}
			if t == "_" || isDefault {
				wildcard = true
			}
		}
	}
	return
}

func findBrace(toks []metrics.Tok, from int) int {
	depth := 0
	for k := from + 1; k < len(toks); k++ {
		switch toks[k].Text {
		case "(":
			depth++
		case ")":
			depth--
		case "{":
			if depth == 0 {
				return k
			}
		case ";":
			if depth == 0 {
				return -1
			}
		}
	}
	return -1
}

func matchBraceIdx(toks []metrics.Tok, openIdx int) int {
	depth := 0
	for k := openIdx; k < len(toks); k++ {
		switch toks[k].Text {
		case "{":
			depth++
		case "}":
			depth--
			if depth == 0 {
				return k
			}
		}
	}
	return len(toks) - 1
}
