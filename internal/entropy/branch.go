package entropy

import (
	"github.com/debtcore/debtcore/internal/metrics"
)

// branchGroup is one if/else-if/.../else chain's body token sequences, in
// source order.
type branchGroup struct {
	bodies [][]metrics.Tok
}

// similarity is entropy.rs's BranchSimilarityAnalyzer::similarity: the
// average, over every pair of bodies in the group, of the fraction of
// token positions that match up to the shorter body's length, taken over
// the longer body's length.
func (g branchGroup) similarity() float64 {
	if len(g.bodies) < 2 {
		return 0.0
	}
	total := 0.0
	pairs := 0
	for i := 0; i < len(g.bodies); i++ {
		for j := i + 1; j < len(g.bodies); j++ {
			total += pairSimilarity(g.bodies[i], g.bodies[j])
			pairs++
		}
	}
	if pairs == 0 {
		return 0.0
	}
	return total / float64(pairs)
}

func pairSimilarity(a, b []metrics.Tok) float64 {
	longer := len(a)
	shorter := len(b)
	if shorter > longer {
		longer, shorter = shorter, longer
	}
	if longer == 0 {
		return 1.0
	}
	matches := 0
	for i := 0; i < shorter; i++ {
		if a[i].Text == b[i].Text {
			matches++
		}
	}
	return float64(matches) / float64(longer)
}

// branchSimilarity walks the token stream for if/else-if/else chains,
// groups each chain's branch bodies, and averages similarity() across all
// groups found — entropy.rs's calculate_branch_similarity.
func branchSimilarity(toks []metrics.Tok) float64 {
	var groups []branchGroup
	var current branchGroup

	i := 0
	for i < len(toks) {
		t := toks[i]
		if t.Text == "if" {
			braceIdx := findBrace(toks, i)
			if braceIdx < 0 {
				i++
				continue
			}
			closeIdx := matchBrace(toks, braceIdx)
			current.bodies = append(current.bodies, toks[braceIdx+1:closeIdx])
			i = closeIdx + 1
			continue
		}
		if t.Text == "else" {
			if i+1 < len(toks) && toks[i+1].Text == "if" {
				i++
				continue
			}
			braceIdx := findBrace(toks, i)
			if braceIdx < 0 {
				if len(current.bodies) > 0 {
					groups = append(groups, current)
					current = branchGroup{}
				}
				i++
				continue
			}
			closeIdx := matchBrace(toks, braceIdx)
			current.bodies = append(current.bodies, toks[braceIdx+1:closeIdx])
			groups = append(groups, current)
			current = branchGroup{}
			i = closeIdx + 1
			continue
		}
		if len(current.bodies) > 0 {
			groups = append(groups, current)
			current = branchGroup{}
		}
		i++
	}
	if len(current.bodies) > 0 {
		groups = append(groups, current)
	}

	if len(groups) == 0 {
		return 0.0
	}
	total := 0.0
	for _, g := range groups {
		total += g.similarity()
	}
	avg := total / float64(len(groups))
	if avg > 1.0 {
		return 1.0
	}
	return avg
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

func matchBrace(toks []metrics.Tok, openIdx int) int {
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
