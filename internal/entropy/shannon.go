package entropy

import (
	"math"

	"github.com/debtcore/debtcore/internal/metrics"
)

// weightedShannonEntropy groups tokens by category, weights each group by
// category.rs's weight table, and computes normalized Shannon entropy over
// the resulting distribution — entropy.rs's weighted_shannon_entropy.
func weightedShannonEntropy(toks []metrics.Tok) float64 {
	if len(toks) < 2 {
		return 0.0
	}

	classWeight := make(map[string]float64)
	total := 0.0
	for _, t := range toks {
		c := category(t)
		w := weightOf(c)
		classWeight[c] += w
		total += w
	}
	if total == 0.0 {
		return 0.0
	}

	entropy := 0.0
	for _, w := range classWeight {
		p := w / total
		if p > 0 {
			entropy -= p * math.Log2(p)
		}
	}

	maxEntropy := math.Log2(float64(len(classWeight)))
	if maxEntropy > 0 {
		v := entropy / maxEntropy
		if v > 1.0 {
			return 1.0
		}
		return v
	}
	return 0.0
}
