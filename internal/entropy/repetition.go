package entropy

import (
	"strings"

	"github.com/debtcore/debtcore/internal/metrics"
)

// patternRepetition mirrors entropy_analysis.rs's calculate_repetition_score:
// scans window sizes 2..5 (capped at half the token count) for repeated
// contiguous token sequences, scores the fraction of tokens that belong to
// a repeated window, and adds a small bonus for windows that repeat 3 or
// more times.
func patternRepetition(toks []metrics.Tok) float64 {
	n := len(toks)
	if n == 0 {
		return 0.0
	}

	maxWindow := 5
	if n/2 < maxWindow {
		maxWindow = n / 2
	}
	if maxWindow < 2 {
		return 0.0
	}

	maxScore := 0.0
	highRepeatWindows := 0

	for window := 2; window <= maxWindow; window++ {
		counts := make(map[string]int)
		for i := 0; i+window <= n; i++ {
			key := windowKey(toks[i : i+window])
			counts[key]++
		}

		repetitiveTokens := 0
		for _, c := range counts {
			if c > 1 {
				repetitiveTokens += (c - 1) * window
			}
			if c > 2 {
				highRepeatWindows++
			}
		}

		score := float64(repetitiveTokens) / float64(n)
		if score > maxScore {
			maxScore = score
		}
	}

	bonus := float64(highRepeatWindows) / 10.0
	if bonus > 0.2 {
		bonus = 0.2
	}

	result := maxScore + bonus
	if result > 1.0 {
		return 1.0
	}
	return result
}

func windowKey(toks []metrics.Tok) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.Text)
		b.WriteByte('\x00')
	}
	return b.String()
}
