package purity

import (
	"github.com/debtcore/debtcore/domain"
	"github.com/debtcore/debtcore/internal/metrics"
)

// entropySources names the time/random call names that §4.5 singles out
// as a purity-demoting signal regardless of whether they're classified
// as I/O: a pure-looking function that reads the clock or an RNG is not
// repeatable, so it can never be StrictlyPure.
var entropySources = map[string]bool{
	"now": true, "random": true, "rand": true, "gen": true,
	"thread_rng": true, "time": true, "Instant": true, "SystemTime": true,
}

func detectTimeOrRandom(toks []metrics.Tok) bool {
	for i, t := range toks {
		if i+1 < len(toks) && toks[i+1].Text == "(" && entropySources[t.Text] {
			return true
		}
	}
	return false
}

func detectUnsafe(toks []metrics.Tok, lang domain.Language) bool {
	if lang != domain.LangRust {
		return false
	}
	for _, t := range toks {
		if t.Text == "unsafe" {
			return true
		}
	}
	return false
}

// callsNonPureCallee reports whether the body invokes any name already
// known (from a prior pass over the call graph) to resolve to a
// non-pure function — the "iteratively closed over the call graph"
// demotion rule of §4.5. The caller is expected to re-run Analyze in
// fixed-point rounds, feeding back the growing non-pure set, the same
// way callgraph's test-only reachability closure iterates to a fixed
// point.
func callsNonPureCallee(toks []metrics.Tok, nonPure map[string]bool) bool {
	if len(nonPure) == 0 {
		return false
	}
	for i, t := range toks {
		if i+1 < len(toks) && toks[i+1].Text == "(" && nonPure[t.Text] {
			return true
		}
	}
	return false
}

// variableDeps collects every identifier read or written in the body
// that is not itself a keyword/call-name, seeded with the parameter
// names so a function's own signature always contributes to its
// variable-dependency set.
func variableDeps(toks []metrics.Tok, paramNames []string) map[string]bool {
	deps := make(map[string]bool, len(paramNames)+8)
	for _, p := range paramNames {
		deps[p] = true
	}
	for i, t := range toks {
		if !isIdentLike(t.Text) || metrics.IsKeyword(t.Text) {
			continue
		}
		// Skip the method/function name itself in a call position;
		// calls contribute to the call graph (C6), not to local
		// variable dependencies.
		if i+1 < len(toks) && toks[i+1].Text == "(" {
			continue
		}
		deps[t.Text] = true
	}
	return deps
}

type classifyInput struct {
	hasIO        bool
	hasMutations bool
	callsNonPure bool
	usesEntropy  bool
	usesUnsafe   bool
	readsOnly    bool
}

// classify applies the demotion ladder of §4.5: any I/O, mutation,
// non-pure callee, entropy source, or unsafe block rules out
// StrictlyPure; among the survivors, a method that reads its receiver's
// fields without mutating them is ReadOnly rather than StrictlyPure,
// since its result depends on shared state beyond its parameters.
// Confidence reflects how many independent signals agree: a function
// with none of these signals at all is high-confidence StrictlyPure; a
// function demoted by a clear, unambiguous signal (I/O or mutation) is
// also high-confidence, at its demoted level; a function demoted only
// by the weaker non-pure-callee closure is medium-confidence, since
// that signal depends on the call graph having converged.
func classify(in classifyInput) (domain.PurityLevel, float64) {
	switch {
	case in.hasIO:
		if in.hasMutations {
			return domain.PurityImpure, 0.9
		}
		return domain.PurityImpure, 0.85
	case in.hasMutations:
		return domain.PurityImpure, 0.85
	case in.usesUnsafe:
		return domain.PurityImpure, 0.7
	case in.usesEntropy:
		return domain.PurityLocallyPure, 0.75
	case in.callsNonPure:
		return domain.PurityLocallyPure, 0.6
	case in.readsOnly:
		return domain.PurityReadOnly, 0.85
	default:
		return domain.PurityStrictlyPure, 0.9
	}
}
