package analysis

import (
	"github.com/debtcore/debtcore/domain"
	"github.com/debtcore/debtcore/internal/callgraph"
	"github.com/debtcore/debtcore/internal/purity"
)

// runPurityFixedPoint iterates C5 over the whole function set until the
// non-pure-callee set stops growing, mirroring the least-fixed-point shape
// internal/callgraph's test-only computation already uses for a similar
// closure-over-the-call-graph problem. Each round re-classifies every
// function using the previous round's "names known not to be StrictlyPure"
// set, so a caller of a newly-demoted callee can itself be demoted in the
// next round. Bounded at len(infos)+1 rounds: a name can only ever be
// added to the non-pure set once, so the fixed point is reached in at most
// that many rounds.
func runPurityFixedPoint(infos []callgraph.FuncInfo) []purity.Result {
	results := make([]purity.Result, len(infos))
	nonPure := map[string]bool{}

	for round := 0; round <= len(infos); round++ {
		changed := false
		for i, f := range infos {
			r := purity.Analyze(purity.Input{
				Body:           f.Body,
				Language:       f.Language,
				ParamNames:     f.ParamNames,
				HasSelfRecv:    f.EnclosingType != "",
				StartLine:      f.ID.StartLine,
				NonPureCallees: nonPure,
			})
			results[i] = r
			if r.Purity.Level != domain.PurityStrictlyPure {
				name := shortName(f.ID.Name)
				if !nonPure[name] {
					nonPure[name] = true
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
	return results
}
