// Package purity implements the C5 purity/data-flow classification of
// spec.md §4.5: per function, a PurityLevel + confidence, a list of
// detected I/O operations, mutation signals, and a variable-dependency
// set. Grounded in original_source/src/analyzers/io_detector.rs for the
// I/O pattern tables and in pyscn's internal/analyzer/cfg.go,
// cfg_builder.go for the basic-block-graph technique, adapted here to a
// token-stream walk consistent with C1-C4 rather than a built CFG.
package purity

import (
	"github.com/debtcore/debtcore/domain"
	"github.com/debtcore/debtcore/internal/metrics"
)

// Input is everything the classifier needs from one function to produce
// its PurityInfo, IoOperations, MutationInfo and variable-dependency set.
type Input struct {
	Body          []byte
	Language      domain.Language
	ParamNames    []string
	HasSelfRecv   bool
	StartLine     int
	// NonPureCallees is the set of callee names already known (from a
	// prior fixed-point pass over the call graph) to be non-pure; an
	// empty set is valid for a first pass.
	NonPureCallees map[string]bool
}

// Result bundles everything C5 produces for a single function.
type Result struct {
	Purity       domain.PurityInfo
	IoOps        []domain.IoOperation
	Mutations    domain.MutationInfo
	VariableDeps map[string]bool
}

// Analyze runs the full C5 pipeline over a function body: I/O detection,
// mutation detection, variable-dependency collection, non-pure-callee
// lookup, and the demotion rules of §4.5 composing into a final
// PurityLevel + confidence.
func Analyze(in Input) Result {
	toks := metrics.Tokenize(in.Body)

	ioOps := detectIO(toks, in.Language, in.StartLine)
	mutations := detectMutations(toks, in.ParamNames, in.HasSelfRecv)
	deps := variableDeps(toks, in.ParamNames)
	callsNonPure := callsNonPureCallee(toks, in.NonPureCallees)
	usesTimeOrRandom := detectTimeOrRandom(toks)
	usesUnsafe := detectUnsafe(toks, in.Language)

	level, confidence := classify(classifyInput{
		hasIO:        len(ioOps) > 0,
		hasMutations: mutations.HasMutations,
		callsNonPure: callsNonPure,
		usesEntropy:  usesTimeOrRandom,
		usesUnsafe:   usesUnsafe,
		readsOnly:    in.HasSelfRecv && !mutations.HasMutations,
	})

	return Result{
		Purity:       domain.PurityInfo{Level: level, Confidence: confidence},
		IoOps:        ioOps,
		Mutations:    mutations,
		VariableDeps: deps,
	}
}

// Multiplier returns the scoring multiplier for a purity classification,
// per spec.md §4.5/§4.8's table. "High" confidence is >= 0.8, "med" is
// >= 0.5, anything lower is treated as Impure-equivalent (1.00) since the
// classification itself is not trusted enough to reward.
func Multiplier(level domain.PurityLevel, confidence float64) float64 {
	switch {
	case confidence >= 0.8:
		switch level {
		case domain.PurityStrictlyPure:
			return 0.70
		case domain.PurityLocallyPure:
			return 0.75
		case domain.PurityReadOnly:
			return 0.90
		}
	case confidence >= 0.5:
		switch level {
		case domain.PurityStrictlyPure:
			return 0.80
		case domain.PurityLocallyPure:
			return 0.85
		case domain.PurityReadOnly:
			return 0.90
		}
	}
	return 1.00
}
