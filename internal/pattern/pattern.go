// Package pattern implements C4: six pure predicate+adjustment recognisers
// tried in a fixed priority order, first match wins. Grounded in
// original_source/src/complexity/patterns.rs, match_patterns.rs,
// pattern_adjustments.rs, and src/analyzers/rust/patterns/mapping.rs for
// the recogniser list and its adjustment formulas. Raw complexity is never
// replaced in storage — a match only ever produces an adjusted value
// alongside it, which internal/score may choose to consume.
package pattern

import "github.com/debtcore/debtcore/domain"

// Input is the subset of a function's already-computed facts the
// recognisers need; it deliberately avoids depending on internal/lang so
// this package stays a pure function of already-extracted data.
type Input struct {
	Name        string
	Body        []byte
	Language    domain.Language
	Cyclomatic  int
	Cognitive   int
	IsTraitImpl bool
	HasSelfRecv bool
	ParamCount  int
}

type recogniser func(Input) *domain.PatternMatch

// order is the fixed priority sequence spec.md §4.4 requires.
var order = []recogniser{
	detectMatchDispatch,
	detectValidationChain,
	detectPureMapping,
	detectSimpleDelegation,
	detectVisitorMethod,
	detectSimpleIOWrapper,
}

// Recognize runs every recogniser in priority order and returns the first
// match, or nil if none fired.
func Recognize(in Input) *domain.PatternMatch {
	for _, r := range order {
		if m := r(in); m != nil {
			return m
		}
	}
	return nil
}
