package pattern

import (
	"github.com/debtcore/debtcore/domain"
	"github.com/debtcore/debtcore/internal/metrics"
)

// impureCallNames is the configurable feature set of call targets that
// disqualify a body from being a pure mapping — grounded in the I/O verb
// list shared with the IOWrapper recogniser and io_detector.rs's known
// method names.
var impureCallNames = map[string]bool{
	"print": true, "println": true, "eprint": true, "eprintln": true,
	"read": true, "write": true, "open": true, "close": true, "send": true,
	"recv": true, "fetch": true, "query": true, "save": true, "load": true,
	"connect": true, "spawn": true, "lock": true, "dbg": true,
}

// detectPureMapping fires when a body is a single expression/statement
// mapping input to output through pure operations: cyclomatic == 1, a
// single top-level statement, and no call to a known-impure name.
func detectPureMapping(in Input) *domain.PatternMatch {
	if in.Cyclomatic != 1 {
		return nil
	}
	toks := metrics.Tokenize(in.Body)

	statementCount, hasImpureCall := scanTopLevelStatements(toks)
	if statementCount > 1 || hasImpureCall {
		return nil
	}
	if len(toks) == 0 {
		return nil
	}

	return &domain.PatternMatch{
		Kind:               domain.PatternPureMapping,
		AdjustedComplexity: 1,
		AdjustedCognitive:  0,
		Confidence:         0.8,
		Mapping: &domain.MappingPatternResult{
			IsPureMapping:     true,
			AdjustedCyclo:     1,
			AdjustedCognitive: 0,
		},
	}
}

func scanTopLevelStatements(toks []metrics.Tok) (statements int, impureCall bool) {
	depth := 0
	for i, t := range toks {
		switch t.Text {
		case "{", "(", "[":
			depth++
		case "}", ")", "]":
			depth--
		case ";":
			if depth == 0 {
				statements++
			}
		}
		if impureCallNames[t.Text] {
			if i+1 < len(toks) && toks[i+1].Text == "(" {
				impureCall = true
			}
		}
	}
	return
}
