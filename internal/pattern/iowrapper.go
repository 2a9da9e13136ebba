package pattern

import (
	"strings"

	"github.com/debtcore/debtcore/domain"
)

// ioVerbs is the name-matching list shared with role classification
// (C7's IOWrapper role uses this same recognition).
var ioVerbs = []string{
	"read", "write", "print", "save", "load", "fetch", "send", "recv",
	"open", "close", "connect", "query", "upload", "download", "log",
}

// detectSimpleIOWrapper fires when a function's name matches a known I/O
// verb and its cyclomatic complexity is low (≤2): a thin wrapper around a
// single I/O call. It never adjusts complexity — its only effect is to
// let the role classifier assign IOWrapper.
func detectSimpleIOWrapper(in Input) *domain.PatternMatch {
	if in.Cyclomatic > 2 {
		return nil
	}
	lower := strings.ToLower(in.Name)
	for _, verb := range ioVerbs {
		if strings.Contains(lower, verb) {
			return &domain.PatternMatch{
				Kind:       domain.PatternIOWrapper,
				Confidence: 0.7,
			}
		}
	}
	return nil
}
