// Package role implements C7: a deterministic, order-sensitive
// classifier assigning each function one of spec.md §4.7's seven roles
// plus Unknown. Grounded in pyscn's internal/analyzer/framework_patterns.go
// (a PatternDetector walking a fixed, ordered list of named-pattern
// checks, each independently enabled/disabled) generalized from Python
// decorator/base-class detection to the cross-language name/shape/
// call-graph-neighbourhood table of §4.7.
package role

import (
	"strings"

	"github.com/debtcore/debtcore/domain"
	"github.com/debtcore/debtcore/internal/pattern"
)

// Input is everything the classifier needs about one function.
type Input struct {
	Name          string
	IsTest        bool
	InTestModule  bool
	IsTraitMethod bool
	IsFrameworkExclusion bool
	Cyclomatic    int
	Cognitive     int
	UpstreamCount int
	DownstreamCount int
	Pattern       *domain.PatternMatch
}

// OrchestratorFanOutThreshold is the minimum downstream fan-out (number
// of distinct callees) before a function is even considered for the
// Orchestrator role, per spec.md §4.7's "Fan-out >= threshold" heuristic.
const OrchestratorFanOutThreshold = 4

var entryPointPrefixes = []string{"handle_", "serve_", "run_"}

var orchestratorNameHints = []string{"orchestrate", "coordinate", "process", "dispatch"}

var formattingNameHints = []string{"format", "display", "to_string", "tostring"}

// Classify applies the table in the load-bearing order spec.md §9
// requires: Test first (an is_test function is never misclassified as
// an entry point just because it's also named main_test or similar),
// then EntryPoint strictly before Orchestrator (a handle_request that
// also fans out heavily is still an entry point, not an orchestrator),
// then the remaining roles in the table's listed order.
func Classify(in Input) domain.Role {
	if in.IsTest || in.InTestModule {
		return domain.RoleTest
	}

	if isEntryPoint(in) {
		return domain.RoleEntryPoint
	}

	if isOrchestrator(in) {
		return domain.RoleOrchestrator
	}

	if in.Pattern != nil && in.Pattern.Kind == domain.PatternIOWrapper {
		return domain.RoleIOWrapper
	}

	if isFormattingFunction(in) {
		return domain.RoleFormattingFunction
	}

	if in.IsTraitMethod {
		return domain.RoleTraitImpl
	}

	if in.Cyclomatic > 5 || in.Cognitive > 5 {
		return domain.RolePureLogic
	}

	return domain.RoleUnknown
}

func isEntryPoint(in Input) bool {
	if in.IsFrameworkExclusion {
		return true
	}
	lower := strings.ToLower(in.Name)
	if lower == "main" {
		return true
	}
	for _, prefix := range entryPointPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

func isOrchestrator(in Input) bool {
	if in.DownstreamCount < OrchestratorFanOutThreshold {
		return false
	}
	// "low local logic": an orchestrator's own complexity should be
	// modest — it delegates rather than computes.
	if in.Cyclomatic > 5 {
		return false
	}
	lower := strings.ToLower(in.Name)
	for _, hint := range orchestratorNameHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

func isFormattingFunction(in Input) bool {
	lower := strings.ToLower(in.Name)
	for _, hint := range formattingNameHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

// DetectPattern exposes the pattern-recognition dependency explicitly so
// callers build the Input.Pattern field the same way internal/pattern's
// own callers do, keeping C4/C7 wiring in one obvious place.
func DetectPattern(in pattern.Input) *domain.PatternMatch {
	return pattern.Recognize(in)
}
