// Package debt implements C9: raw debt-item generation (complexity, long
// function, error swallowing, duplication, TODO/FIXME markers) and their
// attachment to the owning function by line-range lookup. Grounded in
// original_source/src/analyzers/rust/debt/complexity_items.rs (the
// per-function complexity item shape and its "is_complex(threshold)"
// filter gate, generalized to length for the long-function
// item) and original_source/src/priority/unified_analysis_utils.rs for
// the attach-then-sort lifecycle these items feed into at C10.
package debt

import (
	"fmt"

	"github.com/debtcore/debtcore/domain"
)

// RawItem is one finding before it has been attached to a function or
// demoted to a file-level item and before C8's unified score for its
// owning function is known.
type RawItem struct {
	File     string
	Line     int
	EndLine  int
	DebtType domain.DebtType
	Message  string
	Impact   string
}

// Thresholds configures the generators that need a numeric cutoff.
type Thresholds struct {
	ComplexityCyclomatic int
	LongFunctionLines    int
}

// DefaultThresholds mirrors the complexity_items.rs default gate and a
// conventional "function doesn't fit on a screen" length cutoff.
func DefaultThresholds() Thresholds {
	return Thresholds{ComplexityCyclomatic: 10, LongFunctionLines: 50}
}

// classifyComplexityImpact mirrors complexity_items.rs's classify_priority:
// more than double the threshold is high impact, otherwise medium.
func classifyComplexityImpact(cyclomatic, threshold int) string {
	if cyclomatic > threshold*2 {
		return "high"
	}
	return "medium"
}

// GenerateComplexity yields one item per function whose cyclomatic
// complexity exceeds the threshold, directly mirroring
// extract_debt_items_with_enhanced's filter-then-map shape.
func GenerateComplexity(funcs []domain.FunctionMetrics, th Thresholds) []RawItem {
	var items []RawItem
	for _, f := range funcs {
		if f.Cyclomatic <= th.ComplexityCyclomatic {
			continue
		}
		items = append(items, RawItem{
			File:     f.File,
			Line:     f.ID.StartLine,
			EndLine:  f.ID.StartLine + f.Length,
			DebtType: domain.DebtComplexity,
			Message: fmt.Sprintf(
				"Function %q has high complexity (cyclomatic: %d, cognitive: %d)",
				f.ID.Name, f.Cyclomatic, f.Cognitive,
			),
			Impact: classifyComplexityImpact(f.Cyclomatic, th.ComplexityCyclomatic),
		})
	}
	return items
}

// GenerateLongFunction flags functions whose body exceeds the configured
// line-count threshold, the length-based counterpart to the complexity
// gate above.
func GenerateLongFunction(funcs []domain.FunctionMetrics, th Thresholds) []RawItem {
	var items []RawItem
	for _, f := range funcs {
		if f.Length <= th.LongFunctionLines {
			continue
		}
		items = append(items, RawItem{
			File:     f.File,
			Line:     f.ID.StartLine,
			EndLine:  f.ID.StartLine + f.Length,
			DebtType: domain.DebtLongFunction,
			Message: fmt.Sprintf(
				"Function %q is %d lines long (threshold: %d)",
				f.ID.Name, f.Length, th.LongFunctionLines,
			),
			Impact: "medium",
		})
	}
	return items
}

// GenerateFromErrorSwallowing lifts the per-function ErrorSwallowing side
// signal (populated during C1/C2 language-specific scanning) into a raw
// item, keeping the detection itself out of this package since it is
// language-syntax-specific (empty catch, discarded Result, bare except).
func GenerateFromErrorSwallowing(funcs []domain.FunctionMetrics) []RawItem {
	var items []RawItem
	for _, f := range funcs {
		if f.ErrorSwallowing == nil || !f.ErrorSwallowing.Detected {
			continue
		}
		items = append(items, RawItem{
			File:     f.File,
			Line:     f.ErrorSwallowing.Line,
			EndLine:  f.ErrorSwallowing.Line,
			DebtType: domain.DebtErrorSwallowing,
			Message: fmt.Sprintf(
				"Possible swallowed error in %q (%s)",
				f.ID.Name, f.ErrorSwallowing.Pattern,
			),
			Impact: "high",
		})
	}
	return items
}
