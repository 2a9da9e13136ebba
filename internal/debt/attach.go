package debt

import "github.com/debtcore/debtcore/domain"

// Attached is the per-file result of line-range attachment: items indexed
// by the function that owns them, plus whatever fell outside every known
// function's range.
type Attached struct {
	ByFunction   map[domain.FunctionId][]RawItem
	FreeStanding []RawItem
}

// AttachToFunctions implements the aggregator's core rule (spec.md §4.9):
// a raw item belongs to the function whose [start, start+length) line
// range contains it; an item inside no function's range becomes
// free-standing (destined to become a FileDebtItem). When an item's line
// falls inside more than one function's range (nested functions/closures),
// the innermost — the one with the smallest range — claims it, since that
// is the function whose code actually produced the finding.
func AttachToFunctions(raw []RawItem, funcs []domain.FunctionMetrics) Attached {
	result := Attached{ByFunction: make(map[domain.FunctionId][]RawItem)}

	for _, item := range raw {
		owner, ok := findOwner(item, funcs)
		if !ok {
			result.FreeStanding = append(result.FreeStanding, item)
			continue
		}
		result.ByFunction[owner] = append(result.ByFunction[owner], item)
	}
	return result
}

func findOwner(item RawItem, funcs []domain.FunctionMetrics) (domain.FunctionId, bool) {
	var best *domain.FunctionMetrics
	for i := range funcs {
		f := &funcs[i]
		if f.File != item.File {
			continue
		}
		start := f.ID.StartLine
		end := f.ID.StartLine + f.Length
		if item.Line < start || item.Line >= end {
			continue
		}
		if best == nil || f.Length < best.Length {
			best = f
		}
	}
	if best == nil {
		return domain.FunctionId{}, false
	}
	return best.ID, true
}

// BuildFunctionItems turns every item attached to one function into a
// UnifiedDebtItem sharing that function's already-computed unified score
// and role (§4.9: the score is a property of the function, not of any one
// finding inside it). role is whatever C7 assigned this function; this
// package never derives roles itself.
func BuildFunctionItems(f domain.FunctionMetrics, items []RawItem, score domain.UnifiedScore, role domain.Role) []domain.UnifiedDebtItem {
	out := make([]domain.UnifiedDebtItem, 0, len(items))
	for _, it := range items {
		out = append(out, domain.UnifiedDebtItem{
			Location: domain.Location{
				File:     it.File,
				Line:     it.Line,
				EndLine:  it.EndLine,
				Function: f.ID.Name,
			},
			DebtType:               it.DebtType,
			UnifiedScore:           score,
			FunctionRole:           role,
			Recommendation:         it.Message,
			ExpectedImpact:         it.Impact,
			UpstreamDependencies:   f.UpstreamCallers,
			DownstreamDependencies: f.DownstreamCallees,
			EntropyDetails:         f.EntropyScore,
		})
	}
	return out
}

// BuildFileItems turns free-standing items into FileDebtItems. Since no
// function (and therefore no unified score) owns them, their score is a
// flat severity-derived constant rather than the full C8 composition.
func BuildFileItems(items []RawItem) []domain.FileDebtItem {
	out := make([]domain.FileDebtItem, 0, len(items))
	for _, it := range items {
		out = append(out, domain.FileDebtItem{
			Location: domain.Location{
				File:    it.File,
				Line:    it.Line,
				EndLine: it.EndLine,
			},
			DebtType:       it.DebtType,
			Score:          impactScore(it.Impact),
			Recommendation: it.Message,
		})
	}
	return out
}

func impactScore(impact string) float64 {
	switch impact {
	case "high":
		return 15.0
	case "medium":
		return 8.0
	default:
		return 3.0
	}
}
