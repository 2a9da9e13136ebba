package analysis

import (
	"strings"

	"github.com/debtcore/debtcore/domain"
	"github.com/debtcore/debtcore/internal/callgraph"
	"github.com/debtcore/debtcore/internal/debt"
)

// buildDebtItems runs step 6 of spec.md §4.9: generates every raw finding
// (complexity, long-function, error-swallowing, TODO markers,
// duplication), attaches each to its owning function or lets it fall
// through as file-level, then threads every resulting item through
// add_item / add_file_item.
func (d *Driver) buildDebtItems(
	parsed []parsedFile,
	funcs []domain.FunctionMetrics,
	infos []callgraph.FuncInfo,
	scores []domain.UnifiedScore,
	roles []domain.Role,
	fileLineCounts map[string]int,
	graph *domain.CallGraph,
) domain.UnifiedAnalysis {
	thresholds := debt.DefaultThresholds()

	var raw []debt.RawItem
	raw = append(raw, debt.GenerateComplexity(funcs, thresholds)...)
	raw = append(raw, debt.GenerateLongFunction(funcs, thresholds)...)
	raw = append(raw, debt.GenerateFromErrorSwallowing(funcs)...)

	for _, pf := range parsed {
		if pf.failure != nil {
			continue
		}
		lines := strings.Split(string(pf.source), "\n")
		raw = append(raw, debt.GenerateTodoMarkers(pf.path, lines)...)
	}

	bodies := make([]debt.FunctionBody, len(infos))
	for i, info := range infos {
		bodies[i] = debt.FunctionBody{ID: info.ID, File: info.ID.File, Body: info.Body}
	}
	raw = append(raw, debt.GenerateDuplication(bodies)...)

	attached := debt.AttachToFunctions(raw, funcs)

	var analysis domain.UnifiedAnalysis
	seen := make(map[dupKey]bool)
	seenFiles := make(map[string]bool)

	for i := range funcs {
		fm := funcs[i]
		items := attached.ByFunction[fm.ID]
		if len(items) == 0 {
			continue
		}
		score := scores[i]
		indicators := detectGodObject(fm)
		unified := debt.BuildFunctionItems(fm, items, score, roles[i])
		for _, item := range unified {
			item.GodObjectIndicators = indicators
			item.Tier = tierFor(item.UnifiedScore.FinalScore)
			item.ContextualRisk = contextualRisk(item.UnifiedScore)
			if fm.InTestModule {
				item.FileContext = "test"
			}
			clampEndLine(&item.Location, fileLineCounts)
			addItem(&analysis, seen, item, fm.Cyclomatic, fm.Cognitive, graph.IsTestOnly(fm.ID), d.Config.Thresholds)
		}
	}

	for _, fileItem := range debt.BuildFileItems(attached.FreeStanding) {
		clampEndLine(&fileItem.Location, fileLineCounts)
		addFileItem(&analysis, seenFiles, fileItem, d.Config.Thresholds.MinScore)
	}

	return analysis
}

// clampEndLine bounds a location's EndLine against the file-line-count
// cache built in step 4, so a raw item's span can never claim to reach
// past its own file's last line.
func clampEndLine(loc *domain.Location, fileLineCounts map[string]int) {
	if n, ok := fileLineCounts[loc.File]; ok && loc.EndLine > n {
		loc.EndLine = n
	}
}
