package domain

// DebtType enumerates the kinds of raw finding the per-file driver (C9)
// produces before they are attached to their owning function.
type DebtType string

const (
	DebtComplexity      DebtType = "complexity"
	DebtLongFunction    DebtType = "long_function"
	DebtErrorSwallowing DebtType = "error_swallowing"
	DebtDuplication     DebtType = "duplication"
	DebtTodoMarker      DebtType = "todo_marker"
	DebtGodObject       DebtType = "god_object"
)

// Tier buckets the final score into a coarse human-facing severity.
type Tier string

const (
	TierCritical Tier = "critical"
	TierHigh     Tier = "high"
	TierMedium   Tier = "medium"
	TierLow      Tier = "low"
)

// Location pins a debt item to a file and line range.
type Location struct {
	File      string
	Line      int
	EndLine   int
	Function  string
}

// GodObjectIndicators records why a function/file was flagged a god object
// (GLOSSARY), bypassing standard filters.
type GodObjectIndicators struct {
	IsGodObject        bool
	ResponsibilityCount int
	SizeLines           int
	Reasons             []string
}

// UnifiedDebtItem is one finding attached to a function (§3).
type UnifiedDebtItem struct {
	Location      Location
	DebtType      DebtType
	UnifiedScore  UnifiedScore
	FunctionRole  Role
	Recommendation string
	ExpectedImpact string

	TransitiveCoverage   *float64
	UpstreamDependencies   []FunctionId
	DownstreamDependencies []FunctionId

	EntropyDetails *EntropyScore
	FileContext    string // e.g. "test" when the owning file is a test file

	GodObjectIndicators GodObjectIndicators
	Tier                Tier
	ContextualRisk      float64
}

// FileDebtItem is a free-standing finding that falls outside any function's
// line range (§4.9).
type FileDebtItem struct {
	Location       Location
	DebtType       DebtType
	Score          float64
	Recommendation string
}

// FilterStatistics accounts for every item the driver processed (§4.9,
// invariant #8): total_processed == items_added + filtered_by_score +
// filtered_by_risk + filtered_by_complexity + filtered_as_duplicate +
// filtered_as_test_only.
type FilterStatistics struct {
	TotalProcessed       int
	FilteredByScore      int
	FilteredByRisk       int
	FilteredByComplexity int
	FilteredAsDuplicate  int
	FilteredAsTestOnly   int
	ItemsAdded           int
}

// Reconciles reports whether the accounting invariant holds.
func (s FilterStatistics) Reconciles() bool {
	return s.TotalProcessed == s.ItemsAdded+s.FilteredByScore+s.FilteredByRisk+s.FilteredByComplexity+s.FilteredAsDuplicate+s.FilteredAsTestOnly
}

// PhaseTiming records how long one driver phase took, for the per-phase
// timings field of UnifiedAnalysis (§3). Durations are supplied by the
// caller (e.g. time.Since) rather than computed here, keeping this package
// free of wall-clock reads per the workflow-script constraint of the build
// environment this spec is written against.
type PhaseTiming struct {
	Phase       string
	DurationMS int64
}

// UnifiedAnalysis is the final, sorted output of one analysis run (§3).
type UnifiedAnalysis struct {
	Items     []UnifiedDebtItem
	FileItems []FileDebtItem

	CallGraph     *CallGraph
	DataFlowGraph *DataFlowGraph

	Timings []PhaseTiming
	Stats   FilterStatistics

	ParseFailures []ParseFailed
}
