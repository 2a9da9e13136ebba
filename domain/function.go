package domain

import "fmt"

// Language identifies the source language a function was parsed from.
type Language string

const (
	LangRust       Language = "rust"
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
)

// Visibility mirrors the language-level visibility of a function/method.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// FunctionId uniquely identifies a function across the whole analysis: the
// triple (file_path, function_name, start_line). function_name is the
// qualified form "Type::method" for methods, matching spec.md §3.
type FunctionId struct {
	File      string
	Name      string
	StartLine int
}

func (id FunctionId) String() string {
	return fmt.Sprintf("%s:%s:%d", id.File, id.Name, id.StartLine)
}

// PurityLevel classifies a function's observable effects (§4.5).
type PurityLevel string

const (
	PurityStrictlyPure PurityLevel = "StrictlyPure"
	PurityLocallyPure  PurityLevel = "LocallyPure"
	PurityReadOnly     PurityLevel = "ReadOnly"
	PurityImpure       PurityLevel = "Impure"
)

// ValidationSignals is produced by the validation-chain pattern recogniser
// (C4) and consumed directly by the scorer for transparency.
type ValidationSignals struct {
	CheckCount            int
	EarlyReturnCount       int
	StructuralSimilarity   float64
	HasValidationName      bool
	Confidence             float64
}

// MappingPatternResult is produced by the pure-mapping recogniser (C4).
type MappingPatternResult struct {
	IsPureMapping    bool
	AdjustedCyclo    int
	AdjustedCognitive int
}

// ErrorSwallowingInfo captures a raw-debt-item style finding (§4.9) that the
// aggregator may attach to this function if its line range contains one.
type ErrorSwallowingInfo struct {
	Detected bool
	Line     int
	Pattern  string // e.g. "empty catch", "discarded Result"
}

// FunctionMetrics is the per-function record described in spec.md §3. Once
// constructed by the C2–C5 fan-out it is immutable; only the graph
// neighbourhood fields are filled in later (by the C6 call graph pass) and
// the struct is never mutated concurrently with reads of the already-set
// fields — a fresh copy is returned by whatever pass fills them in.
type FunctionMetrics struct {
	ID FunctionId

	File     string
	Line     int
	Length   int
	Language Language

	Cyclomatic int
	Cognitive  int
	Nesting    int

	IsTest        bool
	InTestModule  bool
	IsTraitMethod bool
	Visibility    Visibility

	EnclosingType string
	TraitName     string
	ParamCount    int
	ParamNames    []string

	// Optional analyses — nil/zero-value until the corresponding component
	// runs; never replaced with fabricated values.
	EntropyScore          *EntropyScore
	IsPure                *bool
	PurityConfidence      float64
	PurityLevel           PurityLevel
	MappingPatternResult  *MappingPatternResult
	AdjustedComplexity    *int
	ErrorSwallowing       *ErrorSwallowingInfo

	Pattern *PatternMatch

	// Graph neighbourhood, filled in after C6 runs over all files.
	UpstreamCallers   []FunctionId
	DownstreamCallees []FunctionId

	// Language-specific side data, e.g. Python decorators.
	Decorators []string
}

// Validate enforces the non-negotiable invariants of a constructed metric
// record (§7 InternalInvariant: empty name, negative length are fatal bugs).
func (m *FunctionMetrics) Validate() {
	CheckFunctionName(m.ID.Name)
	CheckNonNegative("FunctionMetrics.Length", m.Length)
	CheckNonNegative("FunctionMetrics.Cyclomatic", m.Cyclomatic)
	CheckNonNegative("FunctionMetrics.Cognitive", m.Cognitive)
	CheckNonNegative("FunctionMetrics.Nesting", m.Nesting)
}
