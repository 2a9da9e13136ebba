package domain

// IoKind classifies a detected I/O operation (§4.5).
type IoKind string

const (
	IoFile    IoKind = "file_io"
	IoNetwork IoKind = "network"
	IoDB      IoKind = "database"
	IoConsole IoKind = "console"
)

// IoOperation is one detected I/O call site within a function body.
type IoOperation struct {
	Kind      IoKind
	Line      int
	Variables []string
}

// MutationInfo records observed mutation signals for a function (§4.5).
type MutationInfo struct {
	HasMutations      bool
	DetectedMutations []string // target-path strings, e.g. "self.count"
}

// PurityInfo is the full purity classification produced by C5 for one
// function, before it is folded into FunctionMetrics.
type PurityInfo struct {
	Level      PurityLevel
	Confidence float64
}

// DataFlowGraph carries the call graph plus per-function purity/IO/mutation
// analysis and variable-dependency sets (§3). Invariant: every FunctionId
// key below must exist as a node in Graph.
type DataFlowGraph struct {
	Graph *CallGraph

	Purity        map[FunctionId]PurityInfo
	IoOperations  map[FunctionId][]IoOperation
	Mutations     map[FunctionId]MutationInfo
	VariableDeps  map[FunctionId]map[string]bool
}

// NewDataFlowGraph wraps a built CallGraph with empty per-function maps.
func NewDataFlowGraph(g *CallGraph) *DataFlowGraph {
	return &DataFlowGraph{
		Graph:        g,
		Purity:       make(map[FunctionId]PurityInfo),
		IoOperations: make(map[FunctionId][]IoOperation),
		Mutations:    make(map[FunctionId]MutationInfo),
		VariableDeps: make(map[FunctionId]map[string]bool),
	}
}

// Validate panics if any per-function map references a FunctionId absent
// from the underlying call graph — an InternalInvariant per §3/§7.
func (d *DataFlowGraph) Validate() {
	check := func(id FunctionId) {
		if d.Graph.IndexOf(id) < 0 {
			panic(InternalInvariantViolation{What: "data flow graph references a function absent from the call graph: " + id.String()})
		}
	}
	for id := range d.Purity {
		check(id)
	}
	for id := range d.IoOperations {
		check(id)
	}
	for id := range d.Mutations {
		check(id)
	}
	for id := range d.VariableDeps {
		check(id)
	}
}
