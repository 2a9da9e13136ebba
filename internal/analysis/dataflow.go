package analysis

import (
	"github.com/debtcore/debtcore/domain"
	"github.com/debtcore/debtcore/internal/callgraph"
	"github.com/debtcore/debtcore/internal/purity"
)

// buildDataFlowGraph assembles the DataFlowGraph (§3) from the call graph
// already built and the C5 results already computed per function, keeping
// every per-function map populated even for functions with zero findings
// of a given kind so DataFlowGraph.Validate's node-membership invariant
// holds trivially.
func buildDataFlowGraph(graph *domain.CallGraph, infos []callgraph.FuncInfo, results []purity.Result) *domain.DataFlowGraph {
	d := domain.NewDataFlowGraph(graph)
	for i, info := range infos {
		r := results[i]
		d.Purity[info.ID] = domain.PurityInfo{Level: r.Purity.Level, Confidence: r.Purity.Confidence}
		d.IoOperations[info.ID] = r.IoOps
		d.Mutations[info.ID] = r.Mutations
		d.VariableDeps[info.ID] = r.VariableDeps
	}
	return d
}
