package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDataFlowGraph_InitializesEmptyMaps(t *testing.T) {
	g := NewCallGraph([]FunctionId{{File: "a.rs", Name: "f", StartLine: 1}})
	d := NewDataFlowGraph(g)

	assert.NotNil(t, d.Purity)
	assert.NotNil(t, d.IoOperations)
	assert.NotNil(t, d.Mutations)
	assert.NotNil(t, d.VariableDeps)
	assert.Empty(t, d.Purity)
}

func TestDataFlowGraph_ValidatePassesWhenEveryKeyIsAGraphNode(t *testing.T) {
	id := FunctionId{File: "a.rs", Name: "f", StartLine: 1}
	g := NewCallGraph([]FunctionId{id})
	d := NewDataFlowGraph(g)
	d.Purity[id] = PurityInfo{Level: PurityStrictlyPure, Confidence: 1}

	assert.NotPanics(t, func() { d.Validate() })
}

func TestDataFlowGraph_ValidatePanicsOnDanglingReference(t *testing.T) {
	g := NewCallGraph([]FunctionId{{File: "a.rs", Name: "f", StartLine: 1}})
	d := NewDataFlowGraph(g)
	d.Mutations[FunctionId{File: "a.rs", Name: "ghost", StartLine: 99}] = MutationInfo{HasMutations: true}

	assert.Panics(t, func() { d.Validate() })
}
