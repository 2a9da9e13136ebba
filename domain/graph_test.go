package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSampleGraph() (*CallGraph, FunctionId, FunctionId) {
	a := FunctionId{File: "a.rs", Name: "caller", StartLine: 1}
	b := FunctionId{File: "a.rs", Name: "callee", StartLine: 10}
	g := NewCallGraph([]FunctionId{a, b})
	g.AddEdge(0, 1, EdgeDirect)
	return g, a, b
}

func TestCallGraph_IndexOfKnownAndUnknownNode(t *testing.T) {
	g, a, _ := buildSampleGraph()
	assert.Equal(t, 0, g.IndexOf(a))
	assert.Equal(t, -1, g.IndexOf(FunctionId{Name: "ghost"}))
}

func TestCallGraph_CallersAndCallees(t *testing.T) {
	g, a, b := buildSampleGraph()

	callers := g.Callers(b)
	require.Len(t, callers, 1)
	assert.Equal(t, a, callers[0])

	callees := g.Callees(a)
	require.Len(t, callees, 1)
	assert.Equal(t, b, callees[0])

	assert.Empty(t, g.Callers(a))
	assert.Empty(t, g.Callees(b))
}

func TestCallGraph_CallersOfUnknownNodeIsNil(t *testing.T) {
	g, _, _ := buildSampleGraph()
	assert.Nil(t, g.Callers(FunctionId{Name: "ghost"}))
	assert.Nil(t, g.Callees(FunctionId{Name: "ghost"}))
}

func TestCallGraph_AddEdgePanicsOnOutOfRangeIndex(t *testing.T) {
	g, _, _ := buildSampleGraph()
	assert.Panics(t, func() { g.AddEdge(0, 5, EdgeDirect) })
	assert.Panics(t, func() { g.AddEdge(-1, 0, EdgeDirect) })
}

func TestCallGraph_TestOnlyAndFrameworkExclusionDefaults(t *testing.T) {
	g, a, b := buildSampleGraph()
	assert.False(t, g.IsTestOnly(a))
	assert.False(t, g.IsFrameworkExclusion(b))

	g.SetTestOnly(a, true)
	assert.True(t, g.IsTestOnly(a))

	g.FrameworkExclusions[b] = true
	assert.True(t, g.IsFrameworkExclusion(b))
}
