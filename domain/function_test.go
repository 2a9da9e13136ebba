package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFunctionId_StringFormatsTriple(t *testing.T) {
	id := FunctionId{File: "src/lib.rs", Name: "Widget::render", StartLine: 42}
	assert.Equal(t, "src/lib.rs:Widget::render:42", id.String())
}

func TestFunctionMetrics_ValidatePanicsOnEmptyName(t *testing.T) {
	m := &FunctionMetrics{ID: FunctionId{Name: ""}}
	assert.Panics(t, func() { m.Validate() })
}

func TestFunctionMetrics_ValidatePanicsOnNegativeLength(t *testing.T) {
	m := &FunctionMetrics{ID: FunctionId{Name: "f"}, Length: -1}
	assert.Panics(t, func() { m.Validate() })
}

func TestFunctionMetrics_ValidatePanicsOnNegativeCyclomatic(t *testing.T) {
	m := &FunctionMetrics{ID: FunctionId{Name: "f"}, Cyclomatic: -1}
	assert.Panics(t, func() { m.Validate() })
}

func TestFunctionMetrics_ValidateAcceptsWellFormedMetric(t *testing.T) {
	m := &FunctionMetrics{ID: FunctionId{Name: "f", File: "a.rs", StartLine: 1}, Length: 10, Cyclomatic: 3, Cognitive: 2, Nesting: 1}
	assert.NotPanics(t, func() { m.Validate() })
}
