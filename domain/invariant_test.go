package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckFunctionName_PanicsOnEmpty(t *testing.T) {
	assert.Panics(t, func() { CheckFunctionName("") })
	assert.NotPanics(t, func() { CheckFunctionName("f") })
}

func TestCheckFiniteScore_PanicsOnNaNAndInf(t *testing.T) {
	assert.Panics(t, func() { CheckFiniteScore("x", math.NaN()) })
	assert.Panics(t, func() { CheckFiniteScore("x", math.Inf(1)) })
	assert.Panics(t, func() { CheckFiniteScore("x", math.Inf(-1)) })
	assert.NotPanics(t, func() { CheckFiniteScore("x", 42.0) })
}

func TestCheckNonNegative_PanicsOnNegative(t *testing.T) {
	assert.Panics(t, func() { CheckNonNegative("x", -1) })
	assert.NotPanics(t, func() { CheckNonNegative("x", 0) })
}

func TestInternalInvariantViolation_ErrorIncludesWhat(t *testing.T) {
	v := InternalInvariantViolation{What: "something broke"}
	assert.Contains(t, v.Error(), "something broke")
}
