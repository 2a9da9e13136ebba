package domain

import (
	"fmt"
	"math"
)

// InternalInvariantViolation marks a bug, not a recoverable error: an empty
// function name in a constructed metric, a non-finite score, or a negative
// length. spec.md §7 requires the driver to panic rather than emit garbage,
// so these are raised with panic(), never returned as an error value.
type InternalInvariantViolation struct {
	What string
}

func (v InternalInvariantViolation) Error() string {
	return fmt.Sprintf("internal invariant violated: %s", v.What)
}

// CheckFunctionName panics if name is empty — every constructed
// FunctionMetrics/FunctionId must carry a non-empty qualified name.
func CheckFunctionName(name string) {
	if name == "" {
		panic(InternalInvariantViolation{What: "empty function name"})
	}
}

// CheckFiniteScore panics on NaN or Inf. All output floats must be finite.
func CheckFiniteScore(label string, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		panic(InternalInvariantViolation{What: fmt.Sprintf("%s is not finite: %v", label, v)})
	}
}

// CheckNonNegative panics on a negative length/count where only zero-or-more
// is valid domain-wise (e.g. function length in lines).
func CheckNonNegative(label string, v int) {
	if v < 0 {
		panic(InternalInvariantViolation{What: fmt.Sprintf("%s is negative: %d", label, v)})
	}
}
