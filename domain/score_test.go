package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnifiedScore_ValidatePanicsOnOutOfRangeFinalScore(t *testing.T) {
	s := &UnifiedScore{FinalScore: 150}
	assert.Panics(t, func() { s.Validate() })

	s2 := &UnifiedScore{FinalScore: -1}
	assert.Panics(t, func() { s2.Validate() })
}

func TestUnifiedScore_ValidatePanicsOnNonFiniteFactor(t *testing.T) {
	s := &UnifiedScore{FinalScore: 50, ComplexityFactor: math.NaN()}
	assert.Panics(t, func() { s.Validate() })
}

func TestUnifiedScore_ValidateAcceptsWellFormedScore(t *testing.T) {
	s := &UnifiedScore{FinalScore: 50, ComplexityFactor: 1, CoverageFactor: 1, DependencyFactor: 1, RoleMultiplier: 1, PurityFactor: 1, PatternFactor: 1}
	assert.NotPanics(t, func() { s.Validate() })
}
