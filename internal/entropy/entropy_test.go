package entropy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debtcore/debtcore/domain"
)

func defaultConfig() domain.EntropyConfig {
	return domain.EntropyConfig{Enabled: true, PatternThreshold: 0.5, MaxCacheSize: 100}
}

func TestAnalyzer_RepetitiveCodeDampensBelowOne(t *testing.T) {
	a := NewAnalyzer(defaultConfig())
	body := []byte(`{
		if x == 1 { log(x); }
		if x == 2 { log(x); }
		if x == 3 { log(x); }
		if x == 4 { log(x); }
	}`)
	score := a.Calculate(body, 1)
	assert.GreaterOrEqual(t, score.DampeningApplied, 0.5)
	assert.LessOrEqual(t, score.DampeningApplied, 1.0)
}

func TestAnalyzer_CacheHitMatchesCacheMiss(t *testing.T) {
	a := NewAnalyzer(defaultConfig())
	body := []byte(`{ if a { b(); } else { c(); } }`)

	first := a.Calculate(body, 1)
	stats := a.Stats()
	require.Equal(t, 0, stats.Hits)
	require.Equal(t, 1, stats.Misses)

	second := a.Calculate(body, 1)
	stats = a.Stats()
	assert.Equal(t, 1, stats.Hits)
	assert.Equal(t, first, second)
}

func TestAnalyzer_DisabledShortCircuitsToNoDampening(t *testing.T) {
	a := NewAnalyzer(domain.EntropyConfig{Enabled: false})
	score := a.Calculate([]byte(`{ if a { b(); } }`), 2)
	assert.Equal(t, 1.0, score.DampeningApplied)
	assert.Equal(t, 2, score.MaxNesting)
}

func TestCache_EvictsOldestWhenFull(t *testing.T) {
	c := NewCache(2)
	c.put("a", domain.EntropyScore{TokenEntropy: 0.1})
	c.put("b", domain.EntropyScore{TokenEntropy: 0.2})
	c.put("c", domain.EntropyScore{TokenEntropy: 0.3})

	_, hasA := c.get("a")
	_, hasC := c.get("c")
	assert.False(t, hasA, "oldest entry should have been evicted")
	assert.True(t, hasC)
	assert.Equal(t, 1, c.Stats().Evictions)
}

func TestPatternRepetition_EmptyIsZero(t *testing.T) {
	assert.Equal(t, 0.0, patternRepetition(nil))
}

func TestGraduatedDampening_NoEffectBelowThreshold(t *testing.T) {
	assert.Equal(t, 1.0, graduatedDampening(0.3, 0.5, 1.0, 0.2, true))
}

func TestGraduatedDampening_CapsAtMaxReduction(t *testing.T) {
	result := graduatedDampening(10.0, 0.5, 1.0, 0.2, true)
	assert.InDelta(t, 0.8, result, 1e-9)
}

func TestEffectiveComplexity_HighEntropyLowRepetitionStaysHigh(t *testing.T) {
	v := effectiveComplexity(0.9, 0.0, 0.0)
	assert.Greater(t, v, 0.9)
}
