package debt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debtcore/debtcore/domain"
)

func metric(file string, name string, start, length, cyclomatic int) domain.FunctionMetrics {
	return domain.FunctionMetrics{
		ID:         domain.FunctionId{File: file, Name: name, StartLine: start},
		File:       file,
		Line:       start,
		Length:     length,
		Cyclomatic: cyclomatic,
	}
}

func TestGenerateComplexity_FlagsOverThreshold(t *testing.T) {
	funcs := []domain.FunctionMetrics{
		metric("a.rs", "simple", 1, 5, 3),
		metric("a.rs", "complex", 10, 5, 25),
	}
	items := GenerateComplexity(funcs, DefaultThresholds())
	require.Len(t, items, 1)
	assert.Contains(t, items[0].Message, `"complex"`)
	assert.Equal(t, domain.DebtComplexity, items[0].DebtType)
	assert.Equal(t, "high", items[0].Impact)
}

func TestGenerateComplexity_MediumImpactJustOverThreshold(t *testing.T) {
	funcs := []domain.FunctionMetrics{metric("a.rs", "mild", 1, 5, 12)}
	items := GenerateComplexity(funcs, DefaultThresholds())
	require.Len(t, items, 1)
	assert.Equal(t, "medium", items[0].Impact)
}

func TestGenerateLongFunction_FlagsOverThreshold(t *testing.T) {
	funcs := []domain.FunctionMetrics{
		metric("a.rs", "short", 1, 10, 1),
		metric("a.rs", "long", 20, 80, 1),
	}
	items := GenerateLongFunction(funcs, DefaultThresholds())
	require.Len(t, items, 1)
	assert.Equal(t, domain.DebtLongFunction, items[0].DebtType)
}

func TestGenerateFromErrorSwallowing_OnlyDetected(t *testing.T) {
	f1 := metric("a.rs", "clean", 1, 5, 1)
	f2 := metric("a.rs", "swallows", 10, 5, 1)
	f2.ErrorSwallowing = &domain.ErrorSwallowingInfo{Detected: true, Line: 12, Pattern: "empty catch"}
	items := GenerateFromErrorSwallowing([]domain.FunctionMetrics{f1, f2})
	require.Len(t, items, 1)
	assert.Equal(t, 12, items[0].Line)
	assert.Equal(t, domain.DebtErrorSwallowing, items[0].DebtType)
}

func TestGenerateTodoMarkers_DetectsTodoAndFixme(t *testing.T) {
	lines := []string{
		"fn main() {}",
		"// TODO: handle the empty case",
		"// FIXME broken on windows",
		"let x = 1;",
	}
	items := GenerateTodoMarkers("a.rs", lines)
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[0].Line)
	assert.Contains(t, items[0].Message, "handle the empty case")
	assert.Equal(t, 3, items[1].Line)
}

func TestGenerateTodoMarkers_IgnoresUnrelatedComments(t *testing.T) {
	items := GenerateTodoMarkers("a.rs", []string{"// a normal comment"})
	assert.Empty(t, items)
}

func TestGenerateDuplication_FlagsIdenticalNormalizedBodies(t *testing.T) {
	bodies := []FunctionBody{
		{ID: domain.FunctionId{File: "a.rs", Name: "one", StartLine: 1}, File: "a.rs", Body: []byte("{ return a + b; }")},
		{ID: domain.FunctionId{File: "a.rs", Name: "two", StartLine: 10}, File: "a.rs", Body: []byte("{ return a + b; }")},
		{ID: domain.FunctionId{File: "a.rs", Name: "unique", StartLine: 20}, File: "a.rs", Body: []byte("{ return a * b; }")},
	}
	items := GenerateDuplication(bodies)
	require.Len(t, items, 2)
	for _, it := range items {
		assert.Equal(t, domain.DebtDuplication, it.DebtType)
	}
}

func TestGenerateDuplication_NoGroupBelowTwo(t *testing.T) {
	bodies := []FunctionBody{
		{ID: domain.FunctionId{File: "a.rs", Name: "one", StartLine: 1}, File: "a.rs", Body: []byte("{ return a; }")},
	}
	assert.Empty(t, GenerateDuplication(bodies))
}

func TestAttachToFunctions_AssignsInnermostOwner(t *testing.T) {
	outer := metric("a.rs", "outer", 1, 100, 1)
	inner := metric("a.rs", "inner", 10, 5, 1)
	item := RawItem{File: "a.rs", Line: 12, DebtType: domain.DebtTodoMarker}

	attached := AttachToFunctions([]RawItem{item}, []domain.FunctionMetrics{outer, inner})
	require.Len(t, attached.ByFunction[inner.ID], 1)
	assert.Empty(t, attached.ByFunction[outer.ID])
	assert.Empty(t, attached.FreeStanding)
}

func TestAttachToFunctions_FreeStandingWhenOutsideAllRanges(t *testing.T) {
	f := metric("a.rs", "f", 1, 10, 1)
	item := RawItem{File: "a.rs", Line: 500, DebtType: domain.DebtTodoMarker}

	attached := AttachToFunctions([]RawItem{item}, []domain.FunctionMetrics{f})
	assert.Empty(t, attached.ByFunction)
	require.Len(t, attached.FreeStanding, 1)
}

func TestBuildFunctionItems_SharesFunctionScore(t *testing.T) {
	f := metric("a.rs", "f", 1, 10, 12)
	score := domain.UnifiedScore{FinalScore: 42.0}
	items := BuildFunctionItems(f, []RawItem{{File: "a.rs", Line: 2, DebtType: domain.DebtComplexity, Message: "msg", Impact: "high"}}, score, domain.RolePureLogic)
	require.Len(t, items, 1)
	assert.Equal(t, 42.0, items[0].UnifiedScore.FinalScore)
	assert.Equal(t, domain.RolePureLogic, items[0].FunctionRole)
	assert.Equal(t, "f", items[0].Location.Function)
}

func TestBuildFileItems_ScoresBySeverity(t *testing.T) {
	items := BuildFileItems([]RawItem{
		{File: "a.rs", Line: 1, DebtType: domain.DebtTodoMarker, Impact: "low"},
		{File: "a.rs", Line: 2, DebtType: domain.DebtErrorSwallowing, Impact: "high"},
	})
	require.Len(t, items, 2)
	assert.Less(t, items[0].Score, items[1].Score)
}
