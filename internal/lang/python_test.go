package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debtcore/debtcore/domain"
)

func TestPythonAdapter_TopLevelFunction(t *testing.T) {
	src := []byte("def add(a, b):\n    return a + b\n")
	a := NewPythonAdapter()
	result := a.Parse("math.py", src)

	require.Nil(t, result.Failure)
	require.Len(t, result.Functions, 1)

	fn := result.Functions[0]
	assert.Equal(t, "add", fn.QualifiedName)
	assert.Equal(t, 1, fn.StartLine)
	assert.Equal(t, []string{"a", "b"}, fn.ParamNames)
	assert.Equal(t, domain.VisibilityPublic, fn.Visibility)
	assert.Equal(t, domain.LangPython, fn.Language)
	assert.Equal(t, "    return a + b", string(fn.Body))
}

func TestPythonAdapter_MethodInsideClassIsQualified(t *testing.T) {
	src := []byte("class Widget:\n    def render(self):\n        return True\n")
	a := NewPythonAdapter()
	result := a.Parse("widget.py", src)

	require.Len(t, result.Functions, 1)
	fn := result.Functions[0]
	assert.Equal(t, "Widget::render", fn.QualifiedName)
	assert.Equal(t, "Widget", fn.EnclosingType)
	assert.True(t, fn.IsTraitImpl)
}

func TestPythonAdapter_PrivateNameLeadingUnderscore(t *testing.T) {
	src := []byte("def _helper():\n    return 1\n")
	a := NewPythonAdapter()
	result := a.Parse("m.py", src)

	require.Len(t, result.Functions, 1)
	assert.Equal(t, domain.VisibilityPrivate, result.Functions[0].Visibility)
}

func TestPythonAdapter_DunderNameStaysPublic(t *testing.T) {
	src := []byte("class Foo:\n    def __init__(self):\n        self.x = 1\n")
	a := NewPythonAdapter()
	result := a.Parse("m.py", src)

	require.Len(t, result.Functions, 1)
	assert.Equal(t, domain.VisibilityPublic, result.Functions[0].Visibility)
}

func TestPythonAdapter_TestFunctionNameDetectedAsTest(t *testing.T) {
	src := []byte("def test_addition():\n    assert 1 + 1 == 2\n")
	a := NewPythonAdapter()
	result := a.Parse("test_math.py", src)

	require.Len(t, result.Functions, 1)
	fn := result.Functions[0]
	assert.True(t, fn.IsTest)
	assert.True(t, fn.InTestModule)
}

func TestPythonAdapter_DecoratorsAttachToFollowingDef(t *testing.T) {
	src := []byte("@staticmethod\n@cached\ndef compute():\n    return 1\n")
	a := NewPythonAdapter()
	result := a.Parse("m.py", src)

	require.Len(t, result.Functions, 1)
	assert.Equal(t, []string{"@staticmethod", "@cached"}, result.Functions[0].Attributes)
}

func TestPythonAdapter_DecoratorsDoNotLeakToNextDefAfterOtherStatement(t *testing.T) {
	src := []byte("@cached\nx = 1\ndef plain():\n    return x\n")
	a := NewPythonAdapter()
	result := a.Parse("m.py", src)

	require.Len(t, result.Functions, 1)
	assert.Empty(t, result.Functions[0].Attributes)
}

func TestPythonAdapter_AsyncDefIsRecognized(t *testing.T) {
	src := []byte("async def fetch(url):\n    return await get(url)\n")
	a := NewPythonAdapter()
	result := a.Parse("m.py", src)

	require.Len(t, result.Functions, 1)
	assert.Equal(t, "fetch", result.Functions[0].QualifiedName)
	assert.Equal(t, []string{"url"}, result.Functions[0].ParamNames)
}

func TestPythonAdapter_MultiLineHeaderSpanningParens(t *testing.T) {
	// The header-end scan (matching the opening "(" across lines) only
	// locates where the body starts; param extraction reads the first
	// physical line of the header only, so a multi-line signature yields
	// no params here even though the body is still captured correctly.
	src := []byte("def wide(\n    a,\n    b,\n):\n    return a + b\n")
	a := NewPythonAdapter()
	result := a.Parse("m.py", src)

	require.Len(t, result.Functions, 1)
	fn := result.Functions[0]
	assert.Equal(t, "wide", fn.QualifiedName)
	assert.Contains(t, string(fn.Body), "return a + b")
}

func TestPythonAdapter_ParamsWithDefaultsAndAnnotationsStripped(t *testing.T) {
	src := []byte("def greet(name: str, loud: bool = False):\n    return name\n")
	a := NewPythonAdapter()
	result := a.Parse("m.py", src)

	require.Len(t, result.Functions, 1)
	assert.Equal(t, []string{"name", "loud"}, result.Functions[0].ParamNames)
}

func TestPythonAdapter_NestedFunctionInsideTopLevelIsOwnSpan(t *testing.T) {
	src := []byte("def outer():\n    def inner():\n        return 1\n    return inner()\n")
	a := NewPythonAdapter()
	result := a.Parse("m.py", src)

	names := make([]string, 0, len(result.Functions))
	for _, fn := range result.Functions {
		names = append(names, fn.QualifiedName)
	}
	assert.Contains(t, names, "outer")
	assert.Contains(t, names, "inner")
}

func TestPythonAdapter_ClassScopeEndsAtDedent(t *testing.T) {
	src := []byte("class A:\n    def m(self):\n        return 1\n\ndef free():\n    return 2\n")
	a := NewPythonAdapter()
	result := a.Parse("m.py", src)

	require.Len(t, result.Functions, 2)
	assert.Equal(t, "A::m", result.Functions[0].QualifiedName)
	assert.Equal(t, "free", result.Functions[1].QualifiedName)
	assert.Empty(t, result.Functions[1].EnclosingType)
}

func TestPythonAdapter_EmptySourceProducesNoFunctions(t *testing.T) {
	a := NewPythonAdapter()
	result := a.Parse("empty.py", []byte(""))
	assert.Nil(t, result.Failure)
	assert.Empty(t, result.Functions)
}

func TestPythonAdapter_LanguageReportsPython(t *testing.T) {
	a := NewPythonAdapter()
	assert.Equal(t, domain.LangPython, a.Language())
}
