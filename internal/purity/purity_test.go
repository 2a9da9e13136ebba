package purity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debtcore/debtcore/domain"
)

func TestAnalyze_StrictlyPureArithmetic(t *testing.T) {
	body := []byte(`{ return a + b * 2; }`)
	in := Input{Body: body, Language: domain.LangRust, ParamNames: []string{"a", "b"}}
	r := Analyze(in)
	assert.Equal(t, domain.PurityStrictlyPure, r.Purity.Level)
	assert.GreaterOrEqual(t, r.Purity.Confidence, 0.8)
	assert.Empty(t, r.IoOps)
	assert.False(t, r.Mutations.HasMutations)
}

func TestAnalyze_FileReadDetectedAsIO(t *testing.T) {
	body := []byte(`{ let f = File::open("x.txt")?; let s = f.read_to_string(&mut buf)?; }`)
	in := Input{Body: body, Language: domain.LangRust}
	r := Analyze(in)
	require.NotEmpty(t, r.IoOps)
	assert.Equal(t, domain.PurityImpure, r.Purity.Level)
	found := false
	for _, op := range r.IoOps {
		if op.Kind == domain.IoFile {
			found = true
		}
	}
	assert.True(t, found)
}

func TestAnalyze_ConsoleMacroDetected(t *testing.T) {
	body := []byte(`{ println("created file"); }`)
	in := Input{Body: body, Language: domain.LangRust}
	r := Analyze(in)
	require.Len(t, r.IoOps, 1)
	assert.Equal(t, domain.IoConsole, r.IoOps[0].Kind)
}

func TestAnalyze_NetworkConnectDetected(t *testing.T) {
	body := []byte(`{ let stream = TcpStream::connect(addr)?; }`)
	in := Input{Body: body, Language: domain.LangRust}
	r := Analyze(in)
	require.NotEmpty(t, r.IoOps)
	assert.Equal(t, domain.IoNetwork, r.IoOps[0].Kind)
}

func TestAnalyze_DatabaseQueryDetected(t *testing.T) {
	body := []byte(`{ let rows = conn.query(sql)?; }`)
	in := Input{Body: body, Language: domain.LangRust}
	r := Analyze(in)
	require.NotEmpty(t, r.IoOps)
	assert.Equal(t, domain.IoDB, r.IoOps[0].Kind)
}

func TestAnalyze_MutRefParamIsMutation(t *testing.T) {
	body := []byte(`{ *counter = *counter; }`)
	in := Input{Body: body, Language: domain.LangRust, ParamNames: []string{"counter"}}
	r := Analyze(in)
	assert.True(t, r.Mutations.HasMutations)
	assert.Contains(t, r.Mutations.DetectedMutations, "counter")
	assert.Equal(t, domain.PurityImpure, r.Purity.Level)
}

func TestAnalyze_EqualityComparisonIsNotMutation(t *testing.T) {
	body := []byte(`{ if a == b { return a; } return b; }`)
	in := Input{Body: body, Language: domain.LangRust, ParamNames: []string{"a", "b"}}
	r := Analyze(in)
	assert.False(t, r.Mutations.HasMutations)
}

func TestAnalyze_SelfFieldAssignmentIsMutation(t *testing.T) {
	body := []byte(`{ self.count = self.count + 1; }`)
	in := Input{Body: body, Language: domain.LangRust, HasSelfRecv: true}
	r := Analyze(in)
	assert.True(t, r.Mutations.HasMutations)
	assert.Contains(t, r.Mutations.DetectedMutations, "self.count")
}

func TestAnalyze_ParamReadsWithoutReceiverStayStrictlyPure(t *testing.T) {
	body := []byte(`{ if a > b { return a; } return b; }`)
	in := Input{Body: body, Language: domain.LangRust, ParamNames: []string{"a", "b"}}
	r := Analyze(in)
	assert.Equal(t, domain.PurityStrictlyPure, r.Purity.Level)
}

func TestAnalyze_SelfReaderWithoutMutationIsReadOnly(t *testing.T) {
	body := []byte(`{ return self.count; }`)
	in := Input{Body: body, Language: domain.LangRust, HasSelfRecv: true}
	r := Analyze(in)
	assert.Equal(t, domain.PurityReadOnly, r.Purity.Level)
}

func TestAnalyze_TimeSourceDemotesToLocallyPure(t *testing.T) {
	body := []byte(`{ let t = now(); return t; }`)
	in := Input{Body: body, Language: domain.LangRust}
	r := Analyze(in)
	assert.Equal(t, domain.PurityLocallyPure, r.Purity.Level)
}

func TestAnalyze_UnsafeBlockDemotesToImpure(t *testing.T) {
	body := []byte(`{ unsafe { *ptr = 1; } }`)
	in := Input{Body: body, Language: domain.LangRust}
	r := Analyze(in)
	assert.Equal(t, domain.PurityImpure, r.Purity.Level)
}

func TestAnalyze_CallToKnownNonPureCalleeDemotes(t *testing.T) {
	body := []byte(`{ return helper(x); }`)
	in := Input{Body: body, Language: domain.LangRust, NonPureCallees: map[string]bool{"helper": true}}
	r := Analyze(in)
	assert.Equal(t, domain.PurityLocallyPure, r.Purity.Level)
}

func TestAnalyze_VariableDepsIncludesParamsAndLocals(t *testing.T) {
	body := []byte(`{ let total = a + b; return total; }`)
	in := Input{Body: body, Language: domain.LangRust, ParamNames: []string{"a", "b"}}
	r := Analyze(in)
	assert.True(t, r.VariableDeps["a"])
	assert.True(t, r.VariableDeps["b"])
	assert.True(t, r.VariableDeps["total"])
}

func TestMultiplier_Table(t *testing.T) {
	assert.Equal(t, 0.70, Multiplier(domain.PurityStrictlyPure, 0.9))
	assert.Equal(t, 0.80, Multiplier(domain.PurityStrictlyPure, 0.6))
	assert.Equal(t, 0.75, Multiplier(domain.PurityLocallyPure, 0.85))
	assert.Equal(t, 0.85, Multiplier(domain.PurityLocallyPure, 0.55))
	assert.Equal(t, 0.90, Multiplier(domain.PurityReadOnly, 0.81))
	assert.Equal(t, 1.00, Multiplier(domain.PurityImpure, 0.95))
	assert.Equal(t, 1.00, Multiplier(domain.PurityStrictlyPure, 0.2))
}
