package analysis

import (
	"regexp"

	"github.com/debtcore/debtcore/domain"
	"github.com/debtcore/debtcore/internal/callgraph"
	"github.com/debtcore/debtcore/internal/metrics"
)

// buildFunctions turns every parsed file's FunctionSpans into the parallel
// (FunctionMetrics, FuncInfo) records the rest of the pipeline needs: the
// former for C2's structural measurements and storage, the latter as
// internal/callgraph's node contract. Both slices share the same index so
// later phases can zip over them positionally.
func buildFunctions(parsed []parsedFile) ([]domain.FunctionMetrics, []callgraph.FuncInfo) {
	var funcs []domain.FunctionMetrics
	var infos []callgraph.FuncInfo

	for _, pf := range parsed {
		if pf.failure != nil {
			continue
		}
		for _, span := range pf.functions {
			id := domain.FunctionId{File: pf.path, Name: span.QualifiedName, StartLine: span.StartLine}
			c := metrics.Compute(span.Body, span.Language, span.StartLine, span.EndLine)

			var decorators []string
			if span.Language == domain.LangPython {
				decorators = span.Attributes
			}

			fm := domain.FunctionMetrics{
				ID:            id,
				File:          pf.path,
				Line:          span.StartLine,
				Length:        c.Length,
				Language:      span.Language,
				Cyclomatic:    c.Cyclomatic,
				Cognitive:     c.Cognitive,
				Nesting:       c.Nesting,
				IsTest:        span.IsTest,
				InTestModule:  span.InTestModule,
				IsTraitMethod: span.IsTraitImpl,
				Visibility:    span.Visibility,
				EnclosingType: span.EnclosingType,
				TraitName:     span.TraitName,
				ParamCount:    len(span.ParamNames),
				ParamNames:    span.ParamNames,
				Decorators:    decorators,
			}
			fm.ErrorSwallowing = detectErrorSwallowing(span.Body, span.Language)

			funcs = append(funcs, fm)
			infos = append(infos, callgraph.FuncInfo{
				ID:            id,
				Body:          span.Body,
				Language:      span.Language,
				EnclosingType: span.EnclosingType,
				IsTraitMethod: span.IsTraitImpl,
				Visibility:    span.Visibility,
				IsTest:        span.IsTest,
				ParamNames:    span.ParamNames,
				IsEntryPoint:  isEntryPoint(span.QualifiedName, span.Attributes),
			})
		}
	}
	return funcs, infos
}

var emptyCatchPattern = regexp.MustCompile(`(?s)\bcatch\b[^{}]*\{\s*\}`)

// detectErrorSwallowing looks for the two textual shapes spec.md's
// ErrorSwallowingInfo names: an empty catch block, and a discarded Result
// (Rust's ".ok()" used to silence an error, or a bare "let _ =" binding
// over a fallible call). It is intentionally narrow — a regex/token scan
// rather than a real dataflow analysis — since distinguishing a
// deliberately-ignored Result from a genuine bug is out of scope for a
// structural pass.
func detectErrorSwallowing(body []byte, language domain.Language) *domain.ErrorSwallowingInfo {
	if loc := emptyCatchPattern.FindIndex(body); loc != nil {
		return &domain.ErrorSwallowingInfo{
			Detected: true,
			Line:     1 + lineOf(body, loc[0]),
			Pattern:  "empty catch",
		}
	}

	if language != domain.LangRust {
		return nil
	}
	toks := metrics.Tokenize(body)
	for i, t := range toks {
		if t.Text == "." && i+2 < len(toks) && toks[i+1].Text == "ok" && toks[i+2].Text == "(" {
			return &domain.ErrorSwallowingInfo{Detected: true, Line: t.Line, Pattern: "discarded Result"}
		}
		if t.Text == "let" && i+2 < len(toks) && toks[i+1].Text == "_" && toks[i+2].Text == "=" {
			return &domain.ErrorSwallowingInfo{Detected: true, Line: t.Line, Pattern: "discarded Result"}
		}
	}
	return nil
}

func lineOf(body []byte, offset int) int {
	n := 0
	for i := 0; i < offset && i < len(body); i++ {
		if body[i] == '\n' {
			n++
		}
	}
	return n
}
