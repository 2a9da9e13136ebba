package callgraph

import "github.com/debtcore/debtcore/internal/metrics"

// braceCtx records, for one open "{", whether it opens a struct-literal
// body (immediately preceded by a PascalCase identifier, as in
// "Struct { field: helper(a, b) }") rather than a block body.
type braceCtx struct {
	isStructLiteral bool
}

// scanCalls walks the token stream once, finding every name(...) or
// receiver.name(...) / Receiver::name(...) call-shape, annotating each
// with whether it sits inside a struct-literal field position so the
// caller can tag it Constructor-arg instead of Direct — the regression
// spec.md §4.6 calls out: macro-wrapped struct literals
// (vec![Struct{field: helper()}]) resolve identically since the
// tokenizer drops "[" and "]" and keeps "!" only as a separate token,
// leaving the same brace shape.
func scanCalls(toks []metrics.Tok) []call {
	var calls []call
	var stack []braceCtx

	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch t.Text {
		case "{":
			prev := ""
			if i > 0 {
				prev = toks[i-1].Text
			}
			stack = append(stack, braceCtx{isStructLiteral: looksLikeType(prev)})
			continue
		case "}":
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			continue
		}

		if i+1 >= len(toks) || toks[i+1].Text != "(" {
			continue
		}
		if !isCallName(t.Text) {
			continue
		}

		inStructLiteral := len(stack) > 0 && stack[len(stack)-1].isStructLiteral

		sep := ""
		if i >= 1 {
			sep = toks[i-1].Text
		}
		switch sep {
		case ".", "::":
			if i >= 2 {
				calls = append(calls, call{receiver: toks[i-2].Text, name: t.Text, inStructLiteral: inStructLiteral})
			}
		default:
			calls = append(calls, call{receiver: "", name: t.Text, inStructLiteral: inStructLiteral})
		}
	}
	return calls
}

func isCallName(s string) bool {
	if s == "" || metrics.IsKeyword(s) {
		return false
	}
	c := s[0]
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
