package lang

import (
	"fmt"
	"strings"

	"github.com/debtcore/debtcore/domain"
)

// PythonAdapter implements the dynamic, indentation-based adapter required
// by spec.md §4.1. Deliberately does not use tree-sitter: the point of
// this adapter, distinct from the JS/TS tree-walk, is to locate function
// bodies purely from indentation — the same technique CPython's own
// tokenizer (and every Python formatter) relies on. Grounded in
// original_source/src/complexity/languages/python/core.rs for what counts
// as a function header and a decorator.
type PythonAdapter struct{}

func NewPythonAdapter() *PythonAdapter { return &PythonAdapter{} }

func (a *PythonAdapter) Language() domain.Language { return domain.LangPython }

type pythonAst struct{ lines []string }

func (p *pythonAst) Language() domain.Language { return domain.LangPython }

func (a *PythonAdapter) Parse(filePath string, source []byte) ParseResult {
	text := string(source)
	lines := strings.Split(text, "\n")

	var spans []FunctionSpan
	inTestModule := strings.Contains(filePath, "test_") || strings.Contains(filePath, "_test.py") ||
		strings.Contains(filePath, "/tests/") || strings.Contains(filePath, "conftest.py")

	var pendingDecorators []string
	var enclosingClass string
	var classIndent = -1

	byteOffsets := make([]int, len(lines)+1)
	off := 0
	for i, l := range lines {
		byteOffsets[i] = off
		off += len(l) + 1 // account for the '\n' split away
	}
	byteOffsets[len(lines)] = off

	for i := 0; i < len(lines); i++ {
		raw := lines[i]
		trimmed := strings.TrimLeft(raw, " \t")
		indent := len(raw) - len(trimmed)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if classIndent >= 0 && indent <= classIndent {
			enclosingClass = ""
			classIndent = -1
		}

		if strings.HasPrefix(trimmed, "class ") {
			name := headerName(trimmed, "class ")
			enclosingClass = name
			classIndent = indent
			pendingDecorators = nil
			continue
		}

		if strings.HasPrefix(trimmed, "@") {
			pendingDecorators = append(pendingDecorators, strings.TrimSpace(trimmed))
			continue
		}

		isAsync := strings.HasPrefix(trimmed, "async def ")
		isDef := strings.HasPrefix(trimmed, "def ")
		if !isAsync && !isDef {
			// Any other non-blank statement at this indent clears pending
			// decorators (they only apply directly above a def/class).
			pendingDecorators = nil
			continue
		}

		header := trimmed
		if isAsync {
			header = strings.TrimPrefix(header, "async ")
		}
		name := headerName(header, "def ")
		params := extractParams(header)

		// Find the end of the header (may span multiple lines until the
		// matching ')' and trailing ':').
		headerEnd := i
		depth := strings.Count(header, "(") - strings.Count(header, ")")
		for depth > 0 && headerEnd+1 < len(lines) {
			headerEnd++
			depth += strings.Count(lines[headerEnd], "(") - strings.Count(lines[headerEnd], ")")
		}

		bodyStartLine := headerEnd + 1
		bodyEndLine := bodyStartLine - 1
		for j := bodyStartLine; j < len(lines); j++ {
			l := lines[j]
			t := strings.TrimLeft(l, " \t")
			if t == "" {
				bodyEndLine = j
				continue
			}
			lineIndent := len(l) - len(t)
			if lineIndent <= indent {
				break
			}
			bodyEndLine = j
		}
		// Trim trailing blank lines from the body span.
		for bodyEndLine > bodyStartLine-1 && strings.TrimSpace(lines[bodyEndLine]) == "" {
			bodyEndLine--
		}
		if bodyEndLine < bodyStartLine-1 {
			bodyEndLine = headerEnd
		}

		qualName := name
		isTraitImpl := false
		if enclosingClass != "" {
			qualName = fmt.Sprintf("%s::%s", enclosingClass, name)
			isTraitImpl = true
		}

		isTest := strings.HasPrefix(name, "test_") || hasDecoratorPrefix(pendingDecorators, "@pytest.fixture")
		vis := domain.VisibilityPublic
		if strings.HasPrefix(name, "_") && !strings.HasPrefix(name, "__") {
			vis = domain.VisibilityPrivate
		}

		bodyStartByte := byteOffsets[min(bodyStartLine, len(lines))]
		bodyEndByte := byteOffsets[min(bodyEndLine+1, len(lines))]
		if bodyEndByte > len(source) {
			bodyEndByte = len(source)
		}
		if bodyStartByte > bodyEndByte {
			bodyStartByte = bodyEndByte
		}

		spans = append(spans, FunctionSpan{
			QualifiedName: qualName,
			StartLine:     i + 1,
			EndLine:       bodyEndLine + 1,
			BodyStart:     bodyStartByte,
			BodyEnd:       bodyEndByte,
			ParamNames:    params,
			IsTest:        isTest,
			InTestModule:  inTestModule,
			Attributes:    append([]string(nil), pendingDecorators...),
			EnclosingType: enclosingClass,
			IsTraitImpl:   isTraitImpl,
			Visibility:    vis,
			Language:      domain.LangPython,
			Body:          []byte(strings.Join(lines[bodyStartLine:min(bodyEndLine+1, len(lines))], "\n")),
		})

		pendingDecorators = nil
		i = headerEnd
	}

	spans = emitSyntheticClosures(spans, filePath, detectPythonClosures)

	return ParseResult{Ast: &pythonAst{lines: lines}, Functions: spans}
}

func headerName(line, keyword string) string {
	rest := strings.TrimPrefix(line, keyword)
	if idx := strings.IndexAny(rest, "(: \t"); idx >= 0 {
		return rest[:idx]
	}
	return strings.TrimSpace(rest)
}

func extractParams(header string) []string {
	open := strings.Index(header, "(")
	if open < 0 {
		return nil
	}
	close := strings.LastIndex(header, ")")
	if close < open {
		return nil
	}
	inner := header[open+1 : close]
	if strings.TrimSpace(inner) == "" {
		return nil
	}
	parts := strings.Split(inner, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if idx := strings.IndexAny(p, ":="); idx >= 0 {
			p = strings.TrimSpace(p[:idx])
		}
		p = strings.TrimLeft(p, "*")
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func hasDecoratorPrefix(decorators []string, prefix string) bool {
	for _, d := range decorators {
		if strings.HasPrefix(d, prefix) {
			return true
		}
	}
	return false
}

// detectPythonClosures reports no synthetic closure spans. Nested "def"
// blocks are already discovered as spans of their own by the same header
// scan running across indented lines; "lambda" expressions are not split
// out, whatever their size.
func detectPythonClosures(span FunctionSpan) []FunctionSpan { return nil }

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
