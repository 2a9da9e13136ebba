package lang

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/debtcore/debtcore/domain"
)

// RustAdapter implements the statically-typed systems-language adapter
// required by spec.md §4.1 via token-stream inspection: tree-sitter's Rust
// grammar is used only to produce a flat leaf-token stream (every leaf
// node, named or anonymous, in source order), not a typed AST — deliberately shallower
// than the JS/TS adapter's full tree-walk, per SPEC_FULL.md's C1 section.
type RustAdapter struct {
	parser *sitter.Parser
}

func NewRustAdapter() *RustAdapter {
	p := sitter.NewParser()
	p.SetLanguage(rust.GetLanguage())
	return &RustAdapter{parser: p}
}

func (a *RustAdapter) Language() domain.Language { return domain.LangRust }

// rustToken is one leaf token in the flat stream, carrying enough position
// information to re-derive function spans and braces without a semantic
// tree.
type rustToken struct {
	kind  string // grammar node type, e.g. "fn", "identifier", "{", "}"
	text  string
	line  int // 1-based
	start int // byte offset
	end   int
}

type rustAst struct {
	tokens []rustToken
	source []byte
}

func (r *rustAst) Language() domain.Language { return domain.LangRust }

// flattenLeaves walks the tree-sitter CST and records every leaf node
// (a node with no children at all, so keywords and punctuation such as
// "fn" and "{" are included) as a token — the "token-stream inspection" this
// adapter is specified to use, as opposed to acting on the grammar's
// structured node types.
func flattenLeaves(n *sitter.Node, source []byte, out *[]rustToken) {
	if n == nil {
		return
	}
	if n.ChildCount() == 0 {
		*out = append(*out, rustToken{
			kind:  n.Type(),
			text:  n.Content(source),
			line:  int(n.StartPoint().Row) + 1,
			start: int(n.StartByte()),
			end:   int(n.EndByte()),
		})
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		flattenLeaves(n.Child(i), source, out)
	}
}

func (a *RustAdapter) Parse(filePath string, source []byte) ParseResult {
	tree, err := a.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return ParseResult{Failure: &domain.ParseFailed{Path: filePath, Message: err.Error()}}
	}
	root := tree.RootNode()
	if root == nil {
		return ParseResult{Failure: &domain.ParseFailed{Path: filePath, Message: "empty parse tree"}}
	}

	var tokens []rustToken
	flattenLeaves(root, source, &tokens)

	spans := scanRustFunctions(tokens, source, filePath)
	spans = emitSyntheticClosures(spans, filePath, detectRustClosures(tokens, source))

	return ParseResult{Ast: &rustAst{tokens: tokens, source: source}, Functions: spans}
}

// scanRustFunctions finds "fn" keyword tokens, reads the qualified name,
// parameter list, and brace-matched body purely from the token stream —
// no reliance on tree-sitter's function_item node shape beyond locating
// the "fn" keyword and counting braces.
func scanRustFunctions(tokens []rustToken, source []byte, filePath string) []FunctionSpan {
	var spans []FunctionSpan

	type scope struct {
		name       string
		traitName  string
		isTrait    bool
		closeBrace int // token index of the scope's closing '}'
	}
	var scopeStack []scope

	inTestModule := strings.Contains(filePath, "/tests/") || strings.Contains(filePath, "_test.rs") || strings.HasSuffix(filePath, "tests.rs")

	var pendingAttrs []string

	for i := 0; i < len(tokens); i++ {
		t := tokens[i]

		switch t.kind {
		case "line_comment", "block_comment":
			continue
		}

		if t.kind == "#" {
			// Gather "#[attr]" as raw text until the matching ']'.
			j := i
			depth := 0
			var b strings.Builder
			for ; j < len(tokens); j++ {
				b.WriteString(tokens[j].text)
				if tokens[j].kind == "[" {
					depth++
				} else if tokens[j].kind == "]" {
					depth--
					if depth == 0 {
						break
					}
				}
			}
			pendingAttrs = append(pendingAttrs, b.String())
			i = j
			continue
		}

		if (t.kind == "struct" || t.kind == "enum") && len(scopeStack) == 0 {
			pendingAttrs = nil
		}

		if t.kind == "impl" || t.kind == "trait" {
			isTrait := t.kind == "trait"
			name, traitName, braceIdx := parseImplOrTraitHeader(tokens, i, isTrait)
			if braceIdx >= 0 {
				closeIdx := matchBrace(tokens, braceIdx)
				scopeStack = append(scopeStack, scope{name: name, traitName: traitName, isTrait: isTrait, closeBrace: closeIdx})
			}
			pendingAttrs = nil
			continue
		}

		// Pop scopes we've walked past.
		for len(scopeStack) > 0 && i > scopeStack[len(scopeStack)-1].closeBrace {
			scopeStack = scopeStack[:len(scopeStack)-1]
		}

		if t.kind != "fn" {
			continue
		}

		isAsync := i > 0 && tokens[i-1].kind == "async"
		isPub := hasPrecedingPub(tokens, i)

		nameIdx := i + 1
		if nameIdx >= len(tokens) {
			continue
		}
		name := tokens[nameIdx].text

		parenIdx := -1
		for k := nameIdx; k < len(tokens) && k < nameIdx+6; k++ {
			if tokens[k].kind == "(" {
				parenIdx = k
				break
			}
		}
		if parenIdx < 0 {
			pendingAttrs = nil
			continue
		}
		closeParen := matchParen(tokens, parenIdx)
		params := extractRustParams(tokens, parenIdx, closeParen)

		// Find the opening '{' of the body, skipping a "where" clause / return type.
		braceIdx := -1
		for k := closeParen + 1; k < len(tokens); k++ {
			if tokens[k].kind == "{" {
				braceIdx = k
				break
			}
			if tokens[k].kind == ";" {
				break // trait method declaration with no body
			}
		}

		var enclosingType, traitName string
		isTraitImpl := false
		if len(scopeStack) > 0 {
			top := scopeStack[len(scopeStack)-1]
			enclosingType = top.name
			traitName = top.traitName
			isTraitImpl = top.traitName != ""
		}

		qualName := name
		if enclosingType != "" {
			qualName = enclosingType + "::" + name
		}

		isTest := hasAttrPrefix(pendingAttrs, "#[test") || hasAttrPrefix(pendingAttrs, "#[tokio::test")
		modTest := inTestModule || hasCfgTestAncestor(tokens, i)

		vis := domain.VisibilityPrivate
		if isPub || isTraitImpl {
			vis = domain.VisibilityPublic // trait impl methods inherit pub regardless of impl block visibility (§4.6)
		}

		if braceIdx < 0 {
			pendingAttrs = nil
			continue
		}
		closeBraceIdx := matchBrace(tokens, braceIdx)
		if closeBraceIdx < 0 || closeBraceIdx >= len(tokens) {
			pendingAttrs = nil
			continue
		}

		bodyStartByte := tokens[braceIdx].start
		bodyEndByte := tokens[closeBraceIdx].end

		spans = append(spans, FunctionSpan{
			QualifiedName: qualName,
			StartLine:     t.line,
			EndLine:       tokens[closeBraceIdx].line,
			BodyStart:     bodyStartByte,
			BodyEnd:       bodyEndByte,
			ParamNames:    params,
			IsTest:        isTest,
			InTestModule:  modTest,
			Attributes:    append([]string(nil), pendingAttrs...),
			EnclosingType: enclosingType,
			TraitName:     traitName,
			IsTraitImpl:   isTraitImpl,
			Visibility:    vis,
			Language:      domain.LangRust,
			Body:          source[bodyStartByte:bodyEndByte],
		})

		pendingAttrs = nil
		i = closeBraceIdx
	}

	return spans
}

func matchBrace(tokens []rustToken, openIdx int) int {
	depth := 0
	for k := openIdx; k < len(tokens); k++ {
		switch tokens[k].kind {
		case "{":
			depth++
		case "}":
			depth--
			if depth == 0 {
				return k
			}
		}
	}
	return -1
}

func matchParen(tokens []rustToken, openIdx int) int {
	depth := 0
	for k := openIdx; k < len(tokens); k++ {
		switch tokens[k].kind {
		case "(":
			depth++
		case ")":
			depth--
			if depth == 0 {
				return k
			}
		}
	}
	return len(tokens) - 1
}

func hasPrecedingPub(tokens []rustToken, fnIdx int) bool {
	for k := fnIdx - 1; k >= 0 && k >= fnIdx-4; k-- {
		if tokens[k].kind == "pub" {
			return true
		}
		if tokens[k].kind == "fn" || tokens[k].kind == "{" || tokens[k].kind == "}" || tokens[k].kind == ";" {
			break
		}
	}
	return false
}

func hasAttrPrefix(attrs []string, prefix string) bool {
	for _, a := range attrs {
		if strings.HasPrefix(strings.ReplaceAll(a, " ", ""), prefix) {
			return true
		}
	}
	return false
}

// hasCfgTestAncestor is a best-effort token-stream check for whether fnIdx
// sits lexically inside a `#[cfg(test)] mod ... { ... }` block: scan
// backwards for "mod" tokens whose enclosing brace has not yet closed and
// whose preceding attribute contains cfg(test).
func hasCfgTestAncestor(tokens []rustToken, fnIdx int) bool {
	depth := 0
	for k := fnIdx - 1; k >= 0; k-- {
		switch tokens[k].kind {
		case "}":
			depth++
		case "{":
			if depth == 0 {
				// k is an unmatched opening brace enclosing fnIdx; check
				// whether it belongs to a "mod" preceded by cfg(test).
				if modIdx := findPrecedingMod(tokens, k); modIdx >= 0 {
					if attrHasCfgTest(tokens, modIdx) {
						return true
					}
				}
			} else {
				depth--
			}
		}
	}
	return false
}

func findPrecedingMod(tokens []rustToken, braceIdx int) int {
	for k := braceIdx - 1; k >= 0 && k >= braceIdx-4; k-- {
		if tokens[k].kind == "mod" {
			return k
		}
	}
	return -1
}

func attrHasCfgTest(tokens []rustToken, modIdx int) bool {
	for k := modIdx - 1; k >= 0 && k >= modIdx-20; k-- {
		if tokens[k].kind == "]" {
			// walk back to matching '['
			depth := 1
			j := k - 1
			for ; j >= 0 && depth > 0; j-- {
				if tokens[j].kind == "]" {
					depth++
				} else if tokens[j].kind == "[" {
					depth--
				}
			}
			var b strings.Builder
			for m := j + 1; m <= k; m++ {
				b.WriteString(tokens[m].text)
			}
			if strings.Contains(b.String(), "cfg(test)") {
				return true
			}
		}
	}
	return false
}

func parseImplOrTraitHeader(tokens []rustToken, kwIdx int, isTrait bool) (name, traitName string, braceIdx int) {
	braceIdx = -1
	forIdx := -1
	for k := kwIdx + 1; k < len(tokens); k++ {
		if tokens[k].kind == "{" {
			braceIdx = k
			break
		}
		if tokens[k].kind == "for" {
			forIdx = k
		}
	}
	if braceIdx < 0 {
		return "", "", -1
	}
	if isTrait {
		if kwIdx+1 < len(tokens) {
			name = tokens[kwIdx+1].text
		}
		return name, name, braceIdx
	}
	if forIdx >= 0 {
		// impl Trait for Type { ... }
		if kwIdx+1 < len(tokens) {
			traitName = tokens[kwIdx+1].text
		}
		if forIdx+1 < braceIdx {
			name = tokens[forIdx+1].text
		}
		return name, traitName, braceIdx
	}
	// impl Type { ... }
	if kwIdx+1 < braceIdx {
		name = tokens[kwIdx+1].text
	}
	return name, "", braceIdx
}

func extractRustParams(tokens []rustToken, open, close int) []string {
	var params []string
	depth := 0
	var cur strings.Builder
	flush := func() {
		s := strings.TrimSpace(cur.String())
		if s != "" && s != "self" && s != "&self" && s != "&mut self" {
			if idx := strings.IndexByte(s, ':'); idx >= 0 {
				s = strings.TrimSpace(s[:idx])
			}
			s = strings.TrimLeft(s, "&")
			s = strings.TrimPrefix(s, "mut ")
			params = append(params, s)
		}
		cur.Reset()
	}
	for k := open + 1; k < close; k++ {
		switch tokens[k].kind {
		case "(", "<":
			depth++
			cur.WriteString(tokens[k].text)
		case ")", ">":
			depth--
			cur.WriteString(tokens[k].text)
		case ",":
			if depth == 0 {
				flush()
				continue
			}
			cur.WriteString(tokens[k].text)
		default:
			cur.WriteString(" ")
			cur.WriteString(tokens[k].text)
		}
	}
	flush()
	return params
}

// detectRustClosures returns a detector that finds "move |...| { ... }" or
// "|...| { ... }" closure bodies within span whose body exceeds
// ClosureSizeThreshold lines.
func detectRustClosures(tokens []rustToken, source []byte) func(FunctionSpan) []FunctionSpan {
	return func(span FunctionSpan) []FunctionSpan {
		var out []FunctionSpan
		for i := 0; i < len(tokens); i++ {
			if tokens[i].start < span.BodyStart || tokens[i].end > span.BodyEnd {
				continue
			}
			if tokens[i].kind != "|" {
				continue
			}
			closePipe := -1
			for k := i + 1; k < len(tokens) && tokens[k].end <= span.BodyEnd; k++ {
				if tokens[k].kind == "|" {
					closePipe = k
					break
				}
			}
			if closePipe < 0 {
				continue
			}
			braceIdx := -1
			for k := closePipe + 1; k < len(tokens) && k < closePipe+3; k++ {
				if tokens[k].kind == "{" {
					braceIdx = k
					break
				}
			}
			if braceIdx < 0 {
				continue
			}
			closeBrace := matchBrace(tokens, braceIdx)
			if closeBrace < 0 {
				continue
			}
			if tokens[closeBrace].line-tokens[braceIdx].line+1 <= ClosureSizeThreshold {
				i = closeBrace
				continue
			}
			out = append(out, FunctionSpan{
				StartLine: tokens[i].line,
				EndLine:   tokens[closeBrace].line,
				BodyStart: tokens[braceIdx].start,
				BodyEnd:   tokens[closeBrace].end,
				Body:      source[tokens[braceIdx].start:tokens[closeBrace].end],
			})
			i = closeBrace
		}
		return out
	}
}
