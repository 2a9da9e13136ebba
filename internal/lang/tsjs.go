package lang

import (
	"context"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/debtcore/debtcore/domain"
)

// TSJSAdapter implements the JS/TS-family adapter required by spec.md
// §4.1 via a full tree-walking parser: every node of the tree-sitter AST
// is visited and classified by its grammar type, unlike the Rust
// adapter's shallow leaf-token pass.
type TSJSAdapter struct {
	jsParser *sitter.Parser
	tsParser *sitter.Parser
}

func NewTSJSAdapter() *TSJSAdapter {
	js := sitter.NewParser()
	js.SetLanguage(javascript.GetLanguage())
	ts := sitter.NewParser()
	ts.SetLanguage(typescript.GetLanguage())
	return &TSJSAdapter{jsParser: js, tsParser: ts}
}

func (a *TSJSAdapter) Language() domain.Language { return domain.LangJavaScript }

type tsjsAst struct {
	tree   *sitter.Tree
	source []byte
	lang   domain.Language
}

func (t *tsjsAst) Language() domain.Language { return t.lang }

func (a *TSJSAdapter) Parse(filePath string, source []byte) ParseResult {
	isTS := strings.HasSuffix(filePath, ".ts") || strings.HasSuffix(filePath, ".tsx")
	parser := a.jsParser
	language := domain.LangJavaScript
	if isTS {
		parser = a.tsParser
		language = domain.LangTypeScript
	}

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return ParseResult{Failure: &domain.ParseFailed{Path: filePath, Message: err.Error()}}
	}
	root := tree.RootNode()
	if root == nil {
		return ParseResult{Failure: &domain.ParseFailed{Path: filePath, Message: "empty parse tree"}}
	}

	inTestModule := strings.Contains(filePath, ".test.") || strings.Contains(filePath, ".spec.") ||
		strings.Contains(filePath, "/__tests__/") || strings.Contains(filepath.Base(filePath), "test")

	w := &tsjsWalker{source: source, language: language, inTestFile: inTestModule}
	w.walk(root, "", false)

	spans := w.spans
	spans = emitSyntheticClosures(spans, filePath, detectJSClosures(w))

	return ParseResult{Ast: &tsjsAst{tree: tree, source: source, lang: language}, Functions: spans}
}

type tsjsWalker struct {
	source     []byte
	language   domain.Language
	inTestFile bool
	spans      []FunctionSpan
	// seen is not written or read by the walk or by detectJSClosures.
	seen map[*sitter.Node]bool
}

func (w *tsjsWalker) walk(n *sitter.Node, enclosingClass string, insideClassBody bool) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "class_declaration", "class":
		name := childText(n, "name", w.source)
		for i := 0; i < int(n.NamedChildCount()); i++ {
			w.walk(n.NamedChild(i), name, true)
		}
		return
	case "function_declaration", "function":
		w.emitFunction(n, "", false, false)
	case "method_definition":
		isStatic := hasChildType(n, "static")
		w.emitFunction(n, enclosingClass, insideClassBody, isStatic)
	case "variable_declarator":
		// const foo = function(...) {} / const foo = (...) => {}
		valueNode := n.ChildByFieldName("value")
		if valueNode != nil && (valueNode.Type() == "arrow_function" || valueNode.Type() == "function") {
			name := childText(n, "name", w.source)
			w.emitNamedFunctionNode(valueNode, name, enclosingClass, insideClassBody)
		}
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		w.walk(n.NamedChild(i), enclosingClass, insideClassBody)
	}
}

func (w *tsjsWalker) emitFunction(n *sitter.Node, enclosingClass string, insideClass bool, isStatic bool) {
	name := childText(n, "name", w.source)
	if name == "" {
		name = "<anonymous>"
	}
	w.emitNamedFunctionNode(n, name, enclosingClass, insideClass)
}

func (w *tsjsWalker) emitNamedFunctionNode(n *sitter.Node, name, enclosingClass string, insideClass bool) {
	bodyNode := n.ChildByFieldName("body")
	startLine := int(n.StartPoint().Row) + 1
	endLine := int(n.EndPoint().Row) + 1
	bodyStart, bodyEnd := int(n.StartByte()), int(n.EndByte())
	if bodyNode != nil {
		bodyStart, bodyEnd = int(bodyNode.StartByte()), int(bodyNode.EndByte())
	}

	params := paramNames(n, w.source)

	qualName := name
	if enclosingClass != "" {
		qualName = enclosingClass + "::" + name
	}

	isTest := isTestCallName(name) || w.inTestFile
	vis := domain.VisibilityPublic
	if strings.HasPrefix(name, "#") || strings.HasPrefix(name, "_") {
		vis = domain.VisibilityPrivate
	}

	w.spans = append(w.spans, FunctionSpan{
		QualifiedName: qualName,
		StartLine:     startLine,
		EndLine:       endLine,
		BodyStart:     bodyStart,
		BodyEnd:       bodyEnd,
		ParamNames:    params,
		IsTest:        isTest,
		InTestModule:  w.inTestFile,
		EnclosingType: enclosingClass,
		IsTraitImpl:   insideClass,
		Visibility:    vis,
		Language:      w.language,
		Body:          w.source[bodyStart:bodyEnd],
	})
}

func isTestCallName(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasPrefix(lower, "test") || strings.HasPrefix(lower, "it_should")
}

func childText(n *sitter.Node, field string, source []byte) string {
	c := n.ChildByFieldName(field)
	if c == nil {
		return ""
	}
	return c.Content(source)
}

func hasChildType(n *sitter.Node, typ string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(i).Type() == typ {
			return true
		}
	}
	return false
}

func paramNames(n *sitter.Node, source []byte) []string {
	params := n.ChildByFieldName("parameters")
	if params == nil {
		params = n.ChildByFieldName("parameter")
	}
	if params == nil {
		return nil
	}
	var out []string
	for i := 0; i < int(params.NamedChildCount()); i++ {
		c := params.NamedChild(i)
		switch c.Type() {
		case "identifier":
			out = append(out, c.Content(source))
		case "required_parameter", "optional_parameter":
			if p := c.ChildByFieldName("pattern"); p != nil {
				out = append(out, p.Content(source))
			}
		default:
			out = append(out, c.Content(source))
		}
	}
	return out
}

// detectJSClosures returns a detector that reports no synthetic closure
// spans. The main walk already emits function declarations, methods and
// function literals assigned to a variable; anonymous inline callbacks
// (e.g. `arr.map(x => { ... })`) are not split out, whatever their size.
func detectJSClosures(w *tsjsWalker) func(FunctionSpan) []FunctionSpan {
	return func(span FunctionSpan) []FunctionSpan {
		return nil
	}
}
