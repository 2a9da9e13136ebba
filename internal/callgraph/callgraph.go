// Package callgraph implements C6: a two-pass, cross-file call graph
// builder over the function set parsed by internal/lang. Grounded in
// pyscn's internal/analyzer/dependency_graph.go (two-pass
// enumerate-then-resolve construction, edge-list-plus-index shape) and
// original_source's constructor-argument regression tests for the
// struct-literal edge rule.
package callgraph

import (
	"github.com/debtcore/debtcore/domain"
	"github.com/debtcore/debtcore/internal/metrics"
)

// FuncInfo is everything the builder needs about one parsed function to
// enumerate it as a node and later resolve calls from its body.
type FuncInfo struct {
	ID            domain.FunctionId
	Body          []byte
	Language      domain.Language
	EnclosingType string // receiver/impl type, "" for free functions
	IsTraitMethod bool
	Visibility    domain.Visibility
	IsTest        bool
	ParamNames    []string
	ParamTypes    []string // typed parameter types, same index order as ParamNames, "" if untyped
	LocalTypes    map[string]string // local-binding name -> inferred type, best-effort
	IsEntryPoint  bool   // detected framework entry point (main, handler attrs, visitor cb)
}

// Build runs both passes: enumerate every function as a node, then walk
// each body resolving direct calls, method calls, and constructor-argument
// calls into edges. Returns the finalized graph.
func Build(funcs []FuncInfo) *domain.CallGraph {
	nodes := make([]domain.FunctionId, len(funcs))
	byShortName := make(map[string][]int)
	byQualified := make(map[string]int, len(funcs))
	for i, f := range funcs {
		nodes[i] = f.ID
		byQualified[qualifiedName(f)] = i
		short := shortName(f.ID.Name)
		byShortName[short] = append(byShortName[short], i)
	}

	g := domain.NewCallGraph(nodes)

	for i, f := range funcs {
		// Trait impl methods inherit pub regardless of the impl block's
		// declared visibility.
		if f.IsTraitMethod {
			funcs[i].Visibility = domain.VisibilityPublic
		}
		if f.IsEntryPoint {
			g.FrameworkExclusions[f.ID] = true
		}
	}

	for i, f := range funcs {
		resolveBody(g, i, f, funcs, byShortName, byQualified)
	}

	computeTestOnly(g, funcs)

	return g
}

func qualifiedName(f FuncInfo) string {
	if f.EnclosingType != "" {
		return f.EnclosingType + "::" + shortName(f.ID.Name)
	}
	return f.ID.Name
}

// shortName strips a "Type::" qualifier, leaving the bare method/function
// name used for the method-call fallback (over-approximation) resolution.
func shortName(name string) string {
	for i := len(name) - 1; i >= 1; i-- {
		if name[i] == ':' && name[i-1] == ':' {
			return name[i+1:]
		}
	}
	return name
}

// call is one resolved-or-unresolved call site found while walking a
// body: a bare name, or a receiver.name / Receiver::name pair.
type call struct {
	receiver        string // "" for a bare direct call
	name            string
	inStructLiteral bool // true when the call sits in a struct-literal field position
}

func resolveBody(g *domain.CallGraph, fromIdx int, f FuncInfo, funcs []FuncInfo, byShortName map[string][]int, byQualified map[string]int) {
	toks := metrics.Tokenize(f.Body)
	calls := scanCalls(toks)

	localTypeOf := func(recv string) string {
		if recv == "self" && f.EnclosingType != "" {
			return f.EnclosingType
		}
		if t, ok := f.LocalTypes[recv]; ok {
			return t
		}
		for pi, name := range f.ParamNames {
			if name == recv && pi < len(f.ParamTypes) {
				return f.ParamTypes[pi]
			}
		}
		return ""
	}

	for _, c := range calls {
		directType := domain.EdgeDirect
		if c.inStructLiteral {
			directType = domain.EdgeConstructorArg
		}

		if c.receiver == "" {
			// Direct (or constructor-argument) call: resolve by
			// qualified name within the same enclosing type first
			// (method called bare inside its own impl), then as a free
			// function, then give up silently.
			if f.EnclosingType != "" {
				if idx, ok := byQualified[f.EnclosingType+"::"+c.name]; ok {
					g.AddEdge(fromIdx, idx, directType)
					continue
				}
			}
			if idx, ok := byQualified[c.name]; ok {
				g.AddEdge(fromIdx, idx, directType)
			}
			continue
		}

		// Receiver::name (constructor/associated function) or
		// receiver.name (method call) — attempt type inference first.
		recvType := c.receiver
		if !looksLikeType(c.receiver) {
			recvType = localTypeOf(c.receiver)
		}
		if recvType != "" {
			if idx, ok := byQualified[recvType+"::"+c.name]; ok {
				g.AddEdge(fromIdx, idx, domain.EdgeMethod)
				continue
			}
		}
		// Over-approximation fallback: fan out to every function sharing
		// this short name, tagged Dynamic since the true receiver could
		// not be inferred.
		for _, idx := range byShortName[c.name] {
			if idx == fromIdx {
				continue
			}
			g.AddEdge(fromIdx, idx, domain.EdgeDynamic)
		}
	}
}

// looksLikeType reports whether a receiver token looks like a type name
// (PascalCase) rather than a local variable/parameter binding — used to
// prefer Constructor-arg/associated-function resolution without needing
// full type inference.
func looksLikeType(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return c >= 'A' && c <= 'Z'
}
