package callgraph

import "github.com/debtcore/debtcore/domain"

// computeTestOnly runs the least-fixed-point of spec.md §4.6: a function
// is test-only iff every path of its callers leads exclusively through
// is_test nodes. Framework exclusions are never test-only, regardless
// of caller shape, since they are roots reached from outside the
// analysed code.
//
// Starting assumption: every non-test function with zero callers is NOT
// test-only (it is either unreachable or a true entry point); every
// is_test function is trivially test-only. The fixed point then
// propagates: a function becomes test-only once every one of its
// (at least one) callers is already test-only.
func computeTestOnly(g *domain.CallGraph, funcs []FuncInfo) {
	testOnly := make([]bool, len(funcs))
	isTest := make([]bool, len(funcs))
	for i, f := range funcs {
		isTest[i] = f.IsTest
		testOnly[i] = f.IsTest
	}

	changed := true
	for changed {
		changed = false
		for i, f := range funcs {
			if testOnly[i] || isTest[i] {
				continue
			}
			if g.IsFrameworkExclusion(f.ID) {
				continue
			}
			callers := g.Callers(f.ID)
			if len(callers) == 0 {
				continue
			}
			allTestOnly := true
			for _, caller := range callers {
				ci := g.IndexOf(caller)
				if ci < 0 || !testOnly[ci] {
					allTestOnly = false
					break
				}
			}
			if allTestOnly {
				testOnly[i] = true
				changed = true
			}
		}
	}

	for i, f := range funcs {
		g.SetTestOnly(f.ID, testOnly[i])
	}
}
