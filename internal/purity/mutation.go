package purity

import (
	"github.com/debtcore/debtcore/domain"
	"github.com/debtcore/debtcore/internal/metrics"
)

// interiorMutabilityCalls names method calls that mutate through a
// shared reference (Cell/RefCell/Mutex-style types and their common
// language analogues), per §4.5's "explicit interior-mutability method
// calls" signal.
var interiorMutabilityCalls = map[string]bool{
	"set": true, "replace": true, "borrow_mut": true, "lock": true,
	"get_mut": true, "push": true, "insert": true, "remove": true,
	"append": true,
}

// detectMutations scans for the three signal classes of §4.5: &mut
// parameters, assignments to a field of self, and interior-mutability
// calls on a receiver.
func detectMutations(toks []metrics.Tok, paramNames []string, hasSelfRecv bool) domain.MutationInfo {
	var targets []string

	for _, p := range paramNames {
		if mutParam(toks, p) {
			targets = append(targets, p)
		}
	}

	if hasSelfRecv {
		for i := 0; i+2 < len(toks); i++ {
			if toks[i].Text == "self" && toks[i+1].Text == "." {
				field := toks[i+2].Text
				if assignsAt(toks, i+3) {
					targets = append(targets, "self."+field)
				}
			}
		}
	}

	for i := 0; i+2 < len(toks); i++ {
		if toks[i].Text != "." {
			continue
		}
		if toks[i+2].Text != "(" {
			continue
		}
		method := toks[i+1].Text
		if interiorMutabilityCalls[method] {
			recv := ""
			if i > 0 {
				recv = toks[i-1].Text
			}
			if recv != "" {
				targets = append(targets, recv+"."+method)
			}
		}
	}

	return domain.MutationInfo{
		HasMutations:      len(targets) > 0,
		DetectedMutations: targets,
	}
}

// mutParam recognises the two textual shapes that indicate a by-reference
// parameter is being mutated inside the body: a dereference-assignment
// ("*name = ..." / "*name <op>= ...") for Rust's &mut, and a direct
// reassignment of the parameter name itself (mutable-binding languages).
func mutParam(toks []metrics.Tok, name string) bool {
	for i := 0; i+1 < len(toks); i++ {
		if toks[i].Text == "*" && toks[i+1].Text == name {
			j := i + 2
			if j < len(toks) && (toks[j].Text == "*" || toks[j].Text == "&") {
				j++ // "*=" and "&=" lex as the operator followed by "="
			}
			if assignsAt(toks, j) {
				return true
			}
		}
		if toks[i].Text == name && i+1 < len(toks) && toks[i+1].Text == "=" {
			return true
		}
	}
	return false
}

// assignsAt reports whether the token at idx is a plain "=" (not "=="
// or "=>", both already lexed as their own token by Tokenize).
func assignsAt(toks []metrics.Tok, idx int) bool {
	return idx < len(toks) && toks[idx].Text == "="
}
