package metrics

import "github.com/debtcore/debtcore/domain"

// Result holds the four pure structural measurements of §4.2.
type Result struct {
	Cyclomatic int
	Cognitive  int
	Nesting    int
	Length     int
}

// braceCtx tracks, for one open brace, whether entering it incremented the
// current nesting counter — used to keep else/else-if chains flat per the
// explicit rule in §4.2 ("entering the else branch of an if does not
// increase depth").
type braceCtx struct {
	increments bool
}

// Compute runs C2 over a function body for the given language and the
// inclusive [startLine, endLine] span the adapter reported. Python is
// dispatched to the indentation-based walker in python.go since it has no
// braces to anchor a token-stream pass against; the other three languages
// share the brace-based walk below.
func Compute(body []byte, language domain.Language, startLine, endLine int) Result {
	if language == domain.LangPython {
		return computePython(body, startLine, endLine)
	}
	return computeBraces(body, language, startLine, endLine)
}

func computeBraces(body []byte, language domain.Language, startLine, endLine int) Result {
	toks := Tokenize(body)

	cyclomatic := 1
	cognitive := 0
	currentNesting := 0
	maxNesting := 0

	var stack []braceCtx

	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch t.Text {
		case "if":
			// Every if/else-if condition is scored against the nesting
			// level of the chain's enclosing scope: the previous branch's
			// own body has already closed (and its brace popped) by the
			// time an "else if" is reached, so currentNesting here is
			// always the pre-chain level regardless of position in the
			// chain. Each branch's body is then pushed one level deeper,
			// same as the first "if" — entering a later branch does not
			// compound on top of an earlier one, which is what keeps an
			// entire else-if chain at nesting depth 1 however many arms
			// it has.
			cyclomatic++
			cognitive += 1 + currentNesting
			braceIdx := findBodyBrace(toks, i)
			if braceIdx >= 0 {
				currentNesting++
				if currentNesting > maxNesting {
					maxNesting = currentNesting
				}
				stack = append(stack, braceCtx{increments: true})
				i = braceIdx
			}
		case "else":
			if i+1 < len(toks) && toks[i+1].Text == "if" {
				break
			}
			braceIdx := findBodyBrace(toks, i)
			if braceIdx >= 0 {
				currentNesting++
				if currentNesting > maxNesting {
					maxNesting = currentNesting
				}
				stack = append(stack, braceCtx{increments: true})
				i = braceIdx
			}
		case "while", "for", "loop":
			cyclomatic++
			cognitive += 1 + currentNesting
			braceIdx := findBodyBrace(toks, i)
			if braceIdx >= 0 {
				currentNesting++
				if currentNesting > maxNesting {
					maxNesting = currentNesting
				}
				stack = append(stack, braceCtx{increments: true})
				i = braceIdx
			}
		case "match":
			if language == domain.LangRust {
				braceIdx := findBodyBrace(toks, i)
				if braceIdx >= 0 {
					closeIdx := matchBraceTok(toks, braceIdx)
					arms := countArms(toks, braceIdx, closeIdx, "=>")
					cyclomatic += arms
					cognitive += 1 + currentNesting + arms
					currentNesting++
					if currentNesting > maxNesting {
						maxNesting = currentNesting
					}
					stack = append(stack, braceCtx{increments: true})
					i = braceIdx
				}
			}
		case "switch":
			if language != domain.LangRust {
				braceIdx := findBodyBrace(toks, i)
				if braceIdx >= 0 {
					closeIdx := matchBraceTok(toks, braceIdx)
					arms := countCaseArms(toks, braceIdx, closeIdx)
					cyclomatic += arms
					cognitive += 1 + currentNesting + arms
					currentNesting++
					if currentNesting > maxNesting {
						maxNesting = currentNesting
					}
					stack = append(stack, braceCtx{increments: true})
					i = braceIdx
				}
			}
		case "&&", "||":
			cyclomatic++
			cognitive++
		case "?":
			if language == domain.LangRust {
				cyclomatic++
			}
		case "{":
			// A brace not already consumed by a keyword above (plain
			// block, function literal, struct literal) pushes a
			// non-incrementing context.
			stack = append(stack, braceCtx{increments: false})
		case "}":
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.increments {
					currentNesting--
				}
			}
		}
	}

	return Result{
		Cyclomatic: cyclomatic,
		Cognitive:  cognitive,
		Nesting:    maxNesting,
		Length:     linesBetween(startLine, endLine),
	}
}

func linesBetween(start, end int) int {
	if end < start {
		return 0
	}
	return end - start + 1
}

// findBodyBrace scans forward from a keyword token for the first "{" at
// paren-depth 0, returning its token index or -1 if none is found before
// the body would instead be a no-brace statement (not supported by these
// three adapters, which always emit braced/indented bodies as function
// content).
func findBodyBrace(toks []Tok, from int) int {
	depth := 0
	for k := from + 1; k < len(toks); k++ {
		switch toks[k].Text {
		case "(":
			depth++
		case ")":
			depth--
		case "{":
			if depth == 0 {
				return k
			}
		case ";":
			if depth == 0 {
				return -1
			}
		}
	}
	return -1
}

func matchBraceTok(toks []Tok, openIdx int) int {
	depth := 0
	for k := openIdx; k < len(toks); k++ {
		switch toks[k].Text {
		case "{":
			depth++
		case "}":
			depth--
			if depth == 0 {
				return k
			}
		}
	}
	return len(toks) - 1
}

// countArms counts occurrences of marker (e.g. "=>") at brace/paren depth 0
// relative to the match body [open, close].
func countArms(toks []Tok, open, close int, marker string) int {
	depth := 0
	count := 0
	for k := open + 1; k < close; k++ {
		switch toks[k].Text {
		case "{", "(", "[":
			depth++
		case "}", ")", "]":
			depth--
		default:
			if depth == 0 && toks[k].Text == marker {
				count++
			}
		}
	}
	if count == 0 {
		return 0
	}
	return count
}

func countCaseArms(toks []Tok, open, close int) int {
	depth := 0
	count := 0
	for k := open + 1; k < close; k++ {
		switch toks[k].Text {
		case "{", "(", "[":
			depth++
		case "}", ")", "]":
			depth--
		default:
			if depth == 0 && (toks[k].Text == "case" || toks[k].Text == "default") {
				count++
			}
		}
	}
	return count
}
