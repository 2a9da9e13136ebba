package metrics

// keywords is the cross-language reserved-word set shared by entropy's
// token classifier, purity's variable-dependency scan and callgraph's
// call-name filter, so all three stay
// in lockstep on what counts as "not an identifier".
var keywords = map[string]bool{
	"if": true, "else": true, "while": true, "for": true, "loop": true,
	"match": true, "switch": true, "case": true, "default": true,
	"return": true, "break": true, "continue": true, "fn": true, "def": true,
	"function": true, "let": true, "const": true, "var": true, "mut": true,
	"pub": true, "impl": true, "trait": true, "struct": true, "enum": true,
	"class": true, "try": true, "except": true, "catch": true, "finally": true,
	"async": true, "await": true, "yield": true, "throw": true, "raise": true,
	"new": true, "import": true, "from": true, "as": true, "in": true,
	"self": true, "unsafe": true,
}

// IsKeyword reports whether text is a reserved word rather than a
// user-chosen identifier, across the four supported languages.
func IsKeyword(text string) bool {
	return keywords[text]
}
