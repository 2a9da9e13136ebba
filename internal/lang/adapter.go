// Package lang implements the C1 language-adapter contract of spec.md
// §4.1: given (file_path, source_bytes), produce an opaque Ast and an
// iterator of function-like items with spans, attributes, and a
// visibility flag.
package lang

import "github.com/debtcore/debtcore/domain"

// ClosureSizeThreshold is the "trivial threshold" above which a nested
// closure is emitted as its own synthetic FunctionSpan named
// "<parent>::<closure@N>" (§4.1).
const ClosureSizeThreshold = 5

// Ast is opaque to the rest of the core; only the adapter that produced it
// knows how to interpret it. Nothing outside internal/lang type-asserts it.
type Ast interface {
	Language() domain.Language
}

// FunctionSpan is one function-like item exposed by an adapter: a
// qualified name, start line, body span, parameter list, attributes
// sufficient to decide is_test/test-module membership, the enclosing
// type/trait if it is an impl method, and the source language (§4.1).
type FunctionSpan struct {
	QualifiedName string
	StartLine     int
	EndLine       int
	BodyStart     int // byte offset of the body's opening brace/colon
	BodyEnd       int // byte offset just past the body

	ParamNames []string

	IsTest       bool
	InTestModule bool
	Attributes   []string // decorators / attribute macros, raw text

	EnclosingType string
	TraitName     string
	IsTraitImpl   bool

	Visibility domain.Visibility
	Language   domain.Language

	// Body is the raw source text of the function body, handed to C2–C5.
	Body []byte

	// IsClosure marks a synthetic "<parent>::<closure@N>" node emitted for
	// a closure whose body exceeds ClosureSizeThreshold lines.
	IsClosure bool
}

// ParseResult is what an adapter returns for one file: the functions found,
// and — mutually exclusive with a successful parse — a ParseFailed record.
type ParseResult struct {
	Ast       Ast
	Functions []FunctionSpan
	Failure   *domain.ParseFailed
}

// Adapter is implemented once per supported language.
type Adapter interface {
	Language() domain.Language
	// Parse produces the uniform function iterator for one file. A syntax
	// error is reported via ParseResult.Failure, never via the error
	// return — per §4.1 the driver records the failure and continues; it
	// is not an exceptional control-flow path.
	Parse(filePath string, source []byte) ParseResult
}
