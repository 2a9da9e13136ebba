// Package domain defines the shared data model consumed and produced by the
// analysis engine: function identities, metrics, graphs, scores, debt items,
// and the error taxonomy described in spec.md §7.
package domain

import "fmt"

// ErrorKind classifies an AnalysisError per spec.md §7's error taxonomy.
type ErrorKind string

const (
	KindParseError           ErrorKind = "PARSE_ERROR"
	KindIOError              ErrorKind = "IO_ERROR"
	KindCacheVersionMismatch ErrorKind = "CACHE_VERSION_MISMATCH"
	KindConfigError          ErrorKind = "CONFIG_ERROR"
)

// AnalysisError is the core's sum-type error. InternalInvariant violations
// (empty function name, non-finite score, negative length) are never
// wrapped in an AnalysisError — per §7 they are fatal and must panic, see
// InternalInvariantViolation and the Check* helpers in invariant.go.
type AnalysisError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *AnalysisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// NewParseError wraps a per-file parse failure. The driver records it and
// skips the file; it never aborts the batch (§7).
func NewParseError(path string, cause error) *AnalysisError {
	return &AnalysisError{Kind: KindParseError, Message: fmt.Sprintf("failed to parse %s", path), Cause: cause}
}

// NewIOError wraps an unreadable source or cache file.
func NewIOError(message string, cause error) *AnalysisError {
	return &AnalysisError{Kind: KindIOError, Message: message, Cause: cause}
}

// NewCacheVersionMismatchError signals the on-disk cache index was built by
// a different schema version; callers must fully clear and re-populate.
func NewCacheVersionMismatchError(haveVersion, wantVersion int) *AnalysisError {
	return &AnalysisError{
		Kind:    KindCacheVersionMismatch,
		Message: fmt.Sprintf("cache index version %d does not match running version %d", haveVersion, wantVersion),
	}
}

// NewConfigError signals the core rejected a Config at entry (e.g. an
// inverted clamp range or a negative weight).
func NewConfigError(message string) *AnalysisError {
	return &AnalysisError{Kind: KindConfigError, Message: message}
}

// ParseFailed records a single file's parse failure without aborting the
// analysis (§4.1). It is returned alongside (not instead of) the adapter's
// other results for files that did parse.
type ParseFailed struct {
	Path    string
	Message string
}

func (p ParseFailed) Error() string {
	return fmt.Sprintf("parse failed for %s: %s", p.Path, p.Message)
}
