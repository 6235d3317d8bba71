// Package errors defines the pager's domain-level error kinds, grounded on
// the teacher's internal/errors.IndexingError shape (typed Kind, wrapped
// Underlying error, Unwrap for errors.Is/As).
package errors

import "fmt"

// Kind enumerates the error categories from spec.md §7. Every error the
// validator, byte-source factory, accessor, or search engine returns across
// the package boundary carries one of these.
type Kind string

const (
	FileNotFound        Kind = "file_not_found"
	NotARegularFile     Kind = "not_a_regular_file"
	PermissionDenied    Kind = "permission_denied"
	EmptyFile           Kind = "empty_file"
	FileTooLarge        Kind = "file_too_large"
	IoFailure           Kind = "io_failure"
	MappingFailure      Kind = "mapping_failure"
	CompressionFailure  Kind = "compression_failure"
	InvalidUtf8InHeader Kind = "invalid_utf8_in_header"
	SearchCompileFailure Kind = "search_compile_failure"
	UiFailure           Kind = "ui_failure"
	InvalidArgument     Kind = "invalid_argument"
)

// PagerError is the single error type returned across the pager's package
// boundaries. Path is set whenever the error concerns a specific file.
type PagerError struct {
	Kind       Kind
	Path       string
	Op         string
	Underlying error
}

// New creates a PagerError with no associated path.
func New(kind Kind, op string, err error) *PagerError {
	return &PagerError{Kind: kind, Op: op, Underlying: err}
}

// WithPath attaches a file path to the error and returns it for chaining.
func (e *PagerError) WithPath(path string) *PagerError {
	e.Path = path
	return e
}

// Error implements the error interface.
func (e *PagerError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s failed for %s: %v", e.Kind, e.Op, e.Path, e.Underlying)
	}
	return fmt.Sprintf("%s: %s failed: %v", e.Kind, e.Op, e.Underlying)
}

// Unwrap returns the underlying error for errors.Is/errors.As.
func (e *PagerError) Unwrap() error {
	return e.Underlying
}

// Is reports whether target is a *PagerError with the same Kind, so callers
// can write errors.Is(err, &PagerError{Kind: FileNotFound}).
func (e *PagerError) Is(target error) bool {
	other, ok := target.(*PagerError)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}
