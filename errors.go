package formwork

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType      = "invalid_type"
	CodeTooSmall         = "too_small"
	CodeTooBig           = "too_big"
	CodeInvalidEmail     = "invalid_email"
	CodeInvalidUUID      = "invalid_uuid"
	CodeInvalidFormat    = "invalid_format"
	CodeInvalidLiteral   = "invalid_literal"
	CodeInvalidEnum      = "invalid_enum"
	CodeUnrecognizedKey  = "unrecognized_key"
	CodeCustom           = "custom"
	CodeMaxDepthExceeded = "max_depth_exceeded"
)

// ValidationErrorCode is the fixed discriminator carried by every
// ValidationError. Downstream layers branch on it.
const ValidationErrorCode = "VALIDATION_ERROR"

// Issue represents a single failed constraint at one location.
type Issue struct {
	Path    Path   `json:"path"`
	Message string `json:"message"`
	Code    string `json:"code"` // One of the codes listed above.
	// Expected/Received are optional type descriptors
	// (for example "string" / "number").
	Expected string `json:"expected,omitempty"`
	Received string `json:"received,omitempty"`
}

// Issues is a collection of validation issues that implements error. It is
// the propagation currency inside the engine; the public boundary wraps it
// into a ValidationError.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// ValidationError aggregates every issue discovered during a single
// validation call. Code is always ValidationErrorCode; Field and FieldPath
// locate the first issue for quick display. Issues is never empty.
type ValidationError struct {
	Code      string  `json:"code"`
	Message   string  `json:"message"`
	Field     string  `json:"field,omitempty"`
	FieldPath Path    `json:"fieldPath"`
	Issues    []Issue `json:"issues"`
}

// NewValidationError builds a ValidationError from a non-empty issue list.
// Calling it with no issues is a programmer error and panics.
func NewValidationError(iss Issues) *ValidationError {
	if len(iss) == 0 {
		panic("formwork: ValidationError requires at least one issue")
	}
	first := iss[0]
	field := ""
	if len(first.Path) > 0 {
		field = first.Path.String()
	}
	return &ValidationError{
		Code:      ValidationErrorCode,
		Message:   first.Message,
		Field:     field,
		FieldPath: first.Path,
		Issues:    iss,
	}
}

// Error summarizes the aggregate in the Issues style.
func (e *ValidationError) Error() string {
	return Issues(e.Issues).Error()
}

// First returns the first issue in traversal order.
func (e *ValidationError) First() Issue { return e.Issues[0] }

// IssuesByField groups issues by the JSON-Pointer rendering of their path.
func (e *ValidationError) IssuesByField() map[string][]Issue {
	out := make(map[string][]Issue, len(e.Issues))
	for _, it := range e.Issues {
		k := it.Path.String()
		out[k] = append(out[k], it)
	}
	return out
}
