package scenario

import (
	"fmt"
	"sort"
	"strings"
)

// Error codes. Stable, machine-readable; never renumber or reuse.
const (
	CodeParse             = "LV1001"
	CodeComponentNotFound = "LV1002"
	CodeInvalidExport     = "LV1003"
	CodeConversion        = "LV1004"
	CodeValidation        = "LV1005"
	CodeAssembly          = "LV1006"
	CodeIO                = "LV1007"
)

// Error is the base compile error. Every error produced by the compiler
// carries a symbolic name, a stable code, a human-readable message, and a
// metadata bag with debugging context (tag name, field name, position...).
type Error struct {
	Name     string
	Code     string
	Message  string
	Metadata map[string]any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s [%s]: %s", e.Name, e.Code, e.Message)
}

// Meta returns a metadata value, or nil if absent.
func (e *Error) Meta(key string) any {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// with sets a metadata entry and returns the error for chaining.
func (e *Error) with(key string, v any) *Error {
	if e.Metadata == nil {
		e.Metadata = make(map[string]any)
	}
	e.Metadata[key] = v
	return e
}

// NewParseError creates a ParseError for malformed source. line/column are
// 1-based; snippet is the offending source line.
func NewParseError(msg string, line, column int, snippet string) *Error {
	e := &Error{
		Name:    "ParseError",
		Code:    CodeParse,
		Message: fmt.Sprintf("parse error at line %d, column %d: %s", line, column, msg),
	}
	e.with("line", line).with("column", column)
	if snippet != "" {
		e.with("snippet", snippet)
	}
	return e
}

// NewComponentNotFoundError creates the error for an unregistered tag.
// The message lists every valid base and local component name so the
// author can spot typos without consulting the catalogue.
func NewComponentNotFoundError(tag string, valid []string) *Error {
	names := append([]string(nil), valid...)
	sort.Strings(names)
	e := &Error{
		Name: "ComponentNotFoundError",
		Code: CodeComponentNotFound,
		Message: fmt.Sprintf("unknown component <%s>; valid components are: %s",
			tag, strings.Join(names, ", ")),
	}
	return e.with("tag", tag).with("valid", names)
}

// NewInvalidExportError creates the error for export-shape violations:
// missing or duplicate default export, duplicate names, bad casing, or a
// malformed scenario metadata block.
func NewInvalidExportError(msg string, meta map[string]any) *Error {
	return &Error{
		Name:     "InvalidExportError",
		Code:     CodeInvalidExport,
		Message:  msg,
		Metadata: meta,
	}
}

// NewConversionError creates the error for an attribute value or handler
// body the compiler cannot express in the target instruction set.
func NewConversionError(msg string, meta map[string]any) *Error {
	return &Error{
		Name:     "ConversionError",
		Code:     CodeConversion,
		Message:  msg,
		Metadata: meta,
	}
}

// NewIOError wraps a collaborator I/O failure (source file, catalogue)
// without masking the underlying error text.
func NewIOError(op string, err error) *Error {
	e := &Error{
		Name:    "IOError",
		Code:    CodeIO,
		Message: fmt.Sprintf("%s: %v", op, err),
	}
	return e.with("op", op)
}

// Severity of a single validation violation.
type Severity string

// Violation severities.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Violation is one field-level finding of a validation pass.
type Violation struct {
	Field    string
	Message  string
	Severity Severity
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s: %s", v.Severity, v.Field, v.Message)
}

// ValidationError aggregates field-level violations. Unlike the fail-fast
// transform errors, validation reports everything it finds in one shot.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	return fmt.Sprintf("validation failed with %d violation(s): %s",
		len(e.Violations), strings.Join(msgs, "; "))
}

// HasErrors returns true if any violation has error severity.
func (e *ValidationError) HasErrors() bool {
	for _, v := range e.Violations {
		if v.Severity == SeverityError {
			return true
		}
	}
	return false
}

// AsError converts the aggregate into the base error shape.
func (e *ValidationError) AsError() *Error {
	base := &Error{
		Name:    "ValidationError",
		Code:    CodeValidation,
		Message: e.Error(),
	}
	return base.with("violations", e.Violations)
}

// AssemblyError aggregates final structural violations found while
// merging collected artifacts into the scenario document.
type AssemblyError struct {
	Violations []Violation
}

func (e *AssemblyError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	return fmt.Sprintf("assembly failed with %d violation(s): %s",
		len(e.Violations), strings.Join(msgs, "; "))
}

// AsError converts the aggregate into the base error shape.
func (e *AssemblyError) AsError() *Error {
	base := &Error{
		Name:    "AssemblyError",
		Code:    CodeAssembly,
		Message: e.Error(),
	}
	return base.with("violations", e.Violations)
}
