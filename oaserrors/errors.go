package oaserrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrParse indicates a document could not be decoded.
	ErrParse = errors.New("parse error")

	// ErrReference indicates a reference resolution failure.
	ErrReference = errors.New("reference error")

	// ErrReferenceNotFound indicates a $ref names a schema or fragment that
	// does not exist in the registry.
	ErrReferenceNotFound = errors.New("reference not found")

	// ErrCircularReference indicates a circular $ref was detected.
	ErrCircularReference = errors.New("circular reference")

	// ErrCompile indicates a structural schema could not be compiled.
	ErrCompile = errors.New("schema compilation error")

	// ErrValidation indicates parameter data violated its declaration.
	ErrValidation = errors.New("validation error")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrConfig indicates an invalid configuration or declaration.
	ErrConfig = errors.New("configuration error")
)

// text assembles an error message as "<kind><qualifiers>: <message>: <cause>",
// leaving out empty parts.
type text struct {
	b strings.Builder
}

func newText(kind string) *text {
	t := &text{}
	t.b.WriteString(kind)
	return t
}

func (t *text) qualify(format string, args ...any) *text {
	fmt.Fprintf(&t.b, format, args...)
	return t
}

func (t *text) detail(s string) *text {
	if s != "" {
		t.b.WriteString(": ")
		t.b.WriteString(s)
	}
	return t
}

func (t *text) cause(err error) string {
	if err != nil {
		t.detail(err.Error())
	}
	return t.b.String()
}

// ParseError reports a document that could not be decoded.
type ParseError struct {
	// Path names the file, or "stdin"/"content" for other sources.
	Path string
	// Line and Column locate the failure, 1-based; 0 when unknown.
	Line   int
	Column int
	// Message says what was wrong, e.g. "invalid YAML".
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	t := newText("parse error")
	if e.Path != "" {
		t.qualify(" in %s", e.Path)
	}
	switch {
	case e.Line > 0 && e.Column > 0:
		t.qualify(" at line %d, column %d", e.Line, e.Column)
	case e.Line > 0:
		t.qualify(" at line %d", e.Line)
	}
	return t.detail(e.Message).cause(e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// Is matches ErrParse.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// ReferenceError reports a $ref the registry could not resolve.
type ReferenceError struct {
	Ref string
	// ID is the registry identifier the reference named; "#" is the root
	// document.
	ID string
	// IsNotFound is set when the identifier or a pointer segment is missing.
	IsNotFound bool
	// IsCircular is set when a chain of references loops.
	IsCircular bool
	Message    string
	Cause      error
}

func (e *ReferenceError) Error() string {
	kind := "reference error"
	switch {
	case e.IsCircular:
		kind = "circular reference"
	case e.IsNotFound:
		kind = "reference not found"
	}
	return newText(kind).detail(e.Ref).detail(e.Message).cause(e.Cause)
}

func (e *ReferenceError) Unwrap() error { return e.Cause }

// Is matches ErrReference, plus ErrReferenceNotFound or ErrCircularReference
// when the corresponding flag is set.
func (e *ReferenceError) Is(target error) bool {
	switch target {
	case ErrReference:
		return true
	case ErrReferenceNotFound:
		return e.IsNotFound
	case ErrCircularReference:
		return e.IsCircular
	}
	return false
}

// CompileError reports a structural schema the validation engine refused.
// Every validation against such a schema would be meaningless, so it
// surfaces when the validator is built.
type CompileError struct {
	// Parameter names the declaration; empty for unnamed schemas.
	Parameter string
	// Schema is the rendered structural schema handed to the engine.
	Schema  map[string]any
	Message string
	Cause   error
}

func (e *CompileError) Error() string {
	t := newText("schema compilation error")
	if e.Parameter != "" {
		t.qualify(" for parameter %q", e.Parameter)
	}
	return t.detail(e.Message).cause(e.Cause)
}

func (e *CompileError) Unwrap() error { return e.Cause }

// Is matches ErrCompile.
func (e *CompileError) Is(target error) bool { return target == ErrCompile }

// ResourceLimitError reports a configured limit that was exceeded while
// loading a document or following references.
type ResourceLimitError struct {
	// ResourceType is "ref_depth" or "file_size".
	ResourceType string
	Limit        int64
	// Actual is 0 when the exceeding value is not known.
	Actual  int64
	Message string
}

func (e *ResourceLimitError) Error() string {
	t := newText("resource limit exceeded").detail(e.ResourceType)
	switch {
	case e.Limit > 0 && e.Actual > 0:
		t.qualify(" (limit: %d, actual: %d)", e.Limit, e.Actual)
	case e.Limit > 0:
		t.qualify(" (limit: %d)", e.Limit)
	}
	return t.detail(e.Message).cause(nil)
}

// Is matches ErrResourceLimit.
func (e *ResourceLimitError) Is(target error) bool { return target == ErrResourceLimit }

// ConfigError reports an invalid option or a malformed parameter
// declaration. Option names the offending option or declaration field.
type ConfigError struct {
	Option  string
	Value   any
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	t := newText("configuration error")
	if e.Option != "" {
		t.qualify(" for %s", e.Option)
	}
	if e.Value != nil {
		t.qualify(" (value: %v)", e.Value)
	}
	return t.detail(e.Message).cause(e.Cause)
}

func (e *ConfigError) Unwrap() error { return e.Cause }

// Is matches ErrConfig.
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }
