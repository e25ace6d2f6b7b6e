// Package oaserrors provides structured error types for the oasparams library.
//
// Import path: github.com/erraggy/oasparams/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish construction-time failures (bad references,
// malformed declarations, schemas the engine rejects) from documents that fail
// to load.
//
// # Error Types
//
//   - [ParseError]: YAML/JSON decoding failures of API or schema documents
//   - [ReferenceError]: $ref resolution failures and circular references
//   - [CompileError]: structural schemas the validation engine cannot compile
//   - [ResourceLimitError]: Resource exhaustion (reference depth, document size)
//   - [ConfigError]: Invalid options or parameter declarations
//
// Per-request validation failures are not reported with these types; they are
// returned as *paramvalidator.ErrorReport, which matches [ErrValidation].
//
// # Sentinel Errors
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrReference]: Matches any [ReferenceError]
//   - [ErrReferenceNotFound]: Matches [ReferenceError] with IsNotFound=true
//   - [ErrCircularReference]: Matches [ReferenceError] with IsCircular=true
//   - [ErrCompile]: Matches any [CompileError]
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrConfig]: Matches any [ConfigError]
//   - [ErrValidation]: Matches validation reports
//
// # Usage Examples
//
// Check error category with errors.Is():
//
//	v, err := factory.Make(parameter.Reference{Pointer: "#/parameters/limit"})
//	if errors.Is(err, oaserrors.ErrReferenceNotFound) {
//	    // The declaration points at nothing
//	}
//
// Extract error details with errors.As():
//
//	var refErr *oaserrors.ReferenceError
//	if errors.As(err, &refErr) {
//	    fmt.Printf("Failed to resolve ref: %s\n", refErr.Ref)
//	}
package oaserrors
