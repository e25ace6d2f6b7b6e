package paramvalidator

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/erraggy/oasparams/internal/engine"
	"github.com/erraggy/oasparams/oaserrors"
)

// Detail is one violation of an ErrorReport.
type Detail struct {
	// Message names the parameter, the failing keyword location, the
	// offending value and what was expected.
	Message string `json:"message" yaml:"message"`
	// Path is the schema location of the failing keyword, or the instance
	// location when the engine reported none.
	Path string `json:"path" yaml:"path"`
}

// ErrorReport describes why a parameter failed validation.
// It matches oaserrors.ErrValidation with errors.Is.
type ErrorReport struct {
	Parameter string   `json:"parameter" yaml:"parameter"`
	Message   string   `json:"message" yaml:"message"`
	Details   []Detail `json:"details" yaml:"details"`
}

// Error implements error.
func (e *ErrorReport) Error() string {
	return e.Message
}

// Is reports whether target is oaserrors.ErrValidation.
func (e *ErrorReport) Is(target error) bool {
	return target == oaserrors.ErrValidation
}

// Reports collects the ErrorReports of several parameters.
type Reports []*ErrorReport

// Error implements error.
func (r Reports) Error() string {
	msgs := make([]string, len(r))
	for i, report := range r {
		msgs[i] = report.Message
	}
	return strings.Join(msgs, "\n")
}

// Is reports whether target is oaserrors.ErrValidation.
func (r Reports) Is(target error) bool {
	return target == oaserrors.ErrValidation
}

// Unwrap exposes the individual reports to errors.As.
func (r Reports) Unwrap() []error {
	errs := make([]error, len(r))
	for i, report := range r {
		errs[i] = report
	}
	return errs
}

// aggregate folds engine violations into one report, in engine order.
func aggregate(name string, violations []engine.Violation) *ErrorReport {
	report := &ErrorReport{
		Parameter: name,
		Details:   make([]Detail, 0, len(violations)),
	}
	texts := make([]string, 0, len(violations))
	for _, v := range violations {
		var text, path string
		if v.SchemaPath != "" {
			text = fmt.Sprintf("%s %s %s", v.SchemaPath, render(v.Data), v.Message)
			path = v.SchemaPath
		} else {
			text = fmt.Sprintf("%s (%s) %s", v.Keyword, render(v.Data), v.Message)
			path = v.InstancePath
		}
		texts = append(texts, text)
		report.Details = append(report.Details, Detail{
			Message: qualify(name, text),
			Path:    path,
		})
	}
	report.Message = qualify(name, strings.Join(texts, "; "))
	return report
}

func qualify(name, text string) string {
	if name == "" {
		return text
	}
	return name + " " + text
}

// render prints a value as JSON.
func render(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
