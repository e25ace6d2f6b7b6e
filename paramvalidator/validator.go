package paramvalidator

import (
	"errors"

	"github.com/erraggy/oasparams/internal/engine"
	"github.com/erraggy/oasparams/parameter"
)

// Callback receives the outcome of ValidateFunc: a nil err and the coerced
// data on success, an *ErrorReport and nil data on failure.
type Callback func(err error, data map[string]any)

// Validator checks one parameter. It holds no mutable state and may be used
// from several goroutines as long as each call gets its own data map.
type Validator struct {
	name     string
	param    *parameter.Parameter
	schema   map[string]any
	compiled *engine.Compiled
	coerce   parameter.CoerceFunc
	logger   Logger
}

// Name returns the label used in reports: the parameter name, or the
// reference pointer for location-less declarations.
func (v *Validator) Name() string {
	return v.name
}

// Parameter returns the resolved declaration.
func (v *Validator) Parameter() *parameter.Parameter {
	return v.param
}

// Schema returns the structural schema the validator was compiled from.
// It must not be modified.
func (v *Validator) Schema() map[string]any {
	return v.schema
}

// Validate coerces data[name] in place and checks data against the compiled
// schema. A nil map is treated as an empty parameter set.
//
// Located parameters compile to an object that allows no other keys, so
// data should hold only this parameter; ValidateAll builds such a view for
// each validator of a route.
func (v *Validator) Validate(data map[string]any) (map[string]any, error) {
	if data == nil {
		data = make(map[string]any)
	}
	if v.param.Located() {
		v.prepare(data)
	}

	violations := v.compiled.Run(data)
	if len(violations) == 0 {
		return data, nil
	}
	report := aggregate(v.name, violations)
	v.logger.Debug("parameter validation failed", "message", report.Message)
	return nil, report
}

// ValidateFunc is Validate delivering its result through cb.
func (v *Validator) ValidateFunc(data map[string]any, cb Callback) {
	out, err := v.Validate(data)
	cb(err, out)
}

// prepare applies coercion and turns an allowed empty value into null for
// non-string types.
func (v *Validator) prepare(data map[string]any) {
	name := v.param.Name
	raw, ok := data[name]
	if !ok {
		return
	}
	if v.coerce != nil {
		value, present := v.coerce(raw)
		if !present {
			delete(data, name)
			return
		}
		data[name] = value
	}
	if v.param.AllowEmptyValue && v.param.Type != parameter.TypeString {
		if s, ok := data[name].(string); ok && s == "" {
			data[name] = nil
		}
	}
}

// ValidateAll runs each validator over its own parameter in data, which
// holds the parameters of one request keyed by name. Coerced values are
// written back into data. When any parameter fails, the reports of all
// failing parameters are returned as Reports.
func ValidateAll(validators []*Validator, data map[string]any) (map[string]any, error) {
	if data == nil {
		data = make(map[string]any)
	}

	var reports Reports
	for _, v := range validators {
		if !v.param.Located() {
			if _, err := v.Validate(data); err != nil {
				if !collectReport(err, &reports) {
					return nil, err
				}
			}
			continue
		}

		name := v.param.Name
		view := make(map[string]any, 1)
		if raw, ok := data[name]; ok {
			view[name] = raw
		}
		_, err := v.Validate(view)
		if value, ok := view[name]; ok {
			data[name] = value
		} else {
			delete(data, name)
		}
		if err != nil && !collectReport(err, &reports) {
			return nil, err
		}
	}

	if len(reports) > 0 {
		return nil, reports
	}
	return data, nil
}

func collectReport(err error, reports *Reports) bool {
	var report *ErrorReport
	if !errors.As(err, &report) {
		return false
	}
	*reports = append(*reports, report)
	return true
}
