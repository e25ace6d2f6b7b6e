// Package paramvalidator builds reusable validators for Swagger 2.0
// request parameters.
//
// A Factory holds the root API document and any auxiliary schema documents.
// Make takes one parameter declaration, resolves it when it is a reference,
// compiles its structural schema once and returns a Validator:
//
//	f, err := paramvalidator.New(paramvalidator.WithAPI(doc))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	v, err := f.Make(parameter.Reference{Pointer: "#/parameters/limit"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	data, err := v.Validate(map[string]any{"limit": "20"})
//	// data["limit"] == int64(20)
//
// # Coercion
//
// Request values usually arrive as strings. Before validation, the value of
// a located parameter is converted according to its declared type: numbers
// are parsed, booleans accept "true" and "1", arrays are split on their
// collection format, dates become milliseconds since the Unix epoch, and an
// empty body object counts as absent. Coercion never fails; values that do
// not convert are left for the schema to reject.
//
// # Errors
//
// Validation failures are returned as *ErrorReport, which names the
// parameter in its message and in every detail and matches
// oaserrors.ErrValidation:
//
//	if _, err := v.Validate(data); errors.Is(err, oaserrors.ErrValidation) {
//	    var report *paramvalidator.ErrorReport
//	    errors.As(err, &report)
//	    for _, d := range report.Details {
//	        log.Printf("%s: %s", d.Path, d.Message)
//	    }
//	}
//
// Problems with the declarations themselves surface from Make as
// *oaserrors.ReferenceError, *oaserrors.ConfigError or
// *oaserrors.CompileError.
//
// # Routes
//
// Routes lists the operations of the root document with path-level and
// operation-level parameters merged; MakeRoute builds their validators and
// ValidateAll runs them over the parameters of one request. Route picks an
// operation by its path template and Match by a concrete request target,
// returning the target's path and query values as well:
//
//	route, data, err := f.Match("GET", "/pets/42?limit=5")
//	validators, err := f.MakeRoute(route)
//	data, err = paramvalidator.ValidateAll(validators, data)
package paramvalidator
