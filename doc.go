// Package oasparams validates HTTP request parameters against Swagger 2.0
// (OpenAPI 2.0) parameter declarations.
//
// Each declaration, given inline or as a JSON reference into the root API
// document or an auxiliary schema document, is turned into a reusable
// validator. The validator coerces the raw request value to its declared
// type and checks it with a compiled JSON Schema (draft 4).
//
// # Packages
//
//   - parameter: declaration model, decoding, normalization to a structural
//     schema, and value coercion
//   - registry: the root and auxiliary documents and JSON reference
//     resolution
//   - paramvalidator: the validator factory, validators, error reports and
//     route extraction
//   - loader: reading JSON and YAML documents from disk
//   - oaserrors: sentinel and typed errors shared by all packages
//
// # Quick Start
//
//	doc, err := loader.LoadFile("swagger.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	f, err := paramvalidator.New(paramvalidator.WithAPI(doc.Data))
//	if err != nil {
//		log.Fatal(err)
//	}
//	v, err := f.Make(parameter.Reference{Pointer: "#/parameters/limit"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	data, err := v.Validate(map[string]any{"limit": "20"})
//	if err != nil {
//		var report *paramvalidator.ErrorReport
//		if errors.As(err, &report) {
//			log.Fatal(report.Message)
//		}
//	}
//	fmt.Println(data["limit"]) // 20 (int64)
//
// # Command-Line Interface
//
// The oasparams command validates parameter values from the shell and
// serves the same functionality as MCP tools:
//
//	oasparams validate --ref '#/parameters/limit' --param limit=20 swagger.yaml
//	oasparams validate --method get --path /pets --param tags=a,b swagger.yaml
//	oasparams routes swagger.yaml
//	oasparams mcp
package oasparams
