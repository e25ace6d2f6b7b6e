// Package parameter models Swagger 2.0 parameter declarations and prepares
// them for validation.
//
// A Declaration is either a Reference to a shared definition or a direct
// *Parameter. Decode builds one from a decoded JSON or YAML map.
//
// Normalize turns a located parameter (query, path, header, formData or
// body) into a StructuralSchema: an object with a single property named
// after the parameter, required when the parameter is. Swagger-only types
// such as long, float or dateTime are mapped to the JSON-Schema type their
// coerced value has, and allowEmptyValue widens the type to accept null.
//
// Coercion returns the function that converts wire values, which usually
// arrive as strings, into typed values before validation:
//
//	p := &parameter.Parameter{Name: "tags", In: parameter.LocationQuery,
//		Type: "array", CollectionFormat: "pipes", Items: &parameter.Items{Type: "integer"}}
//	v, _ := parameter.Coercion(p, nil)("1|2|3") // []any{int64(1), int64(2), int64(3)}
package parameter
