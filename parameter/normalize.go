package parameter

// StructuralSchema is the location-agnostic schema a declaration is
// validated against. Located declarations describe an object holding one
// property named after the parameter; location-less declarations are used
// as-is through Raw.
type StructuralSchema struct {
	Properties           map[string]map[string]any
	Required             []string
	AdditionalProperties bool
	Definitions          map[string]any

	// Raw is set instead of Properties for location-less declarations.
	Raw map[string]any
}

// JSONType maps a declared parameter type to the JSON-Schema type its
// coerced value has.
func JSONType(t string) string {
	switch t {
	case TypeLong, TypeByte, TypeDate, TypeDateTime:
		return TypeInteger
	case TypeFloat, TypeDouble:
		return TypeNumber
	case TypeFile:
		return TypeObject
	default:
		return t
	}
}

// Normalize translates p into its structural schema. p is not modified.
// definitions, usually the root document's, are attached so local
// references resolve inside the compiled schema.
func Normalize(p *Parameter, definitions map[string]any) *StructuralSchema {
	s := &StructuralSchema{Definitions: definitions}
	if !p.Located() {
		s.Raw = p.rawSchema()
		return s
	}
	s.Properties = map[string]map[string]any{p.Name: p.propertySchema()}
	if p.Required {
		s.Required = []string{p.Name}
	}
	return s
}

// Map renders the schema as the generic document the engine compiles.
func (s *StructuralSchema) Map() map[string]any {
	if s.Raw != nil {
		out := make(map[string]any, len(s.Raw)+1)
		for k, v := range s.Raw {
			out[k] = v
		}
		if _, own := out["definitions"]; !own && s.Definitions != nil {
			out["definitions"] = s.Definitions
		}
		return out
	}

	props := make(map[string]any, len(s.Properties))
	for name, prop := range s.Properties {
		props[name] = prop
	}
	out := map[string]any{
		"additionalProperties": s.AdditionalProperties,
		"properties":           props,
	}
	if len(s.Required) > 0 {
		required := make([]any, len(s.Required))
		for i, name := range s.Required {
			required[i] = name
		}
		out["required"] = required
	}
	if s.Definitions != nil {
		out["definitions"] = s.Definitions
	}
	return out
}

// propertySchema is the schema of the parameter's own value. A body schema
// reference is hoisted to "$ref"; an inline body schema is merged in.
func (p *Parameter) propertySchema() map[string]any {
	out := make(map[string]any)
	if p.Schema != nil {
		if ref, ok := p.Schema["$ref"]; ok {
			out["$ref"] = ref
		} else {
			for k, v := range p.Schema {
				out[k] = v
			}
		}
	}
	p.fields().render(out)
	if p.Description != "" {
		out["description"] = p.Description
	}
	mergeExtra(out, p.Extra)
	if p.AllowEmptyValue {
		widenNullable(out)
	}
	return out
}

// rawSchema renders a location-less declaration. The boolean "required"
// flag has no meaning outside a parameter list and is not emitted.
func (p *Parameter) rawSchema() map[string]any {
	out := make(map[string]any)
	for k, v := range p.Schema {
		out[k] = v
	}
	p.fields().render(out)
	if p.Name != "" {
		out["name"] = p.Name
	}
	if p.Description != "" {
		out["description"] = p.Description
	}
	mergeExtra(out, p.Extra)
	return out
}

func (it *Items) schema() map[string]any {
	out := make(map[string]any)
	it.fields().render(out)
	mergeExtra(out, it.Extra)
	return out
}

func mergeExtra(out, extra map[string]any) {
	for k, v := range extra {
		if _, set := out[k]; !set {
			out[k] = v
		}
	}
}

// widenNullable lets an empty value, carried as null, satisfy the schema.
func widenNullable(out map[string]any) {
	t, ok := out["type"].(string)
	if !ok {
		return
	}
	out["type"] = []any{t, "null"}
	if enum, ok := out["enum"].([]any); ok {
		for _, v := range enum {
			if v == nil {
				return
			}
		}
		widened := make([]any, len(enum), len(enum)+1)
		copy(widened, enum)
		out["enum"] = append(widened, nil)
	}
}
