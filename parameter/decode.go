package parameter

import (
	"fmt"
	"math"

	"github.com/erraggy/oasparams/oaserrors"
)

// Decode builds a Declaration from the generic map produced by a JSON or
// YAML decoder. A map carrying "$ref" becomes a Reference; anything else is
// decoded as a direct *Parameter and validated.
func Decode(m map[string]any) (Declaration, error) {
	if m == nil {
		return nil, &oaserrors.ConfigError{Option: "parameter", Message: "declaration is nil"}
	}
	if v, ok := m["$ref"]; ok {
		ref, ok := v.(string)
		if !ok || ref == "" {
			return nil, &oaserrors.ConfigError{
				Option:  "$ref",
				Value:   fmt.Sprint(v),
				Message: "reference must be a non-empty string",
			}
		}
		return Reference{Pointer: ref}, nil
	}
	return DecodeParameter(m)
}

// DecodeParameter decodes a direct parameter definition. Keys whose value
// does not have the expected shape are kept in Extra unchanged, so plain
// JSON-Schema documents (e.g. "required" as a list) survive decoding.
func DecodeParameter(m map[string]any) (*Parameter, error) {
	if m == nil {
		return nil, &oaserrors.ConfigError{Option: "parameter", Message: "declaration is nil"}
	}
	p := &Parameter{}
	f := p.fields()
	for k, v := range m {
		handled, err := p.decodeField(k, v)
		if err != nil {
			return nil, err
		}
		if !handled {
			handled = f.decode(k, v)
		}
		if !handled {
			if p.Extra == nil {
				p.Extra = make(map[string]any)
			}
			p.Extra[k] = v
		}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// decodeField handles the keys only a parameter (not its items) carries.
func (p *Parameter) decodeField(key string, v any) (bool, error) {
	switch key {
	case "name":
		s, ok := v.(string)
		if !ok {
			return false, &oaserrors.ConfigError{Option: "name", Value: fmt.Sprint(v), Message: "name must be a string"}
		}
		p.Name = s
	case "in":
		s, ok := v.(string)
		if !ok {
			return false, &oaserrors.ConfigError{Option: "in", Value: fmt.Sprint(v), Message: "location must be a string"}
		}
		p.In = Location(s)
	case "description":
		s, ok := v.(string)
		if !ok {
			return false, nil
		}
		p.Description = s
	case "required":
		b, ok := v.(bool)
		if !ok {
			return false, nil
		}
		p.Required = b
	case "allowEmptyValue":
		b, ok := v.(bool)
		if !ok {
			return false, nil
		}
		p.AllowEmptyValue = b
	case "schema":
		s, ok := v.(map[string]any)
		if !ok {
			return false, nil
		}
		p.Schema = s
	default:
		return false, nil
	}
	return true, nil
}

func decodeItems(m map[string]any) *Items {
	it := &Items{}
	f := it.fields()
	for k, v := range m {
		if f.decode(k, v) {
			continue
		}
		if it.Extra == nil {
			it.Extra = make(map[string]any)
		}
		it.Extra[k] = v
	}
	return it
}

// fieldSet addresses the keywords shared by parameters and items so both
// decode and render through one code path.
type fieldSet struct {
	typ, format, collectionFormat, pattern          *string
	items                                           **Items
	def                                             *any
	maximum, minimum, multipleOf                    **float64
	exclusiveMaximum, exclusiveMinimum, uniqueItems *bool
	maxLength, minLength, maxItems, minItems        **int
	enum                                            *[]any
}

func (p *Parameter) fields() fieldSet {
	return fieldSet{
		typ: &p.Type, format: &p.Format, collectionFormat: &p.CollectionFormat, pattern: &p.Pattern,
		items: &p.Items, def: &p.Default,
		maximum: &p.Maximum, minimum: &p.Minimum, multipleOf: &p.MultipleOf,
		exclusiveMaximum: &p.ExclusiveMaximum, exclusiveMinimum: &p.ExclusiveMinimum, uniqueItems: &p.UniqueItems,
		maxLength: &p.MaxLength, minLength: &p.MinLength, maxItems: &p.MaxItems, minItems: &p.MinItems,
		enum: &p.Enum,
	}
}

func (it *Items) fields() fieldSet {
	return fieldSet{
		typ: &it.Type, format: &it.Format, collectionFormat: &it.CollectionFormat, pattern: &it.Pattern,
		items: &it.Items, def: &it.Default,
		maximum: &it.Maximum, minimum: &it.Minimum, multipleOf: &it.MultipleOf,
		exclusiveMaximum: &it.ExclusiveMaximum, exclusiveMinimum: &it.ExclusiveMinimum, uniqueItems: &it.UniqueItems,
		maxLength: &it.MaxLength, minLength: &it.MinLength, maxItems: &it.MaxItems, minItems: &it.MinItems,
		enum: &it.Enum,
	}
}

// decode stores v into the matching field. It returns false when key is not
// a shared keyword or v has an unexpected shape.
func (f fieldSet) decode(key string, v any) bool {
	switch key {
	case "type":
		return setString(f.typ, v)
	case "format":
		return setString(f.format, v)
	case "collectionFormat":
		return setString(f.collectionFormat, v)
	case "pattern":
		return setString(f.pattern, v)
	case "items":
		m, ok := v.(map[string]any)
		if !ok {
			return false
		}
		*f.items = decodeItems(m)
	case "default":
		*f.def = v
	case "maximum":
		return setFloat(f.maximum, v)
	case "minimum":
		return setFloat(f.minimum, v)
	case "multipleOf":
		return setFloat(f.multipleOf, v)
	case "exclusiveMaximum":
		return setBool(f.exclusiveMaximum, v)
	case "exclusiveMinimum":
		return setBool(f.exclusiveMinimum, v)
	case "uniqueItems":
		return setBool(f.uniqueItems, v)
	case "maxLength":
		return setInt(f.maxLength, v)
	case "minLength":
		return setInt(f.minLength, v)
	case "maxItems":
		return setInt(f.maxItems, v)
	case "minItems":
		return setInt(f.minItems, v)
	case "enum":
		arr, ok := v.([]any)
		if !ok {
			return false
		}
		*f.enum = arr
	default:
		return false
	}
	return true
}

// render writes the populated fields into out as JSON-Schema keywords.
// Swagger-only types are mapped to their JSON-Schema counterparts and
// collectionFormat is dropped.
func (f fieldSet) render(out map[string]any) {
	if *f.typ != "" {
		out["type"] = JSONType(*f.typ)
	}
	if *f.format != "" {
		out["format"] = *f.format
	}
	if *f.pattern != "" {
		out["pattern"] = *f.pattern
	}
	if *f.items != nil {
		out["items"] = (*f.items).schema()
	}
	if *f.def != nil {
		out["default"] = *f.def
	}
	if *f.maximum != nil {
		out["maximum"] = **f.maximum
	}
	if *f.minimum != nil {
		out["minimum"] = **f.minimum
	}
	if *f.multipleOf != nil {
		out["multipleOf"] = **f.multipleOf
	}
	if *f.exclusiveMaximum {
		out["exclusiveMaximum"] = true
	}
	if *f.exclusiveMinimum {
		out["exclusiveMinimum"] = true
	}
	if *f.uniqueItems {
		out["uniqueItems"] = true
	}
	if *f.maxLength != nil {
		out["maxLength"] = **f.maxLength
	}
	if *f.minLength != nil {
		out["minLength"] = **f.minLength
	}
	if *f.maxItems != nil {
		out["maxItems"] = **f.maxItems
	}
	if *f.minItems != nil {
		out["minItems"] = **f.minItems
	}
	if *f.enum != nil {
		out["enum"] = *f.enum
	}
}

func setString(dst *string, v any) bool {
	s, ok := v.(string)
	if ok {
		*dst = s
	}
	return ok
}

func setBool(dst *bool, v any) bool {
	b, ok := v.(bool)
	if ok {
		*dst = b
	}
	return ok
}

func setFloat(dst **float64, v any) bool {
	f, ok := toFloat64(v)
	if ok {
		*dst = &f
	}
	return ok
}

func setInt(dst **int, v any) bool {
	i, ok := toInt(v)
	if ok {
		*dst = &i
	}
	return ok
}

// toFloat64 handles both float64 (from JSON) and int (from YAML) numbers.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	default:
		return 0, false
	}
}

// toInt handles both float64 (from JSON) and int (from YAML) numbers.
// Fractional and out-of-range values are rejected.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) || n > math.MaxInt || n < math.MinInt {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case int32:
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case uint:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case uint32:
		return int(n), true
	default:
		return 0, false
	}
}
