package parameter

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// CoerceFunc converts a raw wire value to the value validated. present is
// false when the value should be treated as absent and removed.
// Coercion never fails: values it cannot convert pass through unchanged and
// are left for the schema to reject.
type CoerceFunc func(raw any) (value any, present bool)

// Coercion returns the coercion for p, or nil when p has no location or its
// type needs none. consumes is forwarded into file values.
func Coercion(p *Parameter, consumes []string) CoerceFunc {
	if p == nil || !p.Located() {
		return nil
	}
	switch p.Type {
	case TypeArray:
		return coerceArray(p.CollectionFormat, p.Items)
	case TypeFile:
		return coerceFile(p.In, consumes)
	}
	if fn := scalarCoercion(p.Type); fn != nil {
		return fn
	}
	if p.Schema != nil {
		return coerceBody
	}
	return nil
}

func scalarCoercion(typ string) CoerceFunc {
	switch typ {
	case TypeInteger, TypeLong:
		return coerceNumber(true)
	case TypeNumber, TypeFloat, TypeDouble:
		return coerceNumber(false)
	case TypeByte:
		return coerceByte
	case TypeBoolean:
		return coerceBoolean
	case TypeDate, TypeDateTime:
		return coerceDate
	default:
		return nil
	}
}

func coerceNumber(integral bool) CoerceFunc {
	return func(raw any) (any, bool) {
		s, ok := raw.(string)
		if !ok {
			return raw, true
		}
		if n, ok := parseNumber(s, integral); ok {
			return n, true
		}
		return raw, true
	}
}

// parseNumber parses s as int64 when integral and it has no fraction,
// otherwise as a finite float64.
func parseNumber(s string, integral bool) (any, bool) {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil, false
	}
	if integral {
		if i, err := strconv.ParseInt(t, 10, 64); err == nil {
			return i, true
		}
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return f, true
}

func coerceByte(raw any) (any, bool) {
	s, ok := raw.(string)
	if !ok {
		return raw, true
	}
	if n, ok := parseNumber(s, true); ok {
		return n, true
	}
	if s == "" {
		return raw, true
	}
	return int64(s[0]), true
}

func coerceBoolean(raw any) (any, bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case string:
		return v == "true" || v == "1", true
	default:
		return false, true
	}
}

// dateLayouts are tried in order when coercing date and dateTime values.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	time.DateOnly,
	time.RFC1123,
	time.RFC1123Z,
}

// coerceDate converts a date string to milliseconds since the Unix epoch.
func coerceDate(raw any) (any, bool) {
	s, ok := raw.(string)
	if !ok {
		return raw, true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli(), true
		}
	}
	return raw, true
}

func coerceFile(in Location, consumes []string) CoerceFunc {
	types := make([]any, len(consumes))
	for i, c := range consumes {
		types[i] = c
	}
	return func(raw any) (any, bool) {
		return map[string]any{
			"value":    raw,
			"consumes": types,
			"in":       string(in),
		}, true
	}
}

// coerceBody drops an empty object so a required body reports as missing.
func coerceBody(raw any) (any, bool) {
	if m, ok := raw.(map[string]any); ok && len(m) == 0 {
		return nil, false
	}
	return raw, true
}

// coerceArray splits delimited strings on the collection format separator
// and coerces each element by the item type. Sequences, such as repeated
// multi query values, keep their length and have their string elements
// coerced the same way.
func coerceArray(format string, items *Items) CoerceFunc {
	sep, ok := Separator(format)
	if !ok {
		sep = ","
	}
	element := itemCoercion(items)
	each := func(parts []string) []any {
		out := make([]any, len(parts))
		for i, part := range parts {
			if element == nil {
				out[i] = part
				continue
			}
			out[i], _ = element(part)
		}
		return out
	}
	return func(raw any) (any, bool) {
		switch v := raw.(type) {
		case string:
			return each(strings.Split(v, sep)), true
		case []string:
			return each(v), true
		case []any:
			if element == nil {
				return v, true
			}
			out := make([]any, len(v))
			for i, item := range v {
				if s, ok := item.(string); ok {
					out[i], _ = element(s)
					continue
				}
				out[i] = item
			}
			return out, true
		default:
			return raw, true
		}
	}
}

func itemCoercion(items *Items) CoerceFunc {
	if items == nil {
		return nil
	}
	if items.Type == TypeArray {
		return coerceArray(items.CollectionFormat, items.Items)
	}
	return scalarCoercion(items.Type)
}
