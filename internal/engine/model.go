package engine

import (
	"bytes"
	stdjson "encoding/json"

	"github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// toModel converts an arbitrary Go value into the engine's JSON model
// (map[string]any, []any, json.Number, string, bool, nil) by round-tripping
// it through its JSON encoding.
func toModel(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(data))
}

// plain replaces the json.Number values of a model with int64 or float64 so
// they print as numbers.
func plain(v any) any {
	switch t := v.(type) {
	case stdjson.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = plain(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = plain(val)
		}
		return out
	default:
		return v
	}
}
