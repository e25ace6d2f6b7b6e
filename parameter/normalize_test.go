package parameter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int {
	return &i
}

func floatPtr(f float64) *float64 {
	return &f
}

func TestNormalizeLocated(t *testing.T) {
	defs := map[string]any{"Pet": map[string]any{"type": "object"}}
	p := &Parameter{
		Name:             "id",
		In:               LocationQuery,
		Required:         true,
		Type:             TypeLong,
		Minimum:          floatPtr(1),
		ExclusiveMinimum: true,
		CollectionFormat: CollectionCSV,
		Extra:            map[string]any{"x-trace": "on"},
	}

	s := Normalize(p, defs)
	assert.Nil(t, s.Raw)
	assert.Equal(t, []string{"id"}, s.Required)
	assert.False(t, s.AdditionalProperties)

	assert.Equal(t, map[string]any{
		"additionalProperties": false,
		"required":             []any{"id"},
		"definitions":          defs,
		"properties": map[string]any{
			"id": map[string]any{
				"type":             "integer",
				"minimum":          1.0,
				"exclusiveMinimum": true,
				"x-trace":          "on",
			},
		},
	}, s.Map())

	// The declaration itself is left untouched.
	assert.Equal(t, TypeLong, p.Type)
	assert.Equal(t, "id", p.Name)
}

func TestNormalizeOptionalHasNoRequiredList(t *testing.T) {
	s := Normalize(&Parameter{Name: "q", In: LocationQuery, Type: TypeString}, nil)
	m := s.Map()
	assert.NotContains(t, m, "required")
	assert.NotContains(t, m, "definitions")
}

func TestNormalizeTypeMapping(t *testing.T) {
	tests := []struct {
		declared string
		expected string
	}{
		{TypeString, "string"},
		{TypeInteger, "integer"},
		{TypeLong, "integer"},
		{TypeByte, "integer"},
		{TypeDate, "integer"},
		{TypeDateTime, "integer"},
		{TypeFloat, "number"},
		{TypeDouble, "number"},
		{TypeNumber, "number"},
		{TypeFile, "object"},
		{TypeBoolean, "boolean"},
		{TypeArray, "array"},
	}
	for _, tt := range tests {
		t.Run(tt.declared, func(t *testing.T) {
			assert.Equal(t, tt.expected, JSONType(tt.declared))
		})
	}
}

func TestNormalizeArrayItems(t *testing.T) {
	p := &Parameter{
		Name:             "ids",
		In:               LocationQuery,
		Type:             TypeArray,
		CollectionFormat: CollectionPipes,
		MaxItems:         intPtr(3),
		Items: &Items{
			Type:             TypeArray,
			CollectionFormat: CollectionCSV,
			Items:            &Items{Type: TypeDouble, Maximum: floatPtr(9)},
		},
	}
	prop := Normalize(p, nil).Properties["ids"]
	assert.Equal(t, map[string]any{
		"type":     "array",
		"maxItems": 3,
		"items": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":    "number",
				"maximum": 9.0,
			},
		},
	}, prop)
}

func TestNormalizeBodyReference(t *testing.T) {
	p := &Parameter{
		Name:        "pet",
		In:          LocationBody,
		Required:    true,
		Description: "pet to add",
		Schema:      map[string]any{"$ref": "#/definitions/Pet", "description": "ignored"},
	}
	prop := Normalize(p, nil).Properties["pet"]
	assert.Equal(t, map[string]any{
		"$ref":        "#/definitions/Pet",
		"description": "pet to add",
	}, prop)
}

func TestNormalizeInlineBodySchema(t *testing.T) {
	p := &Parameter{
		Name: "pet",
		In:   LocationBody,
		Schema: map[string]any{
			"type":     "object",
			"required": []any{"name"},
		},
	}
	prop := Normalize(p, nil).Properties["pet"]
	assert.Equal(t, "object", prop["type"])
	assert.Equal(t, []any{"name"}, prop["required"])
}

func TestNormalizeAllowEmptyValue(t *testing.T) {
	t.Run("type widened to null", func(t *testing.T) {
		p := &Parameter{Name: "n", In: LocationQuery, Type: TypeInteger, AllowEmptyValue: true}
		prop := Normalize(p, nil).Properties["n"]
		assert.Equal(t, []any{"integer", "null"}, prop["type"])
		assert.NotContains(t, prop, "allowEmptyValue")
	})

	t.Run("enum accepts null", func(t *testing.T) {
		enum := []any{"a", "b"}
		p := &Parameter{Name: "n", In: LocationQuery, Type: TypeString, Enum: enum, AllowEmptyValue: true}
		prop := Normalize(p, nil).Properties["n"]
		assert.Equal(t, []any{"a", "b", nil}, prop["enum"])
		assert.Equal(t, []any{"a", "b"}, enum)
	})

	t.Run("reference left alone", func(t *testing.T) {
		p := &Parameter{Name: "b", In: LocationBody, AllowEmptyValue: true, Schema: map[string]any{"$ref": "#/definitions/Pet"}}
		prop := Normalize(p, nil).Properties["b"]
		assert.NotContains(t, prop, "type")
	})
}

func TestNormalizeLocationless(t *testing.T) {
	defs := map[string]any{"Tag": map[string]any{"type": "string"}}

	t.Run("raw with root definitions", func(t *testing.T) {
		p, err := DecodeParameter(map[string]any{
			"type":     "object",
			"required": []any{"name"},
			"properties": map[string]any{
				"tag": map[string]any{"$ref": "#/definitions/Tag"},
			},
		})
		require.NoError(t, err)

		s := Normalize(p, defs)
		require.NotNil(t, s.Raw)
		assert.Nil(t, s.Properties)

		m := s.Map()
		assert.Equal(t, "object", m["type"])
		assert.Equal(t, []any{"name"}, m["required"])
		assert.Equal(t, defs, m["definitions"])
		assert.NotContains(t, s.Raw, "definitions")
	})

	t.Run("own definitions win", func(t *testing.T) {
		own := map[string]any{"Local": map[string]any{}}
		p, err := DecodeParameter(map[string]any{"type": "object", "definitions": own})
		require.NoError(t, err)
		assert.Equal(t, own, Normalize(p, defs).Map()["definitions"])
	})
}
