package paramvalidator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasparams/oaserrors"
	"github.com/erraggy/oasparams/parameter"
)

func TestRoutes(t *testing.T) {
	f := newPetsFactory(t)
	routes, err := f.Routes()
	require.NoError(t, err)
	require.Len(t, routes, 4)

	type summary struct {
		method, path, opID string
		consumes           []string
		params             int
	}
	got := make([]summary, len(routes))
	for i, r := range routes {
		got[i] = summary{r.Method, r.Path, r.OperationID, r.Consumes, len(r.Parameters)}
	}
	assert.Equal(t, []summary{
		{"get", "/pets", "listPets", []string{"application/json"}, 2},
		{"post", "/pets", "addPet", []string{"application/json"}, 1},
		{"get", "/pets/{id}", "findPetById", []string{"application/json"}, 1},
		{"delete", "/pets/{id}", "deletePet", []string{"application/x-www-form-urlencoded"}, 2},
	}, got)

	// Path-level parameters come first.
	assert.Equal(t, parameter.Reference{Pointer: "#/parameters/id"}, routes[3].Parameters[0])
	assert.Equal(t, []string{"#/parameters/id", "formData:reason"}, routes[3].ParameterLabels())
	assert.Equal(t, []string{"#/parameters/limit", "query:tags"}, routes[0].ParameterLabels())
}

func TestFactoryRoute(t *testing.T) {
	f := newPetsFactory(t)

	r, err := f.Route("DELETE", "/pets/{id}")
	require.NoError(t, err)
	assert.Equal(t, "deletePet", r.OperationID)

	_, err = f.Route("put", "/pets")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no operation put /pets")
}

func TestRouteParameterLabelsLocationless(t *testing.T) {
	r := Route{Parameters: []parameter.Declaration{&parameter.Parameter{Name: "Pet"}}}
	assert.Equal(t, []string{"Pet"}, r.ParameterLabels())
	assert.Empty(t, Route{}.ParameterLabels())
}

func TestRoutesOperationOverridesPathParameter(t *testing.T) {
	doc := map[string]any{
		"paths": map[string]any{
			"/items/{id}": map[string]any{
				"parameters": []any{
					map[string]any{"name": "id", "in": "path", "required": true, "type": "string"},
					map[string]any{"name": "trace", "in": "header", "type": "string"},
				},
				"get": map[string]any{
					"parameters": []any{
						map[string]any{"name": "id", "in": "path", "required": true, "type": "integer"},
						map[string]any{"name": "id", "in": "query", "type": "boolean"},
					},
				},
			},
			"x-extension": map[string]any{},
		},
	}
	f, err := New(WithAPI(doc))
	require.NoError(t, err)

	routes, err := f.Routes()
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Nil(t, routes[0].Consumes)

	params := routes[0].Parameters
	require.Len(t, params, 3)
	first := params[0].(*parameter.Parameter)
	assert.Equal(t, parameter.TypeInteger, first.Type)
	assert.Equal(t, "trace", params[1].(*parameter.Parameter).Name)
	assert.Equal(t, parameter.LocationQuery, params[2].(*parameter.Parameter).In)
}

func TestRoutesErrors(t *testing.T) {
	tests := []struct {
		name string
		item map[string]any
	}{
		{"parameters not a list", map[string]any{"parameters": "nope"}},
		{"parameter not an object", map[string]any{"get": map[string]any{"parameters": []any{"id"}}}},
		{"malformed parameter", map[string]any{"get": map[string]any{"parameters": []any{map[string]any{"in": "query"}}}}},
		{"unresolvable reference", map[string]any{"get": map[string]any{"parameters": []any{map[string]any{"$ref": "#/parameters/missing"}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(WithAPI(map[string]any{"paths": map[string]any{"/x": tt.item}}))
			require.NoError(t, err)
			_, err = f.Routes()
			assert.Error(t, err)
		})
	}
}

func TestMakeRouteAndValidateAll(t *testing.T) {
	f := newPetsFactory(t)
	routes, err := f.Routes()
	require.NoError(t, err)

	t.Run("coerced values written back", func(t *testing.T) {
		validators, err := f.MakeRoute(routes[0])
		require.NoError(t, err)
		require.Len(t, validators, 2)

		data := map[string]any{"limit": "20", "tags": "a,b", "unrelated": true}
		out, err := ValidateAll(validators, data)
		require.NoError(t, err)
		assert.Equal(t, int64(20), out["limit"])
		assert.Equal(t, []any{"a", "b"}, out["tags"])
		assert.Equal(t, true, out["unrelated"])
	})

	t.Run("absent optional parameters", func(t *testing.T) {
		validators, err := f.MakeRoute(routes[0])
		require.NoError(t, err)

		out, err := ValidateAll(validators, nil)
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("every failing parameter reported", func(t *testing.T) {
		validators, err := f.MakeRoute(routes[3])
		require.NoError(t, err)

		_, err = ValidateAll(validators, map[string]any{"id": "abc"})
		require.Error(t, err)
		assert.ErrorIs(t, err, oaserrors.ErrValidation)

		var reports Reports
		require.ErrorAs(t, err, &reports)
		require.Len(t, reports, 2)
		assert.Equal(t, "id", reports[0].Parameter)
		assert.Equal(t, "reason", reports[1].Parameter)
	})

	t.Run("body removed when empty", func(t *testing.T) {
		validators, err := f.MakeRoute(routes[1])
		require.NoError(t, err)

		data := map[string]any{"pet": map[string]any{}}
		_, err = ValidateAll(validators, data)
		require.Error(t, err)
		assert.NotContains(t, data, "pet")
	})

	t.Run("location-less validators see all data", func(t *testing.T) {
		v := mustMake(t, f, parameter.Reference{Pointer: "#/definitions/NewPet"})
		out, err := ValidateAll([]*Validator{v}, map[string]any{"name": "rex"})
		require.NoError(t, err)
		assert.Equal(t, "rex", out["name"])
	})
}

func TestMakeRouteError(t *testing.T) {
	f := newPetsFactory(t)
	_, err := f.MakeRoute(Route{
		Method:     "get",
		Path:       "/broken",
		Parameters: []parameter.Declaration{parameter.Reference{Pointer: "#/parameters/noexist"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get /broken")
	assert.ErrorIs(t, err, oaserrors.ErrReferenceNotFound)
}
