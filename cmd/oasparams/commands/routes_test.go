package commands

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasparams/internal/testutil"
)

func TestRunRoutes(t *testing.T) {
	spec := testutil.WriteTempYAML(t, testutil.PetsAPI())

	t.Run("text", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		require.NoError(t, runRoutes([]string{spec}, &stdout, &stderr))
		assert.Equal(t, ""+
			"GET     /pets (listPets)\n"+
			"        #/parameters/limit\n"+
			"        query:tags\n"+
			"POST    /pets (addPet)\n"+
			"        body:pet\n"+
			"GET     /pets/{id} (findPetById)\n"+
			"        #/parameters/id\n"+
			"DELETE  /pets/{id} (deletePet)\n"+
			"        #/parameters/id\n"+
			"        formData:reason\n", stdout.String())
	})

	t.Run("json filtered", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		require.NoError(t, runRoutes([]string{"--method", "DELETE", "--format", "json", spec}, &stdout, &stderr))

		var entries []RouteEntry
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &entries))
		require.Len(t, entries, 1)
		assert.Equal(t, RouteEntry{
			Method:      "delete",
			Path:        "/pets/{id}",
			OperationID: "deletePet",
			Consumes:    []string{"application/x-www-form-urlencoded"},
			Parameters:  []string{"#/parameters/id", "formData:reason"},
		}, entries[0])
	})

	t.Run("errors", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		assert.Error(t, runRoutes(nil, &stdout, &stderr))
		assert.Error(t, runRoutes([]string{"--format", "xml", spec}, &stdout, &stderr))
		assert.Error(t, runRoutes([]string{"missing.yaml"}, &stdout, &stderr))
	})

	t.Run("help", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		require.NoError(t, runRoutes([]string{"-h"}, &stdout, &stderr))
		assert.Contains(t, stderr.String(), "Usage: oasparams routes")
	})
}
