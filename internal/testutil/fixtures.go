// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"
)

// PetsAPI returns a Swagger 2.0 pet store document as the generic map the
// registry holds. Each call returns a fresh copy.
//
// It declares a shared "id" path parameter, a "limit" query parameter, a
// "Pet" definition requiring id and name, and a "NewPet" definition used by
// the POST body.
func PetsAPI() map[string]any {
	return map[string]any{
		"swagger": "2.0",
		"info": map[string]any{
			"title":   "Swagger Petstore",
			"version": "1.0.0",
		},
		"basePath": "/v1",
		"consumes": []any{"application/json"},
		"produces": []any{"application/json"},
		"parameters": map[string]any{
			"id": map[string]any{
				"name":     "id",
				"in":       "path",
				"required": true,
				"type":     "integer",
				"format":   "int64",
			},
			"limit": map[string]any{
				"name":    "limit",
				"in":      "query",
				"type":    "integer",
				"format":  "int32",
				"minimum": 1.0,
				"maximum": 100.0,
			},
			"aliased": map[string]any{
				"$ref": "#/parameters/id",
			},
			"loopA": map[string]any{"$ref": "#/parameters/loopB"},
			"loopB": map[string]any{"$ref": "#/parameters/loopA"},
		},
		"paths": map[string]any{
			"/pets": map[string]any{
				"get": map[string]any{
					"operationId": "listPets",
					"parameters": []any{
						map[string]any{"$ref": "#/parameters/limit"},
						map[string]any{
							"name":             "tags",
							"in":               "query",
							"type":             "array",
							"items":            map[string]any{"type": "string"},
							"collectionFormat": "csv",
						},
					},
				},
				"post": map[string]any{
					"operationId": "addPet",
					"parameters": []any{
						map[string]any{
							"name":     "pet",
							"in":       "body",
							"required": true,
							"schema":   map[string]any{"$ref": "#/definitions/NewPet"},
						},
					},
				},
			},
			"/pets/{id}": map[string]any{
				"parameters": []any{
					map[string]any{"$ref": "#/parameters/id"},
				},
				"get": map[string]any{
					"operationId": "findPetById",
				},
				"delete": map[string]any{
					"operationId": "deletePet",
					"consumes":    []any{"application/x-www-form-urlencoded"},
					"parameters": []any{
						map[string]any{
							"name":     "reason",
							"in":       "formData",
							"type":     "string",
							"required": true,
						},
					},
				},
			},
		},
		"definitions": map[string]any{
			"Pet": map[string]any{
				"type":     "object",
				"required": []any{"id", "name"},
				"properties": map[string]any{
					"id":   map[string]any{"type": "integer", "format": "int64"},
					"name": map[string]any{"type": "string"},
					"tag":  map[string]any{"type": "string"},
				},
			},
			"NewPet": map[string]any{
				"type":     "object",
				"required": []any{"name"},
				"properties": map[string]any{
					"name": map[string]any{"type": "string"},
					"tag":  map[string]any{"type": "string"},
				},
			},
		},
	}
}

// WriteTempYAML marshals a document to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t *testing.T, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "test.yaml")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary YAML file: %v", err)
	}

	return tmpFile
}

// WriteTempJSON marshals a document to JSON and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempJSON(t *testing.T, doc any) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "test.json")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary JSON file: %v", err)
	}

	return tmpFile
}
