package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasparams/internal/testutil"
	"github.com/erraggy/oasparams/oaserrors"
)

func TestLoadFileYAML(t *testing.T) {
	doc, err := LoadFile("testdata/petstore.yaml")
	require.NoError(t, err)

	assert.Equal(t, FormatYAML, doc.Format)
	assert.Equal(t, "testdata/petstore.yaml", doc.Source)
	assert.Positive(t, doc.Size)
	assert.Equal(t, "2.0", doc.Data["swagger"])

	params, ok := doc.Data["parameters"].(map[string]any)
	require.True(t, ok)
	limit, ok := params["limit"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "query", limit["in"])
}

func TestLoadFileJSON(t *testing.T) {
	doc, err := LoadFile("testdata/common.json")
	require.NoError(t, err)

	assert.Equal(t, FormatJSON, doc.Format)
	defs := doc.Data["definitions"].(map[string]any)
	tag := defs["Tag"].(map[string]any)
	assert.Equal(t, 8.0, tag["maxLength"])
}

func TestLoadRoundTripsFixtures(t *testing.T) {
	for name, path := range map[string]string{
		"yaml": testutil.WriteTempYAML(t, testutil.PetsAPI()),
		"json": testutil.WriteTempJSON(t, testutil.PetsAPI()),
	} {
		t.Run(name, func(t *testing.T) {
			doc, err := LoadFile(path)
			require.NoError(t, err)
			assert.Contains(t, doc.Data, "paths")
			assert.Contains(t, doc.Data, "definitions")
		})
	}
}

func TestLoadBytesDetectsContent(t *testing.T) {
	doc, err := LoadBytes([]byte(`  {"swagger": "2.0"}`), "inline")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, doc.Format)

	doc, err = LoadBytes([]byte("swagger: '2.0'\n"), "inline")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, doc.Format)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		source  string
		message string
	}{
		{"empty", "  \n", "inline", "document is empty"},
		{"invalid json", "{\"a\": }", "bad.json", "invalid JSON"},
		{"invalid yaml", "a: [b\n", "bad.yaml", "invalid YAML"},
		{"array root", "[1, 2]", "list.json", "document root must be an object"},
		{"scalar root", "just text", "scalar.yaml", "document root must be an object"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadBytes([]byte(tt.data), tt.source)
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrParse)
			var perr *oaserrors.ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.source, perr.Path)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestLoadJSONErrorPosition(t *testing.T) {
	_, err := LoadBytes([]byte("{\n  \"a\": 1,\n  \"b\": ?\n}"), "pos.json")
	var perr *oaserrors.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 3, perr.Line)
	assert.Positive(t, perr.Column)
}

func TestLoadSizeLimit(t *testing.T) {
	data := []byte("a: " + strings.Repeat("x", 64) + "\n")

	_, err := LoadBytes(data, "big.yaml", WithMaxSize(16))
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrResourceLimit)
	var lerr *oaserrors.ResourceLimitError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, "file_size", lerr.ResourceType)
	assert.Equal(t, int64(16), lerr.Limit)

	_, err = LoadBytes(data, "big.yaml", WithMaxSize(int64(len(data))))
	assert.NoError(t, err)

	_, err = LoadBytes(data, "big.yaml", WithMaxSize(-1))
	assert.Error(t, err)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadSchemas(t *testing.T) {
	schemas, err := LoadSchemas(map[string]string{"common": "testdata/common.json"})
	require.NoError(t, err)
	assert.Contains(t, schemas, "common")

	_, err = LoadSchemas(map[string]string{"gone": "testdata/none.json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"gone"`)
}

func TestLoadYAMLNonStringKeys(t *testing.T) {
	doc, err := LoadFile("testdata/responses.yaml")
	require.NoError(t, err)

	responses, ok := doc.Data["responses"].(map[string]any)
	require.True(t, ok, "responses is %T", doc.Data["responses"])
	assert.Contains(t, responses, "200")
	assert.Contains(t, responses, "404")

	ok200, ok := responses["200"].(map[string]any)
	require.True(t, ok)
	assert.IsType(t, map[string]any{}, ok200["headers"])

	enums, ok := doc.Data["enums"].([]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"1": "one", "2": "two"}, enums[0])
}

func TestStringKeys(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"scalar", 1, 1},
		{"integer keys", map[any]any{1: "a", true: "b"}, map[string]any{"1": "a", "true": "b"}},
		{"nested in string map", map[string]any{"x": map[any]any{2: nil}}, map[string]any{"x": map[string]any{"2": nil}}},
		{"nested in list", []any{map[any]any{3: []any{map[any]any{4: "d"}}}}, []any{map[string]any{"3": []any{map[string]any{"4": "d"}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stringKeys(tt.in))
		})
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		expected Format
	}{
		{"api.json", "", FormatJSON},
		{"api.YAML", "", FormatYAML},
		{"api.yml", "", FormatYAML},
		{"api", "{}", FormatJSON},
		{"api", "a: b", FormatYAML},
		{"api", "", FormatUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.data, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectFormat(tt.name, []byte(tt.data)))
		})
	}
}

func TestPosition(t *testing.T) {
	data := []byte("ab\ncd\nef")
	line, col := position(data, 4)
	assert.Equal(t, 2, line)
	assert.Equal(t, 2, col)

	line, col = position(data, 0)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)
}
