package mcpserver

import (
	"context"
	"slices"
	"testing"

	"github.com/goccy/go-json"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasparams/internal/testutil"
)

// startTestSession creates an in-process MCP server/client pair and returns
// the connected client session. The server is shut down when the test ends.
func startTestSession(t *testing.T) *mcp.ClientSession {
	t.Helper()

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasparams-test", Version: "test"},
		nil,
	)
	registerAllTools(server)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	done := make(chan error, 1)
	go func() {
		done <- server.Run(ctx, serverTransport)
	}()

	client := mcp.NewClient(
		&mcp.Implementation{Name: "test-client", Version: "test"},
		nil,
	)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		<-done
	})

	return session
}

func petsContent(t *testing.T) string {
	t.Helper()
	data, err := json.Marshal(testutil.PetsAPI())
	require.NoError(t, err)
	return string(data)
}

func TestIntegration_ListTools(t *testing.T) {
	session := startTestSession(t)

	result, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		assert.NotEmpty(t, tool.Description, tool.Name)
		names = append(names, tool.Name)
	}
	slices.Sort(names)
	assert.Equal(t, []string{"list_routes", "validate_parameters"}, names)
}

// call invokes tool over session and fails the test on transport errors.
func call(t *testing.T, session *mcp.ClientSession, tool string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: tool, Arguments: args})
	require.NoError(t, err)
	return result
}

func TestIntegration_CallTool(t *testing.T) {
	session := startTestSession(t)
	spec := map[string]any{"content": petsContent(t)}

	t.Run("validate route reports failing parameter", func(t *testing.T) {
		result := call(t, session, "validate_parameters", map[string]any{
			"spec": spec, "method": "get", "path": "/pets",
			"data": map[string]any{"limit": "101"},
		})
		require.False(t, result.IsError)

		out := unmarshalStructured(t, result)
		assert.Equal(t, false, out["valid"])
		errs, _ := out["errors"].([]any)
		require.Len(t, errs, 1)
		assert.Equal(t, "limit", errs[0].(map[string]any)["parameter"])
	})

	t.Run("validate request target", func(t *testing.T) {
		result := call(t, session, "validate_parameters", map[string]any{
			"spec": spec, "method": "get", "url": "/pets/7",
		})
		require.False(t, result.IsError)

		out := unmarshalStructured(t, result)
		assert.Equal(t, true, out["valid"])
		assert.Equal(t, map[string]any{"id": float64(7)}, out["data"])
	})

	t.Run("list routes", func(t *testing.T) {
		result := call(t, session, "list_routes", map[string]any{"spec": spec})
		require.False(t, result.IsError)
		assert.Equal(t, float64(4), unmarshalStructured(t, result)["total"])
	})

	t.Run("file paths are not leaked", func(t *testing.T) {
		result := call(t, session, "list_routes", map[string]any{
			"spec": map[string]any{"file": "/tmp/oasparams-does-not-exist.yaml"},
		})
		require.True(t, result.IsError)
		require.NotEmpty(t, result.Content)
		text, ok := result.Content[0].(*mcp.TextContent)
		require.True(t, ok)
		assert.Contains(t, text.Text, "<path>")
		assert.NotContains(t, text.Text, "/tmp/")
	})
}

// unmarshalStructured extracts the structured output of a tool call as a
// generic map.
func unmarshalStructured(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()

	if result.StructuredContent != nil {
		data, err := json.Marshal(result.StructuredContent)
		require.NoError(t, err)
		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		return m
	}

	require.NotEmpty(t, result.Content, "expected at least one content item")
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &m), "failed to parse text content as JSON")
	return m
}
