package mcpserver

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type listRoutesInput struct {
	Spec   documentInput `json:"spec"             jsonschema:"The Swagger 2.0 document"`
	Method string        `json:"method,omitempty" jsonschema:"Only list operations with this method"`
	Path   string        `json:"path,omitempty"   jsonschema:"Only list operations whose path template starts with this prefix"`
	Offset int           `json:"offset,omitempty" jsonschema:"Skip the first N routes (for pagination)"`
	Limit  int           `json:"limit,omitempty"  jsonschema:"Maximum number of routes to return"`
}

type routeSummary struct {
	Method      string   `json:"method"`
	Path        string   `json:"path"`
	OperationID string   `json:"operation_id,omitempty"`
	Consumes    []string `json:"consumes,omitempty"`
	Parameters  []string `json:"parameters,omitempty"`
}

type listRoutesOutput struct {
	Total    int            `json:"total"`
	Returned int            `json:"returned"`
	Routes   []routeSummary `json:"routes,omitempty"`
}

func handleListRoutes(_ context.Context, _ *mcp.CallToolRequest, input listRoutesInput) (*mcp.CallToolResult, listRoutesOutput, error) {
	f, err := newFactory(input.Spec, nil)
	if err != nil {
		return errResult(err), listRoutesOutput{}, nil
	}
	routes, err := f.Routes()
	if err != nil {
		return errResult(err), listRoutesOutput{}, nil
	}

	var summaries []routeSummary
	for _, r := range routes {
		if input.Method != "" && !strings.EqualFold(r.Method, input.Method) {
			continue
		}
		if !strings.HasPrefix(r.Path, input.Path) {
			continue
		}
		summaries = append(summaries, routeSummary{
			Method:      r.Method,
			Path:        r.Path,
			OperationID: r.OperationID,
			Consumes:    r.Consumes,
			Parameters:  r.ParameterLabels(),
		})
	}

	output := listRoutesOutput{Total: len(summaries)}
	output.Routes = paginate(summaries, input.Offset, input.Limit)
	output.Returned = len(output.Routes)
	return nil, output, nil
}
