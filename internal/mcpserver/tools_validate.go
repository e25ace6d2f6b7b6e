package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasparams/internal/httputil"
	"github.com/erraggy/oasparams/internal/options"
	"github.com/erraggy/oasparams/parameter"
	"github.com/erraggy/oasparams/paramvalidator"
)

type validateParametersInput struct {
	Spec      documentInput  `json:"spec"                jsonschema:"The Swagger 2.0 document holding the declarations"`
	Schemas   []schemaInput  `json:"schemas,omitempty"   jsonschema:"Auxiliary schema documents referenced by the declarations"`
	Parameter map[string]any `json:"parameter,omitempty" jsonschema:"A single declaration: a parameter object or a reference such as {\"$ref\": \"#/parameters/limit\"}"`
	Consumes  []string       `json:"consumes,omitempty"  jsonschema:"Media types attached to file parameters when validating a single declaration"`
	Method    string         `json:"method,omitempty"    jsonschema:"Operation method; with path, validates every parameter of the operation"`
	Path      string         `json:"path,omitempty"      jsonschema:"Operation path template as written in the document, e.g. /pets/{id}"`
	URL       string         `json:"url,omitempty"       jsonschema:"Request target such as /pets/42?limit=5; with method, selects the operation and supplies its path and query values"`
	Data      map[string]any `json:"data,omitempty"      jsonschema:"Request parameter values keyed by parameter name"`
}

type validateParametersOutput struct {
	Valid      bool                          `json:"valid"`
	Validators int                           `json:"validators"`
	Data       map[string]any                `json:"data,omitempty"`
	Errors     []*paramvalidator.ErrorReport `json:"errors,omitempty"`
}

func handleValidateParameters(_ context.Context, _ *mcp.CallToolRequest, input validateParametersInput) (*mcp.CallToolResult, validateParametersOutput, error) {
	byRoute := input.Method != "" || input.Path != "" || input.URL != ""
	if err := options.ExactlyOne("provide either parameter or method with path or url", input.Parameter != nil, byRoute); err != nil {
		return errResult(err), validateParametersOutput{}, nil
	}
	if byRoute && (input.Method == "" || options.ExactlyOne("", input.Path != "", input.URL != "") != nil) {
		return errResult(errors.New("method must be given with exactly one of path or url")), validateParametersOutput{}, nil
	}
	if err := httputil.CheckMediaTypes(input.Consumes); err != nil {
		return errResult(err), validateParametersOutput{}, nil
	}

	f, err := newFactory(input.Spec, input.Schemas)
	if err != nil {
		return errResult(err), validateParametersOutput{}, nil
	}

	data := make(map[string]any, len(input.Data))
	var validators []*paramvalidator.Validator
	if byRoute {
		route, err := findRoute(f, input.Method, input.Path, input.URL, data)
		if err != nil {
			return errResult(err), validateParametersOutput{}, nil
		}
		validators, err = f.MakeRoute(route)
		if err != nil {
			return errResult(err), validateParametersOutput{}, nil
		}
	} else {
		decl, err := parameter.Decode(input.Parameter)
		if err != nil {
			return errResult(err), validateParametersOutput{}, nil
		}
		v, err := f.Make(decl, input.Consumes...)
		if err != nil {
			return errResult(err), validateParametersOutput{}, nil
		}
		validators = []*paramvalidator.Validator{v}
	}

	for name, value := range input.Data {
		data[name] = value
	}

	output := validateParametersOutput{Validators: len(validators)}
	out, err := paramvalidator.ValidateAll(validators, data)
	if err != nil {
		var reports paramvalidator.Reports
		if !errors.As(err, &reports) {
			return errResult(err), validateParametersOutput{}, nil
		}
		output.Errors = reports
		return nil, output, nil
	}
	output.Valid = true
	output.Data = out
	return nil, output, nil
}

// findRoute selects the operation by path template, or by request target
// whose path and query values are copied into data.
func findRoute(f *paramvalidator.Factory, method, path, target string, data map[string]any) (paramvalidator.Route, error) {
	if target == "" {
		return f.Route(method, path)
	}
	route, values, err := f.Match(method, target)
	if err != nil {
		return paramvalidator.Route{}, err
	}
	for name, value := range values {
		data[name] = value
	}
	return route, nil
}
