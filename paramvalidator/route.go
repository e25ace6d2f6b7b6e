package paramvalidator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/erraggy/oasparams/internal/httputil"
	"github.com/erraggy/oasparams/internal/pathutil"
	"github.com/erraggy/oasparams/parameter"
)

// Route is one operation of the root API document together with the
// parameters that apply to it.
type Route struct {
	Method      string   `json:"method" yaml:"method"`
	Path        string   `json:"path" yaml:"path"`
	OperationID string   `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Consumes    []string `json:"consumes,omitempty" yaml:"consumes,omitempty"`

	// Parameters merges path-level and operation-level declarations; an
	// operation parameter replaces a path parameter with the same location
	// and name.
	Parameters []parameter.Declaration `json:"-" yaml:"-"`
}

// ParameterLabels renders each declaration as "in:name", or as its
// pointer when it is a reference.
func (r Route) ParameterLabels() []string {
	labels := make([]string, 0, len(r.Parameters))
	for _, decl := range r.Parameters {
		switch d := decl.(type) {
		case parameter.Reference:
			labels = append(labels, d.Pointer)
		case *parameter.Parameter:
			if d.Located() {
				labels = append(labels, string(d.In)+":"+d.Name)
			} else {
				labels = append(labels, d.Name)
			}
		}
	}
	return labels
}

// Routes lists the operations of the root document, sorted by path and
// then by method. Operation consumes override the document's global list.
func (f *Factory) Routes() ([]Route, error) {
	root := f.registry.Root()
	paths, _ := root["paths"].(map[string]any)
	globalConsumes := stringSlice(root["consumes"])

	templates := make([]string, 0, len(paths))
	for p := range paths {
		if strings.HasPrefix(p, "/") {
			templates = append(templates, p)
		}
	}
	slices.Sort(templates)

	var routes []Route
	for _, tmpl := range templates {
		item, ok := paths[tmpl].(map[string]any)
		if !ok {
			continue
		}
		pathParams, err := decodeList(item["parameters"], pathutil.Pointer([]string{"paths", tmpl, "parameters"}))
		if err != nil {
			return nil, err
		}
		for _, method := range httputil.Methods {
			op, ok := item[method].(map[string]any)
			if !ok {
				continue
			}
			opParams, err := decodeList(op["parameters"], pathutil.Pointer([]string{"paths", tmpl, method, "parameters"}))
			if err != nil {
				return nil, err
			}
			merged, err := f.mergeParameters(pathParams, opParams)
			if err != nil {
				return nil, fmt.Errorf("paramvalidator: %s %s: %w", method, tmpl, err)
			}

			consumes := globalConsumes
			if _, set := op["consumes"]; set {
				consumes = stringSlice(op["consumes"])
			}
			opID, _ := op["operationId"].(string)
			routes = append(routes, Route{
				Method:      method,
				Path:        tmpl,
				OperationID: opID,
				Consumes:    consumes,
				Parameters:  merged,
			})
		}
	}
	return routes, nil
}

// Route returns the operation of method at the path template path.
func (f *Factory) Route(method, path string) (Route, error) {
	routes, err := f.Routes()
	if err != nil {
		return Route{}, err
	}
	method = strings.ToLower(method)
	for _, r := range routes {
		if r.Method == method && r.Path == path {
			return r, nil
		}
	}
	return Route{}, fmt.Errorf("paramvalidator: no operation %s %s in the document", method, path)
}

// mergeParameters keys declarations by location and name. Path-level
// declarations keep their position unless an operation declaration
// replaces them; remaining operation declarations follow in order.
func (f *Factory) mergeParameters(pathParams, opParams []parameter.Declaration) ([]parameter.Declaration, error) {
	merged := make([]parameter.Declaration, 0, len(pathParams)+len(opParams))
	index := make(map[string]int, len(pathParams)+len(opParams))
	for _, list := range [][]parameter.Declaration{pathParams, opParams} {
		for _, decl := range list {
			key, err := f.paramKey(decl)
			if err != nil {
				return nil, err
			}
			if i, seen := index[key]; seen {
				merged[i] = decl
				continue
			}
			index[key] = len(merged)
			merged = append(merged, decl)
		}
	}
	return merged, nil
}

func (f *Factory) paramKey(decl parameter.Declaration) (string, error) {
	p, _, err := f.resolve(decl)
	if err != nil {
		return "", err
	}
	return string(p.In) + ":" + p.Name, nil
}

// decodeList decodes a "parameters" array. where locates it in errors.
func decodeList(v any, where string) ([]parameter.Declaration, error) {
	if v == nil {
		return nil, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("paramvalidator: %s: parameters must be a list, got %T", where, v)
	}
	decls := make([]parameter.Declaration, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("paramvalidator: %s/%d: parameter must be an object, got %T", where, i, item)
		}
		decl, err := parameter.Decode(m)
		if err != nil {
			return nil, fmt.Errorf("paramvalidator: %s/%d: %w", where, i, err)
		}
		decls = append(decls, decl)
	}
	return decls, nil
}

func stringSlice(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
