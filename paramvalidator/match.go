package paramvalidator

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// pathTemplate matches concrete request paths against one path template
// such as "/pets/{id}".
type pathTemplate struct {
	template string
	regex    *regexp.Regexp
	names    []string
	// specificity counts literal characters minus parameters; higher
	// values are tried first.
	specificity int
}

func compileTemplate(template string) (*pathTemplate, error) {
	if template == "" {
		return nil, fmt.Errorf("path template cannot be empty")
	}

	var pattern strings.Builder
	pattern.WriteString("^")
	var names []string
	specificity := 0

	for i := 0; i < len(template); {
		if template[i] != '{' {
			c := template[i]
			pattern.WriteString(regexp.QuoteMeta(string(c)))
			if c != '/' {
				specificity++
			}
			i++
			continue
		}

		end := strings.IndexByte(template[i:], '}')
		if end == -1 {
			return nil, fmt.Errorf("unclosed path parameter at position %d in template %q", i, template)
		}
		name := template[i+1 : i+end]
		if name == "" {
			return nil, fmt.Errorf("empty path parameter at position %d in template %q", i, template)
		}
		for _, existing := range names {
			if existing == name {
				return nil, fmt.Errorf("duplicate path parameter %q in template %q", name, template)
			}
		}
		names = append(names, name)
		pattern.WriteString("([^/]+)")
		specificity--
		i += end + 1
	}
	pattern.WriteString("$")

	regex, err := regexp.Compile(pattern.String())
	if err != nil {
		return nil, fmt.Errorf("failed to compile path pattern for template %q: %w", template, err)
	}
	return &pathTemplate{template: template, regex: regex, names: names, specificity: specificity}, nil
}

// match reports whether path fits the template and returns the unescaped
// path parameter values.
func (t *pathTemplate) match(path string) (map[string]any, bool) {
	groups := t.regex.FindStringSubmatch(path)
	if groups == nil {
		return nil, false
	}
	values := make(map[string]any, len(t.names))
	for i, name := range t.names {
		v, err := url.PathUnescape(groups[i+1])
		if err != nil {
			return nil, false
		}
		values[name] = v
	}
	return values, true
}

// MatchRequest finds the route of method whose path template matches the
// request target, for example "/pets/42?limit=5". It returns the route and
// the target's path and query parameter values keyed by name; a query key
// given more than once yields a list. Literal templates win over
// parameterized ones.
func MatchRequest(routes []Route, method, target string) (Route, map[string]any, error) {
	u, err := url.Parse(target)
	if err != nil {
		return Route{}, nil, fmt.Errorf("paramvalidator: invalid request target %q: %w", target, err)
	}
	method = strings.ToLower(method)

	type candidate struct {
		route Route
		tmpl  *pathTemplate
	}
	var candidates []candidate
	for _, r := range routes {
		if r.Method != method {
			continue
		}
		tmpl, err := compileTemplate(r.Path)
		if err != nil {
			return Route{}, nil, fmt.Errorf("paramvalidator: %s %s: %w", r.Method, r.Path, err)
		}
		candidates = append(candidates, candidate{route: r, tmpl: tmpl})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i].tmpl, candidates[j].tmpl
		if a.specificity != b.specificity {
			return a.specificity > b.specificity
		}
		return len(a.template) > len(b.template)
	})

	for _, c := range candidates {
		values, ok := c.tmpl.match(u.EscapedPath())
		if !ok {
			continue
		}
		for key, vals := range u.Query() {
			if _, taken := values[key]; taken {
				continue
			}
			if len(vals) == 1 {
				values[key] = vals[0]
				continue
			}
			list := make([]any, len(vals))
			for i, v := range vals {
				list[i] = v
			}
			values[key] = list
		}
		return c.route, values, nil
	}
	return Route{}, nil, fmt.Errorf("paramvalidator: no operation matches %s %s", method, u.Path)
}

// Match is MatchRequest over the routes of the root document.
func (f *Factory) Match(method, target string) (Route, map[string]any, error) {
	routes, err := f.Routes()
	if err != nil {
		return Route{}, nil, err
	}
	return MatchRequest(routes, method, target)
}
