// Package engine adapts github.com/santhosh-tekuri/jsonschema/v6 to the
// shape the parameter validators need: compile a generic schema document
// once, then run it any number of times and get back a flat list of
// violations.
//
// Schemas are compiled as draft-04 with every violation collected. Swagger
// formats the engine does not know are registered leniently.
package engine

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/erraggy/oasparams/internal/pathutil"
)

const (
	// resourceBase is the location auxiliary documents are registered under
	// when their identifier is not an absolute URL.
	resourceBase = "mem:///oasparams/"
	// schemaLocation is where the compiled schema itself is registered.
	schemaLocation = resourceBase + "parameter.json"
)

var printer = message.NewPrinter(language.English)

// Violation is one failed check.
type Violation struct {
	// SchemaPath locates the failing keyword, e.g. "#/properties/id/minLength".
	// Keywords inside auxiliary documents are prefixed with the document
	// identifier, e.g. "common#/definitions/Tag/maxLength".
	SchemaPath string
	// InstancePath is the JSON pointer of the offending value, e.g. "/id".
	InstancePath string
	Keyword      string
	Message      string
	// Data is the offending value.
	Data any
}

// Compiled is a schema ready to run.
type Compiled struct {
	schema *jsonschema.Schema
}

// Resources holds auxiliary documents already converted for the engine, so
// that compiling many schemas against them does not repeat the conversion.
// A Resources is read-only once built and may be shared between goroutines.
type Resources struct {
	models map[string]any
}

// NewResources converts docs, which map identifiers to the auxiliary
// documents a schema may reference as "<id>#/<pointer>". A trailing '#' on
// an identifier is ignored; nil documents are skipped.
func NewResources(docs map[string]any) (*Resources, error) {
	r := &Resources{models: make(map[string]any, len(docs))}
	for id, doc := range docs {
		if doc == nil {
			continue
		}
		model, err := toModel(doc)
		if err != nil {
			return nil, fmt.Errorf("engine: converting resource %q: %w", id, err)
		}
		r.models[resourceURL(id)] = model
	}
	return r, nil
}

// Compile compiles schema against resources, which may be nil.
func Compile(schema map[string]any, resources *Resources) (*Compiled, error) {
	c := jsonschema.NewCompiler()
	c.DefaultDraft(jsonschema.Draft4)
	registerFormats(c)

	if resources != nil {
		for loc, model := range resources.models {
			if err := c.AddResource(loc, model); err != nil {
				return nil, fmt.Errorf("engine: adding resource %q: %w", strings.TrimPrefix(loc, resourceBase), err)
			}
		}
	}

	model, err := toModel(schema)
	if err != nil {
		return nil, fmt.Errorf("engine: converting schema: %w", err)
	}
	if err := c.AddResource(schemaLocation, model); err != nil {
		return nil, fmt.Errorf("engine: adding schema: %w", err)
	}
	compiled, err := c.Compile(schemaLocation)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	return &Compiled{schema: compiled}, nil
}

// Run validates instance and returns every violation, ordered by instance
// path then schema path. A valid instance yields nil.
func (c *Compiled) Run(instance any) []Violation {
	model, err := toModel(instance)
	if err != nil {
		return []Violation{{
			Keyword: "type",
			Message: fmt.Sprintf("value is not representable as JSON: %v", err),
			Data:    instance,
		}}
	}

	err = c.schema.Validate(model)
	if err == nil {
		return nil
	}
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []Violation{{Message: err.Error(), Data: instance}}
	}

	var out []Violation
	collect(verr, model, &out)
	slices.SortStableFunc(out, func(a, b Violation) int {
		if c := strings.Compare(a.InstancePath, b.InstancePath); c != 0 {
			return c
		}
		return strings.Compare(a.SchemaPath, b.SchemaPath)
	})
	return out
}

// collect appends the leaves of the cause tree.
func collect(verr *jsonschema.ValidationError, instance any, out *[]Violation) {
	if len(verr.Causes) > 0 {
		for _, cause := range verr.Causes {
			collect(cause, instance, out)
		}
		return
	}

	var keywordPath []string
	var msg string
	if verr.ErrorKind != nil {
		keywordPath = verr.ErrorKind.KeywordPath()
		msg = verr.ErrorKind.LocalizedString(printer)
	} else {
		msg = verr.LocalizedError(printer)
	}

	v := Violation{
		SchemaPath:   schemaPath(verr.SchemaURL, keywordPath),
		InstancePath: pathutil.Pointer(verr.InstanceLocation),
		Message:      msg,
	}
	if len(keywordPath) > 0 {
		v.Keyword = keywordPath[len(keywordPath)-1]
	}
	if data, _, ok := pathutil.Lookup(instance, verr.InstanceLocation); ok {
		v.Data = plain(data)
	}
	*out = append(*out, v)
}

// schemaPath renders a schema URL plus keyword path as "<id>#/<pointer>",
// omitting the identifier for the compiled schema itself.
func schemaPath(schemaURL string, keywordPath []string) string {
	if schemaURL == "" {
		return ""
	}
	doc, fragment, _ := strings.Cut(schemaURL, "#")
	var b strings.Builder
	if doc != schemaLocation {
		b.WriteString(strings.TrimPrefix(doc, resourceBase))
	}
	b.WriteByte('#')
	b.WriteString(fragment)
	for _, kw := range keywordPath {
		b.WriteByte('/')
		b.WriteString(pathutil.Escape(kw))
	}
	return b.String()
}

// resourceURL places an identifier under resourceBase unless it is already
// an absolute URL.
func resourceURL(id string) string {
	id = strings.TrimSuffix(id, "#")
	if u, err := url.Parse(id); err == nil && u.IsAbs() {
		return id
	}
	return resourceBase + id
}
