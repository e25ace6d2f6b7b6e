package parameter

import (
	"fmt"

	"github.com/erraggy/oasparams/oaserrors"
)

// Location is where a parameter is carried in a request ("in").
type Location string

// Parameter locations (Swagger 2.0).
const (
	LocationQuery    Location = "query"
	LocationPath     Location = "path"
	LocationHeader   Location = "header"
	LocationFormData Location = "formData"
	LocationBody     Location = "body"
)

// Valid reports whether l is one of the Swagger 2.0 parameter locations.
func (l Location) Valid() bool {
	switch l {
	case LocationQuery, LocationPath, LocationHeader, LocationFormData, LocationBody:
		return true
	default:
		return false
	}
}

// Declared parameter types. Besides the JSON-Schema primitives, Swagger
// declarations in the wild use the format names long, float, double, byte,
// date and dateTime as types; they are accepted and coerced accordingly.
const (
	TypeString   = "string"
	TypeInteger  = "integer"
	TypeNumber   = "number"
	TypeBoolean  = "boolean"
	TypeArray    = "array"
	TypeObject   = "object"
	TypeFile     = "file"
	TypeLong     = "long"
	TypeFloat    = "float"
	TypeDouble   = "double"
	TypeByte     = "byte"
	TypeDate     = "date"
	TypeDateTime = "dateTime"
)

// Collection formats for array parameters.
const (
	CollectionCSV   = "csv"
	CollectionSSV   = "ssv"
	CollectionTSV   = "tsv"
	CollectionPipes = "pipes"
	CollectionMulti = "multi"
)

// Separator returns the delimiter a collection format splits on.
// An empty format defaults to csv. ok is false for unknown formats.
func Separator(format string) (sep string, ok bool) {
	switch format {
	case "", CollectionCSV:
		return ",", true
	case CollectionSSV:
		return " ", true
	case CollectionTSV:
		return "\t", true
	case CollectionPipes:
		return "|", true
	case CollectionMulti:
		return "&", true
	default:
		return "", false
	}
}

// Declaration is either a Reference to a parameter defined elsewhere or a
// direct *Parameter definition.
type Declaration interface {
	isDeclaration()
}

// Reference points at a parameter or schema declared elsewhere in the
// registry, e.g. "#/parameters/id" or "common#/parameters/trace".
type Reference struct {
	Pointer string
}

func (Reference) isDeclaration() {}

// Parameter is a direct parameter definition.
//
// Declarations with a location (In) describe one request input. Declarations
// without one are plain schemas, typically the target of a body reference,
// and are validated as-is.
type Parameter struct {
	Name        string
	In          Location
	Description string
	Required    bool

	Type             string
	Format           string
	AllowEmptyValue  bool
	Items            *Items
	CollectionFormat string
	Default          any
	Maximum          *float64
	ExclusiveMaximum bool
	Minimum          *float64
	ExclusiveMinimum bool
	MaxLength        *int
	MinLength        *int
	Pattern          string
	MaxItems         *int
	MinItems         *int
	UniqueItems      bool
	Enum             []any
	MultipleOf       *float64

	// Schema is the body schema of a body parameter, either inline or a
	// {"$ref": ...} object.
	Schema map[string]any

	// Extra keeps every other key of the decoded declaration, including
	// x- extensions and JSON-Schema keywords of location-less declarations.
	Extra map[string]any
}

func (*Parameter) isDeclaration() {}

// Items describes the elements of an array parameter.
type Items struct {
	Type             string
	Format           string
	Items            *Items
	CollectionFormat string
	Default          any
	Maximum          *float64
	ExclusiveMaximum bool
	Minimum          *float64
	ExclusiveMinimum bool
	MaxLength        *int
	MinLength        *int
	Pattern          string
	MaxItems         *int
	MinItems         *int
	UniqueItems      bool
	Enum             []any
	MultipleOf       *float64
	Extra            map[string]any
}

// Located reports whether the declaration carries a location.
func (p *Parameter) Located() bool {
	return p.In != ""
}

// Validate checks the invariants a declaration must hold before a validator
// can be built from it.
func (p *Parameter) Validate() error {
	if p == nil {
		return &oaserrors.ConfigError{Option: "parameter", Message: "declaration is nil"}
	}
	if !p.Located() {
		return nil
	}
	if !p.In.Valid() {
		return &oaserrors.ConfigError{
			Option:  "in",
			Value:   string(p.In),
			Message: "unsupported parameter location",
		}
	}
	if p.Name == "" {
		return &oaserrors.ConfigError{
			Option:  "name",
			Message: fmt.Sprintf("%s parameter has no name", p.In),
		}
	}
	if _, ok := Separator(p.CollectionFormat); !ok {
		return &oaserrors.ConfigError{
			Option:  "collectionFormat",
			Value:   p.CollectionFormat,
			Message: fmt.Sprintf("parameter %q has an unknown collection format", p.Name),
		}
	}
	if p.CollectionFormat == CollectionMulti && p.In != LocationQuery && p.In != LocationFormData {
		return &oaserrors.ConfigError{
			Option:  "collectionFormat",
			Value:   p.CollectionFormat,
			Message: fmt.Sprintf("parameter %q: multi is only valid for query and formData parameters", p.Name),
		}
	}
	return nil
}
