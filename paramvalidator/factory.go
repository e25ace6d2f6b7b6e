package paramvalidator

import (
	"fmt"
	"slices"

	"github.com/erraggy/oasparams/internal/engine"
	"github.com/erraggy/oasparams/oaserrors"
	"github.com/erraggy/oasparams/parameter"
	"github.com/erraggy/oasparams/registry"
)

// Factory builds Validators from parameter declarations. It holds the
// registry references resolve against and is safe for concurrent use.
type Factory struct {
	registry  *registry.Registry
	resources *engine.Resources
	logger    Logger
}

// New creates a Factory.
//
//	f, err := paramvalidator.New(
//	    paramvalidator.WithAPI(doc),
//	    paramvalidator.WithSchema("common", commonDoc),
//	)
func New(opts ...Option) (*Factory, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	reg, err := registry.New(cfg.api, cfg.schemas)
	if err != nil {
		return nil, fmt.Errorf("paramvalidator: %w", err)
	}
	resources, err := engine.NewResources(reg.Auxiliary())
	if err != nil {
		return nil, fmt.Errorf("paramvalidator: %w", &oaserrors.CompileError{
			Message: "auxiliary schema rejected",
			Cause:   err,
		})
	}
	return &Factory{registry: reg, resources: resources, logger: cfg.logger}, nil
}

// Registry returns the registry the factory resolves references against.
func (f *Factory) Registry() *registry.Registry {
	return f.registry
}

// Make builds a validator for one declaration. consumes lists the media
// types of the enclosing operation and is forwarded to file coercion.
//
// Make fails with an *oaserrors.ReferenceError when a reference cannot be
// resolved, an *oaserrors.ConfigError when the declaration is malformed and
// an *oaserrors.CompileError when the engine rejects the derived schema.
func (f *Factory) Make(decl parameter.Declaration, consumes ...string) (*Validator, error) {
	p, label, err := f.resolve(decl)
	if err != nil {
		return nil, err
	}

	schema := parameter.Normalize(p, f.registry.Definitions()).Map()
	compiled, err := engine.Compile(schema, f.resources)
	if err != nil {
		f.logger.Error("schema compilation failed", "parameter", label, "error", err)
		return nil, &oaserrors.CompileError{
			Parameter: label,
			Schema:    schema,
			Message:   "engine rejected schema",
			Cause:     err,
		}
	}

	f.logger.Debug("validator created", "parameter", label, "in", string(p.In))
	return &Validator{
		name:     label,
		param:    p,
		schema:   schema,
		compiled: compiled,
		coerce:   parameter.Coercion(p, consumes),
		logger:   f.logger.With("parameter", label),
	}, nil
}

// MakeAll builds one validator per declaration, in key order, using the
// route's consumes for every one of them.
func (f *Factory) MakeAll(decls map[string]parameter.Declaration, route Route) ([]*Validator, error) {
	keys := make([]string, 0, len(decls))
	for k := range decls {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	validators := make([]*Validator, 0, len(decls))
	for _, k := range keys {
		v, err := f.Make(decls[k], route.Consumes...)
		if err != nil {
			return nil, fmt.Errorf("paramvalidator: parameter %q: %w", k, err)
		}
		validators = append(validators, v)
	}
	return validators, nil
}

// MakeRoute builds validators for every parameter of a route, in the
// route's parameter order.
func (f *Factory) MakeRoute(route Route) ([]*Validator, error) {
	validators := make([]*Validator, 0, len(route.Parameters))
	for _, decl := range route.Parameters {
		v, err := f.Make(decl, route.Consumes...)
		if err != nil {
			return nil, fmt.Errorf("paramvalidator: %s %s: %w", route.Method, route.Path, err)
		}
		validators = append(validators, v)
	}
	return validators, nil
}

// resolve turns a declaration into a validated direct definition and the
// label reports use for it: the parameter name, or the reference pointer
// for location-less declarations.
func (f *Factory) resolve(decl parameter.Declaration) (*parameter.Parameter, string, error) {
	switch d := decl.(type) {
	case parameter.Reference:
		obj, err := f.registry.ResolveObject(d.Pointer)
		if err != nil {
			return nil, "", fmt.Errorf("paramvalidator: %w", err)
		}
		p, err := parameter.DecodeParameter(obj)
		if err != nil {
			return nil, "", fmt.Errorf("paramvalidator: %s: %w", d.Pointer, err)
		}
		label := p.Name
		if label == "" {
			label = d.Pointer
		}
		return p, label, nil
	case *parameter.Parameter:
		if err := d.Validate(); err != nil {
			return nil, "", fmt.Errorf("paramvalidator: %w", err)
		}
		return d, d.Name, nil
	default:
		return nil, "", &oaserrors.ConfigError{
			Option:  "parameter",
			Value:   fmt.Sprintf("%T", decl),
			Message: "unsupported declaration",
		}
	}
}
