package paramvalidator

import (
	"fmt"

	"github.com/erraggy/oasparams/registry"
)

// Option is a functional option for configuring a Factory.
type Option func(*config) error

// config holds the configuration for a Factory.
type config struct {
	api     map[string]any
	schemas map[string]any
	logger  Logger
}

func defaultConfig() *config {
	return &config{
		schemas: make(map[string]any),
		logger:  NopLogger{},
	}
}

// WithAPI sets the root API document that "#/..." references resolve
// against. Its definitions are attached to every compiled schema.
// Default: an empty document.
func WithAPI(doc map[string]any) Option {
	return func(c *config) error {
		if doc == nil {
			return fmt.Errorf("paramvalidator: api document cannot be nil")
		}
		c.api = doc
		return nil
	}
}

// WithSchema registers an auxiliary document under id, reachable through
// references of the form "<id>#/<pointer>".
func WithSchema(id string, doc any) Option {
	return func(c *config) error {
		if id == "" || id == registry.RootID {
			return fmt.Errorf("paramvalidator: schema identifier %q is reserved", id)
		}
		if doc == nil {
			return fmt.Errorf("paramvalidator: schema %q cannot be nil", id)
		}
		c.schemas[id] = doc
		return nil
	}
}

// WithSchemas registers several auxiliary documents keyed by identifier.
func WithSchemas(schemas map[string]any) Option {
	return func(c *config) error {
		for id, doc := range schemas {
			if err := WithSchema(id, doc)(c); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithLogger sets the logger. Default: NopLogger.
func WithLogger(l Logger) Option {
	return func(c *config) error {
		if l == nil {
			return fmt.Errorf("paramvalidator: logger cannot be nil")
		}
		c.logger = l
		return nil
	}
}
