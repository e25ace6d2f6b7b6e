// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasparams validation as MCP tools over stdio.
package mcpserver

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasparams"
	"github.com/erraggy/oasparams/paramvalidator"
)

const serverInstructions = `oasparams MCP server: validates request parameters against Swagger 2.0 parameter declarations.

Documents are given as a file path or inline JSON/YAML content. Auxiliary schema documents can be registered by identifier and referenced as "<id>#/pointer".

Configuration (environment variables):
- OASPARAMS_CACHE_ENABLED (default: true): cache decoded documents
- OASPARAMS_CACHE_MAX_SIZE (default: 10): maximum cached documents
- OASPARAMS_CACHE_TTL (default: 15m): cache entry lifetime
- OASPARAMS_MAX_INLINE_SIZE (default: 10 MiB): limit for inline content
- OASPARAMS_ROUTE_LIMIT (default: 100): default page size of list_routes`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		docCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasparams", Version: oasparams.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate_parameters",
		Description: "Validate request parameter values against Swagger 2.0 parameter declarations. Give either one declaration (a parameter object or {\"$ref\": \"#/parameters/name\"}) or an operation by method and path template to validate all of its parameters. With method and url (a request target such as /pets/42?limit=5) the operation is matched from the target and its path and query values are validated together with data. Values are coerced from strings the way they arrive in a request (numbers, booleans, collection formats, dates) and the coerced data is returned. Failures are reported per parameter with the schema location of each violation.",
	}, handleValidateParameters)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_routes",
		Description: "List the operations of a Swagger 2.0 document with their effective consumes and merged path-level and operation-level parameters. Filter by method or path. Use offset/limit to paginate; the default limit is configurable via OASPARAMS_ROUTE_LIMIT.",
	}, handleListRoutes)
}

// newFactory loads the API document and any auxiliary schemas.
func newFactory(spec documentInput, schemas []schemaInput) (*paramvalidator.Factory, error) {
	api, err := spec.load()
	if err != nil {
		return nil, err
	}
	opts := []paramvalidator.Option{
		paramvalidator.WithAPI(api),
		paramvalidator.WithLogger(paramvalidator.NewSlogAdapter(slog.Default())),
	}
	for _, s := range schemas {
		doc, err := s.Document.load()
		if err != nil {
			return nil, err
		}
		opts = append(opts, paramvalidator.WithSchema(s.ID, doc))
	}
	return paramvalidator.New(opts...)
}

// paginate applies offset/limit pagination to a slice. A non-positive
// limit defaults to cfg.RouteLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.RouteLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// pathPattern matches absolute filesystem paths so they are not leaked to
// MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
