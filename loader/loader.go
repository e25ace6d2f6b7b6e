// Package loader reads the root API document and auxiliary schema documents
// from JSON or YAML into the generic maps the registry holds.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasparams/oaserrors"
)

// MaxFileSize is the default limit on the size of a loaded document.
const MaxFileSize int64 = 10 * 1024 * 1024 // 10 MiB

// Format is the encoding of a document.
type Format string

// Supported formats.
const (
	FormatUnknown Format = "unknown"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
)

// Document is a decoded document.
type Document struct {
	// Source is the file path or name the document was read from.
	Source string
	Format Format
	// Size is the number of bytes read.
	Size int64
	Data map[string]any
}

// Option configures loading.
type Option func(*config) error

type config struct {
	maxSize int64
}

// WithMaxSize overrides MaxFileSize. Zero restores the default.
func WithMaxSize(n int64) Option {
	return func(c *config) error {
		if n < 0 {
			return fmt.Errorf("loader: max size cannot be negative")
		}
		c.maxSize = n
		return nil
	}
}

func newConfig(opts []Option) (*config, error) {
	c := &config{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.maxSize == 0 {
		c.maxSize = MaxFileSize
	}
	return c, nil
}

// LoadFile reads and decodes the document at path. The path "-" reads
// standard input.
func LoadFile(path string, opts ...Option) (*Document, error) {
	if path == "-" {
		return Load(os.Stdin, "stdin", opts...)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: failed to read file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Load(f, path, opts...)
}

// Load reads and decodes a document from r. name is used for format
// detection by extension and in errors.
func Load(r io.Reader, name string, opts ...Option) (*Document, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(io.LimitReader(r, cfg.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("loader: failed to read %s: %w", name, err)
	}
	if int64(len(data)) > cfg.maxSize {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        cfg.maxSize,
			Message:      fmt.Sprintf("%s exceeds the maximum document size", name),
		}
	}
	return decode(data, name)
}

// LoadBytes decodes an in-memory document.
func LoadBytes(data []byte, name string, opts ...Option) (*Document, error) {
	return Load(bytes.NewReader(data), name, opts...)
}

// LoadSchemas loads auxiliary documents keyed by identifier from the given
// paths.
func LoadSchemas(paths map[string]string, opts ...Option) (map[string]any, error) {
	schemas := make(map[string]any, len(paths))
	for id, path := range paths {
		doc, err := LoadFile(path, opts...)
		if err != nil {
			return nil, fmt.Errorf("loader: schema %q: %w", id, err)
		}
		schemas[id] = doc.Data
	}
	return schemas, nil
}

// DetectFormat picks the format from the extension of name, falling back
// to the content: JSON objects start with '{'.
func DetectFormat(name string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return FormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return FormatJSON
	}
	return FormatYAML
}

func decode(data []byte, name string) (*Document, error) {
	format := DetectFormat(name, data)
	if format == FormatUnknown {
		return nil, &oaserrors.ParseError{Path: name, Message: "document is empty"}
	}

	var doc any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			perr := &oaserrors.ParseError{Path: name, Message: "invalid JSON", Cause: err}
			var syntax *json.SyntaxError
			if errors.As(err, &syntax) {
				perr.Line, perr.Column = position(data, syntax.Offset)
			}
			return nil, perr
		}
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &oaserrors.ParseError{Path: name, Message: "invalid YAML", Cause: err}
		}
	}

	root, ok := stringKeys(doc).(map[string]any)
	if !ok {
		return nil, &oaserrors.ParseError{
			Path:    name,
			Message: fmt.Sprintf("document root must be an object, got %T", doc),
		}
	}
	return &Document{
		Source: name,
		Format: format,
		Size:   int64(len(data)),
		Data:   root,
	}, nil
}

// stringKeys rewrites YAML mappings with non-string keys, such as unquoted
// response codes, into map[string]any. Keys are rendered with fmt.Sprint.
func stringKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = stringKeys(val)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = stringKeys(val)
		}
		return out
	case []any:
		for i, val := range t {
			t[i] = stringKeys(val)
		}
		return t
	default:
		return v
	}
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, offset int64) (line, column int) {
	if offset < 0 {
		return 0, 0
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	prefix := data[:offset]
	line = bytes.Count(prefix, []byte{'\n'}) + 1
	column = int(offset) - bytes.LastIndexByte(prefix, '\n')
	return line, column
}
