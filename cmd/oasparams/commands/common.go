// Package commands provides CLI command handlers for oasparams.
package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/erraggy/oasparams/loader"
	"github.com/erraggy/oasparams/paramvalidator"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// LogLevelEnv names the environment variable holding the default log level.
const LogLevelEnv = "OASPARAMS_LOG_LEVEL"

// ErrValidationFailed is returned by a command whose input data failed
// validation. The reports have already been written.
var ErrValidationFailed = errors.New("validation failed")

// FormatSpecPath returns a display-friendly path for the document.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// NewLogger builds a text logger writing to w. An empty level falls back to
// OASPARAMS_LOG_LEVEL and then to warn.
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	if level == "" {
		level = os.Getenv(LogLevelEnv)
	}
	if level == "" {
		level = "warn"
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}

// schemaFlags collects repeated --schema id=path flags.
type schemaFlags map[string]string

func (s schemaFlags) String() string {
	pairs := make([]string, 0, len(s))
	for id, path := range s {
		pairs = append(pairs, id+"="+path)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}

func (s schemaFlags) Set(v string) error {
	id, path, ok := strings.Cut(v, "=")
	if !ok || id == "" || path == "" {
		return fmt.Errorf("expected id=path, got %q", v)
	}
	s[id] = path
	return nil
}

// paramFlags collects repeated --param name=value flags. A name given more
// than once collects its values into a list, as multi collection format
// parameters arrive.
type paramFlags map[string]any

func (p paramFlags) String() string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}

func (p paramFlags) Set(v string) error {
	name, value, ok := strings.Cut(v, "=")
	if !ok || name == "" {
		return fmt.Errorf("expected name=value, got %q", v)
	}
	switch prev := p[name].(type) {
	case nil:
		p[name] = value
	case []any:
		p[name] = append(prev, value)
	default:
		p[name] = []any{prev, value}
	}
	return nil
}

// newFactory loads the API document and the auxiliary schemas.
func newFactory(specPath string, schemas map[string]string, logger *slog.Logger) (*paramvalidator.Factory, error) {
	doc, err := loader.LoadFile(specPath)
	if err != nil {
		return nil, err
	}
	aux, err := loader.LoadSchemas(schemas)
	if err != nil {
		return nil, err
	}
	return paramvalidator.New(
		paramvalidator.WithAPI(doc.Data),
		paramvalidator.WithSchemas(aux),
		paramvalidator.WithLogger(paramvalidator.NewSlogAdapter(logger)),
	)
}

// decodeData reads the --data flag: inline JSON or YAML, or "@file" to
// load a file.
func decodeData(arg string) (map[string]any, error) {
	if arg == "" {
		return make(map[string]any), nil
	}
	var (
		doc *loader.Document
		err error
	)
	if path, ok := strings.CutPrefix(arg, "@"); ok {
		doc, err = loader.LoadFile(path)
	} else {
		doc, err = loader.LoadBytes([]byte(arg), "data")
	}
	if err != nil {
		return nil, fmt.Errorf("reading --data: %w", err)
	}
	return doc.Data, nil
}
