package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/erraggy/oasparams/internal/cliutil"
)

// RoutesFlags contains flags for the routes command
type RoutesFlags struct {
	Method   string
	Format   string
	LogLevel string
}

// RouteEntry is one operation in the structured output of the routes command.
type RouteEntry struct {
	Method      string   `json:"method" yaml:"method"`
	Path        string   `json:"path" yaml:"path"`
	OperationID string   `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Consumes    []string `json:"consumes,omitempty" yaml:"consumes,omitempty"`
	Parameters  []string `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// SetupRoutesFlags creates and configures a FlagSet for the routes command.
func SetupRoutesFlags() (*flag.FlagSet, *RoutesFlags) {
	fs := flag.NewFlagSet("routes", flag.ContinueOnError)
	flags := &RoutesFlags{}

	fs.StringVar(&flags.Method, "method", "", "only list operations with this method")
	fs.StringVar(&flags.Format, "format", cliutil.FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.LogLevel, "log-level", "", "log level: debug, info, warn, or error")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasparams routes [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "List the operations of a Swagger 2.0 document with their merged parameters.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasparams routes swagger.yaml\n")
		cliutil.Writef(fs.Output(), "  oasparams routes --method post --format json swagger.yaml\n")
	}

	return fs, flags
}

// HandleRoutes executes the routes command
func HandleRoutes(args []string) error {
	return runRoutes(args, os.Stdout, os.Stderr)
}

func runRoutes(args []string, stdout, stderr io.Writer) error {
	fs, flags := SetupRoutesFlags()
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("routes command requires exactly one file path or '-' for stdin")
	}
	if err := cliutil.ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	logger, err := NewLogger(stderr, flags.LogLevel)
	if err != nil {
		return err
	}
	f, err := newFactory(fs.Arg(0), nil, logger)
	if err != nil {
		return err
	}
	routes, err := f.Routes()
	if err != nil {
		return err
	}

	entries := make([]RouteEntry, 0, len(routes))
	for _, r := range routes {
		if flags.Method != "" && !strings.EqualFold(r.Method, flags.Method) {
			continue
		}
		entries = append(entries, RouteEntry{
			Method:      r.Method,
			Path:        r.Path,
			OperationID: r.OperationID,
			Consumes:    r.Consumes,
			Parameters:  r.ParameterLabels(),
		})
	}

	if flags.Format != cliutil.FormatText {
		return cliutil.WriteStructured(stdout, entries, flags.Format)
	}
	for _, e := range entries {
		cliutil.Writef(stdout, "%-7s %s", strings.ToUpper(e.Method), e.Path)
		if e.OperationID != "" {
			cliutil.Writef(stdout, " (%s)", e.OperationID)
		}
		cliutil.Writef(stdout, "\n")
		for _, p := range e.Parameters {
			cliutil.Writef(stdout, "        %s\n", p)
		}
	}
	return nil
}
