package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/erraggy/oasparams"
	"github.com/erraggy/oasparams/internal/cliutil"
	"github.com/erraggy/oasparams/internal/httputil"
	"github.com/erraggy/oasparams/internal/options"
	"github.com/erraggy/oasparams/internal/pathutil"
	"github.com/erraggy/oasparams/parameter"
	"github.com/erraggy/oasparams/paramvalidator"
)

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	Schemas  schemaFlags
	Params   paramFlags
	Ref      string
	Method   string
	Path     string
	URL      string
	Data     string
	Consumes string
	Format   string
	Quiet    bool
	LogLevel string
}

// ValidateResult is the structured output of the validate command.
type ValidateResult struct {
	Valid      bool                          `json:"valid" yaml:"valid"`
	Validators int                           `json:"validators" yaml:"validators"`
	Data       map[string]any                `json:"data,omitempty" yaml:"data,omitempty"`
	Errors     []*paramvalidator.ErrorReport `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
// Returns the FlagSet and a ValidateFlags struct with bound flag variables.
func SetupValidateFlags() (*flag.FlagSet, *ValidateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &ValidateFlags{
		Schemas: make(schemaFlags),
		Params:  make(paramFlags),
	}

	fs.Var(flags.Schemas, "schema", "register an auxiliary schema document as id=path (repeatable)")
	fs.Var(flags.Params, "param", "parameter value as name=value (repeatable; repeated names form a list)")
	fs.StringVar(&flags.Ref, "ref", "", "validate a single declaration by reference, e.g. '#/parameters/limit'; a bare name means a root parameter")
	fs.StringVar(&flags.Method, "method", "", "validate every parameter of the operation with this method (requires --path)")
	fs.StringVar(&flags.Path, "path", "", "operation path template, e.g. /pets/{id} (requires --method)")
	fs.StringVar(&flags.URL, "url", "", "request target such as '/pets/42?limit=5'; selects the operation of --method and supplies its path and query values")
	fs.StringVar(&flags.Data, "data", "", "parameter values as a JSON or YAML object, or @file")
	fs.StringVar(&flags.Consumes, "consumes", "", "comma-separated media types for file parameters of --ref")
	fs.StringVar(&flags.Format, "format", cliutil.FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the validation result")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the validation result")
	fs.StringVar(&flags.LogLevel, "log-level", "", "log level: debug, info, warn, or error (default $"+LogLevelEnv+" or warn)")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasparams validate [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "Validate request parameter values against the parameter declarations of a Swagger 2.0 document.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasparams validate --ref '#/parameters/limit' --param limit=20 swagger.yaml\n")
		cliutil.Writef(fs.Output(), "  oasparams validate --method get --path /pets --param tags=a,b swagger.yaml\n")
		cliutil.Writef(fs.Output(), "  oasparams validate --method get --url '/pets/42?limit=5' swagger.yaml\n")
		cliutil.Writef(fs.Output(), "  oasparams validate --schema common=common.json --ref 'common#/parameters/trace' --param X-Trace=abc swagger.yaml\n")
		cliutil.Writef(fs.Output(), "  oasparams validate --method post --path /pets --data @request.json --format json swagger.yaml\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    All parameters are valid\n")
		cliutil.Writef(fs.Output(), "  1    Validation failed or the command could not run\n")
	}

	return fs, flags
}

// HandleValidate executes the validate command
func HandleValidate(args []string) error {
	return runValidate(args, os.Stdout, os.Stderr)
}

func runValidate(args []string, stdout, stderr io.Writer) error {
	fs, flags := SetupValidateFlags()
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("validate command requires exactly one file path or '-' for stdin")
	}
	specPath := fs.Arg(0)

	if err := cliutil.ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	byRoute := flags.Method != "" || flags.Path != "" || flags.URL != ""
	if err := options.ExactlyOne("validate command requires either --ref or --method with --path or --url", flags.Ref != "", byRoute); err != nil {
		return err
	}
	if byRoute && (flags.Method == "" || options.ExactlyOne("", flags.Path != "", flags.URL != "") != nil) {
		return fmt.Errorf("--method must be given with exactly one of --path or --url")
	}
	consumes := splitList(flags.Consumes)
	if err := httputil.CheckMediaTypes(consumes); err != nil {
		return fmt.Errorf("--consumes: %w", err)
	}

	logger, err := NewLogger(stderr, flags.LogLevel)
	if err != nil {
		return err
	}
	inline, err := decodeData(flags.Data)
	if err != nil {
		return err
	}

	startTime := time.Now()
	f, err := newFactory(specPath, flags.Schemas, logger)
	if err != nil {
		return err
	}

	data := make(map[string]any)
	var validators []*paramvalidator.Validator
	if byRoute {
		var route paramvalidator.Route
		route, err = findRoute(f, flags.Method, flags.Path, flags.URL, data)
		if err == nil {
			validators, err = f.MakeRoute(route)
		}
	} else {
		var v *paramvalidator.Validator
		v, err = f.Make(parameter.Reference{Pointer: expandRef(flags.Ref)}, consumes...)
		validators = []*paramvalidator.Validator{v}
	}
	if err != nil {
		return err
	}
	for name, value := range inline {
		data[name] = value
	}
	for name, value := range flags.Params {
		data[name] = value
	}

	result := ValidateResult{Validators: len(validators)}
	out, err := paramvalidator.ValidateAll(validators, data)
	if err != nil {
		var reports paramvalidator.Reports
		if !errors.As(err, &reports) {
			return err
		}
		result.Errors = reports
	} else {
		result.Valid = true
		result.Data = out
	}

	if flags.Format != cliutil.FormatText {
		if err := cliutil.WriteStructured(stdout, result, flags.Format); err != nil {
			return err
		}
	} else {
		writeValidateText(stdout, stderr, specPath, flags.Quiet, result, time.Since(startTime))
	}

	if !result.Valid {
		return ErrValidationFailed
	}
	return nil
}

// findRoute selects the operation by path template, or by request target
// whose path and query values are copied into data.
func findRoute(f *paramvalidator.Factory, method, path, target string, data map[string]any) (paramvalidator.Route, error) {
	if target == "" {
		return f.Route(method, path)
	}
	route, values, err := f.Match(method, target)
	if err != nil {
		return paramvalidator.Route{}, err
	}
	for name, value := range values {
		data[name] = value
	}
	return route, nil
}

func writeValidateText(stdout, stderr io.Writer, specPath string, quiet bool, result ValidateResult, elapsed time.Duration) {
	if !quiet {
		cliutil.Writef(stderr, "Swagger 2.0 Parameter Validator\n")
		cliutil.Writef(stderr, "===============================\n\n")
		cliutil.Writef(stderr, "oasparams version: %s\n", oasparams.Version())
		cliutil.Writef(stderr, "Specification: %s\n", FormatSpecPath(specPath))
		cliutil.Writef(stderr, "Parameters: %d\n", result.Validators)
		cliutil.Writef(stderr, "Total Time: %v\n\n", elapsed)
	}

	if !result.Valid {
		for _, report := range result.Errors {
			cliutil.Writef(stdout, "%s:\n", report.Parameter)
			for _, d := range report.Details {
				cliutil.Writef(stdout, "  %s\n", d.Message)
			}
		}
		if !quiet {
			cliutil.Writef(stderr, "\n✗ Validation failed: %d parameter(s)\n", len(result.Errors))
		}
		return
	}

	names := make([]string, 0, len(result.Data))
	for name := range result.Data {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cliutil.Writef(stdout, "%s = %v\n", name, result.Data[name])
	}
	if !quiet {
		cliutil.Writef(stderr, "\n✓ Validation passed\n")
	}
}

// expandRef turns a bare parameter name into a reference to the root
// document's parameters section.
func expandRef(ref string) string {
	if strings.Contains(ref, "#") || strings.HasPrefix(ref, "/") {
		return ref
	}
	return pathutil.ParameterRef(ref)
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
