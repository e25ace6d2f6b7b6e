package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/erraggy/oasparams"
	"github.com/erraggy/oasparams/cmd/oasparams/commands"
)

// commandNames lists the subcommands for typo suggestions.
var commandNames = []string{"validate", "routes", "mcp", "version", "help"}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches a subcommand and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return 1
	}

	var err error
	switch command := args[0]; command {
	case "version", "-v", "--version":
		_, _ = fmt.Fprintf(stdout, "oasparams %s\n", oasparams.Version())
		return 0
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	case "validate":
		err = commands.HandleValidate(args[1:])
	case "routes":
		err = commands.HandleRoutes(args[1:])
	case "mcp":
		err = commands.HandleMCP(args[1:])
	default:
		_, _ = fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			_, _ = fmt.Fprintf(stderr, "Did you mean '%s'?\n", s)
		}
		_, _ = fmt.Fprintln(stderr)
		printUsage(stderr)
		return 1
	}

	if err != nil {
		if !errors.Is(err, commands.ErrValidationFailed) {
			_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// suggestCommand returns the closest command within edit distance 2, or "".
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := levenshtein(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func printUsage(w io.Writer) {
	_, _ = fmt.Fprintln(w, `oasparams - Swagger 2.0 request parameter validation

Usage:
  oasparams <command> [options]

Commands:
  validate    Validate parameter values against a document's declarations
  routes      List operations with their merged parameters
  mcp         Serve the validation tools over the Model Context Protocol
  version     Show version information
  help        Show this help message

Examples:
  oasparams validate --ref '#/parameters/limit' --param limit=20 swagger.yaml
  oasparams validate --method get --path /pets --param tags=a,b swagger.yaml
  oasparams routes --format json swagger.yaml

Environment:
  OASPARAMS_LOG_LEVEL   default log level (debug, info, warn, error)

Run 'oasparams <command> --help' for more information on a command.`)
}
