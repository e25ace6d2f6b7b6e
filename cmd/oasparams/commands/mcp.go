package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oasparams/internal/cliutil"
	"github.com/erraggy/oasparams/internal/mcpserver"
)

// HandleMCP runs the MCP server over stdio until the client disconnects or
// the process is interrupted. Logs go to stderr; stdout carries the protocol.
func HandleMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	logLevel := fs.String("log-level", "", "log level: debug, info, warn, or error")
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasparams mcp [flags]\n\n")
		cliutil.Writef(fs.Output(), "Serve the validate_parameters and list_routes tools over the Model Context Protocol on stdio.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	logger, err := NewLogger(os.Stderr, *logLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
