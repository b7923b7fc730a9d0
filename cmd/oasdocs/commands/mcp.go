package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/oasdocs/oasdocs/internal/mcpserver"
)

// SetupMCPFlags creates and configures a FlagSet for the mcp command.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oasdocs mcp\n\n")
		Writef(output, "Run a Model Context Protocol server over stdio.\n\n")
		Writef(output, "Tools: toc, resolve, node, tag_groups\n\n")
		Writef(output, "Configuration is read from OASDOCS_* environment variables, for example\n")
		Writef(output, "OASDOCS_HIDE_INTERNAL=true or OASDOCS_CACHE_FILE_TTL=5m.\n")
		Writef(output, "\nExample client configuration:\n")
		Writef(output, "  {\"mcpServers\": {\"oasdocs\": {\"command\": \"oasdocs\", \"args\": [\"mcp\"]}}}\n")
	}

	return fs
}

// HandleMCP executes the mcp command
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
