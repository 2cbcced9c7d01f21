package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/martinmagala/repo2prompt/internal/logging"
	mcpserver "github.com/martinmagala/repo2prompt/internal/mcp"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over stdio",
	Long: `Starts an MCP server over stdin/stdout exposing pack_repo and pack_folder
tools, so agent hosts can pull repository contents into their context
without shelling out.

The server monitors for parent process death and self-terminates when the
host disconnects, to prevent zombie processes.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	srv := mcpserver.NewServer(version)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	mcpserver.WatchParent(ctx, cancel)

	logging.New("mcp").Info("starting repo2prompt MCP server over stdio (parent watchdog active)")
	return srv.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}
