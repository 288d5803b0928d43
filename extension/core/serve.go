// serve.go implements the "llmedit serve" command for MCP server operation.
//
// Separated from extension.go because serve has unique lifecycle requirements.
// Unlike other commands that run and exit, serve blocks indefinitely handling
// MCP requests over stdio.
//
// Design: Serve is a standalone command - it manages its own service
// lifecycle instead of using the shared service from root.go. Without a
// workspace it still serves, keeping recorded reads in memory for the life
// of the process.

package core

import (
	"github.com/jpl-au/llmedit/cmd"
	"github.com/jpl-au/llmedit/internal/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

Inside a workspace, recorded reads are stored in .llmedit/state.db and
shared with the CLI. Elsewhere they are held in memory until the server
exits.

Use --dir to serve a specific workspace:
  llmedit serve --dir /path/to/project`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	return mcp.Serve(cmd.Dir())
}
