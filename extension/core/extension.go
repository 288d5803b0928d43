// Package core provides the core extension for llmedit.
// It registers commands: init, config, log, serve, guide, version.
package core

import (
	"github.com/jpl-au/llmedit/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct{}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension  = (*Extension)(nil)
	_ extension.Standalone = (*Extension)(nil)
)

// Name returns "core" - this extension provides fundamental llmedit commands.
func (e *Extension) Name() string { return "core" }

// Commands returns all core CLI commands for workspace management.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newInitCmd(),
		newConfigCmd(),
		newLogCmd(),
		newServeCmd(),
		newGuideCmd(),
		newVersionCmd(),
	}
}

// MCPTools returns nil - core MCP tools (init, config, guide) live in
// internal/mcp because they run before a workspace exists.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// StandaloneCommands returns commands that manage their own service lifecycle.
// serve: Long-running MCP server needs its own service lifecycle.
// log: Reads the audit log, which is shared by every workspace.
// version: Displays build info, doesn't need a workspace.
func (e *Extension) StandaloneCommands() []string {
	return []string{"serve", "log", "version"}
}
