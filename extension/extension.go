// Package extension provides the plugin architecture for llmedit. Extensions
// encapsulate related functionality (commands, MCP tools) and register at
// init time, enabling modular feature development without touching core code.
package extension

import "github.com/spf13/cobra"

// Extension defines the contract for llmedit extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command

	// MCPTools returns MCP tools to register with the server.
	MCPTools() []MCPTool
}

// Initializable extensions can perform setup once a workspace is open.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Standalone is an optional interface for extensions with commands that
// don't need a workspace. Commands returned by StandaloneCommands() will
// not trigger workspace discovery in PersistentPreRunE.
//
// Use cases:
// 1. Bootstrap commands (like init) that run before a workspace exists
// 2. Commands that manage their own service lifecycle (serve)
// 3. Pure text commands such as diff that never touch the state cache
type Standalone interface {
	StandaloneCommands() []string
}
