// mcp.go defines how extensions contribute MCP tools.
//
// Most editing tools live in internal/mcp because they share its handler
// state. An extension adds a tool here when the tool belongs with its CLI
// command, as llmedit_diff belongs with "llmedit diff".

package extension

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// MCPTool pairs an MCP tool definition with its handler.
type MCPTool struct {
	Tool    mcp.Tool
	Handler MCPHandler
}

// MCPHandler processes an MCP tool call. extCtx is read on every call, so a
// handler sees the current service even after the server switches
// workspaces.
type MCPHandler func(ctx context.Context, extCtx Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)

// Bind returns a plain tool handler that always passes extCtx.
func (t MCPTool) Bind(extCtx Context) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return t.Handler(ctx, extCtx, req)
	}
}
