// tools_init.go implements the MCP tool for initialising a workspace.
//
// The server runs without a workspace, keeping reads in memory. This tool
// creates one and switches the server over to it, so later reads persist
// and are shared with the CLI.

package mcp

import (
	"context"
	"log/slog"

	"github.com/jpl-au/llmedit/internal/fileio"
	"github.com/jpl-au/llmedit/internal/filestate"
	"github.com/jpl-au/llmedit/internal/log"
	"github.com/jpl-au/llmedit/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// initWorkspace handles llmedit_init tool calls.
func (h *handlers) initWorkspace(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	force := getBool(req, "force", false)

	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.memory && !force {
		return mcp.NewToolResultError("workspace already initialised (pass force to reinitialise)"), nil
	}

	// Release the current database before reinitialising it. Reads fall
	// back to memory until the new workspace is open.
	if !h.memory {
		cfg := h.svc.Config()
		if err := h.svc.Close(); err != nil {
			slog.Error("closing previous service", "error", err)
		}
		h.svc = session.New(cfg, filestate.NewMemory(), fileio.OS{})
		h.memory = true
	}

	dir := h.workspaceDir()
	err := session.Init(force, dir)

	log.Event("mcp:init", "init").Author("mcp").Detail("dir", dir).Detail("force", force).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	svc, err := session.OpenDir(dir)
	if err != nil {
		return mcp.NewToolResultError("init succeeded but failed to open workspace: " + err.Error()), nil
	}
	h.svc = svc
	h.memory = false
	log.SetProject(svc.Dir())

	slog.Info("workspace initialised", "dir", svc.Dir())
	return mcp.NewToolResultText("workspace initialised in " + svc.Dir() + "; read files again before editing them"), nil
}
