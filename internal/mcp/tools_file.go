// tools_file.go implements MCP tools for reading, writing and forgetting
// files.
//
// Design: llmedit_read returns numbered text rather than JSON. The numbers
// are what an LLM needs to target llmedit_edit_lines, and text keeps the
// file content free of JSON escaping.

package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/jpl-au/llmedit/internal/format"
	"github.com/jpl-au/llmedit/internal/log"
	"github.com/jpl-au/llmedit/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
)

// readFile handles llmedit_read tool calls.
func (h *handlers) readFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}
	opts := service.ReadOptions{
		Offset: getInt(req, "offset", 0),
		Limit:  getInt(req, "limit", 0),
	}

	res, err := h.Service().Read(ctx, p, opts)

	log.Event("mcp:llmedit_read", "read").
		Author("mcp").
		Path(p).
		Resolved(res.Path).
		Detail("partial", res.Partial).
		Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(readText(res)), nil
}

// readText renders a read for the LLM: numbered lines, plus a note when the
// window does not cover the whole file.
func readText(res service.ReadResult) string {
	if res.TotalLines == 0 {
		return "<file is empty>"
	}
	var b strings.Builder
	b.WriteString(format.NumberLines(res.Content, res.StartLine))
	if res.Partial {
		end := res.StartLine + res.Lines - 1
		fmt.Fprintf(&b, "\n\n<showing lines %d-%d of %d>", res.StartLine, end, res.TotalLines)
	}
	return b.String()
}

// writeFile handles llmedit_write tool calls.
func (h *handlers) writeFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content is required"), nil //nolint:nilerr
	}

	res, err := h.Service().Write(ctx, p, content, service.EditOptions{})

	logChange("mcp:llmedit_write", "write", p, res, 1, err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(newEditResponse(res))
}

// forget handles llmedit_forget tool calls.
func (h *handlers) forget(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p := getString(req, "path", "")

	err := h.Service().Forget(ctx, p)

	log.Event("mcp:llmedit_forget", "forget").Author("mcp").Path(p).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if p == "" {
		return mcp.NewToolResultText("forgot all recorded reads"), nil
	}
	return mcp.NewToolResultText("forgot " + p), nil
}
