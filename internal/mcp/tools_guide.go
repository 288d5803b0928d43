// tools_guide.go implements the MCP tool for accessing help content.
//
// The guide tool provides LLMs with documentation about llmedit commands
// and tools, enabling self-service help without external lookups.

package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/jpl-au/llmedit/guide"
	"github.com/jpl-au/llmedit/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// getGuide handles llmedit_guide tool calls.
func (h *handlers) getGuide(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	name := getString(req, "name", "")

	content, err := guide.Get(name)

	log.Event("mcp:guide", "read").Author("mcp").Detail("name", name).Write(err)

	if errors.Is(err, guide.ErrNotFound) {
		pages, listErr := guide.List()
		if listErr != nil {
			return nil, fmt.Errorf("listing guides: %w", listErr)
		}
		return jsonResult(map[string]any{
			"error":           err.Error(),
			"available_pages": pages,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("reading guide: %w", err)
	}

	return mcp.NewToolResultText(content), nil
}
