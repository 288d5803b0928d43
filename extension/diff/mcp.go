// mcp.go implements the llmedit_diff MCP tool.
//
// Design: The result carries the unified diff as a string next to the
// structured hunks. LLMs read the former; tooling parses the latter.

package diff

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/tidwall/pretty"

	"github.com/jpl-au/llmedit/extension"
	"github.com/jpl-au/llmedit/internal/fileio"
	"github.com/jpl-au/llmedit/internal/filestate"
	"github.com/jpl-au/llmedit/internal/format"
	"github.com/jpl-au/llmedit/internal/hunk"
	"github.com/jpl-au/llmedit/internal/service"
	"github.com/jpl-au/llmedit/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

func (e *Extension) diffTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("llmedit_diff",
			mcp.WithDescription("Compare two texts and return unified diff hunks. Nothing is read from or written to disk."),
			mcp.WithString("old_text", mcp.Required(), mcp.Description("Original text")),
			mcp.WithString("new_text", mcp.Required(), mcp.Description("Changed text")),
			mcp.WithString("tokenizer", mcp.Description("line (default), char, word, sentence, css or json")),
			mcp.WithString("algorithm", mcp.Description("myers (default) or histogram")),
			mcp.WithBoolean("longest_token", mcp.Description("Prefer alignments on long tokens")),
			mcp.WithBoolean("ignore_case", mcp.Description("Compare case-insensitively")),
			mcp.WithBoolean("ignore_whitespace", mcp.Description("Ignore whitespace around tokens")),
			mcp.WithNumber("context", mcp.Description("Context lines around changes")),
		),
		Handler: handleDiff,
	}
}

// diffResponse is the llmedit_diff result.
type diffResponse struct {
	Diff    string      `json:"diff"`
	Inline  string      `json:"inline,omitempty"` // token-level view for non-line tokenizers
	Hunks   []hunk.Hunk `json:"hunks"`
	Summary diffSummary `json:"summary"`
}

type diffSummary struct {
	Hunks     int  `json:"hunks"`
	Inserted  int  `json:"inserted"`
	Deleted   int  `json:"deleted"`
	Identical bool `json:"identical"`
}

func handleDiff(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	oldText, err := req.RequireString("old_text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	newText, err := req.RequireString("new_text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args, _ := req.Params.Arguments.(map[string]any)
	r := request{}
	r.Tokenizer, _ = args["tokenizer"].(string)
	r.Algorithm, _ = args["algorithm"].(string)
	r.IgnoreCase, _ = args["ignore_case"].(bool)
	r.IgnoreWhitespace, _ = args["ignore_whitespace"].(bool)
	if v, ok := args["longest_token"].(bool); ok {
		r.LongestToken = &v
	}
	if v, ok := args["context"].(float64); ok {
		n := int(v)
		r.Context = &n
	}

	opts, err := r.options(extCtx.Config())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	svc := extCtx.Service()
	if svc == nil {
		svc = session.New(extCtx.Config(), filestate.NewMemory(), fileio.NewMemory())
	}
	res, err := svc.Diff(ctx, oldText, newText, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := json.Marshal(response(res))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(pretty.Pretty(data))), nil
}

func response(res service.DiffResult) diffResponse {
	out := diffResponse{
		Diff:  hunk.Unified("old", "new", res.Hunks),
		Hunks: res.Hunks,
		Summary: diffSummary{
			Hunks:     len(res.Hunks),
			Inserted:  res.Inserted,
			Deleted:   res.Deleted,
			Identical: res.Identical,
		},
	}
	if res.Ops != nil {
		var b strings.Builder
		_ = format.Inline(&b, res.Ops, false)
		out.Inline = b.String()
	}
	return out
}
