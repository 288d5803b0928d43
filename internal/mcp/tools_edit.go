// tools_edit.go implements the MCP edit tools.
//
// Separated from tools_file.go because edits carry the richest results:
// hunks, a rendered unified diff and change counts, and on a dry run the
// content that would have been written.

package mcp

import (
	"context"

	"github.com/jpl-au/llmedit/internal/edit"
	"github.com/jpl-au/llmedit/internal/hunk"
	"github.com/jpl-au/llmedit/internal/log"
	"github.com/jpl-au/llmedit/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
)

// editResponse is the result of llmedit_edit, llmedit_edit_lines and
// llmedit_write.
type editResponse struct {
	Path           string      `json:"path"`
	Created        bool        `json:"created,omitempty"`
	DryRun         bool        `json:"dry_run,omitempty"`
	Diff           string      `json:"diff"`
	Hunks          []hunk.Hunk `json:"hunks"`
	Summary        summary     `json:"summary"`
	UpdatedContent string      `json:"updated_content,omitempty"`
}

type summary struct {
	Hunks   int `json:"hunks"`
	Added   int `json:"added"`
	Removed int `json:"removed"`
}

func newEditResponse(res service.EditResult) editResponse {
	oldLabel := res.Path
	if res.Created {
		oldLabel = "/dev/null"
	}
	hunks := res.Hunks
	if hunks == nil {
		hunks = []hunk.Hunk{}
	}
	return editResponse{
		Path:           res.Path,
		Created:        res.Created,
		DryRun:         res.DryRun,
		Diff:           hunk.Unified(oldLabel, res.Path, res.Hunks),
		Hunks:          hunks,
		Summary:        summary{Hunks: len(res.Hunks), Added: res.Added, Removed: res.Removed},
		UpdatedContent: res.UpdatedContent,
	}
}

// logChange records an edit-like operation in the audit log.
func logChange(source, action, p string, res service.EditResult, edits int, err error) {
	ev := log.Event(source, action).
		Author("mcp").
		Path(p).
		Resolved(res.Path).
		Changes(len(res.Hunks), res.Added, res.Removed).
		Detail("edits", edits)
	if res.DryRun {
		ev = ev.Detail("dry_run", true)
	}
	if k := edit.KindOf(err); k != 0 {
		ev = ev.Detail("kind", k.String())
	}
	ev.Write(err)
}

// editOptions reads dry_run and context.
func editOptions(req mcp.CallToolRequest) service.EditOptions {
	opts := service.EditOptions{DryRun: getBool(req, "dry_run", false)}
	if has(req, "context") {
		n := getInt(req, "context", -1)
		if n >= 0 {
			opts.Context = &n
		}
	}
	return opts
}

// editFile handles llmedit_edit tool calls.
func (h *handlers) editFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}

	var edits []edit.Edit
	if has(req, "edits") {
		if has(req, "old_string") {
			return mcp.NewToolResultError("pass either edits or old_string/new_string, not both"), nil
		}
		edits, err = getEdits(req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	} else {
		oldStr, err := req.RequireString("old_string")
		if err != nil {
			return mcp.NewToolResultError("old_string is required (or pass edits)"), nil //nolint:nilerr
		}
		newStr, err := req.RequireString("new_string")
		if err != nil {
			return mcp.NewToolResultError("new_string is required"), nil //nolint:nilerr
		}
		edits = []edit.Edit{{OldString: oldStr, NewString: newStr, ReplaceAll: getBool(req, "replace_all", false)}}
	}

	res, err := h.Service().Edit(ctx, p, edits, editOptions(req))

	logChange("mcp:llmedit_edit", "edit", p, res, len(edits), err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(newEditResponse(res))
}

// editLines handles llmedit_edit_lines tool calls.
func (h *handlers) editLines(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content is required"), nil //nolint:nilerr
	}
	start, end := getInt(req, "start", 0), getInt(req, "end", 0)

	res, err := h.Service().EditLines(ctx, p, start, end, content, editOptions(req))

	logChange("mcp:llmedit_edit_lines", "edit", p, res, 1, err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(newEditResponse(res))
}
