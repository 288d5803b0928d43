// tools_util.go provides helper functions for MCP tool parameter extraction.
//
// Separated to centralise the boilerplate of extracting typed parameters from
// MCP's generic argument map. These helpers provide safe defaults when
// optional parameters are missing.
//
// Design: We use permissive extraction (return default on error) rather than
// strict validation because MCP tools should be forgiving - an LLM omitting
// an optional parameter shouldn't cause cryptic errors.

package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/tidwall/pretty"

	"github.com/jpl-au/llmedit/internal/edit"
)

// args returns the request's argument map, or nil.
func args(req mcp.CallToolRequest) map[string]any {
	m, _ := req.Params.Arguments.(map[string]any)
	return m
}

// has reports whether the parameter was supplied at all.
func has(req mcp.CallToolRequest, name string) bool {
	_, ok := args(req)[name]
	return ok
}

// getString extracts a string parameter from the MCP request, returning the
// provided default if the parameter is missing or cannot be parsed as a string.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// getBool extracts a boolean parameter from the MCP request arguments.
//
// Returns the default if the parameter is missing or not a boolean, which
// handles cases where an LLM might accidentally pass "true" (string) instead
// of true (boolean).
func getBool(req mcp.CallToolRequest, name string, def bool) bool { //nolint:unparam
	if v, ok := args(req)[name].(bool); ok {
		return v
	}
	return def
}

// getInt extracts an integer parameter from the MCP request arguments.
//
// JSON numbers are decoded as float64 in Go's encoding/json, so we must type
// assert to float64 first and then convert to int.
func getInt(req mcp.CallToolRequest, name string, def int) int {
	if v, ok := args(req)[name].(float64); ok {
		return int(v)
	}
	return def
}

// getEdits extracts the edits array. Each element must be an object with
// string old_string and new_string; replace_all is optional.
func getEdits(req mcp.CallToolRequest) ([]edit.Edit, error) {
	arr, ok := args(req)["edits"].([]any)
	if !ok {
		return nil, fmt.Errorf("edits must be an array of {old_string, new_string, replace_all}")
	}
	edits := make([]edit.Edit, 0, len(arr))
	for i, v := range arr {
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("edits[%d] must be an object", i)
		}
		oldStr, ok1 := obj["old_string"].(string)
		newStr, ok2 := obj["new_string"].(string)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("edits[%d] needs string old_string and new_string", i)
		}
		all, _ := obj["replace_all"].(bool)
		edits = append(edits, edit.Edit{OldString: oldStr, NewString: newStr, ReplaceAll: all})
	}
	return edits, nil
}

// jsonResult serialises any value as pretty-printed JSON and wraps it in an
// MCP text result for return to the LLM client.
//
// Errors during marshalling are converted to MCP error results rather than
// propagating as Go errors, keeping the tool response pattern consistent:
// all failures are communicated via MCP's error result mechanism.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(pretty.Pretty(data))), nil
}
