// tools_config.go implements MCP tools for configuration management.
//
// Separated because config operations have unique characteristics: they
// modify persistent settings that affect all subsequent operations, and
// they must update the running service's config after changes.
//
// Design: A successful set is applied to the live config as well as saved,
// so the running MCP server immediately uses new settings. Without this,
// config changes would only take effect after server restart.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/llmedit/internal/config"
	"github.com/jpl-au/llmedit/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// configGet handles llmedit_config_get tool calls. Values come from the
// running service, which is what later tool calls will use.
func (h *handlers) configGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	cfg := h.Config()

	key := getString(req, "key", "")
	if key == "" {
		log.Event("mcp:config_get", "list").Author("mcp").Write(nil)
		return jsonResult(cfg.All())
	}

	v, err := cfg.Get(key)

	log.Event("mcp:config_get", "get").Author("mcp").Detail("key", key).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]string{key: v})
}

// configSet handles llmedit_config_set tool calls.
func (h *handlers) configSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("key is required"), nil //nolint:nilerr
	}

	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value is required"), nil //nolint:nilerr
	}
	local := getBool(req, "local", false)

	var cfg *config.Config
	if local {
		if h.inMemory() {
			config.SetLocalDir(workspaceStateDir(h.workspaceDir()))
		}
		cfg, err = config.LoadScope(config.ScopeLocal)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Event("mcp:config_set", "set").Author("mcp").Detail("key", key).Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := cfg.Set(key, value); err != nil {
		log.Event("mcp:config_set", "set").Author("mcp").Detail("key", key).Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	err = cfg.Save()

	// Note: value intentionally not logged, config may one day hold secrets
	log.Event("mcp:config_set", "set").Author("mcp").Detail("key", key).Detail("local", local).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Apply to the running service so new values take effect immediately.
	// Set already accepted the value above, so this cannot fail.
	_ = h.Config().Set(key, value)

	v, _ := cfg.Get(key)
	return mcp.NewToolResultText(fmt.Sprintf("%s = %s", key, v)), nil
}
