// Package mcp implements the Model Context Protocol server, exposing
// llmedit operations to LLMs. This enables AI assistants to read, edit and
// write files through a standardised protocol with the same read-before-write
// checks the CLI applies.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/jpl-au/llmedit/extension"
	"github.com/jpl-au/llmedit/internal/config"
	"github.com/jpl-au/llmedit/internal/fileio"
	"github.com/jpl-au/llmedit/internal/filestate"
	"github.com/jpl-au/llmedit/internal/repo"
	"github.com/jpl-au/llmedit/internal/service"
	"github.com/jpl-au/llmedit/internal/session"
	"github.com/jpl-au/llmedit/internal/version"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Serve starts the MCP server over stdio, enabling LLM integration.
// Uses stdio transport for compatibility with Claude Desktop and other MCP clients.
//
// Design: The server starts successfully even if no workspace exists. Reads
// are then held in memory for the life of the process, which is all a
// single long-lived client needs. llmedit_init switches to a persistent
// workspace shared with the CLI.
func Serve(dir string) error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	h, err := open(dir)
	if err != nil {
		slog.Error("failed to open workspace", "error", err)
		return err
	}
	defer h.close()

	s := newServer(h)

	slog.Info("llmedit MCP server ready", "version", version.Short(), "transport", "stdio", "persistent", !h.inMemory())

	err = server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// open builds handlers over the workspace at dir, discovered when dir is
// empty, falling back to an in-memory cache when there is none.
func open(dir string) (*handlers, error) {
	h := &handlers{dir: dir}
	svc, err := session.OpenDir(dir)
	switch {
	case err == nil:
		h.svc = svc
	case errors.Is(err, repo.ErrNotInitialised):
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		h.svc = session.New(cfg, filestate.NewMemory(), fileio.OS{})
		h.memory = true
		slog.Info("llmedit not initialised, holding reads in memory - call llmedit_init to persist them")
	default:
		return nil, err
	}
	return h, nil
}

// newServer creates the MCP server with every tool and resource registered.
func newServer(h *handlers) *server.MCPServer {
	s := server.NewMCPServer(
		"llmedit",
		version.Short(),
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)

	registerResources(s, h)
	registerTools(s, h)
	s.AddTools(extensionTools(h)...)
	return s
}

// handlers provides MCP request handlers with access to the edit service.
// It also serves as the extension.Context for extension-provided tools, so
// they always see the current service after llmedit_init swaps it.
type handlers struct {
	mu     sync.RWMutex
	dir    string          // workspace directory for init, "" for the working directory
	svc    service.Service // never nil
	memory bool            // svc keeps reads in memory only
}

var _ extension.Context = (*handlers)(nil)

// Service returns the current edit service.
func (h *handlers) Service() service.Service {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.svc
}

// Config returns the configuration of the current service.
func (h *handlers) Config() *config.Config {
	return h.Service().Config()
}

func (h *handlers) inMemory() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.memory
}

func (h *handlers) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.svc.Close(); err != nil {
		slog.Error("closing service", "error", err)
	}
}

// workspaceDir returns the directory llmedit_init creates the workspace in.
func (h *handlers) workspaceDir() string {
	if h.dir != "" {
		return h.dir
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// extensionTools adapts the tools of every registered extension, passing
// h as their extension context.
func extensionTools(h *handlers) []server.ServerTool {
	var tools []server.ServerTool
	for _, t := range extension.Tools() {
		tools = append(tools, server.ServerTool{Tool: t.Tool, Handler: t.Bind(h)})
	}
	return tools
}

// registerResources adds URI-based access to file content.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			filesURI+"{path}",
			"File",
			mcp.WithTemplateDescription("Read a file's content and record the read"),
			mcp.WithTemplateMIMEType("text/plain"),
		),
		h.readFileResource,
	)
}

// registerTools exposes llmedit operations as MCP tools for LLM invocation.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("llmedit_init",
			mcp.WithDescription("Initialise an llmedit workspace so reads persist across server restarts and are shared with the CLI."),
			mcp.WithBoolean("force", mcp.Description("Reinitialise an existing workspace, forgetting every recorded read")),
		),
		h.initWorkspace,
	)

	s.AddTool(
		mcp.NewTool("llmedit_read",
			mcp.WithDescription("Read a file. Output lines are numbered as '     N→text'. A file must be read before it can be edited."),
			mcp.WithString("path", mcp.Required(), mcp.Description("File path, absolute or relative to the server's working directory")),
			mcp.WithNumber("offset", mcp.Description("First line to read (1-indexed)")),
			mcp.WithNumber("limit", mcp.Description("Number of lines to read")),
		),
		h.readFile,
	)

	s.AddTool(
		mcp.NewTool("llmedit_edit",
			mcp.WithDescription("Replace exact text in a file that has been read. old_string must occur exactly once unless replace_all is set. Pass edits to apply several replacements as one transaction."),
			mcp.WithString("path", mcp.Required(), mcp.Description("File path")),
			mcp.WithString("old_string", mcp.Description("Text to replace")),
			mcp.WithString("new_string", mcp.Description("Replacement text")),
			mcp.WithBoolean("replace_all", mcp.Description("Replace every occurrence of old_string")),
			mcp.WithArray("edits",
				mcp.Description("Edits applied in order as one transaction, instead of old_string/new_string"),
				mcp.Items(map[string]any{
					"type": "object",
					"properties": map[string]any{
						"old_string":  map[string]any{"type": "string"},
						"new_string":  map[string]any{"type": "string"},
						"replace_all": map[string]any{"type": "boolean"},
					},
					"required": []string{"old_string", "new_string"},
				}),
			),
			mcp.WithBoolean("dry_run", mcp.Description("Return the diff without writing")),
			mcp.WithNumber("context", mcp.Description("Context lines around changes")),
		),
		h.editFile,
	)

	s.AddTool(
		mcp.NewTool("llmedit_edit_lines",
			mcp.WithDescription("Replace a line range of the content last read from a file"),
			mcp.WithString("path", mcp.Required(), mcp.Description("File path")),
			mcp.WithNumber("start", mcp.Required(), mcp.Description("First line to replace (1-indexed)")),
			mcp.WithNumber("end", mcp.Required(), mcp.Description("Last line to replace (inclusive)")),
			mcp.WithString("content", mcp.Required(), mcp.Description("Replacement text")),
			mcp.WithBoolean("dry_run", mcp.Description("Return the diff without writing")),
		),
		h.editLines,
	)

	s.AddTool(
		mcp.NewTool("llmedit_write",
			mcp.WithDescription("Create a file, or overwrite one that has been read in full"),
			mcp.WithString("path", mcp.Required(), mcp.Description("File path")),
			mcp.WithString("content", mcp.Required(), mcp.Description("Complete file content")),
		),
		h.writeFile,
	)

	s.AddTool(
		mcp.NewTool("llmedit_forget",
			mcp.WithDescription("Forget that a file was read, or every file when path is omitted"),
			mcp.WithString("path", mcp.Description("File path")),
		),
		h.forget,
	)

	s.AddTool(
		mcp.NewTool("llmedit_config_get",
			mcp.WithDescription("Get a configuration value, or every value when key is omitted"),
			mcp.WithString("key", mcp.Description("Config key, e.g. diff.context")),
		),
		h.configGet,
	)

	s.AddTool(
		mcp.NewTool("llmedit_config_set",
			mcp.WithDescription("Set a configuration value. Takes effect immediately."),
			mcp.WithString("key", mcp.Required(), mcp.Description("Config key, e.g. diff.context")),
			mcp.WithString("value", mcp.Required(), mcp.Description("New value")),
			mcp.WithBoolean("local", mcp.Description("Write the workspace config instead of the global one")),
		),
		h.configSet,
	)

	s.AddTool(
		mcp.NewTool("llmedit_guide",
			mcp.WithDescription("Show llmedit documentation"),
			mcp.WithString("name", mcp.Description("Guide page (omit for the overview): read, edit, write, diff, config, mcp")),
		),
		h.getGuide,
	)
}

// workspaceStateDir returns the .llmedit directory under dir.
func workspaceStateDir(dir string) string {
	return filepath.Join(dir, repo.Dir)
}
