// Package file provides the file extension for llmedit.
// It registers commands: read, write, forget.
package file

import (
	"os"

	"github.com/jpl-au/llmedit/extension"
	"github.com/jpl-au/llmedit/internal/path"
	"github.com/jpl-au/llmedit/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the file extension.
type Extension struct {
	svc service.Service
}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "file" - this extension provides whole-file commands.
func (e *Extension) Name() string { return "file" }

// Init receives the shared service from the extension context.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns read, write and forget.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newReadCmd(),
		e.newWriteCmd(),
		e.newForgetCmd(),
	}
}

// MCPTools returns nil - file tools are in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// display returns abs relative to the working directory when it lies
// inside it.
func display(abs string) string {
	wd, err := os.Getwd()
	if err != nil {
		return abs
	}
	return path.Rel(abs, wd)
}
