// guide.go implements the "llmedit guide" command.
//
// Pages are embedded in the binary. They are rendered through glamour when
// colour output is on (see output.colour), and printed as raw markdown
// otherwise, so piping a page into an LLM's context gets plain text.

package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/jpl-au/llmedit/cmd"
	"github.com/jpl-au/llmedit/guide"
	"github.com/spf13/cobra"
)

func newGuideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guide [page]",
		Short: "Show the llmedit usage guide",
		Long: `Outputs the llmedit guide for LLMs and humans.

  llmedit guide        # overview
  llmedit guide edit   # detailed edit guide
  llmedit guide mcp    # MCP tool reference`,
		Args: cobra.MaximumNArgs(1),
		RunE: runGuide,
	}
}

func runGuide(_ *cobra.Command, args []string) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	content, err := guide.Get(name)
	if errors.Is(err, guide.ErrNotFound) {
		if available, listErr := guide.List(); listErr == nil {
			err = fmt.Errorf("%w. Available: %s", err, strings.Join(available, ", "))
		}
	}
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	if cmd.JSON() {
		if name == "" {
			name = guide.Overview
		}
		return cmd.PrintJSON(map[string]string{"page": name, "content": content})
	}

	// Config errors only cost the colour; the page still prints.
	cfg, _ := cmd.LoadConfig()
	if cmd.Colour(cfg) {
		if rendered, err := glamour.Render(content, "dark"); err == nil {
			content = rendered
		}
	}
	fmt.Fprint(cmd.Out(), content)
	return nil
}
