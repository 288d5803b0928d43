// read.go implements the "llmedit read" command.
//
// Design: Output is numbered by default so line ranges for "edit --lines"
// can be read straight off it. --raw prints the content unchanged for
// piping.

package file

import (
	"fmt"

	"github.com/jpl-au/llmedit/cmd"
	"github.com/jpl-au/llmedit/extension"
	"github.com/jpl-au/llmedit/internal/format"
	"github.com/jpl-au/llmedit/internal/log"
	"github.com/jpl-au/llmedit/internal/service"
	"github.com/spf13/cobra"
)

func (e *Extension) newReadCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "read <file>",
		Short: "Read a file and record it as seen",
		Long: `Print a file with line numbers and record the read, so it can be edited.

  llmedit read main.go
  llmedit read main.go --offset 100 --limit 50   # lines 100-149
  llmedit read main.go --raw                     # content only

A window that does not cover the whole file is recorded as a partial read.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runRead,
	}
	c.Flags().Int(extension.FlagOffset, 0, "First line to read (1-indexed)")
	c.Flags().Int(extension.FlagLimit, 0, "Number of lines to read (0 for all)")
	c.Flags().Bool(extension.FlagRaw, false, "Print content without line numbers")
	return c
}

func (e *Extension) runRead(c *cobra.Command, args []string) error {
	offset, _ := c.Flags().GetInt(extension.FlagOffset)
	limit, _ := c.Flags().GetInt(extension.FlagLimit)
	raw, _ := c.Flags().GetBool(extension.FlagRaw)

	res, err := e.svc.Read(c.Context(), args[0], service.ReadOptions{Offset: offset, Limit: limit})

	log.Event("file:read", "read").
		Author(cmd.Author()).
		Path(args[0]).
		Resolved(res.Path).
		Detail("partial", res.Partial).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("read %q: %w", args[0], err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(res)
	}
	if raw {
		fmt.Fprint(cmd.Out(), res.Content)
		return nil
	}
	if res.TotalLines == 0 {
		fmt.Fprintln(cmd.Out(), "(empty file)")
		return nil
	}
	fmt.Fprintln(cmd.Out(), format.NumberLines(res.Content, res.StartLine))
	return nil
}
