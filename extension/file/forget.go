// forget.go implements the "llmedit forget" command.

package file

import (
	"errors"
	"fmt"

	"github.com/jpl-au/llmedit/cmd"
	"github.com/jpl-au/llmedit/extension"
	"github.com/jpl-au/llmedit/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newForgetCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "forget [file]",
		Short: "Drop recorded reads",
		Long: `Forget that a file was read, so it must be read again before editing.

  llmedit forget main.go
  llmedit forget --all     # forget every file and compact the database`,
		Args: cobra.MaximumNArgs(1),
		RunE: e.runForget,
	}
	c.Flags().Bool(extension.FlagAll, false, "Forget every recorded read")
	return c
}

func (e *Extension) runForget(c *cobra.Command, args []string) error {
	all, _ := c.Flags().GetBool(extension.FlagAll)

	var p string
	switch {
	case all && len(args) > 0:
		return cmd.PrintJSONError(errors.New("cannot combine --all with a file"))
	case all:
	case len(args) == 1:
		p = args[0]
	default:
		return cmd.PrintJSONError(errors.New("name a file or pass --all"))
	}

	err := e.svc.Forget(c.Context(), p)

	log.Event("file:forget", "forget").
		Author(cmd.Author()).
		Path(p).
		Detail("all", all).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("forget: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"path": p, "all": all})
	}
	if all {
		fmt.Fprintln(cmd.Out(), "Forgot all recorded reads")
	} else {
		fmt.Fprintf(cmd.Out(), "Forgot %s\n", p)
	}
	return nil
}
