// write.go implements the "llmedit write" command.
//
// Design: Content always comes from stdin, so arbitrary text (including
// leading dashes and multi-line blocks) never has to survive shell quoting.

package file

import (
	"fmt"
	"io"

	"github.com/jpl-au/llmedit/cmd"
	"github.com/jpl-au/llmedit/extension"
	"github.com/jpl-au/llmedit/internal/format"
	"github.com/jpl-au/llmedit/internal/log"
	"github.com/jpl-au/llmedit/internal/service"
	"github.com/spf13/cobra"
)

func (e *Extension) newWriteCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "write <file>",
		Short: "Create or overwrite a file from stdin",
		Long: `Write stdin to a file, creating parent directories as needed.

  llmedit write notes.md < draft.md
  echo "hello" | llmedit write hello.txt

Creating a file needs no read. Overwriting one needs a full read with no
change on disk since.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runWrite,
	}
	c.Flags().Bool(extension.FlagDryRun, false, "Show the diff without writing")
	return c
}

func (e *Extension) runWrite(c *cobra.Command, args []string) error {
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)

	content, err := io.ReadAll(cmd.In())
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("read stdin: %w", err))
	}

	res, err := e.svc.Write(c.Context(), args[0], string(content), service.EditOptions{DryRun: dryRun})

	log.Event("file:write", "write").
		Author(cmd.Author()).
		Path(args[0]).
		Resolved(res.Path).
		Changes(len(res.Hunks), res.Added, res.Removed).
		Detail("created", res.Created).
		Detail("dry_run", dryRun).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("write %q: %w", args[0], err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(res)
	}
	return format.Change(cmd.Out(), display(res.Path), res.Created, res.Hunks, nil, cmd.Colour(e.svc.Config()))
}
