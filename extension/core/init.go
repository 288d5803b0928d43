// init.go implements the "llmedit init" command for workspace initialisation.
//
// Separated from extension.go to isolate init-specific logic. Init is special
// because it runs before a workspace exists and creates the state database.
//
// Design: Init does NOT create config - that's managed separately via
// "llmedit config". This follows git's model where init creates repository
// structure and config is separate. The state database is always gitignored:
// recorded reads are only meaningful on the machine that made them.

package core

import (
	"fmt"
	"path/filepath"

	"github.com/jpl-au/llmedit/cmd"
	"github.com/jpl-au/llmedit/internal/log"
	"github.com/jpl-au/llmedit/internal/repo"
	"github.com/jpl-au/llmedit/internal/session"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialise a new llmedit workspace",
		Long: `Creates a .llmedit/state.db database in the current directory.

The database records which files have been read, so later edits can be
checked against what was seen.

Use --dir to create in a different directory:
  llmedit init --dir /path/to/project

Use --force to reinitialise, forgetting every recorded read.

Note: init does not create config. Use "llmedit config" to set up configuration.`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
}

func runInit(_ *cobra.Command, _ []string) error {
	dir := cmd.Dir()
	err := session.Init(cmd.Force(), dir)

	log.Event("core:init", "init").
		Author(cmd.Author()).
		Detail("dir", dir).
		Detail("force", cmd.Force()).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("init: %w", err))
	}

	loc := filepath.Join(dir, repo.Dir, repo.StateFile)
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"state": loc})
	}
	fmt.Fprintf(cmd.Out(), "Initialised llmedit workspace in %s\n", loc)
	return nil
}
