// version.go implements the version command.

package core

import (
	"fmt"

	"github.com/jpl-au/llmedit/cmd"
	"github.com/jpl-au/llmedit/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the module version, VCS revision and build time recorded in the binary, with the Go version and platform.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			info := version.Get()
			if cmd.JSON() {
				return cmd.PrintJSON(info)
			}
			_, err := fmt.Fprint(cmd.Out(), info.String())
			return err
		},
	}
}
