/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// Separated from init_extensions.go to isolate cobra setup from extension
// initialisation logic.
//
// Design: PersistentPreRunE opens the workspace lazily - only commands that
// need the file state cache trigger extension init. This enables bootstrap
// commands (init, guide, config) and pure text commands (diff) to work
// without a workspace. The standaloneCommands map controls which commands
// skip initialisation.

package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/jpl-au/llmedit/internal/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "llmedit",
	Short: "Read-before-write file editing with unified diffs",
	Long: `Edits files by exact string replacement, refusing to touch a file that
has not been read or has changed since it was read, and reports every change
as unified diff hunks.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}

		// Detect author if not explicitly set
		if author == "" {
			author = detectAuthor()
		}

		// Check if command requires author and none is configured
		cmdName := topLevelCmdName(cmd)
		if authorRequiredCommands[cmdName] && author == "" {
			return fmt.Errorf("author not configured (checked .llmedit/config.yaml and ~/.llmedit/config.yaml)\n\nRun: llmedit config author.name \"Your Name\"\n\nOr pass --author for a single command.")
		}

		// Initialise extensions for commands that need the workspace
		if !standaloneCommands[cmdName] {
			if err := initExtensions(); err != nil {
				if JSON() {
					_ = PrintJSON(map[string]string{"error": err.Error()})
					cmd.SilenceErrors = true
					cmd.SilenceUsage = true
				}
				return fmt.Errorf("initialise extensions: %w", err)
			}
		}

		return nil
	},
}

// topLevelCmdName returns the name of the top-level command (direct child of root).
// For "llmedit read main.go", returns "read".
// For "llmedit config diff.context 2", returns "config".
func topLevelCmdName(cmd *cobra.Command) string {
	// Walk up until we find a command whose parent has no parent (the root)
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

// Execute runs the root command and handles process lifecycle.
// Opens audit logging, registers extensions, executes the command, and ensures
// the state database is closed before exit. Exit code 1 indicates error.
func Execute() {
	// Initialise audit logger (warn if it fails, but continue)
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	defer log.Close()

	registerExtensions()
	err := rootCmd.Execute()

	// Close the service if it was created
	if extService != nil {
		if closeErr := extService.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: closing service: %v\n", closeErr)
		}
	}

	if err != nil {
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing and extension access.
func RootCmd() *cobra.Command {
	return rootCmd
}
