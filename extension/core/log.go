// log.go implements the "llmedit log" command, which lists recent audit
// log entries.
//
// Design: Entries are scoped to the current workspace by default, found the
// same way other commands find it. Outside a workspace, or with --all, every
// project's entries are listed. Reading the log is not itself logged.

package core

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/jpl-au/llmedit/cmd"
	"github.com/jpl-au/llmedit/extension"
	"github.com/jpl-au/llmedit/internal/log"
	"github.com/jpl-au/llmedit/internal/repo"
	"github.com/spf13/cobra"
)

func newLogCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "log",
		Short: "Show recent reads, edits and writes",
		Long: `List audit log entries, newest first.

  llmedit log                   # this workspace
  llmedit log --all             # every workspace
  llmedit log --path main.go    # one file
  llmedit log --failed -n 50    # recent failures

The log lives in ~/.llmedit/log/llmedit-log.db.`,
		Args: cobra.NoArgs,
		RunE: runLog,
	}
	c.Flags().IntP(extension.FlagLimit, "n", log.DefaultLimit, "Number of entries")
	c.Flags().Bool(extension.FlagAll, false, "Include every workspace")
	c.Flags().Bool(extension.FlagFailed, false, "Only failed operations")
	c.Flags().String(extension.FlagPath, "", "Only entries for this file")
	return c
}

func runLog(c *cobra.Command, _ []string) error {
	limit, _ := c.Flags().GetInt(extension.FlagLimit)
	all, _ := c.Flags().GetBool(extension.FlagAll)
	failed, _ := c.Flags().GetBool(extension.FlagFailed)
	p, _ := c.Flags().GetString(extension.FlagPath)

	q := log.Query{Limit: limit, Failed: failed}
	if !all {
		q.Project = workspaceDir()
	}
	if p != "" {
		abs, err := filepath.Abs(p)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("log: %w", err))
		}
		q.Path = abs
	}

	entries, err := log.Recent(q)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("log: %w", err))
	}
	if cmd.JSON() {
		if entries == nil {
			entries = []log.Entry{}
		}
		return cmd.PrintJSON(entries)
	}
	return printEntries(cmd.Out(), entries)
}

// workspaceDir returns the absolute .llmedit directory in use, or "".
func workspaceDir() string {
	if d := cmd.Dir(); d != "" {
		abs, err := filepath.Abs(filepath.Join(d, repo.Dir))
		if err != nil {
			return ""
		}
		return abs
	}
	ws, err := repo.DiscoverDir()
	if err != nil {
		return ""
	}
	return ws
}

func printEntries(w io.Writer, entries []log.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No log entries")
		return err
	}
	for _, e := range entries {
		when := time.Unix(e.Start, 0).Format(time.DateTime)
		target := e.Path
		if e.ResolvedPath != "" {
			target = e.ResolvedPath
		}
		var changes string
		if e.Hunks > 0 {
			changes = fmt.Sprintf(" +%d -%d", e.Added, e.Removed)
		}
		status := "ok"
		if !e.Success {
			msg, _, _ := strings.Cut(e.Error, "\n")
			status = "failed: " + msg
		}
		author := e.Author
		if author == "" {
			author = "-"
		}
		if _, err := fmt.Fprintf(w, "%s  %-18s %-12s %s%s  %s\n", when, e.Source, author, target, changes, status); err != nil {
			return err
		}
	}
	return nil
}
