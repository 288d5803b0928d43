/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// flags.go defines global CLI flags and accessors for shared state.
//
// Separated from root.go to isolate flag definitions from command logic.
// Extensions access these via exported accessor functions rather than
// directly accessing the variables.
//
// Design: Flags are defined as package-level variables and bound to the
// root command. Accessors are provided so extensions can read flag values
// without coupling to cobra internals. The JSON() helper simplifies output
// format detection across all commands.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jpl-au/llmedit/internal/config"
	"github.com/jpl-au/llmedit/internal/repo"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var validOutputFormats = []string{"json"}

var (
	output string
	author string
	force  bool
	dir    string
)

// out is the output writer for commands. Defaults to os.Stdout.
// Tests can replace this to capture output.
var out io.Writer = os.Stdout

// in is the input reader for commands that take content on stdin.
var in io.Reader = os.Stdin

// Exported accessors for extensions.
// Extensions use these to access shared CLI state.

// Out returns the output writer.
func Out() io.Writer { return out }

// In returns the input reader.
func In() io.Reader { return in }

// Output returns the output format flag value.
func Output() string { return output }

// Author returns the author flag value.
func Author() string { return author }

// Force returns the force flag value.
func Force() bool { return force }

// Dir returns the explicit workspace directory if set.
// Priority: --dir flag > LLMEDIT_DIR env var > empty (use discovery).
func Dir() string {
	if dir != "" {
		return dir
	}
	return os.Getenv("LLMEDIT_DIR")
}

// SetOut sets the output writer (for testing).
func SetOut(w io.Writer) { out = w }

// SetIn sets the input reader (for testing).
func SetIn(r io.Reader) { in = r }

// JSON returns true if JSON output is requested.
func JSON() bool { return output == "json" }

// Colour reports whether diff output should carry ANSI colour, following
// output.colour and falling back to terminal detection for "auto".
func Colour(cfg *config.Config) bool {
	if JSON() {
		return false
	}
	mode := config.ColourAuto
	if cfg != nil {
		mode = cfg.Colour()
	}
	switch mode {
	case config.ColourAlways:
		return true
	case config.ColourNever:
		return false
	}
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// PrintJSON marshals v to JSON and writes it to the output writer.
// Returns nil if output format is not JSON.
func PrintJSON(v any) error {
	if output != "json" {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(out, string(b))
	return nil
}

// PrintJSONError prints an error in JSON format if output is JSON.
// Returns nil if error was printed (suppressing Cobra error), or the original error if not.
func PrintJSONError(err error) error {
	if output != "json" || err == nil {
		return err
	}
	// We ignore the error from PrintJSON here because if we can't print the error,
	// checking it is futile. We just return nil to suppress Cobra's duplicate printing.
	_ = PrintJSON(map[string]string{"error": err.Error()})
	return nil
}

// LoadConfig loads configuration for commands that run without an open
// workspace. The local config of the workspace named by Dir(), or found by
// discovery, takes precedence over the global one.
func LoadConfig() (*config.Config, error) {
	if d := Dir(); d != "" {
		config.SetLocalDir(filepath.Join(d, repo.Dir))
	} else if ws, err := repo.DiscoverDir(); err == nil {
		config.SetLocalDir(ws)
	}
	return config.Load()
}

// detectAuthor resolves the default author for the audit log.
// Returns empty string when config is missing or has no author set.
func detectAuthor() string {
	if cfg, err := LoadConfig(); err == nil && cfg.Author.Name != "" {
		return cfg.Author.Name
	}
	return ""
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format: json")
	rootCmd.PersistentFlags().StringVarP(&author, "author", "a", "", "Author recorded in the audit log")
	rootCmd.PersistentFlags().BoolVar(&force, "force", false, "Skip confirmations")
	rootCmd.PersistentFlags().StringVar(&dir, "dir", "", "Workspace directory (skip discovery, use explicit path)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return validOutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
}
