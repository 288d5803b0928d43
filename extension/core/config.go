// config.go implements the "llmedit config" command for configuration management.
//
// Separated from extension.go to isolate config-specific logic including
// the local vs global config precedence rules.
//
// Design: Config follows a cascade model similar to git: local config
// (.llmedit/config.yaml) takes precedence over global (~/.llmedit/config.yaml).
// The --local flag forces use of local config even if it doesn't exist yet,
// enabling config setup during init workflows.

package core

import (
	"fmt"
	"slices"

	"github.com/jpl-au/llmedit/cmd"
	"github.com/jpl-au/llmedit/extension"
	"github.com/jpl-au/llmedit/internal/config"
	"github.com/jpl-au/llmedit/internal/log"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config [key] [value]",
		Short: "View or set config values",
		Long: `View or set config values.

  llmedit config                    # show config
  llmedit config diff.context       # show diff.context value
  llmedit config diff.context 2     # set diff.context

Keys:
  author.name, author.email
  diff.context        hunk context lines (default 4)
  diff.algorithm      myers or histogram
  diff.tokenizer      line, char, word, sentence, css, json
  diff.longest_token  prefer alignments on long tokens
  limits.max_path     maximum path length in bytes
  limits.max_content  maximum file size in bytes
  output.colour       auto, always or never

Configuration locations:
  Global: ~/.llmedit/config.yaml
  Local:  .llmedit/config.yaml

Uses local config if it exists, otherwise global.
Writes go to the same place reads come from.
Use --local to use local config instead.`,
		Args: cobra.MaximumNArgs(2),
		RunE: runConfig,
	}
	c.Flags().Bool(extension.FlagLocal, false, "Use local config (.llmedit/config.yaml)")
	return c
}

func runConfig(c *cobra.Command, args []string) error {
	forceLocal, _ := c.Flags().GetBool(extension.FlagLocal)

	// Load config: local if exists, otherwise global
	// --local flag forces local even if it doesn't exist yet
	cfg, err := cmd.LoadConfig()
	if err == nil && forceLocal {
		cfg, err = config.LoadScope(config.ScopeLocal)
	}
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("config load: %w", err))
	}

	scopeName := "global"
	if cfg.Scope() == config.ScopeLocal {
		scopeName = "local"
	}

	switch len(args) {
	case 0:
		all := cfg.All()
		log.Event("core:config", "list").Author(cmd.Author()).Write(nil)
		if cmd.JSON() {
			return cmd.PrintJSON(all)
		}
		keys := make([]string, 0, len(all))
		for k := range all {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			fmt.Fprintf(cmd.Out(), "%s: %s\n", k, all[k])
		}

	case 1:
		v, err := cfg.Get(args[0])
		log.Event("core:config", "get").Author(cmd.Author()).Detail("key", args[0]).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("config get %q: %w", args[0], err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{args[0]: v})
		}
		fmt.Fprintln(cmd.Out(), v)

	case 2:
		// Set value - write to same place we read from
		if err := cfg.Set(args[0], args[1]); err != nil {
			log.Event("core:config", "set").Author(cmd.Author()).Detail("key", args[0]).Write(err)
			return cmd.PrintJSONError(fmt.Errorf("config set %q: %w", args[0], err))
		}

		saveErr := cfg.Save()
		log.Event("core:config", "set").Author(cmd.Author()).Detail("key", args[0]).Detail("scope", scopeName).Write(saveErr)
		if saveErr != nil {
			return cmd.PrintJSONError(fmt.Errorf("config save: %w", saveErr))
		}
		v, _ := cfg.Get(args[0])
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{"key": args[0], "value": v, "scope": scopeName})
		}
		fmt.Fprintf(cmd.Out(), "%s = %s (%s)\n", args[0], v, scopeName)
	}
	return nil
}
