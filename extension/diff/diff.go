// Package diff provides the diff extension for llmedit.
// It registers the diff command and the llmedit_diff MCP tool.
//
// Diff is standalone: it compares two texts and never reads or records
// workspace state, so it runs anywhere, initialised or not.
package diff

import (
	"fmt"

	"github.com/jpl-au/llmedit/extension"
	"github.com/jpl-au/llmedit/internal/config"
	"github.com/jpl-au/llmedit/internal/diff"
	"github.com/jpl-au/llmedit/internal/service"
	"github.com/jpl-au/llmedit/internal/tokenize"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the diff extension.
type Extension struct{}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension  = (*Extension)(nil)
	_ extension.Standalone = (*Extension)(nil)
)

// Name returns "diff".
func (e *Extension) Name() string { return "diff" }

// Commands returns the diff command.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newDiffCmd(),
	}
}

// MCPTools returns llmedit_diff.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{e.diffTool()}
}

// StandaloneCommands returns diff: it needs no workspace.
func (e *Extension) StandaloneCommands() []string {
	return []string{"diff"}
}

// request holds diff settings as given by a caller. Empty strings and nil
// pointers fall back to configuration.
type request struct {
	Tokenizer        string
	Algorithm        string
	LongestToken     *bool
	IgnoreCase       bool
	IgnoreWhitespace bool
	Context          *int
	Word             bool
}

// options resolves r against cfg.
func (r request) options(cfg *config.Config) (service.DiffOptions, error) {
	opts := service.DiffOptions{
		Diff:    cfg.DiffOptions(),
		Context: r.Context,
		Word:    r.Word,
	}
	if r.Tokenizer != "" {
		k, err := tokenize.ParseKind(r.Tokenizer)
		if err != nil {
			return opts, fmt.Errorf("%w (valid: %v)", err, tokenize.Names())
		}
		opts.Diff.Tokenizer = k
	}
	if r.Algorithm != "" {
		a, err := diff.ParseAlgorithm(r.Algorithm)
		if err != nil {
			return opts, err
		}
		opts.Diff.Algorithm = a
	}
	if r.LongestToken != nil {
		opts.Diff.LongestToken = *r.LongestToken
	}
	if r.Context != nil && (*r.Context < config.MinContext || *r.Context > config.MaxContext) {
		return opts, fmt.Errorf("context must be between %d and %d", config.MinContext, config.MaxContext)
	}
	opts.Diff.Tokenize.IgnoreCase = r.IgnoreCase
	opts.Diff.Tokenize.IgnoreWhitespace = r.IgnoreWhitespace
	return opts, nil
}
