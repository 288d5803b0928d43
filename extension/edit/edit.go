// Package edit provides the edit extension for llmedit.
// It registers commands: edit.
package edit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jpl-au/llmedit/cmd"
	"github.com/jpl-au/llmedit/extension"
	"github.com/jpl-au/llmedit/internal/edit"
	"github.com/jpl-au/llmedit/internal/format"
	"github.com/jpl-au/llmedit/internal/log"
	"github.com/jpl-au/llmedit/internal/path"
	"github.com/jpl-au/llmedit/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the edit extension.
type Extension struct {
	svc service.Service
}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "edit" - this extension provides text editing commands.
func (e *Extension) Name() string { return "edit" }

// Init receives the shared service from the extension context.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the edit command.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newEditCmd(),
	}
}

// MCPTools returns nil - MCP editing tools are in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// --- edit command ---

func (e *Extension) newEditCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "edit <file> [old] [new]",
		Short: "Replace text or a line range in a file",
		Long: `Edit a file by exact string replacement. The file must have been read.

Search/replace mode (positional or flags):
  llmedit edit main.go "old text" "new text"
  llmedit edit main.go --old "old text" --new "new text"
  llmedit edit main.go "foo" "bar" --replace-all

Batch mode (YAML or JSON list of old_string/new_string/replace_all):
  llmedit edit main.go --edits batch.yaml

Line range mode (replaces lines of the last read with stdin):
  llmedit edit main.go -l 5:10 <<< "replacement content"

--dry-run prints the diff without writing.`,
		Args: cobra.RangeArgs(1, 3),
		RunE: e.runEdit,
	}
	c.Flags().String(extension.FlagOld, "", "Text to find")
	c.Flags().String(extension.FlagNew, "", "Text to replace with")
	c.Flags().Bool(extension.FlagReplaceAll, false, "Replace every occurrence")
	c.Flags().String(extension.FlagEdits, "", "File holding a list of edits (- for stdin)")
	c.Flags().StringP(extension.FlagLines, "l", "", "Line range (e.g., 5:10)")
	c.Flags().Bool(extension.FlagDryRun, false, "Show the diff without writing")
	c.Flags().IntP(extension.FlagContext, "C", -1, "Context lines around changes (default from diff.context)")
	c.Flags().BoolP(extension.FlagWord, "w", false, "Highlight changed words inside replaced lines")
	return c
}

func (e *Extension) runEdit(c *cobra.Command, args []string) error {
	ctx := c.Context()
	p := args[0]
	lineRange, _ := c.Flags().GetString(extension.FlagLines)
	batch, _ := c.Flags().GetString(extension.FlagEdits)
	word, _ := c.Flags().GetBool(extension.FlagWord)
	opts := editOptions(c)

	var res service.EditResult
	var n int
	var err error
	switch {
	case lineRange != "" && batch != "":
		err = errors.New("cannot combine --lines with --edits")
	case lineRange != "":
		n = 1
		res, err = e.runEditLines(ctx, p, lineRange, opts)
	default:
		var edits []edit.Edit
		edits, err = collectEdits(c, args, batch)
		if err == nil {
			n = len(edits)
			res, err = e.svc.Edit(ctx, p, edits, opts)
		}
	}

	ev := log.Event("edit:edit", "edit").
		Author(cmd.Author()).
		Path(p).
		Resolved(res.Path).
		Changes(len(res.Hunks), res.Added, res.Removed).
		Detail("edits", n).
		Detail("dry_run", opts.DryRun)
	if k := edit.KindOf(err); k != 0 {
		ev = ev.Detail("kind", k.String())
	}
	ev.Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("edit %q: %w", p, err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(res)
	}

	marks := res.Marks
	if !word {
		marks = nil
	}
	wd, _ := os.Getwd()
	return format.Change(cmd.Out(), path.Rel(res.Path, wd), res.Created, res.Hunks, marks, cmd.Colour(e.svc.Config()))
}

func (e *Extension) runEditLines(ctx context.Context, p, lineRange string, opts service.EditOptions) (service.EditResult, error) {
	start, end, err := edit.ParseLineRange(lineRange)
	if err != nil {
		return service.EditResult{}, fmt.Errorf("parse line range %q: %w", lineRange, err)
	}

	replacement, err := io.ReadAll(cmd.In())
	if err != nil {
		return service.EditResult{}, fmt.Errorf("read stdin: %w", err)
	}
	return e.svc.EditLines(ctx, p, start, end, string(replacement), opts)
}

// editOptions reads --dry-run and --context. A negative context leaves the
// configured value in place.
func editOptions(c *cobra.Command) service.EditOptions {
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)
	n, _ := c.Flags().GetInt(extension.FlagContext)
	opts := service.EditOptions{DryRun: dryRun}
	if n >= 0 {
		opts.Context = &n
	}
	return opts
}

// collectEdits builds the batch from --edits, or a single edit from the
// positional arguments and --old/--new.
func collectEdits(c *cobra.Command, args []string, batch string) ([]edit.Edit, error) {
	if batch != "" {
		if len(args) > 1 {
			return nil, errors.New("cannot combine --edits with old/new arguments")
		}
		return readBatch(batch)
	}

	old, _ := c.Flags().GetString(extension.FlagOld)
	newStr, _ := c.Flags().GetString(extension.FlagNew)
	replaceAll, _ := c.Flags().GetBool(extension.FlagReplaceAll)
	switch len(args) {
	case 3:
		old, newStr = args[1], args[2]
	case 2:
		return nil, errors.New("both old and new text are required")
	}
	if old == "" {
		return nil, errors.New("old text is required (use positional args or --old flag); use write to replace a whole file")
	}
	return []edit.Edit{{OldString: old, NewString: newStr, ReplaceAll: replaceAll}}, nil
}

// readBatch decodes a list of edits from name, or stdin for "-". YAML is a
// superset of JSON, so one decoder serves both.
func readBatch(name string) ([]edit.Edit, error) {
	var data []byte
	var err error
	if name == "-" {
		data, err = io.ReadAll(cmd.In())
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, fmt.Errorf("read edits: %w", err)
	}
	return ParseBatch(data)
}

// ParseBatch decodes a YAML or JSON list of edits.
func ParseBatch(data []byte) ([]edit.Edit, error) {
	var edits []edit.Edit
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&edits); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("edits file is empty")
		}
		return nil, fmt.Errorf("parse edits: %w", err)
	}
	if len(edits) == 0 {
		return nil, errors.New("edits file is empty")
	}
	return edits, nil
}
