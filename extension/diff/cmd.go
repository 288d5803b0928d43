// cmd.go implements the "llmedit diff" command.
//
// Design: Files are read through the same provider the edit path uses, so a
// directory or oversized file fails the same way it would for an edit.
// Nothing is recorded: diffing a file does not count as reading it.

package diff

import (
	"fmt"
	"io"

	"github.com/jpl-au/llmedit/cmd"
	"github.com/jpl-au/llmedit/extension"
	"github.com/jpl-au/llmedit/internal/fileio"
	"github.com/jpl-au/llmedit/internal/filestate"
	"github.com/jpl-au/llmedit/internal/format"
	"github.com/jpl-au/llmedit/internal/hunk"
	"github.com/jpl-au/llmedit/internal/log"
	"github.com/jpl-au/llmedit/internal/service"
	"github.com/jpl-au/llmedit/internal/session"
	"github.com/spf13/cobra"
)

func (e *Extension) newDiffCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "diff <old> <new>",
		Short: "Compare two files",
		Long: `Compare two files and print unified diff hunks. Nothing is recorded.

  llmedit diff a.txt b.txt
  llmedit diff a.txt b.txt --tokenizer word
  llmedit diff a.json b.json --tokenizer json
  llmedit diff a.go b.go --algorithm histogram -C 2
  llmedit diff a.md b.md --markdown

Tokenizers: line, char, word, sentence, css, json.`,
		Args: cobra.ExactArgs(2),
		RunE: e.runDiff,
	}
	c.Flags().StringP(extension.FlagTokenizer, "t", "", "Tokenizer (default from diff.tokenizer)")
	c.Flags().String(extension.FlagAlgorithm, "", "Diff algorithm: myers or histogram (default from diff.algorithm)")
	c.Flags().Bool(extension.FlagLongestToken, false, "Prefer alignments on long tokens")
	c.Flags().BoolP(extension.FlagIgnoreCase, "i", false, "Compare case-insensitively")
	c.Flags().BoolP(extension.FlagIgnoreWhitespace, "b", false, "Ignore whitespace around tokens")
	c.Flags().IntP(extension.FlagContext, "C", -1, "Context lines around changes (default from diff.context)")
	c.Flags().BoolP(extension.FlagWord, "w", false, "Highlight changed words inside replaced lines")
	c.Flags().Bool(extension.FlagMarkdown, false, "Render through the terminal markdown renderer")
	return c
}

func (e *Extension) runDiff(c *cobra.Command, args []string) error {
	cfg, err := cmd.LoadConfig()
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("config load: %w", err))
	}

	r := request{}
	r.Tokenizer, _ = c.Flags().GetString(extension.FlagTokenizer)
	r.Algorithm, _ = c.Flags().GetString(extension.FlagAlgorithm)
	r.IgnoreCase, _ = c.Flags().GetBool(extension.FlagIgnoreCase)
	r.IgnoreWhitespace, _ = c.Flags().GetBool(extension.FlagIgnoreWhitespace)
	r.Word, _ = c.Flags().GetBool(extension.FlagWord)
	if c.Flags().Changed(extension.FlagLongestToken) {
		v, _ := c.Flags().GetBool(extension.FlagLongestToken)
		r.LongestToken = &v
	}
	if n, _ := c.Flags().GetInt(extension.FlagContext); n >= 0 {
		r.Context = &n
	}
	markdown, _ := c.Flags().GetBool(extension.FlagMarkdown)

	opts, err := r.options(cfg)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("diff: %w", err))
	}

	svc := session.New(cfg, filestate.NewMemory(), fileio.OS{})
	res, err := compareFiles(c, svc, args[0], args[1], opts)

	log.Event("diff:diff", "diff").
		Author(cmd.Author()).
		Path(args[0]).
		Detail("new", args[1]).
		Detail("tokenizer", opts.Diff.Tokenizer.String()).
		Changes(len(res.Hunks), res.Inserted, res.Deleted).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("diff: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(res)
	}
	return render(cmd.Out(), args[0], args[1], res, markdown, cmd.Colour(cfg))
}

func compareFiles(c *cobra.Command, svc *session.Service, oldPath, newPath string, opts service.DiffOptions) (service.DiffResult, error) {
	var fs fileio.OS
	oldText, _, err := fs.Read(oldPath)
	if err != nil {
		return service.DiffResult{}, fmt.Errorf("read %s: %w", oldPath, err)
	}
	newText, _, err := fs.Read(newPath)
	if err != nil {
		return service.DiffResult{}, fmt.Errorf("read %s: %w", newPath, err)
	}
	return svc.Diff(c.Context(), oldText, newText, opts)
}

// render writes res for a terminal or a pipe.
func render(w io.Writer, oldLabel, newLabel string, res service.DiffResult, markdown, colour bool) error {
	if res.Identical {
		_, err := fmt.Fprintln(w, "No differences")
		return err
	}

	if markdown {
		out, err := format.Markdown(hunk.Unified(oldLabel, newLabel, res.Hunks))
		if err == nil {
			_, err = io.WriteString(w, out)
			return err
		}
	}

	if len(res.Hunks) > 0 {
		if err := format.Hunks(w, oldLabel, newLabel, res.Hunks, res.Marks, colour); err != nil {
			return err
		}
	}
	if res.Ops != nil {
		if len(res.Hunks) > 0 {
			fmt.Fprintln(w)
		}
		if err := format.Inline(w, res.Ops, colour); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d inserted, %d deleted\n", res.Inserted, res.Deleted)
	return err
}
