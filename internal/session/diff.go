package session

import (
	"context"
	"fmt"

	"github.com/jpl-au/llmedit/internal/diff"
	"github.com/jpl-au/llmedit/internal/hunk"
	"github.com/jpl-au/llmedit/internal/service"
	"github.com/jpl-au/llmedit/internal/tokenize"
	"github.com/jpl-au/llmedit/internal/validate"
	"github.com/jpl-au/llmedit/internal/worddiff"
)

// Diff compares two texts. Hunks always come from a line diff; with another
// tokenizer the token-level ops are returned alongside them.
func (s *Service) Diff(ctx context.Context, oldText, newText string, opts service.DiffOptions) (service.DiffResult, error) {
	for _, t := range []string{oldText, newText} {
		if err := validate.Content(t, s.cfg.MaxContent()); err != nil {
			return service.DiffResult{}, fmt.Errorf("diff: %w", err)
		}
	}
	if err := ctx.Err(); err != nil {
		return service.DiffResult{}, err
	}

	ops := diff.Text(oldText, newText, opts.Diff)
	inserted, deleted := diff.Stats(ops)
	out := service.DiffResult{
		Inserted:  inserted,
		Deleted:   deleted,
		Identical: diff.Identical(ops),
	}

	lineOps := ops
	if opts.Diff.Tokenizer != tokenize.Line {
		out.Ops = ops
		lineOpts := opts.Diff
		lineOpts.Tokenizer = tokenize.Line
		lineOps = diff.Text(oldText, newText, lineOpts)
	}
	out.Hunks = hunk.Build(lineOps, s.context(opts.Context))
	if out.Hunks == nil {
		out.Hunks = []hunk.Hunk{}
	}
	if opts.Word {
		out.Marks = worddiff.HighlightHunks(out.Hunks)
	}
	return out, nil
}
