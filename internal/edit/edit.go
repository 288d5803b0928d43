// Package edit validates and applies a batch of string replacements to one
// file's content as a single all-or-nothing transaction.
//
// Apply performs no I/O. The caller supplies the current content, whether
// the file exists, its on-disk mtime and the cached read state; Apply
// returns the new content and the hunks describing the change, or an *Error.
// Writing the result and refreshing the file state cache is the caller's
// job, as is making sure only one transaction runs per path at a time.
//
// Checks run in this order:
//
//  1. every edit must change something (Unchanged)
//  2. an empty old_string is only allowed as the sole edit (InvalidEdit)
//  3. the file must have been read, and not modified since (NotRead, StaleRead)
//  4. typographic quotes in old_string are matched against the file
//  5. each old_string must be unique in the original unless replace_all is set (NotUnique)
//  6. edits apply left to right, rejecting any old_string introduced by an
//     earlier edit's new_string (OverlapConflict) or absent from the running
//     content (NoMatch)
//  7. the final content must differ from the original (Unchanged)
package edit

import (
	"strings"

	"github.com/jpl-au/llmedit/internal/diff"
	"github.com/jpl-au/llmedit/internal/filestate"
	"github.com/jpl-au/llmedit/internal/hunk"
)

// Edit is one requested substitution.
type Edit struct {
	OldString  string `json:"old_string" yaml:"old_string"`
	NewString  string `json:"new_string" yaml:"new_string"`
	ReplaceAll bool   `json:"replace_all,omitempty" yaml:"replace_all,omitempty"`
}

// Request is the input to Apply.
type Request struct {
	Path        string
	Original    string           // current file content, "" when absent
	Exists      bool             // whether the file exists on disk
	DiskMtimeMs int64            // on-disk modification time in milliseconds
	Edits       []Edit
	State       *filestate.State // cached read, nil when the file was never read
	Context     int              // hunk context lines, negative for hunk.DefaultContext
}

// Result is a successful transaction.
type Result struct {
	Hunks          []hunk.Hunk `json:"hunks"`
	UpdatedContent string      `json:"updated_content"`
	Edits          []Edit      `json:"edits"` // edits as applied, after quote matching
}

// step transforms the running content. Steps never mutate their input, so
// a failure part way through leaves the original untouched.
type step func(content string) (string, error)

// Apply validates req and, when every check passes, applies its edits.
func Apply(req Request) (Result, error) {
	if len(req.Edits) == 0 {
		return Result{}, req.fail(InvalidEdit, -1, func(e *Error) { e.Reason = "no edits given" })
	}

	for i, e := range req.Edits {
		if e.OldString == e.NewString {
			return Result{}, req.fail(Unchanged, i, func(err *Error) { err.Match = e.OldString })
		}
		if e.OldString == "" && len(req.Edits) > 1 {
			return Result{}, req.fail(InvalidEdit, i, func(err *Error) {
				err.Reason = "empty old_string is only valid as a single edit"
			})
		}
	}

	if err := req.checkState(); err != nil {
		return Result{}, err
	}

	edits := make([]Edit, len(req.Edits))
	for i, e := range req.Edits {
		edits[i] = matchQuotes(req.Original, e)
	}

	for i, e := range edits {
		if e.OldString == "" || e.ReplaceAll {
			continue
		}
		if n := strings.Count(req.Original, e.OldString); n > 1 {
			return Result{}, req.fail(NotUnique, i, func(err *Error) {
				err.Match = e.OldString
				err.Count = n
			})
		}
	}

	steps := make([]step, len(edits))
	for i := range edits {
		steps[i] = req.stepFor(i, edits)
	}

	content := req.Original
	for _, s := range steps {
		next, err := s(content)
		if err != nil {
			return Result{}, err
		}
		content = next
	}

	if content == req.Original {
		return Result{}, req.fail(Unchanged, -1, nil)
	}

	ops := diff.Text(req.Original, content, diff.Options{})
	return Result{
		Hunks:          hunk.Build(ops, req.Context),
		UpdatedContent: content,
		Edits:          edits,
	}, nil
}

// checkState enforces read-before-write and staleness.
func (r Request) checkState() error {
	if !r.Exists {
		for i, e := range r.Edits {
			if e.OldString != "" {
				return r.fail(NoMatch, i, func(err *Error) {
					err.Match = e.OldString
					err.Reason = "File does not exist."
				})
			}
		}
		return nil
	}

	if r.State == nil {
		return r.fail(NotRead, -1, nil)
	}
	if r.Edits[0].OldString == "" && r.State.Partial {
		return r.fail(NotRead, -1, func(e *Error) {
			e.Reason = "File has only been partially read. Read it in full before overwriting it."
		})
	}
	if r.DiskMtimeMs > r.State.MtimeMs {
		return r.fail(StaleRead, -1, nil)
	}
	return nil
}

// stepFor builds the step applying edits[i]. Earlier edits' new strings are
// captured so the step can reject an old_string they introduced.
func (r Request) stepFor(i int, edits []Edit) step {
	e := edits[i]
	previous := edits[:i]
	return func(content string) (string, error) {
		if trimmed := strings.TrimRight(e.OldString, "\n"); trimmed != "" {
			for _, p := range previous {
				if strings.Contains(p.NewString, trimmed) {
					return "", r.fail(OverlapConflict, i, func(err *Error) { err.Match = e.OldString })
				}
			}
		}

		if e.OldString == "" {
			return e.NewString, nil
		}

		next := replace(content, e)
		if next == content {
			return "", r.fail(NoMatch, i, func(err *Error) { err.Match = e.OldString })
		}
		return next, nil
	}
}

// replace applies one substitution. Deleting a whole line without its
// newline would leave a blank line behind, so when new_string is empty and
// old_string followed by a newline occurs, that longer match is removed.
func replace(content string, e Edit) string {
	old := e.OldString
	if e.NewString == "" && !strings.HasSuffix(old, "\n") && strings.Contains(content, old+"\n") {
		old += "\n"
	}
	if e.ReplaceAll {
		return strings.ReplaceAll(content, old, e.NewString)
	}
	return strings.Replace(content, old, e.NewString, 1)
}

func (r Request) fail(k Kind, index int, fill func(*Error)) *Error {
	e := &Error{Kind: k, Path: r.Path, Index: index, Batch: len(r.Edits) > 1}
	if fill != nil {
		fill(e)
	}
	return e
}
