// Package service defines the shared interface for file edit operations.
// Commands, extensions and the MCP server depend on this interface rather
// than the concrete session implementation, enabling testing with fakes.
package service

import (
	"context"

	"github.com/jpl-au/llmedit/internal/config"
	"github.com/jpl-au/llmedit/internal/diff"
	"github.com/jpl-au/llmedit/internal/edit"
	"github.com/jpl-au/llmedit/internal/hunk"
	"github.com/jpl-au/llmedit/internal/worddiff"
)

// Service defines all file operations.
//
// Extensions should use session.Open() to obtain a Service implementation.
// Always call Close() when done (use defer).
//
// Example:
//
//	svc, err := session.Open()
//	if err != nil {
//	    return err
//	}
//	defer svc.Close()
//	res, err := svc.Edit(ctx, "main.go", []edit.Edit{{OldString: "a", NewString: "b"}}, service.EditOptions{})
type Service interface {
	// Close releases the file state cache. Always defer this after Open().
	Close() error

	// Config returns the configuration in effect. Changes made through the
	// returned pointer apply to later operations.
	Config() *config.Config

	// Read returns a file's content and records it as seen, so later edits
	// can be checked against it. A window read (offset/limit not covering
	// the whole file) is recorded as partial.
	Read(ctx context.Context, path string, opts ReadOptions) (ReadResult, error)

	// Edit applies a batch of string replacements as one transaction.
	// The file must have been read and not changed since, unless every edit
	// creates a missing file. Failures are *edit.Error values.
	Edit(ctx context.Context, path string, edits []edit.Edit, opts EditOptions) (EditResult, error)

	// EditLines replaces lines start..end (1-indexed, inclusive) of the
	// content last read. It runs through the same checks as Edit.
	EditLines(ctx context.Context, path string, start, end int, replacement string, opts EditOptions) (EditResult, error)

	// Write replaces the whole file. Creating a file needs no read;
	// overwriting an existing one needs a full, fresh read.
	Write(ctx context.Context, path, content string, opts EditOptions) (EditResult, error)

	// Diff compares two texts without touching the filesystem.
	Diff(ctx context.Context, oldText, newText string, opts DiffOptions) (DiffResult, error)

	// Forget drops the recorded read for path, or for every file when path
	// is empty.
	Forget(ctx context.Context, path string) error
}

// ReadOptions selects a window of lines. Offset is the 1-indexed first
// line (0 for the start) and Limit the number of lines (0 for all).
type ReadOptions struct {
	Offset int
	Limit  int
}

// ReadResult is the outcome of Read.
type ReadResult struct {
	Path       string `json:"path"`
	Content    string `json:"content"`    // the requested window
	StartLine  int    `json:"start_line"` // 1-indexed line number of the window's first line
	Lines      int    `json:"lines"`      // lines in the window
	TotalLines int    `json:"total_lines"`
	Partial    bool   `json:"partial,omitempty"`
	MtimeMs    int64  `json:"mtime_ms"`
}

// EditOptions controls how an edit is applied and reported.
type EditOptions struct {
	// Context is the number of hunk context lines; nil uses the
	// configured diff.context.
	Context *int
	// DryRun computes the result without writing or updating the cache.
	DryRun bool
}

// EditResult is the outcome of Edit, EditLines and Write.
type EditResult struct {
	Path           string            `json:"path"`
	Created        bool              `json:"created,omitempty"`
	Hunks          []hunk.Hunk       `json:"hunks"`
	Marks          [][]worddiff.Mark `json:"marks,omitempty"` // word highlights, one slice per hunk
	Added          int               `json:"added"`
	Removed        int               `json:"removed"`
	Edits          []edit.Edit       `json:"edits,omitempty"` // edits as applied
	UpdatedContent string            `json:"updated_content,omitempty"`
	DryRun         bool              `json:"dry_run,omitempty"`
}

// DiffOptions configures a read-only comparison.
type DiffOptions struct {
	Diff    diff.Options
	Context *int // nil uses the configured diff.context
	Word    bool // compute word highlights
}

// DiffResult is the outcome of Diff.
type DiffResult struct {
	Ops       []diff.Op         `json:"ops,omitempty"` // token-level script, for non-line tokenizers
	Hunks     []hunk.Hunk       `json:"hunks"`
	Marks     [][]worddiff.Mark `json:"marks,omitempty"`
	Inserted  int               `json:"inserted"` // tokens inserted
	Deleted   int               `json:"deleted"`  // tokens deleted
	Identical bool              `json:"identical"`
}
