// Package filestate records what was last read from each file.
//
// An edit is only accepted against content the caller has actually seen, so
// every read stores the content and modification time here and every
// successful write refreshes the entry. The cache is owned and passed around
// by the caller; there is no package-level instance.
//
// Two backends implement Cache: Memory for a single long-lived process such
// as the MCP server, and SQLite for the CLI, where a read and the edit that
// follows it run in separate processes.
package filestate

import (
	"context"
	"errors"
	"time"

	"github.com/jpl-au/llmedit/internal/path"
)

// ErrClosed is returned by a cache that has been closed.
var ErrClosed = errors.New("file state cache closed")

// State is the record of one read.
type State struct {
	Path    string    `json:"path"`     // canonical absolute path
	Content string    `json:"content"`  // content as read
	MtimeMs int64     `json:"mtime_ms"` // on-disk modification time at read, in milliseconds
	ReadAt  time.Time `json:"read_at"`
	Partial bool      `json:"partial,omitempty"` // recorded from an offset/limit read
}

// Cache stores one State per canonical path. Implementations are safe for
// concurrent use, but they do not serialise transactions on the same path;
// that remains the caller's job.
type Cache interface {
	// Get returns the state for path, or nil and no error when there is none.
	Get(ctx context.Context, path string) (*State, error)
	// Put records s, replacing any earlier state for s.Path.
	Put(ctx context.Context, s State) error
	// Invalidate drops the state for path. Missing entries are not an error.
	Invalidate(ctx context.Context, path string) error
	// Clear drops every entry.
	Clear(ctx context.Context) error
}

// Key returns the lookup key for a canonical path. Paths are compared
// case-insensitively on platforms whose filesystems usually are.
func Key(p string) string {
	return path.Key(p)
}
