// Package log provides centralised audit logging for llmedit operations.
// Logs are stored in ~/.llmedit/log/llmedit-log.db and track every read,
// edit and write made through the CLI or MCP tools, across workspaces.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("file:read", "read").
//		Author(cmd.Author()).
//		Path(p).
//		Write(err)
//
//	log.Event("edit:edit", "edit").
//		Author(cmd.Author()).
//		Path(p).
//		Changes(len(res.Hunks), added, removed).
//		Detail("edits", len(edits)).
//		Write(err)
//
// The source parameter follows the format "{extension}:{command}" for CLI
// commands or "mcp:{tool}" for MCP tools. Examples: "file:read",
// "edit:edit", "mcp:llmedit_write".
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source string `json:"source"`           // e.g., "edit:edit", "mcp:llmedit_read"
	Author string `json:"author,omitempty"` // who performed the action
	Action string `json:"action"`           // verb: read, edit, write, forget
	Path   string `json:"path,omitempty"`   // input: file path requested

	// Output fields - populated after operation succeeds
	ResolvedPath string `json:"resolved_path,omitempty"` // canonical absolute path
	Hunks        int    `json:"hunks,omitempty"`         // hunks produced by an edit
	Added        int    `json:"added,omitempty"`         // lines added
	Removed      int    `json:"removed,omitempty"`       // lines removed

	// Timing, unix seconds
	Start int64 `json:"start"`
	End   int64 `json:"end"`

	Success bool           `json:"success"`
	Error   string         `json:"error,omitempty"`
	Detail  map[string]any `json:"detail,omitempty"`
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write]
// to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The source identifies where the operation originated:
//   - CLI commands: "{extension}:{command}" (e.g., "file:read", "edit:edit")
//   - MCP tools: "mcp:{tool}" (e.g., "mcp:llmedit_edit")
//
// The action describes what operation was performed:
//   - "read", "edit", "write", "diff", "forget", "config", etc.
//
// Example:
//
//	log.Event("file:write", "write").
//		Author(cmd.Author()).
//		Path(p).
//		Write(err)
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Author sets who performed the operation.
//
// For CLI commands, use cmd.Author() which returns the configured author.
// For MCP tools, use "mcp" as the author.
//
// Example:
//
//	log.Event("file:read", "read").Author(cmd.Author())
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Path sets the file path this operation affects.
//
// Leave unset for operations that don't target files (e.g., config).
//
// Example:
//
//	log.Event("file:read", "read").Path("src/main.go")
func (b *Builder) Path(path string) *Builder {
	b.entry.Path = path
	return b
}

// Resolved sets the resolved/canonical path (output).
//
// Use when the canonical path differs from the input, such as a relative
// path resolved against the working directory.
//
// Example:
//
//	l.Resolved(result.Path)  // After confirming success
func (b *Builder) Resolved(path string) *Builder {
	b.entry.ResolvedPath = path
	return b
}

// Changes records the size of an edit (output): hunk count and the number
// of lines added and removed.
//
// Example:
//
//	added, removed := hunk.Summary(res.Hunks)
//	l.Changes(len(res.Hunks), added, removed)
func (b *Builder) Changes(hunks, added, removed int) *Builder {
	b.entry.Hunks = hunks
	b.entry.Added = added
	b.entry.Removed = removed
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
//
// Use for operation-specific data that doesn't fit standard fields:
// edit counts, tokenizer names, error kinds, etc.
// Can be called multiple times to add multiple details.
//
// Example:
//
//	log.Event("edit:edit", "edit").
//		Detail("edits", len(edits)).
//		Detail("kind", edit.KindOf(err).String())
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure from err.
//
// If err is nil, the entry is logged as successful.
// If err is non-nil, the entry is logged as failed with the error message.
//
// This is the standard way to complete a log entry after an operation.
//
// Example:
//
//	res, err := svc.Read(ctx, path, opts)
//	log.Event("file:read", "read").Path(path).Write(err)
//	if err != nil {
//		return err
//	}
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProject sets the project identifier for subsequent log entries.
// The dir should be the absolute path to the .llmedit directory.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
