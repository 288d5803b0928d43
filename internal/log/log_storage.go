// log_storage.go persists audit entries to SQLite and reads them back for
// "llmedit log".
//
// One database under ~/.llmedit/log serves every workspace; entries carry a
// hash of the workspace directory so one project's history can be selected
// without storing its path. Writes are best-effort: a failed insert is
// reported on stderr and the edit it describes still succeeds.

package log

import (
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/blake2b"
	_ "modernc.org/sqlite"
)

// Logger writes audit log entries to a SQLite database.
type Logger struct {
	db      *sql.DB
	project string
}

func (l *Logger) log(e Entry) {
	var detail *string
	if len(e.Detail) > 0 {
		if b, err := json.Marshal(e.Detail); err == nil {
			s := string(b)
			detail = &s
		}
	}

	success := 0
	if e.Success {
		success = 1
	}

	_, err := l.db.Exec(`
		INSERT INTO log (start, end, project, source, author, action, path,
		                 resolved_path, hunks, added, removed, success, error, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Start, e.End, l.project, e.Source, nilIfEmpty(e.Author), e.Action,
		nilIfEmpty(e.Path), nilIfEmpty(e.ResolvedPath),
		nilIfZero(e.Hunks), nilIfZero(e.Added), nilIfZero(e.Removed),
		success, nilIfEmpty(e.Error), detail,
	)
	if err != nil {
		// Best-effort logging: don't break main operation, but report failure
		_, _ = fmt.Fprintf(os.Stderr, "llmedit: audit log write failed: %v\n", err)
	}
}

// dbPathFunc is the function that returns the database path.
// Tests can override this to use a temp directory.
var dbPathFunc = defaultDBPath

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fall back to current directory if home cannot be determined.
		// This allows logging to work in unusual environments (containers, etc.)
		// rather than silently failing.
		return filepath.Join(".llmedit", "log", "llmedit-log.db")
	}
	return filepath.Join(home, ".llmedit", "log", "llmedit-log.db")
}

func dbPath() string {
	return dbPathFunc()
}

// DBPath returns the path to the log database.
func DBPath() string {
	return dbPath()
}

// hash creates a project identifier from the directory path, enabling
// cross-project log queries while preserving privacy.
func hash(s string) string {
	h, err := blake2b.New(8, nil) // 64-bit = 16 hex chars
	if err != nil {
		// Should never happen with nil key, but don't silently ignore
		panic("blake2b.New failed: " + err.Error())
	}
	h.Write([]byte(s))
	return hex.EncodeToString(h.Sum(nil))
}

// migrate creates the log table if it doesn't exist. Safe for concurrent access.
func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS log (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			start          INTEGER NOT NULL,
			end            INTEGER NOT NULL,
			project        TEXT NOT NULL,
			source         TEXT NOT NULL,
			author         TEXT,
			action         TEXT NOT NULL,
			path           TEXT,
			resolved_path  TEXT,
			hunks          INTEGER,
			added          INTEGER,
			removed        INTEGER,
			success        INTEGER NOT NULL,
			error          TEXT,
			detail         TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_log_start ON log(start);
		CREATE INDEX IF NOT EXISTS idx_log_project ON log(project);
		CREATE INDEX IF NOT EXISTS idx_log_source ON log(source);
	`)
	return err
}

// nilIfEmpty returns nil for empty strings, reducing NULL checks in queries.
func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// nilIfZero returns nil for zero counts so reads and failures store NULL.
func nilIfZero(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}

// ErrClosed is returned by queries when the logger is not open.
var ErrClosed = errors.New("audit log is not open")

// DefaultLimit is the number of entries Recent returns when Query.Limit is 0.
const DefaultLimit = 20

// Query selects audit log entries.
type Query struct {
	Limit   int    // newest first; 0 for DefaultLimit
	Project string // workspace .llmedit directory, "" for every project
	Path    string // matches the requested or the resolved path
	Failed  bool   // only operations that failed
}

// Recent returns the entries matching q, newest first.
func Recent(q Query) ([]Entry, error) {
	mu.Lock()
	l := global
	mu.Unlock()
	if l == nil {
		return nil, ErrClosed
	}

	var where []string
	var args []any
	if q.Project != "" {
		where = append(where, "project = ?")
		args = append(args, hash(q.Project))
	}
	if q.Path != "" {
		where = append(where, "(path = ? OR resolved_path = ?)")
		args = append(args, q.Path, q.Path)
	}
	if q.Failed {
		where = append(where, "success = 0")
	}
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	query := `SELECT start, end, source, author, action, path, resolved_path,
	                 hunks, added, removed, success, error, detail FROM log`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := l.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query log: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var author, path, resolved, errMsg, detail sql.NullString
		var hunks, added, removed sql.NullInt64
		var success int
		if err := rows.Scan(&e.Start, &e.End, &e.Source, &author, &e.Action, &path, &resolved,
			&hunks, &added, &removed, &success, &errMsg, &detail); err != nil {
			return nil, fmt.Errorf("scan log: %w", err)
		}
		e.Author, e.Path, e.ResolvedPath, e.Error = author.String, path.String, resolved.String, errMsg.String
		e.Hunks, e.Added, e.Removed = int(hunks.Int64), int(added.Int64), int(removed.Int64)
		e.Success = success == 1
		if detail.Valid {
			// A corrupt detail column loses the details, not the entry.
			_ = json.Unmarshal([]byte(detail.String), &e.Detail)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
