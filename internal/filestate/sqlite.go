// sqlite.go provides the persistent Cache used by the CLI.
//
// Separated from memory.go because this is the only file that imports the
// SQLite driver. The database lives in the workspace's .llmedit directory so
// `llmedit read` and a later `llmedit edit` see the same records.
//
// Design: WAL mode with a busy timeout. The MCP server and a CLI command may
// touch the same database at once; WAL lets readers proceed during a write
// and the timeout absorbs short lock contention.

package filestate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	// Register sqlite driver
	_ "modernc.org/sqlite"
)

// SQLite is a Cache backed by a SQLite database file.
type SQLite struct {
	db *sql.DB
}

var _ Cache = (*SQLite)(nil)

// OpenSQLite opens or creates the database at path and applies the schema.
// The caller must Close the returned cache.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open state database %s: %w", path, err)
	}

	pragmas := []struct{ sql, what string }{
		{`PRAGMA journal_mode=WAL`, "setting WAL mode"},
		{`PRAGMA busy_timeout=5000`, "setting busy timeout"},
		// NORMAL is safe under WAL; losing the last record on an OS crash
		// only means the file has to be read again.
		{`PRAGMA synchronous=NORMAL`, "setting synchronous mode"},
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p.sql); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p.what, err)
		}
	}

	if err := ExecEmbedded(db, schemas, "sql"); err != nil {
		db.Close()
		return nil, fmt.Errorf("init state schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLite) Get(ctx context.Context, p string) (*State, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	var (
		st      State
		readAt  int64
		partial int
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT path, content, mtime_ms, read_at, partial FROM file_state WHERE key = ?`, Key(p)).
		Scan(&st.Path, &st.Content, &st.MtimeMs, &readAt, &partial)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get file state %s: %w", p, err)
	}
	st.ReadAt = time.UnixMilli(readAt)
	st.Partial = partial != 0
	return &st, nil
}

func (s *SQLite) Put(ctx context.Context, st State) error {
	if s.db == nil {
		return ErrClosed
	}
	partial := 0
	if st.Partial {
		partial = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO file_state (key, path, content, mtime_ms, read_at, partial)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			path = excluded.path,
			content = excluded.content,
			mtime_ms = excluded.mtime_ms,
			read_at = excluded.read_at,
			partial = excluded.partial`,
		Key(st.Path), st.Path, st.Content, st.MtimeMs, st.ReadAt.UnixMilli(), partial)
	if err != nil {
		return fmt.Errorf("put file state %s: %w", st.Path, err)
	}
	return nil
}

func (s *SQLite) Invalidate(ctx context.Context, p string) error {
	if s.db == nil {
		return ErrClosed
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM file_state WHERE key = ?`, Key(p)); err != nil {
		return fmt.Errorf("invalidate file state %s: %w", p, err)
	}
	return nil
}

func (s *SQLite) Clear(ctx context.Context) error {
	if s.db == nil {
		return ErrClosed
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM file_state`); err != nil {
		return fmt.Errorf("clear file state: %w", err)
	}
	return nil
}

// Vacuum reclaims space left by cleared entries.
func (s *SQLite) Vacuum(ctx context.Context) error {
	if s.db == nil {
		return ErrClosed
	}
	_, err := s.db.ExecContext(ctx, `VACUUM`)
	return err
}
