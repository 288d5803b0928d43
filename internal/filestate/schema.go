// schema.go embeds the SQLite schema for the persistent cache.
//
// Schema files live in sql/ and run in name order, so numeric prefixes
// (001_, 002_) fix the sequence. Each file uses IF NOT EXISTS and is safe to
// run on every open.

package filestate

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed sql/*.sql
var schemas embed.FS

// ExecEmbedded executes every .sql file in dir of fsys in name order.
func ExecEmbedded(db *sql.DB, fsys embed.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("read schema directory: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		p := dir + "/" + entry.Name()
		data, err := fsys.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		if _, err := db.Exec(string(data)); err != nil {
			return fmt.Errorf("exec %s: %w", entry.Name(), err)
		}
	}
	return nil
}
