package filestate

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Cache {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return map[string]Cache{
		"memory": NewMemory(),
		"sqlite": db,
	}
}

func TestCache(t *testing.T) {
	ctx := context.Background()
	p := filepath.Join(t.TempDir(), "main.go")
	readAt := time.UnixMilli(1_700_000_000_123)

	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			t.Run("missing entry", func(t *testing.T) {
				s, err := c.Get(ctx, p)
				require.NoError(t, err)
				assert.Nil(t, s)
			})

			t.Run("put then get", func(t *testing.T) {
				require.NoError(t, c.Put(ctx, State{Path: p, Content: "package main\n", MtimeMs: 100, ReadAt: readAt}))

				s, err := c.Get(ctx, p)
				require.NoError(t, err)
				require.NotNil(t, s)
				assert.Equal(t, p, s.Path)
				assert.Equal(t, "package main\n", s.Content)
				assert.Equal(t, int64(100), s.MtimeMs)
				assert.Equal(t, readAt.UnixMilli(), s.ReadAt.UnixMilli())
				assert.False(t, s.Partial)
			})

			t.Run("put replaces", func(t *testing.T) {
				require.NoError(t, c.Put(ctx, State{Path: p, Content: "x", MtimeMs: 200, ReadAt: readAt, Partial: true}))

				s, err := c.Get(ctx, p)
				require.NoError(t, err)
				require.NotNil(t, s)
				assert.Equal(t, "x", s.Content)
				assert.Equal(t, int64(200), s.MtimeMs)
				assert.True(t, s.Partial)
			})

			t.Run("invalidate", func(t *testing.T) {
				require.NoError(t, c.Invalidate(ctx, p))
				s, err := c.Get(ctx, p)
				require.NoError(t, err)
				assert.Nil(t, s)

				// missing entries are fine
				require.NoError(t, c.Invalidate(ctx, p))
			})

			t.Run("clear", func(t *testing.T) {
				other := filepath.Join(filepath.Dir(p), "other.go")
				require.NoError(t, c.Put(ctx, State{Path: p, Content: "a", ReadAt: readAt}))
				require.NoError(t, c.Put(ctx, State{Path: other, Content: "b", ReadAt: readAt}))
				require.NoError(t, c.Clear(ctx))

				for _, q := range []string{p, other} {
					s, err := c.Get(ctx, q)
					require.NoError(t, err)
					assert.Nil(t, s)
				}
			})
		})
	}
}

func TestMemoryReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Put(ctx, State{Path: "/tmp/a", Content: "one"}))

	s, err := m.Get(ctx, "/tmp/a")
	require.NoError(t, err)
	s.Content = "changed"

	again, err := m.Get(ctx, "/tmp/a")
	require.NoError(t, err)
	assert.Equal(t, "one", again.Content)
	assert.Equal(t, 1, m.Len())
}

func TestSQLitePersists(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "state.db")

	db, err := OpenSQLite(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.Put(ctx, State{Path: "/work/a.txt", Content: "hello\n", MtimeMs: 42, ReadAt: time.Now()}))
	require.NoError(t, db.Close())

	db, err = OpenSQLite(dbPath)
	require.NoError(t, err)
	defer db.Close()

	s, err := db.Get(ctx, "/work/a.txt")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "hello\n", s.Content)
	assert.Equal(t, int64(42), s.MtimeMs)
}

func TestSQLiteClosed(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = db.Get(context.Background(), "/a")
	assert.ErrorIs(t, err, ErrClosed)
	assert.NoError(t, db.Close())
}
