package fileio

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSReadWrite(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "nested", "a.txt")

	_, _, err := OS{}.Read(p)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.False(t, OS{}.Exists(p))

	mtime, err := OS{}.Write(p, "hello\n")
	require.NoError(t, err)
	assert.Positive(t, mtime)

	assert.True(t, OS{}.Exists(p))
	content, got, err := OS{}.Read(p)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", content)
	assert.Equal(t, mtime, got)

	m, err := OS{}.Mtime(p)
	require.NoError(t, err)
	assert.Equal(t, mtime, m)

	entries, err := os.ReadDir(filepath.Dir(p))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should not be left behind")
}

func TestOSWritePreservesMode(t *testing.T) {
	p := filepath.Join(t.TempDir(), "run.sh")
	require.NoError(t, os.WriteFile(p, []byte("#!/bin/sh\n"), 0755))

	_, err := OS{}.Write(p, "#!/bin/sh\necho hi\n")
	require.NoError(t, err)

	info, err := os.Stat(p)
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0755), info.Mode().Perm())
}

func TestOSDirectory(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, OS{}.Exists(dir))
	_, _, err := OS{}.Read(dir)
	assert.ErrorIs(t, err, ErrIsDirectory)
	_, err = OS{}.Write(dir, "x")
	assert.ErrorIs(t, err, ErrIsDirectory)
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	_, _, err := m.Read("/a")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	assert.False(t, m.Exists("/a"))
	t1, err := m.Write("/a", "one")
	require.NoError(t, err)
	assert.True(t, m.Exists("/a"))
	m.Touch("/a")
	t2, err := m.Mtime("/a")
	require.NoError(t, err)
	assert.Greater(t, t2, t1)

	content, _, err := m.Read("/a")
	require.NoError(t, err)
	assert.Equal(t, "one", content)
}
