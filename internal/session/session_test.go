package session

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/llmedit/internal/config"
	"github.com/jpl-au/llmedit/internal/diff"
	"github.com/jpl-au/llmedit/internal/edit"
	"github.com/jpl-au/llmedit/internal/fileio"
	"github.com/jpl-au/llmedit/internal/filestate"
	"github.com/jpl-au/llmedit/internal/hunk"
	"github.com/jpl-au/llmedit/internal/repo"
	"github.com/jpl-au/llmedit/internal/service"
	"github.com/jpl-au/llmedit/internal/tokenize"
	"github.com/jpl-au/llmedit/internal/validate"
)

const testFile = "/work/a.txt"

type fixture struct {
	svc   *Service
	fs    *fileio.Memory
	cache *filestate.Memory
}

func newFixture(t *testing.T, files map[string]string) fixture {
	t.Helper()
	mem := fileio.NewMemory()
	for p, c := range files {
		_, err := mem.Write(p, c)
		require.NoError(t, err)
	}
	cache := filestate.NewMemory()
	return fixture{svc: New(&config.Config{}, cache, mem), fs: mem, cache: cache}
}

func (f fixture) content(t *testing.T, p string) string {
	t.Helper()
	c, _, err := f.fs.Read(p)
	require.NoError(t, err)
	return c
}

func one(old, new string) []edit.Edit {
	return []edit.Edit{{OldString: old, NewString: new}}
}

func TestEditRequiresRead(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, map[string]string{testFile: "line1\nline2\nline3\n"})

	_, err := f.svc.Edit(ctx, testFile, one("line2", "LINE2"), service.EditOptions{})
	assert.ErrorIs(t, err, edit.ErrNotRead)

	_, err = f.svc.Read(ctx, testFile, service.ReadOptions{})
	require.NoError(t, err)

	res, err := f.svc.Edit(ctx, testFile, one("line2", "LINE2"), service.EditOptions{})
	require.NoError(t, err)
	assert.Equal(t, "line1\nLINE2\nline3\n", f.content(t, testFile))
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 1, res.Removed)
	require.Len(t, res.Hunks, 1)
	assert.Equal(t, "@@ -1,3 +1,3 @@", res.Hunks[0].Header())
	require.Len(t, res.Marks, 1)
	assert.False(t, res.Created)
	assert.Empty(t, res.UpdatedContent)

	// The write refreshed the recorded read, so a follow-up edit needs none.
	_, err = f.svc.Edit(ctx, testFile, one("line3", "LINE3"), service.EditOptions{})
	require.NoError(t, err)
	assert.Equal(t, "line1\nLINE2\nLINE3\n", f.content(t, testFile))
}

func TestEditStaleAfterExternalChange(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, map[string]string{testFile: "old\n"})

	_, err := f.svc.Read(ctx, testFile, service.ReadOptions{})
	require.NoError(t, err)
	_, err = f.fs.Write(testFile, "changed elsewhere\nold\n")
	require.NoError(t, err)

	_, err = f.svc.Edit(ctx, testFile, one("old", "new"), service.EditOptions{})
	assert.ErrorIs(t, err, edit.ErrStaleRead)
	assert.Equal(t, "changed elsewhere\nold\n", f.content(t, testFile))
}

func TestEditAfterTouch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, map[string]string{testFile: "old\n"})

	_, err := f.svc.Read(ctx, testFile, service.ReadOptions{})
	require.NoError(t, err)
	f.fs.Touch(testFile)

	_, err = f.svc.Edit(ctx, testFile, one("old", "new"), service.EditOptions{})
	assert.ErrorIs(t, err, edit.ErrStaleRead)
	assert.Equal(t, "old\n", f.content(t, testFile))

	_, err = f.svc.Read(ctx, testFile, service.ReadOptions{})
	require.NoError(t, err)
	_, err = f.svc.Edit(ctx, testFile, one("old", "new"), service.EditOptions{})
	require.NoError(t, err)
	assert.Equal(t, "new\n", f.content(t, testFile))
}

func TestReadWindow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, map[string]string{testFile: "1\n2\n3\n4\n5\n"})

	res, err := f.svc.Read(ctx, testFile, service.ReadOptions{Offset: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, "2\n3\n", res.Content)
	assert.Equal(t, 2, res.StartLine)
	assert.Equal(t, 2, res.Lines)
	assert.Equal(t, 5, res.TotalLines)
	assert.True(t, res.Partial)

	st, err := f.cache.Get(ctx, testFile)
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.True(t, st.Partial)
	assert.Equal(t, "1\n2\n3\n4\n5\n", st.Content)

	res, err = f.svc.Read(ctx, testFile, service.ReadOptions{Offset: 1, Limit: 100})
	require.NoError(t, err)
	assert.False(t, res.Partial)

	_, err = f.svc.Read(ctx, testFile, service.ReadOptions{Offset: 9})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "beyond the end")

	_, err = f.svc.Read(ctx, "/work/missing.txt", service.ReadOptions{})
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestWrite(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, map[string]string{testFile: "1\n2\n3\n"})

	res, err := f.svc.Write(ctx, "/work/new.txt", "hello\n", service.EditOptions{})
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, "hello\n", f.content(t, "/work/new.txt"))

	res, err = f.svc.Write(ctx, "/work/empty.txt", "", service.EditOptions{})
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.True(t, f.fs.Exists("/work/empty.txt"))

	_, err = f.svc.Write(ctx, testFile, "replaced\n", service.EditOptions{})
	assert.ErrorIs(t, err, edit.ErrNotRead)

	_, err = f.svc.Read(ctx, testFile, service.ReadOptions{Limit: 1})
	require.NoError(t, err)
	_, err = f.svc.Write(ctx, testFile, "replaced\n", service.EditOptions{})
	assert.ErrorIs(t, err, edit.ErrNotRead)

	_, err = f.svc.Read(ctx, testFile, service.ReadOptions{})
	require.NoError(t, err)
	res, err = f.svc.Write(ctx, testFile, "replaced\n", service.EditOptions{})
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, 3, res.Removed)
	assert.Equal(t, "replaced\n", f.content(t, testFile))
}

func TestDryRun(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, map[string]string{testFile: "a\nb\n"})
	_, err := f.svc.Read(ctx, testFile, service.ReadOptions{})
	require.NoError(t, err)

	zero := 0
	res, err := f.svc.Edit(ctx, testFile, one("b", "B"), service.EditOptions{DryRun: true, Context: &zero})
	require.NoError(t, err)
	assert.True(t, res.DryRun)
	assert.Equal(t, "a\nB\n", res.UpdatedContent)
	require.Len(t, res.Hunks, 1)
	assert.Equal(t, 2, res.Hunks[0].OldStart)
	assert.Equal(t, "a\nb\n", f.content(t, testFile))

	st, err := f.cache.Get(ctx, testFile)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", st.Content)
}

func TestEditLines(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, map[string]string{testFile: "x\ny\nx\ny\nz\n"})

	_, err := f.svc.EditLines(ctx, testFile, 2, 2, "Y", service.EditOptions{})
	assert.ErrorIs(t, err, edit.ErrNotRead)

	_, err = f.svc.Read(ctx, testFile, service.ReadOptions{})
	require.NoError(t, err)

	_, err = f.svc.EditLines(ctx, testFile, 4, 4, "Y", service.EditOptions{})
	require.NoError(t, err)
	assert.Equal(t, "x\ny\nx\nY\nz\n", f.content(t, testFile))

	_, err = f.svc.EditLines(ctx, testFile, 10, 11, "Y", service.EditOptions{})
	assert.ErrorIs(t, err, edit.ErrInvalidEdit)
	assert.ErrorIs(t, err, edit.ErrInvalidLineRange)
}

func TestForget(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, map[string]string{testFile: "a\n", "/work/b.txt": "b\n"})
	for _, p := range []string{testFile, "/work/b.txt"} {
		_, err := f.svc.Read(ctx, p, service.ReadOptions{})
		require.NoError(t, err)
	}

	require.NoError(t, f.svc.Forget(ctx, testFile))
	_, err := f.svc.Edit(ctx, testFile, one("a", "A"), service.EditOptions{})
	assert.ErrorIs(t, err, edit.ErrNotRead)
	assert.Equal(t, 1, f.cache.Len())

	require.NoError(t, f.svc.Forget(ctx, ""))
	assert.Equal(t, 0, f.cache.Len())
}

func TestLimitsAndPaths(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, map[string]string{testFile: "0123456789\n"})
	require.NoError(t, f.svc.Config().Set("limits.max_content", "5"))

	_, err := f.svc.Read(ctx, testFile, service.ReadOptions{})
	assert.ErrorIs(t, err, validate.ErrContentTooLarge)

	_, err = f.svc.Edit(ctx, "", one("a", "b"), service.EditOptions{})
	assert.ErrorIs(t, err, edit.ErrInvalidPath)
	assert.ErrorIs(t, err, validate.ErrInvalidPath)
	assert.Equal(t, edit.InvalidPath, edit.KindOf(err))
}

func TestConcurrentEditsSamePath(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, map[string]string{testFile: "a\nb\nc\nd\n"})
	_, err := f.svc.Read(ctx, testFile, service.ReadOptions{})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i, s := range []string{"a", "b", "c", "d"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = f.svc.Edit(ctx, testFile, one(s+"\n", s+s+"\n"), service.EditOptions{})
		}()
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, "aa\nbb\ncc\ndd\n", f.content(t, testFile))
	assert.Empty(t, f.svc.locks.m)
}

func TestDiff(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	res, err := f.svc.Diff(ctx, "a\nb\n", "a\nc\n", service.DiffOptions{Word: true})
	require.NoError(t, err)
	assert.Nil(t, res.Ops)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 1, res.Deleted)
	require.Len(t, res.Hunks, 1)
	require.Len(t, res.Marks, 1)
	assert.False(t, res.Identical)

	res, err = f.svc.Diff(ctx, "one two\n", "one three\n", service.DiffOptions{
		Diff: diff.Options{Tokenizer: tokenize.Word},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Ops)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 1, res.Deleted)
	require.Len(t, res.Hunks, 1)
	assert.Equal(t, []hunk.Line{
		{Marker: hunk.Remove, Text: "one two"},
		{Marker: hunk.Add, Text: "one three"},
	}, res.Hunks[0].Lines)

	res, err = f.svc.Diff(ctx, "Same\n", "same\n", service.DiffOptions{
		Diff: diff.Options{Tokenize: tokenize.Options{IgnoreCase: true}},
	})
	require.NoError(t, err)
	assert.True(t, res.Identical)
	assert.Empty(t, res.Hunks)
}

func TestOpenPersistsReads(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(func() { config.SetLocalDir(config.Dir) })

	require.NoError(t, Init(false, root))
	t.Chdir(root)
	require.NoError(t, os.WriteFile(filepath.Join(root, "f.txt"), []byte("one\ntwo\n"), 0644))

	svc, err := Open()
	require.NoError(t, err)
	_, err = svc.Read(ctx, "f.txt", service.ReadOptions{})
	require.NoError(t, err)
	require.NoError(t, svc.Close())
	require.NoError(t, svc.Close())

	// A second process sees the first one's read.
	svc, err = Open()
	require.NoError(t, err)
	defer svc.Close()
	res, err := svc.Edit(ctx, "f.txt", one("two", "2"), service.EditOptions{})
	require.NoError(t, err)
	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "f.txt"), res.Path)

	data, err := os.ReadFile(filepath.Join(root, "f.txt"))
	require.NoError(t, err)
	assert.Equal(t, "one\n2\n", string(data))
}

func TestOpenNotInitialised(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := Open()
	assert.ErrorIs(t, err, repo.ErrNotInitialised)
}
