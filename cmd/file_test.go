package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	env := newBareEnv(t)

	out, err := env.runErr("read", "missing.txt")
	require.Error(t, err)
	env.contains(out, "not initialised")

	out = env.run("init")
	env.contains(out, "Initialised llmedit workspace")
	assert.FileExists(t, filepath.Join(env.dir, ".llmedit", "state.db"))

	_, err = env.runErr("init")
	assert.Error(t, err, "second init should need --force")

	env.run("init", "--force")
}

func TestRead(t *testing.T) {
	env := newTestEnv(t)
	env.writeFile("main.go", testSource)

	out := env.run("read", "main.go")
	env.contains(out, "     1→package main")
	env.contains(out, "     6→\tfmt.Println(\"hello\")")

	out = env.run("read", "main.go", "--raw")
	assert.Equal(t, testSource, out)

	out = env.run("read", "main.go", "--offset", "5", "--limit", "2")
	env.equals(out, "     5→func main() {\n     6→\tfmt.Println(\"hello\")")

	env.writeFile("empty.txt", "")
	env.equals(env.run("read", "empty.txt"), "(empty file)")

	_, err := env.runErr("read", "nope.txt")
	assert.Error(t, err)
}

func TestReadJSON(t *testing.T) {
	env := newTestEnv(t)
	env.writeFile("a.txt", "one\ntwo\nthree\n")

	out := env.run("read", "a.txt", "-o", "json", "--offset", "2")
	var res struct {
		Path       string `json:"path"`
		Content    string `json:"content"`
		StartLine  int    `json:"start_line"`
		TotalLines int    `json:"total_lines"`
		Partial    bool   `json:"partial"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "two\nthree\n", res.Content)
	assert.Equal(t, 2, res.StartLine)
	assert.Equal(t, 3, res.TotalLines)
	assert.True(t, res.Partial)
	assert.True(t, filepath.IsAbs(res.Path))
}

func TestWrite(t *testing.T) {
	env := newTestEnv(t)

	out := env.runStdin(testSource, "write", "main.go", "-a", "tester")
	env.contains(out, "--- /dev/null")
	env.contains(out, "+++ b/main.go")
	env.contains(out, "1 hunk, +7 -0")
	assert.Equal(t, testSource, env.readFile("main.go"))

	// The write counts as a read, so an overwrite is allowed straight away.
	out = env.runStdin(testSourceRewrite, "write", "main.go", "-a", "tester")
	env.contains(out, "+++ b/main.go")
	assert.Equal(t, testSourceRewrite, env.readFile("main.go"))

	env.writeFile("other.go", testSource)
	out, err := env.runStdinErr(testSourceRewrite, "write", "other.go", "-a", "tester")
	require.Error(t, err)
	env.contains(out, "has not been read yet")
	assert.Equal(t, testSource, env.readFile("other.go"))
}

func TestWriteNeedsAuthor(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.runStdinErr("x\n", "write", "a.txt")
	require.Error(t, err)
	env.contains(out, "author not configured")

	env.run("config", "author.name", "tester")
	env.runStdin("x\n", "write", "a.txt")
	assert.Equal(t, "x\n", env.readFile("a.txt"))
}

func TestWriteDryRun(t *testing.T) {
	env := newTestEnv(t)

	out := env.runStdin("draft\n", "write", "draft.txt", "--dry-run", "-a", "tester")
	env.contains(out, "+draft")
	assert.NoFileExists(t, filepath.Join(env.dir, "draft.txt"))
}

func TestForget(t *testing.T) {
	env := newTestEnv(t)
	env.writeFile("a.txt", "a\n")
	env.writeFile("b.txt", "b\n")
	env.run("read", "a.txt")
	env.run("read", "b.txt")

	env.equals(env.run("forget", "a.txt"), "Forgot a.txt")
	_, err := env.runErr("edit", "a.txt", "a", "A", "-a", "tester")
	assert.Error(t, err)

	env.equals(env.run("forget", "--all"), "Forgot all recorded reads")
	_, err = env.runErr("edit", "b.txt", "b", "B", "-a", "tester")
	assert.Error(t, err)

	_, err = env.runErr("forget")
	assert.Error(t, err)
}

func TestReadsPersistAcrossRuns(t *testing.T) {
	env := newTestEnv(t)
	env.writeFile("a.txt", "a\n")

	env.run("read", "a.txt")
	env.run("edit", "a.txt", "a", "b", "-a", "tester")

	// Changed behind llmedit's back: the recorded read is stale.
	env.writeFile("a.txt", "changed\n")
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(env.dir, "a.txt"), later, later))
	out, err := env.runErr("edit", "a.txt", "changed", "c", "-a", "tester")
	require.Error(t, err)
	env.contains(out, "modified since read")
	assert.Equal(t, "changed\n", env.readFile("a.txt"))
}
