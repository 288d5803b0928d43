package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	// diff needs no workspace
	env := newBareEnv(t)
	env.writeFile("a.txt", "a\nb\nc\n")
	env.writeFile("b.txt", "a\nB\nc\n")

	out := env.run("diff", "a.txt", "b.txt")
	env.equals(out, "--- a.txt\n+++ b.txt\n@@ -1,3 +1,3 @@\n a\n-b\n+B\n c\n1 inserted, 1 deleted")

	out = env.run("diff", "a.txt", "b.txt", "-C", "0")
	env.contains(out, "@@ -2 +2 @@")

	env.equals(env.run("diff", "a.txt", "a.txt"), "No differences")
	env.equals(env.run("diff", "a.txt", "b.txt", "-i"), "No differences")

	_, err := env.runErr("diff", "a.txt", "missing.txt")
	assert.Error(t, err)
}

func TestDiffTokenizers(t *testing.T) {
	env := newBareEnv(t)
	env.writeFile("old.txt", "one two three\n")
	env.writeFile("new.txt", "one 2 three\n")

	out := env.run("diff", "old.txt", "new.txt", "-t", "word")
	env.contains(out, "[-two-]{+2+}")

	env.writeFile("old.json", `{"a": 1, "b": [1, 2]}`)
	env.writeFile("new.json", "{\n  \"a\": 1,\n  \"b\": [1, 3]\n}\n")
	out = env.run("diff", "old.json", "new.json", "-t", "json")
	env.contains(out, "-2")
	env.contains(out, "+3")

	_, err := env.runErr("diff", "old.txt", "new.txt", "-t", "ast")
	assert.Error(t, err)
}

func TestDiffHistogram(t *testing.T) {
	env := newBareEnv(t)
	env.writeFile("a.go", testSource)
	env.writeFile("b.go", testSourceRewrite)

	myers := env.run("diff", "a.go", "b.go")
	histogram := env.run("diff", "a.go", "b.go", "--algorithm", "histogram")
	for _, out := range []string{myers, histogram} {
		env.contains(out, "+\t\"os\"")
		env.contains(out, "-\tfmt.Println(\"hello\")")
	}
}

func TestDiffJSON(t *testing.T) {
	env := newBareEnv(t)
	env.writeFile("a.txt", "x\n")
	env.writeFile("b.txt", "y\n")

	out := env.run("diff", "a.txt", "b.txt", "-o", "json")
	var res struct {
		Hunks     []any `json:"hunks"`
		Inserted  int   `json:"inserted"`
		Deleted   int   `json:"deleted"`
		Identical bool  `json:"identical"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Len(t, res.Hunks, 1)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 1, res.Deleted)
	assert.False(t, res.Identical)
}

func TestDiffDoesNotRecordRead(t *testing.T) {
	env := newTestEnv(t)
	env.writeFile("a.txt", "a\n")
	env.writeFile("b.txt", "b\n")

	env.run("diff", "a.txt", "b.txt")
	_, err := env.runErr("edit", "a.txt", "a", "A", "-a", "tester")
	assert.Error(t, err)
}
