// Testing Strategy Design Decision:
//
// The cmd/ package contains CLI integration tests that exercise the full stack:
// command parsing -> extension -> session -> file state cache -> filesystem.
//
// Extensions import cmd, so these tests cannot link them in directly. They
// build the real binary once and run it in a temporary directory instead.
// The engine packages (internal/edit, internal/diff, internal/hunk and
// friends) carry their own unit tests; these tests prove the wiring.

package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the llmedit binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		// Build to a temp location
		tmpDir, err := os.MkdirTemp("", "llmedit-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "llmedit"
		if os.PathSeparator == '\\' {
			binaryName = "llmedit.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Find project root (parent of cmd/)
		wd := mustGetwd()
		projectRoot := filepath.Dir(wd)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string // working directory and workspace root
	home   string // isolated home, so global config and the audit log stay out of the user's
	binary string
}

// newTestEnv creates a temporary directory with an initialised llmedit
// workspace.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := newBareEnv(t)
	env.run("init")
	return env
}

// newBareEnv creates a temporary directory with no workspace.
func newBareEnv(t *testing.T) *testEnv {
	t.Helper()

	return &testEnv{t: t, dir: t.TempDir(), home: t.TempDir(), binary: buildBinary(t)}
}

// command builds an llmedit invocation in the environment.
func (e *testEnv) command(args ...string) *exec.Cmd {
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(),
		"HOME="+e.home,
		"USERPROFILE="+e.home,
		"LLMEDIT_DIR=",
	)
	return cmd
}

// run executes llmedit with the given args and returns stdout.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("llmedit %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes llmedit and returns stdout and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	out, err := e.command(args...).CombinedOutput()
	return string(out), err
}

// runStdin executes llmedit with stdin input.
func (e *testEnv) runStdin(input string, args ...string) string {
	e.t.Helper()
	out, err := e.runStdinErr(input, args...)
	if err != nil {
		e.t.Fatalf("llmedit %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runStdinErr executes llmedit with stdin input and returns any error.
func (e *testEnv) runStdinErr(input string, args ...string) (string, error) {
	e.t.Helper()
	cmd := e.command(args...)
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// writeFile creates a file in the environment behind llmedit's back.
func (e *testEnv) writeFile(name, content string) {
	e.t.Helper()
	p := filepath.Join(e.dir, name)
	require.NoError(e.t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(e.t, os.WriteFile(p, []byte(content), 0644))
}

// readFile returns a file's content from disk.
func (e *testEnv) readFile(name string) string {
	e.t.Helper()
	data, err := os.ReadFile(filepath.Join(e.dir, name))
	require.NoError(e.t, err)
	return string(data)
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// equals checks if output equals expected string (trimmed).
func (e *testEnv) equals(output, expected string) {
	e.t.Helper()
	assert.Equal(e.t, strings.TrimSpace(expected), strings.TrimSpace(output))
}

// Sample source an LLM might edit.
const testSource = `package main

import "fmt"

func main() {
	fmt.Println("hello")
}
`

// testSourceRewrite is a full rewrite of testSource.
const testSourceRewrite = `package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "hello")
	os.Exit(0)
}
`
