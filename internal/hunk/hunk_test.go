package hunk

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/llmedit/internal/diff"
	"github.com/jpl-au/llmedit/internal/tokenize"
)

func build(old, new string, context int) []Hunk {
	return Build(diff.Text(old, new, diff.Options{}), context)
}

func numbered(n int, change map[int]string) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		if s, ok := change[i]; ok {
			b.WriteString(s + "\n")
			continue
		}
		fmt.Fprintf(&b, "l%d\n", i)
	}
	return b.String()
}

func TestBuildSingleChange(t *testing.T) {
	hunks := build("line1\nline2\nline3\n", "line1\nLINE2\nline3\n", -1)
	require.Len(t, hunks, 1)

	h := hunks[0]
	assert.Equal(t, 1, h.OldStart)
	assert.Equal(t, 3, h.OldLines)
	assert.Equal(t, 1, h.NewStart)
	assert.Equal(t, 3, h.NewLines)
	assert.Equal(t, []Line{
		{Context, "line1"},
		{Remove, "line2"},
		{Add, "LINE2"},
		{Context, "line3"},
	}, h.Lines)
}

func TestBuildNoChanges(t *testing.T) {
	assert.Empty(t, build("a\nb\n", "a\nb\n", -1))
	assert.Empty(t, build("", "", -1))
}

func TestBuildSplitsDistantChanges(t *testing.T) {
	old := numbered(20, nil)
	new := numbered(20, map[int]string{3: "X3", 15: "X15"})

	hunks := build(old, new, 4)
	require.Len(t, hunks, 2)

	assert.Equal(t, 1, hunks[0].OldStart)
	assert.Equal(t, 7, hunks[0].OldLines)
	assert.Equal(t, 11, hunks[1].OldStart)
	assert.Equal(t, 9, hunks[1].OldLines)
	assert.Equal(t, Line{Context, "l11"}, hunks[1].Lines[0])
	assert.Equal(t, Line{Context, "l19"}, hunks[1].Lines[len(hunks[1].Lines)-1])
}

func TestBuildMergesNearbyChanges(t *testing.T) {
	old := numbered(20, nil)
	new := numbered(20, map[int]string{3: "X3", 10: "X10"})

	hunks := build(old, new, 4)
	require.Len(t, hunks, 1)
	assert.Equal(t, 1, hunks[0].OldStart)
	assert.Equal(t, 14, hunks[0].OldLines)
	assert.Equal(t, 14, hunks[0].NewLines)
}

func TestBuildZeroContext(t *testing.T) {
	hunks := build("a\nb\nc\n", "a\nb\nx\nc\n", 0)
	require.Len(t, hunks, 1)
	h := hunks[0]
	assert.Equal(t, 0, h.OldLines)
	assert.Equal(t, 3, h.OldStart)
	assert.Equal(t, 3, h.NewStart)
	assert.Equal(t, 1, h.NewLines)
	assert.Equal(t, "@@ -2,0 +3 @@", h.Header())
}

func TestBuildNoNewlineSentinel(t *testing.T) {
	hunks := build("a\nb", "a\nb\n", -1)
	require.Len(t, hunks, 1)
	assert.Equal(t, []Line{
		{Context, "a"},
		{Remove, "b"},
		{NoNewline, NoNewlineText},
		{Add, "b"},
	}, hunks[0].Lines)
	assert.Equal(t, 2, hunks[0].OldLines)
	assert.Equal(t, 2, hunks[0].NewLines)
}

func TestLineCountInvariant(t *testing.T) {
	cases := [][2]string{
		{"", "a\nb\n"},
		{"a\nb\n", ""},
		{numbered(30, nil), numbered(30, map[int]string{1: "x", 12: "y", 13: "z", 30: "w"})},
		{"a\nb\nc", "a\nc\nd"},
	}
	for _, c := range cases {
		for _, ctx := range []int{0, 1, 3, -1} {
			for _, h := range build(c[0], c[1], ctx) {
				var old, new int
				for _, l := range h.Lines {
					switch l.Marker {
					case Context:
						old++
						new++
					case Remove:
						old++
					case Add:
						new++
					}
				}
				assert.Equal(t, h.OldLines, old)
				assert.Equal(t, h.NewLines, new)
			}
		}
	}
}

func TestApplyRoundTrip(t *testing.T) {
	cases := []struct {
		name     string
		old, new string
	}{
		{"empty to content", "", "a\nb\n"},
		{"content to empty", "a\nb\n", ""},
		{"middle", "line1\nline2\nline3\n", "line1\nLINE2\nline3\n"},
		{"add trailing newline", "a\nb", "a\nb\n"},
		{"drop trailing newline", "a\nb\n", "a\nb"},
		{"no newline either side", "a\nb", "a\nc"},
		{"many", numbered(40, nil), numbered(42, map[int]string{2: "x", 20: "y", 41: "z"})},
		{"reorder", "a\nb\nc\nd\n", "d\nc\nb\na\n"},
	}
	for _, tt := range cases {
		for _, ctx := range []int{0, 2, -1} {
			t.Run(fmt.Sprintf("%s/context=%d", tt.name, ctx), func(t *testing.T) {
				got, err := Apply(tt.old, build(tt.old, tt.new, ctx))
				require.NoError(t, err)
				assert.Equal(t, tt.new, got)
			})
		}
	}
}

func TestBuildLongestTokenContextFromOld(t *testing.T) {
	old, new := "a\n  b\nc\nd\n", "a\n    b\nc\nD\n"
	ops := diff.Text(old, new, diff.Options{
		Tokenize:     tokenize.Options{IgnoreWhitespace: true},
		LongestToken: true,
	})
	hunks := Build(ops, -1)
	require.Len(t, hunks, 1)
	assert.Equal(t, Line{Marker: Context, Text: "  b"}, hunks[0].Lines[1])

	got, err := Apply(old, hunks)
	require.NoError(t, err)
	assert.Equal(t, "a\n  b\nc\nD\n", got)
}

func TestApplyMismatch(t *testing.T) {
	hunks := build("a\nb\nc\n", "a\nB\nc\n", -1)
	_, err := Apply("a\nz\nc\n", hunks)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMismatch))
}

func TestUnified(t *testing.T) {
	hunks := build("line1\nline2\nline3\n", "line1\nLINE2\nline3\n", -1)
	want := "--- a.txt\n+++ b.txt\n@@ -1,3 +1,3 @@\n line1\n-line2\n+LINE2\n line3\n"
	assert.Equal(t, want, Unified("a.txt", "b.txt", hunks))

	assert.Equal(t, "", Unified("a", "b", nil))

	hunks = build("", "x\n", -1)
	assert.Contains(t, Unified("a", "b", hunks), "@@ -0,0 +1 @@\n+x\n")

	hunks = build("a", "b", -1)
	assert.Contains(t, Unified("a", "b", hunks), "-a\n\\ No newline at end of file\n+b\n\\ No newline at end of file\n")
}

func TestSummary(t *testing.T) {
	hunks := build("a\nb\nc\n", "a\nx\ny\nc\n", -1)
	added, removed := Summary(hunks)
	assert.Equal(t, 2, added)
	assert.Equal(t, 1, removed)
}

func TestMarkerText(t *testing.T) {
	b, err := Add.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "+", string(b))

	var m Marker
	require.NoError(t, m.UnmarshalText([]byte("-")))
	assert.Equal(t, Remove, m)
	assert.Error(t, m.UnmarshalText([]byte("x")))
}
