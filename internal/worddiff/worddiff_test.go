package worddiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/llmedit/internal/hunk"
)

func join(segs []Segment) string {
	var s string
	for _, seg := range segs {
		s += seg.Text
	}
	return s
}

func changed(segs []Segment) string {
	var s string
	for _, seg := range segs {
		if seg.Changed {
			s += seg.Text
		}
	}
	return s
}

func TestPair(t *testing.T) {
	oldSegs, newSegs := Pair("return foo(a)", "return bar(a)")
	assert.Equal(t, "return foo(a)", join(oldSegs))
	assert.Equal(t, "return bar(a)", join(newSegs))
	assert.Equal(t, "foo", changed(oldSegs))
	assert.Equal(t, "bar", changed(newSegs))
	assert.False(t, oldSegs[0].Changed)
}

func TestPairEmpty(t *testing.T) {
	o, n := Pair("", "")
	assert.Nil(t, o)
	assert.Nil(t, n)

	o, n = Pair("", "x")
	assert.Nil(t, o)
	assert.Equal(t, []Segment{{Text: "x", Changed: true}}, n)

	o, n = Pair("x", "")
	assert.Equal(t, []Segment{{Text: "x", Changed: true}}, o)
	assert.Nil(t, n)
}

func TestPairIdentical(t *testing.T) {
	o, n := Pair("same", "same")
	assert.Equal(t, []Segment{{Text: "same"}}, o)
	assert.Equal(t, []Segment{{Text: "same"}}, n)
}

func TestHighlightPairsPositionally(t *testing.T) {
	lines := []hunk.Line{
		{Marker: hunk.Context, Text: "ctx"},
		{Marker: hunk.Remove, Text: "alpha one"},
		{Marker: hunk.Remove, Text: "beta two"},
		{Marker: hunk.Remove, Text: "gamma three"},
		{Marker: hunk.Add, Text: "alpha 1"},
		{Marker: hunk.Add, Text: "beta 2"},
		{Marker: hunk.Context, Text: "ctx"},
	}
	marks := Highlight(lines)
	require.Len(t, marks, len(lines))

	assert.False(t, marks[0].Paired)
	assert.Equal(t, -1, marks[0].Counterpart)

	assert.True(t, marks[1].Paired)
	assert.Equal(t, 4, marks[1].Counterpart)
	assert.Equal(t, 1, marks[4].Counterpart)
	assert.True(t, marks[2].Paired)
	assert.Equal(t, 5, marks[2].Counterpart)

	// surplus removal stays unmarked
	assert.False(t, marks[3].Paired)
	assert.Nil(t, marks[3].Segments)

	assert.Equal(t, "alpha one", join(marks[1].Segments))
	assert.Equal(t, "alpha 1", join(marks[4].Segments))
}

func TestHighlightNonAdjacentRuns(t *testing.T) {
	lines := []hunk.Line{
		{Marker: hunk.Remove, Text: "a"},
		{Marker: hunk.Context, Text: "b"},
		{Marker: hunk.Add, Text: "c"},
	}
	for _, m := range Highlight(lines) {
		assert.False(t, m.Paired)
	}
}

func TestHighlightSkipsSentinel(t *testing.T) {
	lines := []hunk.Line{
		{Marker: hunk.Remove, Text: "last line"},
		{Marker: hunk.NoNewline, Text: hunk.NoNewlineText},
		{Marker: hunk.Add, Text: "last line!"},
		{Marker: hunk.NoNewline, Text: hunk.NoNewlineText},
	}
	marks := Highlight(lines)
	assert.True(t, marks[0].Paired)
	assert.Equal(t, 2, marks[0].Counterpart)
	assert.False(t, marks[1].Paired)
	assert.Equal(t, "!", changed(marks[2].Segments))
}

func TestHighlightHunks(t *testing.T) {
	hunks := []hunk.Hunk{
		{Lines: []hunk.Line{{Marker: hunk.Remove, Text: "x"}, {Marker: hunk.Add, Text: "y"}}},
		{Lines: []hunk.Line{{Marker: hunk.Context, Text: "z"}}},
	}
	marks := HighlightHunks(hunks)
	require.Len(t, marks, 2)
	assert.True(t, marks[0][0].Paired)
	assert.False(t, marks[1][0].Paired)
}

func TestPairInvalidUTF8(t *testing.T) {
	oldSegs, newSegs := Pair("a\xffb", "a\xffc")
	assert.Equal(t, "a\xffb", join(oldSegs))
	assert.Equal(t, "a\xffc", join(newSegs))
	assert.Equal(t, "b", changed(oldSegs))
	assert.Equal(t, "c", changed(newSegs))

	hunks := []hunk.Hunk{{Lines: []hunk.Line{{Marker: hunk.Remove, Text: "x\xff"}, {Marker: hunk.Add, Text: "y\xff"}}}}
	var marks [][]Mark
	require.NotPanics(t, func() { marks = HighlightHunks(hunks) })
	require.Len(t, marks, 1)
	assert.True(t, marks[0][0].Paired)
}
