// Package worddiff marks the changed regions inside replaced lines.
//
// A run of removed lines immediately followed by a run of added lines is
// paired position by position; each pair is re-diffed at character level and
// the result is cleaned up to word-sized regions so renderers can highlight
// just the words that changed. Surplus lines on either side stay unpaired.
// Nothing here alters hunk content.
package worddiff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/jpl-au/llmedit/internal/diff"
	"github.com/jpl-au/llmedit/internal/hunk"
	"github.com/jpl-au/llmedit/internal/tokenize"
)

// Segment is a piece of one line's text, marked when it differs from the
// paired line.
type Segment struct {
	Text    string `json:"text"`
	Changed bool   `json:"changed"`
}

// Mark is the highlight metadata for one hunk line. Counterpart is the index
// of the paired line in the same slice, or -1.
type Mark struct {
	Paired      bool      `json:"paired"`
	Counterpart int       `json:"counterpart"`
	Segments    []Segment `json:"segments,omitempty"`
}

// Highlight returns one Mark per line. No-newline sentinel lines are
// skipped when looking for runs, so "-a", "\", "+b" still pairs a with b.
func Highlight(lines []hunk.Line) []Mark {
	marks := make([]Mark, len(lines))
	for i := range marks {
		marks[i].Counterpart = -1
	}

	for i := 0; i < len(lines); {
		if lines[i].Marker != hunk.Remove {
			i++
			continue
		}
		var removed, added []int
		for ; i < len(lines) && (lines[i].Marker == hunk.Remove || lines[i].Marker == hunk.NoNewline); i++ {
			if lines[i].Marker == hunk.Remove {
				removed = append(removed, i)
			}
		}
		for ; i < len(lines) && (lines[i].Marker == hunk.Add || lines[i].Marker == hunk.NoNewline); i++ {
			if lines[i].Marker == hunk.Add {
				added = append(added, i)
			}
		}

		for p := range min(len(removed), len(added)) {
			r, a := removed[p], added[p]
			oldSegs, newSegs := Pair(lines[r].Text, lines[a].Text)
			marks[r] = Mark{Paired: true, Counterpart: a, Segments: oldSegs}
			marks[a] = Mark{Paired: true, Counterpart: r, Segments: newSegs}
		}
	}
	return marks
}

// HighlightHunks runs Highlight over each hunk.
func HighlightHunks(hunks []hunk.Hunk) [][]Mark {
	out := make([][]Mark, len(hunks))
	for i, h := range hunks {
		out[i] = Highlight(h.Lines)
	}
	return out
}

// Pair diffs two lines character by character and returns the segments of
// each side. Joining a side's segment texts gives back that line.
func Pair(old, new string) (oldSegs, newSegs []Segment) {
	if old == "" && new == "" {
		return nil, nil
	}
	if old == "" {
		return nil, []Segment{{Text: new, Changed: true}}
	}
	if new == "" {
		return []Segment{{Text: old, Changed: true}}, nil
	}

	ops := diff.Text(old, new, diff.Options{Tokenizer: tokenize.Character})
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(toDMP(ops))

	return segments(diffs, diffmatchpatch.DiffDelete), segments(diffs, diffmatchpatch.DiffInsert)
}

// toDMP converts an edit script into diffmatchpatch form so its semantic
// cleanup can widen character-level noise into whole words.
func toDMP(ops []diff.Op) []diffmatchpatch.Diff {
	diffs := make([]diffmatchpatch.Diff, 0, len(ops))
	for _, op := range ops {
		d := diffmatchpatch.Diff{Text: strings.Join(op.Tokens, "")}
		switch op.Kind {
		case diff.Equal:
			d.Type = diffmatchpatch.DiffEqual
		case diff.Delete:
			d.Type = diffmatchpatch.DiffDelete
		case diff.Insert:
			d.Type = diffmatchpatch.DiffInsert
		}
		diffs = append(diffs, d)
	}
	return diffs
}

// segments keeps the equal text and the side's own changes, dropping the
// other side's, then merges neighbours with the same status.
func segments(diffs []diffmatchpatch.Diff, side diffmatchpatch.Operation) []Segment {
	var segs []Segment
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		var s Segment
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			s = Segment{Text: d.Text}
		case side:
			s = Segment{Text: d.Text, Changed: true}
		default:
			continue
		}
		if n := len(segs); n > 0 && segs[n-1].Changed == s.Changed {
			segs[n-1].Text += s.Text
			continue
		}
		segs = append(segs, s)
	}
	return segs
}
