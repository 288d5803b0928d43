// Package hunk groups a line-level edit script into unified-diff hunks.
//
// Build turns diff ops into context-padded hunks with 1-based line numbers,
// Apply replays hunks onto the old text, and Unified renders them in the
// familiar "@@ -a,b +c,d @@" form. Hunk lines carry their text without the
// trailing newline; a line that had none is followed by a NoNewline marker
// line, which is not counted in OldLines or NewLines.
package hunk

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jpl-au/llmedit/internal/diff"
	"github.com/jpl-au/llmedit/internal/tokenize"
)

// DefaultContext is the number of unchanged lines kept around each change.
const DefaultContext = 4

// NoNewlineText follows the '\' marker on the sentinel line.
const NoNewlineText = " No newline at end of file"

// ErrMismatch is returned by Apply when a hunk's context or removed lines do
// not match the text it is applied to.
var ErrMismatch = errors.New("hunk does not apply")

// Marker is the first column of a hunk line.
type Marker byte

const (
	Context   Marker = ' '
	Add       Marker = '+'
	Remove    Marker = '-'
	NoNewline Marker = '\\'
)

// MarshalText renders the marker as its one-character string.
func (m Marker) MarshalText() ([]byte, error) { return []byte{byte(m)}, nil }

// UnmarshalText accepts a one-character marker string.
func (m *Marker) UnmarshalText(b []byte) error {
	if len(b) != 1 {
		return fmt.Errorf("invalid hunk marker %q", b)
	}
	switch Marker(b[0]) {
	case Context, Add, Remove, NoNewline:
		*m = Marker(b[0])
		return nil
	}
	return fmt.Errorf("invalid hunk marker %q", b)
}

// Line is one line of a hunk.
type Line struct {
	Marker Marker `json:"marker"`
	Text   string `json:"text"`
}

func (l Line) String() string { return string(rune(l.Marker)) + l.Text }

// Hunk is a contiguous block of changes with surrounding context.
type Hunk struct {
	OldStart int    `json:"old_start"`
	OldLines int    `json:"old_lines"`
	NewStart int    `json:"new_start"`
	NewLines int    `json:"new_lines"`
	Lines    []Line `json:"lines"`
}

// Build groups line-tokenized ops into hunks. A negative context selects
// DefaultContext. Context lines come from the old side, so the hunks always
// Apply to the old text.
//
// A hunk opens at the first change with up to context lines taken from the
// end of the preceding unchanged run. An unchanged run of at most 2*context
// lines between two changes is kept whole inside the hunk; a longer run, or
// the final one, contributes up to context trailing lines and closes it.
func Build(ops []diff.Op, context int) []Hunk {
	if context < 0 {
		context = DefaultContext
	}

	var (
		hunks   []Hunk
		cur     *Hunk
		prevEq  []string
		oldLine = 1
		newLine = 1
	)

	for i, op := range ops {
		if op.Kind != diff.Equal {
			if cur == nil {
				pre := tail(prevEq, context)
				cur = &Hunk{OldStart: oldLine - len(pre), NewStart: newLine - len(pre)}
				cur.Lines = appendLines(cur.Lines, Context, pre)
			}
			if op.Kind == diff.Delete {
				cur.Lines = appendLines(cur.Lines, Remove, op.Tokens)
				oldLine += len(op.Tokens)
			} else {
				cur.Lines = appendLines(cur.Lines, Add, op.Tokens)
				newLine += len(op.Tokens)
			}
			continue
		}

		eq := op.Old()
		if cur != nil {
			if len(eq) <= 2*context && i < len(ops)-1 {
				cur.Lines = appendLines(cur.Lines, Context, eq)
			} else {
				cur.Lines = appendLines(cur.Lines, Context, eq[:min(len(eq), context)])
				hunks = append(hunks, finish(*cur))
				cur = nil
			}
		}
		oldLine += len(eq)
		newLine += len(eq)
		prevEq = eq
	}
	if cur != nil {
		hunks = append(hunks, finish(*cur))
	}
	return hunks
}

func tail(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}
	return lines[len(lines)-n:]
}

// appendLines adds tokens as hunk lines, inserting the sentinel after any
// token that does not end in a newline.
func appendLines(dst []Line, m Marker, tokens []string) []Line {
	for _, tok := range tokens {
		text, ok := strings.CutSuffix(tok, "\n")
		dst = append(dst, Line{Marker: m, Text: text})
		if !ok {
			dst = append(dst, Line{Marker: NoNewline, Text: NoNewlineText})
		}
	}
	return dst
}

func finish(h Hunk) Hunk {
	for _, l := range h.Lines {
		switch l.Marker {
		case Context:
			h.OldLines++
			h.NewLines++
		case Remove:
			h.OldLines++
		case Add:
			h.NewLines++
		}
	}
	return h
}

// Apply replays hunks onto old and returns the new text. Hunks must be in
// ascending order and non-overlapping. Context and removed lines are checked
// against old, including whether they end in a newline.
func Apply(old string, hunks []Hunk) (string, error) {
	lines := tokenize.SplitLines(old)
	var b strings.Builder
	b.Grow(len(old))
	pos := 0

	for hi, h := range hunks {
		start := h.OldStart - 1
		if start < pos || start > len(lines) {
			return "", fmt.Errorf("%w: hunk %d starts at line %d", ErrMismatch, hi+1, h.OldStart)
		}
		for _, l := range lines[pos:start] {
			b.WriteString(l)
		}
		pos = start

		for j, l := range h.Lines {
			if l.Marker == NoNewline {
				continue
			}
			text := l.Text
			if j+1 >= len(h.Lines) || h.Lines[j+1].Marker != NoNewline {
				text += "\n"
			}
			switch l.Marker {
			case Context, Remove:
				if pos >= len(lines) || lines[pos] != text {
					return "", fmt.Errorf("%w: hunk %d expected %q at line %d", ErrMismatch, hi+1, text, pos+1)
				}
				if l.Marker == Context {
					b.WriteString(text)
				}
				pos++
			case Add:
				b.WriteString(text)
			}
		}
	}
	for _, l := range lines[pos:] {
		b.WriteString(l)
	}
	return b.String(), nil
}

// Unified renders hunks as a unified diff with ---/+++ headers. It returns
// the empty string when there are no hunks.
func Unified(oldLabel, newLabel string, hunks []Hunk) string {
	if len(hunks) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "--- %s\n+++ %s\n", oldLabel, newLabel)
	for _, h := range hunks {
		b.WriteString(h.Header())
		b.WriteByte('\n')
		for _, l := range h.Lines {
			b.WriteString(l.String())
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Header returns the "@@ -a,b +c,d @@" line. As in GNU diff, an empty range
// names the line before the change and a count of one is omitted.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%s +%s @@", rangeOf(h.OldStart, h.OldLines), rangeOf(h.NewStart, h.NewLines))
}

func rangeOf(start, count int) string {
	switch count {
	case 0:
		return fmt.Sprintf("%d,0", start-1)
	case 1:
		return fmt.Sprintf("%d", start)
	}
	return fmt.Sprintf("%d,%d", start, count)
}

// Summary counts added and removed lines across hunks.
func Summary(hunks []Hunk) (added, removed int) {
	for _, h := range hunks {
		for _, l := range h.Lines {
			switch l.Marker {
			case Add:
				added++
			case Remove:
				removed++
			}
		}
	}
	return added, removed
}
