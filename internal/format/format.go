// Package format provides output formatting utilities for CLI display.
//
// Centralises formatting logic so that command implementations focus on
// business logic while this package handles presentation concerns like
// line numbering, unified diff rendering, and colourised output.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jpl-au/llmedit/internal/diff"
	"github.com/jpl-au/llmedit/internal/hunk"
	"github.com/jpl-au/llmedit/internal/worddiff"
)

// ANSI escape sequences used for colour output.
const (
	red     = "\033[31m"
	green   = "\033[32m"
	cyan    = "\033[36m"
	reverse = "\033[7m"
	noRev   = "\033[27m"
	reset   = "\033[0m"
)

// NumberLines prefixes each line of content with its line number, starting
// at startLine, right-aligned in six columns and followed by "→". A final
// newline does not start another line.
func NumberLines(content string, startLine int) string {
	if content == "" {
		return ""
	}
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%6d→%s", startLine+i, line)
	}
	return b.String()
}

// Colourise adds ANSI colours to unified diff output.
func Colourise(d string) string {
	var b strings.Builder
	for _, line := range strings.Split(d, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
			b.WriteString(line + "\n")
		case strings.HasPrefix(line, "@@"):
			b.WriteString(cyan + line + reset + "\n")
		case strings.HasPrefix(line, "-"):
			b.WriteString(red + line + reset + "\n")
		case strings.HasPrefix(line, "+"):
			b.WriteString(green + line + reset + "\n")
		default:
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// Hunks writes hunks as a unified diff. With colour, removed and added
// lines are coloured and, when marks are given, the changed segments of
// paired lines are shown in reverse video. marks holds one slice per hunk
// as returned by worddiff.HighlightHunks.
func Hunks(w io.Writer, oldLabel, newLabel string, hunks []hunk.Hunk, marks [][]worddiff.Mark, colour bool) error {
	if !colour {
		_, err := io.WriteString(w, hunk.Unified(oldLabel, newLabel, hunks))
		return err
	}
	if len(marks) != len(hunks) {
		_, err := io.WriteString(w, Colourise(hunk.Unified(oldLabel, newLabel, hunks)))
		return err
	}
	if len(hunks) == 0 {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- %s\n+++ %s\n", oldLabel, newLabel)
	for i, h := range hunks {
		b.WriteString(cyan + h.Header() + reset + "\n")
		for j, l := range h.Lines {
			var m worddiff.Mark
			if j < len(marks[i]) {
				m = marks[i][j]
			}
			b.WriteString(line(l, m))
			b.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// line renders one hunk line in colour.
func line(l hunk.Line, m worddiff.Mark) string {
	var c string
	switch l.Marker {
	case hunk.Remove:
		c = red
	case hunk.Add:
		c = green
	default:
		return l.String()
	}
	if !m.Paired {
		return c + l.String() + reset
	}

	var b strings.Builder
	b.WriteString(c)
	b.WriteByte(byte(l.Marker))
	for _, s := range m.Segments {
		if s.Changed {
			b.WriteString(reverse + s.Text + noRev)
		} else {
			b.WriteString(s.Text)
		}
	}
	b.WriteString(reset)
	return b.String()
}

// Inline writes a token-level edit script as running text, marking
// deletions [-like this-] and insertions {+like this+}. With colour the
// markers are replaced by red and green.
func Inline(w io.Writer, ops []diff.Op, colour bool) error {
	var b strings.Builder
	for _, op := range ops {
		switch op.Kind {
		case diff.Equal:
			b.WriteString(strings.Join(op.NewTokens, ""))
		case diff.Delete:
			if colour {
				b.WriteString(red + op.Text() + reset)
			} else {
				b.WriteString("[-" + op.Text() + "-]")
			}
		case diff.Insert:
			if colour {
				b.WriteString(green + op.Text() + reset)
			} else {
				b.WriteString("{+" + op.Text() + "+}")
			}
		}
	}
	s := b.String()
	if s != "" && !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	_, err := io.WriteString(w, s)
	return err
}

// Summary writes a one-line count of hunks and changed lines.
func Summary(w io.Writer, hunks []hunk.Hunk) error {
	added, removed := hunk.Summary(hunks)
	noun := "hunks"
	if len(hunks) == 1 {
		noun = "hunk"
	}
	_, err := fmt.Fprintf(w, "%d %s, +%d -%d\n", len(hunks), noun, added, removed)
	return err
}

// Markdown renders a unified diff as a fenced diff block for the terminal.
func Markdown(unified string) (string, error) {
	if unified == "" {
		return "", nil
	}
	return glamour.Render("```diff\n"+unified+"```\n", "dark")
}

// Change writes the hunks of one file's change followed by its summary.
// A created file is labelled /dev/null on the old side.
func Change(w io.Writer, path string, created bool, hunks []hunk.Hunk, marks [][]worddiff.Mark, colour bool) error {
	oldLabel := "a/" + path
	if created {
		oldLabel = "/dev/null"
	}
	if len(hunks) > 0 {
		if err := Hunks(w, oldLabel, "b/"+path, hunks, marks, colour); err != nil {
			return err
		}
	}
	return Summary(w, hunks)
}
