// lines.go turns line-range edits into ordinary string edits.
//
// A line range is resolved against the content the caller read, then grown
// by surrounding lines until its text is unique in the file, so it flows
// through the same transaction, with the same uniqueness and staleness
// checks, as any other edit.

package edit

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jpl-au/llmedit/internal/tokenize"
)

// ErrInvalidLineRange is returned when a line range is malformed or does not
// fit the content.
var ErrInvalidLineRange = errors.New("invalid line range")

// FromLineRange builds an Edit replacing lines start..end of content with
// replacement. Lines are 1-indexed and the range is inclusive.
//
// Boundary behaviour:
//   - start == 0: treated as 1 (start of file)
//   - end == 0: treated as the last line
//   - start beyond the last line: error
//   - end beyond the last line: clamped
//
// The replacement is given a trailing newline when the replaced lines had
// one, so "foo" replaces a line rather than joining it to the next.
func FromLineRange(content string, start, end int, replacement string) (Edit, error) {
	lines := tokenize.SplitLines(content)

	if start == 0 {
		start = 1
	}
	if end == 0 {
		end = len(lines)
	}
	if start < 1 {
		return Edit{}, fmt.Errorf("%w: start line must be >= 1, got %d", ErrInvalidLineRange, start)
	}
	if start > len(lines) {
		return Edit{}, fmt.Errorf("%w: start line %d exceeds file length %d", ErrInvalidLineRange, start, len(lines))
	}
	if end < start {
		return Edit{}, fmt.Errorf("%w: end line %d cannot be less than start line %d", ErrInvalidLineRange, end, start)
	}
	if end > len(lines) {
		end = len(lines)
	}

	target := strings.Join(lines[start-1:end], "")
	if replacement != "" && strings.HasSuffix(target, "\n") && !strings.HasSuffix(replacement, "\n") {
		replacement += "\n"
	}

	// Widen with neighbouring lines until the old text occurs once.
	lo, hi := start-1, end
	for strings.Count(content, strings.Join(lines[lo:hi], "")) > 1 && (lo > 0 || hi < len(lines)) {
		if lo > 0 {
			lo--
		}
		if hi < len(lines) {
			hi++
		}
	}

	before := strings.Join(lines[lo:start-1], "")
	after := strings.Join(lines[end:hi], "")
	return Edit{
		OldString: before + target + after,
		NewString: before + replacement + after,
	}, nil
}

// ParseLineRange parses a line range string like "5:10", "5:", or ":10".
// Returns start and end line numbers (1-indexed), where 0 means unspecified.
func ParseLineRange(s string) (start, end int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q (expected start:end)", ErrInvalidLineRange, s)
	}

	if parts[0] == "" && parts[1] == "" {
		return 0, 0, fmt.Errorf("%w: %q (at least start or end line required)", ErrInvalidLineRange, s)
	}

	if parts[0] != "" {
		start, err = strconv.Atoi(parts[0])
		if err != nil {
			return 0, 0, fmt.Errorf("%w: invalid start line %q", ErrInvalidLineRange, parts[0])
		}
		if start < 1 {
			return 0, 0, fmt.Errorf("%w: start line must be >= 1, got %d", ErrInvalidLineRange, start)
		}
	}

	if parts[1] != "" {
		end, err = strconv.Atoi(parts[1])
		if err != nil {
			return 0, 0, fmt.Errorf("%w: invalid end line %q", ErrInvalidLineRange, parts[1])
		}
		if end < 1 {
			return 0, 0, fmt.Errorf("%w: end line must be >= 1, got %d", ErrInvalidLineRange, end)
		}
	}

	if start > 0 && end > 0 && start > end {
		return 0, 0, fmt.Errorf("%w: start line %d is greater than end line %d", ErrInvalidLineRange, start, end)
	}

	return start, end, nil
}
