// errors.go defines the failure taxonomy of an edit transaction.
//
// Every failure is an *Error carrying the kind plus enough context (path,
// offending string, occurrence count, edit index) for the caller to decide
// whether to re-read the file and retry with a more specific old_string.
// Each kind also has a sentinel so callers can branch with errors.Is:
//
//	if errors.Is(err, edit.ErrNotUnique) {
//	    // ask for more context
//	}

package edit

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an edit failure.
type Kind int

const (
	Unchanged Kind = iota + 1
	NotUnique
	NoMatch
	OverlapConflict
	NotRead
	StaleRead
	InvalidPath
	InvalidEdit
)

var (
	ErrUnchanged       = errors.New("unchanged")
	ErrNotUnique       = errors.New("not unique")
	ErrNoMatch         = errors.New("no match")
	ErrOverlapConflict = errors.New("overlap conflict")
	ErrNotRead         = errors.New("not read")
	ErrStaleRead       = errors.New("stale read")
	ErrInvalidPath     = errors.New("invalid path")
	ErrInvalidEdit     = errors.New("invalid edit")
)

var sentinels = map[Kind]error{
	Unchanged:       ErrUnchanged,
	NotUnique:       ErrNotUnique,
	NoMatch:         ErrNoMatch,
	OverlapConflict: ErrOverlapConflict,
	NotRead:         ErrNotRead,
	StaleRead:       ErrStaleRead,
	InvalidPath:     ErrInvalidPath,
	InvalidEdit:     ErrInvalidEdit,
}

func (k Kind) String() string {
	switch k {
	case Unchanged:
		return "unchanged"
	case NotUnique:
		return "not_unique"
	case NoMatch:
		return "no_match"
	case OverlapConflict:
		return "overlap_conflict"
	case NotRead:
		return "not_read"
	case StaleRead:
		return "stale_read"
	case InvalidPath:
		return "invalid_path"
	case InvalidEdit:
		return "invalid_edit"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is a failed edit transaction.
type Error struct {
	Kind   Kind
	Path   string
	Match  string // the old_string involved, if any
	Count  int    // occurrences found, for NotUnique
	Index  int    // 0-based edit index, -1 for failures of the whole batch
	Batch  bool   // the request held more than one edit
	Reason string // replaces the default message when set
	Err    error  // underlying cause, for InvalidPath
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	if e.Batch && e.Index >= 0 {
		fmt.Fprintf(&b, "edit %d: ", e.Index+1)
	}
	b.WriteString(e.message())
	return b.String()
}

func (e *Error) message() string {
	if e.Reason != "" {
		return e.Reason
	}
	switch e.Kind {
	case Unchanged:
		if e.Index >= 0 {
			return "No changes to make: old_string and new_string are exactly the same."
		}
		return "Original and edited file match exactly. Failed to apply edit."
	case NotUnique:
		return fmt.Sprintf("Found %d matches of the string to replace, but replace_all is false. "+
			"To replace all occurrences, set replace_all to true. To replace only one occurrence, "+
			"please provide more context to uniquely identify the instance.\nString: %s", e.Count, e.Match)
	case NoMatch:
		return fmt.Sprintf("String to replace not found in file.\nString: %s", e.Match)
	case OverlapConflict:
		return fmt.Sprintf("Cannot edit file: old_string is a substring of a new_string from a previous edit.\nString: %s", e.Match)
	case NotRead:
		return "File has not been read yet. Read it first before writing to it."
	case StaleRead:
		return "File has been modified since read, either by the user or by a linter. Read it again before attempting to write it."
	case InvalidPath:
		if e.Err != nil {
			return e.Err.Error()
		}
		return "invalid path"
	case InvalidEdit:
		return "invalid edit"
	}
	return e.Kind.String()
}

// Unwrap exposes the kind's sentinel and any underlying cause.
func (e *Error) Unwrap() []error {
	errs := []error{sentinels[e.Kind]}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// PathError wraps a path validation failure so it reaches callers with the
// same shape as engine failures.
func PathError(p string, err error) *Error {
	return &Error{Kind: InvalidPath, Path: p, Index: -1, Err: err}
}

// KindOf returns the Kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
