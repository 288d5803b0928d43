// Package path resolves user-supplied file paths to the canonical form used
// to key file state.
//
// Every path that reaches the edit engine passes through Canonical first, so
// "./src/../src/main.go" and "/work/src/main.go" name the same cache entry.
//
// Canonical rules:
//   - Relative paths are resolved against a base directory (the working
//     directory when base is empty)
//   - The result is absolute and cleaned
//   - Empty paths and paths containing a null byte are rejected
//
// Key then folds the canonical path for comparison; see path_unix.go and
// path_windows.go.
package path

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalid indicates the provided file path cannot be resolved.
var ErrInvalid = errors.New("invalid file path")

// Canonical returns the absolute, cleaned form of p. Relative paths are
// joined to base, or to the working directory when base is empty.
func Canonical(p, base string) (string, error) {
	if p == "" || strings.ContainsRune(p, 0) {
		return "", ErrInvalid
	}
	p = separators(p)
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Join(ErrInvalid, err)
		}
		base = wd
	}
	abs, err := filepath.Abs(filepath.Join(base, p))
	if err != nil {
		return "", errors.Join(ErrInvalid, err)
	}
	return abs, nil
}

// Rel returns p relative to base when p lies inside base, and p unchanged
// otherwise. Used for display only.
func Rel(p, base string) string {
	if base == "" {
		return p
	}
	r, err := filepath.Rel(base, p)
	if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return p
	}
	return r
}
