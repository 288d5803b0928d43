//go:build !windows

// path_unix.go provides Unix-specific path handling (Linux, macOS, etc).
//
// Backslashes are valid filename characters on Unix, so they are left alone,
// and keys are compared byte for byte. macOS volumes are often
// case-insensitive, but two spellings of one file there only cost an extra
// read, never a wrong edit.

package path

// Key returns the cache key for a canonical path.
func Key(p string) string {
	return p
}

func separators(p string) string {
	return p
}
