//go:build windows

// path_windows.go provides Windows-specific path handling.
//
// Forward slashes from tools and scripts are converted to the native
// separator, and keys are lowercased because NTFS treats "Main.go" and
// "main.go" as the same file.

package path

import (
	"path/filepath"
	"strings"
)

// Key returns the cache key for a canonical path.
func Key(p string) string {
	return strings.ToLower(p)
}

func separators(p string) string {
	return filepath.FromSlash(p)
}
