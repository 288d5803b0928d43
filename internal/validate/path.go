package validate

import (
	"fmt"
	"strings"

	"github.com/jpl-au/llmedit/internal/path"
)

// Path validates a file path and returns its canonical absolute form.
//
// Validation rules:
//   - Empty paths rejected
//   - Null bytes rejected
//   - Max length enforced if maxLen > 0 (0 means no limit)
//   - Relative paths resolved against base (working directory when empty)
func Path(p, base string, maxLen int) (string, error) {
	if p == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if strings.ContainsRune(p, 0) {
		return "", fmt.Errorf("%w: null byte in path", ErrInvalidPath)
	}
	if maxLen > 0 && len(p) > maxLen {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrPathTooLong, len(p), maxLen)
	}

	abs, err := path.Canonical(p, base)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}
	return abs, nil
}
