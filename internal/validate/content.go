// content.go implements file content size validation.
//
// Only size is checked. The diff engine's cost grows with input size, so
// oversized files are rejected before they reach it.

package validate

import "fmt"

// Content validates content size. A maxLen of 0 means no limit.
func Content(content string, maxLen int64) error {
	if maxLen > 0 && int64(len(content)) > maxLen {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrContentTooLarge, len(content), maxLen)
	}
	return nil
}
