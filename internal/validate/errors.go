// errors.go defines sentinel errors for validation failures.
//
// Separated to centralise error definitions. Callers check them with
// errors.Is; the validation functions wrap them with the offending detail.

package validate

import "errors"

var (
	ErrInvalidPath     = errors.New("invalid path")
	ErrPathTooLong     = errors.New("path too long")
	ErrContentTooLarge = errors.New("content too large")
	ErrNotRegular      = errors.New("not a regular file")
)
