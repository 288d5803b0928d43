// Package validate checks user input at the boundary between the CLI or MCP
// server and the edit engine.
//
// Validation is minimal. Null bytes, unresolvable paths and oversized content
// are rejected; anything else is passed through, since the engine itself
// decides whether an edit is safe.
//
// All validation errors wrap one of the sentinel errors in errors.go:
//
//	if errors.Is(err, validate.ErrInvalidPath) {
//	    // handle invalid path
//	}
package validate
