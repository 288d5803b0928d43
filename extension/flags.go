// flags.go defines constants for all CLI flag names.
//
// Using constants instead of string literals prevents typos and enables
// compile-time checking when flag names are used in both Flags().Type()
// definitions and GetType() calls.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "dry-run" -> FlagDryRun).

package extension

// Flag name constants for CLI commands.
// These are used with cobra's Flags().Type() and GetType() methods.
const (
	// Boolean flags

	FlagAll              = "all"               // Apply to every file
	FlagDryRun           = "dry-run"           // Preview without making changes
	FlagIgnoreCase       = "ignore-case"       // Case-insensitive comparison
	FlagIgnoreWhitespace = "ignore-whitespace" // Ignore whitespace differences
	FlagLocal            = "local"             // Use local scope
	FlagLongestToken     = "longest-token"     // Prefer alignments on long tokens
	FlagMarkdown         = "markdown"          // Render through markdown
	FlagFailed           = "failed"            // Only failed operations
	FlagRaw              = "raw"               // Raw output without formatting
	FlagReplaceAll       = "replace-all"       // Replace every occurrence
	FlagWord             = "word"              // Word-level highlighting

	// String flags

	FlagAlgorithm = "algorithm" // Diff algorithm (myers, histogram)
	FlagEdits     = "edits"     // File holding a batch of edits
	FlagLines     = "lines"     // Line range specification (e.g., "10:20")
	FlagNew       = "new"       // New text for replacement
	FlagOld       = "old"       // Old text to find
	FlagPath      = "path"      // Filter by file path
	FlagTokenizer = "tokenizer" // Tokenizer kind

	// Integer flags

	FlagContext = "context" // Context lines around changes
	FlagLimit   = "limit"   // Limit number of lines or entries
	FlagOffset  = "offset"  // First line to read
)
