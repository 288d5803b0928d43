// Package tokenize splits text into the comparable units that the diff
// engine aligns.
//
// Every strategy is one variant of a closed set of kinds (Character, Word,
// Sentence, Line, CSS, JSON) behind the Tokenizer interface. A tokenizer has
// two views of a token: the token text itself, which is what gets emitted
// into diffs and hunks, and the comparison key returned by Key, which is what
// the aligner compares. Normalising options (case, whitespace, trailing
// newline, trailing commas in JSON) only ever touch the key.
//
//	tok := tokenize.New(tokenize.Line, tokenize.Options{IgnoreNewlineAtEOF: true})
//	tokens := tok.Tokenize(text)
//	same := tokenize.Equals(tok, "a\n", "a") // true
package tokenize

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned by ParseKind for names that are not a tokenizer.
var ErrUnknownKind = errors.New("unknown tokenizer")

// Kind identifies a tokenizer strategy.
type Kind int

const (
	Line Kind = iota
	Character
	Word
	Sentence
	CSS
	JSON
)

var kindNames = map[Kind]string{
	Line:      "line",
	Character: "char",
	Word:      "word",
	Sentence:  "sentence",
	CSS:       "css",
	JSON:      "json",
}

// String returns the name used on the command line and in config.
func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Names returns the accepted tokenizer names in a stable order.
func Names() []string {
	return []string{"line", "char", "word", "sentence", "css", "json"}
}

// ParseKind maps a tokenizer name to its Kind. "character" is accepted as an
// alias for "char".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "line":
		return Line, nil
	case "char", "character":
		return Character, nil
	case "word":
		return Word, nil
	case "sentence":
		return Sentence, nil
	case "css":
		return CSS, nil
	case "json":
		return JSON, nil
	}
	return Line, fmt.Errorf("%w: %q (valid: %s)", ErrUnknownKind, s, strings.Join(Names(), ", "))
}

// Options configures how tokens are compared and, for the line family,
// how text is split.
type Options struct {
	IgnoreCase         bool   // compare case-insensitively
	IgnoreWhitespace   bool   // compare with surrounding whitespace trimmed
	IgnoreNewlineAtEOF bool   // a trailing "\n" does not make two lines differ
	NewlineIsToken     bool   // line tokenizer emits "\n" as its own token
	StripTrailingCR    bool   // "\r\n" compares equal to "\n"
	NullReplacement    string // JSON only: substitute for null values in the canonical form
}

// Tokenizer splits text into tokens and defines their comparison view.
type Tokenizer interface {
	Kind() Kind
	Tokenize(text string) []string
	Key(token string) string
}

// Equals reports whether two tokens compare equal under t.
func Equals(t Tokenizer, a, b string) bool {
	return t.Key(a) == t.Key(b)
}

// Keys returns the comparison view of every token.
func Keys(t Tokenizer, tokens []string) []string {
	keys := make([]string, len(tokens))
	for i, tok := range tokens {
		keys[i] = t.Key(tok)
	}
	return keys
}

// New returns the tokenizer for kind configured with opts. Unknown kinds
// fall back to the line tokenizer.
func New(kind Kind, opts Options) Tokenizer {
	switch kind {
	case Character:
		return charTokenizer{opts: opts}
	case Word:
		return wordTokenizer{opts: opts}
	case Sentence:
		return sentenceTokenizer{opts: opts}
	case CSS:
		return cssTokenizer{opts: opts}
	case JSON:
		return jsonTokenizer{line: lineTokenizer{opts: opts}}
	default:
		return lineTokenizer{opts: opts}
	}
}

// baseKey applies the options shared by every non-line tokenizer.
func baseKey(token string, opts Options) string {
	if opts.IgnoreWhitespace {
		token = strings.TrimSpace(token)
	}
	if opts.IgnoreCase {
		token = strings.ToLower(token)
	}
	return token
}
