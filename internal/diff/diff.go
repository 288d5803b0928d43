// Package diff computes the shortest edit script between two token
// sequences.
//
// The default algorithm is Myers' O(ND) greedy search run over the
// comparison keys a tokenize.Tokenizer produces, so normalising options
// (case, whitespace, trailing newline) affect alignment but never the tokens
// that come back. Histogram is available for inputs where Myers tends to
// produce noisy alignments, such as source files with many repeated lines.
//
//	ops := diff.Text(old, new, diff.Options{})
//	for _, op := range ops {
//		fmt.Print(op.Kind, strings.Join(op.Tokens, ""))
//	}
package diff

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jpl-au/llmedit/internal/tokenize"
)

// ErrUnknownAlgorithm is returned by ParseAlgorithm.
var ErrUnknownAlgorithm = errors.New("unknown diff algorithm")

// Kind is the type of a diff operation.
type Kind int

const (
	Equal Kind = iota
	Insert
	Delete
)

func (k Kind) String() string {
	switch k {
	case Equal:
		return "equal"
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText lets ops serialise with readable kinds in JSON output.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Algorithm selects the alignment strategy.
type Algorithm int

const (
	Myers Algorithm = iota
	Histogram
)

func (a Algorithm) String() string {
	if a == Histogram {
		return "histogram"
	}
	return "myers"
}

// ParseAlgorithm maps "myers" or "histogram" to an Algorithm. The empty
// string selects Myers.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "myers":
		return Myers, nil
	case "histogram":
		return Histogram, nil
	}
	return Myers, fmt.Errorf("%w: %q (valid: myers, histogram)", ErrUnknownAlgorithm, s)
}

// Op is one run of the edit script. Concatenating the Tokens of Equal and
// Delete ops gives the old sequence; Equal and Insert give the new one.
//
// Equal ops carry the old side's tokens in Tokens, which may differ from the
// new side's under a normalising comparison. NewTokens holds the new side's
// tokens for Equal ops and is nil otherwise. With LongestToken set, Tokens
// holds the longer of the two tokens at each position instead and OldTokens
// keeps the old side's, so Old always rebuilds the old sequence.
type Op struct {
	Kind      Kind     `json:"kind"`
	Tokens    []string `json:"tokens"`
	NewTokens []string `json:"new_tokens,omitempty"`
	OldTokens []string `json:"old_tokens,omitempty"`
}

// Text returns the concatenated tokens of the op.
func (o Op) Text() string { return strings.Join(o.Tokens, "") }

// Old returns the op's tokens as they appear in the old sequence.
func (o Op) Old() []string {
	if o.OldTokens != nil {
		return o.OldTokens
	}
	return o.Tokens
}

// Options configures a diff.
type Options struct {
	Tokenizer    tokenize.Kind
	Tokenize     tokenize.Options
	Algorithm    Algorithm
	LongestToken bool // prefer the longest matching run at each choice point
}

// Text tokenizes both inputs with the configured tokenizer and diffs them.
func Text(oldText, newText string, opts Options) []Op {
	tok := tokenize.New(opts.Tokenizer, opts.Tokenize)
	return Tokens(tok.Tokenize(oldText), tok.Tokenize(newText), tok, opts)
}

// Tokens diffs two token sequences, comparing them through tok.Key.
// opts.Tokenizer and opts.Tokenize are ignored; tok already carries them.
func Tokens(a, b []string, tok tokenize.Tokenizer, opts Options) []Op {
	ka, kb := tokenize.Keys(tok, a), tokenize.Keys(tok, b)

	var script []step
	if opts.Algorithm == Histogram {
		script = histogram(ka, kb)
	} else {
		script = myers(ka, kb, opts.LongestToken)
	}
	return assemble(a, b, script, opts.LongestToken)
}

// Stats counts the tokens inserted and deleted by an edit script.
func Stats(ops []Op) (inserted, deleted int) {
	for _, op := range ops {
		switch op.Kind {
		case Insert:
			inserted += len(op.Tokens)
		case Delete:
			deleted += len(op.Tokens)
		}
	}
	return inserted, deleted
}

// Identical reports whether the script contains no changes.
func Identical(ops []Op) bool {
	for _, op := range ops {
		if op.Kind != Equal {
			return false
		}
	}
	return true
}

// step is a run of n consecutive positions of one kind.
type step struct {
	kind Kind
	n    int
}

// assemble walks the script over both sequences and produces ops. Within a
// change region all deletions come before all insertions, and adjacent runs
// of the same kind are merged.
func assemble(a, b []string, script []step, longest bool) []Op {
	var ops []Op
	var del, ins []string
	x, y := 0, 0

	flush := func() {
		if len(del) > 0 {
			ops = append(ops, Op{Kind: Delete, Tokens: del})
			del = nil
		}
		if len(ins) > 0 {
			ops = append(ops, Op{Kind: Insert, Tokens: ins})
			ins = nil
		}
	}

	for _, s := range script {
		if s.n == 0 {
			continue
		}
		switch s.kind {
		case Delete:
			del = append(del, a[x:x+s.n]...)
			x += s.n
		case Insert:
			ins = append(ins, b[y:y+s.n]...)
			y += s.n
		case Equal:
			flush()
			oldToks := a[x : x+s.n]
			newToks := b[y : y+s.n]
			tokens := append([]string(nil), oldToks...)
			var old []string
			if longest {
				old = append([]string(nil), oldToks...)
				for i, t := range newToks {
					if len(t) > len(tokens[i]) {
						tokens[i] = t
					}
				}
			}
			if n := len(ops); n > 0 && ops[n-1].Kind == Equal {
				ops[n-1].Tokens = append(ops[n-1].Tokens, tokens...)
				ops[n-1].NewTokens = append(ops[n-1].NewTokens, newToks...)
				ops[n-1].OldTokens = append(ops[n-1].OldTokens, old...)
			} else {
				ops = append(ops, Op{Kind: Equal, Tokens: tokens, NewTokens: append([]string(nil), newToks...), OldTokens: old})
			}
			x += s.n
			y += s.n
		}
	}
	flush()
	return ops
}
