package tokenize

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/tidwall/pretty"
)

var canonicalOptions = &pretty.Options{Width: 80, Indent: "  ", SortKeys: true}

// jsonTokenizer diffs the canonical serialisation of JSON documents line by
// line. Callers tokenize Canonical(text), not the raw input, so the emitted
// lines are the canonical form; the user's document itself is never rewritten.
type jsonTokenizer struct {
	line lineTokenizer
}

func (jsonTokenizer) Kind() Kind { return JSON }

// Tokenize canonicalises text and splits the result into lines.
func (t jsonTokenizer) Tokenize(text string) []string {
	return t.line.Tokenize(Canonical(text, t.line.opts))
}

// Key ignores a trailing comma before the newline, so the last member of an
// object compares equal to the same member followed by a sibling.
func (t jsonTokenizer) Key(token string) string {
	k := t.line.Key(token)
	switch {
	case strings.HasSuffix(k, ",\n"):
		k = k[:len(k)-2] + "\n"
	case strings.HasSuffix(k, ",\r\n"):
		k = k[:len(k)-3] + "\r\n"
	case strings.HasSuffix(k, ","):
		k = k[:len(k)-1]
	}
	return k
}

// Canonical re-serialises a JSON document with sorted keys and two-space
// indentation. When opts.NullReplacement is set every null value is replaced
// by that string. Text that is not valid JSON is returned unchanged.
func Canonical(text string, opts Options) string {
	data := []byte(text)
	if !json.Valid(data) {
		return text
	}
	if opts.NullReplacement != "" {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return text
		}
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(replaceNulls(v, opts.NullReplacement)); err != nil {
			return text
		}
		data = buf.Bytes()
	}
	out := pretty.PrettyOptions(data, canonicalOptions)
	return string(out)
}

func replaceNulls(v any, sentinel string) any {
	switch x := v.(type) {
	case nil:
		return sentinel
	case map[string]any:
		for k, val := range x {
			x[k] = replaceNulls(val, sentinel)
		}
		return x
	case []any:
		for i, val := range x {
			x[i] = replaceNulls(val, sentinel)
		}
		return x
	default:
		return v
	}
}
