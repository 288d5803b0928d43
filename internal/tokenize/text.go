package tokenize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/words"
)

type charTokenizer struct {
	opts Options
}

func (charTokenizer) Kind() Kind { return Character }

// Tokenize returns one token per rune. An invalid UTF-8 byte is a token of
// its own, so the tokens always join back to text.
func (charTokenizer) Tokenize(text string) []string {
	tokens := make([]string, 0, utf8.RuneCountInString(text))
	for text != "" {
		_, size := utf8.DecodeRuneInString(text)
		tokens = append(tokens, text[:size])
		text = text[size:]
	}
	return tokens
}

func (t charTokenizer) Key(token string) string {
	if t.opts.IgnoreCase {
		return strings.ToLower(token)
	}
	return token
}

// wordTokenizer uses UAX #29 word boundaries. A whitespace segment is glued
// to the word before it, so "foo  bar" becomes ["foo  ", "bar"].
type wordTokenizer struct {
	opts Options
}

func (wordTokenizer) Kind() Kind { return Word }

func (wordTokenizer) Tokenize(text string) []string {
	var tokens []string
	segs := words.FromString(text)
	for segs.Next() {
		seg := segs.Value()
		if isSpace(seg) && len(tokens) > 0 && !strings.HasSuffix(tokens[len(tokens)-1], "\n") {
			tokens[len(tokens)-1] += seg
			continue
		}
		tokens = append(tokens, seg)
	}
	return tokens
}

func (t wordTokenizer) Key(token string) string { return baseKey(token, t.opts) }

// sentenceTokenizer ends a sentence after '.', '!' or '?' followed by
// whitespace. The whitespace between sentences is its own token.
type sentenceTokenizer struct {
	opts Options
}

func (sentenceTokenizer) Kind() Kind { return Sentence }

func (sentenceTokenizer) Tokenize(text string) []string {
	var tokens []string
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		i += size
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		next, _ := utf8.DecodeRuneInString(text[i:])
		if i < len(text) && !unicode.IsSpace(next) {
			continue
		}
		tokens = append(tokens, text[start:i])
		j := i
		for j < len(text) {
			r, size := utf8.DecodeRuneInString(text[j:])
			if !unicode.IsSpace(r) {
				break
			}
			j += size
		}
		if j > i {
			tokens = append(tokens, text[i:j])
		}
		start, i = j, j
	}
	if start < len(text) {
		tokens = append(tokens, text[start:])
	}
	return tokens
}

func (t sentenceTokenizer) Key(token string) string { return baseKey(token, t.opts) }

var cssDelims = regexp.MustCompile(`[{}:;,]|\s+`)

// cssTokenizer splits structured text on punctuation and whitespace runs,
// keeping every delimiter as a token.
type cssTokenizer struct {
	opts Options
}

func (cssTokenizer) Kind() Kind { return CSS }

func (cssTokenizer) Tokenize(text string) []string {
	var tokens []string
	prev := 0
	for _, loc := range cssDelims.FindAllStringIndex(text, -1) {
		if loc[0] > prev {
			tokens = append(tokens, text[prev:loc[0]])
		}
		tokens = append(tokens, text[loc[0]:loc[1]])
		prev = loc[1]
	}
	if prev < len(text) {
		tokens = append(tokens, text[prev:])
	}
	return tokens
}

func (t cssTokenizer) Key(token string) string { return baseKey(token, t.opts) }

func isSpace(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
