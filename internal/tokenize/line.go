package tokenize

import "strings"

// lineTokenizer splits on "\n". Each token keeps its trailing newline except
// possibly the last; with NewlineIsToken the newline is a token of its own.
type lineTokenizer struct {
	opts Options
}

func (lineTokenizer) Kind() Kind { return Line }

func (t lineTokenizer) Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	var tokens []string
	for text != "" {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			tokens = append(tokens, text)
			break
		}
		if t.opts.NewlineIsToken {
			if i > 0 {
				tokens = append(tokens, text[:i])
			}
			tokens = append(tokens, "\n")
		} else {
			tokens = append(tokens, text[:i+1])
		}
		text = text[i+1:]
	}
	return tokens
}

func (t lineTokenizer) Key(token string) string {
	k := token
	if t.opts.StripTrailingCR {
		if strings.HasSuffix(k, "\r\n") {
			k = k[:len(k)-2] + "\n"
		} else {
			k = strings.TrimSuffix(k, "\r")
		}
	}
	embedded := t.opts.NewlineIsToken && strings.Contains(k, "\n")
	switch {
	case t.opts.IgnoreWhitespace:
		if !embedded {
			k = strings.TrimSpace(k)
		}
	case t.opts.IgnoreNewlineAtEOF:
		if !embedded {
			k = strings.TrimSuffix(k, "\n")
		}
	}
	if t.opts.IgnoreCase {
		k = strings.ToLower(k)
	}
	return k
}

// SplitLines splits text into lines that keep their trailing "\n". The last
// line has no newline when text does not end with one.
func SplitLines(text string) []string {
	return lineTokenizer{}.Tokenize(text)
}
