// quotes.go lets an old_string typed with straight quotes match a file that
// uses typographic ones, and the reverse.
//
// When old_string is not found verbatim, both sides are compared with curly
// quotes folded to straight ones. On a match the edit's old_string becomes
// the file's actual text, and straight quotes in new_string are curled the
// same way so the file keeps its style.

package edit

import (
	"strings"
	"unicode"
)

const (
	leftSingle  = '‘'
	rightSingle = '’'
	leftDouble  = '“'
	rightDouble = '”'
)

var quoteFolder = strings.NewReplacer(
	string(leftSingle), "'",
	string(rightSingle), "'",
	string(leftDouble), `"`,
	string(rightDouble), `"`,
)

// NormalizeQuotes folds typographic quotes to their ASCII forms.
func NormalizeQuotes(s string) string {
	return quoteFolder.Replace(s)
}

// matchQuotes returns e with OldString replaced by the file's actual text
// when only a quote-folded comparison finds it.
func matchQuotes(content string, e Edit) Edit {
	if e.OldString == "" || strings.Contains(content, e.OldString) {
		return e
	}
	actual, ok := findActual(content, e.OldString)
	if !ok {
		return e
	}
	e.NewString = preserveQuoteStyle(e.OldString, actual, e.NewString)
	e.OldString = actual
	return e
}

// findActual locates search in content under quote folding and returns the
// matching slice of content. Folding maps one rune to one rune, so rune
// offsets in the folded text are rune offsets in the original.
func findActual(content, search string) (string, bool) {
	fc := []rune(NormalizeQuotes(content))
	fs := []rune(NormalizeQuotes(search))
	if len(fs) == 0 || len(fs) > len(fc) {
		return "", false
	}
	i := indexRunes(fc, fs)
	if i < 0 {
		return "", false
	}
	return string([]rune(content)[i : i+len(fs)]), true
}

func indexRunes(haystack, needle []rune) int {
outer:
	for i := 0; i+len(needle) <= len(haystack); i++ {
		for j, r := range needle {
			if haystack[i+j] != r {
				continue outer
			}
		}
		return i
	}
	return -1
}

// preserveQuoteStyle curls the straight quotes in newString when the file's
// matched text used curly ones.
func preserveQuoteStyle(oldString, actual, newString string) string {
	if oldString == actual {
		return newString
	}
	double := strings.ContainsRune(actual, leftDouble) || strings.ContainsRune(actual, rightDouble)
	single := strings.ContainsRune(actual, leftSingle) || strings.ContainsRune(actual, rightSingle)
	if !double && !single {
		return newString
	}

	rs := []rune(newString)
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = r
		switch {
		case r == '"' && double:
			if opening(rs, i) {
				out[i] = leftDouble
			} else {
				out[i] = rightDouble
			}
		case r == '\'' && single:
			switch {
			case i > 0 && i+1 < len(rs) && unicode.IsLetter(rs[i-1]) && unicode.IsLetter(rs[i+1]):
				// apostrophe in a contraction
				out[i] = rightSingle
			case opening(rs, i):
				out[i] = leftSingle
			default:
				out[i] = rightSingle
			}
		}
	}
	return string(out)
}

// opening reports whether the quote at i starts a quotation: it is at the
// start of the text or follows whitespace or opening punctuation.
func opening(rs []rune, i int) bool {
	if i == 0 {
		return true
	}
	switch p := rs[i-1]; {
	case unicode.IsSpace(p):
		return true
	case strings.ContainsRune("([{-–—", p):
		return true
	}
	return false
}
