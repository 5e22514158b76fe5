// Package rewrite applies textual transformations to SQL fragments
// before parsing: batch regular-expression replacement and temporal
// clause extraction.
package rewrite

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// PatternError reports a regular expression that failed to compile, or
// a pattern or replacement of an unusable type.
type PatternError struct {
	Pattern string
	Message string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("bad pattern %q: %s", e.Pattern, e.Message)
}

// EncodingError reports a batch item the replacement cannot process.
// Index is the item's position in the input slice.
type EncodingError struct {
	Index   int
	Message string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("item %d: %s", e.Index, e.Message)
}

// Replace applies pattern/replacement to every item in one pass. The
// pattern compiles exactly once regardless of batch size and an invalid
// pattern fails before any item is touched.
//
// Items are strings, byte slices, or nil; nil items pass through
// unchanged and every item keeps its position and type. The pattern's
// type selects the matching mode: a []byte pattern matches items
// byte-exact with no encoding validation, while a string pattern
// matches items as UTF-8 text, and a []byte item that is not valid
// UTF-8 is rejected with an EncodingError. The batch is all-or-nothing:
// the first unusable item aborts the call with no partial results.
//
// The replacement text uses \1 style group references, which are
// translated to the expansion syntax the regexp package expects.
func Replace(items []any, pattern, replacement any) ([]any, error) {
	patternText, byteMode, err := coerce(pattern, "pattern")
	if err != nil {
		return nil, err
	}
	replacementText, _, err := coerce(replacement, "replacement")
	if err != nil {
		return nil, err
	}

	re, err := regexp.Compile(patternText)
	if err != nil {
		return nil, &PatternError{Pattern: patternText, Message: err.Error()}
	}
	tmpl := translateBackrefs(replacementText)

	out := make([]any, len(items))
	for i, item := range items {
		switch v := item.(type) {
		case nil:
			out[i] = nil
		case string:
			out[i] = re.ReplaceAllString(v, tmpl)
		case []byte:
			if !byteMode && !utf8.Valid(v) {
				return nil, &EncodingError{Index: i, Message: "item is not valid UTF-8"}
			}
			out[i] = re.ReplaceAll(v, []byte(tmpl))
		default:
			return nil, &EncodingError{
				Index:   i,
				Message: fmt.Sprintf("cannot replace in %T, want string or []byte", item),
			}
		}
	}
	return out, nil
}

// coerce accepts a string or []byte argument and reports which it was.
func coerce(v any, what string) (text string, bytes bool, err error) {
	switch t := v.(type) {
	case string:
		return t, false, nil
	case []byte:
		return string(t), true, nil
	default:
		return "", false, &PatternError{
			Message: fmt.Sprintf("%s must be a string or []byte, got %T", what, v),
		}
	}
}

// translateBackrefs rewrites \1 style group references to ${1} and
// escapes literal dollar signs. A backslash before a non-digit, or at
// the end of the text, is kept as written.
func translateBackrefs(replacement string) string {
	var sb strings.Builder
	for i := 0; i < len(replacement); i++ {
		c := replacement[i]
		switch {
		case c == '$':
			sb.WriteString("$$")
		case c == '\\' && i+1 < len(replacement) && isDigit(replacement[i+1]):
			j := i + 1
			for j < len(replacement) && isDigit(replacement[j]) {
				j++
			}
			sb.WriteString("${")
			sb.WriteString(replacement[i+1 : j])
			sb.WriteByte('}')
			i = j - 1
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
