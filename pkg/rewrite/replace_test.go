package rewrite_test

import (
	"testing"

	"github.com/leapstack-labs/sqlbridge/pkg/rewrite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------- text mode ----------

func TestReplaceBasic(t *testing.T) {
	out, err := rewrite.Replace([]any{"banana", nil, "apple"}, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, []any{"bbnbnb", nil, "bpple"}, out)
}

func TestReplaceKeepsOrderAndLength(t *testing.T) {
	items := []any{"one", nil, "two", nil, "three"}
	out, err := rewrite.Replace(items, "o", "0")
	require.NoError(t, err)
	require.Len(t, out, len(items))
	assert.Equal(t, []any{"0ne", nil, "tw0", nil, "three"}, out)
}

func TestReplaceNonMatchingItemsUnchanged(t *testing.T) {
	out, err := rewrite.Replace([]any{"xyz", "abc"}, "q+", "!")
	require.NoError(t, err)
	assert.Equal(t, []any{"xyz", "abc"}, out)
}

func TestReplacePreservesItemType(t *testing.T) {
	out, err := rewrite.Replace([]any{"abc", []byte("abc")}, "b", "B")
	require.NoError(t, err)
	assert.Equal(t, "aBc", out[0])
	assert.Equal(t, []byte("aBc"), out[1])
}

func TestReplaceRegexPattern(t *testing.T) {
	out, err := rewrite.Replace([]any{"SELECT  *   FROM t"}, `\s+`, " ")
	require.NoError(t, err)
	assert.Equal(t, []any{"SELECT * FROM t"}, out)
}

// ---------- byte mode ----------

func TestReplaceBytePatternSkipsValidation(t *testing.T) {
	// 0xFF is not valid UTF-8 but byte mode does not care.
	items := []any{[]byte{0xFF, 'a', 0xFF}}
	out, err := rewrite.Replace(items, []byte("a"), []byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 'b', 0xFF}, out[0])
}

func TestReplaceTextModeRejectsInvalidUTF8(t *testing.T) {
	items := []any{"fine", []byte{0xFF, 0xFE}}
	_, err := rewrite.Replace(items, "a", "b")
	require.Error(t, err)
	var encErr *rewrite.EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, 1, encErr.Index)
}

// ---------- failure contract ----------

func TestReplaceAbortsWholeBatch(t *testing.T) {
	// The first item would succeed, but any per-item failure drops
	// the entire batch.
	items := []any{"banana", 42}
	out, err := rewrite.Replace(items, "a", "b")
	require.Error(t, err)
	assert.Nil(t, out)

	var encErr *rewrite.EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, 1, encErr.Index)
}

func TestReplaceBadPatternFailsBeforeItems(t *testing.T) {
	_, err := rewrite.Replace([]any{42}, "(", "x")
	require.Error(t, err)

	// Pattern compilation fails first, so the bad item is never seen.
	var patErr *rewrite.PatternError
	require.ErrorAs(t, err, &patErr)
	assert.Equal(t, "(", patErr.Pattern)
}

func TestReplaceRejectsUnsupportedPatternType(t *testing.T) {
	_, err := rewrite.Replace([]any{"a"}, 7, "x")
	var patErr *rewrite.PatternError
	require.ErrorAs(t, err, &patErr)
}

// ---------- backreference translation ----------

func TestReplaceBackreferences(t *testing.T) {
	out, err := rewrite.Replace([]any{"john smith"}, `(\w+) (\w+)`, `\2, \1`)
	require.NoError(t, err)
	assert.Equal(t, []any{"smith, john"}, out)
}

func TestReplaceLiteralBackslashPreserved(t *testing.T) {
	out, err := rewrite.Replace([]any{"path"}, "path", `C:\temp`)
	require.NoError(t, err)
	assert.Equal(t, []any{`C:\temp`}, out)
}

func TestReplaceTrailingBackslashPreserved(t *testing.T) {
	out, err := rewrite.Replace([]any{"x"}, "x", `y\`)
	require.NoError(t, err)
	assert.Equal(t, []any{`y\`}, out)
}

func TestReplaceDollarIsLiteral(t *testing.T) {
	out, err := rewrite.Replace([]any{"price"}, "price", "$100")
	require.NoError(t, err)
	assert.Equal(t, []any{"$100"}, out)
}

func TestReplaceMultiDigitBackreference(t *testing.T) {
	pattern := `(a)(b)(c)(d)(e)(f)(g)(h)(i)(j)(k)`
	out, err := rewrite.Replace([]any{"abcdefghijk"}, pattern, `\11`)
	require.NoError(t, err)
	assert.Equal(t, []any{"k"}, out)
}

// ---------- temporal extraction ----------

func TestExtractTemporalIsIdentity(t *testing.T) {
	clean, filters := rewrite.ExtractTemporal("SELECT * FROM t")
	assert.Equal(t, "SELECT * FROM t", clean)
	assert.Empty(t, filters)
}
