package interchange_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leapstack-labs/sqlbridge/pkg/interchange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLRoundTrip(t *testing.T) {
	for _, sql := range roundTripCorpus {
		t.Run(sql, func(t *testing.T) {
			stmt := parseCorpusStatement(t, sql)
			value := interchange.EncodeStatement(stmt)

			data, err := interchange.MarshalYAML(value)
			require.NoError(t, err)

			back, err := interchange.UnmarshalYAML(data)
			require.NoError(t, err)

			decoded, err := interchange.DecodeStatement(back)
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(stmt, decoded))
		})
	}
}

func TestYAMLKeepsNodeTagFirst(t *testing.T) {
	stmt := parseCorpusStatement(t, "SELECT a FROM t")
	data, err := interchange.MarshalYAML(interchange.EncodeStatement(stmt))
	require.NoError(t, err)

	first := strings.SplitN(string(data), "\n", 2)[0]
	assert.Equal(t, "node: Select", first)
}

func TestYAMLScalarTypes(t *testing.T) {
	obj := interchange.NewObject()
	obj.Set("s", "text")
	obj.Set("i", int64(42))
	obj.Set("f", 2.5)
	obj.Set("b", true)
	obj.Set("n", nil)
	obj.Set("l", interchange.List{"a", int64(1)})

	data, err := interchange.MarshalYAML(obj)
	require.NoError(t, err)

	back, err := interchange.UnmarshalYAML(data)
	require.NoError(t, err)

	o, ok := back.(*interchange.Object)
	require.True(t, ok)
	assert.Equal(t, []string{"s", "i", "f", "b", "n", "l"}, o.Keys())

	v, _ := o.Get("i")
	assert.Equal(t, int64(42), v)
	v, _ = o.Get("f")
	assert.Equal(t, 2.5, v)
	v, _ = o.Get("b")
	assert.Equal(t, true, v)
	v, _ = o.Get("n")
	assert.Nil(t, v)
	v, _ = o.Get("l")
	assert.Equal(t, interchange.List{"a", int64(1)}, v)
}

func TestYAMLHandEditedDocumentDecodes(t *testing.T) {
	doc := `node: Select
body:
  node: SelectBody
  left:
    node: SelectCore
    columns:
      - node: SelectItem
        expr:
          node: ColumnRef
          column: a
    from:
      node: From
      source:
        node: Table
        name: t
`
	value, err := interchange.UnmarshalYAML([]byte(doc))
	require.NoError(t, err)

	stmt, err := interchange.DecodeStatement(value)
	require.NoError(t, err)

	want := parseCorpusStatement(t, "SELECT a FROM t")
	assert.Empty(t, cmp.Diff(want, stmt))
}
