package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leapstack-labs/sqlbridge/pkg/ast"
	"github.com/leapstack-labs/sqlbridge/pkg/dialect"
	"github.com/leapstack-labs/sqlbridge/pkg/dialects/ansi"
	"github.com/leapstack-labs/sqlbridge/pkg/dialects/mysql"
	"github.com/leapstack-labs/sqlbridge/pkg/dialects/omni"
	"github.com/leapstack-labs/sqlbridge/pkg/interchange"
	"github.com/leapstack-labs/sqlbridge/pkg/parser"
	"github.com/leapstack-labs/sqlbridge/pkg/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, sql string, d *dialect.Dialect) ast.Statement {
	t.Helper()
	stmts, err := parser.Parse(sql, d)
	require.NoError(t, err, "sql: %s", sql)
	require.Len(t, stmts, 1)
	return stmts[0]
}

// reparse renders a statement and parses the result back with the
// same dialect, asserting structural equality with the original.
func reparse(t *testing.T, sql string, d *dialect.Dialect) string {
	t.Helper()
	stmt := parseOne(t, sql, d)
	rendered := render.Statement(stmt, d)
	back := parseOne(t, rendered, d)
	assert.Empty(t, cmp.Diff(stmt, back), "rendered: %s", rendered)
	return rendered
}

// ---------- render-reparse property ----------

func TestRenderReparseOmni(t *testing.T) {
	corpus := []string{
		"SELECT a, b FROM t WHERE a > 1",
		"SELECT DISTINCT a AS x, t.*, * FROM s.t AS alias",
		"SELECT * FROM a JOIN b ON a.id = b.id LEFT JOIN c USING (id) , d",
		"SELECT * FROM (SELECT a FROM t) AS sub CROSS JOIN u",
		"WITH RECURSIVE r AS (SELECT 1) SELECT * FROM r",
		"SELECT a FROM t1 UNION ALL SELECT a FROM t2 INTERSECT SELECT a FROM t3",
		"SELECT a, COUNT(*) FROM t GROUP BY a HAVING COUNT(*) > 1 ORDER BY a DESC NULLS FIRST LIMIT 10 OFFSET 2",
		"SELECT CASE WHEN a > 0 THEN 'p' ELSE 'n' END, CASE a WHEN 1 THEN 'one' END FROM t",
		"SELECT CAST(a AS DECIMAL(10, 2)), COUNT(DISTINCT b), now() FROM t",
		"SELECT * FROM t WHERE a IN (1, 2) AND b NOT IN (SELECT b FROM s)",
		"SELECT * FROM t WHERE a BETWEEN 1 AND 10 OR b NOT BETWEEN 2 AND 3",
		"SELECT * FROM t WHERE a IS NULL AND b IS NOT NULL AND c IS TRUE AND d IS NOT FALSE",
		"SELECT * FROM t WHERE name LIKE 'x%' AND name NOT LIKE '%y'",
		"SELECT * FROM t WHERE EXISTS (SELECT 1 FROM s) AND NOT EXISTS (SELECT 2 FROM u)",
		"SELECT (SELECT MAX(b) FROM s), (1 + 2) * 3, NOT a FROM t",
		"SELECT 10 DIV 3, a || b, a % b FROM t",
		"SELECT arr[1], m[1][2] FROM t",
		"SELECT COUNT(*) FILTER (WHERE a > 0) FROM t",
		"SELECT * FROM t WHERE tags @> ids AND tags @>> ids AND a && b",
		"SELECT * EXCEPT (secret) FROM t",
		"SELECT * FROM docs WHERE MATCH (title, body) AGAINST ('term')",
		"SELECT INTERVAL '1' DAY, INTERVAL '2 hours' FROM t",
		"SELECT * FROM t FOR SYSTEM_TIME AS OF '2024-01-01'",
		"SELECT 'it''s', TRUE, FALSE, NULL, 3.5e2 FROM t",
		"INSERT INTO t (a, b) VALUES (1, 'x'), (2, 'y')",
		"INSERT INTO t SELECT a FROM s",
		"UPDATE t SET a = 1, b = b + 1 WHERE id = 7",
		"DELETE FROM t WHERE a IS NULL",
		"CREATE TABLE IF NOT EXISTS t (id INT NOT NULL, name VARCHAR(20) DEFAULT 'x')",
		"CREATE TABLE t2 AS SELECT a FROM s",
	}
	for _, sql := range corpus {
		t.Run(sql, func(t *testing.T) {
			reparse(t, sql, omni.Omni)
		})
	}
}

func TestRenderReparseANSI(t *testing.T) {
	corpus := []string{
		"SELECT a, b FROM t WHERE a > 1",
		`SELECT "order", "a""b" FROM "select"`,
		"SELECT -x, -(-x), 1 - -2 FROM t",
		"SELECT a + b * c, (a + b) * c FROM t",
		"SELECT a - (b - c), a - b - c FROM t",
	}
	for _, sql := range corpus {
		t.Run(sql, func(t *testing.T) {
			reparse(t, sql, ansi.ANSI)
		})
	}
}

func TestRenderReparseMySQL(t *testing.T) {
	corpus := []string{
		"SELECT `order`, `a``b` FROM `select`",
		`SELECT 'line1\nline2', 'quote\'s' FROM t`,
		"SELECT 10 DIV 3 + 1 FROM t",
		"SELECT INTERVAL '7' DAY FROM t",
	}
	for _, sql := range corpus {
		t.Run(sql, func(t *testing.T) {
			reparse(t, sql, mysql.MySQL)
		})
	}
}

// ---------- full pipeline ----------

func TestParseSerializeDeserializeRender(t *testing.T) {
	sql := "SELECT a, b FROM t WHERE a > 1"
	stmt := parseOne(t, sql, ansi.ANSI)

	value := interchange.EncodeStatement(stmt)
	decoded, err := interchange.DecodeStatement(value)
	require.NoError(t, err)

	rendered := render.Statement(decoded, ansi.ANSI)
	back := parseOne(t, rendered, ansi.ANSI)
	assert.Empty(t, cmp.Diff(stmt, back))
}

// ---------- rendering details ----------

func TestRenderQuotesKeywordIdentifiers(t *testing.T) {
	stmt := &ast.SelectStmt{Body: &ast.SelectBody{Left: &ast.SelectCore{
		Columns: []ast.SelectItem{{Expr: &ast.ColumnRef{Column: "select"}}},
		From:    &ast.FromClause{Source: &ast.TableName{Name: "group by"}},
	}}}

	assert.Equal(t, `SELECT "select" FROM "group by"`, render.Statement(stmt, ansi.ANSI))
	assert.Equal(t, "SELECT `select` FROM `group by`", render.Statement(stmt, mysql.MySQL))
}

func TestRenderEscapesQuoteInIdentifier(t *testing.T) {
	stmt := &ast.SelectStmt{Body: &ast.SelectBody{Left: &ast.SelectCore{
		Columns: []ast.SelectItem{{Expr: &ast.ColumnRef{Column: `a"b`}}},
	}}}
	assert.Equal(t, `SELECT "a""b"`, render.Statement(stmt, ansi.ANSI))
}

func TestRenderLiterals(t *testing.T) {
	cases := []struct {
		name string
		expr *ast.Literal
		want string
	}{
		{"integer", &ast.Literal{Type: ast.LiteralNumber, Value: "42"}, "42"},
		{"decimal keeps spelling", &ast.Literal{Type: ast.LiteralNumber, Value: "1.50"}, "1.50"},
		{"exponent", &ast.Literal{Type: ast.LiteralNumber, Value: "3.5e2"}, "3.5e2"},
		{"string", &ast.Literal{Type: ast.LiteralString, Value: "hello"}, "'hello'"},
		{"string with quote", &ast.Literal{Type: ast.LiteralString, Value: "it's"}, "'it''s'"},
		{"true", &ast.Literal{Type: ast.LiteralBool, Value: "TRUE"}, "TRUE"},
		{"false", &ast.Literal{Type: ast.LiteralBool, Value: "FALSE"}, "FALSE"},
		{"null", &ast.Literal{Type: ast.LiteralNull}, "NULL"},
	}
	r := render.NewRenderer(ansi.ANSI)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, r.Expr(tc.expr))
		})
	}
}

func TestRenderParenthesizesByPrecedence(t *testing.T) {
	// (a + b) * c needs parens; a + b * c does not.
	mul := &ast.BinaryExpr{
		Left:  &ast.BinaryExpr{Left: &ast.ColumnRef{Column: "a"}, Op: ast.OpAdd, Right: &ast.ColumnRef{Column: "b"}},
		Op:    ast.OpMultiply,
		Right: &ast.ColumnRef{Column: "c"},
	}
	r := render.NewRenderer(ansi.ANSI)
	assert.Equal(t, "(a + b) * c", r.Expr(mul))

	add := &ast.BinaryExpr{
		Left:  &ast.ColumnRef{Column: "a"},
		Op:    ast.OpAdd,
		Right: &ast.BinaryExpr{Left: &ast.ColumnRef{Column: "b"}, Op: ast.OpMultiply, Right: &ast.ColumnRef{Column: "c"}},
	}
	assert.Equal(t, "a + b * c", r.Expr(add))
}

func TestRenderRightAssociativeOperandParens(t *testing.T) {
	// a - (b - c) must keep its parens or the meaning changes.
	expr := &ast.BinaryExpr{
		Left:  &ast.ColumnRef{Column: "a"},
		Op:    ast.OpSubtract,
		Right: &ast.BinaryExpr{Left: &ast.ColumnRef{Column: "b"}, Op: ast.OpSubtract, Right: &ast.ColumnRef{Column: "c"}},
	}
	r := render.NewRenderer(ansi.ANSI)
	assert.Equal(t, "a - (b - c)", r.Expr(expr))
}

func TestRenderNestedNegationStaysParseable(t *testing.T) {
	// Back-to-back minus signs would lex as a line comment.
	expr := &ast.UnaryExpr{
		Op:   ast.OpNegate,
		Expr: &ast.UnaryExpr{Op: ast.OpNegate, Expr: &ast.ColumnRef{Column: "x"}},
	}
	r := render.NewRenderer(ansi.ANSI)
	rendered := r.Expr(expr)
	assert.NotContains(t, rendered, "--")

	stmts, err := parser.Parse("SELECT "+rendered, ansi.ANSI)
	require.NoError(t, err)
	back := stmts[0].(*ast.SelectStmt).Body.Left.Columns[0].Expr
	assert.Empty(t, cmp.Diff(ast.Expr(expr), back))
}

func TestRenderSignedNumberSpacing(t *testing.T) {
	// Under signed-number lexing a bare minus must not fuse with the digit.
	expr := &ast.UnaryExpr{
		Op:   ast.OpNegate,
		Expr: &ast.Literal{Type: ast.LiteralNumber, Value: "3"},
	}
	rendered := render.NewRenderer(omni.Omni).Expr(expr)

	stmts, err := parser.Parse("SELECT a"+" - "+rendered+" FROM t", omni.Omni)
	require.NoError(t, err)
	got := stmts[0].(*ast.SelectStmt).Body.Left.Columns[0].Expr
	binary, ok := got.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpSubtract, binary.Op)
}
