package parser_test

import (
	"testing"

	"github.com/leapstack-labs/sqlbridge/pkg/ast"
	"github.com/leapstack-labs/sqlbridge/pkg/dialects/ansi"
	"github.com/leapstack-labs/sqlbridge/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseOne parses sql and requires exactly one statement.
func parseOne(t *testing.T, sql string) ast.Statement {
	t.Helper()
	stmts, err := parser.Parse(sql, ansi.ANSI)
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	return stmts[0]
}

func selectCore(t *testing.T, stmt ast.Statement) *ast.SelectCore {
	t.Helper()
	sel, ok := stmt.(*ast.SelectStmt)
	require.True(t, ok, "expected *ast.SelectStmt, got %T", stmt)
	require.NotNil(t, sel.Body)
	require.NotNil(t, sel.Body.Left)
	return sel.Body.Left
}

// ---------- SELECT ----------

func TestSelectBasic(t *testing.T) {
	core := selectCore(t, parseOne(t, "SELECT a, b FROM t WHERE a > 1"))

	require.Len(t, core.Columns, 2)
	assert.Equal(t, &ast.ColumnRef{Column: "a"}, core.Columns[0].Expr)
	assert.Equal(t, &ast.ColumnRef{Column: "b"}, core.Columns[1].Expr)

	require.NotNil(t, core.From)
	assert.Equal(t, &ast.TableName{Name: "t"}, core.From.Source)

	where, ok := core.Where.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpGt, where.Op)
	assert.Equal(t, &ast.ColumnRef{Column: "a"}, where.Left)
	assert.Equal(t, &ast.Literal{Type: ast.LiteralNumber, Value: "1"}, where.Right)
}

func TestSelectStarAndAliases(t *testing.T) {
	core := selectCore(t, parseOne(t, "SELECT *, t.*, a AS x, b y FROM t"))
	require.Len(t, core.Columns, 4)
	assert.True(t, core.Columns[0].Star)
	assert.Equal(t, "t", core.Columns[1].TableStar)
	assert.Equal(t, "x", core.Columns[2].Alias)
	assert.Equal(t, "y", core.Columns[3].Alias)
}

func TestSelectDistinct(t *testing.T) {
	core := selectCore(t, parseOne(t, "SELECT DISTINCT a FROM t"))
	assert.True(t, core.Distinct)
}

func TestSelectFullClauseSequence(t *testing.T) {
	sql := "SELECT a, COUNT(*) AS n FROM t WHERE a > 0 GROUP BY a HAVING COUNT(*) > 1 ORDER BY n DESC, a NULLS LAST LIMIT 10 OFFSET 5"
	core := selectCore(t, parseOne(t, sql))

	assert.NotNil(t, core.Where)
	require.Len(t, core.GroupBy, 1)
	assert.NotNil(t, core.Having)
	require.Len(t, core.OrderBy, 2)
	assert.True(t, core.OrderBy[0].Desc)
	assert.Nil(t, core.OrderBy[0].NullsFirst)
	require.NotNil(t, core.OrderBy[1].NullsFirst)
	assert.False(t, *core.OrderBy[1].NullsFirst)
	assert.Equal(t, &ast.Literal{Type: ast.LiteralNumber, Value: "10"}, core.Limit)
	assert.Equal(t, &ast.Literal{Type: ast.LiteralNumber, Value: "5"}, core.Offset)
}

func TestSelectSetOperations(t *testing.T) {
	stmt := parseOne(t, "SELECT a FROM t1 UNION ALL SELECT a FROM t2 EXCEPT SELECT a FROM t3")
	sel := stmt.(*ast.SelectStmt)

	assert.Equal(t, ast.SetOpUnion, sel.Body.Op)
	assert.True(t, sel.Body.All)
	require.NotNil(t, sel.Body.Right)
	assert.Equal(t, ast.SetOpExcept, sel.Body.Right.Op)
	assert.False(t, sel.Body.Right.All)
	require.NotNil(t, sel.Body.Right.Right)
	assert.Equal(t, ast.SetOpNone, sel.Body.Right.Right.Op)
}

func TestWithClause(t *testing.T) {
	stmt := parseOne(t, "WITH RECURSIVE c1 AS (SELECT 1), c2 AS (SELECT 2) SELECT * FROM c1")
	sel := stmt.(*ast.SelectStmt)

	require.NotNil(t, sel.With)
	assert.True(t, sel.With.Recursive)
	require.Len(t, sel.With.CTEs, 2)
	assert.Equal(t, "c1", sel.With.CTEs[0].Name)
	assert.Equal(t, "c2", sel.With.CTEs[1].Name)
}

// ---------- Joins ----------

func TestJoins(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want ast.JoinType
	}{
		{"inner", "SELECT * FROM a JOIN b ON a.id = b.id", ast.JoinInner},
		{"inner explicit", "SELECT * FROM a INNER JOIN b ON a.id = b.id", ast.JoinInner},
		{"left", "SELECT * FROM a LEFT JOIN b ON a.id = b.id", ast.JoinLeft},
		{"left outer", "SELECT * FROM a LEFT OUTER JOIN b ON a.id = b.id", ast.JoinLeft},
		{"right", "SELECT * FROM a RIGHT JOIN b ON a.id = b.id", ast.JoinRight},
		{"full", "SELECT * FROM a FULL OUTER JOIN b ON a.id = b.id", ast.JoinFull},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core := selectCore(t, parseOne(t, tt.sql))
			require.Len(t, core.From.Joins, 1)
			assert.Equal(t, tt.want, core.From.Joins[0].Type)
			assert.NotNil(t, core.From.Joins[0].Condition)
		})
	}
}

func TestCrossAndCommaJoins(t *testing.T) {
	core := selectCore(t, parseOne(t, "SELECT * FROM a, b CROSS JOIN c"))
	require.Len(t, core.From.Joins, 2)
	assert.Equal(t, ast.JoinComma, core.From.Joins[0].Type)
	assert.Equal(t, ast.JoinCross, core.From.Joins[1].Type)
	assert.Nil(t, core.From.Joins[1].Condition)
}

func TestJoinUsing(t *testing.T) {
	core := selectCore(t, parseOne(t, "SELECT * FROM a JOIN b USING (id, ts)"))
	require.Len(t, core.From.Joins, 1)
	assert.Equal(t, []string{"id", "ts"}, core.From.Joins[0].Using)
}

func TestDerivedTable(t *testing.T) {
	core := selectCore(t, parseOne(t, "SELECT * FROM (SELECT a FROM t) AS sub"))
	derived, ok := core.From.Source.(*ast.DerivedTable)
	require.True(t, ok)
	assert.Equal(t, "sub", derived.Alias)
}

func TestSchemaQualifiedTable(t *testing.T) {
	core := selectCore(t, parseOne(t, "SELECT * FROM analytics.events e"))
	name, ok := core.From.Source.(*ast.TableName)
	require.True(t, ok)
	assert.Equal(t, "analytics", name.Schema)
	assert.Equal(t, "events", name.Name)
	assert.Equal(t, "e", name.Alias)
}

// ---------- DML and DDL ----------

func TestInsertValues(t *testing.T) {
	stmt := parseOne(t, "INSERT INTO t (a, b) VALUES (1, 'x'), (2, 'y')")
	ins := stmt.(*ast.InsertStmt)
	assert.Equal(t, []string{"a", "b"}, ins.Columns)
	require.Len(t, ins.Rows, 2)
	require.Len(t, ins.Rows[0], 2)
	assert.Nil(t, ins.Query)
}

func TestInsertSelect(t *testing.T) {
	stmt := parseOne(t, "INSERT INTO t SELECT a FROM s")
	ins := stmt.(*ast.InsertStmt)
	assert.Nil(t, ins.Rows)
	require.NotNil(t, ins.Query)
}

func TestUpdate(t *testing.T) {
	stmt := parseOne(t, "UPDATE t SET a = 1, b = b + 1 WHERE id = 7")
	upd := stmt.(*ast.UpdateStmt)
	require.Len(t, upd.Set, 2)
	assert.Equal(t, "a", upd.Set[0].Column)
	assert.NotNil(t, upd.Where)
}

func TestDelete(t *testing.T) {
	stmt := parseOne(t, "DELETE FROM t WHERE a IS NULL")
	del := stmt.(*ast.DeleteStmt)
	assert.Equal(t, "t", del.Table.Name)
	_, ok := del.Where.(*ast.IsNullExpr)
	assert.True(t, ok)
}

func TestCreateTable(t *testing.T) {
	stmt := parseOne(t, "CREATE TABLE IF NOT EXISTS t (id INT NOT NULL, name VARCHAR(20) DEFAULT 'x')")
	ct := stmt.(*ast.CreateTableStmt)
	assert.True(t, ct.IfNotExists)
	require.Len(t, ct.Columns, 2)
	assert.Equal(t, "INT", ct.Columns[0].Type)
	assert.True(t, ct.Columns[0].NotNull)
	assert.Equal(t, "VARCHAR(20)", ct.Columns[1].Type)
	assert.NotNil(t, ct.Columns[1].Default)
}

func TestCreateTableAsSelect(t *testing.T) {
	stmt := parseOne(t, "CREATE TABLE t AS SELECT a FROM s")
	ct := stmt.(*ast.CreateTableStmt)
	assert.Nil(t, ct.Columns)
	require.NotNil(t, ct.Query)
}

// ---------- Statement lists ----------

func TestMultipleStatements(t *testing.T) {
	stmts, err := parser.Parse("SELECT 1; SELECT 2; DELETE FROM t", ansi.ANSI)
	require.NoError(t, err)
	require.Len(t, stmts, 3)
	_, ok := stmts[2].(*ast.DeleteStmt)
	assert.True(t, ok)
}

func TestBareSemicolonsYieldNothing(t *testing.T) {
	stmts, err := parser.Parse(";; SELECT 1 ;;", ansi.ANSI)
	require.NoError(t, err)
	assert.Len(t, stmts, 1)

	stmts, err = parser.Parse(";;;", ansi.ANSI)
	require.NoError(t, err)
	assert.Empty(t, stmts)

	stmts, err = parser.Parse("", ansi.ANSI)
	require.NoError(t, err)
	assert.Empty(t, stmts)
}

// ---------- Expressions ----------

func TestOperatorPrecedence(t *testing.T) {
	core := selectCore(t, parseOne(t, "SELECT 1 + 2 * 3"))
	expr := core.Columns[0].Expr.(*ast.BinaryExpr)
	assert.Equal(t, ast.OpAdd, expr.Op)
	right := expr.Right.(*ast.BinaryExpr)
	assert.Equal(t, ast.OpMultiply, right.Op)
}

func TestLeftAssociativity(t *testing.T) {
	core := selectCore(t, parseOne(t, "SELECT 1 - 2 - 3"))
	expr := core.Columns[0].Expr.(*ast.BinaryExpr)
	assert.Equal(t, ast.OpSubtract, expr.Op)
	left := expr.Left.(*ast.BinaryExpr)
	assert.Equal(t, ast.OpSubtract, left.Op)
	assert.Equal(t, &ast.Literal{Type: ast.LiteralNumber, Value: "3"}, expr.Right)
}

func TestBooleanPrecedence(t *testing.T) {
	core := selectCore(t, parseOne(t, "SELECT * FROM t WHERE a = 1 OR b = 2 AND NOT c"))
	or := core.Where.(*ast.BinaryExpr)
	assert.Equal(t, ast.OpOr, or.Op)
	and := or.Right.(*ast.BinaryExpr)
	assert.Equal(t, ast.OpAnd, and.Op)
	not := and.Right.(*ast.UnaryExpr)
	assert.Equal(t, ast.OpNot, not.Op)
}

func TestParenExprKept(t *testing.T) {
	core := selectCore(t, parseOne(t, "SELECT (1 + 2) * 3"))
	mul := core.Columns[0].Expr.(*ast.BinaryExpr)
	assert.Equal(t, ast.OpMultiply, mul.Op)
	_, ok := mul.Left.(*ast.ParenExpr)
	assert.True(t, ok)
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		test func(t *testing.T, e ast.Expr)
	}{
		{"in list", "a IN (1, 2, 3)", func(t *testing.T, e ast.Expr) {
			in := e.(*ast.InExpr)
			assert.False(t, in.Not)
			assert.Len(t, in.Values, 3)
		}},
		{"not in subquery", "a NOT IN (SELECT b FROM s)", func(t *testing.T, e ast.Expr) {
			in := e.(*ast.InExpr)
			assert.True(t, in.Not)
			assert.NotNil(t, in.Query)
		}},
		{"between", "a BETWEEN 1 AND 10", func(t *testing.T, e ast.Expr) {
			b := e.(*ast.BetweenExpr)
			assert.False(t, b.Not)
		}},
		{"not between", "a NOT BETWEEN 1 AND 10", func(t *testing.T, e ast.Expr) {
			b := e.(*ast.BetweenExpr)
			assert.True(t, b.Not)
		}},
		{"like", "name LIKE 'x%'", func(t *testing.T, e ast.Expr) {
			l := e.(*ast.LikeExpr)
			assert.False(t, l.Not)
		}},
		{"is not null", "a IS NOT NULL", func(t *testing.T, e ast.Expr) {
			n := e.(*ast.IsNullExpr)
			assert.True(t, n.Not)
		}},
		{"is true", "a IS TRUE", func(t *testing.T, e ast.Expr) {
			b := e.(*ast.IsBoolExpr)
			assert.True(t, b.Value)
			assert.False(t, b.Not)
		}},
		{"exists", "EXISTS (SELECT 1)", func(t *testing.T, e ast.Expr) {
			x := e.(*ast.ExistsExpr)
			assert.False(t, x.Not)
		}},
		{"not exists", "NOT EXISTS (SELECT 1)", func(t *testing.T, e ast.Expr) {
			x := e.(*ast.ExistsExpr)
			assert.True(t, x.Not)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core := selectCore(t, parseOne(t, "SELECT * FROM t WHERE "+tt.sql))
			tt.test(t, core.Where)
		})
	}
}

func TestBetweenBindsBeforeAnd(t *testing.T) {
	core := selectCore(t, parseOne(t, "SELECT * FROM t WHERE a BETWEEN 1 AND 10 AND b = 2"))
	and := core.Where.(*ast.BinaryExpr)
	assert.Equal(t, ast.OpAnd, and.Op)
	_, ok := and.Left.(*ast.BetweenExpr)
	assert.True(t, ok)
}

func TestCaseExpr(t *testing.T) {
	core := selectCore(t, parseOne(t, "SELECT CASE WHEN a > 0 THEN 'pos' WHEN a < 0 THEN 'neg' ELSE 'zero' END"))
	c := core.Columns[0].Expr.(*ast.CaseExpr)
	assert.Nil(t, c.Operand)
	assert.Len(t, c.Whens, 2)
	assert.NotNil(t, c.Else)

	core = selectCore(t, parseOne(t, "SELECT CASE a WHEN 1 THEN 'one' END"))
	c = core.Columns[0].Expr.(*ast.CaseExpr)
	assert.NotNil(t, c.Operand)
	assert.Len(t, c.Whens, 1)
	assert.Nil(t, c.Else)
}

func TestCastExpr(t *testing.T) {
	core := selectCore(t, parseOne(t, "SELECT CAST(a AS DECIMAL(10, 2))"))
	c := core.Columns[0].Expr.(*ast.CastExpr)
	assert.Equal(t, "DECIMAL(10, 2)", c.TypeName)
}

func TestFuncCalls(t *testing.T) {
	core := selectCore(t, parseOne(t, "SELECT COUNT(*), COUNT(DISTINCT a), now(), coalesce(a, b, 0)"))
	require.Len(t, core.Columns, 4)

	count := core.Columns[0].Expr.(*ast.FuncCall)
	assert.True(t, count.Star)

	distinct := core.Columns[1].Expr.(*ast.FuncCall)
	assert.True(t, distinct.Distinct)
	assert.Len(t, distinct.Args, 1)

	now := core.Columns[2].Expr.(*ast.FuncCall)
	assert.Empty(t, now.Args)
	assert.False(t, now.Star)

	coalesce := core.Columns[3].Expr.(*ast.FuncCall)
	assert.Len(t, coalesce.Args, 3)
}

func TestScalarSubquery(t *testing.T) {
	core := selectCore(t, parseOne(t, "SELECT (SELECT MAX(b) FROM s) FROM t"))
	_, ok := core.Columns[0].Expr.(*ast.SubqueryExpr)
	assert.True(t, ok)
}

func TestIntervalWithUnit(t *testing.T) {
	core := selectCore(t, parseOne(t, "SELECT INTERVAL '1' DAY"))
	iv := core.Columns[0].Expr.(*ast.IntervalExpr)
	assert.Equal(t, "1", iv.Value)
	assert.Equal(t, "DAY", iv.Unit)
}

func TestLiterals(t *testing.T) {
	core := selectCore(t, parseOne(t, "SELECT 1, 2.5, 'x', TRUE, FALSE, NULL"))
	want := []*ast.Literal{
		{Type: ast.LiteralNumber, Value: "1"},
		{Type: ast.LiteralNumber, Value: "2.5"},
		{Type: ast.LiteralString, Value: "x"},
		{Type: ast.LiteralBool, Value: "TRUE"},
		{Type: ast.LiteralBool, Value: "FALSE"},
		{Type: ast.LiteralNull},
	}
	require.Len(t, core.Columns, len(want))
	for i, w := range want {
		assert.Equal(t, w, core.Columns[i].Expr, "column %d", i)
	}
}

// ---------- Errors ----------

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{"leading garbage", "FROM t"},
		{"missing from target", "SELECT a FROM"},
		{"dangling operator", "SELECT a +"},
		{"unbalanced paren", "SELECT (a FROM t"},
		{"double statement without semicolon", "SELECT 1 SELECT 2"},
		{"insert without source", "INSERT INTO t (a)"},
		{"case without when", "SELECT CASE END"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse(tt.sql, ansi.ANSI)
			require.Error(t, err)
			var parseErr *parser.ParseError
			assert.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestParseErrorHasPosition(t *testing.T) {
	_, err := parser.Parse("SELECT a\nFROM", ansi.ANSI)
	var parseErr *parser.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 2, parseErr.Pos.Line)
}

func TestLexErrorSurfacesFromParse(t *testing.T) {
	_, err := parser.Parse("SELECT 'oops", ansi.ANSI)
	var lexErr *parser.LexError
	require.ErrorAs(t, err, &lexErr)
}
