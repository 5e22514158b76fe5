package render

import (
	"strings"

	"github.com/leapstack-labs/sqlbridge/pkg/ast"
	"github.com/leapstack-labs/sqlbridge/pkg/spi"
)

// opPrecedence maps binary operators to the precedence the parser binds
// them at. Operators outside the fixed vocabulary bind like comparisons.
func opPrecedence(op ast.BinaryOp) int {
	switch op {
	case ast.OpOr:
		return spi.PrecedenceOr
	case ast.OpAnd:
		return spi.PrecedenceAnd
	case ast.OpAdd, ast.OpSubtract, ast.OpConcat:
		return spi.PrecedenceAddition
	case ast.OpMultiply, ast.OpDivide, ast.OpModulo, ast.OpIntegerDivide:
		return spi.PrecedenceMultiply
	default:
		return spi.PrecedenceComparison
	}
}

// exprPrecedence returns the binding power of an expression when it
// appears as an operand. Primaries bind tightest.
func exprPrecedence(expr ast.Expr) int {
	switch e := expr.(type) {
	case *ast.BinaryExpr:
		return opPrecedence(e.Op)
	case *ast.UnaryExpr:
		if e.Op == ast.OpNot {
			return spi.PrecedenceNot
		}
		return spi.PrecedenceUnary
	case *ast.InExpr, *ast.BetweenExpr, *ast.IsNullExpr, *ast.IsBoolExpr, *ast.LikeExpr:
		return spi.PrecedenceComparison
	default:
		return spi.PrecedencePostfix
	}
}

func (r *Renderer) expr(sb *strings.Builder, expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.ColumnRef:
		if e.Table != "" {
			r.ident(sb, e.Table)
			sb.WriteByte('.')
		}
		r.ident(sb, e.Column)
	case *ast.Literal:
		r.literal(sb, e)
	case *ast.BinaryExpr:
		r.binaryExpr(sb, e)
	case *ast.UnaryExpr:
		r.unaryExpr(sb, e)
	case *ast.FuncCall:
		r.funcCall(sb, e)
	case *ast.CaseExpr:
		r.caseExpr(sb, e)
	case *ast.CastExpr:
		sb.WriteString("CAST(")
		r.expr(sb, e.Expr)
		sb.WriteString(" AS ")
		sb.WriteString(e.TypeName)
		sb.WriteByte(')')
	case *ast.InExpr:
		r.operand(sb, e.Expr, spi.PrecedenceComparison)
		if e.Not {
			sb.WriteString(" NOT")
		}
		sb.WriteString(" IN (")
		if e.Query != nil {
			r.selectStmt(sb, e.Query)
		} else {
			r.exprList(sb, e.Values)
		}
		sb.WriteByte(')')
	case *ast.BetweenExpr:
		r.operand(sb, e.Expr, spi.PrecedenceComparison)
		if e.Not {
			sb.WriteString(" NOT")
		}
		sb.WriteString(" BETWEEN ")
		r.operand(sb, e.Low, spi.PrecedenceComparison)
		sb.WriteString(" AND ")
		r.operand(sb, e.High, spi.PrecedenceComparison)
	case *ast.IsNullExpr:
		r.operand(sb, e.Expr, spi.PrecedenceComparison)
		sb.WriteString(" IS ")
		if e.Not {
			sb.WriteString("NOT ")
		}
		sb.WriteString("NULL")
	case *ast.IsBoolExpr:
		r.operand(sb, e.Expr, spi.PrecedenceComparison)
		sb.WriteString(" IS ")
		if e.Not {
			sb.WriteString("NOT ")
		}
		if e.Value {
			sb.WriteString("TRUE")
		} else {
			sb.WriteString("FALSE")
		}
	case *ast.LikeExpr:
		r.operand(sb, e.Expr, spi.PrecedenceComparison)
		if e.Not {
			sb.WriteString(" NOT")
		}
		sb.WriteString(" LIKE ")
		r.operand(sb, e.Pattern, spi.PrecedenceComparison)
	case *ast.ParenExpr:
		sb.WriteByte('(')
		r.expr(sb, e.Expr)
		sb.WriteByte(')')
	case *ast.StarExpr:
		if e.Table != "" {
			r.ident(sb, e.Table)
			sb.WriteByte('.')
		}
		sb.WriteByte('*')
	case *ast.SubqueryExpr:
		sb.WriteByte('(')
		r.selectStmt(sb, e.Select)
		sb.WriteByte(')')
	case *ast.ExistsExpr:
		if e.Not {
			sb.WriteString("NOT ")
		}
		sb.WriteString("EXISTS (")
		r.selectStmt(sb, e.Select)
		sb.WriteByte(')')
	case *ast.IndexExpr:
		r.operand(sb, e.Expr, spi.PrecedencePostfix)
		sb.WriteByte('[')
		r.expr(sb, e.Index)
		sb.WriteByte(']')
	case *ast.IntervalExpr:
		sb.WriteString("INTERVAL ")
		r.stringLit(sb, e.Value)
		if e.Unit != "" {
			sb.WriteByte(' ')
			sb.WriteString(e.Unit)
		}
	case *ast.MatchExpr:
		sb.WriteString("MATCH (")
		r.exprList(sb, e.Columns)
		sb.WriteString(") AGAINST (")
		r.expr(sb, e.Against)
		sb.WriteByte(')')
	}
}

// operand renders a child expression, parenthesizing it when its
// binding power is below min.
func (r *Renderer) operand(sb *strings.Builder, expr ast.Expr, min int) {
	if exprPrecedence(expr) < min {
		sb.WriteByte('(')
		r.expr(sb, expr)
		sb.WriteByte(')')
		return
	}
	r.expr(sb, expr)
}

// binaryExpr keeps the tree shape through reparsing: the left child
// tolerates equal precedence because the parser folds left, the right
// child does not.
func (r *Renderer) binaryExpr(sb *strings.Builder, e *ast.BinaryExpr) {
	prec := opPrecedence(e.Op)
	r.operand(sb, e.Left, prec)
	sb.WriteByte(' ')
	sb.WriteString(string(e.Op))
	sb.WriteByte(' ')
	if exprPrecedence(e.Right) <= prec {
		sb.WriteByte('(')
		r.expr(sb, e.Right)
		sb.WriteByte(')')
	} else {
		r.expr(sb, e.Right)
	}
}

func (r *Renderer) unaryExpr(sb *strings.Builder, e *ast.UnaryExpr) {
	switch e.Op {
	case ast.OpNot:
		sb.WriteString("NOT ")
		r.operand(sb, e.Expr, spi.PrecedenceNot)
	default:
		sb.WriteString(string(e.Op))
		if r.needsSignSpace(e.Expr) {
			sb.WriteByte(' ')
		}
		r.operand(sb, e.Expr, spi.PrecedenceUnary)
	}
}

// needsSignSpace reports whether a sign operator must be separated from
// its operand. Two adjacent signs would lex as a comment marker or a
// double sign, and a sign-adjacent digit would lex back as one signed
// number token when the dialect allows signed numbers.
func (r *Renderer) needsSignSpace(operand ast.Expr) bool {
	switch e := operand.(type) {
	case *ast.UnaryExpr:
		return e.Op != ast.OpNot
	case *ast.Literal:
		return r.dialect.SignedNumbers && e.Type == ast.LiteralNumber
	}
	return false
}

// literal writes a literal value. Numbers keep their source spelling;
// strings go through dialect-aware escaping.
func (r *Renderer) literal(sb *strings.Builder, e *ast.Literal) {
	switch e.Type {
	case ast.LiteralNumber:
		sb.WriteString(e.Value)
	case ast.LiteralString:
		r.stringLit(sb, e.Value)
	case ast.LiteralBool:
		sb.WriteString(e.Value)
	case ast.LiteralNull:
		sb.WriteString("NULL")
	}
}

func (r *Renderer) funcCall(sb *strings.Builder, e *ast.FuncCall) {
	sb.WriteString(e.Name)
	sb.WriteByte('(')
	switch {
	case e.Star:
		sb.WriteByte('*')
	default:
		if e.Distinct {
			sb.WriteString("DISTINCT ")
		}
		r.exprList(sb, e.Args)
	}
	sb.WriteByte(')')
	if e.Filter != nil {
		sb.WriteString(" FILTER (WHERE ")
		r.expr(sb, e.Filter)
		sb.WriteByte(')')
	}
}

func (r *Renderer) caseExpr(sb *strings.Builder, e *ast.CaseExpr) {
	sb.WriteString("CASE")
	if e.Operand != nil {
		sb.WriteByte(' ')
		r.expr(sb, e.Operand)
	}
	for _, w := range e.Whens {
		sb.WriteString(" WHEN ")
		r.expr(sb, w.Condition)
		sb.WriteString(" THEN ")
		r.expr(sb, w.Result)
	}
	if e.Else != nil {
		sb.WriteString(" ELSE ")
		r.expr(sb, e.Else)
	}
	sb.WriteString(" END")
}
